// Package ksef delivers invoices to the national e-invoicing service (KSeF).
// The payload is a simplified FA(2)-shaped XML document; the transport is a
// plain HTTPS POST with a bearer token.
package ksef

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
)

// BuildInvoiceXML serializes the invoice into the submission payload. Totals
// are recomputed from the lines so the document is internally consistent.
func BuildInvoiceXML(inv *entity.Invoice, company billing.Company, contractor *entity.Contractor, lines []entity.InvoiceLine) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Faktura")
	root.CreateAttr("xmlns", "http://crd.gov.pl/wzor/2023/06/29/12648/")

	header := root.CreateElement("Naglowek")
	header.CreateElement("KodFormularza").SetText("FA")
	header.CreateElement("WariantFormularza").SetText("2")
	header.CreateElement("DataWytworzeniaFa").SetText(inv.IssueDate.Format("2006-01-02"))

	seller := root.CreateElement("Podmiot1")
	seller.CreateElement("NIP").SetText(company.NIP)
	seller.CreateElement("Nazwa").SetText(company.Name)
	sellerAddr := seller.CreateElement("Adres")
	sellerAddr.CreateElement("AdresL1").SetText(company.Address)
	sellerAddr.CreateElement("AdresL2").SetText(company.ZipCode + " " + company.City)

	buyer := root.CreateElement("Podmiot2")
	buyer.CreateElement("NIP").SetText(contractor.NIP)
	buyer.CreateElement("Nazwa").SetText(contractor.Name)
	buyerAddr := buyer.CreateElement("Adres")
	buyerAddr.CreateElement("AdresL1").SetText(contractor.Address)
	buyerAddr.CreateElement("AdresL2").SetText(contractor.ZipCode + " " + contractor.City)

	fa := root.CreateElement("Fa")
	fa.CreateElement("KodWaluty").SetText("PLN")
	fa.CreateElement("P_1").SetText(inv.IssueDate.Format("2006-01-02"))
	fa.CreateElement("P_2").SetText(inv.Number)

	var net, vat, gross decimal.Decimal
	for i, l := range lines {
		row := fa.CreateElement("FaWiersz")
		row.CreateElement("NrWierszaFa").SetText(fmt.Sprintf("%d", i+1))
		row.CreateElement("P_7").SetText(l.Name)
		row.CreateElement("P_8B").SetText(l.Quantity.String())
		row.CreateElement("P_9A").SetText(l.UnitPrice.StringFixed(2))
		row.CreateElement("P_11").SetText(l.Net().Round(2).StringFixed(2))
		row.CreateElement("P_12").SetText(l.VATRate.StringFixed(0))

		net = net.Add(l.Net())
		vat = vat.Add(l.VAT())
		gross = gross.Add(l.Gross())
	}

	fa.CreateElement("P_13_1").SetText(net.Round(2).StringFixed(2))
	fa.CreateElement("P_14_1").SetText(vat.Round(2).StringFixed(2))
	fa.CreateElement("P_15").SetText(gross.Round(2).StringFixed(2))

	doc.Indent(2)
	return doc.WriteToBytes()
}
