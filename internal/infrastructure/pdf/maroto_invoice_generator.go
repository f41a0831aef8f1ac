// Package pdf renders invoice documents with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: seller name + NIP  │  invoice number + dates       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER (Sprzedawca)  │  BUYER (Nabywca)                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Lp | Name | Qty | Net price | VAT% | Net | Gross    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: net / VAT / gross (recomputed from the lines)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: bank account + payment due                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoInvoiceGenerator implements billing.PDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

var invoiceTitles = map[string]string{
	entity.InvoiceTypeSales:      "FAKTURA VAT",
	entity.InvoiceTypePurchase:   "FAKTURA ZAKUPU",
	entity.InvoiceTypeCorrective: "FAKTURA KORYGUJĄCA",
	entity.InvoiceTypeProforma:   "FAKTURA PROFORMA",
	entity.InvoiceTypeAdvance:    "FAKTURA ZALICZKOWA",
	entity.InvoiceTypeFinal:      "FAKTURA KOŃCOWA",
}

// GenerateInvoicePDF renders the invoice and returns the PDF bytes. Totals
// are recomputed from the lines, never read from the stored header. On a
// purchase invoice the contractor is the seller and the company the buyer.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	company appbilling.Company,
	contractor *entity.Contractor,
	lines []entity.InvoiceLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(inv.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	seller := party{
		Name: company.Name, NIP: company.NIP,
		Address: company.Address, City: company.ZipCode + " " + company.City,
	}
	buyer := party{
		Name: contractor.Name, NIP: contractor.NIP,
		Address: contractor.Address, City: contractor.ZipCode + " " + contractor.City,
	}
	if inv.Type == entity.InvoiceTypePurchase {
		seller, buyer = buyer, seller
	}

	m.AddRows(headerRow(inv, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(seller, buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(inv, company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

type party struct {
	Name    string
	NIP     string
	Address string
	City    string
}

// headerRow: document title and number (left), issue and due dates (right).
func headerRow(inv *entity.Invoice, company appbilling.Company) core.Row {
	title := invoiceTitles[inv.Type]
	if title == "" {
		title = "FAKTURA"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Nr "+inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Data wystawienia: "+inv.IssueDate.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Termin płatności: "+inv.DueDate.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New(company.Name, props.Text{
				Size: 8, Align: align.Right, Top: 13,
			}),
		),
	)
}

// partiesRow: seller block (left) and buyer block (right).
func partiesRow(seller, buyer party) core.Row {
	block := func(label string, p party) []core.Component {
		return []core.Component{
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("NIP: "+nonEmpty(p.NIP, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(nonEmpty(p.Address+", "+p.City, "—"), props.Text{Size: 8, Top: 17, Color: colorGray}),
		}
	}
	return row.New(24).Add(
		col.New(6).Add(block("SPRZEDAWCA", seller)...),
		col.New(6).Add(block("NABYWCA", buyer)...),
	)
}

// tableHeaderRow: line table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Lp.", 1, align.Center),
		h("Nazwa towaru/usługi", 4, align.Left),
		h("Ilość", 1, align.Center),
		h("Cena netto", 2, align.Right),
		h("VAT%", 1, align.Center),
		h("Netto", 1, align.Right),
		h("Brutto", 2, align.Right),
	)
}

// tableLineRows: one row per invoice line.
func tableLineRows(lines []entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		name := l.Name
		if l.Code != "" {
			name = l.Code + " " + name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.VATRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				l.Net().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.Gross().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: net/VAT/gross block, right-aligned, recomputed from the lines.
func totalsRow(lines []entity.InvoiceLine) core.Row {
	var net, vat, gross decimal.Decimal
	for _, l := range lines {
		net = net.Add(l.Net())
		vat = vat.Add(l.VAT())
		gross = gross.Add(l.Gross())
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Razem netto:"),
			label("Razem VAT:"),
			grandLabel("DO ZAPŁATY:"),
		),
		col.New(4).Add(
			value(net.Round(2).StringFixed(2)+" PLN"),
			value(vat.Round(2).StringFixed(2)+" PLN"),
			grandValue(gross.Round(2).StringFixed(2)+" PLN"),
		),
	)
}

// footerRow: bank account and the external reference when present.
func footerRow(inv *entity.Invoice, company appbilling.Company) core.Row {
	bank := "—"
	if company.Account != "" {
		bank = nonEmpty(company.Bank, "Konto") + ": " + company.Account
	}
	components := []core.Component{
		text.New("Płatność przelewem. "+bank, props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}),
	}
	if inv.ExternalRef != "" {
		components = append(components, text.New("Nr referencyjny KSeF: "+inv.ExternalRef, props.Text{
			Size: 7, Color: colorGray, Top: 6,
		}))
	}
	return row.New(12).Add(col.New(12).Add(components...))
}

func nonEmpty(s, fallback string) string {
	if s != "" && s != ", " {
		return s
	}
	return fallback
}
