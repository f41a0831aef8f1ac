package ksef_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/infrastructure/ksef"
)

func TestBuildInvoiceXML(t *testing.T) {
	inv, company, contractor, lines := submitArgs()

	payload, err := ksef.BuildInvoiceXML(inv, company, contractor, lines)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(payload))

	root := doc.SelectElement("Faktura")
	require.NotNil(t, root)

	header := root.SelectElement("Naglowek")
	require.NotNil(t, header)
	assert.Equal(t, "FA", header.SelectElement("KodFormularza").Text())
	assert.Equal(t, "2", header.SelectElement("WariantFormularza").Text())

	assert.Equal(t, company.NIP, root.SelectElement("Podmiot1").SelectElement("NIP").Text())
	assert.Equal(t, contractor.NIP, root.SelectElement("Podmiot2").SelectElement("NIP").Text())

	fa := root.SelectElement("Fa")
	require.NotNil(t, fa)
	assert.Equal(t, "PLN", fa.SelectElement("KodWaluty").Text())
	assert.Equal(t, inv.Number, fa.SelectElement("P_2").Text())

	rows := fa.SelectElements("FaWiersz")
	require.Len(t, rows, 1)
	assert.Equal(t, "Kabel YDY", rows[0].SelectElement("P_7").Text())
	assert.Equal(t, "100.00", rows[0].SelectElement("P_11").Text())

	// Totals recomputed from the lines: 100 net, 23 VAT, 123 gross.
	assert.Equal(t, "100.00", fa.SelectElement("P_13_1").Text())
	assert.Equal(t, "23.00", fa.SelectElement("P_14_1").Text())
	assert.Equal(t, "123.00", fa.SelectElement("P_15").Text())
}
