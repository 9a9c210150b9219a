package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() DocumentData {
	return DocumentData{
		InvoiceNumber:   "INV-ORD-2026-00042",
		IssuedAt:        time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		SellerName:      "Acme Wholesale",
		SellerAddress:   "1 Industrial Way",
		SellerPhone:     "+15550000",
		RetailerName:    "Corner Shop",
		RetailerAddress: "2 High Street",
		RetailerPhone:   "+15550100",
		ProductName:     "Bulk Rice 25kg",
		Unit:            "bag",
		Quantity:        10,
		UnitPrice:       decimal.NewFromFloat(99.50),
		TotalAmount:     decimal.NewFromFloat(995.00),
	}
}

func TestRenderHTMLLayout(t *testing.T) {
	html, err := RenderHTML(sampleDocument())
	require.NoError(t, err)

	for _, want := range []string{
		"INVOICE",
		"INV-ORD-2026-00042",
		"14 Mar 2026",
		"Acme Wholesale",
		"Corner Shop",
		"Bulk Rice 25kg",
		"99.50",
		"995.00",
		"Grand Total",
		"Payment Status: COD",
		"Thank you for your business!",
	} {
		assert.Contains(t, html, want)
	}

	// Seller block comes before the retailer block
	assert.Less(t, strings.Index(html, "Acme Wholesale"), strings.Index(html, "Corner Shop"))
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	data := sampleDocument()
	data.ProductName = `<script>alert("x")</script>`

	html, err := RenderHTML(data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}
