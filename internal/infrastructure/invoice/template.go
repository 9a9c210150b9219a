package invoice

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentData feeds the fixed invoice layout
type DocumentData struct {
	InvoiceNumber string
	IssuedAt      time.Time

	SellerName    string
	SellerAddress string
	SellerPhone   string

	RetailerName    string
	RetailerAddress string
	RetailerPhone   string

	ProductName string
	Unit        string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
}

var documentTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2 Jan 2006") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 13px; color: #222; margin: 0; }
  h1 { font-size: 26px; letter-spacing: 4px; margin: 0 0 4px 0; }
  .meta { color: #555; margin-bottom: 28px; }
  .parties { width: 100%; margin-bottom: 28px; }
  .parties td { vertical-align: top; width: 50%; }
  .party-label { font-size: 11px; text-transform: uppercase; color: #888; margin-bottom: 6px; }
  .party-name { font-weight: bold; margin-bottom: 2px; }
  table.items { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
  table.items th { text-align: left; font-size: 11px; text-transform: uppercase; color: #888;
                   border-bottom: 2px solid #222; padding: 6px 4px; }
  table.items td { padding: 8px 4px; border-bottom: 1px solid #ddd; }
  .num { text-align: right; }
  .total-row td { font-weight: bold; font-size: 15px; border-bottom: none; padding-top: 14px; }
  .payment { margin-top: 24px; font-weight: bold; }
  .footer { margin-top: 48px; color: #888; font-size: 12px; text-align: center; }
</style>
</head>
<body>
  <h1>INVOICE</h1>
  <div class="meta">{{.InvoiceNumber}} &middot; {{date .IssuedAt}}</div>

  <table class="parties">
    <tr>
      <td>
        <div class="party-label">From</div>
        <div class="party-name">{{.SellerName}}</div>
        <div>{{.SellerAddress}}</div>
        <div>{{.SellerPhone}}</div>
      </td>
      <td>
        <div class="party-label">Bill To</div>
        <div class="party-name">{{.RetailerName}}</div>
        <div>{{.RetailerAddress}}</div>
        <div>{{.RetailerPhone}}</div>
      </td>
    </tr>
  </table>

  <table class="items">
    <tr>
      <th>Product</th>
      <th class="num">Quantity</th>
      <th class="num">Unit Price</th>
      <th class="num">Subtotal</th>
    </tr>
    <tr>
      <td>{{.ProductName}}</td>
      <td class="num">{{.Quantity}} {{.Unit}}</td>
      <td class="num">{{money .UnitPrice}}</td>
      <td class="num">{{money .TotalAmount}}</td>
    </tr>
    <tr class="total-row">
      <td colspan="3">Grand Total</td>
      <td class="num">{{money .TotalAmount}}</td>
    </tr>
  </table>

  <div class="payment">Payment Status: COD</div>

  <div class="footer">Thank you for your business!</div>
</body>
</html>
`))

// RenderHTML produces the invoice document markup for the given data
func RenderHTML(data DocumentData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to execute invoice template", err)
	}
	return buf.String(), nil
}
