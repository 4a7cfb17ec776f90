package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/mhbagheri-99/e-commerce/internal/model"

	"github.com/shopspring/decimal"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`
<h1>Purchase Receipt</h1>
<p>Thanks for your order.</p>
<table>
  <tr><td>Product</td><td>{{.ProductName}}</td></tr>
  <tr><td>Order ID</td><td>{{.OrderID}}</td></tr>
  <tr><td>Total</td><td>{{.Total}}</td></tr>
</table>
<p><a href="{{.DownloadURL}}">Download</a> (link expires in 24 hours)</p>
`))

var orderHistoryTemplate = template.Must(template.New("orderHistory").Parse(`
<h1>Order History</h1>
<p>Your past orders and fresh download links. Each link expires in 24 hours.</p>
{{range .Orders}}
<table>
  <tr><td>Product</td><td>{{.ProductName}}</td></tr>
  <tr><td>Purchased</td><td>{{.PurchasedAt}}</td></tr>
  <tr><td>Total</td><td>{{.Total}}</td></tr>
</table>
<p><a href="{{.DownloadURL}}">Download</a></p>
{{end}}
`))

type receiptData struct {
	ProductName string
	OrderID     string
	Total       string
	DownloadURL string
}

type historyOrderData struct {
	ProductName string
	PurchasedAt string
	Total       string
	DownloadURL string
}

// formatCurrency renders minor units as a display amount, e.g. 8500 -> "$85.00".
func formatCurrency(amountInCents int64, currency string) string {
	amount := decimal.NewFromInt(amountInCents).Div(decimal.NewFromInt(100))
	symbol := "$"
	if !strings.EqualFold(currency, "USD") {
		symbol = strings.ToUpper(currency) + " "
	}
	return symbol + amount.StringFixed(2)
}

func downloadURL(baseURL, verificationID string) string {
	return fmt.Sprintf("%s/products/download/%s", baseURL, verificationID)
}

func renderReceiptEmail(order *model.Order, product *model.Product, verificationID, baseURL string) (string, error) {
	var buf bytes.Buffer
	err := receiptTemplate.Execute(&buf, receiptData{
		ProductName: product.Name,
		OrderID:     order.ID,
		Total:       formatCurrency(order.TotalInCents, product.Currency),
		DownloadURL: downloadURL(baseURL, verificationID),
	})
	if err != nil {
		return "", fmt.Errorf("render receipt email: %w", err)
	}

	return buf.String(), nil
}

func renderOrderHistoryEmail(orders []historyOrderData) (string, error) {
	var buf bytes.Buffer
	err := orderHistoryTemplate.Execute(&buf, struct{ Orders []historyOrderData }{orders})
	if err != nil {
		return "", fmt.Errorf("render order history email: %w", err)
	}

	return buf.String(), nil
}
