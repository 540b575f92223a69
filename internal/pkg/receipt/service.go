// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/order"
)

// Service generates a local PDF receipt for a placed order
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Generate renders the order into a PDF receipt
func (s *Service) Generate(ord *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("RCPT-%s", ord.OrderNumber),
		IssuedOn:      time.Now().Format("January 2, 2006"),
		Order:         ord,
		Company: companyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
			Website: s.config.Company.Website,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from the receipt template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"money": formatMoney,
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// formatMoney renders a minor-unit amount with two decimals
func formatMoney(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// receiptData is the data passed to the receipt template
type receiptData struct {
	ReceiptNumber string
	IssuedOn      string
	Order         *order.Order
	Company       companyInfo
}

type companyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; font-size: 13px; }
  .header { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .company { font-size: 16px; font-weight: bold; }
  .muted { color: #777; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th { text-align: left; border-bottom: 2px solid #222; padding: 6px 4px; }
  td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
  .num { text-align: right; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; }
  .totals td { border: none; padding: 3px 4px; }
  .grand { font-weight: bold; border-top: 2px solid #222; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <div class="company">{{.Company.Name}}</div>
      <div class="muted">{{.Company.Address}}</div>
      <div class="muted">{{.Company.Phone}} · {{.Company.Email}}</div>
    </div>
    <div>
      <div><strong>Receipt {{.ReceiptNumber}}</strong></div>
      <div class="muted">Order {{.Order.OrderNumber}}</div>
      <div class="muted">{{.IssuedOn}}</div>
    </div>
  </div>

  <div>
    <strong>Deliver to</strong><br>
    {{.Order.ShippingAddress.FullName}}<br>
    {{.Order.ShippingAddress.Street}}, {{.Order.ShippingAddress.City}},
    {{.Order.ShippingAddress.State}}<br>
    {{.Order.ShippingAddress.Phone}}
  </div>

  <table>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Unit</th><th class="num">Total</th></tr>
    {{range .Order.Items}}
    <tr>
      <td>{{.Name}}{{if .VariantLabel}} ({{.VariantLabel}}){{end}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{money .Price}}</td>
      <td class="num">{{money .TotalPrice}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{money .Order.Subtotal}}</td></tr>
    {{if .Order.Discount}}<tr><td>Discount</td><td class="num">-{{money .Order.Discount}}</td></tr>{{end}}
    <tr><td>Delivery ({{.Order.DeliveryType}})</td><td class="num">{{money .Order.DeliveryFee}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{money .Order.TotalAmount}}</td></tr>
  </table>

  <p class="muted">Paid via {{.Order.PaymentMethod}}. Thank you for shopping with us.</p>
</body>
</html>`
