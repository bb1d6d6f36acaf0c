package pdf

import (
	"context"
	"fmt"

	clientdomain "github.com/facturio/facturio/internal/client/domain"
	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	projectdomain "github.com/facturio/facturio/internal/project/domain"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// InvoiceData is everything the renderer needs, already resolved by the
// caller so the renderer stays free of storage concerns.
type InvoiceData struct {
	Invoice  invoicedomain.Invoice
	Client   clientdomain.Client
	Project  projectdomain.Project
	Settings settingsdomain.Settings
}

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

func (r *renderer) RenderInvoice(ctx context.Context, data InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	invoice := data.Invoice
	// The invoice carries the currency it was issued in. Rows predating the
	// snapshot fall back to the owner's current settings.
	symbol := invoice.Currency.Symbol
	if symbol == "" {
		symbol = data.Settings.Currency().Symbol
	}
	info := data.Settings.BusinessInfo.Data()

	m.AddRow(12,
		text.NewCol(12, "Invoice "+invoice.Number, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.Number, props.Text{Top: 0}),
			text.New("Date of issue: "+invoice.InvoiceDate.Format("2006-01-02"), props.Text{Top: 4}),
			text.New("Date due: "+dueDate(invoice), props.Text{Top: 8}),
			text.New("Status: "+string(invoice.Status), props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(40,
		col.New(4).Add(
			text.New("From", props.Text{Style: fontstyle.Bold}),
			text.New(info.Email, props.Text{Top: 5}),
			text.New(contactLine(info), props.Text{Top: 9}),
		),
		col.New(4).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(data.Client.Name, props.Text{Top: 5}),
			text.New(data.Client.Company, props.Text{Top: 9}),
			text.New(data.Client.Email, props.Text{Top: 13}),
		),
		col.New(4).Add(
			text.New("Project", props.Text{Style: fontstyle.Bold}),
			text.New(data.Project.Title, props.Text{Top: 5}),
			text.New(data.Project.Category, props.Text{Top: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items.Data() {
		m.AddRow(10,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, item.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(symbol, item.Rate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(symbol, item.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(symbol, invoice.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, fmt.Sprintf("Tax (%s%%)", invoice.TaxRate.String()), props.Text{Size: 9}),
		text.NewCol(2, money(symbol, invoice.TaxAmount), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(symbol, invoice.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if invoice.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, "Notes: "+invoice.Notes, props.Text{Size: 9, Top: 5}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

func dueDate(invoice invoicedomain.Invoice) string {
	if invoice.DueDate == nil {
		return "-"
	}
	return invoice.DueDate.Format("2006-01-02")
}

func contactLine(info settingsdomain.BusinessInfo) string {
	if info.Telephone != "" {
		return info.Telephone
	}
	return info.Website
}
