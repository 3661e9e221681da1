package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/openims/ims-server/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Builder renders the HTML reports from typed view data. All dates are
// pre-rendered dd-MM-yyyy and money values are formatted to two decimals
// before they reach a template.
type Builder struct {
	tpl *template.Template
}

func NewBuilder() (*Builder, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Builder{tpl: tpl}, nil
}

func (b *Builder) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := b.tpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("render %s report: %w", name, err)
	}
	return buf.String(), nil
}

// ProductRow is one product line on a report.
type ProductRow struct {
	Name     string
	Sku      int
	Price    string
	Quantity int
}

// OrderRow is one customer order on a summary report.
type OrderRow struct {
	ID          int64
	Customer    string
	OrderDate   string
	ArrivalDate string
	Status      string
	TotalCost   string
	Lines       []ProductRow
}

// PurchaseRow is one supplier purchase on a summary report.
type PurchaseRow struct {
	ID           int64
	Supplier     string
	PurchaseDate string
	ArrivalDate  string
	Status       string
	Lines        []ProductRow
}

// MovementRow is one ledger line on the stock-movement report.
type MovementRow struct {
	SourceID     int64
	Direction    string
	Date         string
	Counterparty string
	Product      string
	Sku          int
	Quantity     int
}

type orderSummaryData struct {
	TodaysDate string
	StartDate  string
	EndDate    string
	Orders     []OrderRow
}

type purchaseSummaryData struct {
	TodaysDate string
	StartDate  string
	EndDate    string
	Purchases  []PurchaseRow
}

type orderInvoiceData struct {
	OrderNumber int64
	OrderDate   string
	Status      string
	Customer    string
	HouseNumber int
	Line1       string
	Line2       string
	City        string
	County      string
	PostCode    string
	Lines       []ProductRow
	TotalCost   string
}

type supplierInvoiceData struct {
	ID           int64
	Supplier     string
	PurchaseDate string
	ArrivalDate  string
	Status       string
	Lines        []ProductRow
}

type stockMovementData struct {
	StartDate string
	EndDate   string
	Movements []MovementRow
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func orderRow(o domain.Order) OrderRow {
	row := OrderRow{
		ID:          o.ID,
		Customer:    o.Customer.FullName(),
		OrderDate:   o.OrderDate.String(),
		ArrivalDate: o.ArrivalDate.String(),
		Status:      o.Status(),
		TotalCost:   money(o.SumCost()),
	}
	for _, item := range o.Items {
		row.Lines = append(row.Lines, ProductRow{
			Name:     item.Product.Name,
			Sku:      item.Product.Sku,
			Price:    money(item.Product.Price),
			Quantity: item.Quantity,
		})
	}
	return row
}

func purchaseRow(p domain.Purchase) PurchaseRow {
	row := PurchaseRow{
		ID:           p.ID,
		Supplier:     p.Supplier.Name,
		PurchaseDate: p.PurchaseDate.String(),
		ArrivalDate:  p.ArrivalDate.String(),
		Status:       p.Status(),
		Lines:        nil,
	}
	for _, item := range p.Items {
		row.Lines = append(row.Lines, ProductRow{
			Name:     item.Product.Name,
			Sku:      item.Product.Sku,
			Price:    money(item.Product.Price),
			Quantity: item.Product.ReorderQuantity,
		})
	}
	return row
}

// OrderSummary renders the order summary report for the given period.
func (b *Builder) OrderSummary(orders []domain.Order, start, end, today domain.Day) (string, error) {
	data := orderSummaryData{
		TodaysDate: today.String(),
		StartDate:  start.String(),
		EndDate:    end.String(),
	}
	for _, o := range orders {
		data.Orders = append(data.Orders, orderRow(o))
	}
	return b.render("order-summary", data)
}

// PurchaseSummary renders the purchase order summary report.
func (b *Builder) PurchaseSummary(purchases []domain.Purchase, start, end, today domain.Day) (string, error) {
	data := purchaseSummaryData{
		TodaysDate: today.String(),
		StartDate:  start.String(),
		EndDate:    end.String(),
	}
	for _, p := range purchases {
		data.Purchases = append(data.Purchases, purchaseRow(p))
	}
	return b.render("purchase-summary", data)
}

// OrderInvoice renders the invoice for a single customer order.
func (b *Builder) OrderInvoice(o domain.Order) (string, error) {
	row := orderRow(o)
	data := orderInvoiceData{
		OrderNumber: o.ID,
		OrderDate:   row.OrderDate,
		Status:      row.Status,
		Customer:    row.Customer,
		HouseNumber: o.Customer.HouseNumber,
		Line1:       o.Customer.Line1,
		Line2:       o.Customer.Line2,
		City:        o.Customer.City,
		County:      o.Customer.County,
		PostCode:    o.Customer.PostCode,
		Lines:       row.Lines,
		TotalCost:   row.TotalCost,
	}
	return b.render("order-invoice", data)
}

// SupplierInvoice renders the invoice for a single supplier purchase order.
func (b *Builder) SupplierInvoice(p domain.Purchase) (string, error) {
	row := purchaseRow(p)
	data := supplierInvoiceData{
		ID:           p.ID,
		Supplier:     row.Supplier,
		PurchaseDate: row.PurchaseDate,
		ArrivalDate:  row.ArrivalDate,
		Status:       row.Status,
		Lines:        row.Lines,
	}
	return b.render("supplier-invoice", data)
}

// StockMovementReport renders the merged inbound/outbound ledger.
func (b *Builder) StockMovementReport(movements []domain.StockMovement, start, end domain.Day) (string, error) {
	data := stockMovementData{
		StartDate: start.String(),
		EndDate:   end.String(),
	}
	for _, m := range movements {
		direction := "OUT"
		if m.Inbound {
			direction = "IN"
		}
		data.Movements = append(data.Movements, MovementRow{
			SourceID:     m.SourceID,
			Direction:    direction,
			Date:         m.Date.String(),
			Counterparty: m.Counterparty,
			Product:      m.Product.Name,
			Sku:          m.Product.Sku,
			Quantity:     m.Quantity,
		})
	}
	return b.render("stock-movement", data)
}
