package domain

import "time"

// Order is a customer sales order. An absent arrival date is the only
// signal that the order is still pending.
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64       `gorm:"index;not null" json:"customer_id"`
	Customer    Customer    `gorm:"foreignKey:CustomerID" json:"customer"`
	OrderDate   Day         `gorm:"column:order_date;index;not null" json:"order_date"`
	ArrivalDate NullableDay `gorm:"column:arrival_date" json:"arrival_date"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	// TotalCost is derived from the item lines, never persisted.
	TotalCost float64   `gorm:"-" json:"total_cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is one product line on an order. Quantity replaces the
// repeated-entry multiset of earlier designs.
type OrderItem struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64   `gorm:"index:idx_order_product,unique;not null" json:"order_id"`
	ProductID int64   `gorm:"index:idx_order_product,unique;not null" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Status reports PENDING or DELIVERED from the arrival date.
func (o Order) Status() string {
	if o.ArrivalDate.Valid {
		return "DELIVERED"
	}
	return "PENDING"
}

// SumCost totals unit price times quantity across the order lines.
// Product must be preloaded on the items.
func (o Order) SumCost() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Units counts how many units of the given product the order contains.
func (o Order) Units(productID int64) int {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}
