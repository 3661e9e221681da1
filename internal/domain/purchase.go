package domain

import "time"

// Purchase is a supplier purchase order. Every product on a purchase has the
// same supplier as the purchase itself; the lines carry no quantity because
// a delivered replenishment always adds the product's own reorder quantity.
type Purchase struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID   int64          `gorm:"index;not null" json:"supplier_id"`
	Supplier     Supplier       `gorm:"foreignKey:SupplierID" json:"supplier"`
	PurchaseDate Day            `gorm:"column:purchase_date;index;not null" json:"purchase_date"`
	ArrivalDate  NullableDay    `gorm:"column:arrival_date" json:"arrival_date"`
	Items        []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PurchaseItem is one distinct product on a purchase order.
type PurchaseItem struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseID int64   `gorm:"index:idx_purchase_product,unique;not null" json:"purchase_id"`
	ProductID  int64   `gorm:"index:idx_purchase_product,unique;not null" json:"product_id"`
	Product    Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// Status reports PENDING or DELIVERED from the arrival date.
func (p Purchase) Status() string {
	if p.ArrivalDate.Valid {
		return "DELIVERED"
	}
	return "PENDING"
}
