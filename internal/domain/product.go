package domain

import "time"

// Product is a stocked item. InventoryOnHand only rises through recorded
// delivery receipts; suspended products are excluded from reorder triggers
// but still appear in historical reports.
type Product struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"size:200;index;not null" json:"name"`
	Sku              int       `gorm:"uniqueIndex;not null" json:"sku"`
	Price            float64   `json:"price"`
	InventoryOnHand  int       `gorm:"column:inventory_on_hand;default:0" json:"inventory_on_hand"`
	ReorderThreshold int       `gorm:"column:reorder_threshold;default:0" json:"reorder_threshold"`
	ReorderQuantity  int       `gorm:"column:reorder_quantity;default:0" json:"reorder_quantity"`
	Suspended        bool      `gorm:"default:false" json:"suspended"`
	SupplierID       int64     `gorm:"index;not null" json:"supplier_id"`
	Supplier         Supplier  `gorm:"foreignKey:SupplierID" json:"supplier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
