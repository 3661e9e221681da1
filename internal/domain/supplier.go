package domain

import "time"

// Supplier represents a product supplier. Suppliers are immutable once
// created; lead time is measured in days.
type Supplier struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	LeadTime  float64   `gorm:"column:lead_time" json:"lead_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
