package domain

import "time"

// SysConfig is a runtime-tunable settings row.
type SysConfig struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Sort      int       `gorm:"default:0" json:"sort"`
	Type      string    `gorm:"size:64;index;not null" json:"type"`
	Name      string    `gorm:"size:128;index;not null" json:"name"`
	Value     string    `gorm:"size:255" json:"value"`
	Remark    string    `gorm:"size:255" json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
