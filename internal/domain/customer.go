package domain

import (
	"strings"
	"time"
)

// Customer holds contact and delivery details for a buyer. The address is
// flattened onto the customer row; nothing queries addresses independently.
type Customer struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:20" json:"title"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name"`
	MiddleNames string    `gorm:"size:200" json:"middle_names"`
	LastName    string    `gorm:"size:100;not null" json:"last_name"`
	Email       string    `gorm:"size:200;index" json:"email"`
	PhoneNumber string    `gorm:"size:40" json:"phone_number"`
	HouseNumber int       `json:"house_number"`
	Line1       string    `gorm:"size:200" json:"line_1"`
	Line2       string    `gorm:"size:200" json:"line_2"`
	City        string    `gorm:"size:100" json:"city"`
	County      string    `gorm:"size:100" json:"county"`
	PostCode    string    `gorm:"size:20" json:"post_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName renders the customer as shown on reports and stock movements.
func (c Customer) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Title, c.FirstName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
