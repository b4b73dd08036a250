package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Company is a tenant. The owner is the user account the company was
// registered under; most permission decisions hinge on membership rather
// than ownership.
type Company struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	OwnerID    *snowflake.ID  `gorm:"column:owner_id" json:"ownerId"`
	CustomerID string         `gorm:"column:customer_id;type:text" json:"customerId"`
	Name       string         `gorm:"type:text;not null" json:"name"`
	Suffix     string         `gorm:"type:text" json:"suffix"`
	Email      string         `gorm:"type:text" json:"email"`
	Phone      string         `gorm:"type:text" json:"phone"`
	VAT        string         `gorm:"column:vat;type:text" json:"vat"`
	Domain     string         `gorm:"type:text" json:"domain"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Company) TableName() string { return "companies" }

// OwnerIDString renders the owner reference for permission checks.
func (c *Company) OwnerIDString() string {
	if c.OwnerID == nil {
		return ""
	}
	return c.OwnerID.String()
}
