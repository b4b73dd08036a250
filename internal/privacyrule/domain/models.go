package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// PrivacyRule enables address redaction for a role within a company. Only
// rules on the orders module are consulted today; the module column keeps
// the door open for other surfaces.
type PrivacyRule struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID   `gorm:"column:company_id;not null" json:"companyId"`
	Role      string         `gorm:"type:text;not null" json:"role"`
	Module    string         `gorm:"type:text;not null" json:"module"`
	IsEnabled bool           `gorm:"column:is_enabled;not null;default:true" json:"isEnabled"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PrivacyRule) TableName() string { return "privacy_rules" }
