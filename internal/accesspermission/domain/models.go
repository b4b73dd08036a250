package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// AccessPermission is one role/module access level. Rows without a company
// are system defaults; rows with a company override the default for that
// tenant only.
type AccessPermission struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	Role       string         `gorm:"type:text;not null" json:"role"`
	Module     string         `gorm:"type:text;not null" json:"module"`
	Permission string         `gorm:"type:text;not null" json:"permission"`
	CompanyID  *snowflake.ID  `gorm:"column:company_id" json:"companyId"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AccessPermission) TableName() string { return "access_permissions" }

// IsDefault reports whether the row is a system default rather than a
// company override.
func (p *AccessPermission) IsDefault() bool { return p.CompanyID == nil }
