package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// User is an authenticated account. Ghost users are placeholder accounts
// created for order imports and cannot log in.
type User struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	FirstName    string         `gorm:"type:text;not null" json:"firstName"`
	LastName     string         `gorm:"type:text;not null" json:"lastName"`
	Email        string         `gorm:"type:text;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role         string         `gorm:"type:text;not null;default:'User'" json:"role"`
	CompanyID    *snowflake.ID  `gorm:"column:company_id" json:"companyId"`
	IsGhost      bool           `gorm:"column:is_ghost;not null;default:false" json:"isGhost"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// FullName joins first and last name, tolerating either being empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CompanyIDString renders the company reference for permission checks.
// Empty when the user has no company.
func (u *User) CompanyIDString() string {
	if u.CompanyID == nil {
		return ""
	}
	return u.CompanyID.String()
}
