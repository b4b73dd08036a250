package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// APIKey stores hashed machine credentials. Authorization for a key comes
// from its APIKeyPermission rows, never from any user's role.
type APIKey struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"type:text;not null" json:"name"`
	KeyHash    string         `gorm:"column:key_hash;type:text;not null;uniqueIndex" json:"-"`
	Scopes     pq.StringArray `gorm:"type:text[];not null" json:"scopes"`
	OwnerID    *snowflake.ID  `gorm:"column:owner_id" json:"ownerId"`
	CompanyID  *snowflake.ID  `gorm:"column:company_id" json:"companyId"`
	LastUsedAt *time.Time     `gorm:"column:last_used_at" json:"lastUsedAt"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (APIKey) TableName() string { return "api_keys" }

// APIKeyPermission is one per-module grant attached to a key.
type APIKeyPermission struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	APIKeyID   snowflake.ID `gorm:"column:api_key_id;not null" json:"apiKeyId"`
	Module     string       `gorm:"type:text;not null" json:"module"`
	Permission string       `gorm:"type:text;not null" json:"permission"`
	IsEnabled  bool         `gorm:"column:is_enabled;not null;default:true" json:"isEnabled"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (APIKeyPermission) TableName() string { return "api_key_permissions" }
