package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Campaign is a gifting campaign a company runs. Orders reference the
// campaign they draw quota from.
type Campaign struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	CompanyID   *snowflake.ID  `gorm:"column:company_id" json:"companyId"`
	OwnerID     *snowflake.ID  `gorm:"column:owner_id" json:"ownerId"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	Type        string         `gorm:"type:text;not null" json:"type"`
	Environment string         `gorm:"type:text;not null" json:"environment"`
	IsHidden    bool           `gorm:"column:is_hidden;not null;default:false" json:"isHidden"`
	StartDate   *time.Time     `gorm:"column:start_date" json:"startDate"`
	EndDate     *time.Time     `gorm:"column:end_date" json:"endDate"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c *Campaign) OwnerIDString() string {
	if c.OwnerID == nil {
		return ""
	}
	return c.OwnerID.String()
}

func (c *Campaign) CompanyIDString() string {
	if c.CompanyID == nil {
		return ""
	}
	return c.CompanyID.String()
}

// ActiveAt reports whether the campaign accepts orders at the given time.
// Open-ended campaigns have no start or end date.
func (c *Campaign) ActiveAt(t time.Time) bool {
	if c.StartDate != nil && t.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && t.After(*c.EndDate) {
		return false
	}
	return true
}

// CampaignOrderLimit caps how many orders a campaign accepts. One row per
// campaign.
type CampaignOrderLimit struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	CampaignID snowflake.ID   `gorm:"column:campaign_id;not null;uniqueIndex" json:"campaignId"`
	OrderLimit int            `gorm:"column:order_limit;not null;default:0" json:"orderLimit"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CampaignOrderLimit) TableName() string { return "campaign_order_limits" }

// CampaignQuota is maintained by the quota worker; total_ordered reflects
// the last recalculation.
type CampaignQuota struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	CampaignID   snowflake.ID `gorm:"column:campaign_id;not null;uniqueIndex" json:"campaignId"`
	TotalOrdered int          `gorm:"column:total_ordered;not null;default:0" json:"totalOrdered"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (CampaignQuota) TableName() string { return "campaign_quotas" }

// CampaignAddress is a predefined recipient attached to a campaign.
type CampaignAddress struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	CampaignID snowflake.ID   `gorm:"column:campaign_id;not null" json:"campaignId"`
	FirstName  string         `gorm:"type:text;not null" json:"firstName"`
	LastName   string         `gorm:"type:text;not null" json:"lastName"`
	Email      string         `gorm:"type:text;not null" json:"email"`
	Place      string         `gorm:"type:text;not null" json:"place"`
	Street     string         `gorm:"type:text;not null" json:"street"`
	ZipCode    string         `gorm:"column:zip_code;type:text;not null" json:"zipCode"`
	Country    string         `gorm:"type:text;not null" json:"country"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CampaignAddress) TableName() string { return "campaign_addresses" }
