// Package seed provisions the baseline data a fresh install needs: the
// system-default access permission matrix.
package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
	"github.com/merchhaus/backoffice/internal/appmodules"
	"github.com/merchhaus/backoffice/internal/authorization"
	"github.com/merchhaus/backoffice/internal/roles"
	"gorm.io/gorm"
)

type defaultRule struct {
	role       string
	module     string
	permission authorization.Permission
}

// defaultMatrix is the out-of-the-box permission set. Admin and
// CompanyAdministrator are resolved before the row lookup, so no rows are
// seeded for them.
var defaultMatrix = []defaultRule{
	{roles.User, appmodules.Campaigns, authorization.Read},
	{roles.User, appmodules.Orders, authorization.Read},
	{roles.User, appmodules.PendingOrders, authorization.Read},

	{roles.Employee, appmodules.Campaigns, authorization.Read},
	{roles.Employee, appmodules.Companies, authorization.Read},
	{roles.Employee, appmodules.Orders, authorization.ReadWrite},
	{roles.Employee, appmodules.PendingOrders, authorization.ReadWrite},
	{roles.Employee, appmodules.CampaignAddresses, authorization.ReadWrite},

	{roles.CampaignManager, appmodules.Campaigns, authorization.ReadWrite},
	{roles.CampaignManager, appmodules.CampaignAddresses, authorization.ReadWrite},
	{roles.CampaignManager, appmodules.Companies, authorization.Read},
	{roles.CampaignManager, appmodules.Orders, authorization.ReadWrite},
	{roles.CampaignManager, appmodules.PendingOrders, authorization.ReadWrite},
}

// EnsureDefaultAccessPermissions inserts the default matrix when no default
// rows exist yet. Installs that have customized their defaults are left
// untouched.
func EnsureDefaultAccessPermissions(conn *gorm.DB) error {
	var total int64
	err := conn.Model(&permdomain.AccessPermission{}).
		Where("company_id IS NULL").
		Count(&total).Error
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rows := make([]permdomain.AccessPermission, 0, len(defaultMatrix))
	for _, rule := range defaultMatrix {
		rows = append(rows, permdomain.AccessPermission{
			ID:         node.Generate(),
			Role:       rule.role,
			Module:     rule.module,
			Permission: string(rule.permission),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return conn.Create(&rows).Error
}
