// Package appmodules enumerates the functional areas access permissions scope over.
package appmodules

const (
	AccessPermissions = "accessPermissions"
	Campaigns         = "campaigns"
	CampaignAddresses = "campaignAddresses"
	Companies         = "companies"
	Orders            = "orders"
	PendingOrders     = "pendingOrders"
	PrivacyRules      = "privacyRules"
	Users             = "users"
	APIKeys           = "apiKeys"
)

var All = []string{
	AccessPermissions,
	Campaigns,
	CampaignAddresses,
	Companies,
	Orders,
	PendingOrders,
	PrivacyRules,
	Users,
	APIKeys,
}

func IsValid(module string) bool {
	for _, m := range All {
		if m == module {
			return true
		}
	}
	return false
}
