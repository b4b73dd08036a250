// Package roles enumerates the user roles known to the back office.
package roles

const (
	User                 = "User"
	Employee             = "Employee"
	CompanyAdministrator = "CompanyAdministrator"
	CampaignManager      = "CampaignManager"
	Admin                = "Admin"
)

// All lists every assignable role.
var All = []string{User, Employee, CompanyAdministrator, CampaignManager, Admin}

func IsValid(role string) bool {
	for _, r := range All {
		if r == role {
			return true
		}
	}
	return false
}
