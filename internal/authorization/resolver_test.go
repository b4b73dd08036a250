package authorization

import (
	"net/http"
	"testing"

	"github.com/merchhaus/backoffice/internal/appmodules"
	"github.com/merchhaus/backoffice/internal/roles"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestPermissionAllows(t *testing.T) {
	assert.True(t, Read.Allows(http.MethodGet))
	assert.False(t, Read.Allows(http.MethodPost))
	assert.False(t, Read.Allows(http.MethodDelete))

	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete} {
		assert.True(t, ReadWrite.Allows(m), m)
	}

	assert.False(t, NoAccess.Allows(http.MethodGet))
	assert.False(t, NoAccess.Allows(http.MethodDelete))
}

func TestAPIKeyShortCircuit(t *testing.T) {
	base := Request{
		Method:   http.MethodGet,
		Module:   appmodules.Orders,
		IsAPIKey: true,
		// An admin subject must not rescue a key without grants.
		Subject: Subject{UserID: "u1", Role: roles.Admin},
	}

	t.Run("no grant for module denies", func(t *testing.T) {
		assert.False(t, Resolve(base))
	})

	t.Run("disabled grant denies", func(t *testing.T) {
		req := base
		req.Grants = []APIKeyEntry{{Module: appmodules.Orders, Permission: ReadWrite, IsEnabled: false}}
		assert.False(t, Resolve(req))
	})

	t.Run("enabled grant follows its level", func(t *testing.T) {
		req := base
		req.Grants = []APIKeyEntry{{Module: appmodules.Orders, Permission: Read, IsEnabled: true}}
		assert.True(t, Resolve(req))

		req.Method = http.MethodPost
		assert.False(t, Resolve(req))
	})
}

func TestAdminAlwaysAllowed(t *testing.T) {
	req := Request{
		Method:  http.MethodDelete,
		Module:  appmodules.Campaigns,
		Subject: Subject{UserID: "u1", Role: roles.Admin},
		Target:  Ownership{OwnerID: "someone-else", CompanyID: "c99"},
	}
	assert.True(t, Resolve(req))
}

func TestOwnerAllowedOnOwnRecord(t *testing.T) {
	req := Request{
		Method:  http.MethodPatch,
		Module:  appmodules.PendingOrders,
		Subject: Subject{UserID: "u1", Role: roles.User, CompanyID: "c1"},
		Target:  Ownership{OwnerID: "u1", CompanyID: "c1"},
	}
	assert.True(t, Resolve(req))

	req.Target.OwnerID = "u2"
	assert.False(t, Resolve(req))
}

func TestEmptyOwnerNeverMatchesEmptySubject(t *testing.T) {
	req := Request{
		Method:  http.MethodGet,
		Module:  appmodules.Orders,
		Subject: Subject{UserID: "", Role: roles.User},
		Target:  Ownership{OwnerID: ""},
	}
	assert.False(t, Resolve(req))
}

func TestCompanyAdministratorDefaults(t *testing.T) {
	sub := Subject{UserID: "u1", Role: roles.CompanyAdministrator, CompanyID: "c1"}

	t.Run("no permission rows denies", func(t *testing.T) {
		req := Request{Method: http.MethodDelete, Module: appmodules.Orders, Subject: sub, Target: Ownership{CompanyID: "c1"}}
		assert.False(t, Resolve(req))
	})

	t.Run("granting default allows", func(t *testing.T) {
		req := Request{
			Method:   http.MethodDelete,
			Module:   appmodules.Orders,
			Subject:  sub,
			Target:   Ownership{OwnerID: "u2", CompanyID: "c1"},
			Defaults: []Entry{{Role: roles.CompanyAdministrator, Module: appmodules.Orders, Permission: ReadWrite}},
		}
		assert.True(t, Resolve(req))
	})

	t.Run("granting default allows on foreign company record", func(t *testing.T) {
		req := Request{
			Method:   http.MethodGet,
			Module:   appmodules.Orders,
			Subject:  sub,
			Target:   Ownership{OwnerID: "u9", CompanyID: "c2"},
			Defaults: []Entry{{Role: roles.CompanyAdministrator, Module: appmodules.Orders, Permission: Read}},
		}
		assert.True(t, Resolve(req))
	})

	t.Run("default below method falls to cascade", func(t *testing.T) {
		req := Request{
			Method:   http.MethodDelete,
			Module:   appmodules.Orders,
			Subject:  sub,
			Defaults: []Entry{{Role: roles.CompanyAdministrator, Module: appmodules.Orders, Permission: Read}},
		}
		assert.False(t, Resolve(req))

		// An override may still grant what the default withholds.
		req.Overrides = []Entry{{Role: roles.CompanyAdministrator, Module: appmodules.Orders, Permission: ReadWrite, CompanyID: strptr("c1")}}
		assert.True(t, Resolve(req))
	})
}

func TestCompanyCascade(t *testing.T) {
	sub := Subject{UserID: "u1", Role: roles.Employee, CompanyID: "c1"}
	req := Request{
		Method:  http.MethodPost,
		Module:  appmodules.PendingOrders,
		Subject: sub,
		Target:  Ownership{CompanyID: "c1"},
	}

	t.Run("default governs when no override", func(t *testing.T) {
		r := req
		r.Defaults = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: ReadWrite}}
		assert.True(t, Resolve(r))
	})

	t.Run("override governs exclusively", func(t *testing.T) {
		r := req
		r.Defaults = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: ReadWrite}}
		r.Overrides = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: Read, CompanyID: strptr("c1")}}
		assert.False(t, Resolve(r))

		r.Method = http.MethodGet
		assert.True(t, Resolve(r))
	})

	t.Run("override can grant above a missing default", func(t *testing.T) {
		r := req
		r.Overrides = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: ReadWrite, CompanyID: strptr("c1")}}
		assert.True(t, Resolve(r))
	})

	t.Run("NoAccess override denies even GET", func(t *testing.T) {
		r := req
		r.Method = http.MethodGet
		r.Defaults = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: ReadWrite}}
		r.Overrides = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: NoAccess, CompanyID: strptr("c1")}}
		assert.False(t, Resolve(r))
	})

	t.Run("no matching row denies", func(t *testing.T) {
		assert.False(t, Resolve(req))
	})

	t.Run("subject without company denied", func(t *testing.T) {
		r := req
		r.Subject.CompanyID = ""
		r.Target = Ownership{}
		r.Defaults = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: ReadWrite}}
		assert.False(t, Resolve(r))
	})

	t.Run("rows decide regardless of target company", func(t *testing.T) {
		r := req
		r.Target.CompanyID = "c2"
		r.Defaults = []Entry{{Role: roles.Employee, Module: appmodules.PendingOrders, Permission: ReadWrite}}
		assert.True(t, Resolve(r))
	})
}

func TestRowsForOtherRoleOrModuleIgnored(t *testing.T) {
	req := Request{
		Method:  http.MethodGet,
		Module:  appmodules.Orders,
		Subject: Subject{UserID: "u1", Role: roles.User, CompanyID: "c1"},
		Defaults: []Entry{
			{Role: roles.Employee, Module: appmodules.Orders, Permission: ReadWrite},
			{Role: roles.User, Module: appmodules.Campaigns, Permission: ReadWrite},
		},
	}
	assert.False(t, Resolve(req))
}
