package authorization

import "github.com/merchhaus/backoffice/internal/roles"

// Decision is the outcome of a single rule. Abstain passes control to the
// next rule in the chain; Allow and Deny are final.
type Decision int

const (
	Abstain Decision = iota
	Allow
	Deny
)

// Subject identifies the authenticated caller.
type Subject struct {
	UserID    string
	CompanyID string
	Role      string
}

// Request bundles everything a resolution needs. The caller loads the
// permission rows up front so rules stay free of I/O.
type Request struct {
	Method  string
	Module  string
	Subject Subject
	Target  Ownership

	// IsAPIKey marks key-authenticated requests; Grants then holds the
	// key's per-module permissions and the session rules never run.
	IsAPIKey bool
	Grants   []APIKeyEntry

	// Defaults are the system-wide role/module rows (no company).
	// Overrides are the rows scoped to the subject's company.
	Defaults  []Entry
	Overrides []Entry
}

type rule func(Request) Decision

// chain is evaluated in order; the first non-Abstain decision wins.
var chain = []rule{
	apiKeyRule,
	ownerOrAdminRule,
	companyAdminRule,
	companyCascadeRule,
}

// Resolve reports whether the request is permitted. An exhausted chain
// denies.
func Resolve(req Request) bool {
	for _, r := range chain {
		switch r(req) {
		case Allow:
			return true
		case Deny:
			return false
		}
	}
	return false
}

// apiKeyRule decides key-authenticated requests from the key's grants alone.
// A key with no enabled grant for the module is denied outright.
func apiKeyRule(req Request) Decision {
	if !req.IsAPIKey {
		return Abstain
	}
	for _, g := range req.Grants {
		if g.Module == req.Module && g.IsEnabled {
			if g.Permission.Allows(req.Method) {
				return Allow
			}
			return Deny
		}
	}
	return Deny
}

// ownerOrAdminRule grants admins everything, and owners their own records.
func ownerOrAdminRule(req Request) Decision {
	if req.Subject.Role == roles.Admin {
		return Allow
	}
	if req.Target.OwnerID != "" && req.Target.OwnerID == req.Subject.UserID {
		return Allow
	}
	return Abstain
}

// companyAdminRule lets a company administrator through when a system
// default row for that role grants the method. Anything else falls to the
// cascade.
func companyAdminRule(req Request) Decision {
	if req.Subject.Role != roles.CompanyAdministrator {
		return Abstain
	}
	if e, ok := match(req.Defaults, req, nil); ok && e.Permission.Allows(req.Method) {
		return Allow
	}
	return Abstain
}

// companyCascadeRule resolves against the permission rows: a company override
// for the subject's role and module governs exclusively when present,
// otherwise the system default does. Subjects without a company and modules
// with no matching row are denied.
func companyCascadeRule(req Request) Decision {
	if req.Subject.CompanyID == "" {
		return Deny
	}

	if e, ok := match(req.Overrides, req, &req.Subject.CompanyID); ok {
		return decide(e.Permission, req.Method)
	}
	if e, ok := match(req.Defaults, req, nil); ok {
		return decide(e.Permission, req.Method)
	}
	return Deny
}

func match(entries []Entry, req Request, companyID *string) (Entry, bool) {
	for _, e := range entries {
		if e.Role != req.Subject.Role || e.Module != req.Module {
			continue
		}
		if companyID == nil {
			if e.CompanyID == nil {
				return e, true
			}
			continue
		}
		if e.CompanyID != nil && *e.CompanyID == *companyID {
			return e, true
		}
	}
	return Entry{}, false
}

func decide(p Permission, method string) Decision {
	if p.Allows(method) {
		return Allow
	}
	return Deny
}
