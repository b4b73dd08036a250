// Package authorization resolves whether an authenticated caller may perform
// an HTTP method against a module. Resolution is a pure function over the
// caller's identity, the target record's ownership, and the permission rows
// loaded for the caller's company.
package authorization

import "net/http"

// Permission is the access level stored on permission rows.
type Permission string

const (
	Read      Permission = "Read"
	ReadWrite Permission = "ReadWrite"
	NoAccess  Permission = "NoAccess"
)

// Allows reports whether the level grants the given HTTP method.
func (p Permission) Allows(method string) bool {
	switch p {
	case Read:
		return method == http.MethodGet
	case ReadWrite:
		switch method {
		case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
			return true
		}
	}
	return false
}

func (p Permission) Valid() bool {
	return p == Read || p == ReadWrite || p == NoAccess
}

// Entry is one role/module permission row, either a system default
// (CompanyID nil) or a company override.
type Entry struct {
	Role       string
	Module     string
	Permission Permission
	CompanyID  *string
}

// APIKeyEntry is a per-module grant attached to an API key.
type APIKeyEntry struct {
	Module     string
	Permission Permission
	IsEnabled  bool
}

// Ownership carries the normalized owner and company of the record a request
// targets. Either field may be empty when the record has no such association.
type Ownership struct {
	OwnerID   string
	CompanyID string
}
