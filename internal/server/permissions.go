package server

import (
	"github.com/gin-gonic/gin"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
	"github.com/merchhaus/backoffice/internal/authorization"
)

// CheckPermissions gates a route on the permission cascade for the given
// module. It must run after Authenticated and after any ownership loader.
func (s *Server) CheckPermissions(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := authorization.Request{
			Method: c.Request.Method,
			Module: module,
			Target: targetOwnership(c),
		}

		if _, grants, ok := currentAPIKey(c); ok {
			req.IsAPIKey = true
			req.Grants = make([]authorization.APIKeyEntry, 0, len(grants))
			for _, g := range grants {
				req.Grants = append(req.Grants, authorization.APIKeyEntry{
					Module:     g.Module,
					Permission: authorization.Permission(g.Permission),
					IsEnabled:  g.IsEnabled,
				})
			}

			if !authorization.Resolve(req) {
				AbortWithError(c, ErrForbidden)
				return
			}
			c.Next()
			return
		}

		user, ok := currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		req.Subject = authorization.Subject{
			UserID:    user.ID.String(),
			CompanyID: user.CompanyIDString(),
			Role:      user.Role,
		}

		defaults, overrides, err := s.permSvc.RowsForRole(c.Request.Context(), user.Role, user.CompanyIDString())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		req.Defaults = toEntries(defaults)
		req.Overrides = toEntries(overrides)

		if !authorization.Resolve(req) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func toEntries(rows []permdomain.AccessPermission) []authorization.Entry {
	entries := make([]authorization.Entry, 0, len(rows))
	for _, row := range rows {
		entry := authorization.Entry{
			Role:       row.Role,
			Module:     row.Module,
			Permission: authorization.Permission(row.Permission),
		}
		if row.CompanyID != nil {
			companyID := row.CompanyID.String()
			entry.CompanyID = &companyID
		}
		entries = append(entries, entry)
	}
	return entries
}
