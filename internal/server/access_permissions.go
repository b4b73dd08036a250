package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
)

// ListAccessPermissions returns the default matrix, or a company's override
// set when companyId is given.
func (s *Server) ListAccessPermissions(c *gin.Context) {
	companyID := c.Query("companyId")

	var (
		perms []permdomain.AccessPermission
		err   error
	)
	if companyID == "" {
		perms, err = s.permSvc.ListDefaults(c.Request.Context())
	} else {
		perms, err = s.permSvc.ListForCompany(c.Request.Context(), companyID)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "accessPermissions", perms)
}

func (s *Server) UpsertAccessPermission(c *gin.Context) {
	var req permdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	perm, created, err := s.permSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(c, status, "accessPermission", perm)
}

func (s *Server) DeleteAccessPermission(c *gin.Context) {
	if err := s.permSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "deleted", true)
}
