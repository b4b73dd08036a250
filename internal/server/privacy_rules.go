package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	privacydomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
)

func (s *Server) ListPrivacyRules(c *gin.Context) {
	rules, err := s.privacySvc.ListForCompany(c.Request.Context(), c.Query("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "privacyRules", rules)
}

func (s *Server) CreatePrivacyRule(c *gin.Context) {
	var req privacydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	rule, err := s.privacySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "privacyRule", rule)
}

func (s *Server) UpdatePrivacyRule(c *gin.Context) {
	var req privacydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	rule, err := s.privacySvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "privacyRule", rule)
}

func (s *Server) DeletePrivacyRule(c *gin.Context) {
	if err := s.privacySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "deleted", true)
}
