package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/merchhaus/backoffice/internal/apikey/domain"
)

func (s *Server) ListAPIKeys(c *gin.Context) {
	keys, err := s.apiKeySvc.List(c.Request.Context(), c.Query("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "apiKeys", keys)
}

func (s *Server) CreateAPIKey(c *gin.Context) {
	var req apikeydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	secret, err := s.apiKeySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "apiKey", secret)
}

func (s *Server) RevokeAPIKey(c *gin.Context) {
	if err := s.apiKeySvc.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "revoked", true)
}
