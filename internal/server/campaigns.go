package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	"github.com/merchhaus/backoffice/internal/roles"
)

func (s *Server) ListCampaigns(c *gin.Context) {
	var req campaigndomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	// Non-admins only ever see their own company's campaigns.
	if user, ok := currentUser(c); ok && user.Role != roles.Admin {
		req.CompanyID = user.CompanyIDString()
	}

	views, meta, err := s.campaignSvc.ListForCompany(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, "campaigns", views, meta)
}

func (s *Server) UpsertCampaign(c *gin.Context) {
	var req campaigndomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	campaign, created, err := s.campaignSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(c, status, "campaign", campaign)
}

func (s *Server) GetCampaign(c *gin.Context) {
	campaign, err := s.campaignSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "campaign", campaign)
}

func (s *Server) UpdateCampaign(c *gin.Context) {
	var req campaigndomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	campaign, err := s.campaignSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "campaign", campaign)
}

func (s *Server) DeleteCampaign(c *gin.Context) {
	if err := s.campaignSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "deleted", true)
}

type orderLimitRequest struct {
	OrderLimit int `json:"orderLimit" binding:"gte=0"`
}

func (s *Server) SetCampaignOrderLimit(c *gin.Context) {
	var req orderLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	limit, created, err := s.campaignSvc.SetOrderLimit(c.Request.Context(), c.Param("id"), req.OrderLimit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(c, status, "orderLimit", limit)
}

func (s *Server) ListCampaignAddresses(c *gin.Context) {
	addresses, err := s.campaignSvc.ListAddresses(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "addresses", addresses)
}

func (s *Server) AddCampaignAddress(c *gin.Context) {
	var req campaigndomain.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	address, err := s.campaignSvc.AddAddress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "address", address)
}

func (s *Server) DeleteCampaignAddress(c *gin.Context) {
	if err := s.campaignSvc.DeleteAddress(c.Request.Context(), c.Param("id"), c.Param("addressId")); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "deleted", true)
}
