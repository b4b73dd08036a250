package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/merchhaus/backoffice/internal/authorization"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
)

// Ownership loaders resolve the record behind an :id route into the
// normalized owner/company pair the permission cascade compares against.
// They run between Authenticated and CheckPermissions.

func (s *Server) LoadPendingOrderTarget() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := s.findOrder(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		setTarget(c, authorization.Ownership{
			OwnerID:   order.OwnerIDString(),
			CompanyID: order.CompanyIDString(),
		})
		c.Next()
	}
}

func (s *Server) LoadCampaignTarget() gin.HandlerFunc {
	return func(c *gin.Context) {
		campaign, err := s.campaignSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		setTarget(c, authorization.Ownership{
			OwnerID:   campaign.OwnerIDString(),
			CompanyID: campaign.CompanyIDString(),
		})
		c.Next()
	}
}

func (s *Server) LoadCompanyTarget() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := snowflake.ParseString(c.Param("id"))
		if err != nil {
			AbortWithError(c, ErrForbidden)
			return
		}
		company, err := s.companySvc.Get(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		setTarget(c, authorization.Ownership{
			OwnerID:   company.OwnerIDString(),
			CompanyID: company.ID.String(),
		})
		c.Next()
	}
}

func (s *Server) LoadUserTarget() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := snowflake.ParseString(c.Param("id"))
		if err != nil {
			AbortWithError(c, ErrForbidden)
			return
		}
		user, err := s.userSvc.Get(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		setTarget(c, authorization.Ownership{
			OwnerID:   user.ID.String(),
			CompanyID: user.CompanyIDString(),
		})
		c.Next()
	}
}

// findOrder loads the order behind :id without redaction, for loaders and
// gates that need the raw record.
func (s *Server) findOrder(c *gin.Context) (*orderdomain.PendingOrder, error) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		return nil, orderdomain.ErrNotFound
	}
	order, err := s.orderRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}
	return order, nil
}
