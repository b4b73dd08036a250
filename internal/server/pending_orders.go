package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
)

func (s *Server) ListPendingOrders(c *gin.Context) {
	var req orderdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	orders, meta, err := s.orderSvc.List(c.Request.Context(), actor(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, "pendingOrders", orders, meta)
}

func (s *Server) InsertPendingOrders(c *gin.Context) {
	var req orderdomain.InsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	orders, err := s.orderSvc.Insert(c.Request.Context(), actor(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "pendingOrders", orders)
}

func (s *Server) InsertCatalogueOrders(c *gin.Context) {
	var req orderdomain.InsertCatalogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	orders, err := s.orderSvc.InsertCatalogue(c.Request.Context(), actor(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "pendingOrders", orders)
}

func (s *Server) DuplicatePendingOrders(c *gin.Context) {
	var req orderdomain.DuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	orders, err := s.orderSvc.Duplicate(c.Request.Context(), actor(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "pendingOrders", orders)
}

func (s *Server) GetPendingOrder(c *gin.Context) {
	order, err := s.orderSvc.Get(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "pendingOrder", order)
}

func (s *Server) UpdatePendingOrder(c *gin.Context) {
	var req orderdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.Update(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "pendingOrder", order)
}

func (s *Server) DeletePendingOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "deleted", true)
}
