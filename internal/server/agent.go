package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
)

func (s *Server) CreateAgentRegistration(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req quotationdomain.AgentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.CreateAgentRegistration(c.Request.Context(), actor, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"quotationId": q.ID,
		"data":        q.ToResponse(),
	})
}

func (s *Server) ListAgentRegistrations(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	items, err := s.quotationSvc.ListAgentRegistrations(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toResponses(items)})
}

func (s *Server) GetAgentRegistration(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	q, err := s.quotationSvc.GetAgentRegistration(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) UpdateAgentServices(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req quotationdomain.AgentServicesUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.UpdateAgentServices(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) CompleteAgentRegistration(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req quotationdomain.AgentCompletion
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.CompleteAgentRegistration(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) UpdateAgentPricing(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var patch quotationdomain.PricingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.UpdateAgentPricing(c.Request.Context(), actor, c.Param("id"), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) DeleteAgentRegistration(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.quotationSvc.DeleteAgentRegistration(c.Request.Context(), actor, c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
