package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
)

// CalculatePricing prices a selection without persisting anything; the
// client commits the result through the pricing update endpoint.
func (s *Server) CalculatePricing(c *gin.Context) {
	var req pricingdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.pricingSvc.Calculate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"breakdown": result.Breakdown,
		"summary":   result.Summary,
	})
}
