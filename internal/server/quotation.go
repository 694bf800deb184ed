package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/ParthhMahajann/rera-quotation-system/pkg/db/pagination"
)

func (s *Server) CreateQuotation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req quotationdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.Create(c.Request.Context(), actor, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": q.ToResponse()})
}

func (s *Server) ListQuotations(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var page pagination.Params
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	page = page.Normalize()

	result, err := s.quotationSvc.List(c.Request.Context(), actor, quotationdomain.ListRequest{
		Page:   page.Page,
		Limit:  page.Limit,
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       toResponses(result.Items),
		"pagination": pagination.Build(page, result.Total),
	})
}

func (s *Server) GetQuotation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	q, err := s.quotationSvc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) UpdateQuotation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req quotationdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) UpdateQuotationPricing(c *gin.Context) {
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

	q, err := s.quotationSvc.UpdatePricing(c.Request.Context(), actor, c.Param("id"), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) UpdateQuotationTerms(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var terms quotationdomain.TermsUpdate
	if err := c.ShouldBindJSON(&terms); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.UpdateTerms(c.Request.Context(), actor, c.Param("id"), terms)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) DecideQuotation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req quotationdomain.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q, err := s.quotationSvc.Decide(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q.ToResponse()})
}

func (s *Server) DeleteQuotation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.quotationSvc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) QuotationPDF(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	q, err := s.quotationSvc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfProvider.GenerateQuotation(c.Request.Context(), q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+q.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func toResponses(items []quotationdomain.Quotation) []quotationdomain.Response {
	out := make([]quotationdomain.Response, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToResponse())
	}
	return out
}
