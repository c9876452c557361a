package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

func (s *Server) GetInvoice(c *gin.Context) {
	state, err := s.service.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) UpdateHeader(c *gin.Context) {
	var req domain.UpdateHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request_body"})
		return
	}

	state, err := s.service.UpdateHeader(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) UpdateParty(c *gin.Context) {
	kind, err := domain.ParsePartyKind(c.Param("kind"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req domain.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request_body"})
		return
	}

	state, err := s.service.UpdateParty(c.Request.Context(), kind, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) CopyBillToShipTo(c *gin.Context) {
	state, err := s.service.CopyBillToShipTo(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) UpdateBankDetails(c *gin.Context) {
	var req domain.BankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request_body"})
		return
	}

	state, err := s.service.UpdateBankDetails(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) UpdateTaxRates(c *gin.Context) {
	var req domain.TaxRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request_body"})
		return
	}

	state, err := s.service.UpdateTaxRates(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) AddLineItem(c *gin.Context) {
	state, err := s.service.AddLineItem(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) UpdateLineItem(c *gin.Context) {
	var req domain.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request_body"})
		return
	}
	req.ID = c.Param("id")

	state, err := s.service.UpdateLineItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) RemoveLineItem(c *gin.Context) {
	state, err := s.service.RemoveLineItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) NewInvoice(c *gin.Context) {
	state, err := s.service.NewInvoice(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
