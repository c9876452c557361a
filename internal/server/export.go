package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhruvent/billing/internal/config"
	"github.com/dhruvent/billing/internal/invoice/format"
	"github.com/dhruvent/billing/internal/invoice/render"
	"github.com/dhruvent/billing/internal/providers/pdf"
)

// ExportInvoice runs the capture pipeline and returns the PDF as a
// download. A second export while one is running gets 409.
func (s *Server) ExportInvoice(c *gin.Context) {
	result, err := s.exporter.Export(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

// PrintInvoice returns the natively laid out print document inline, for
// the browser print dialog.
func (s *Server) PrintInvoice(c *gin.Context) {
	state, err := s.service.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := pdf.BuildDocument(state, s.cfg.Seller)
	reader, err := s.printer.GeneratePrintDocument(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	fileName := format.ExportFileName(state.Invoice.Header.InvoiceNumber)
	c.Header("Content-Disposition", `inline; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

func sellerView(p config.SellerProfile) render.SellerView {
	return render.SellerView{
		Name:         p.Name,
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		Phone:        p.Phone,
		Email:        p.Email,
		GSTIN:        p.GSTIN,
		Terms:        p.Terms,
	}
}
