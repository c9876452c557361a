package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhruvent/billing/internal/invoice/render"
)

// InvoiceView serves the rendered invoice page. The static presentation is
// selected while an export capture is running, or on demand via
// ?mode=static for print preview.
func (s *Server) InvoiceView(c *gin.Context) {
	state, err := s.service.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	static := s.service.ExportMode() || c.Query("mode") == "static"

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Seller: sellerView(s.cfg.Seller),
		State:  state,
		Static: static,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
