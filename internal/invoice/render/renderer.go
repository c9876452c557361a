// Package render produces the HTML invoice view consumed by the browser
// and by the export capture step.
package render

import (
	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

// SellerView is the fixed letterhead block.
type SellerView struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	Phone        string
	Email        string
	GSTIN        string
	Terms        string
}

// RenderInput is everything the view needs for one render pass.
// Static selects the read-only presentation: every editable control is
// replaced by its plain rendered value so a pixel capture of the page is
// stable across browsers.
type RenderInput struct {
	Seller SellerView
	State  domain.StateResponse
	Static bool
}

// Renderer renders the invoice view.
type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
