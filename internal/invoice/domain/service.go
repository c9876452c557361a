package domain

import (
	"context"
	"strings"
)

// PartyKind selects which party block an update targets.
type PartyKind string

const (
	PartyBillTo PartyKind = "bill_to"
	PartyShipTo PartyKind = "ship_to"
)

// ParsePartyKind validates a party kind from the request path.
func ParsePartyKind(raw string) (PartyKind, error) {
	switch PartyKind(strings.TrimSpace(raw)) {
	case PartyBillTo:
		return PartyBillTo, nil
	case PartyShipTo:
		return PartyShipTo, nil
	default:
		return "", ErrInvalidPartyKind
	}
}

// Service owns the invoice aggregate and serializes every mutation.
// All operations are total: unparseable numeric input degrades to 0 and
// unknown ids are no-ops. Derived totals are recomputed on every read.
type Service interface {
	Get(ctx context.Context) (StateResponse, error)

	UpdateHeader(ctx context.Context, req UpdateHeaderRequest) (StateResponse, error)
	UpdateParty(ctx context.Context, kind PartyKind, req PartyRequest) (StateResponse, error)
	CopyBillToShipTo(ctx context.Context) (StateResponse, error)
	UpdateBankDetails(ctx context.Context, req BankDetailsRequest) (StateResponse, error)
	UpdateTaxRates(ctx context.Context, req TaxRatesRequest) (StateResponse, error)

	AddLineItem(ctx context.Context) (StateResponse, error)
	UpdateLineItem(ctx context.Context, req UpdateLineItemRequest) (StateResponse, error)
	RemoveLineItem(ctx context.Context, id string) (StateResponse, error)

	NewInvoice(ctx context.Context) (StateResponse, error)

	// SetExportMode toggles the static presentation used during capture.
	// It affects only how the view renders, never the aggregate.
	SetExportMode(on bool)
	ExportMode() bool
}

// UpdateHeaderRequest carries partial header edits; nil fields are unchanged.
type UpdateHeaderRequest struct {
	InvoiceNumber     *int64  `json:"invoice_number,omitempty"`
	InvoiceDate       *string `json:"invoice_date,omitempty"` // 2006-01-02
	DeliveryChallanNo *string `json:"delivery_challan_no,omitempty"`
	PurchaseOrderNo   *string `json:"purchase_order_no,omitempty"`
	VehicleNo         *string `json:"vehicle_no,omitempty"`
	EWayBillNo        *string `json:"eway_bill_no,omitempty"`
}

// PartyRequest replaces a party block wholesale.
type PartyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Code    string `json:"code"`
}

// BankDetailsRequest replaces the bank block wholesale.
type BankDetailsRequest struct {
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	Branch        string `json:"branch"`
}

// TaxRatesRequest carries raw rate edits; nil fields are unchanged.
// Present fields are parsed as floats, unparseable or negative input
// degrades to 0.
type TaxRatesRequest struct {
	CGSTPercent *string `json:"cgst_percent,omitempty"`
	SGSTPercent *string `json:"sgst_percent,omitempty"`
	IGSTPercent *string `json:"igst_percent,omitempty"`
}

// UpdateLineItemRequest is a field-addressed edit of one item row.
type UpdateLineItemRequest struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// StateResponse is the full aggregate plus derived values, as returned to
// the presentation layer after every operation.
type StateResponse struct {
	Invoice       Invoice `json:"invoice"`
	Totals        Totals  `json:"totals"`
	AmountInWords string  `json:"amount_in_words"`
	ExportMode    bool    `json:"export_mode"`
}
