// Package domain contains the invoice aggregate and its derived-value rules.
package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Unit enumerates the quantity units a line item can be billed in.
type Unit string

const (
	UnitKG      Unit = "KG"
	UnitBundles Unit = "bundles"
	UnitTon     Unit = "ton"
)

// ParseUnit maps raw input onto the unit enum. Unknown input falls back to KG.
func ParseUnit(raw string) Unit {
	switch Unit(strings.TrimSpace(raw)) {
	case UnitBundles:
		return UnitBundles
	case UnitTon:
		return UnitTon
	default:
		return UnitKG
	}
}

// Line item field names accepted by UpdateLineItem.
const (
	FieldDescription = "description"
	FieldHSNCode     = "hsn_code"
	FieldUnit        = "unit"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unit_price"
)

// LineItem is one row of the invoice item table.
// Amount is always derived from Quantity and UnitPrice, never edited directly.
type LineItem struct {
	ID          snowflake.ID `json:"id"`
	Description string       `json:"description"`
	HSNCode     string       `json:"hsn_code"`
	Unit        Unit         `json:"unit"`
	Quantity    float64      `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	Amount      float64      `json:"amount"`
}

// Apply sets the named field from raw input and keeps Amount consistent.
// Numeric fields degrade to 0 on unparseable input. Unknown fields report false.
func (li *LineItem) Apply(field, value string) bool {
	switch field {
	case FieldDescription:
		li.Description = value
	case FieldHSNCode:
		li.HSNCode = value
	case FieldUnit:
		li.Unit = ParseUnit(value)
	case FieldQuantity:
		li.Quantity = parseNumber(value)
		li.Amount = li.Quantity * li.UnitPrice
	case FieldUnitPrice:
		li.UnitPrice = parseNumber(value)
		li.Amount = li.Quantity * li.UnitPrice
	default:
		return false
	}
	return true
}

// Party identifies a billed or shipped-to party on the invoice.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Code    string `json:"code"`
}

// BankDetails is the free-text bank block printed on the invoice.
type BankDetails struct {
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	Branch        string `json:"branch"`
}

// TaxRates are the three GST percentages applied to the subtotal.
type TaxRates struct {
	CGSTPercent float64 `json:"cgst_percent"`
	SGSTPercent float64 `json:"sgst_percent"`
	IGSTPercent float64 `json:"igst_percent"`
}

// DefaultTaxRates returns the intra-state default of 9/9/0.
func DefaultTaxRates() TaxRates {
	return TaxRates{CGSTPercent: 9, SGSTPercent: 9, IGSTPercent: 0}
}

// Header holds the invoice identity and transport reference fields.
type Header struct {
	InvoiceNumber     int64     `json:"invoice_number"`
	InvoiceDate       time.Time `json:"invoice_date"`
	DeliveryChallanNo string    `json:"delivery_challan_no"`
	PurchaseOrderNo   string    `json:"purchase_order_no"`
	VehicleNo         string    `json:"vehicle_no"`
	EWayBillNo        string    `json:"eway_bill_no"`
}

// Invoice is the single owned aggregate behind the billing form.
type Invoice struct {
	Header Header      `json:"header"`
	BillTo Party       `json:"bill_to"`
	ShipTo Party       `json:"ship_to"`
	Items  []LineItem  `json:"items"`
	Bank   BankDetails `json:"bank_details"`
	Rates  TaxRates    `json:"tax_rates"`
}

// Totals are derived from the item sequence and tax rates on every read.
type Totals struct {
	SubTotal   float64 `json:"sub_total"`
	CGSTAmount float64 `json:"cgst_amount"`
	SGSTAmount float64 `json:"sgst_amount"`
	IGSTAmount float64 `json:"igst_amount"`
	GrandTotal float64 `json:"grand_total"`
}

// RoundedGrandTotal rounds the grand total to the nearest rupee for the
// amount-in-words line.
func (t Totals) RoundedGrandTotal() int64 {
	return int64(math.Round(t.GrandTotal))
}

// New builds a fresh invoice with one blank line item and default tax rates.
func New(number int64, date time.Time, newID func() snowflake.ID) *Invoice {
	return &Invoice{
		Header: Header{
			InvoiceNumber: number,
			InvoiceDate:   date,
		},
		Items: []LineItem{blankItem(newID())},
		Rates: DefaultTaxRates(),
	}
}

// Totals recomputes the derived totals. Pure; never cached.
func (inv *Invoice) Totals() Totals {
	var t Totals
	for _, item := range inv.Items {
		t.SubTotal += item.Amount
	}
	t.CGSTAmount = t.SubTotal * inv.Rates.CGSTPercent / 100
	t.SGSTAmount = t.SubTotal * inv.Rates.SGSTPercent / 100
	t.IGSTAmount = t.SubTotal * inv.Rates.IGSTPercent / 100
	t.GrandTotal = t.SubTotal + t.CGSTAmount + t.SGSTAmount + t.IGSTAmount
	return t
}

// UpdateItem applies a field edit to the item with the given id.
// A missing id is a silent no-op; the return value reports whether the
// named field was recognized.
func (inv *Invoice) UpdateItem(id snowflake.ID, field, value string) bool {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return inv.Items[i].Apply(field, value)
		}
	}
	return true
}

// AddItem appends a blank row and returns it.
func (inv *Invoice) AddItem(id snowflake.ID) LineItem {
	item := blankItem(id)
	inv.Items = append(inv.Items, item)
	return item
}

// RemoveItem deletes the row with the given id. The sequence never drops
// below one row; removing the last remaining row is a no-op.
func (inv *Invoice) RemoveItem(id snowflake.ID) bool {
	if len(inv.Items) <= 1 {
		return false
	}
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

// CopyBillToShipTo overwrites the ship-to party with a snapshot of bill-to.
func (inv *Invoice) CopyBillToShipTo() {
	inv.ShipTo = inv.BillTo
}

// ResetForNew advances the invoice number, stamps the date, and clears
// everything except tax rates and bank details.
func (inv *Invoice) ResetForNew(date time.Time, newID func() snowflake.ID) {
	inv.Header = Header{
		InvoiceNumber: inv.Header.InvoiceNumber + 1,
		InvoiceDate:   date,
	}
	inv.BillTo = Party{}
	inv.ShipTo = Party{}
	inv.Items = []LineItem{blankItem(newID())}
}

// Clone returns a deep copy of the aggregate.
func (inv *Invoice) Clone() *Invoice {
	out := *inv
	out.Items = make([]LineItem, len(inv.Items))
	copy(out.Items, inv.Items)
	return &out
}

func blankItem(id snowflake.ID) LineItem {
	return LineItem{ID: id, Unit: UnitKG}
}

// parseNumber parses user input as a float, treating unparseable input as 0.
func parseNumber(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
