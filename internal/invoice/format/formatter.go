// Package format contains pure formatting helpers for invoice presentation.
package format

import (
	"fmt"
	"time"
)

// Money renders a rupee amount with two decimal places, as shown on the
// printed invoice.
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// Rate renders a tax percentage without trailing decimal noise.
func Rate(percent float64) string {
	out := fmt.Sprintf("%g", percent)
	return out
}

// InvoiceDate renders a date the en-GB way (dd/mm/yyyy) for the invoice
// header.
func InvoiceDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// ISODate renders a date for form inputs and the JSON API.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// InvoiceNumber renders the header number.
func InvoiceNumber(n int64) string {
	return fmt.Sprintf("%d", n)
}

// Serial renders a 1-based table row number.
func Serial(n int) string {
	return fmt.Sprintf("%d", n)
}

// Quantity renders an item quantity without trailing decimal noise.
func Quantity(qty float64) string {
	return fmt.Sprintf("%g", qty)
}

// ExportFileName names the exported document after the invoice number.
func ExportFileName(invoiceNumber int64) string {
	return fmt.Sprintf("invoice-%d.pdf", invoiceNumber)
}
