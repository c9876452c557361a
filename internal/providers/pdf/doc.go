package pdf

import (
	"github.com/dhruvent/billing/internal/config"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
	"github.com/dhruvent/billing/internal/invoice/format"
)

// Document is the fully formatted print view of one invoice. Every value
// is a display string so the layout code stays free of business rules.
type Document struct {
	SellerName    string
	SellerAddress string
	SellerContact string
	SellerGSTIN   string
	SellerTerms   string

	InvoiceNumber     string
	InvoiceDate       string
	DeliveryChallanNo string
	PurchaseOrderNo   string
	VehicleNo         string
	EWayBillNo        string

	BillTo PartyBlock
	ShipTo PartyBlock

	Items []ItemRow

	BankAccountNumber string
	BankIFSCCode      string
	BankBranch        string

	SubTotal      string
	CGSTLabel     string
	CGSTAmount    string
	SGSTLabel     string
	SGSTAmount    string
	IGSTLabel     string
	IGSTAmount    string
	GrandTotal    string
	AmountInWords string
}

type PartyBlock struct {
	Name    string
	Address string
	GSTIN   string
	Code    string
}

type ItemRow struct {
	SerialNo    string
	Description string
	HSNCode     string
	Quantity    string
	Unit        string
	UnitPrice   string
	Amount      string
}

// BuildDocument formats an invoice state snapshot for printing.
func BuildDocument(state domain.StateResponse, seller config.SellerProfile) Document {
	inv := state.Invoice
	totals := state.Totals

	doc := Document{
		SellerName:    seller.Name,
		SellerAddress: seller.AddressLine1 + ", " + seller.AddressLine2,
		SellerContact: "Cell: " + seller.Phone + "  Email: " + seller.Email,
		SellerGSTIN:   "GSTIN: " + seller.GSTIN,
		SellerTerms:   seller.Terms,

		InvoiceNumber:     format.InvoiceNumber(inv.Header.InvoiceNumber),
		InvoiceDate:       format.InvoiceDate(inv.Header.InvoiceDate),
		DeliveryChallanNo: inv.Header.DeliveryChallanNo,
		PurchaseOrderNo:   inv.Header.PurchaseOrderNo,
		VehicleNo:         inv.Header.VehicleNo,
		EWayBillNo:        inv.Header.EWayBillNo,

		BillTo: partyBlock(inv.BillTo),
		ShipTo: partyBlock(inv.ShipTo),

		BankAccountNumber: inv.Bank.AccountNumber,
		BankIFSCCode:      inv.Bank.IFSCCode,
		BankBranch:        inv.Bank.Branch,

		SubTotal:      format.Money(totals.SubTotal),
		CGSTLabel:     "CGST @" + format.Rate(inv.Rates.CGSTPercent) + "%",
		CGSTAmount:    format.Money(totals.CGSTAmount),
		SGSTLabel:     "SGST @" + format.Rate(inv.Rates.SGSTPercent) + "%",
		SGSTAmount:    format.Money(totals.SGSTAmount),
		IGSTLabel:     "IGST @" + format.Rate(inv.Rates.IGSTPercent) + "%",
		IGSTAmount:    format.Money(totals.IGSTAmount),
		GrandTotal:    format.Money(totals.GrandTotal),
		AmountInWords: state.AmountInWords,
	}

	for i, item := range inv.Items {
		doc.Items = append(doc.Items, ItemRow{
			SerialNo:    format.Serial(i + 1),
			Description: item.Description,
			HSNCode:     item.HSNCode,
			Quantity:    format.Quantity(item.Quantity),
			Unit:        string(item.Unit),
			UnitPrice:   format.Money(item.UnitPrice),
			Amount:      format.Money(item.Amount),
		})
	}

	return doc
}

func partyBlock(p domain.Party) PartyBlock {
	return PartyBlock{
		Name:    p.Name,
		Address: p.Address,
		GSTIN:   p.GSTIN,
		Code:    p.Code,
	}
}
