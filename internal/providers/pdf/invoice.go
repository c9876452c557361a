package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// minItemRows pads the items table so short invoices keep the tall table
// body the printed form uses.
const minItemRows = 10

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GeneratePrintDocument(ctx context.Context, invoice Document) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		Build()

	m := maroto.New(cfg)

	// Letterhead
	m.AddRow(8,
		text.NewCol(12, "Certified that the particulars given above are true and correct", props.Text{
			Size:  7,
			Align: align.Center,
		}),
	)
	m.AddRow(12,
		text.NewCol(12, invoice.SellerName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(12,
		col.New(12).Add(
			text.New(invoice.SellerAddress, props.Text{Size: 8, Align: align.Center}),
			text.New(invoice.SellerContact, props.Text{Size: 8, Align: align.Center, Top: 4}),
			text.New(invoice.SellerGSTIN, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Top: 8}),
		),
	)

	m.AddRow(8,
		text.NewCol(12, "TAX INVOICE", props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	// Header meta
	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice No: "+invoice.InvoiceNumber, props.Text{Size: 8}),
			text.New("Delivery Challan No: "+invoice.DeliveryChallanNo, props.Text{Size: 8, Top: 4}),
			text.New("Vehicle No: "+invoice.VehicleNo, props.Text{Size: 8, Top: 8}),
		),
		col.New(6).Add(
			text.New("Date: "+invoice.InvoiceDate, props.Text{Size: 8}),
			text.New("Purchase Order No: "+invoice.PurchaseOrderNo, props.Text{Size: 8, Top: 4}),
			text.New("E-Way Bill No: "+invoice.EWayBillNo, props.Text{Size: 8, Top: 8}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	// Parties
	m.AddRow(6,
		text.NewCol(6, "Bill To", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(6, "Ship To", props.Text{Size: 8, Style: fontstyle.Bold}),
	)
	m.AddRow(22,
		partyCol(invoice.BillTo),
		partyCol(invoice.ShipTo),
	)

	m.AddRow(2, line.NewCol(12))

	// Items table
	m.AddRow(7,
		text.NewCol(1, "S.No", itemHeader()),
		text.NewCol(4, "Description", itemHeader()),
		text.NewCol(1, "HSN", itemHeader()),
		text.NewCol(1, "QTY", itemHeaderRight()),
		text.NewCol(1, "UNIT", itemHeader()),
		text.NewCol(2, "PRICE", itemHeaderRight()),
		text.NewCol(2, "AMOUNT", itemHeaderRight()),
	)

	rows := invoice.Items
	for _, item := range rows {
		m.AddRow(6,
			text.NewCol(1, item.SerialNo, itemCell()),
			text.NewCol(4, item.Description, itemCell()),
			text.NewCol(1, item.HSNCode, itemCell()),
			text.NewCol(1, item.Quantity, itemCellRight()),
			text.NewCol(1, item.Unit, itemCell()),
			text.NewCol(2, item.UnitPrice, itemCellRight()),
			text.NewCol(2, item.Amount, itemCellRight()),
		)
	}
	for i := len(rows); i < minItemRows; i++ {
		m.AddRow(6, col.New(12))
	}

	m.AddRow(2, line.NewCol(12))

	// Bank details alongside totals
	m.AddRow(30,
		col.New(6).Add(
			text.New("Bank Details", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.New("A/C No: "+invoice.BankAccountNumber, props.Text{Size: 8, Top: 5}),
			text.New("IFSC Code: "+invoice.BankIFSCCode, props.Text{Size: 8, Top: 9}),
			text.New("Branch: "+invoice.BankBranch, props.Text{Size: 8, Top: 13}),
		),
		col.New(6).Add(
			text.New("Sub Total: "+invoice.SubTotal, props.Text{Size: 8, Align: align.Right}),
			text.New(invoice.CGSTLabel+": "+invoice.CGSTAmount, props.Text{Size: 8, Align: align.Right, Top: 5}),
			text.New(invoice.SGSTLabel+": "+invoice.SGSTAmount, props.Text{Size: 8, Align: align.Right, Top: 9}),
			text.New(invoice.IGSTLabel+": "+invoice.IGSTAmount, props.Text{Size: 8, Align: align.Right, Top: 13}),
			text.New("Grand Total: "+invoice.GrandTotal, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 18}),
		),
	)

	m.AddRow(8,
		text.NewCol(12, "Amount in Words: "+invoice.AmountInWords, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
		}),
	)

	m.AddRow(6,
		text.NewCol(12, invoice.SellerTerms, props.Text{Size: 7}),
	)

	// Signature block
	m.AddRow(20,
		text.NewCol(6, "COMMON SEAL", props.Text{Size: 8, Align: align.Left, Top: 12}),
		text.NewCol(6, "For "+invoice.SellerName, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(6),
		text.NewCol(6, "AUTHORIZED SIGNATORY", props.Text{Size: 8, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func partyCol(p PartyBlock) core.Col {
	return col.New(6).Add(
		text.New(p.Name, props.Text{Size: 8, Style: fontstyle.Bold}),
		text.New(p.Address, props.Text{Size: 8, Top: 5}),
		text.New("GSTIN: "+p.GSTIN, props.Text{Size: 8, Top: 13}),
		text.New("Code: "+p.Code, props.Text{Size: 8, Top: 17}),
	)
}

func itemHeader() props.Text {
	return props.Text{Size: 8, Style: fontstyle.Bold}
}

func itemHeaderRight() props.Text {
	return props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
}

func itemCell() props.Text {
	return props.Text{Size: 8}
}

func itemCellRight() props.Text {
	return props.Text{Size: 8, Align: align.Right}
}
