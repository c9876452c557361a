package render

import (
	"bytes"
	"html/template"

	domain "github.com/dhruvent/billing/internal/invoice/domain"
	"github.com/dhruvent/billing/internal/invoice/format"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.State.Invoice.Header.InvoiceNumber}}</title>
  <style>
    @media print {
      @page { size: A4; margin: 1cm; }
      body { -webkit-print-color-adjust: exact !important; print-color-adjust: exact !important; }
      .no-print { display: none !important; }
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 16px;
      font-family: Arial, Helvetica, sans-serif;
      font-size: 13px;
      color: #111;
      background: #fff;
    }
    #invoice { max-width: 860px; margin: 0 auto; background: #fff; }
    .frame { border: 2px solid #000; margin-bottom: 12px; }
    .certified { text-align: center; font-size: 11px; padding: 3px; border-bottom: 2px solid #000; }
    .split { display: flex; }
    .split > div { padding: 10px; }
    .seller { flex: 1; border-right: 2px solid #000; }
    .seller h2 { text-align: center; margin: 0 0 8px; font-size: 18px; }
    .seller p { margin: 2px 0; }
    .meta { width: 40%; text-align: center; }
    .meta h3 { margin: 0 0 10px; font-size: 15px; }
    .meta-row { display: flex; justify-content: space-between; margin-bottom: 6px; }
    .band { background: #fde68a; font-weight: bold; text-align: center; padding: 4px; }
    .band-split { display: flex; background: #fde68a; }
    .band-split > div { flex: 1; padding: 4px; font-weight: bold; text-align: center; }
    .band-split > div:first-child { border-right: 1px solid #000; }
    .party { flex: 1; }
    .party:first-child { border-right: 2px solid #000; }
    .party label { display: block; font-size: 11px; font-weight: bold; margin-top: 6px; }
    .party .value { min-height: 15px; white-space: pre-wrap; }
    table.items { width: 100%; border-collapse: collapse; }
    table.items th { background: #fde68a; }
    table.items th, table.items td { border: 1px solid #000; padding: 5px; font-size: 12px; }
    td.num, th.num { text-align: right; }
    td.ctr, th.ctr { text-align: center; }
    .bottom { display: flex; border: 2px solid #000; margin-bottom: 0; }
    .bank { flex: 1; padding: 10px; border-right: 2px solid #000; }
    .bank h4 { margin: 0 0 6px; }
    .bank .row { margin: 3px 0; }
    table.totals { width: 40%; border-collapse: collapse; }
    table.totals td { padding: 4px 6px; border-bottom: 1px solid #000; font-size: 12px; }
    table.totals td.num { text-align: right; }
    table.totals tr.grand td { background: #fde68a; font-weight: bold; border-bottom: none; }
    .words { font-size: 11px; padding: 4px 6px; border-top: 1px solid #000; }
    .sign { display: flex; border: 2px solid #000; border-top: 0; }
    .sign > div { flex: 1; padding: 10px; text-align: center; }
    .sign > div:first-child { border-right: 1px solid #000; }
    .sign .pad { height: 70px; }
    .sign p { font-weight: bold; font-size: 12px; margin: 2px 0; }
    input, textarea, select { font: inherit; border: none; border-bottom: 1px solid #bbb; outline: none; width: 100%; }
    .btn { font-size: 11px; padding: 2px 8px; }
  </style>
</head>
<body>
  <div id="invoice">
    <div class="frame">
      <div class="certified">Certified that the particulars given above are true and correct</div>
      <div class="split">
        <div class="seller">
          <h2>{{.Seller.Name}}</h2>
          <p>{{.Seller.AddressLine1}}</p>
          <p>{{.Seller.AddressLine2}}</p>
          <p>Cell : {{.Seller.Phone}}</p>
          <p>e-mail : {{.Seller.Email}}</p>
          <p><strong>GST NO :</strong> {{.Seller.GSTIN}}</p>
        </div>
        <div class="meta">
          <h3>TAX INVOICE</h3>
          <div class="meta-row"><span><strong>INVOICE NO :</strong></span>
            {{if .Static}}<span>{{.State.Invoice.Header.InvoiceNumber}}</span>
            {{else}}<input type="number" name="invoice_number" value="{{.State.Invoice.Header.InvoiceNumber}}" style="width:6em;text-align:right">{{end}}
          </div>
          <div class="meta-row"><span><strong>INVOICE DATE :</strong></span>
            {{if .Static}}<span>{{invoiceDate .State.Invoice.Header.InvoiceDate}}</span>
            {{else}}<input type="date" name="invoice_date" value="{{isoDate .State.Invoice.Header.InvoiceDate}}" style="width:10em">{{end}}
          </div>
          <div class="meta-row"><span><strong>DC NO :</strong></span>
            {{if .Static}}<span>{{.State.Invoice.Header.DeliveryChallanNo}}</span>
            {{else}}<input type="text" name="delivery_challan_no" value="{{.State.Invoice.Header.DeliveryChallanNo}}" style="width:6em">{{end}}
          </div>
          <div class="meta-row"><span><strong>PO NO :</strong></span>
            {{if .Static}}<span>{{.State.Invoice.Header.PurchaseOrderNo}}</span>
            {{else}}<input type="text" name="purchase_order_no" value="{{.State.Invoice.Header.PurchaseOrderNo}}" style="width:6em">{{end}}
          </div>
          <div class="meta-row"><span><strong>VEHICLE NO :</strong></span>
            {{if .Static}}<span>{{.State.Invoice.Header.VehicleNo}}</span>
            {{else}}<input type="text" name="vehicle_no" value="{{.State.Invoice.Header.VehicleNo}}" style="width:6em">{{end}}
          </div>
          <div class="meta-row"><span><strong>E-WAY BILL NO :</strong></span>
            {{if .Static}}<span>{{.State.Invoice.Header.EWayBillNo}}</span>
            {{else}}<input type="text" name="eway_bill_no" value="{{.State.Invoice.Header.EWayBillNo}}" style="width:6em">{{end}}
          </div>
        </div>
      </div>
    </div>

    <div class="frame">
      <div class="band-split"><div>BILL TO PARTY</div><div>SHIP TO PARTY</div></div>
      <div class="split">
        <div class="party">
          {{template "party" dict "Party" .State.Invoice.BillTo "Kind" "bill_to" "Static" .Static}}
        </div>
        <div class="party">
          {{if not .Static}}<button class="btn no-print" formaction="/api/invoice/parties/copy">Copy from Bill To</button>{{end}}
          {{template "party" dict "Party" .State.Invoice.ShipTo "Kind" "ship_to" "Static" .Static}}
        </div>
      </div>
    </div>

    <div class="frame">
      <table class="items">
        <thead>
          <tr>
            <th class="ctr" style="width:40px">S.No.</th>
            <th>Product Description</th>
            <th class="ctr" style="width:90px">HSN CODE</th>
            <th class="ctr" style="width:60px">QTY</th>
            <th class="ctr" style="width:70px">UNIT</th>
            <th class="num" style="width:90px">PRICE</th>
            <th class="num" style="width:90px">AMOUNT</th>
            {{if not .Static}}<th class="ctr no-print" style="width:60px">Actions</th>{{end}}
          </tr>
        </thead>
        <tbody>
          {{$static := .Static}}
          {{range $index, $item := .State.Invoice.Items}}
          <tr>
            <td class="ctr">{{inc $index}}</td>
            {{if $static}}
            <td>{{$item.Description}}</td>
            <td class="ctr">{{$item.HSNCode}}</td>
            <td class="ctr">{{$item.Quantity}}</td>
            <td class="ctr">{{$item.Unit}}</td>
            <td class="num">{{money $item.UnitPrice}}</td>
            {{else}}
            <td><input type="text" value="{{$item.Description}}" data-item="{{$item.ID}}" data-field="description"></td>
            <td><input type="text" value="{{$item.HSNCode}}" data-item="{{$item.ID}}" data-field="hsn_code"></td>
            <td><input type="number" value="{{$item.Quantity}}" data-item="{{$item.ID}}" data-field="quantity"></td>
            <td>
              <select data-item="{{$item.ID}}" data-field="unit">
                {{range $unit := units}}
                <option value="{{$unit}}" {{if eq $unit $item.Unit}}selected{{end}}>{{$unit}}</option>
                {{end}}
              </select>
            </td>
            <td><input type="number" step="0.01" value="{{$item.UnitPrice}}" data-item="{{$item.ID}}" data-field="unit_price"></td>
            {{end}}
            <td class="num">{{money $item.Amount}}</td>
            {{if not $static}}<td class="ctr no-print"><button class="btn" data-remove="{{$item.ID}}">Remove</button></td>{{end}}
          </tr>
          {{end}}
          {{range fillerRows .State.Invoice.Items}}
          <tr>
            <td>&nbsp;</td><td></td><td></td><td></td><td></td><td></td><td></td>
            {{if not $static}}<td class="no-print"></td>{{end}}
          </tr>
          {{end}}
        </tbody>
      </table>
      {{if not .Static}}<div class="no-print" style="padding:6px;border-top:1px solid #000"><button class="btn" formaction="/api/invoice/items">Add Item</button></div>{{end}}
    </div>

    <div class="bottom">
      <div class="bank">
        <h4>BANK DETAILS</h4>
        <div class="row"><strong>Bank A/C :</strong>
          {{if .Static}}<span>{{.State.Invoice.Bank.AccountNumber}}</span>
          {{else}}<input type="text" name="account_number" value="{{.State.Invoice.Bank.AccountNumber}}" style="width:60%">{{end}}
        </div>
        <div class="row"><strong>Bank IFSC :</strong>
          {{if .Static}}<span>{{.State.Invoice.Bank.IFSCCode}}</span>
          {{else}}<input type="text" name="ifsc_code" value="{{.State.Invoice.Bank.IFSCCode}}" style="width:60%">{{end}}
        </div>
        <div class="row"><strong>Branch :</strong>
          {{if .Static}}<span>{{.State.Invoice.Bank.Branch}}</span>
          {{else}}<input type="text" name="branch" value="{{.State.Invoice.Bank.Branch}}" style="width:60%">{{end}}
        </div>
        <h4 style="margin-top:12px">Terms &amp; Conditions</h4>
        <p style="font-size:11px;margin:2px 0">{{.Seller.Terms}}</p>
      </div>
      <table class="totals">
        <tr><td><strong>Sub Total</strong></td><td class="num">{{money .State.Totals.SubTotal}}</td></tr>
        <tr><td>CGST @{{rate .State.Invoice.Rates.CGSTPercent}}%</td><td class="num">{{money .State.Totals.CGSTAmount}}</td></tr>
        <tr><td>SGST @{{rate .State.Invoice.Rates.SGSTPercent}}%</td><td class="num">{{money .State.Totals.SGSTAmount}}</td></tr>
        <tr><td>IGST @{{rate .State.Invoice.Rates.IGSTPercent}}%</td><td class="num">{{money .State.Totals.IGSTAmount}}</td></tr>
        <tr class="grand"><td>Total Amount</td><td class="num">{{money .State.Totals.GrandTotal}}</td></tr>
        <tr><td colspan="2" class="words"><strong>Amount in Words:</strong> {{.State.AmountInWords}}</td></tr>
      </table>
    </div>

    <div class="sign">
      <div>
        <div class="pad"></div>
        <p>COMMON SEAL</p>
      </div>
      <div>
        <div class="pad"></div>
        <p>FOR: {{.Seller.Name}}</p>
        <p>AUTHORIZED SIGNATORY</p>
      </div>
    </div>
  </div>
</body>
</html>
{{define "party"}}
  <label>Name:</label>
  {{if .Static}}<div class="value">{{.Party.Name}}</div>
  {{else}}<input type="text" name="{{.Kind}}.name" value="{{.Party.Name}}" placeholder="Enter party name">{{end}}
  <label>Address:</label>
  {{if .Static}}<div class="value">{{.Party.Address}}</div>
  {{else}}<textarea name="{{.Kind}}.address" rows="2" placeholder="Enter address">{{.Party.Address}}</textarea>{{end}}
  <label>GSTIN:</label>
  {{if .Static}}<div class="value">{{.Party.GSTIN}}</div>
  {{else}}<input type="text" name="{{.Kind}}.gstin" value="{{.Party.GSTIN}}" placeholder="Enter GSTIN">{{end}}
  <label>CODE:</label>
  {{if .Static}}<div class="value">{{.Party.Code}}</div>
  {{else}}<input type="text" name="{{.Kind}}.code" value="{{.Party.Code}}" placeholder="Enter code">{{end}}
{{end}}`

// minVisibleRows pads the item table so short invoices still print with a
// full-height grid, matching the paper form.
const minVisibleRows = 10

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"money":       format.Money,
		"rate":        format.Rate,
		"invoiceDate": format.InvoiceDate,
		"isoDate":     format.ISODate,
		"inc":         func(i int) int { return i + 1 },
		"units":       func() []domain.Unit { return []domain.Unit{domain.UnitKG, domain.UnitBundles, domain.UnitTon} },
		"fillerRows":  fillerRows,
		"dict":        dict,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fillerRows(items []domain.LineItem) []struct{} {
	if len(items) >= minVisibleRows {
		return nil
	}
	return make([]struct{}, minVisibleRows-len(items))
}

func dict(pairs ...any) map[string]any {
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		out[key] = pairs[i+1]
	}
	return out
}
