package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhruvent/billing/internal/clock"
	"github.com/dhruvent/billing/internal/config"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

// memDrafts is an in-memory DraftRepository.
type memDrafts struct {
	saved   *domain.Invoice
	saveErr error
	saves   int
}

func (m *memDrafts) Load(ctx context.Context) (*domain.Invoice, error) {
	if m.saved == nil {
		return nil, nil
	}
	payload, err := json.Marshal(m.saved)
	if err != nil {
		return nil, err
	}
	var inv domain.Invoice
	if err := json.Unmarshal(payload, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (m *memDrafts) Save(ctx context.Context, inv *domain.Invoice) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = inv.Clone()
	m.saves++
	return nil
}

func newTestService(t *testing.T, drafts *memDrafts) domain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc, err := NewService(ServiceParam{
		Cfg:    config.Config{InvoiceStartNumber: 428},
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)),
		Drafts: drafts,
	})
	require.NoError(t, err)
	return svc
}

func TestNewServiceSeedsInvoice(t *testing.T) {
	svc := newTestService(t, &memDrafts{})

	state, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(428), state.Invoice.Header.InvoiceNumber)
	require.Len(t, state.Invoice.Items, 1)
	assert.Equal(t, "Zero", state.AmountInWords)
	assert.False(t, state.ExportMode)
}

func TestNewServiceRestoresDraft(t *testing.T) {
	drafts := &memDrafts{}
	first := newTestService(t, drafts)

	_, err := first.UpdateParty(context.Background(), domain.PartyBillTo, domain.PartyRequest{Name: "Acme Traders"})
	require.NoError(t, err)

	restored := newTestService(t, drafts)
	state, err := restored.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", state.Invoice.BillTo.Name)
}

func TestUpdateLineItemRecomputesTotals(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	state, err := svc.Get(ctx)
	require.NoError(t, err)
	itemID := state.Invoice.Items[0].ID.String()

	_, err = svc.UpdateLineItem(ctx, domain.UpdateLineItemRequest{ID: itemID, Field: domain.FieldQuantity, Value: "10"})
	require.NoError(t, err)
	state, err = svc.UpdateLineItem(ctx, domain.UpdateLineItemRequest{ID: itemID, Field: domain.FieldUnitPrice, Value: "25.5"})
	require.NoError(t, err)

	assert.Equal(t, 255.0, state.Totals.SubTotal)
	assert.Equal(t, 22.95, state.Totals.CGSTAmount)
	assert.Equal(t, 22.95, state.Totals.SGSTAmount)
	assert.InDelta(t, 300.90, state.Totals.GrandTotal, 1e-9)
	assert.Equal(t, "Three Hundred One Only", state.AmountInWords)
}

func TestUpdateLineItemUnknownField(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	state, err := svc.Get(ctx)
	require.NoError(t, err)

	_, err = svc.UpdateLineItem(ctx, domain.UpdateLineItemRequest{
		ID:    state.Invoice.Items[0].ID.String(),
		Field: "amount",
		Value: "999",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLineItemField)
}

func TestUpdateLineItemUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	state, err := svc.UpdateLineItem(ctx, domain.UpdateLineItemRequest{ID: "not-a-number", Field: domain.FieldQuantity, Value: "5"})
	require.NoError(t, err)
	assert.Zero(t, state.Invoice.Items[0].Quantity)
}

func TestAddAndRemoveLineItems(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	state, err := svc.AddLineItem(ctx)
	require.NoError(t, err)
	require.Len(t, state.Invoice.Items, 2)

	state, err = svc.RemoveLineItem(ctx, state.Invoice.Items[1].ID.String())
	require.NoError(t, err)
	require.Len(t, state.Invoice.Items, 1)

	// The last remaining row cannot be removed.
	state, err = svc.RemoveLineItem(ctx, state.Invoice.Items[0].ID.String())
	require.NoError(t, err)
	require.Len(t, state.Invoice.Items, 1)
}

func TestUpdateTaxRatesDegradesJunkToZero(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	cgst, igst := "abc", "-4"
	state, err := svc.UpdateTaxRates(ctx, domain.TaxRatesRequest{CGSTPercent: &cgst, IGSTPercent: &igst})
	require.NoError(t, err)

	assert.Zero(t, state.Invoice.Rates.CGSTPercent)
	assert.Zero(t, state.Invoice.Rates.IGSTPercent)
	// Absent fields stay untouched.
	assert.Equal(t, 9.0, state.Invoice.Rates.SGSTPercent)
}

func TestUpdateHeaderIgnoresBadDate(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	bad := "01-06-2024"
	state, err := svc.UpdateHeader(ctx, domain.UpdateHeaderRequest{InvoiceDate: &bad})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC), state.Invoice.Header.InvoiceDate)

	good := "2024-07-15"
	state, err = svc.UpdateHeader(ctx, domain.UpdateHeaderRequest{InvoiceDate: &good})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), state.Invoice.Header.InvoiceDate)
}

func TestCopyBillToShipTo(t *testing.T) {
	svc := newTestService(t, &memDrafts{})
	ctx := context.Background()

	_, err := svc.UpdateParty(ctx, domain.PartyBillTo, domain.PartyRequest{Name: "Acme Traders", GSTIN: "33AAAAA0000A1Z5"})
	require.NoError(t, err)

	state, err := svc.CopyBillToShipTo(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Invoice.BillTo, state.Invoice.ShipTo)
}

func TestNewInvoiceAdvancesNumberAndKeepsBankAndRates(t *testing.T) {
	drafts := &memDrafts{}
	svc := newTestService(t, drafts)
	ctx := context.Background()

	_, err := svc.UpdateBankDetails(ctx, domain.BankDetailsRequest{AccountNumber: "1234567890", IFSCCode: "SBIN0001234"})
	require.NoError(t, err)
	igst := "18"
	_, err = svc.UpdateTaxRates(ctx, domain.TaxRatesRequest{IGSTPercent: &igst})
	require.NoError(t, err)

	state, err := svc.NewInvoice(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(429), state.Invoice.Header.InvoiceNumber)
	assert.Equal(t, domain.Party{}, state.Invoice.BillTo)
	assert.Equal(t, "1234567890", state.Invoice.Bank.AccountNumber)
	assert.Equal(t, 18.0, state.Invoice.Rates.IGSTPercent)
}

func TestMutationsAutosaveDraft(t *testing.T) {
	drafts := &memDrafts{}
	svc := newTestService(t, drafts)
	ctx := context.Background()

	_, err := svc.AddLineItem(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, drafts.saves)
	require.NotNil(t, drafts.saved)
	assert.Len(t, drafts.saved.Items, 2)
}

func TestFailedAutosaveDoesNotFailEdit(t *testing.T) {
	drafts := &memDrafts{saveErr: errors.New("disk full")}
	svc := newTestService(t, drafts)

	state, err := svc.AddLineItem(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Invoice.Items, 2)
}

func TestExportModeToggle(t *testing.T) {
	svc := newTestService(t, &memDrafts{})

	assert.False(t, svc.ExportMode())
	svc.SetExportMode(true)
	assert.True(t, svc.ExportMode())

	state, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, state.ExportMode)

	svc.SetExportMode(false)
	assert.False(t, svc.ExportMode())
}
