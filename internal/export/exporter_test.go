package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhruvent/billing/internal/config"
	"github.com/dhruvent/billing/internal/export/capture"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

// stubService implements the editor interface with a fixed invoice and a
// recorded export-mode history.
type stubService struct {
	mu          sync.Mutex
	inv         *domain.Invoice
	exportMode  bool
	modeHistory []bool
}

func newStubService(t *testing.T) *stubService {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return &stubService{
		inv: domain.New(428, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), node.Generate),
	}
}

func (s *stubService) Get(ctx context.Context) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.StateResponse{Invoice: *s.inv.Clone(), Totals: s.inv.Totals(), ExportMode: s.exportMode}, nil
}

func (s *stubService) UpdateHeader(ctx context.Context, req domain.UpdateHeaderRequest) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) UpdateParty(ctx context.Context, kind domain.PartyKind, req domain.PartyRequest) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) CopyBillToShipTo(ctx context.Context) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) UpdateBankDetails(ctx context.Context, req domain.BankDetailsRequest) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) UpdateTaxRates(ctx context.Context, req domain.TaxRatesRequest) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) AddLineItem(ctx context.Context) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) UpdateLineItem(ctx context.Context, req domain.UpdateLineItemRequest) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) RemoveLineItem(ctx context.Context, id string) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) NewInvoice(ctx context.Context) (domain.StateResponse, error) {
	return s.Get(ctx)
}

func (s *stubService) SetExportMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exportMode = on
	s.modeHistory = append(s.modeHistory, on)
}

func (s *stubService) ExportMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportMode
}

// stubCapturer returns a pre-encoded PNG, optionally failing or blocking.
type stubCapturer struct {
	snapshot capture.Snapshot
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (c *stubCapturer) Capture(ctx context.Context, target capture.Target) (capture.Snapshot, error) {
	if c.started != nil {
		close(c.started)
	}
	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return capture.Snapshot{}, c.err
	}
	return c.snapshot, nil
}

func testSnapshot(t *testing.T) capture.Snapshot {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 90, 127))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return capture.Snapshot{PNG: buf.Bytes(), Width: 90, Height: 127}
}

func newTestExporter(t *testing.T, svc domain.Service, cap capture.Capturer) *Exporter {
	t.Helper()
	return NewExporter(ExporterParam{
		Cfg: config.Config{
			ExportDir: t.TempDir(),
			Capture:   config.CaptureConfig{ViewURL: "http://127.0.0.1:0/invoice/view", ViewportWidth: 900, Scale: 2, TimeoutSeconds: 5},
		},
		Log:      zap.NewNop(),
		Service:  svc,
		Capturer: cap,
	})
}

func TestExportWritesNamedPDF(t *testing.T) {
	svc := newStubService(t)
	exp := newTestExporter(t, svc, &stubCapturer{snapshot: testSnapshot(t)})

	result, err := exp.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "invoice-428.pdf", result.FileName)
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF")))

	written, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, result.PDF, written)
}

func TestExportTogglesStaticModeAndRestoresIt(t *testing.T) {
	svc := newStubService(t)
	exp := newTestExporter(t, svc, &stubCapturer{snapshot: testSnapshot(t)})

	_, err := exp.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, svc.modeHistory)
	assert.False(t, svc.ExportMode())
}

func TestExportRestoresModeOnCaptureFailure(t *testing.T) {
	svc := newStubService(t)
	exp := newTestExporter(t, svc, &stubCapturer{err: errors.New("browser crashed")})

	_, err := exp.Export(context.Background())
	require.Error(t, err)

	assert.Equal(t, []bool{true, false}, svc.modeHistory)
	assert.False(t, svc.ExportMode())
	assert.False(t, exp.Busy())
}

func TestExportFailureLeavesNoFile(t *testing.T) {
	svc := newStubService(t)
	exp := newTestExporter(t, svc, &stubCapturer{err: errors.New("browser crashed")})

	_, err := exp.Export(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(exp.cfg.ExportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportRejectsConcurrentRun(t *testing.T) {
	svc := newStubService(t)
	cap := &stubCapturer{
		snapshot: testSnapshot(t),
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	exp := newTestExporter(t, svc, cap)

	done := make(chan error, 1)
	go func() {
		_, err := exp.Export(context.Background())
		done <- err
	}()

	<-cap.started
	assert.True(t, exp.Busy())

	_, err := exp.Export(context.Background())
	assert.ErrorIs(t, err, ErrExportInFlight)

	close(cap.release)
	require.NoError(t, <-done)
	assert.False(t, exp.Busy())
}

func TestExportLeavesNoTempFiles(t *testing.T) {
	svc := newStubService(t)
	exp := newTestExporter(t, svc, &stubCapturer{snapshot: testSnapshot(t)})

	result, err := exp.Export(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(result.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, result.FileName, entries[0].Name())
}
