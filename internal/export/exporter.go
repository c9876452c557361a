// Package export builds the downloadable invoice PDF from a pixel capture
// of the rendered view.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dhruvent/billing/internal/config"
	"github.com/dhruvent/billing/internal/export/capture"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
	"github.com/dhruvent/billing/internal/invoice/format"
)

// Result is one finished export.
type Result struct {
	FileName string
	Path     string
	PDF      []byte
}

type ExporterParam struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Service  domain.Service
	Capturer capture.Capturer
}

// Exporter captures the static invoice view and embeds it as a single
// full-page image in an A4 PDF. One export runs at a time.
type Exporter struct {
	cfg      config.Config
	log      *zap.Logger
	service  domain.Service
	capturer capture.Capturer

	busy atomic.Bool
}

func NewExporter(p ExporterParam) *Exporter {
	return &Exporter{
		cfg:      p.Cfg,
		log:      p.Log.Named("export"),
		service:  p.Service,
		capturer: p.Capturer,
	}
}

// Export runs the full pipeline: switch the view to static mode, capture
// it, fit the image to A4, and write invoice-{number}.pdf. The view is
// switched back to interactive mode no matter how the pipeline ends.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Result{}, ErrExportInFlight
	}
	defer e.busy.Store(false)

	state, err := e.service.Get(ctx)
	if err != nil {
		return Result{}, err
	}
	fileName := format.ExportFileName(state.Invoice.Header.InvoiceNumber)

	e.service.SetExportMode(true)
	defer e.service.SetExportMode(false)

	snap, err := e.capturer.Capture(ctx, capture.Target{
		URL:           e.cfg.Capture.ViewURL,
		Selector:      "#invoice",
		ViewportWidth: int(e.cfg.Capture.ViewportWidth),
		Scale:         e.cfg.Capture.Scale,
		Timeout:       e.cfg.Capture.Timeout(),
	})
	if err != nil {
		return Result{}, err
	}

	pdf, err := assemblePDF(snap)
	if err != nil {
		return Result{}, err
	}

	path, err := e.write(fileName, pdf)
	if err != nil {
		return Result{}, err
	}

	e.log.Info("export.done",
		zap.Int64("invoice_number", state.Invoice.Header.InvoiceNumber),
		zap.String("file", fileName),
		zap.Int("bytes", len(pdf)),
	)

	return Result{FileName: fileName, Path: path, PDF: pdf}, nil
}

// Busy reports whether an export is currently running.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

func assemblePDF(snap capture.Snapshot) ([]byte, error) {
	placement := FitToPage(snap.Width, snap.Height)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.RegisterImageOptionsReader("invoice", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(snap.PNG))
	doc.ImageOptions("invoice", placement.X, placement.Y, placement.Width, placement.Height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// write lands the PDF atomically: a temp file in the same directory is
// renamed into place so a failed export never leaves a partial file.
func (e *Exporter) write(fileName string, pdf []byte) (string, error) {
	if err := os.MkdirAll(e.cfg.ExportDir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(e.cfg.ExportDir, fileName+".tmp-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	path := filepath.Join(e.cfg.ExportDir, fileName)
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return path, nil
}
