// Package pdf renders the print-layout invoice document. Unlike the export
// pipeline, which rasterizes the browser view, this provider lays the
// invoice out natively so the print copy stays vector text.
package pdf

import (
	"context"
	"io"
)

type Provider interface {
	GeneratePrintDocument(ctx context.Context, doc Document) (io.Reader, error)
}
