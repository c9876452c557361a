// Package capture turns the rendered invoice view into a raster image.
package capture

import (
	"context"
	"time"
)

// Snapshot is one captured image of the invoice element. Width and Height
// are the decoded pixel dimensions of the PNG payload.
type Snapshot struct {
	PNG    []byte
	Width  int
	Height int
}

// Target describes what to capture. Scale is the device scale factor; the
// invoice is captured at 2x so the embedded image stays sharp in print.
type Target struct {
	URL           string
	Selector      string
	ViewportWidth int
	Scale         float64
	Timeout       time.Duration
}

// Capturer produces a snapshot of the target element once the page has
// settled. Implementations must not return before the element is visible.
type Capturer interface {
	Capture(ctx context.Context, target Target) (Snapshot, error)
}
