package capture

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeCapturer drives a headless Chrome tab against the static invoice
// view. Waiting on the element itself is the render-settled signal: the
// screenshot is only taken after the browser has laid the invoice out.
type ChromeCapturer struct {
	log *zap.Logger
}

func NewChromeCapturer(log *zap.Logger) Capturer {
	return &ChromeCapturer{log: log.Named("export.capture")}
}

func (c *ChromeCapturer) Capture(ctx context.Context, target Target) (Snapshot, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	if target.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, target.Timeout)
		defer timeoutCancel()
	}

	scale := target.Scale
	if scale <= 0 {
		scale = 1
	}

	var shot []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(
			int64(target.ViewportWidth), 0,
			chromedp.EmulateScale(scale),
		),
		chromedp.Navigate(target.URL),
		chromedp.WaitVisible(target.Selector, chromedp.ByQuery),
		chromedp.Screenshot(target.Selector, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("capture %s: %w", target.URL, err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode capture: %w", err)
	}

	c.log.Debug("capture.done",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("bytes", len(shot)),
	)

	return Snapshot{PNG: shot, Width: cfg.Width, Height: cfg.Height}, nil
}
