package export

import (
	"go.uber.org/fx"

	"github.com/dhruvent/billing/internal/export/capture"
)

var Module = fx.Module("export",
	fx.Provide(
		capture.NewChromeCapturer,
		NewExporter,
	),
)
