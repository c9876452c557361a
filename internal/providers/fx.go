package providers

import (
	"go.uber.org/fx"

	"github.com/dhruvent/billing/internal/providers/pdf"
)

var Module = fx.Module("providers",
	fx.Provide(pdf.New),
)
