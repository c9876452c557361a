package invoice

import (
	"go.uber.org/fx"

	"github.com/dhruvent/billing/internal/invoice/render"
	"github.com/dhruvent/billing/internal/invoice/repository"
	"github.com/dhruvent/billing/internal/invoice/service"
)

var Module = fx.Module("invoice",
	fx.Provide(
		repository.NewDraftRepository,
		service.NewService,
		render.NewRenderer,
	),
)
