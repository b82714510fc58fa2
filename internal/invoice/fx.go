package invoice

import (
	"github.com/invobook/invobook/internal/invoice/generate"
	"github.com/invobook/invobook/internal/invoice/render"
	"github.com/invobook/invobook/internal/invoice/repository"
	"github.com/invobook/invobook/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(generate.NewGenerator),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
