package business

import (
	"github.com/invobook/invobook/internal/business/repository"
	"github.com/invobook/invobook/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
