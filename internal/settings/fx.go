package settings

import (
	"github.com/invobook/invobook/internal/settings/repository"
	"github.com/invobook/invobook/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
