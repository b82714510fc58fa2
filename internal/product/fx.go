package product

import (
	"github.com/invobook/invobook/internal/product/repository"
	"github.com/invobook/invobook/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
