// Package server exposes the HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invobook/invobook/internal/business"
	businessdomain "github.com/invobook/invobook/internal/business/domain"
	"github.com/invobook/invobook/internal/config"
	"github.com/invobook/invobook/internal/customer"
	customerdomain "github.com/invobook/invobook/internal/customer/domain"
	"github.com/invobook/invobook/internal/invoice"
	invoicedomain "github.com/invobook/invobook/internal/invoice/domain"
	"github.com/invobook/invobook/internal/observability/metrics"
	"github.com/invobook/invobook/internal/product"
	productdomain "github.com/invobook/invobook/internal/product/domain"
	"github.com/invobook/invobook/internal/settings"
	settingsdomain "github.com/invobook/invobook/internal/settings/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	metrics.Module,
	fx.Provide(NewEngine),

	business.Module,
	settings.Module,
	customer.Module,
	product.Module,
	invoice.Module,

	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	metrics     *metrics.Metrics
	businessSvc businessdomain.Service
	settingsSvc settingsdomain.Service
	customerSvc customerdomain.Service
	productSvc  productdomain.Service
	invoiceSvc  invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Metrics     *metrics.Metrics
	BusinessSvc businessdomain.Service
	SettingsSvc settingsdomain.Service
	CustomerSvc customerdomain.Service
	ProductSvc  productdomain.Service
	InvoiceSvc  invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		metrics:     p.Metrics,
		businessSvc: p.BusinessSvc,
		settingsSvc: p.SettingsSvc,
		customerSvc: p.CustomerSvc,
		productSvc:  p.ProductSvc,
		invoiceSvc:  p.InvoiceSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/business", s.GetBusiness)
	api.PUT("/business", s.UpdateBusiness)

	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)

	customers := api.Group("/customers")
	{
		customers.POST("", s.CreateCustomer)
		customers.GET("", s.ListCustomers)
		customers.GET("/:id", s.GetCustomer)
		customers.PATCH("/:id", s.UpdateCustomer)
		customers.DELETE("/:id", s.DeleteCustomer)
	}

	products := api.Group("/products")
	{
		products.POST("", s.CreateProduct)
		products.GET("", s.ListProducts)
		products.GET("/:id", s.GetProduct)
		products.PATCH("/:id", s.UpdateProduct)
		products.DELETE("/:id", s.DeleteProduct)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("", s.CreateInvoice)
		invoices.GET("", s.ListInvoices)
		invoices.GET("/:id", s.GetInvoice)
		invoices.PATCH("/:id", s.UpdateInvoice)
		invoices.DELETE("/:id", s.DeleteInvoice)
		invoices.GET("/:id/pdf", s.DownloadInvoicePDF)
	}
}
