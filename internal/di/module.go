package di

import (
	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/app"
	"github.com/greenlake/portal/internal/config"
	"github.com/greenlake/portal/internal/logger"
	"github.com/greenlake/portal/internal/pkg/signature"
	"github.com/greenlake/portal/internal/server/http/handlers"
	"github.com/greenlake/portal/internal/server/http/router"
	"github.com/greenlake/portal/internal/storage/postgres"
	"github.com/greenlake/portal/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		signature.Module,
		postgres.Module,
		linear.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
