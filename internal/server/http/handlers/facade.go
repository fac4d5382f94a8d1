package handlers

import (
	"context"

	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/usecase"
)

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, input usecase.OrderInput) (*usecase.OrderResult, error)
	UpdateOrder(ctx context.Context, id string, input usecase.OrderInput) (*usecase.OrderResult, error)
	CancelOrder(ctx context.Context, id string) (*usecase.OrderResult, error)
	UncancelOrder(ctx context.Context, id string) (*usecase.OrderResult, error)
	Order(ctx context.Context, id string) (*usecase.OrderView, error)
	Orders(ctx context.Context) ([]usecase.OrderView, error)
}

// WebhookFacade ingests tracker change events.
type WebhookFacade interface {
	IngestEvent(ctx context.Context, event model.LinearEvent) (usecase.Outcome, error)
}

// PortalFacade aggregates the operations used across handlers.
type PortalFacade interface {
	OrderFacade
	WebhookFacade
}

// HealthChecker reports backing store health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
