package app

import (
	"context"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/config"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/usecase"
)

// PortalFacade aggregates the order lifecycle, suborder projection and
// tracker access behind one surface for the HTTP layer and the refresh
// worker.
type PortalFacade struct {
	orders    *usecase.OrderUseCase
	suborders *usecase.SuborderUseCase
	client    linear.Client
	linear    config.Linear
}

// NewPortalFacade constructs PortalFacade.
func NewPortalFacade(orders *usecase.OrderUseCase, suborders *usecase.SuborderUseCase, client linear.Client, cfg *config.Config) *PortalFacade {
	return &PortalFacade{orders: orders, suborders: suborders, client: client, linear: cfg.Linear}
}

func (f *PortalFacade) CreateOrder(ctx context.Context, input usecase.OrderInput) (*usecase.OrderResult, error) {
	return f.orders.Create(ctx, input)
}

func (f *PortalFacade) UpdateOrder(ctx context.Context, id string, input usecase.OrderInput) (*usecase.OrderResult, error) {
	return f.orders.Update(ctx, id, input)
}

func (f *PortalFacade) CancelOrder(ctx context.Context, id string) (*usecase.OrderResult, error) {
	return f.orders.Cancel(ctx, id)
}

func (f *PortalFacade) UncancelOrder(ctx context.Context, id string) (*usecase.OrderResult, error) {
	return f.orders.Uncancel(ctx, id)
}

func (f *PortalFacade) Order(ctx context.Context, id string) (*usecase.OrderView, error) {
	return f.orders.Get(ctx, id)
}

func (f *PortalFacade) Orders(ctx context.Context) ([]usecase.OrderView, error) {
	return f.orders.List(ctx)
}

func (f *PortalFacade) IngestEvent(ctx context.Context, event model.LinearEvent) (usecase.Outcome, error) {
	return f.suborders.ApplyEvent(ctx, event)
}

// SuborderIssues fetches every issue in the suborders project. Used by the
// refresh worker to backfill deliveries the webhook missed.
func (f *PortalFacade) SuborderIssues(ctx context.Context) ([]linear.Issue, error) {
	return f.client.ListProjectIssues(ctx, f.linear.SubordersProjectID)
}
