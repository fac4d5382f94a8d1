package test

import (
	"context"
	"sync"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/usecase"
)

// PortalFacadeStub provides controllable behaviour for handler and worker
// tests.
type PortalFacadeStub struct {
	CreateFn         func(context.Context, usecase.OrderInput) (*usecase.OrderResult, error)
	UpdateFn         func(context.Context, string, usecase.OrderInput) (*usecase.OrderResult, error)
	CancelFn         func(context.Context, string) (*usecase.OrderResult, error)
	UncancelFn       func(context.Context, string) (*usecase.OrderResult, error)
	OrderFn          func(context.Context, string) (*usecase.OrderView, error)
	OrdersFn         func(context.Context) ([]usecase.OrderView, error)
	IngestFn         func(context.Context, model.LinearEvent) (usecase.Outcome, error)
	SuborderIssuesFn func(context.Context) ([]linear.Issue, error)

	mu     sync.Mutex
	Events []model.LinearEvent
}

func (s *PortalFacadeStub) CreateOrder(ctx context.Context, input usecase.OrderInput) (*usecase.OrderResult, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, input)
	}
	return &usecase.OrderResult{Order: &model.Order{ID: "20240101-001"}}, nil
}

func (s *PortalFacadeStub) UpdateOrder(ctx context.Context, id string, input usecase.OrderInput) (*usecase.OrderResult, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, input)
	}
	return &usecase.OrderResult{Order: &model.Order{ID: id}}, nil
}

func (s *PortalFacadeStub) CancelOrder(ctx context.Context, id string) (*usecase.OrderResult, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	return &usecase.OrderResult{Order: &model.Order{ID: id, Status: model.OrderStatusCanceled}}, nil
}

func (s *PortalFacadeStub) UncancelOrder(ctx context.Context, id string) (*usecase.OrderResult, error) {
	if s.UncancelFn != nil {
		return s.UncancelFn(ctx, id)
	}
	return &usecase.OrderResult{Order: &model.Order{ID: id, Status: model.OrderStatusTodo}}, nil
}

func (s *PortalFacadeStub) Order(ctx context.Context, id string) (*usecase.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &usecase.OrderView{Order: model.Order{ID: id}}, nil
}

func (s *PortalFacadeStub) Orders(ctx context.Context) ([]usecase.OrderView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return nil, nil
}

// IngestEvent records the event and delegates to the override when present.
func (s *PortalFacadeStub) IngestEvent(ctx context.Context, event model.LinearEvent) (usecase.Outcome, error) {
	s.mu.Lock()
	s.Events = append(s.Events, event)
	s.mu.Unlock()
	if s.IngestFn != nil {
		return s.IngestFn(ctx, event)
	}
	return usecase.Outcome{Status: usecase.OutcomeOK, Action: usecase.ActionUpserted, LinearID: event.Issue.ID}, nil
}

// IngestedEvents returns a copy of recorded events.
func (s *PortalFacadeStub) IngestedEvents() []model.LinearEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LinearEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

func (s *PortalFacadeStub) SuborderIssues(ctx context.Context) ([]linear.Issue, error) {
	if s.SuborderIssuesFn != nil {
		return s.SuborderIssuesFn(ctx)
	}
	return nil, nil
}
