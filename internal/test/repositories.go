package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory and allows tests to customize
// behaviour via function overrides.
type OrderRepositoryStub struct {
	Orders map[string]*model.Order
	Seq    int
	Err    error

	NextIDFn       func(context.Context, time.Time) (string, error)
	InsertFn       func(context.Context, *model.Order) error
	GetFn          func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context) ([]model.Order, error)
	ListMirroredFn func(context.Context) ([]model.Order, error)
	UpdateFieldsFn func(context.Context, *model.Order) error
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// NextID allocates sequential identifiers for the supplied day.
func (s *OrderRepositoryStub) NextID(ctx context.Context, day time.Time) (string, error) {
	if s.NextIDFn != nil {
		return s.NextIDFn(ctx, day)
	}
	if s.Err != nil {
		return "", s.Err
	}
	s.Seq++
	return fmt.Sprintf("%s-%03d", day.Format("20060102"), s.Seq), nil
}

// Insert stores order unless stub has explicit error.
func (s *OrderRepositoryStub) Insert(ctx context.Context, order *model.Order) error {
	if s.InsertFn != nil {
		return s.InsertFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	clone := *order
	s.Orders[order.ID] = &clone
	return nil
}

// Get fetches order by identifier or returns not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		out = append(out, *order)
	}
	return out, nil
}

// ListMirrored returns stored orders carrying a Linear id.
func (s *OrderRepositoryStub) ListMirrored(ctx context.Context) ([]model.Order, error) {
	if s.ListMirroredFn != nil {
		return s.ListMirroredFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for _, order := range s.Orders {
		if order.LinearID != nil {
			out = append(out, *order)
		}
	}
	return out, nil
}

// UpdateFields replaces the mutable fields of a stored order.
func (s *OrderRepositoryStub) UpdateFields(ctx context.Context, order *model.Order) error {
	if s.UpdateFieldsFn != nil {
		return s.UpdateFieldsFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[order.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	clone := *order
	s.Orders[order.ID] = &clone
	return nil
}

// UpdateStatus sets the status of a stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	return nil
}

// SuborderRepositoryStub keeps the suborder projection in-memory.
type SuborderRepositoryStub struct {
	Suborders map[string]*model.Suborder
	Err       error

	InsertFn      func(context.Context, *model.Suborder) error
	UpsertFn      func(context.Context, *model.Suborder) error
	GetFn         func(context.Context, string) (*model.Suborder, error)
	ListByOrderFn func(context.Context, string) ([]model.Suborder, error)
	DeleteFn      func(context.Context, string) error
}

// NewSuborderRepositoryStub constructs stub repository with initialized maps.
func NewSuborderRepositoryStub() *SuborderRepositoryStub {
	return &SuborderRepositoryStub{Suborders: make(map[string]*model.Suborder)}
}

// Insert stores the row only when absent.
func (s *SuborderRepositoryStub) Insert(ctx context.Context, suborder *model.Suborder) error {
	if s.InsertFn != nil {
		return s.InsertFn(ctx, suborder)
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Suborders == nil {
		s.Suborders = make(map[string]*model.Suborder)
	}
	if _, exists := s.Suborders[suborder.LinearID]; exists {
		return nil
	}
	clone := *suborder
	s.Suborders[suborder.LinearID] = &clone
	return nil
}

// Upsert overwrites the stored row keyed by the Linear id.
func (s *SuborderRepositoryStub) Upsert(ctx context.Context, suborder *model.Suborder) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, suborder)
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Suborders == nil {
		s.Suborders = make(map[string]*model.Suborder)
	}
	clone := *suborder
	s.Suborders[suborder.LinearID] = &clone
	return nil
}

// Get fetches suborder by Linear id or returns not found.
func (s *SuborderRepositoryStub) Get(ctx context.Context, linearID string) (*model.Suborder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, linearID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if suborder, ok := s.Suborders[linearID]; ok {
		clone := *suborder
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByOrder returns stored suborders whose parent matches.
func (s *SuborderRepositoryStub) ListByOrder(ctx context.Context, orderLinearID string) ([]model.Suborder, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderLinearID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Suborder
	for _, suborder := range s.Suborders {
		if suborder.OrderLinearID == orderLinearID {
			out = append(out, *suborder)
		}
	}
	return out, nil
}

// Delete removes the row; deleting a missing row succeeds.
func (s *SuborderRepositoryStub) Delete(ctx context.Context, linearID string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, linearID)
	}
	if s.Err != nil {
		return s.Err
	}
	delete(s.Suborders, linearID)
	return nil
}

// PropertyRepositoryStub serves a fixed property catalog.
type PropertyRepositoryStub struct {
	Properties map[string]*model.Property
	Err        error

	GetByCodeFn func(context.Context, string) (*model.Property, error)
}

// NewPropertyRepositoryStub constructs stub repository with initialized maps.
func NewPropertyRepositoryStub() *PropertyRepositoryStub {
	return &PropertyRepositoryStub{Properties: make(map[string]*model.Property)}
}

// GetByCode fetches property by code or returns not found.
func (s *PropertyRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Property, error) {
	if s.GetByCodeFn != nil {
		return s.GetByCodeFn(ctx, code)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if property, ok := s.Properties[code]; ok {
		return property, nil
	}
	return nil, domainErrors.ErrNotFound
}
