package repository

import (
	"context"
	"time"

	"github.com/greenlake/portal/internal/domain/model"
)

// OrderRepository describes persistence operations for orders.
type OrderRepository interface {
	// NextID allocates the next order identifier for the given day. The
	// sequence is monotonic within a day and resets daily.
	NextID(ctx context.Context, day time.Time) (string, error)
	Insert(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// ListMirrored returns orders that carry a Linear issue id, newest first.
	ListMirrored(ctx context.Context) ([]model.Order, error)
	// UpdateFields persists the mutable order fields after a successful
	// remote update.
	UpdateFields(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
