package repository

import (
	"context"

	"github.com/greenlake/portal/internal/domain/model"
)

// SuborderRepository describes persistence for the suborder projection.
type SuborderRepository interface {
	// Insert writes the row only when absent; a conflict on the Linear id is
	// a no-op. Used for the eager projection at order creation.
	Insert(ctx context.Context, suborder *model.Suborder) error
	// Upsert overwrites all projected fields, insert-or-update keyed by the
	// Linear id. Safe under duplicate delivery.
	Upsert(ctx context.Context, suborder *model.Suborder) error
	Get(ctx context.Context, linearID string) (*model.Suborder, error)
	ListByOrder(ctx context.Context, orderLinearID string) ([]model.Suborder, error)
	// Delete removes the row; deleting a missing row succeeds.
	Delete(ctx context.Context, linearID string) error
}
