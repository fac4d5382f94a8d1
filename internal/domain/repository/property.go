package repository

import (
	"context"

	"github.com/greenlake/portal/internal/domain/model"
)

// PropertyRepository reads the property catalog mirror. The mirror is
// refreshed out of band; this interface never writes.
type PropertyRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Property, error)
}
