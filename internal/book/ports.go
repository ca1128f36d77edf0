package book

import (
	"context"

	"bookstore/internal/store"
)

// Repository defines the contract for book persistence. Every operation
// runs against the caller-supplied session so the unit of work stays
// scoped to one request.
type Repository interface {
	List(ctx context.Context, sess store.Querier) ([]Book, error)
	Get(ctx context.Context, sess store.Querier, id int64) (Book, error)
	Create(ctx context.Context, sess store.Querier, params CreateParams) (Book, error)
	Update(ctx context.Context, sess store.Querier, id int64, params UpdateParams) (Book, error)
	Delete(ctx context.Context, sess store.Querier, id int64) error
}
