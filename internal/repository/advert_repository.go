package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/advert-board/internal/model"
	"github.com/iliyamo/advert-board/internal/query"
	"github.com/iliyamo/advert-board/internal/resource"
)

// AdvertRepo persists for-sale advertisements.
type AdvertRepo struct {
	store *Store[model.Advertisement]
}

func NewAdvertRepo(db *sql.DB) *AdvertRepo {
	cols := []string{"id", "user_id", "title", "description", "price", "created_at", "updated_at"}
	scan := func(r rowScanner) (model.Advertisement, error) {
		var a model.Advertisement
		err := r.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Price, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	}
	return &AdvertRepo{store: NewStore(db, resource.Advertisements, cols, scan)}
}

// List returns one page of advertisements matching the clause.
func (r *AdvertRepo) List(ctx context.Context, c query.Clause, p *query.Paginator) ([]model.Advertisement, error) {
	return r.store.List(ctx, c, p)
}

// Detail fetches an advertisement by id.
func (r *AdvertRepo) Detail(ctx context.Context, id uint64) (model.Advertisement, error) {
	return r.store.Detail(ctx, id)
}

// Create inserts a new advertisement owned by userID and returns the stored
// row with its database-assigned timestamps.
func (r *AdvertRepo) Create(ctx context.Context, userID uint64, title, description string, price int64) (model.Advertisement, error) {
	id, err := r.store.Insert(ctx, []FieldValue{
		{Column: "user_id", Value: userID},
		{Column: "title", Value: title},
		{Column: "description", Value: description},
		{Column: "price", Value: price},
	})
	if err != nil {
		return model.Advertisement{}, err
	}
	return r.store.Detail(ctx, id)
}

// Update applies a partial update and returns the refreshed row. updated_at
// is bumped by the database itself.
func (r *AdvertRepo) Update(ctx context.Context, id uint64, fields []FieldValue) (model.Advertisement, error) {
	if err := r.store.UpdateFields(ctx, id, fields); err != nil {
		return model.Advertisement{}, err
	}
	return r.store.Detail(ctx, id)
}

// Delete removes the advertisement.
func (r *AdvertRepo) Delete(ctx context.Context, id uint64) error {
	return r.store.Delete(ctx, id)
}
