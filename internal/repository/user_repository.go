package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/advert-board/internal/model"
	"github.com/iliyamo/advert-board/internal/query"
	"github.com/iliyamo/advert-board/internal/resource"
)

// UserRepo persists user accounts. List/Detail rows never carry the
// password hash; GetByUsername does, for credential verification during
// login only.
type UserRepo struct {
	db    *sql.DB
	store *Store[model.User]
}

func NewUserRepo(db *sql.DB) *UserRepo {
	cols := []string{"id", "username", "role", "registered_at"}
	scan := func(r rowScanner) (model.User, error) {
		var u model.User
		err := r.Scan(&u.ID, &u.Username, &u.Role, &u.RegisteredAt)
		return u, err
	}
	return &UserRepo{db: db, store: NewStore(db, resource.Users, cols, scan)}
}

// List returns one page of users matching the clause.
func (r *UserRepo) List(ctx context.Context, c query.Clause, p *query.Paginator) ([]model.User, error) {
	return r.store.List(ctx, c, p)
}

// Detail fetches a user by id.
func (r *UserRepo) Detail(ctx context.Context, id uint64) (model.User, error) {
	return r.store.Detail(ctx, id)
}

// Create inserts a new account with the default role and returns the stored
// row.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (model.User, error) {
	id, err := r.store.Insert(ctx, []FieldValue{
		{Column: "username", Value: strings.TrimSpace(username)},
		{Column: "password_hash", Value: passwordHash},
		{Column: "role", Value: model.RoleUser},
	})
	if err != nil {
		return model.User{}, err
	}
	return r.store.Detail(ctx, id)
}

// Update applies a partial update and returns the refreshed row.
func (r *UserRepo) Update(ctx context.Context, id uint64, fields []FieldValue) (model.User, error) {
	if err := r.store.UpdateFields(ctx, id, fields); err != nil {
		return model.User{}, err
	}
	return r.store.Detail(ctx, id)
}

// Delete removes the account; tokens and advertisements go with it via
// foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	return r.store.Delete(ctx, id)
}

// GetByUsername fetches a user including the password hash.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,registered_at FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, fmt.Errorf("user with username=%s %w", username, ErrNotFound)
	}
	return u, err
}
