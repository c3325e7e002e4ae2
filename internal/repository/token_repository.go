package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/advert-board/internal/model"
)

// TokenRepo issues and validates opaque bearer tokens. A token row is never
// renewed: each login inserts a fresh one and old rows simply age out of the
// TTL window until a logout deletes them.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Issue creates a token row for the user with a random UUID value.
func (r *TokenRepo) Issue(ctx context.Context, userID uint64) (model.Token, error) {
	t := model.Token{
		UserID:    userID,
		Value:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tokens (user_id, token, created_at) VALUES (?,?,?)",
		t.UserID, t.Value, t.CreatedAt)
	if err != nil {
		return model.Token{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Token{}, err
	}
	t.ID = uint64(id)
	return t, nil
}

// Resolve returns the user behind a token value, provided the row exists and
// was created within ttl. Expired and unknown tokens are indistinguishable:
// both report ErrNotFound, which the identity middleware maps to 401.
func (r *TokenRepo) Resolve(ctx context.Context, value string, ttl time.Duration) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.role, u.registered_at
		 FROM tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.token=? AND t.created_at >= ? LIMIT 1`,
		value, time.Now().UTC().Add(-ttl)).
		Scan(&u.ID, &u.Username, &u.Role, &u.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, fmt.Errorf("token %w", ErrNotFound)
	}
	return u, err
}

// Delete removes a token row, terminating that session.
func (r *TokenRepo) Delete(ctx context.Context, value string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tokens WHERE token=?", value)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("token %w", ErrNotFound)
	}
	return nil
}
