package model

import "time"

// Advertisement mirrors the `advertisements` table. Rows are removed together
// with their owner via the user_id foreign key (ON DELETE CASCADE); UpdatedAt
// is refreshed by the database on every mutation.
type Advertisement struct {
	ID          uint64    // advertisements.id
	UserID      uint64    // advertisements.user_id (owner)
	Title       string    // advertisements.title (unique)
	Description string    // advertisements.description
	Price       int64     // advertisements.price
	CreatedAt   time.Time // advertisements.created_at
	UpdatedAt   time.Time // advertisements.updated_at
}

// OwnerID implements Owned.
func (a Advertisement) OwnerID() uint64 { return a.UserID }
