package model

import "time"

// Token models a row in the `tokens` table. Value is an opaque random UUID
// presented by clients as `Authorization: Token <uuid>`. A token is valid
// while now - CreatedAt stays within the configured TTL; expired rows are
// never renewed in place, a fresh login inserts a new row.
type Token struct {
	ID        uint64    // tokens.id
	UserID    uint64    // tokens.user_id
	Value     string    // tokens.token (unique)
	CreatedAt time.Time // tokens.created_at
}
