package model

import "time"

// Role names known to the rights schema. The set is fixed; roles are not
// user-extensible at runtime. RoleAnon is implicit: it is never stored on a
// user row and exists only to address the static rights of unauthenticated
// callers.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleAnon  = "anon"
)

// User mirrors the `users` table. PasswordHash holds a bcrypt digest; the
// plain password never reaches the model layer.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique)
	PasswordHash string    // users.password_hash
	Role         string    // users.role (admin|user)
	RegisteredAt time.Time // users.registered_at
}

// OwnerID implements Owned: a user account is owned by itself.
func (u User) OwnerID() uint64 { return u.ID }
