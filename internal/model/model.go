// Package model declares the persistent record types of the advert board.
// The structs map 1:1 onto database columns; handlers define separate
// response types with JSON tags.
package model

// Owned is implemented by every record that carries an owner, used by the
// rights evaluator for owner-only checks. Which column counts as "the owner"
// is the record's own business: a user owns itself, an advertisement is owned
// by the user that created it.
type Owned interface {
	OwnerID() uint64
}
