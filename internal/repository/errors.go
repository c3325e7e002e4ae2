// Package repository implements persistence for the advert board on top of
// MySQL. One generic store carries the four CRUD verbs for every resource
// kind; thin typed repositories wrap it per kind. The sentinel errors below
// let handlers map storage failures to HTTP statuses without inspecting
// driver errors themselves.
package repository

import "errors"

// ErrNotFound is returned when no record with the requested id (or unique
// field value) exists. The API deliberately reports this as HTTP 400, not
// 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a uniqueness
// constraint, e.g. a duplicate username or advertisement title. Handlers
// translate it into HTTP 409.
var ErrConflict = errors.New("already exists")
