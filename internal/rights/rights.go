// Package rights decides whether an acting user (or an anonymous caller) may
// perform a set of actions on a resource kind. The table is built once at
// startup from a static schema and is read-only afterwards, so Evaluate is
// safe to call from concurrent request handlers.
package rights

import (
	"errors"
	"fmt"

	"github.com/iliyamo/advert-board/internal/model"
)

// ErrUnauthenticated is returned when a request fails the rights check and
// no credentials were presented at all. Handlers translate it into 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when credentials were presented but the effective
// rights are insufficient. Handlers translate it into 403.
var ErrForbidden = errors.New("forbidden")

// Request names the actions a caller wants to perform. Setting OwnerOnly
// asks the evaluator to apply the ownership gate when the effective Right
// demands it; the four action flags are checked against the stored flags.
type Request struct {
	OwnerOnly bool
	Read      bool
	Create    bool
	Update    bool
	Delete    bool
}

// Table holds the effective rights per role and resource kind.
type Table struct {
	schema Schema
}

// NewTable copies the schema into an immutable lookup table.
func NewTable(s Schema) *Table {
	cp := make(Schema, len(s))
	for role, kinds := range s {
		cp[role] = make(map[string]Right, len(kinds))
		for kind, r := range kinds {
			cp[role][kind] = r
		}
	}
	return &Table{schema: cp}
}

// Evaluate checks the requested actions for actor (nil means anonymous)
// against the effective Right for kind. target carries the object under
// mutation and is mandatory whenever the ownership gate applies; passing
// none in that situation is a bug in the calling handler, not a request
// error, and panics.
//
// Any (role, kind) pair without a Right denies. A requested action passes
// only when the stored flag grants it; actions not requested are ignored.
// Denials surface as ErrUnauthenticated for anonymous callers and
// ErrForbidden otherwise.
func (t *Table) Evaluate(actor *model.User, kind string, target model.Owned, req Request) error {
	role := model.RoleAnon
	if actor != nil {
		role = actor.Role
	}
	eff, ok := t.schema[role][kind]
	if !ok {
		return t.deny(actor, fmt.Sprintf("no rights for %s on %s", role, kind))
	}

	if req.OwnerOnly && eff.OwnerOnly {
		if target == nil {
			panic("rights: owner-only check requires a target object")
		}
		if actor == nil || actor.ID != target.OwnerID() {
			return t.deny(actor, "only the owner may perform this action")
		}
	}

	if (req.Read && !eff.Read) ||
		(req.Create && !eff.Create) ||
		(req.Update && !eff.Update) ||
		(req.Delete && !eff.Delete) {
		return t.deny(actor, fmt.Sprintf("insufficient rights on %s", kind))
	}
	return nil
}

func (t *Table) deny(actor *model.User, msg string) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}
