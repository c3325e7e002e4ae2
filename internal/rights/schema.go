package rights

import "github.com/iliyamo/advert-board/internal/model"

// Right is the permission record for one role/resource-kind pair: four
// independent action flags plus the owner-only marker.
//
// OwnerOnly=true means update/delete additionally require the acting user to
// be the record's owner; false lets any sufficiently privileged role act on
// any instance.
type Right struct {
	OwnerOnly bool
	Read      bool
	Create    bool
	Update    bool
	Delete    bool
}

// Schema maps role name -> resource kind -> Right. A role owns at most one
// Right per kind; pairs absent from the schema carry no rights at all.
type Schema map[string]map[string]Right

// DefaultSchema is the shipped rights seed. Admins act on anything, users
// act on what they own, anonymous callers may read everything and register
// an account. Anon is the only role whose rights are purely static; it never
// corresponds to a stored user row.
func DefaultSchema() Schema {
	return Schema{
		model.RoleAdmin: {
			"user":          {Read: true, Create: true, Update: true, Delete: true},
			"advertisement": {Read: true, Create: true, Update: true, Delete: true},
		},
		model.RoleUser: {
			"user":          {OwnerOnly: true, Read: true, Create: true, Update: true, Delete: true},
			"advertisement": {OwnerOnly: true, Read: true, Create: true, Update: true, Delete: true},
		},
		model.RoleAnon: {
			"user":          {Read: true, Create: true},
			"advertisement": {Read: true},
		},
	}
}
