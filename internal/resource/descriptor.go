// Package resource declares the capability descriptors that plug a record
// kind into the shared filtering, ordering and CRUD machinery. Adding a new
// listable kind means adding a descriptor here plus a repository scan
// function; no per-kind permission or query code.
package resource

// FieldType drives how a search term is coerced for a column: string columns
// use case-insensitive containment, integer columns exact equality. Time
// columns are orderable but never searchable.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldTime
)

// Column is one orderable column of a resource kind.
type Column struct {
	Name string
	Type FieldType
}

// Descriptor describes one resource kind to the query and store layers.
type Descriptor struct {
	Name         string   // kind name used in rights lookups, e.g. "user"
	Table        string   // backing table
	Columns      []Column // every column exposed for ordering
	SearchFields []string // whitelist of searchable column names
	OwnerColumn  string   // column compared against the acting user's id
}

// Column returns the named column of the kind, reporting whether it exists.
func (d Descriptor) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Users describes the user account kind. The password hash column is
// deliberately absent: it is neither searchable nor a sensible sort key.
var Users = Descriptor{
	Name:  "user",
	Table: "users",
	Columns: []Column{
		{Name: "id", Type: FieldInt},
		{Name: "username", Type: FieldString},
		{Name: "role", Type: FieldString},
		{Name: "registered_at", Type: FieldTime},
	},
	SearchFields: []string{"username"},
	OwnerColumn:  "id",
}

// Advertisements describes the for-sale advertisement kind.
var Advertisements = Descriptor{
	Name:  "advertisement",
	Table: "advertisements",
	Columns: []Column{
		{Name: "id", Type: FieldInt},
		{Name: "user_id", Type: FieldInt},
		{Name: "title", Type: FieldString},
		{Name: "description", Type: FieldString},
		{Name: "price", Type: FieldInt},
		{Name: "created_at", Type: FieldTime},
		{Name: "updated_at", Type: FieldTime},
	},
	SearchFields: []string{"title", "description", "price"},
	OwnerColumn:  "user_id",
}
