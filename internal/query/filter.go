// Package query turns untrusted list parameters (search term, order tokens,
// page number) into safe SQL fragments and pagination windows. It issues no
// I/O itself; the repository layer composes its output into statements.
package query

import (
	"strconv"
	"strings"

	"github.com/iliyamo/advert-board/internal/resource"
)

// Clause is the validated predicate/ordering pair produced by BuildFilter.
// Where only ever contains whitelisted column names and placeholders, so it
// can be interpolated into a statement together with Args.
type Clause struct {
	Where   string
	Args    []any
	OrderBy []string // e.g. "price DESC", applied in sequence
}

// BuildFilter validates a search term and order tokens against the kind's
// descriptor.
//
// Search: nil means match-all. Otherwise the term is coerced against every
// whitelisted field (strings as-is, integers via parse, skipping the field
// when the parse fails) and the per-field conditions are OR-ed: a row matches
// if any field matches. A term no field can coerce yields an always-false
// predicate, not an error.
//
// Ordering: tokens may carry a leading '-' (descending) or '+' (ascending);
// tokens naming unknown columns are dropped. When nothing remains the order
// falls back to "id ASC" so that pagination stays deterministic.
func BuildFilter(desc resource.Descriptor, search *string, orderBy []string) Clause {
	c := Clause{Where: "1 = 1"}

	if search != nil {
		conds := []string{}
		for _, name := range desc.SearchFields {
			col, ok := desc.Column(name)
			if !ok {
				continue
			}
			switch col.Type {
			case resource.FieldString:
				conds = append(conds, "LOWER("+col.Name+") LIKE ?")
				c.Args = append(c.Args, "%"+strings.ToLower(*search)+"%")
			case resource.FieldInt:
				n, err := strconv.ParseInt(strings.TrimSpace(*search), 10, 64)
				if err != nil {
					continue // term does not coerce to this field, skip it
				}
				conds = append(conds, col.Name+" = ?")
				c.Args = append(c.Args, n)
			}
		}
		if len(conds) == 0 {
			c.Where = "0 = 1"
			c.Args = nil
		} else {
			c.Where = "(" + strings.Join(conds, " OR ") + ")"
		}
	}

	for _, token := range orderBy {
		name, dir := token, "ASC"
		switch {
		case strings.HasPrefix(token, "-"):
			name, dir = token[1:], "DESC"
		case strings.HasPrefix(token, "+"):
			name = token[1:]
		}
		if _, ok := desc.Column(name); !ok {
			continue
		}
		c.OrderBy = append(c.OrderBy, name+" "+dir)
	}
	if len(c.OrderBy) == 0 {
		c.OrderBy = []string{"id ASC"}
	}
	return c
}

// ParseOrderTokens splits a comma-joined order_by query value into trimmed
// tokens. Whitespace inside tokens is stripped; empty tokens are dropped.
func ParseOrderTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ReplaceAll(part, " ", "")
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
