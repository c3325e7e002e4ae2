package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/advert-board/internal/query"
	"github.com/iliyamo/advert-board/internal/resource"
)

// mysqlDupKey is the MySQL error number for duplicate entries on a unique
// index.
const mysqlDupKey = 1062

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// FieldValue is one column assignment of a partial update. Handlers build
// the slice in a fixed order so the generated statement is deterministic.
type FieldValue struct {
	Column string
	Value  any
}

// Store implements the four CRUD verbs plus filtered listing for one
// resource kind. It owns only statement shaping and error translation;
// predicates and windows come in from the query package, scanning is
// supplied by the typed repository wrapping it.
type Store[T any] struct {
	db    *sql.DB
	desc  resource.Descriptor
	cols  string // column list for SELECT, comma-joined
	scan  func(rowScanner) (T, error)
}

// NewStore builds a store for the descriptor's table selecting the given
// columns.
func NewStore[T any](db *sql.DB, desc resource.Descriptor, cols []string, scan func(rowScanner) (T, error)) *Store[T] {
	if db == nil || scan == nil {
		panic("nil dependency passed to NewStore")
	}
	return &Store[T]{db: db, desc: desc, cols: strings.Join(cols, ","), scan: scan}
}

// List counts the rows matching the clause, feeds the total to the
// paginator and returns the resulting window in the clause's order.
func (s *Store[T]) List(ctx context.Context, c query.Clause, p *query.Paginator) ([]T, error) {
	var total int
	countSQL := "SELECT COUNT(*) FROM " + s.desc.Table + " WHERE " + c.Where
	if err := s.db.QueryRowContext(ctx, countSQL, c.Args...).Scan(&total); err != nil {
		return nil, err
	}

	offset, limit := p.Window(total)
	dataSQL := "SELECT " + s.cols + " FROM " + s.desc.Table +
		" WHERE " + c.Where +
		" ORDER BY " + strings.Join(c.OrderBy, ", ") +
		" LIMIT ? OFFSET ?"
	args := append(append([]any{}, c.Args...), limit, offset)

	rows, err := s.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0, limit)
	for rows.Next() {
		v, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Detail fetches one record by id.
func (s *Store[T]) Detail(ctx context.Context, id uint64) (T, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+s.cols+" FROM "+s.desc.Table+" WHERE id=? LIMIT 1", id)
	v, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return v, fmt.Errorf("%s with id=%d %w", s.desc.Name, id, ErrNotFound)
	}
	return v, err
}

// Insert persists a new record and returns its id.
func (s *Store[T]) Insert(ctx context.Context, fields []FieldValue) (uint64, error) {
	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		cols[i], marks[i], args[i] = f.Column, "?", f.Value
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO "+s.desc.Table+" ("+strings.Join(cols, ",")+") VALUES ("+strings.Join(marks, ",")+")",
		args...)
	if err != nil {
		return 0, s.translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateFields applies a partial update: only the supplied columns are
// written, everything else stays untouched. An empty field list is a no-op.
func (s *Store[T]) UpdateFields(ctx context.Context, id uint64, fields []FieldValue) error {
	if len(fields) == 0 {
		return nil
	}
	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		sets[i] = f.Column + "=?"
		args = append(args, f.Value)
	}
	args = append(args, id)
	_, err := s.db.ExecContext(ctx,
		"UPDATE "+s.desc.Table+" SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return s.translate(err)
}

// Delete removes the record. Cascades (tokens and advertisements of a
// deleted user) are the schema's responsibility.
func (s *Store[T]) Delete(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+s.desc.Table+" WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s with id=%d %w", s.desc.Name, id, ErrNotFound)
	}
	return nil
}

// translate maps driver errors onto the package sentinels.
func (s *Store[T]) translate(err error) error {
	var my *mysql.MySQLError
	if errors.As(err, &my) && my.Number == mysqlDupKey {
		return fmt.Errorf("%s %w", s.desc.Name, ErrConflict)
	}
	return err
}
