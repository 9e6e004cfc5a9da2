package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdiscovery/internal/domain"
)

type fieldKind uint8

const (
	plainField fieldKind = iota
	timestampField
)

type fieldSpec struct {
	kind     fieldKind
	nullable bool
}

// entity describes a table to the upsert engine: its declared mutable columns,
// how each of them is typed, and the owner column if rows belong to a user.
type entity struct {
	table   string
	columns []string
	fields  map[string]fieldSpec
	owner   string
}

var (
	cityEntity = &entity{
		table:   "cities",
		columns: []string{"name"},
		fields:  map[string]fieldSpec{"name": {kind: plainField}},
	}
	subjectEntity = &entity{
		table:   "subjects",
		columns: []string{"name"},
		fields:  map[string]fieldSpec{"name": {kind: plainField}},
	}
	eventEntity = &entity{
		table:   "events",
		columns: []string{"name", "start_time", "end_time", "city"},
		fields: map[string]fieldSpec{
			"name":       {kind: plainField},
			"start_time": {kind: timestampField, nullable: true},
			"end_time":   {kind: timestampField, nullable: true},
			"city":       {kind: plainField, nullable: true},
		},
		owner: "user_id",
	}
	filterEntity = &entity{
		table:   "user_filters",
		columns: []string{"start_time", "end_time", "city"},
		fields: map[string]fieldSpec{
			"start_time": {kind: timestampField, nullable: true},
			"end_time":   {kind: timestampField, nullable: true},
			"city":       {kind: plainField, nullable: true},
		},
		owner: "user_id",
	}
)

// row is a table row as returned by the upsert engine.
type row struct {
	ID        int64
	Owner     int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Values    map[string]any
}

func (e *entity) selectList() string {
	cols := []string{"id", "created_at", "updated_at"}
	if e.owner != "" {
		cols = append(cols, e.owner)
	}
	return strings.Join(append(cols, e.columns...), ", ")
}

func (e *entity) scan(sc interface{ Scan(dest ...any) error }) (*row, error) {
	r := &row{Values: make(map[string]any, len(e.columns))}
	dest := []any{&r.ID, &r.CreatedAt, &r.UpdatedAt}
	if e.owner != "" {
		dest = append(dest, &r.Owner)
	}
	vals := make([]any, len(e.columns))
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}
	for i, col := range e.columns {
		r.Values[col] = vals[i]
	}
	return r, nil
}

// upsert creates a row from rec when it carries no identity, or updates the row
// with rec.ID in place. On update only the columns named in mutable are touched;
// an empty mutable list turns the call into a lookup. With enforceOwnership set,
// an update of a row owned by someone other than userID returns the row unchanged.
// Nothing is committed: the caller owns the transaction.
func upsert(ctx context.Context, db DBTX, e *entity, mutable []string, rec domain.Record, userID int64, enforceOwnership bool) (*row, error) {
	if rec.ID != 0 {
		return update(ctx, db, e, mutable, rec, userID, enforceOwnership)
	}
	return insert(ctx, db, e, rec, userID)
}

func fetch(ctx context.Context, db DBTX, e *entity, id int64) (*row, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, e.selectList(), e.table)
	r, err := e.scan(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %d: %w", e.table, id, domain.ErrNotFound)
		}
		return nil, err
	}
	return r, nil
}

func update(ctx context.Context, db DBTX, e *entity, mutable []string, rec domain.Record, userID int64, enforceOwnership bool) (*row, error) {
	current, err := fetch(ctx, db, e, rec.ID)
	if err != nil {
		return nil, err
	}
	if enforceOwnership && e.owner != "" && current.Owner != userID {
		return current, nil
	}

	var sets []string
	var args []any
	for _, name := range mutable {
		fs, ok := e.fields[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown field %q", e.table, name)
		}
		v := rec.Fields[name]
		if v.State == domain.Absent {
			continue
		}
		val, err := convert(name, fs, v)
		if err != nil {
			return nil, err
		}
		if val == nil && !fs.nullable {
			return nil, fmt.Errorf("%s cannot be null: %w", name, domain.ErrInvalidInput)
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", name, len(args)))
	}
	if len(sets) == 0 {
		return current, nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, current.ID)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`,
		e.table, strings.Join(sets, ", "), len(args), e.selectList())
	return e.scan(db.QueryRowContext(ctx, query, args...))
}

func insert(ctx context.Context, db DBTX, e *entity, rec domain.Record, userID int64) (*row, error) {
	var cols, placeholders []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	for _, name := range e.columns {
		fs := e.fields[name]
		v := rec.Fields[name]
		if v.State == domain.Absent {
			continue
		}
		val, err := convert(name, fs, v)
		if err != nil {
			return nil, err
		}
		// Nulls for NOT NULL columns are dropped and left to the column default.
		if val == nil && !fs.nullable {
			continue
		}
		add(name, val)
	}
	if e.owner != "" {
		add(e.owner, userID)
	}

	var query string
	if len(cols) == 0 {
		query = fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING %s`, e.table, e.selectList())
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			e.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), e.selectList())
	}
	return e.scan(db.QueryRowContext(ctx, query, args...))
}

// convert turns an input value into a column value. nil means SQL NULL.
func convert(name string, fs fieldSpec, v domain.Value) (any, error) {
	if v.State != domain.Present || v.V == nil {
		return nil, nil
	}
	if fs.kind != timestampField {
		return v.V, nil
	}
	switch t := v.V.(type) {
	case time.Time:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		ts, err := domain.ParseTimestamp(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return ts, nil
	}
	return nil, fmt.Errorf("%s: unsupported timestamp value %T: %w", name, v.V, domain.ErrInvalidInput)
}

func (r *row) text(col string) string {
	switch v := r.Values[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func (r *row) int64Ptr(col string) *int64 {
	var n int64
	switch v := r.Values[col].(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int:
		n = int64(v)
	default:
		return nil
	}
	return &n
}

func (r *row) timePtr(col string) *time.Time {
	if t, ok := r.Values[col].(time.Time); ok {
		return &t
	}
	return nil
}
