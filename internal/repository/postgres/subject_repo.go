package postgres

import (
	"context"
	"fmt"

	"eventdiscovery/internal/domain"

	"github.com/lib/pq"
)

type subjectRepository struct {
	DB DBTX
}

// NewSubjectRepository returns a domain.SubjectRepository implemented with Postgres.
func NewSubjectRepository(db DBTX) domain.SubjectRepository {
	return &subjectRepository{DB: db}
}

func (r *subjectRepository) Resolve(ctx context.Context, in domain.SubjectInput, userID int64) (*domain.Subject, error) {
	row, err := upsert(ctx, r.DB, subjectEntity, nil, in.Record(), userID, false)
	if err != nil {
		return nil, err
	}
	return &domain.Subject{ID: row.ID, Name: row.text("name"), CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}, nil
}

func (r *subjectRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Subject, error) {
	subjects := make([]*domain.Subject, 0, len(ids))
	if len(ids) == 0 {
		return subjects, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM subjects WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, &s)
	}
	return subjects, rows.Err()
}

func (r *subjectRepository) ListByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*domain.Subject, error) {
	return r.listLinked(ctx, eventSubjects, eventIDs)
}

func (r *subjectRepository) ListByFilterIDs(ctx context.Context, filterIDs []int64) (map[int64][]*domain.Subject, error) {
	return r.listLinked(ctx, filterSubjects, filterIDs)
}

// listLinked returns the subjects linked to each parent, keyed by parent ID.
func (r *subjectRepository) listLinked(ctx context.Context, lt linkTable, parentIDs []int64) (map[int64][]*domain.Subject, error) {
	out := make(map[int64][]*domain.Subject, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}
	query := fmt.Sprintf(`
		SELECT l.%[1]s, s.id, s.name, s.created_at, s.updated_at
		FROM subjects s
		JOIN %[2]s l ON l.%[3]s = s.id
		WHERE l.%[1]s = ANY($1)
		ORDER BY l.%[1]s, s.id`, lt.parent, lt.table, lt.child)
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(parentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var parentID int64
		var s domain.Subject
		if err := rows.Scan(&parentID, &s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out[parentID] = append(out[parentID], &s)
	}
	return out, rows.Err()
}
