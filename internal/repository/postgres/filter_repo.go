package postgres

import (
	"context"
	"database/sql"

	"eventdiscovery/internal/domain"
)

var filterMutableFields = []string{"start_time", "end_time", "city"}

type filterRepository struct {
	DB DBTX
}

// NewFilterRepository returns a domain.FilterRepository implemented with Postgres.
func NewFilterRepository(db DBTX) domain.FilterRepository {
	return &filterRepository{DB: db}
}

func (r *filterRepository) Upsert(ctx context.Context, rec domain.Record, userID int64) (*domain.UserFilter, error) {
	row, err := upsert(ctx, r.DB, filterEntity, filterMutableFields, rec, userID, true)
	if err != nil {
		return nil, err
	}
	return &domain.UserFilter{
		ID:        row.ID,
		UserID:    row.Owner,
		StartTime: row.timePtr("start_time"),
		EndTime:   row.timePtr("end_time"),
		CityID:    row.int64Ptr("city"),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *filterRepository) LinkSubjects(ctx context.Context, filterID int64, subjectIDs []int64) (int, error) {
	return link(ctx, r.DB, filterSubjects, filterID, subjectIDs)
}

func (r *filterRepository) ListByUserID(ctx context.Context, userID int64, page domain.PaginationParams) ([]*domain.UserFilter, error) {
	query := `
		SELECT id, user_id, start_time, end_time, city, created_at, updated_at
		FROM user_filters
		WHERE user_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	filters := make([]*domain.UserFilter, 0)
	for rows.Next() {
		f := &domain.UserFilter{}
		var startNull, endNull sql.NullTime
		var cityNull sql.NullInt64
		if err := rows.Scan(&f.ID, &f.UserID, &startNull, &endNull, &cityNull, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		if startNull.Valid {
			f.StartTime = &startNull.Time
		}
		if endNull.Valid {
			f.EndTime = &endNull.Time
		}
		if cityNull.Valid {
			f.CityID = &cityNull.Int64
		}
		filters = append(filters, f)
	}
	return filters, rows.Err()
}
