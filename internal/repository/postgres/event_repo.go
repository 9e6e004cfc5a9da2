package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eventdiscovery/internal/domain"

	"github.com/lib/pq"
)

var eventMutableFields = []string{"name", "start_time", "end_time", "city"}

type eventRepository struct {
	DB DBTX
}

func NewEventRepository(db DBTX) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Upsert(ctx context.Context, rec domain.Record, userID int64) (*domain.Event, error) {
	row, err := upsert(ctx, r.DB, eventEntity, eventMutableFields, rec, userID, true)
	if err != nil {
		return nil, err
	}
	return &domain.Event{
		ID:        row.ID,
		UserID:    row.Owner,
		Name:      row.text("name"),
		StartTime: row.timePtr("start_time"),
		EndTime:   row.timePtr("end_time"),
		CityID:    row.int64Ptr("city"),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *eventRepository) LinkSubjects(ctx context.Context, eventID int64, subjectIDs []int64) (int, error) {
	return link(ctx, r.DB, eventSubjects, eventID, subjectIDs)
}

// List returns one page of events with their city. Subjects are left for the caller.
func (r *eventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.EventDetails, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.CityID != nil {
		where = append(where, "e.city = "+arg(*f.CityID))
	}
	if f.StartTime != nil {
		where = append(where, "e.start_time >= "+arg(*f.StartTime))
	}
	if f.EndTime != nil {
		where = append(where, "e.end_time <= "+arg(*f.EndTime))
	}
	if len(f.SubjectIDs) > 0 {
		where = append(where, "EXISTS (SELECT 1 FROM events_subjects es WHERE es.event = e.id AND es.subject = ANY("+arg(pq.Array(f.SubjectIDs))+"))")
	}

	query := `
		SELECT e.id, e.user_id, e.name, e.start_time, e.end_time, e.city, e.created_at, e.updated_at,
			c.name, c.created_at, c.updated_at
		FROM events e
		LEFT JOIN cities c ON c.id = e.city`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY e.id LIMIT " + arg(f.Page.Limit) + " OFFSET " + arg(f.Page.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventDetails, 0)
	for rows.Next() {
		e := &domain.Event{}
		var startNull, endNull, cityCreated, cityUpdated sql.NullTime
		var cityID sql.NullInt64
		var cityName sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &startNull, &endNull, &cityID, &e.CreatedAt, &e.UpdatedAt,
			&cityName, &cityCreated, &cityUpdated); err != nil {
			return nil, err
		}
		if startNull.Valid {
			e.StartTime = &startNull.Time
		}
		if endNull.Valid {
			e.EndTime = &endNull.Time
		}
		d := &domain.EventDetails{Event: e}
		if cityID.Valid {
			e.CityID = &cityID.Int64
			d.City = &domain.City{ID: cityID.Int64, Name: cityName.String, CreatedAt: cityCreated.Time, UpdatedAt: cityUpdated.Time}
		}
		events = append(events, d)
	}
	return events, rows.Err()
}
