package domain

import (
	"context"
	"time"
)

// UserFilter is a saved search specification.
type UserFilter struct {
	ID        int64
	UserID    int64
	StartTime *time.Time
	EndTime   *time.Time
	CityID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FilterDetails is a filter together with its subjects.
type FilterDetails struct {
	Filter   *UserFilter
	Subjects []*Subject
}

// FilterInput creates a filter (ID 0) or updates one in place.
type FilterInput struct {
	ID        int64
	StartTime Optional[string]
	EndTime   Optional[string]
	City      Optional[int64]
	Subjects  []int64
}

// FilterRepository defines the interface for saved filter storage
type FilterRepository interface {
	Upsert(ctx context.Context, rec Record, userID int64) (*UserFilter, error)
	LinkSubjects(ctx context.Context, filterID int64, subjectIDs []int64) (int, error)
	ListByUserID(ctx context.Context, userID int64, page PaginationParams) ([]*UserFilter, error)
}

// FilterService defines the business logic for saved filters.
type FilterService interface {
	Save(ctx context.Context, user *User, in FilterInput) (*FilterDetails, error)
	List(ctx context.Context, userID int64, page PaginationParams) ([]*FilterDetails, error)
}
