package domain

import (
	"context"
	"time"
)

// City is a location events and filters may reference.
// swagger:model City
type City struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subject is a topic events and filters are tagged with.
// swagger:model Subject
type Subject struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is a user-owned happening with optional times and city.
type Event struct {
	ID        int64
	UserID    int64
	Name      string
	StartTime *time.Time
	EndTime   *time.Time
	CityID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDetails is an event together with its city and full subject list.
type EventDetails struct {
	Event    *Event
	City     *City
	Subjects []*Subject
}

// CityInput references an existing city by ID or describes a new one by name.
type CityInput struct {
	ID   int64            `json:"id"`
	Name Optional[string] `json:"name"`
}

// Record converts the input for the upsert engine.
func (c CityInput) Record() Record {
	return Record{ID: c.ID, Fields: map[string]Value{"name": c.Name.Value()}}
}

// SubjectInput references an existing subject by ID or describes a new one by name.
type SubjectInput struct {
	ID   int64            `json:"id"`
	Name Optional[string] `json:"name"`
}

// Record converts the input for the upsert engine.
func (s SubjectInput) Record() Record {
	return Record{ID: s.ID, Fields: map[string]Value{"name": s.Name.Value()}}
}

// EventInput creates an event (ID 0) or updates one in place. Absent fields are
// left untouched on update; explicit nulls clear them. Subjects are only ever added.
type EventInput struct {
	ID        int64
	Name      Optional[string]
	StartTime Optional[string]
	EndTime   Optional[string]
	City      Optional[CityInput]
	Subjects  []SubjectInput
}

// EventFilter narrows an event listing. Nil fields do not filter.
type EventFilter struct {
	CityID     *int64
	StartTime  *time.Time
	EndTime    *time.Time
	SubjectIDs []int64
	Page       PaginationParams
}

// CityRepository defines the interface for city storage
type CityRepository interface {
	// Resolve returns the city with in.ID, or creates a new one from in.Name when no ID is given.
	Resolve(ctx context.Context, in CityInput, userID int64) (*City, error)
	GetByID(ctx context.Context, id int64) (*City, error)
}

// SubjectRepository defines the interface for subject storage
type SubjectRepository interface {
	// Resolve returns the subject with in.ID, or creates a new one from in.Name when no ID is given.
	Resolve(ctx context.Context, in SubjectInput, userID int64) (*Subject, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Subject, error)
	ListByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*Subject, error)
	ListByFilterIDs(ctx context.Context, filterIDs []int64) (map[int64][]*Subject, error)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Upsert creates or updates an event owned by userID. Updates by other users leave the row unchanged.
	Upsert(ctx context.Context, rec Record, userID int64) (*Event, error)
	// LinkSubjects adds the missing event/subject links and returns how many were inserted.
	LinkSubjects(ctx context.Context, eventID int64, subjectIDs []int64) (int, error)
	List(ctx context.Context, filter EventFilter) ([]*EventDetails, error)
}

// EventService defines the business logic for events.
type EventService interface {
	Save(ctx context.Context, user *User, in EventInput) (*EventDetails, error)
	List(ctx context.Context, filter EventFilter) ([]*EventDetails, error)
}
