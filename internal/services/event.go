package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventdiscovery/internal/domain"
)

type eventService struct {
	store domain.Store
}

// NewEventService creates an EventService backed by the given store.
func NewEventService(store domain.Store) domain.EventService {
	return &eventService{store: store}
}

// Save creates an event (in.ID == 0) or updates it in place, resolving its city
// and subjects first. Updates of someone else's event return the event as stored
// and add no subject links.
func (s *eventService) Save(ctx context.Context, user *domain.User, in domain.EventInput) (*domain.EventDetails, error) {
	if in.ID == 0 {
		if name, ok := in.Name.Get(); !ok || strings.TrimSpace(name) == "" {
			return nil, invalid("name is required")
		}
	}

	var out *domain.EventDetails
	err := s.store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		rec := domain.Record{ID: in.ID, Fields: map[string]domain.Value{
			"name":       in.Name.Value(),
			"start_time": in.StartTime.Value(),
			"end_time":   in.EndTime.Value(),
		}}
		switch in.City.State {
		case domain.Null:
			rec.Fields["city"] = domain.NullValue()
		case domain.Present:
			city, err := resolveCity(ctx, repos, in.City.Val, user.ID)
			if err != nil {
				return err
			}
			rec.Fields["city"] = domain.Set(city.ID)
		}

		subjectIDs, err := resolveSubjects(ctx, repos, in.Subjects, user.ID)
		if err != nil {
			return err
		}

		event, err := repos.Events().Upsert(ctx, rec, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return invalid("wrong event id")
			}
			return fmt.Errorf("failed to save event: %w", err)
		}
		if event.UserID == user.ID {
			if _, err := repos.Events().LinkSubjects(ctx, event.ID, subjectIDs); err != nil {
				return fmt.Errorf("failed to link subjects: %w", err)
			}
		}

		out = &domain.EventDetails{Event: event}
		if event.CityID != nil {
			if out.City, err = repos.Cities().GetByID(ctx, *event.CityID); err != nil {
				return fmt.Errorf("failed to load city: %w", err)
			}
		}
		linked, err := repos.Subjects().ListByEventIDs(ctx, []int64{event.ID})
		if err != nil {
			return fmt.Errorf("failed to load subjects: %w", err)
		}
		out.Subjects = orEmpty(linked[event.ID])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns one page of events, each with its full subject list.
func (s *eventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetails, error) {
	events, err := s.store.Events().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.Event.ID
	}
	subjects, err := s.store.Subjects().ListByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}
	for _, e := range events {
		e.Subjects = orEmpty(subjects[e.Event.ID])
	}
	return events, nil
}

func resolveCity(ctx context.Context, repos domain.Repositories, in domain.CityInput, userID int64) (*domain.City, error) {
	if in.ID == 0 {
		if name, ok := in.Name.Get(); !ok || strings.TrimSpace(name) == "" {
			return nil, invalid("city name is required")
		}
	}
	city, err := repos.Cities().Resolve(ctx, in, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalid("wrong city id")
		}
		return nil, fmt.Errorf("failed to resolve city: %w", err)
	}
	return city, nil
}

func resolveSubjects(ctx context.Context, repos domain.Repositories, in []domain.SubjectInput, userID int64) ([]int64, error) {
	ids := make([]int64, 0, len(in))
	for _, si := range in {
		if si.ID == 0 {
			if name, ok := si.Name.Get(); !ok || strings.TrimSpace(name) == "" {
				return nil, invalid("subject name is required")
			}
		}
		subject, err := repos.Subjects().Resolve(ctx, si, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, invalid("wrong subject id")
			}
			return nil, fmt.Errorf("failed to resolve subject: %w", err)
		}
		ids = append(ids, subject.ID)
	}
	return ids, nil
}

// invalid builds an ErrInvalidInput whose message is the client-facing reason.
func invalid(reason string) error {
	return &reasonError{reason: reason, err: domain.ErrInvalidInput}
}

type reasonError struct {
	reason string
	err    error
}

func (e *reasonError) Error() string { return e.reason }
func (e *reasonError) Unwrap() error { return e.err }

func orEmpty(s []*domain.Subject) []*domain.Subject {
	if s == nil {
		return []*domain.Subject{}
	}
	return s
}
