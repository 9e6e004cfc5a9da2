package services

import (
	"context"
	"errors"
	"fmt"

	"eventdiscovery/internal/domain"
)

type filterService struct {
	store domain.Store
}

// NewFilterService creates a FilterService backed by the given store.
func NewFilterService(store domain.Store) domain.FilterService {
	return &filterService{store: store}
}

func (s *filterService) Save(ctx context.Context, user *domain.User, in domain.FilterInput) (*domain.FilterDetails, error) {
	var out *domain.FilterDetails
	err := s.store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if len(in.Subjects) > 0 {
			found, err := repos.Subjects().ListByIDs(ctx, in.Subjects)
			if err != nil {
				return fmt.Errorf("failed to load subjects: %w", err)
			}
			known := make(map[int64]struct{}, len(found))
			for _, sub := range found {
				known[sub.ID] = struct{}{}
			}
			for _, id := range in.Subjects {
				if _, ok := known[id]; !ok {
					return invalid("wrong subject id")
				}
			}
		}

		rec := domain.Record{ID: in.ID, Fields: map[string]domain.Value{
			"start_time": in.StartTime.Value(),
			"end_time":   in.EndTime.Value(),
			"city":       in.City.Value(),
		}}
		if cityID, ok := in.City.Get(); ok {
			if _, err := repos.Cities().GetByID(ctx, cityID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return invalid("wrong city id")
				}
				return fmt.Errorf("failed to load city: %w", err)
			}
		}

		filter, err := repos.Filters().Upsert(ctx, rec, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return invalid("wrong filter id")
			}
			return fmt.Errorf("failed to save filter: %w", err)
		}
		if filter.UserID == user.ID {
			if _, err := repos.Filters().LinkSubjects(ctx, filter.ID, in.Subjects); err != nil {
				return fmt.Errorf("failed to link subjects: %w", err)
			}
		}

		linked, err := repos.Subjects().ListByFilterIDs(ctx, []int64{filter.ID})
		if err != nil {
			return fmt.Errorf("failed to load subjects: %w", err)
		}
		out = &domain.FilterDetails{Filter: filter, Subjects: orEmpty(linked[filter.ID])}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *filterService) List(ctx context.Context, userID int64, page domain.PaginationParams) ([]*domain.FilterDetails, error) {
	filters, err := s.store.Filters().ListByUserID(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}
	ids := make([]int64, len(filters))
	for i, f := range filters {
		ids[i] = f.ID
	}
	subjects, err := s.store.Subjects().ListByFilterIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}
	out := make([]*domain.FilterDetails, len(filters))
	for i, f := range filters {
		out[i] = &domain.FilterDetails{Filter: f, Subjects: orEmpty(subjects[f.ID])}
	}
	return out, nil
}
