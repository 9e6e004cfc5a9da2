package postgres

import (
	"context"

	"eventdiscovery/internal/domain"
)

type cityRepository struct {
	DB DBTX
}

// NewCityRepository returns a domain.CityRepository implemented with Postgres.
func NewCityRepository(db DBTX) domain.CityRepository {
	return &cityRepository{DB: db}
}

// Resolve never renames an existing city: referencing one by ID is a lookup.
// Without an ID a new city is always created, even if one with that name exists.
func (r *cityRepository) Resolve(ctx context.Context, in domain.CityInput, userID int64) (*domain.City, error) {
	row, err := upsert(ctx, r.DB, cityEntity, nil, in.Record(), userID, false)
	if err != nil {
		return nil, err
	}
	return cityFromRow(row), nil
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	row, err := fetch(ctx, r.DB, cityEntity, id)
	if err != nil {
		return nil, err
	}
	return cityFromRow(row), nil
}

func cityFromRow(r *row) *domain.City {
	return &domain.City{ID: r.ID, Name: r.text("name"), CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}
