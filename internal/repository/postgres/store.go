package postgres

import (
	"context"
	"database/sql"

	"eventdiscovery/internal/domain"
)

type store struct {
	db *sql.DB // nil once bound to a transaction
	q  DBTX
}

// NewStore returns a domain.Store backed by Postgres.
func NewStore(db *sql.DB) domain.Store {
	return &store{db: db, q: db}
}

func (s *store) Users() domain.UserRepository       { return NewUserRepository(s.q) }
func (s *store) Cities() domain.CityRepository      { return NewCityRepository(s.q) }
func (s *store) Subjects() domain.SubjectRepository { return NewSubjectRepository(s.q) }
func (s *store) Events() domain.EventRepository     { return NewEventRepository(s.q) }
func (s *store) Filters() domain.FilterRepository   { return NewFilterRepository(s.q) }

// Atomic runs fn inside one transaction. Nested calls reuse the outer transaction.
func (s *store) Atomic(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	if s.db == nil {
		return fn(ctx, s)
	}
	return WithTx(ctx, s.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &store{q: tx})
	})
}
