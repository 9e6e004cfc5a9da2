package domain

import "context"

// Repositories groups the repositories bound to one database handle.
type Repositories interface {
	Users() UserRepository
	Cities() CityRepository
	Subjects() SubjectRepository
	Events() EventRepository
	Filters() FilterRepository
}

// Store is the entry point to storage. Atomic runs fn against repositories bound
// to a single transaction, committing when fn returns nil and rolling back otherwise.
type Store interface {
	Repositories
	Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
