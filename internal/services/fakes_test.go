package services

import (
	"context"
	"sort"
	"time"

	"eventdiscovery/internal/domain"
)

// fakeStore is an in-memory domain.Store for tests. Atomic does not roll back.
type fakeStore struct {
	users       map[int64]*domain.User
	cities      map[int64]*domain.City
	subjects    map[int64]*domain.Subject
	events      map[int64]*domain.Event
	filters     map[int64]*domain.UserFilter
	eventLinks  map[int64][]int64
	filterLinks map[int64][]int64
	nextID      int64
	atomicCalls int
	createErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int64]*domain.User),
		cities:      make(map[int64]*domain.City),
		subjects:    make(map[int64]*domain.Subject),
		events:      make(map[int64]*domain.Event),
		filters:     make(map[int64]*domain.UserFilter),
		eventLinks:  make(map[int64][]int64),
		filterLinks: make(map[int64][]int64),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Users() domain.UserRepository       { return fakeUsers{s} }
func (s *fakeStore) Cities() domain.CityRepository      { return fakeCities{s} }
func (s *fakeStore) Subjects() domain.SubjectRepository { return fakeSubjects{s} }
func (s *fakeStore) Events() domain.EventRepository     { return fakeEvents{s} }
func (s *fakeStore) Filters() domain.FilterRepository   { return fakeFilters{s} }

func (s *fakeStore) Atomic(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.atomicCalls++
	return fn(ctx, s)
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) Create(ctx context.Context, u *domain.User) error {
	if f.s.createErr != nil {
		return f.s.createErr
	}
	for _, existing := range f.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
	}
	u.ID = f.s.id()
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := f.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) UpdatePassword(ctx context.Context, id int64, salt, digest string) error {
	u, ok := f.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Salt, u.Password = salt, digest
	return nil
}

type fakeCities struct{ s *fakeStore }

func (f fakeCities) Resolve(ctx context.Context, in domain.CityInput, userID int64) (*domain.City, error) {
	if in.ID != 0 {
		return f.GetByID(ctx, in.ID)
	}
	name, _ := in.Name.Get()
	c := &domain.City{ID: f.s.id(), Name: name}
	f.s.cities[c.ID] = c
	return c, nil
}

func (f fakeCities) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	if c, ok := f.s.cities[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

type fakeSubjects struct{ s *fakeStore }

func (f fakeSubjects) Resolve(ctx context.Context, in domain.SubjectInput, userID int64) (*domain.Subject, error) {
	if in.ID != 0 {
		if sub, ok := f.s.subjects[in.ID]; ok {
			return sub, nil
		}
		return nil, domain.ErrNotFound
	}
	name, _ := in.Name.Get()
	sub := &domain.Subject{ID: f.s.id(), Name: name}
	f.s.subjects[sub.ID] = sub
	return sub, nil
}

func (f fakeSubjects) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Subject, error) {
	out := []*domain.Subject{}
	for _, id := range ids {
		if sub, ok := f.s.subjects[id]; ok {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f fakeSubjects) ListByEventIDs(ctx context.Context, ids []int64) (map[int64][]*domain.Subject, error) {
	return f.linked(f.s.eventLinks, ids), nil
}

func (f fakeSubjects) ListByFilterIDs(ctx context.Context, ids []int64) (map[int64][]*domain.Subject, error) {
	return f.linked(f.s.filterLinks, ids), nil
}

func (f fakeSubjects) linked(links map[int64][]int64, ids []int64) map[int64][]*domain.Subject {
	out := make(map[int64][]*domain.Subject)
	for _, id := range ids {
		for _, sid := range links[id] {
			out[id] = append(out[id], f.s.subjects[sid])
		}
	}
	return out
}

func linkMissing(links map[int64][]int64, parent int64, children []int64) int {
	n := 0
	for _, c := range children {
		dup := false
		for _, existing := range links[parent] {
			if existing == c {
				dup = true
				break
			}
		}
		if !dup {
			links[parent] = append(links[parent], c)
			n++
		}
	}
	return n
}

func applyTime(dst **time.Time, v domain.Value) error {
	switch v.State {
	case domain.Null:
		*dst = nil
	case domain.Present:
		t, err := domain.ParseTimestamp(v.V.(string))
		if err != nil {
			return err
		}
		*dst = &t
	}
	return nil
}

func applyCity(dst **int64, v domain.Value) {
	switch v.State {
	case domain.Null:
		*dst = nil
	case domain.Present:
		id := v.V.(int64)
		*dst = &id
	}
}

type fakeEvents struct{ s *fakeStore }

func (f fakeEvents) Upsert(ctx context.Context, rec domain.Record, userID int64) (*domain.Event, error) {
	e := &domain.Event{UserID: userID}
	if rec.ID != 0 {
		stored, ok := f.s.events[rec.ID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if stored.UserID != userID {
			cp := *stored
			return &cp, nil
		}
		e = stored
	} else {
		e.ID = f.s.id()
		f.s.events[e.ID] = e
	}
	if v := rec.Fields["name"]; v.State == domain.Present {
		e.Name = v.V.(string)
	}
	if err := applyTime(&e.StartTime, rec.Fields["start_time"]); err != nil {
		return nil, err
	}
	if err := applyTime(&e.EndTime, rec.Fields["end_time"]); err != nil {
		return nil, err
	}
	applyCity(&e.CityID, rec.Fields["city"])
	cp := *e
	return &cp, nil
}

func (f fakeEvents) LinkSubjects(ctx context.Context, eventID int64, subjectIDs []int64) (int, error) {
	return linkMissing(f.s.eventLinks, eventID, subjectIDs), nil
}

func (f fakeEvents) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetails, error) {
	out := []*domain.EventDetails{}
	for _, e := range f.s.events {
		if filter.CityID != nil && (e.CityID == nil || *e.CityID != *filter.CityID) {
			continue
		}
		d := &domain.EventDetails{Event: e}
		if e.CityID != nil {
			d.City = f.s.cities[*e.CityID]
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Event.ID < out[j].Event.ID })
	return out, nil
}

type fakeFilters struct{ s *fakeStore }

func (f fakeFilters) Upsert(ctx context.Context, rec domain.Record, userID int64) (*domain.UserFilter, error) {
	uf := &domain.UserFilter{UserID: userID}
	if rec.ID != 0 {
		stored, ok := f.s.filters[rec.ID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if stored.UserID != userID {
			cp := *stored
			return &cp, nil
		}
		uf = stored
	} else {
		uf.ID = f.s.id()
		f.s.filters[uf.ID] = uf
	}
	if err := applyTime(&uf.StartTime, rec.Fields["start_time"]); err != nil {
		return nil, err
	}
	if err := applyTime(&uf.EndTime, rec.Fields["end_time"]); err != nil {
		return nil, err
	}
	applyCity(&uf.CityID, rec.Fields["city"])
	cp := *uf
	return &cp, nil
}

func (f fakeFilters) LinkSubjects(ctx context.Context, filterID int64, subjectIDs []int64) (int, error) {
	return linkMissing(f.s.filterLinks, filterID, subjectIDs), nil
}

func (f fakeFilters) ListByUserID(ctx context.Context, userID int64, page domain.PaginationParams) ([]*domain.UserFilter, error) {
	out := []*domain.UserFilter{}
	for _, uf := range f.s.filters {
		if uf.UserID == userID {
			out = append(out, uf)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeEmailService records welcome messages.
type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}
