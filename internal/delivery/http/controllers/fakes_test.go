package controllers

import (
	"context"
	"io"
	"log/slog"

	"eventdiscovery/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	user      *domain.User
	pair      *domain.TokenPair
	err       error
	lastUser  string
	lastPass  string
	lastToken string
}

func (f *fakeAuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	f.lastToken = token
	return f.user, f.err
}

func (f *fakeAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	f.lastUser, f.lastPass = username, password
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	f.lastUser, f.lastPass = username, password
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	f.lastToken = refreshToken
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) (*domain.TokenPair, error) {
	f.lastPass = newPassword
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	details    *domain.EventDetails
	list       []*domain.EventDetails
	err        error
	lastUser   *domain.User
	lastInput  domain.EventInput
	lastFilter domain.EventFilter
}

func (f *fakeEventService) Save(ctx context.Context, user *domain.User, in domain.EventInput) (*domain.EventDetails, error) {
	f.lastUser, f.lastInput = user, in
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeEventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetails, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

// fakeFilterService implements domain.FilterService for handler tests.
type fakeFilterService struct {
	details   *domain.FilterDetails
	list      []*domain.FilterDetails
	err       error
	lastInput domain.FilterInput
	lastUser  int64
	lastPage  domain.PaginationParams
}

func (f *fakeFilterService) Save(ctx context.Context, user *domain.User, in domain.FilterInput) (*domain.FilterDetails, error) {
	f.lastUser, f.lastInput = user.ID, in
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeFilterService) List(ctx context.Context, userID int64, page domain.PaginationParams) ([]*domain.FilterDetails, error) {
	f.lastUser, f.lastPage = userID, page
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}
