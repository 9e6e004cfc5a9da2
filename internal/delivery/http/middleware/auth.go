package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"eventdiscovery/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// SetUser returns a context carrying the authenticated user.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

// RequireAuth verifies the "<scheme> <token>" Authorization header and puts the
// resolved user into the request context. Any scheme word is accepted.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) Interceptor {
	return func(r *http.Request) (*http.Request, *Rejection) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return r, unauthorized(domain.ErrNoToken)
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return r, unauthorized(domain.ErrWrongTokenType)
		}
		user, err := verifier.Verify(r.Context(), parts[1])
		if err != nil {
			if reason, ok := unauthorizedReason(err); ok {
				return r, &Rejection{Status: http.StatusUnauthorized, Reason: reason}
			}
			logger.ErrorContext(r.Context(), "token verification failed", "path", r.URL.Path, "err", err)
			return r, &Rejection{Status: http.StatusInternalServerError, Reason: "internal error"}
		}
		return r.WithContext(SetUser(r.Context(), user)), nil
	}
}

// RequireUserType rejects users whose account type is not one of types.
// It must run after RequireAuth.
func RequireUserType(types ...string) Interceptor {
	return func(r *http.Request) (*http.Request, *Rejection) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			return r, unauthorized(domain.ErrNoToken)
		}
		if !slices.Contains(types, user.Type) {
			return r, &Rejection{Status: http.StatusNotAcceptable, Reason: domain.ErrWrongUserType.Error()}
		}
		return r, nil
	}
}

func unauthorized(err error) *Rejection {
	return &Rejection{Status: http.StatusUnauthorized, Reason: err.Error()}
}

// unauthorizedReason maps a verification error to the sentinel's message.
func unauthorizedReason(err error) (string, bool) {
	for _, target := range []error{domain.ErrNoToken, domain.ErrWrongTokenType, domain.ErrNoUser, domain.ErrTokenExpired} {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}
