package middleware

import (
	"net/http"

	"eventdiscovery/internal/delivery/http/helpers"
)

// Rejection stops an interceptor chain with an HTTP status and a client-facing reason.
type Rejection struct {
	Status int
	Reason string
}

// Interceptor inspects a request before the handler runs. It returns the request
// to pass on, possibly with an enriched context, or a Rejection.
type Interceptor func(r *http.Request) (*http.Request, *Rejection)

// Chain runs interceptors in order and calls next only if none of them rejects.
// The first rejection is written as {"reason": ...}.
func Chain(next http.HandlerFunc, interceptors ...Interceptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, intercept := range interceptors {
			var rej *Rejection
			r, rej = intercept(r)
			if rej != nil {
				helpers.WriteJSONError(w, rej.Status, rej.Reason)
				return
			}
		}
		next(w, r)
	}
}
