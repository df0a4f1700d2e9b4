package testutil

import (
	"net/http"
	"time"

	"maidlink/pkg/requestcontext"
)

// FixedTime pins requestcontext.Now to t for every request, standing in for
// the requesttime middleware.
func FixedTime(t time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), t)))
		})
	}
}
