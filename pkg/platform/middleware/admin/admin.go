// Package admin gates review endpoints to reviewer and admin roles.
package admin

import (
	"log/slog"
	"net/http"

	dErrors "maidlink/pkg/domain-errors"
	"maidlink/pkg/platform/httputil"
	"maidlink/pkg/requestcontext"
)

// RequireReviewer must run after auth.RequireAuth.
func RequireReviewer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.CallerRole(ctx).CanReview() {
				logger.WarnContext(ctx, "forbidden - reviewer role required",
					"user_id", requestcontext.UserID(ctx),
					"role", requestcontext.CallerRole(ctx),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "reviewer role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
