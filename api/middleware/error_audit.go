package middleware

import (
	"net/http"

	"github.com/igreja360/tesouraria-backend/api/responses"
	"github.com/igreja360/tesouraria-backend/internal/audit"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
)

// ErrorAudit records an error-level audit entry for every internal failure in
// the request pipeline. The full error detail only lands in the audit trail;
// the client sees a generic message.
func ErrorAudit(recorder audit.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, capture := responses.WithCapture(r.Context())

			next.ServeHTTP(w, r.WithContext(ctx))

			dump := capture.Dump()
			if dump == nil {
				return
			}

			recorder.Record(audit.Entry{
				Actor:       ActorFromContext(ctx),
				Action:      enums.AuditActionError,
				Level:       enums.AuditLevelError,
				Description: "internal error during " + r.Method + " " + r.URL.Path,
				Details:     dump,
			})
		})
	}
}
