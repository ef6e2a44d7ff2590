package middleware

import (
	"net/http"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/http/respond"
)

// Guard evaluates gate before next runs and stores the resolved identity on the request context.
func Guard(gate auth.Gate, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, failure := gate.Evaluate(r)
		if failure != nil {
			respond.Error(w, failure.Status, failure.Message)
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	}
}
