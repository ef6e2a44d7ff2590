package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/events"
	"github.com/hongminglow/society-be/internal/http/respond"
	"github.com/hongminglow/society-be/internal/http/validation"
	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage"
)

// SecretaryPrefix is the mount point of the notice, member and fund routes.
const SecretaryPrefix = "/api/secretary"

// Gates holds the two access levels used by the secretary routes.
type Gates struct {
	Authenticated auth.Gate
	Admin         auth.Gate
}

// NewGates builds the authenticated and admin-only gates around tokens.
func NewGates(tokens *auth.TokenManager) Gates {
	authenticated := auth.NewGate(auth.Authenticated(tokens))
	return Gates{
		Authenticated: authenticated,
		Admin:         authenticated.With(auth.RequireRole(models.RoleAdmin)),
	}
}

// decodeJSON reads the request body into dst, writing a 400 and returning false on failure.
// A value of the wrong type is reported against its field like any other validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respond.ValidationErrors(w, []validation.FieldError{validation.Field(typeErr.Field, "Invalid value", "type")})
		return false
	}
	respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
	return false
}

// pathID returns the {id} path value. Identifiers that no store could have issued get
// the notFound 404 without a store round trip.
func pathID(w http.ResponseWriter, r *http.Request, notFound string) (string, bool) {
	id := r.PathValue("id")
	if !storage.ValidID(id) {
		respond.Error(w, http.StatusNotFound, notFound)
		return "", false
	}
	return id, true
}

func publish(ctx context.Context, publisher events.Publisher, eventType string, data any) {
	if err := publisher.Publish(ctx, eventType, data); err != nil {
		log.Printf("publish %s: %v", eventType, err)
	}
}
