package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hongminglow/society-be/internal/models"
)

// TokenHeader is the custom header browsers send the session token in.
const TokenHeader = "auth-token"

// Identity is the caller resolved from a session token.
type Identity struct {
	UserID string
	Role   models.Role
}

// Failure is the typed result of a rejected check.
type Failure struct {
	Status  int
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%d: %s", f.Status, f.Message)
}

func unauthenticated(message string) *Failure {
	return &Failure{Status: http.StatusUnauthorized, Message: message}
}

func forbidden(message string) *Failure {
	return &Failure{Status: http.StatusForbidden, Message: message}
}

// Check inspects a request and the identity resolved so far.
// Returning a non-nil Failure stops the pipeline.
type Check func(r *http.Request, id *Identity) *Failure

// Gate runs an ordered list of checks, stopping at the first failure.
type Gate struct {
	checks []Check
}

// NewGate builds a gate from checks evaluated in order.
func NewGate(checks ...Check) Gate {
	return Gate{checks: checks}
}

// With returns a copy of g with extra checks appended.
func (g Gate) With(checks ...Check) Gate {
	combined := make([]Check, 0, len(g.checks)+len(checks))
	combined = append(combined, g.checks...)
	combined = append(combined, checks...)
	return Gate{checks: combined}
}

// Evaluate runs every check against r.
func (g Gate) Evaluate(r *http.Request) (Identity, *Failure) {
	var id Identity
	for _, check := range g.checks {
		if failure := check(r, &id); failure != nil {
			return Identity{}, failure
		}
	}
	return id, nil
}

// Authenticated resolves the caller from the auth-token header, falling back to a bearer token.
func Authenticated(tokens *TokenManager) Check {
	return func(r *http.Request, id *Identity) *Failure {
		raw := extractToken(r)
		if raw == "" {
			return unauthenticated("Please authenticate using a valid token")
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return unauthenticated("Please authenticate using a valid token")
		}
		id.UserID = claims.UserID
		id.Role = claims.Role
		return nil
	}
}

// RequireRole rejects callers whose role differs from role.
func RequireRole(role models.Role) Check {
	return func(_ *http.Request, id *Identity) *Failure {
		if id.UserID == "" {
			return unauthenticated("Please authenticate using a valid token")
		}
		if id.Role != role {
			return forbidden(fmt.Sprintf("Access denied: requires %s role", role))
		}
		return nil
	}
}

func extractToken(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get(TokenHeader)); raw != "" {
		return raw
	}
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

type ctxKey struct{}

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
