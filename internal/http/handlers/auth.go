package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/http/respond"
	"github.com/hongminglow/society-be/internal/http/validation"
	"github.com/hongminglow/society-be/internal/middleware"
	"github.com/hongminglow/society-be/internal/models/dto"
	"github.com/hongminglow/society-be/internal/ratelimit"
	"github.com/hongminglow/society-be/internal/storage"
)

// AuthHandler owns the login and role-lookup endpoints.
type AuthHandler struct {
	store   storage.AccountStore
	tokens  *auth.TokenManager
	gates   Gates
	limiter ratelimit.Limiter

	// trustProxy keys the login throttle on X-Forwarded-For instead of the peer address.
	trustProxy bool
}

// NewAuthHandler constructs the handler. A nil limiter disables login throttling.
func NewAuthHandler(store storage.AccountStore, tokens *auth.TokenManager, limiter ratelimit.Limiter, trustProxy bool) *AuthHandler {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &AuthHandler{store: store, tokens: tokens, gates: NewGates(tokens), limiter: limiter, trustProxy: trustProxy}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", middleware.Throttle(h.limiter, h.trustProxy, h.handleLogin))
	mux.HandleFunc("POST /api/auth/getuserRole", middleware.Guard(h.gates.Authenticated, h.handleRole))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validation.Struct(req); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	account, err := h.store.FindAccountByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Please try to login with correct credentials")
			return
		}
		respond.Internal(w, "login: find account", err)
		return
	}
	if !auth.CheckPassword(req.Password, account.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, "Please try to login with correct credentials")
		return
	}

	token, err := h.tokens.Generate(account)
	if err != nil {
		respond.Internal(w, "login: generate token", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Success: true, AuthToken: token, UserID: account.ID})
}

// handleRole reads the role from the directory so a stale token cannot report an outdated role.
func (h *AuthHandler) handleRole(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	account, err := h.store.FindAccountByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		respond.Internal(w, "get user role", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.RoleResponse{ID: account.ID, Role: account.Role})
}
