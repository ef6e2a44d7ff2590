package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/events"
	"github.com/hongminglow/society-be/internal/http/respond"
	"github.com/hongminglow/society-be/internal/http/validation"
	"github.com/hongminglow/society-be/internal/middleware"
	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/models/dto"
	"github.com/hongminglow/society-be/internal/storage"
)

// MemberHandler serves the member directory.
type MemberHandler struct {
	store     storage.AccountStore
	gates     Gates
	publisher events.Publisher
}

// NewMemberHandler constructs the handler.
func NewMemberHandler(store storage.AccountStore, gates Gates, publisher events.Publisher) *MemberHandler {
	return &MemberHandler{store: store, gates: gates, publisher: publisher}
}

// Register attaches member routes to the mux.
func (h *MemberHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+SecretaryPrefix+"/Addmembers", middleware.Guard(h.gates.Admin, h.handleCreate))
	mux.HandleFunc("GET "+SecretaryPrefix+"/fetchmembers", middleware.Guard(h.gates.Authenticated, h.handleList))
	mux.HandleFunc("DELETE "+SecretaryPrefix+"/deleteUser/{id}", middleware.Guard(h.gates.Admin, h.handleDelete))
}

func duplicateEmail(w http.ResponseWriter) {
	respond.ValidationErrors(w, []validation.FieldError{validation.Field("email", "Email already exists", "duplicate")})
}

func (h *MemberHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validation.Struct(req); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	_, err := h.store.FindAccountByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		duplicateEmail(w)
		return
	case !errors.Is(err, storage.ErrNotFound):
		respond.Internal(w, "add member: lookup email", err)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		respond.ValidationErrors(w, []validation.FieldError{validation.Field("password", "Must be at most 72 bytes", "max")})
		return
	}
	if err != nil {
		respond.Internal(w, "add member: hash password", err)
		return
	}

	// Members are always created as residents; req.Role is ignored.
	created, err := h.store.CreateAccount(r.Context(), models.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Address:      req.Address,
		RoomNo:       string(req.RoomNo),
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			duplicateEmail(w)
			return
		}
		respond.Internal(w, "add member: create account", err)
		return
	}

	publish(r.Context(), h.publisher, events.MemberCreated, created)
	respond.JSON(w, http.StatusOK, created)
}

func (h *MemberHandler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		respond.Internal(w, "list members", err)
		return
	}
	respond.JSON(w, http.StatusOK, accounts)
}

func (h *MemberHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "User not found")
	if !ok {
		return
	}
	if err := h.store.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		respond.Internal(w, "delete member", err)
		return
	}
	publish(r.Context(), h.publisher, events.MemberDeleted, events.Deleted{ID: id})
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}
