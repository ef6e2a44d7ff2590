package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/society-be/internal/events"
	"github.com/hongminglow/society-be/internal/http/respond"
	"github.com/hongminglow/society-be/internal/http/validation"
	"github.com/hongminglow/society-be/internal/middleware"
	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/models/dto"
	"github.com/hongminglow/society-be/internal/storage"
)

// FundStore is what FundHandler needs: the funds ledger plus owner lookups.
type FundStore interface {
	storage.FundStore
	FindAccountByID(ctx context.Context, id string) (models.Account, error)
}

// FundHandler serves the funds ledger.
type FundHandler struct {
	store     FundStore
	gates     Gates
	publisher events.Publisher
}

// NewFundHandler constructs the handler.
func NewFundHandler(store FundStore, gates Gates, publisher events.Publisher) *FundHandler {
	return &FundHandler{store: store, gates: gates, publisher: publisher}
}

// Register attaches fund routes to the mux.
func (h *FundHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+SecretaryPrefix+"/AddFunds", middleware.Guard(h.gates.Admin, h.handleCreate))
	mux.HandleFunc("GET "+SecretaryPrefix+"/fetchFunds", middleware.Guard(h.gates.Authenticated, h.handleList))
	mux.HandleFunc("DELETE "+SecretaryPrefix+"/deleteFunds/{id}", middleware.Guard(h.gates.Admin, h.handleDelete))
	mux.HandleFunc("GET "+SecretaryPrefix+"/TotalFunds", middleware.Guard(h.gates.Authenticated, h.handleTotal))
}

func (h *FundHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFundRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validation.Struct(req); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		respond.ValidationErrors(w, []validation.FieldError{validation.Field("date", "Invalid date", "date")})
		return
	}

	fund := models.Fund{
		Information: req.Information,
		Date:        date.UTC(),
		Amount:      req.Amount.Decimal,
	}
	// The owner is checked before the insert; nothing guards against it being deleted in between.
	if owner := strings.TrimSpace(req.User); owner != "" {
		if !storage.ValidID(owner) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		account, err := h.store.FindAccountByID(r.Context(), owner)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respond.Error(w, http.StatusNotFound, "User not found")
				return
			}
			respond.Internal(w, "add funds: find owner", err)
			return
		}
		fund.User = &account.ID
	}

	created, err := h.store.CreateFund(r.Context(), fund)
	if err != nil {
		respond.Internal(w, "add funds", err)
		return
	}
	publish(r.Context(), h.publisher, events.FundCreated, created)
	respond.JSON(w, http.StatusOK, created)
}

func (h *FundHandler) handleList(w http.ResponseWriter, r *http.Request) {
	funds, err := h.store.ListFunds(r.Context())
	if err != nil {
		respond.Internal(w, "list funds", err)
		return
	}
	respond.JSON(w, http.StatusOK, funds)
}

func (h *FundHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "transaction not found")
	if !ok {
		return
	}
	if err := h.store.DeleteFund(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "transaction not found")
			return
		}
		respond.Internal(w, "delete funds", err)
		return
	}
	publish(r.Context(), h.publisher, events.FundDeleted, events.Deleted{ID: id})
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "transaction deleted successfully"})
}

// handleTotal sums every amount on each request.
func (h *FundHandler) handleTotal(w http.ResponseWriter, r *http.Request) {
	funds, err := h.store.ListFunds(r.Context())
	if err != nil {
		respond.Internal(w, "total funds", err)
		return
	}
	respond.JSON(w, http.StatusOK, models.SumAmounts(funds))
}
