package handlers

import (
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

// NoticeHandler serves the notice ledger.
type NoticeHandler struct {
	store     storage.NoticeStore
	gates     Gates
	publisher events.Publisher
}

// NewNoticeHandler constructs the handler.
func NewNoticeHandler(store storage.NoticeStore, gates Gates, publisher events.Publisher) *NoticeHandler {
	return &NoticeHandler{store: store, gates: gates, publisher: publisher}
}

// Register attaches notice routes to the mux.
func (h *NoticeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+SecretaryPrefix+"/addnotice", middleware.Guard(h.gates.Admin, h.handleCreate))
	mux.HandleFunc("GET "+SecretaryPrefix+"/fetchnotices", middleware.Guard(h.gates.Authenticated, h.handleList))
	mux.HandleFunc("PUT "+SecretaryPrefix+"/updatenotice/{id}", middleware.Guard(h.gates.Admin, h.handleUpdate))
	mux.HandleFunc("DELETE "+SecretaryPrefix+"/deletenotice/{id}", middleware.Guard(h.gates.Admin, h.handleDelete))
}

func (h *NoticeHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoticeRequest
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

	notice, err := h.store.CreateNotice(r.Context(), models.Notice{
		Title:       req.Title,
		Description: req.Description,
		Date:        date.UTC(),
	})
	if err != nil {
		respond.Internal(w, "create notice", err)
		return
	}
	publish(r.Context(), h.publisher, events.NoticeCreated, notice)
	respond.JSON(w, http.StatusOK, notice)
}

func (h *NoticeHandler) handleList(w http.ResponseWriter, r *http.Request) {
	notices, err := h.store.ListNotices(r.Context())
	if err != nil {
		respond.Internal(w, "list notices", err)
		return
	}
	respond.JSON(w, http.StatusOK, notices)
}

func (h *NoticeHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notice not found")
	if !ok {
		return
	}
	var req dto.UpdateNoticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch, errs := noticePatch(req)
	if errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	var (
		notice models.Notice
		err    error
	)
	if patch.Empty() {
		notice, err = h.store.FindNoticeByID(r.Context(), id)
	} else {
		notice, err = h.store.UpdateNotice(r.Context(), id, patch)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "notice not found")
			return
		}
		respond.Internal(w, "update notice", err)
		return
	}
	if !patch.Empty() {
		publish(r.Context(), h.publisher, events.NoticeUpdated, notice)
	}
	respond.JSON(w, http.StatusOK, dto.NoticeUpdatedResponse{Notice: notice})
}

func (h *NoticeHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Notice not found")
	if !ok {
		return
	}
	if err := h.store.DeleteNotice(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Notice not found")
			return
		}
		respond.Internal(w, "delete notice", err)
		return
	}
	publish(r.Context(), h.publisher, events.NoticeDeleted, events.Deleted{ID: id})
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "notice deleted successfully"})
}

// noticePatch keeps only the supplied, non-empty fields. A supplied date is reduced to
// midnight UTC of the calendar day written by the client.
func noticePatch(req dto.UpdateNoticeRequest) (models.NoticePatch, []validation.FieldError) {
	var patch models.NoticePatch
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		patch.Title = req.Title
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		patch.Description = req.Description
	}
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := models.ParseDate(*req.Date)
		if err != nil {
			return models.NoticePatch{}, []validation.FieldError{validation.Field("date", "Invalid date", "date")}
		}
		day := models.CalendarDateUTC(parsed)
		patch.Date = &day
	}
	return patch, nil
}
