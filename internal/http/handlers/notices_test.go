package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/society-be/internal/events"
	"github.com/hongminglow/society-be/internal/http/respond"
	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/models/dto"
	"github.com/hongminglow/society-be/internal/storage"
)

func TestCreateNotice(t *testing.T) {
	tests := []struct {
		name       string
		token      func(*testEnv) string
		body       any
		wantStatus int
		wantErrors int
	}{
		{
			name:       "admin creates notice",
			token:      func(e *testEnv) string { return e.adminToken },
			body:       map[string]string{"title": "Water cut", "description": "No water on Sunday", "date": "2024-04-01"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing every field",
			token:      func(e *testEnv) string { return e.adminToken },
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantErrors: 3,
		},
		{
			name:       "unparseable date",
			token:      func(e *testEnv) string { return e.adminToken },
			body:       map[string]string{"title": "t", "description": "d", "date": "someday"},
			wantStatus: http.StatusBadRequest,
			wantErrors: 1,
		},
		{
			name:       "whitespace title and description",
			token:      func(e *testEnv) string { return e.adminToken },
			body:       map[string]string{"title": "   ", "description": "\t\n", "date": "2024-04-01"},
			wantStatus: http.StatusBadRequest,
			wantErrors: 2,
		},
		{
			name:       "title of the wrong type",
			token:      func(e *testEnv) string { return e.adminToken },
			body:       map[string]any{"title": 5, "description": "d", "date": "2024-04-01"},
			wantStatus: http.StatusBadRequest,
			wantErrors: 1,
		},
		{
			name:       "malformed json",
			token:      func(e *testEnv) string { return e.adminToken },
			body:       "{",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "resident is forbidden",
			token:      func(e *testEnv) string { return e.userToken },
			body:       map[string]string{"title": "t", "description": "d", "date": "2024-04-01"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "anonymous is unauthenticated",
			token:      func(*testEnv) string { return "" },
			body:       map[string]string{"title": "t", "description": "d", "date": "2024-04-01"},
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.do(t, http.MethodPost, secretary("/addnotice"), tt.token(env), tt.body)
			require.Equal(t, tt.wantStatus, w.Code, "body: %s", w.Body.String())

			notices, err := env.store.ListNotices(context.Background())
			require.NoError(t, err)
			if tt.wantStatus == http.StatusOK {
				created := decodeBody[models.Notice](t, w)
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), created.Date)
				assert.Len(t, notices, 1)
				assert.Equal(t, []string{events.NoticeCreated}, env.events.published())
				return
			}
			assert.Empty(t, notices, "rejected requests must not mutate the ledger")
			if tt.wantErrors > 0 {
				body := decodeBody[respond.ValidationBody](t, w)
				assert.Len(t, body.Errors, tt.wantErrors)
			}
		})
	}
}

func TestUpdateNoticeDateOnly(t *testing.T) {
	env := newTestEnv(t)
	original, err := env.store.CreateNotice(context.Background(), models.Notice{
		Title: "AGM", Description: "Annual meeting", Date: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, secretary("/updatenotice/"+original.ID), env.adminToken,
		map[string]string{"date": "2024-03-15T23:00:00-05:00"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	updated := decodeBody[dto.NoticeUpdatedResponse](t, w).Notice
	assert.Equal(t, "AGM", updated.Title)
	assert.Equal(t, "Annual meeting", updated.Description)
	// The calendar day as written, not the instant converted to UTC (which would be the 16th).
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), updated.Date)

	stored, err := env.store.FindNoticeByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateNoticeFields(t *testing.T) {
	env := newTestEnv(t)
	original, err := env.store.CreateNotice(context.Background(), models.Notice{
		Title: "AGM", Description: "Annual meeting", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, secretary("/updatenotice/"+original.ID), env.adminToken,
		map[string]string{"title": "AGM moved", "description": ""})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeBody[dto.NoticeUpdatedResponse](t, w).Notice
	assert.Equal(t, "AGM moved", updated.Title)
	assert.Equal(t, "Annual meeting", updated.Description, "empty values leave the field untouched")
	assert.Equal(t, original.Date, updated.Date)
	assert.Equal(t, []string{events.NoticeUpdated}, env.events.published())
}

func TestUpdateNoticeErrors(t *testing.T) {
	env := newTestEnv(t)
	existing, err := env.store.CreateNotice(context.Background(), models.Notice{Title: "t", Description: "d"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		id         string
		token      string
		body       any
		wantStatus int
	}{
		{name: "unknown id", id: storage.NewID(), token: env.adminToken, body: map[string]string{"title": "x"}, wantStatus: http.StatusNotFound},
		{name: "unknown id with empty body", id: storage.NewID(), token: env.adminToken, body: map[string]string{}, wantStatus: http.StatusNotFound},
		{name: "bad date", id: existing.ID, token: env.adminToken, body: map[string]string{"date": "later"}, wantStatus: http.StatusBadRequest},
		{name: "resident", id: existing.ID, token: env.userToken, body: map[string]string{"title": "x"}, wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPut, secretary("/updatenotice/"+tt.id), tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, "body: %s", w.Body.String())
		})
	}

	stored, err := env.store.FindNoticeByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", stored.Title)
}

func TestDeleteNotice(t *testing.T) {
	env := newTestEnv(t)
	existing, err := env.store.CreateNotice(context.Background(), models.Notice{Title: "t", Description: "d"})
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, secretary("/deletenotice/missing"), env.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	notices, _ := env.store.ListNotices(context.Background())
	assert.Len(t, notices, 1)

	w = env.do(t, http.MethodDelete, secretary("/deletenotice/"+existing.ID), env.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	notices, _ = env.store.ListNotices(context.Background())
	assert.Len(t, notices, 1)

	w = env.do(t, http.MethodDelete, secretary("/deletenotice/"+existing.ID), env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "notice deleted successfully", decodeBody[dto.MessageResponse](t, w).Message)
	notices, _ = env.store.ListNotices(context.Background())
	assert.Empty(t, notices)
}

func TestNoticeLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, secretary("/addnotice"), env.adminToken,
		map[string]string{"title": "AGM", "description": "Annual meeting", "date": "2024-04-01"})
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody[models.Notice](t, w)

	w = env.do(t, http.MethodGet, secretary("/fetchnotices"), env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody[[]models.Notice](t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "AGM", listed[0].Title)

	w = env.do(t, http.MethodDelete, secretary("/deletenotice/"+created.ID), env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, secretary("/fetchnotices"), env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
