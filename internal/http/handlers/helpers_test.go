package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/society-be/internal/auth"
	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage/memory"
)

const testPassword = "password123"

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

type testEnv struct {
	mux        *http.ServeMux
	store      *memory.Store
	tokens     *auth.TokenManager
	events     *recordingPublisher
	admin      models.Account
	resident   models.Account
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	admin, err := store.CreateAccount(ctx, models.Account{
		Name: "Secretary", Email: "admin@society.test", PasswordHash: string(hash), Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	resident, err := store.CreateAccount(ctx, models.Account{
		Name: "Resident", Email: "resident@society.test", PasswordHash: string(hash),
		Phone: "9876543210", Address: "Block A, Lake View Road", RoomNo: "A-12", Role: models.RoleUser,
	})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", "society-test", time.Hour)
	adminToken, err := tokens.Generate(admin)
	require.NoError(t, err)
	userToken, err := tokens.Generate(resident)
	require.NoError(t, err)

	env := &testEnv{
		mux:        http.NewServeMux(),
		store:      store,
		tokens:     tokens,
		events:     &recordingPublisher{},
		admin:      admin,
		resident:   resident,
		adminToken: adminToken,
		userToken:  userToken,
	}
	gates := NewGates(tokens)
	NewAuthHandler(store, tokens, nil, false).Register(env.mux)
	NewNoticeHandler(store, gates, env.events).Register(env.mux)
	NewMemberHandler(store, gates, env.events).Register(env.mux)
	NewFundHandler(store, gates, env.events).Register(env.mux)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		default:
			var err error
			raw, err = json.Marshal(body)
			require.NoError(t, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func secretary(path string) string {
	return SecretaryPrefix + path
}
