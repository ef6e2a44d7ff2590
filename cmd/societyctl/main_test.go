package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/society-be/internal/config"
	"github.com/hongminglow/society-be/internal/server"
	"github.com/hongminglow/society-be/internal/storage/memory"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginWhoamiTotal(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, server.EnsureAdmin(context.Background(), store, config.AdminBootstrap{
		Email: "admin@society.test", Password: "changeme", Name: "Secretary",
	}))
	cfg := config.Config{JWTSecret: "secret", JWTIssuer: "society-test", CORSOrigins: []string{"*"}}
	ts := httptest.NewServer(server.NewHandler(cfg, server.Deps{Store: store}))
	defer ts.Close()

	common := []string{"--server", ts.URL, "--session-file", filepath.Join(t.TempDir(), "session.json")}

	_, err := run(t, append([]string{"whoami"}, common...)...)
	assert.Error(t, err)

	out, err := run(t, append([]string{"login", "--email", "admin@society.test", "--password", "changeme"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "(Admin)")
	assert.Contains(t, out, "/AdminDashboard")

	out, err = run(t, append([]string{"total"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))

	out, err = run(t, append([]string{"notices"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))

	_, err = run(t, append([]string{"logout"}, common...)...)
	require.NoError(t, err)
	_, err = run(t, append([]string{"total"}, common...)...)
	assert.Error(t, err)
}
