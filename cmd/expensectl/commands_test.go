package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/expenses/internal/auth"
	"github.com/mmynk/expenses/internal/calculator"
	"github.com/mmynk/expenses/internal/service"
	"github.com/mmynk/expenses/internal/storage/memory"
)

func startServer(t *testing.T) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New(memory.WithLogger(logger))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	mux := http.NewServeMux()
	mux.Handle(service.NewExpenseServiceHandler(service.NewExpenseService(store, nil, logger)))
	mux.Handle(service.NewAuthServiceHandler(service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, logger)))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

// run executes one expensectl invocation against addr and returns stdout.
func run(t *testing.T, addr string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--addr", addr}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRecord(t *testing.T, addr string, args ...string) service.Record {
	t.Helper()
	out, err := run(t, addr, args...)
	require.NoError(t, err, "expensectl %s", strings.Join(args, " "))
	var rec service.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	return rec
}

func TestReportWorkflow(t *testing.T) {
	addr := startServer(t)

	usd := mustRecord(t, addr, "currency", "add", "--code", "USD", "--name", "US Dollar")
	assert.Equal(t, int64(1), *usd.ID)

	boss := mustRecord(t, addr, "person", "add", "--login", "boss", "--name", "Boss")
	able := mustRecord(t, addr, "person", "add", "--login", "abc", "--supervisor", "2")
	assert.Equal(t, *boss.ID, *able.SupervisorID)

	report := mustRecord(t, addr, "report", "add", "--purpose", "Trip", "--reporter", "3", "--created", "2024-03-01T09:00:00Z")
	assert.Equal(t, "draft", *report.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), report.Created.UTC())

	mustRecord(t, addr, "item", "add", "--report", "4", "--currency", "1", "--amount", "12.5", "--purpose", "Taxi")
	mustRecord(t, addr, "item", "add", "--report", "4", "--currency", "1", "--amount", "7.5")

	out, err := run(t, addr, "report", "totals", "4")
	require.NoError(t, err)
	var totals []calculator.CurrencyTotal
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	require.Len(t, totals, 1)
	assert.InDelta(t, 20.0, totals[0].Total, 1e-9)

	submitted := mustRecord(t, addr, "report", "transition", "4", "submitted")
	assert.Equal(t, "submitted", *submitted.Status)

	approved := mustRecord(t, addr, "report", "transition", "4", "approved", "--approver", "2")
	assert.Equal(t, *boss.ID, *approved.ApprovedSupervisorID)

	_, err = run(t, addr, "report", "transition", "4", "draft")
	assert.Error(t, err, "approved reports cannot go back to draft")

	out, err = run(t, addr, "find", "login", "abc")
	require.NoError(t, err)
	var found []service.Record
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, *able.ID, *found[0].ID)

	out, err = run(t, addr, "find", "reports", "3")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Trip", *found[0].Purpose)

	got := mustRecord(t, addr, "get", "4")
	assert.Equal(t, "approved", *got.Status)
}

func TestLoginPrintsToken(t *testing.T) {
	addr := startServer(t)
	mustRecord(t, addr, "person", "add", "--login", "abc")

	token, err := run(t, addr, "register", "abc", "--password", "long enough")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(token))

	token, err = run(t, addr, "login", "abc", "--password", "long enough")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(token), "."), "expected a JWT")

	_, err = run(t, addr, "login", "abc", "--password", "wrong")
	assert.Error(t, err)
}

func TestArgumentErrors(t *testing.T) {
	addr := startServer(t)

	_, err := run(t, addr, "get", "abc")
	assert.ErrorContains(t, err, "not an entity id")

	_, err = run(t, addr, "currency", "add")
	assert.ErrorContains(t, err, "code")

	_, err = run(t, addr, "report", "add", "--purpose", "x", "--created", "yesterday")
	assert.ErrorContains(t, err, "RFC 3339")

	_, err = run(t, addr, "get", "99")
	assert.Error(t, err)
}
