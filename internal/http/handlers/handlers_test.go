package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stellaracademy/academy-be/internal/auth"
	"github.com/stellaracademy/academy-be/internal/http/handlers"
	"github.com/stellaracademy/academy-be/internal/middleware"
	"github.com/stellaracademy/academy-be/internal/storage/memory"
)

type testEnv struct {
	ts     *httptest.Server
	store  *memory.Store
	tokens *auth.TokenManager
	svc    *auth.Service
}

// newTestEnv builds the full route table over an in-memory store. The AI
// handler is only mounted when a generator is supplied.
func newTestEnv(t *testing.T, generator handlers.Generator) *testEnv {
	t.Helper()

	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "academy-test", 5*time.Hour)
	svc := auth.NewService(store, store, tokens)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(svc).Register(mux)
	handlers.NewCoursesHandler(store).Register(mux)

	guard := middleware.RequireAuth(tokens)
	handlers.NewUsersHandler(store, store).Register(mux, guard)
	if generator != nil {
		handlers.NewAIHandler(generator).Register(mux, guard)
	}

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, store: store, tokens: tokens, svc: svc}
}

func (e *testEnv) postJSON(t *testing.T, path, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

type errorsBody struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

type messageBody struct {
	Msg string `json:"msg"`
}

func errorMessages(t *testing.T, resp *http.Response) []string {
	t.Helper()
	body := decodeBody[errorsBody](t, resp)
	msgs := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

// registerAndLogin creates a user and returns its id and a fresh token.
func (e *testEnv) registerAndLogin(t *testing.T, username, email, password string) (string, string) {
	t.Helper()
	ctx := t.Context()
	require.NoError(t, e.svc.Register(ctx, username, email, password))
	token, err := e.svc.Login(ctx, email, password)
	require.NoError(t, err)

	user, err := e.store.FindByEmail(ctx, email)
	require.NoError(t, err)
	return user.ID, token
}
