package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkaraca/rmosdesk/internal/logging"
	"github.com/hkaraca/rmosdesk/internal/session"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, false)
}

func newTestClient(t *testing.T, ts *httptest.Server, tokens TokenSource, opts ...Option) *Client {
	t.Helper()
	return NewClient(ts.URL, ts.URL, tokens, testLogger(), 5*time.Second, opts...)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotCT, gotReqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode(map[string]any{"value": []any{}, "isSucceded": true})
	}))
	defer ts.Close()

	tokens := session.NewStore("")
	require.NoError(t, tokens.Set("tok-abc"))

	c := newTestClient(t, ts, tokens)
	var out []json.RawMessage
	err := c.PostValue(context.Background(), "/api/Kara/Getir_Kod", map[string]any{}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.NotEmpty(t, gotReqID)
}

func TestClient_NoAuthHeaderOnLogin(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "fresh-token"})
	}))
	defer ts.Close()

	tokens := session.NewStore("")
	require.NoError(t, tokens.Set("stale"))

	c := newTestClient(t, ts, tokens)
	token, err := c.Authenticate(context.Background(), "desk", "secret")
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", token)
	assert.Empty(t, gotAuth)
	assert.Equal(t, map[string]string{"userName": "desk", "password": "secret"}, gotBody)
}

func TestClient_Unauthorized_ClearsSessionAndFiresHookOnce(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	tokens := session.NewStore("")
	require.NoError(t, tokens.Set("tok"))

	var hookCalls atomic.Int32
	c := newTestClient(t, ts, tokens, WithSessionExpiredHook(func() { hookCalls.Add(1) }))

	// Several concurrent requests all receive the 401.
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out json.RawMessage
			errs[i] = c.PostValue(context.Background(), "/x", map[string]any{}, &out)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.False(t, tokens.Active())
	assert.Equal(t, int32(1), hookCalls.Load(), "expiry hook must fire exactly once")
}

func TestClient_HTTPErrorCarriesServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid filter"})
	}))
	defer ts.Close()

	c := newTestClient(t, ts, session.NewStore(""))
	var out json.RawMessage
	err := c.PostValue(context.Background(), "/x", map[string]any{}, &out)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "invalid filter", httpErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // nothing listening anymore

	c := newTestClient(t, ts, session.NewStore(""))
	var out json.RawMessage
	err := c.PostValue(context.Background(), "/x", map[string]any{}, &out)

	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_PostCommand_FailureBecomesAppError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"isSucceded": false, "message": "Duplicate"})
	}))
	defer ts.Close()

	c := newTestClient(t, ts, session.NewStore(""))
	_, err := c.PostCommand(context.Background(), "/x", map[string]any{})

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Duplicate", appErr.Message)
}

func TestClient_PostCommand_FailureWithoutMessageGetsFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"isSucceded": false})
	}))
	defer ts.Close()

	c := newTestClient(t, ts, session.NewStore(""))
	_, err := c.PostCommand(context.Background(), "/x", map[string]any{})

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "operation failed", appErr.Message)
}

func TestClient_PostValue_MissingValueIsAppError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "null value", body: `{"value": null, "isSucceded": true}`},
		{name: "no value key", body: `{"isSucceded": true}`},
		{name: "not an envelope", body: `"just a string"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := newTestClient(t, ts, session.NewStore(""))
			var out []json.RawMessage
			err := c.PostValue(context.Background(), "/x", map[string]any{}, &out)

			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
		})
	}
}
