package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supervisor-console/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewHTTPClient(config.BackendConfig{BaseURL: server.URL, TimeoutSeconds: 2})
	return client, server
}

func TestFetchPendingDecodesBackendOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/requests/pending", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"2","user":"bea","query":"Do you deliver?","requestedAt":"2026-08-28T10:00:00Z","status":"pending"},
			{"id":"1","user":"ada","query":"When do you open?","requestedAt":"2026-08-28T09:00:00Z","status":"pending"}
		]`))
	}))

	records, err := client.FetchPending(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "bea", records[0].User)
	assert.Equal(t, "1", records[1].ID)
	assert.True(t, records[0].Actionable())
}

func TestFetchPendingNonSuccessStatusFails(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchPending(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchPendingUnreachableBackendFails(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.FetchPending(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach backend")
}

func TestFetchResolvedRejectsRecordsMissingAnswer(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/requests/resolved", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"4","customer_id":"ada","question":"When do you open?","supervisor_answer":"","answered_at":"2026-08-27T15:30:00Z"}
		]`))
	}))

	_, err := client.FetchResolved(context.Background())

	require.Error(t, err, "a resolved record always carries a non-empty answer")
	assert.Contains(t, err.Error(), "invalid resolved record")
}

func TestFetchResolvedDecodesValidRecords(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"4","customer_id":"ada","question":"When do you open?","supervisor_answer":"We open at 9am.","answered_at":"2026-08-27T15:30:00Z"}
		]`))
	}))

	records, err := client.FetchResolved(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ada", records[0].CustomerID)
	assert.Equal(t, "We open at 9am.", records[0].SupervisorAnswer)
	assert.False(t, records[0].AnsweredAt.IsZero())
}

func TestSubmitAnswerPostsDraftPayload(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))

	err := client.SubmitAnswer(context.Background(), "42", "We open at 9am.")

	require.NoError(t, err)
	assert.Equal(t, "/requests/42/answer", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{"answer": "We open at 9am."}, gotBody)
}

func TestSubmitAnswerNonSuccessStatusFails(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	err := client.SubmitAnswer(context.Background(), "42", "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestPingChecksBackendRoot(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	assert.NoError(t, client.Ping(context.Background()))
}
