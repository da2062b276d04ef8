package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Token: "ghp_test"})
	require.NoError(t, err)
	return client
}

func TestDispatchSuccess(t *testing.T) {
	var captured struct {
		path   string
		auth   string
		accept string
		body   dispatchBody
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.accept = r.Header.Get("Accept")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Dispatch(context.Background(), DispatchRequest{
		Owner:    "acme",
		Repo:     "loadtests",
		Workflow: "perf.yml",
		Ref:      "main",
		Format:   "env",
		Config:   "TEST__TYPE=smoke\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/acme/loadtests/actions/workflows/perf.yml/dispatches", captured.path)
	assert.Equal(t, "Bearer ghp_test", captured.auth)
	assert.Equal(t, "application/vnd.github+json", captured.accept)
	assert.Equal(t, "main", captured.body.Ref)
	assert.Equal(t, "env", captured.body.Inputs["format"])
	assert.Equal(t, "TEST__TYPE=smoke\n", captured.body.Inputs["config"])
}

func TestDispatchErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Bad credentials"}`,
			ErrKindAuth, "authentication failed"},
		{"forbidden", http.StatusForbidden, `{"message":"Resource not accessible"}`,
			ErrKindPermission, "workflow scope"},
		{"not found", http.StatusNotFound, `{"message":"Not Found"}`,
			ErrKindNotFound, "repository or workflow not found"},
		{"unprocessable", http.StatusUnprocessableEntity, `{"message":"Unexpected inputs provided"}`,
			ErrKindValidation, "Unexpected inputs provided"},
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`,
			ErrKindUnknown, "boom"},
		{"unknown without body", http.StatusBadGateway, ``,
			ErrKindUnknown, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.Dispatch(context.Background(), DispatchRequest{
				Owner: "acme", Repo: "loadtests", Workflow: "perf.yml", Ref: "main",
			})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
		})
	}
}

// A 200 with a body is still a failure: only 204 means the dispatch was
// accepted.
func TestDispatchRejectsUnexpectedOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})
	err := client.Dispatch(context.Background(), DispatchRequest{
		Owner: "acme", Repo: "loadtests", Workflow: "perf.yml", Ref: "main",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindUnknown, apiErr.Kind)
}

func TestValidateConnection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/loadtests", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"full_name":"acme/loadtests"}`))
	})
	assert.NoError(t, client.ValidateConnection(context.Background(), "acme", "loadtests"))
}

func TestValidateConnectionClassifiesFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	})

	err := client.ValidateConnection(context.Background(), "acme", "loadtests")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindAuth, apiErr.Kind)
}

func TestListRuns(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/loadtests/actions/runs", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "main", r.URL.Query().Get("branch"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_count": 1,
			"workflow_runs": [{
				"id": 987,
				"run_number": 42,
				"name": "Performance Tests",
				"status": "completed",
				"conclusion": "success",
				"html_url": "https://example.test/runs/987",
				"created_at": "2024-05-01T10:00:00Z",
				"updated_at": "2024-05-01T10:05:00Z",
				"head_branch": "main",
				"event": "workflow_dispatch"
			}]
		}`))
	})

	runs, err := client.ListRuns(context.Background(), "acme", "loadtests", ListRunsOptions{
		Branch:  "main",
		PerPage: 10,
		Page:    2,
	})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, int64(987), run.ID)
	assert.Equal(t, 42, run.Number)
	assert.Equal(t, "Performance Tests", run.Name)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, "success", run.Conclusion)
	assert.Equal(t, "https://example.test/runs/987", run.URL)
	assert.Equal(t, "main", run.Branch)
	assert.Equal(t, "workflow_dispatch", run.Event)
}

func TestListRunsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// no paging or branch options means no query parameters
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"total_count":0,"workflow_runs":[]}`))
	})

	runs, err := client.ListRuns(context.Background(), "acme", "loadtests", ListRunsOptions{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.baseURL)

	_, err = NewClient(Config{BaseURL: "://bad"})
	assert.ErrorContains(t, err, "invalid base URL")
}
