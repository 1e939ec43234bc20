package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	ghclient "github.com/sgaunet/auto-merger/pkg/github"
	"github.com/sgaunet/auto-merger/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*ghclient.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghclient.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)
	return client, server
}

type prJSON struct {
	Number  int       `json:"number"`
	Title   string    `json:"title"`
	Draft   bool      `json:"draft"`
	HTMLURL string    `json:"html_url"`
	Labels  []lblJSON `json:"labels"`
	Created string    `json:"created_at,omitempty"`
}

type lblJSON struct {
	Name string `json:"name"`
}

type reviewJSON struct {
	State string `json:"state"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListOpenPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		writeJSON(w, []prJSON{
			{
				Number:  42,
				Title:   "Add feature X",
				HTMLURL: "https://github.com/acme/widgets/pull/42",
				Labels:  []lblJSON{{Name: "lgtm"}, {Name: "pr/failing-ci"}},
				Created: "2024-12-19T07:30:11Z",
			},
			{Number: 43, Title: "WIP", Draft: true, Created: "2024-12-20T07:30:11Z"},
		})
	})
	mux.HandleFunc("GET /repos/acme/widgets/pulls/42/reviews", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []reviewJSON{{State: "COMMENTED"}, {State: "APPROVED"}, {State: "APPROVED"}})
	})
	mux.HandleFunc("GET /repos/acme/widgets/pulls/43/reviews", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []reviewJSON{})
	})

	client, _ := newTestClient(t, mux)
	raws, err := client.ListOpenPullRequests(context.Background(), "acme/widgets")
	require.NoError(t, err)
	require.Len(t, raws, 2)

	rec, err := policy.Normalize(raws[0], "acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, 42, rec.ID)
	assert.Equal(t, "Add feature X", rec.Title)
	assert.Equal(t, []string{"lgtm", "pr/failing-ci"}, rec.Labels.Sorted())
	assert.Equal(t, 2, policy.CountApprovals(rec.ReviewStates))
	assert.Equal(t, "https://github.com/acme/widgets/pull/42", rec.URL)
	require.NotNil(t, rec.CreatedAt)
	assert.Equal(t, "2024-12-19T07:30:11Z", policy.FormatTimestamp(*rec.CreatedAt))

	draft, err := policy.Normalize(raws[1], "acme/widgets")
	require.NoError(t, err)
	assert.True(t, draft.IsDraft)
}

func TestListOpenPullRequests_Pagination(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, []prJSON{{Number: 2, Title: "second"}})
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widgets/pulls?state=open&page=2>; rel="next"`, serverURL))
		writeJSON(w, []prJSON{{Number: 1, Title: "first"}})
	})
	mux.HandleFunc("GET /repos/acme/widgets/pulls/{number}/reviews", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []reviewJSON{})
	})

	client, server := newTestClient(t, mux)
	serverURL = server.URL

	raws, err := client.ListOpenPullRequests(context.Background(), "acme/widgets")
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, 1, *raws[0].Number)
	assert.Equal(t, 2, *raws[1].Number)
}

func TestListOpenPullRequests_Errors(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.ListOpenPullRequests(context.Background(), "acme/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme/missing")

	_, err = client.ListOpenPullRequests(context.Background(), "no-owner")
	assert.ErrorIs(t, err, ghclient.ErrInvalidRepoKey)
}

func TestMergePullRequest(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /repos/acme/widgets/pulls/42/merge", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MergeMethod string `json:"merge_method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotMethod = body.MergeMethod
		writeJSON(w, map[string]any{"merged": true, "message": "Pull Request successfully merged", "sha": "abc"})
	})
	mux.HandleFunc("PUT /repos/acme/widgets/pulls/43/merge", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"merged": false, "message": "Base branch was modified"})
	})

	client, _ := newTestClient(t, mux)

	require.NoError(t, client.MergePullRequest(context.Background(), "acme/widgets", 42, "rebase"))
	assert.Equal(t, "rebase", gotMethod)

	err := client.MergePullRequest(context.Background(), "acme/widgets", 43, "rebase")
	assert.ErrorIs(t, err, ghclient.ErrNotMerged)
	assert.Contains(t, err.Error(), "Base branch was modified")

	err = client.MergePullRequest(context.Background(), "acme/widgets", 44, "rebase")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"login": "merge-bot"})
	})

	client, _ := newTestClient(t, mux)
	login, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "merge-bot", login)

	failing, _ := newTestClient(t, http.NotFoundHandler())
	_, err = failing.Authenticate(context.Background())
	assert.Error(t, err)
}

func TestNewClient_TokenRequired(t *testing.T) {
	t.Setenv(ghclient.TokenEnv, "")
	t.Setenv(ghclient.FallbackTokenEnv, "")

	_, err := ghclient.NewClient("")
	assert.ErrorIs(t, err, ghclient.ErrTokenRequired)
}

func TestNewClient_Enterprise(t *testing.T) {
	t.Setenv(ghclient.TokenEnv, "ghp_testtoken1234567890")

	client, err := ghclient.NewClient("https://github.example.com/api/v3/")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
