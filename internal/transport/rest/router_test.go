package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/submit"
	"github.com/glp360/riskscore/internal/transport/rest/handler"
	"github.com/glp360/riskscore/internal/visibility"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []submit.Payload
	err      error
}

func (f *fakeSubmitter) Submit(p submit.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.payloads = append(f.payloads, p)
	return "sub-1", nil
}

func newTestServer(t *testing.T, origins []string) (*httptest.Server, *fakeSubmitter) {
	t.Helper()
	sub := &fakeSubmitter{}
	srv := httptest.NewServer(NewRouter(&Container{
		Engine:         scoring.NewEngine(catalog.Default(), nil),
		Rules:          visibility.DefaultRules(),
		Submitter:      sub,
		AllowedOrigins: origins,
	}))
	t.Cleanup(srv.Close)
	return srv, sub
}

func post(t *testing.T, srv *httptest.Server, path, body string, out any) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalog(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/v1/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body handler.CatalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Questions, 14)
	assert.Equal(t, "q12", body.Branch.Root)
	assert.Equal(t, 11, body.Branch.AlwaysVisible)
}

func TestNavigation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name        string
		body        string
		wantVisible int
		wantNext    int
		wantLast    bool
	}{
		{
			name:        "none on root shows leaf 1",
			body:        `{"answers": {"q12": "q12_d"}, "current": 11}`,
			wantVisible: 13,
			wantNext:    12,
		},
		{
			name:        "warning sign on root ends the branch",
			body:        `{"answers": {"q12": ["q12_a"]}, "current": 11}`,
			wantVisible: 12,
			wantNext:    -1,
			wantLast:    true,
		},
		{
			name:        "start",
			body:        `{"current": -1}`,
			wantVisible: 13,
			wantNext:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got handler.NavigationResponse
			resp := post(t, srv, "/v1/navigation", tt.body, &got)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Len(t, got.Visible, tt.wantVisible)
			assert.Equal(t, tt.wantNext, got.Next)
			assert.Equal(t, tt.wantLast, got.IsLast)
			assert.LessOrEqual(t, got.Progress, 1.0)
		})
	}
}

func TestNavigation_OutOfRange(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := post(t, srv, "/v1/navigation", `{"current": 99}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelection(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none clears others", `{"questionId": "q12", "optionId": "q12_d", "current": ["q12_a"]}`, []string{"q12_d"}},
		{"option replaces none", `{"questionId": "q12", "optionId": "q12_b", "current": ["q12_d"]}`, []string{"q12_b"}},
		{"toggle off", `{"questionId": "q12", "optionId": "q12_b", "current": ["q12_b"]}`, []string{}},
		{"single replaces", `{"questionId": "q1", "optionId": "q1_c", "current": ["q1_a"]}`, []string{"q1_c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got handler.SelectionResponse
			resp := post(t, srv, "/v1/selection", tt.body, &got)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, []string(got.Selection))
		})
	}

	resp := post(t, srv, "/v1/selection", `{"questionId": "q1", "optionId": "nope"}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestScore_PrunesHiddenAnswers(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	var got handler.ScoreResponse
	resp := post(t, srv, "/v1/score",
		`{"answers": {"q1": "q1_e", "q12": ["q12_a"], "q13": ["q13_b"]}}`, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 7, got.Result.TotalScore)
	assert.Equal(t, scoring.CategoryBase, got.Result.FinalCategory)
	assert.Equal(t, []string{"q13"}, got.Pruned)
	assert.Equal(t, "#4caf50", got.Style.Border)
	assert.NotEmpty(t, got.Plan)
}

func TestScore_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := post(t, srv, "/v1/score", `{"answers": [`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmissions(t *testing.T) {
	srv, sub := newTestServer(t, nil)

	resp := post(t, srv, "/v1/submissions", `{"name": "  ", "phone": "555"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, sub.payloads)

	var got handler.SubmissionResponse
	resp = post(t, srv, "/v1/submissions",
		`{"answers": {"q1": "q1_e"}, "name": " Jane ", "phone": "555-0100", "contactRequested": false}`, &got)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, "accepted", got.Status)

	require.Len(t, sub.payloads, 1)
	p := sub.payloads[0]
	assert.Equal(t, "Jane", p.Name)
	assert.False(t, p.ContactRequested)
	assert.Equal(t, "More than 12 months", p.Answers["q1"])
	assert.Equal(t, 4, p.TotalScore)
	assert.Equal(t, scoring.CategoryBase, p.FinalCategory)
}

func TestSubmissions_Closed(t *testing.T) {
	srv, sub := newTestServer(t, nil)
	sub.err = submit.ErrClosed

	resp := post(t, srv, "/v1/submissions", `{"name": "A", "phone": "1"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, []string{"https://quiz.example.com"})

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/score", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	resp := preflight("https://quiz.example.com")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://quiz.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = preflight("https://evil.example.com")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	srv, _ := newTestServer(t, []string{"*"})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
