package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	"github.com/zhouzirui/babysitter/backend/internal/service/dialog"
	skillservice "github.com/zhouzirui/babysitter/backend/internal/service/skill"
	transcriptservice "github.com/zhouzirui/babysitter/backend/internal/service/transcript"
)

func newTestRouter() http.Handler {
	catalog := joke.NewCatalog(joke.Seed())
	transcripts := transcriptservice.NewMemoryStore()
	executor := skillservice.NewExecutor("", dialog.NewController(catalog, nil), transcripts, nil)

	return NewRouter(Deps{
		Executor:    executor,
		Jokes:       catalog,
		Transcripts: transcripts,
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{method: http.MethodGet, path: "/healthz", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/jokes", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/sessions/nobody/transcript", status: http.StatusNotFound},
		{method: http.MethodPost, path: "/api/skill", body: `{"session":{"sessionId":"s1","new":true},"request":{"type":"LaunchRequest"}}`, status: http.StatusOK},
		{method: http.MethodOptions, path: "/api/skill", status: http.StatusNoContent},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, resp.Code)
		}
	}
}

func TestRouterRecordsTranscript(t *testing.T) {
	r := newTestRouter()

	launch := `{"session":{"sessionId":"s42","new":true},"request":{"type":"LaunchRequest"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/skill", bytes.NewBufferString(launch))
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/sessions/s42/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"requestType":"LaunchRequest"`)) {
		t.Fatalf("transcript missing launch turn: %s", resp.Body.String())
	}
}
