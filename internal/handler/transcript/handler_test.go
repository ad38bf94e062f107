package transcript

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/babysitter/backend/internal/model/transcript"
	transcriptservice "github.com/zhouzirui/babysitter/backend/internal/service/transcript"
)

func TestGetTranscript(t *testing.T) {
	store := transcriptservice.NewMemoryStore()
	if err := store.Append(context.Background(), transcript.Turn{SessionID: "s1", RequestType: "LaunchRequest", Speech: "hello"}); err != nil {
		t.Fatalf("append err: %v", err)
	}

	r := chi.NewRouter()
	New(store, nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/sessions/s1/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		SessionID string            `json:"sessionId"`
		Turns     []transcript.Turn `json:"turns"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.SessionID != "s1" || len(body.Turns) != 1 || body.Turns[0].Speech != "hello" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetTranscriptNotFound(t *testing.T) {
	r := chi.NewRouter()
	New(transcriptservice.NewMemoryStore(), nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/sessions/unknown/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
