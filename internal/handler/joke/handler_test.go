package joke

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(joke.NewCatalog(joke.Seed())).RegisterRoutes(r)
	return r
}

func TestListJokes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jokes", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var items []joke.Joke
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(items) != len(joke.Seed()) {
		t.Fatalf("expected %d jokes, got %d", len(joke.Seed()), len(items))
	}
}

func TestGetJoke(t *testing.T) {
	id := joke.Seed()[0].ID

	req := httptest.NewRequest(http.MethodGet, "/jokes/"+id, nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/jokes/missing", nil)
	resp = httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
