package person

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter() http.Handler {
	h := NewHandler(NewService(&repoStub{}, nil))
	r := chi.NewRouter()
	h.Routes(r, func(next http.Handler) http.Handler { return next })
	return r
}

func TestHandlerCreateAndGet(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  Ada ","birth_date":"1815-12-10","death_date":"1852"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		Data PersonResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.Name != "Ada" {
		t.Errorf("expected trimmed name, got %q", created.Data.Name)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/"+created.Data.ID.String(), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHandlerCreateErrors(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing name", `{}`, http.StatusUnprocessableEntity},
		{"blank name", `{"name":"   "}`, http.StatusBadRequest},
		{"bad birth date", `{"name":"A","birth_date":"yesterday"}`, http.StatusBadRequest},
		{"death before birth", `{"name":"A","birth_date":"1900-01-01","death_date":"1899-01-01"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			if rr.Code != tt.status {
				t.Errorf("expected %d, got %d body=%s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/00000000-0000-0000-0000-000000000001", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown person, got %d", rr.Code)
	}
}
