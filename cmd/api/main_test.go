package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestGalleryRoutesShareRouters(t *testing.T) {
	root := chi.NewRouter()

	named := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Route", name)
			w.WriteHeader(http.StatusOK)
		}
	}

	images := chi.NewRouter()
	images.Get("/{id}", named("image"))

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				t.Fatalf("registering gallery routes panicked: %v", rec)
			}
		}()
		mountImageRoutes(root, images, named("people-for-image"))
		mountPeopleRoutes(root,
			func(r chi.Router) { r.Get("/{id}", named("person")) },
			func(r chi.Router) {
				r.Post("/link-to-image", named("link"))
				r.Delete("/link-to-image", named("unlink"))
			},
		)
	}()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/images/123", "image"},
		{http.MethodGet, "/images/123/people", "people-for-image"},
		{http.MethodGet, "/people/456", "person"},
		{http.MethodPost, "/people/link-to-image", "link"},
		{http.MethodDelete, "/people/link-to-image?personId=1&imageId=2", "unlink"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			root.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != http.StatusOK || rr.Header().Get("X-Route") != tt.want {
				t.Fatalf("expected %s, got status %d route %q", tt.want, rr.Code, rr.Header().Get("X-Route"))
			}
		})
	}
}
