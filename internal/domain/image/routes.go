package image

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns image router. Reads are public; changes go through requireAuth.
func (h *Handler) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/by-filename/{filename}", h.GetByFilename)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/file", h.File)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/sync", h.Sync)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/rotate", h.Rotate)
	})

	return r
}
