package image

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/pkg/errorhandler"
	"github.com/familytree/gallery-api/internal/pkg/response"
	"github.com/familytree/gallery-api/internal/pkg/validator"
)

// Handler handles image HTTP requests
type Handler struct {
	service *Service
	trigger SyncTrigger
}

// NewHandler creates image handler
func NewHandler(service *Service, trigger SyncTrigger) *Handler {
	return &Handler{service: service, trigger: trigger}
}

// List handles GET /images
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "list_images")
		return
	}
	response.List(w, ImageResponsesFromEntities(images), len(images))
}

// Stats handles GET /images/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "image_stats")
		return
	}
	response.OK(w, stats)
}

// Sync handles POST /images/sync
// With ?background=true the sync is queued and 202 is returned immediately.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("background") == "true" && h.trigger != nil {
		if err := h.trigger.Trigger(r.Context()); err != nil {
			errorhandler.Handle(r.Context(), w, err, "trigger_sync")
			return
		}
		response.Accepted(w, "Sync started")
		return
	}

	result, err := h.service.SyncImages(r.Context())
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "sync_images")
		return
	}
	response.OK(w, result)
}

// GetByFilename handles GET /images/by-filename/{filename}
func (h *Handler) GetByFilename(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.GetByFilename(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "get_image_by_filename")
		return
	}
	response.OK(w, ImageResponseFromEntity(img))
}

// GetByID handles GET /images/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	img, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "get_image")
		return
	}
	response.OK(w, ImageResponseFromEntity(img))
}

// Update handles PATCH /images/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateImageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	img, err := h.service.UpdateMetadata(r.Context(), id, &req)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "update_image")
		return
	}
	response.OK(w, ImageResponseFromEntity(img))
}

// Delete handles DELETE /images/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		errorhandler.Handle(r.Context(), w, err, "deactivate_image")
		return
	}
	response.OKMessage(w, "Image removed", nil)
}

// Rotate handles POST /images/{id}/rotate
func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req RotateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	img, err := h.service.Rotate(r.Context(), id, req.Degrees)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "rotate_image")
		return
	}
	response.OK(w, ImageResponseFromEntity(img))
}

// File handles GET /images/{id}/file
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	img, data, err := h.service.ReadFile(r.Context(), id)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "read_image_file")
		return
	}

	w.Header().Set("Content-Type", img.MimeType)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, img.Filename, img.UpdatedAt, bytes.NewReader(data))
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid image ID")
		return uuid.Nil, false
	}
	return id, true
}
