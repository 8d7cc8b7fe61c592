package link

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/pkg/errorhandler"
	"github.com/familytree/gallery-api/internal/pkg/response"
	"github.com/familytree/gallery-api/internal/pkg/validator"
)

// Handler handles person-image link HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates link handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Link handles POST /people/link-to-image
func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, ErrInvalidBoundingBox) {
			errorhandler.Handle(r.Context(), w, err, "link_person")
			return
		}
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	l, err := h.service.Link(r.Context(), LinkInput{
		PersonID:    req.PersonID,
		ImageID:     req.ImageID,
		BoundingBox: req.BoundingBox,
	})
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "link_person")
		return
	}
	response.Created(w, LinkResponseFromEntity(l))
}

// Unlink handles DELETE /people/link-to-image?personId=...&imageId=...
func (h *Handler) Unlink(w http.ResponseWriter, r *http.Request) {
	personID, err := uuid.Parse(queryParam(r, "personId", "person_id"))
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}
	imageID, err := uuid.Parse(queryParam(r, "imageId", "image_id"))
	if err != nil {
		response.BadRequest(w, "Invalid image ID")
		return
	}

	if err := h.service.Unlink(r.Context(), personID, imageID); err != nil {
		errorhandler.Handle(r.Context(), w, err, "unlink_person")
		return
	}
	response.OKMessage(w, "Person unlinked from image", nil)
}

// PeopleForImage handles GET /images/{id}/people
func (h *Handler) PeopleForImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid image ID")
		return
	}

	people, err := h.service.PeopleForImage(r.Context(), imageID)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "people_for_image")
		return
	}
	items := LinkedPersonResponsesFromEntities(people)
	response.List(w, items, len(items))
}

// Routes registers the link endpoints under the /people router
func (h *Handler) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/link-to-image", h.Link)
		r.Delete("/link-to-image", h.Unlink)
	})
}

func queryParam(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}
