package person

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/pkg/datetime"
	"github.com/familytree/gallery-api/internal/pkg/errorhandler"
	"github.com/familytree/gallery-api/internal/pkg/response"
	"github.com/familytree/gallery-api/internal/pkg/validator"
)

// Handler handles person HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates person handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /people
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "list_people")
		return
	}

	items := make([]*PersonResponse, len(people))
	for i, p := range people {
		items[i] = PersonResponseFromEntity(p)
	}
	response.List(w, items, len(items))
}

// Create handles POST /people
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	in := CreatePersonInput{Name: req.Name, Notes: req.Notes}
	var err error
	if in.BirthDate, err = datetime.ParsePtr(req.BirthDate); err != nil {
		errorhandler.Handle(r.Context(), w, ErrInvalidBirthDate, "create_person")
		return
	}
	if in.DeathDate, err = datetime.ParsePtr(req.DeathDate); err != nil {
		errorhandler.Handle(r.Context(), w, ErrInvalidDeathDate, "create_person")
		return
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "create_person")
		return
	}
	response.Created(w, PersonResponseFromEntity(p))
}

// GetByID handles GET /people/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid person ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "get_person")
		return
	}
	response.OK(w, PersonResponseFromEntity(p))
}

// Stats handles GET /people/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		errorhandler.Handle(r.Context(), w, err, "people_stats")
		return
	}
	response.OK(w, stats)
}

// Routes registers person routes on r. Link routes share the /people prefix,
// so the caller passes the router instead of mounting a new one.
func (h *Handler) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/{id}", h.GetByID)
	r.With(requireAuth).Post("/", h.Create)
}
