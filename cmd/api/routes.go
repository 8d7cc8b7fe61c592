package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountImageRoutes mounts /images and hangs the per-image people listing off the same router
func mountImageRoutes(r chi.Router, images chi.Router, peopleForImage http.HandlerFunc) {
	images.Get("/{id}/people", peopleForImage)
	r.Mount("/images", images)
}

// mountPeopleRoutes lets the person registry and the link endpoints share the /people prefix
func mountPeopleRoutes(r chi.Router, register ...func(r chi.Router)) {
	r.Route("/people", func(r chi.Router) {
		for _, fn := range register {
			fn(r)
		}
	})
}
