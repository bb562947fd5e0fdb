// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// slidesmith API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"slidesmith/internal/handlers"
	"slidesmith/internal/middleware"
)

// New creates the chi router. Routes that call an AI provider pass through
// aiLimit.
func New(api *handlers.API, aiLimit *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.Health)
		r.Get("/catalog", api.Catalog)

		r.Get("/providers", api.Providers)
		r.Put("/providers/active", api.SetProvider)

		r.With(aiLimit.Middleware).Post("/sessions", api.CreateSession)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", api.GetSession)
			r.Delete("/", api.DeleteSession)
			r.Post("/theme", api.ToggleTheme)
			r.Put("/project", api.UpdateProject)

			// AI-backed operations.
			r.Group(func(r chi.Router) {
				r.Use(aiLimit.Middleware)
				r.Post("/regenerate", api.Regenerate)
				r.Post("/hashtags", api.Hashtags)
				r.Post("/slides/{slideID}/background-image", api.GenerateBackground)
			})

			// Slide collection editing.
			r.Post("/slides", api.InsertSlide)
			r.Post("/slides/move", api.MoveSlide)
			r.Post("/positions/{index}/duplicate", api.DuplicateSlide)
			r.Delete("/positions/{index}", api.DeleteSlide)
			r.Patch("/slides/{slideID}", api.UpdateSlide)
			r.Post("/slides/{slideID}/reset-style", api.ResetTextStyle)
			r.Get("/slides/{slideID}/preview.png", api.Preview)
			r.Post("/select", api.SelectSlide)
			r.Post("/style", api.ApplyStyle)
			r.Post("/template", api.ApplyTemplate)
			r.Post("/uploads", api.UploadBackground)

			// Output.
			r.Post("/export", api.Export)
			r.Get("/compose/{format}", api.Compose)
			r.Get("/post.pdf", api.PostPDF)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
