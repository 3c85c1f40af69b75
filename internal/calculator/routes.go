package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/keys", h.Key)
		r.Post("/buttons/{button}", h.Button)
		r.Get("/display", h.Display)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.History)
			r.Delete("/", h.ClearHistory)
			r.Post("/toggle", h.TogglePanel)
			r.Post("/{index}/use", h.UseEntry)
		})
	})
}
