/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, attached to every log line
  2. Logger:     Request logging through the handler's logrus logger
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for browser clients

ROUTE GROUPS:
  /api/interest/*       Interest calculations
  /api/rates/*          Rate primitives
  /api/annuity/*        Annuity payment and schedule
  /api/valuation/*      Position valuation and interpolation
  /api/calculations/*   Calculation history
  /api/scenarios/*      Canned calculations

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures the router.
type Options struct {
	AllowedOrigins []string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: h.Log, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/interest", func(r chi.Router) {
			r.Post("/", h.ComputeInterest)
			r.Post("/running", h.ComputeRunning)
		})

		r.Route("/rates", func(r chi.Router) {
			r.Get("/monthly", h.MonthlyRate)
			r.Get("/yearly", h.YearlyRate)
			r.Get("/days", h.DayProRata)
		})

		r.Route("/annuity", func(r chi.Router) {
			r.Post("/payment", h.AnnuityPayment)
			r.Post("/schedule", h.AnnuitySchedule)
		})

		r.Route("/valuation", func(r chi.Router) {
			r.Post("/position", h.ValuePosition)
			r.Post("/interpolate", h.Interpolate)
		})

		r.Route("/calculations", func(r chi.Router) {
			r.Get("/", h.ListCalculations)
			r.Get("/{id}", h.GetCalculation)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
