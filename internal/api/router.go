package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"

	"github.com/clinicdesk/api/internal/api/handlers"
	mw "github.com/clinicdesk/api/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret          []byte
	DB                  *gorm.DB
	AuthHandler         *handlers.AuthHandler
	UsersHandler        *handlers.UsersHandler
	PatientsHandler     *handlers.PatientsHandler
	AppointmentsHandler *handlers.AppointmentsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler(dep.DB)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/docs/doc.json"),
	))

	r.Route("/api/v1", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", dep.AuthHandler.Login)
		})

		// Protected routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))

			// Staff users
			protected.Route("/users", func(ur chi.Router) {
				ur.Get("/", dep.UsersHandler.List)
				ur.Post("/", dep.UsersHandler.Create)
				ur.Get("/{id}", dep.UsersHandler.Get)
				ur.Put("/{id}", dep.UsersHandler.Update)
				ur.Delete("/{id}", dep.UsersHandler.Deactivate)
			})

			// Patients
			protected.Route("/patients", func(pr chi.Router) {
				pr.Get("/", dep.PatientsHandler.List)
				pr.Post("/", dep.PatientsHandler.Create)
				pr.Get("/search", dep.PatientsHandler.Search)
				pr.Get("/{id}", dep.PatientsHandler.Get)
				pr.Put("/{id}", dep.PatientsHandler.Update)
				pr.Delete("/{id}", dep.PatientsHandler.Deactivate)
			})

			// Appointments
			protected.Route("/appointments", func(ar chi.Router) {
				ar.Get("/", dep.AppointmentsHandler.List)
				ar.Post("/", dep.AppointmentsHandler.Create)
				ar.Get("/search", dep.AppointmentsHandler.Search)
				ar.Get("/{id}", dep.AppointmentsHandler.Get)
				ar.Put("/{id}", dep.AppointmentsHandler.Update)
				ar.Delete("/{id}", dep.AppointmentsHandler.Delete)
			})
		})
	})

	return r
}
