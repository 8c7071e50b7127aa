package router

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"staffdir/internal/config"
	"staffdir/internal/controller"
	"staffdir/internal/logging"
	"staffdir/internal/metrics"
)

func NewRouter(c *controller.Controller, cfg *config.Config, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", c.Ping)

	mux.HandleFunc("GET /api/companies/{$}", c.GetOrganizations)
	mux.HandleFunc("POST /api/companies/{$}", c.NewOrganization)
	mux.HandleFunc("POST /api/companies/upload_companies/{$}", c.UploadOrganizations)
	mux.HandleFunc("GET /api/companies/{id}/{$}", c.GetOrganization)
	mux.HandleFunc("PUT /api/companies/{id}/{$}", c.EditOrganization)
	mux.HandleFunc("PATCH /api/companies/{id}/{$}", c.EditOrganization)
	mux.HandleFunc("DELETE /api/companies/{id}/{$}", c.DeleteOrganization)

	mux.HandleFunc("GET /api/employees/{$}", c.GetEmployees)
	mux.HandleFunc("POST /api/employees/{$}", c.NewEmployee)
	mux.HandleFunc("POST /api/employees/upload_employees/{$}", c.UploadEmployees)
	mux.HandleFunc("GET /api/employees/{id}/{$}", c.GetEmployee)
	mux.HandleFunc("PUT /api/employees/{id}/{$}", c.EditEmployee)
	mux.HandleFunc("PATCH /api/employees/{id}/{$}", c.EditEmployee)
	mux.HandleFunc("DELETE /api/employees/{id}/{$}", c.DeleteEmployee)

	if cfg.MetricsPath != "" {
		mux.Handle("GET "+cfg.MetricsPath, metrics.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Not found."}`))
	})

	public := map[string]bool{"/api/ping": true, cfg.MetricsPath: true}

	var handler http.Handler = mux
	handler = withAuth(cfg.APIToken, public, handler)
	handler = withCORS(cfg.CORSAllowedOrigins, handler)
	handler = logging.Middleware(logger)(handler)

	return handler
}

func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
	})
	return middleware.Handler(h)
}
