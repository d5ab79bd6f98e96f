package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gdg-garage/registration-api/internal/logging"
)

type RouterOptions struct {
	// ExposeDocs serves the OpenAPI document and the docs UI.
	ExposeDocs bool
}

// APIConfig returns the huma configuration of the registration API.
func APIConfig(opts RouterOptions) huma.Config {
	config := huma.DefaultConfig("Registration API", "1.0.0")
	// No $schema links in response bodies.
	config.CreateHooks = nil
	if !opts.ExposeDocs {
		config.OpenAPIPath = ""
		config.DocsPath = ""
		config.SchemasPath = ""
	}
	return config
}

// NewRouter builds the HTTP surface: POST /, GET /card, GET /admin/export.
// Every other method and path answers 405.
func NewRouter(h *RegistrationHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.NotFound(methodNotAllowed)
	r.MethodNotAllowed(methodNotAllowed)

	api := humachi.New(r, APIConfig(opts))
	RegisterOperations(api, h)

	return r
}

func RegisterOperations(api huma.API, h *RegistrationHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-registration",
		Method:        http.MethodPost,
		Path:          "/",
		Summary:       "Submit a registration",
		DefaultStatus: http.StatusOK,
	}, h.HandleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "get-card",
		Method:      http.MethodGet,
		Path:        "/card",
		Summary:     "Get the card of a registration",
	}, h.HandleGetCard)

	huma.Register(api, huma.Operation{
		OperationID: "export-registrations",
		Method:      http.MethodGet,
		Path:        "/admin/export",
		Summary:     "Export registrations as CSV",
	}, h.HandleExport)
}

// CORS allows any origin. Preflight requests on any path are answered here
// and never reach the router.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, newAPIError(http.StatusMethodNotAllowed, MsgMethodNotAllowed))
}
