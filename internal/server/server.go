// Package server exposes the compile pipeline over HTTP.
//
// Routes:
//
//	POST /v1/compile         compile a grid; body is a pipeline.Options object
//	GET  /v1/layouts         list the named layouts
//	GET  /v1/layouts/{name}  describe one layout
//	GET  /healthz            liveness and build information
//
// Every response carries an X-Request-ID header. For compiles it is the ID
// of the pipeline result.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridgen/pkg/grid"
	"github.com/matzehuels/gridgen/pkg/pipeline"
)

// maxBodyBytes bounds compile request bodies.
const maxBodyBytes = 64 << 10

// Server holds what the handlers share. It is safe for concurrent use.
type Server struct {
	runner    *pipeline.Runner
	catalogue *grid.Catalogue
	container string
	logger    *log.Logger
}

// New creates a server. Requests without a container use container; nil
// arguments get the runner's defaults.
func New(runner *pipeline.Runner, catalogue *grid.Catalogue, container string, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil, logger)
	}
	if catalogue == nil {
		catalogue = grid.DefaultCatalogue()
	}
	if container == "" {
		container = grid.DefaultContainer
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, catalogue: catalogue, container: container, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compile", s.compile)
		r.Get("/layouts", s.layouts)
		r.Get("/layouts/{name}", s.layout)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path, nil)
	})
	return r
}
