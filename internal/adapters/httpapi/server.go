package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"valuelife/internal/domain"
	"valuelife/internal/ports/input"
)

// Server exposes the engine's minimal command/query API over JSON.
type Server struct {
	network input.NetworkUseCase
	router  http.Handler
}

// New constructs a configured router.
func New(network input.NetworkUseCase) *Server {
	srv := &Server{network: network}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(countRequests)

	r.Get("/healthz", srv.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/participants", srv.handleAddParticipant)
		r.Get("/participants", srv.handleListParticipants)
		r.Get("/participants/{id}", srv.handleGetParticipant)
		r.Post("/participants/{id}/activate", srv.handleActivate)
		r.Get("/tree", srv.handleGetTree)
		r.Get("/events", srv.handleListEvents)
		r.Get("/stats", srv.handleStats)
	})

	srv.router = r
	return srv
}

// Router returns the underlying handler for mounting or serving.
func (s *Server) Router() http.Handler { return s.router }

var (
	httpRequestsOnce sync.Once
	httpRequests     *prometheus.CounterVec
)

func requestCounter() *prometheus.CounterVec {
	httpRequestsOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valuelife_http_requests_total",
			Help: "HTTP requests served, by method and status.",
		}, []string{"method", "status"})
		prometheus.MustRegister(httpRequests)
	})
	return httpRequests
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		requestCounter().WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeDomainError maps domain sentinels to HTTP statuses. AlreadyActive
// is handled upstream since it is not a failure.
func writeDomainError(w http.ResponseWriter, err error) {
	code := domain.Code(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSponsorNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrTreeFull):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyName):
		status = http.StatusBadRequest
	}
	if code == "" {
		code = "internal"
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: err.Error()}})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
