// Package httpapi serves the workflow over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	ai "github.com/spetersoncode/mailroute"
	"github.com/spetersoncode/mailroute/workflow"
)

// maxBodyBytes caps the request body of POST /v1/run.
const maxBodyBytes = 1 << 20

// Runner executes one workflow run. *workflow.Engine satisfies it.
type Runner interface {
	Run(ctx context.Context, userInput string) (*workflow.Result, error)
}

// RunRequest is the body of POST /v1/run.
type RunRequest struct {
	UserInput string `json:"user_input"`
}

// RunResponse is the body of a successful POST /v1/run.
type RunResponse struct {
	Output   string `json:"output"`
	Decision string `json:"decision"`
	RunID    string `json:"run_id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}

type server struct {
	runner Runner
	log    *slog.Logger
}

// NewHandler returns the HTTP routes for r. metrics, when non-nil, is
// mounted at GET /metrics.
func NewHandler(r Runner, logger *slog.Logger, metrics http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{runner: r, log: logger}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", s.health)
	mux.Post("/v1/run", s.run)
	if metrics != nil {
		mux.Method(http.MethodGet, "/metrics", metrics)
	}
	return mux
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	res, err := s.runner.Run(r.Context(), req.UserInput)
	if err != nil {
		status, body := mapError(err)
		s.log.WarnContext(r.Context(), "run request failed",
			"status", status,
			"step", body.Step,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusOK, RunResponse{
		Output:   res.Output,
		Decision: res.Decision.String(),
		RunID:    res.RunID,
	})
}

// mapError picks the status code for a failed run.
func mapError(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: err.Error()}
	var se *workflow.StepError
	if errors.As(err, &se) {
		body.Step = se.Step.String()
	}

	var (
		routeErr *workflow.RoutingError
		genErr   *ai.GenerationError
	)
	switch {
	case errors.Is(err, workflow.ErrEmptyInput):
		return http.StatusBadRequest, body
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, body
	case errors.As(err, &routeErr), errors.As(err, &genErr):
		return http.StatusBadGateway, body
	default:
		return http.StatusInternalServerError, body
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
