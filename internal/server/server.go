// Package server implements the HTTP and JSON-RPC surface of the docket
// selection service. Solve jobs run asynchronously: a request registers
// a job, a goroutine runs the chosen solver under a cancellable context,
// and callers poll or cancel the job by ID.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiscalworks/DOCKET/internal/config"
	"github.com/fiscalworks/DOCKET/internal/knapsack"
	"github.com/fiscalworks/DOCKET/internal/knapsack/dp"
	"github.com/fiscalworks/DOCKET/internal/knapsack/ga"
	"github.com/fiscalworks/DOCKET/internal/knapsack/greedy"
	"github.com/fiscalworks/DOCKET/internal/metrics"
)

// Job statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// SolveRequest is the payload starting a solve job. The value and cost
// vectors are supplied inline; omitted parameters fall back to the
// configured defaults.
type SolveRequest struct {
	Algorithm string    `json:"algorithm"`
	Values    []float64 `json:"values"`
	Costs     []float64 `json:"costs"`

	Capacity *float64 `json:"capacity,omitempty"`

	// DP only.
	Resolution *float64 `json:"resolution,omitempty"`

	// GA only.
	Population    *int     `json:"population,omitempty"`
	Generations   *int     `json:"generations,omitempty"`
	CrossoverRate *float64 `json:"crossover_rate,omitempty"`
	MutationRate  *float64 `json:"mutation_rate,omitempty"`
	Seed          *int64   `json:"seed,omitempty"`
}

// SolveJob tracks one asynchronous solve. Access is guarded by the
// server's job mutex.
type SolveJob struct {
	ID          string
	Algorithm   string
	Status      string
	StartTime   time.Time
	EndTime     *time.Time
	LastUpdated time.Time
	Selection   knapsack.Selection
	Summary     *knapsack.Summary
	Error       string

	cancel context.CancelFunc
}

// Server manages solve jobs and serves their lifecycle endpoints.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	jobsMu sync.RWMutex
	jobs   map[string]*SolveJob
}

// NewServer creates a server with the given configuration and logger.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		jobs:   make(map[string]*SolveJob),
	}
}

// RegisterRoutes mounts the REST and JSON-RPC endpoints.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/jobs/{id}", s.handleJobStatus)
		r.Delete("/jobs/{id}", s.handleJobCancel)
	})
	r.Post("/rpc", s.handleJSONRPC)
}

// Close cancels every running job.
func (s *Server) Close() error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	for _, job := range s.jobs {
		if job.cancel != nil {
			job.cancel()
		}
	}
	return nil
}

// buildSolver constructs the requested solver, applying configured
// defaults for omitted parameters, and returns it with the parameter
// map recorded in the run summary.
func (s *Server) buildSolver(req *SolveRequest) (knapsack.Solver, map[string]interface{}, error) {
	capacity := s.cfg.Capacity()
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	switch req.Algorithm {
	case "greedy":
		return greedy.New(capacity), map[string]interface{}{
			"capacity": capacity,
		}, nil

	case "dp":
		resolution := s.cfg.DP.Resolution
		if req.Resolution != nil {
			resolution = *req.Resolution
		}
		return dp.New(capacity, resolution), map[string]interface{}{
			"capacity":   capacity,
			"resolution": resolution,
		}, nil

	case "ga":
		gaCfg := ga.Config{
			Capacity:       capacity,
			PopulationSize: s.cfg.GA.Population,
			Generations:    s.cfg.GA.Generations,
			CrossoverRate:  s.cfg.GA.CrossoverRate,
			MutationRate:   s.cfg.GA.MutationRate,
			Seed:           s.cfg.GA.Seed,
		}
		if req.Population != nil {
			gaCfg.PopulationSize = *req.Population
		}
		if req.Generations != nil {
			gaCfg.Generations = *req.Generations
		}
		if req.CrossoverRate != nil {
			gaCfg.CrossoverRate = *req.CrossoverRate
		}
		if req.MutationRate != nil {
			gaCfg.MutationRate = *req.MutationRate
		}
		if req.Seed != nil {
			gaCfg.Seed = *req.Seed
		}
		return ga.New(gaCfg), map[string]interface{}{
			"capacity":       gaCfg.Capacity,
			"population":     gaCfg.PopulationSize,
			"generations":    gaCfg.Generations,
			"crossover_rate": gaCfg.CrossoverRate,
			"mutation_rate":  gaCfg.MutationRate,
			"seed":           gaCfg.Seed,
		}, nil

	default:
		return nil, nil, knapsack.NewInvalidInputf("unknown algorithm %q, want greedy, dp or ga", req.Algorithm).
			WithComponent("server")
	}
}

// startSolve validates the request, registers a job and launches the
// solver goroutine.
func (s *Server) startSolve(req *SolveRequest) (*SolveJob, error) {
	inst, err := knapsack.NewInstance(req.Values, req.Costs)
	if err != nil {
		return nil, err
	}
	solver, params, err := s.buildSolver(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	job := &SolveJob{
		ID:          uuid.NewString(),
		Algorithm:   solver.Name(),
		Status:      StatusPending,
		StartTime:   now,
		LastUpdated: now,
		cancel:      cancel,
	}

	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()

	go s.runJob(ctx, job, solver, inst, params)
	return job, nil
}

// runJob executes the solver and records the terminal state.
func (s *Server) runJob(ctx context.Context, job *SolveJob, solver knapsack.Solver, inst *knapsack.Instance, params map[string]interface{}) {
	metrics.JobsInflight.Inc()
	defer metrics.JobsInflight.Dec()

	s.jobsMu.Lock()
	job.Status = StatusRunning
	job.LastUpdated = time.Now()
	s.jobsMu.Unlock()

	start := time.Now()
	selection, err := solver.Solve(ctx, inst)
	elapsed := time.Since(start)

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	now := time.Now()
	job.EndTime = &now
	job.LastUpdated = now

	switch {
	case err == nil:
		costs, values := inst.Select(selection)
		summary := knapsack.BuildSummary(solver.Name(), params, inst.Len(), costs, values, elapsed)
		job.Status = StatusCompleted
		job.Selection = selection
		job.Summary = &summary
		metrics.SelectedCases.WithLabelValues(job.Algorithm).Observe(float64(len(selection)))
		s.logger.Info("solve completed",
			zap.String("job_id", job.ID),
			zap.String("algorithm", job.Algorithm),
			zap.Int("selected_cases", len(selection)),
			zap.Duration("elapsed", elapsed),
		)
	case errors.Is(err, context.Canceled):
		job.Status = StatusCancelled
		s.logger.Info("solve cancelled",
			zap.String("job_id", job.ID),
			zap.String("algorithm", job.Algorithm),
		)
	default:
		job.Status = StatusFailed
		job.Error = err.Error()
		s.logger.Error("solve failed",
			zap.String("job_id", job.ID),
			zap.String("algorithm", job.Algorithm),
			zap.Error(err),
		)
	}
	metrics.SolvesTotal.WithLabelValues(job.Algorithm, job.Status).Inc()
	metrics.SolveDuration.WithLabelValues(job.Algorithm).Observe(elapsed.Seconds())
}

// jobView is the wire representation of a job.
func jobView(job *SolveJob) map[string]interface{} {
	view := map[string]interface{}{
		"job_id":      job.ID,
		"algorithm":   job.Algorithm,
		"status":      job.Status,
		"start_time":  job.StartTime.Format(time.RFC3339Nano),
		"last_update": job.LastUpdated.Format(time.RFC3339Nano),
	}
	if job.EndTime != nil {
		view["end_time"] = job.EndTime.Format(time.RFC3339Nano)
	}
	if job.Selection != nil {
		view["selection"] = job.Selection
	}
	if job.Summary != nil {
		view["summary"] = job.Summary
	}
	if job.Error != "" {
		view["error"] = job.Error
	}
	return view
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	job, err := s.startSolve(&req)
	if err != nil {
		status := http.StatusInternalServerError
		if knapsack.IsInvalidInput(err) {
			status = http.StatusBadRequest
		}
		s.respondError(w, status, err.Error())
		return
	}

	s.jobsMu.RLock()
	view := jobView(job)
	s.jobsMu.RUnlock()
	s.respondJSON(w, http.StatusAccepted, view)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.jobsMu.RLock()
	job, ok := s.jobs[id]
	var view map[string]interface{}
	if ok {
		view = jobView(job)
	}
	s.jobsMu.RUnlock()

	if !ok {
		s.respondError(w, http.StatusNotFound, "job not found")
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleJobCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.jobsMu.RLock()
	job, ok := s.jobs[id]
	s.jobsMu.RUnlock()
	if !ok {
		s.respondError(w, http.StatusNotFound, "job not found")
		return
	}

	if err := s.cancelJob(job); err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.jobsMu.RLock()
	view := jobView(job)
	s.jobsMu.RUnlock()
	s.respondJSON(w, http.StatusAccepted, view)
}

// cancelJob requests cancellation of a non-terminal job. The job
// reaches the cancelled status once the solver observes the context.
func (s *Server) cancelJob(job *SolveJob) error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	switch job.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return fmt.Errorf("job %s already %s", job.ID, job.Status)
	}
	if job.cancel != nil {
		job.cancel()
	}
	job.LastUpdated = time.Now()
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("request error",
		zap.Int("status", status),
		zap.String("message", message),
	)
	s.respondJSON(w, status, map[string]interface{}{"error": message})
}
