package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/consortium-simulator/internal/config"
	"github.com/iwvelando/consortium-simulator/internal/history"
	"github.com/iwvelando/consortium-simulator/internal/scenario"
	"github.com/iwvelando/consortium-simulator/pkg/alternatives"
	"github.com/iwvelando/consortium-simulator/pkg/consortium"
	"github.com/iwvelando/consortium-simulator/pkg/constants"
	"github.com/iwvelando/consortium-simulator/pkg/datetime"
	"github.com/iwvelando/consortium-simulator/pkg/output"
	"github.com/iwvelando/consortium-simulator/pkg/validation"
	"go.uber.org/zap"
)

// ServiceName labels the server's spans.
const ServiceName = "consortium-server"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	rates         alternatives.Rates
	repo          history.Repository
	metrics       *metrics
}

// NewHandler constructs the HTTP handler that serves the simulation API.
// A nil repository keeps history in memory.
func NewHandler(logger *zap.Logger, cfg *Config, repo history.Repository, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{}
		_ = cfg.normalize()
	}
	if repo == nil {
		repo = history.NewMemory()
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		rates:         cfg.Alternatives.WithDefaults(),
		repo:          repo,
		metrics:       newMetrics(),
	}

	mux := http.NewServeMux()
	h.route(mux, "POST /api/simulations", h.handleCreateSimulation)
	h.route(mux, "GET /api/simulations", h.handleListSimulations)
	h.route(mux, "GET /api/simulations/{id}", h.handleGetSimulation)
	h.route(mux, "POST /api/construction", h.handleConstruction)
	h.route(mux, "POST /api/comparisons", h.handleComparison)
	// Runs an uploaded scenarios file, as the CLI does.
	h.route(mux, "POST /api/scenarios", h.handleScenarios)
	h.route(mux, "GET /api/version", h.handleVersion)
	mux.Handle("GET /metrics", h.metrics.handler())

	return Chain(mux,
		Recover(logger),
		Logger(logger),
		RateLimit(cfg.RateLimit, func(*http.Request) { h.metrics.rateLimited.Inc() }),
		OTel(serviceName(cfg)),
	)
}

func serviceName(cfg *Config) string {
	if cfg.Tracing.ServiceName != "" {
		return cfg.Tracing.ServiceName
	}
	return ServiceName
}

func (h *handler) route(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, h.metrics.instrument(pattern, fn))
}

type recordResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	Storage   string    `json:"storage"`
	Input     any       `json:"input"`
	Output    any       `json:"output"`
}

type listResponse struct {
	Storage     string           `json:"storage"`
	Simulations []history.Record `json:"simulations"`
}

type scenariosResponse struct {
	Scenarios []string          `json:"scenarios"`
	Results   []scenarioPayload `json:"results"`
	CSV       string            `json:"csv"`
	Warnings  []string          `json:"warnings,omitempty"`
	Duration  string            `json:"duration"`
}

type scenarioPayload struct {
	Name         string                         `json:"name"`
	Kind         config.Kind                    `json:"kind"`
	Simulation   *consortium.SimulationOutput   `json:"simulation,omitempty"`
	Construction *consortium.ConstructionOutput `json:"construction,omitempty"`
	Comparison   *alternatives.Comparison       `json:"comparison,omitempty"`
	Notes        []string                       `json:"notes,omitempty"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

func (h *handler) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateSimulation"

	var req simulationRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.metrics.failures.WithLabelValues("simulation", "decode").Inc()
		h.respondDecodeError(w, err, op)
		return
	}

	in := req.input()
	if err := validation.ValidateSimulationInput(in); err != nil {
		h.metrics.failures.WithLabelValues("simulation", "validation").Inc()
		h.respondValidationError(w, err, op)
		return
	}

	out, err := consortium.Calculate(in)
	if err != nil {
		h.metrics.failures.WithLabelValues("simulation", "engine").Inc()
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	h.metrics.simulations.WithLabelValues("simulation").Inc()

	h.saveAndRespond(r.Context(), w, "simulation", in, out, op)
}

func (h *handler) handleConstruction(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConstruction"

	var req constructionRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.metrics.failures.WithLabelValues("construction", "decode").Inc()
		h.respondDecodeError(w, err, op)
		return
	}

	in := req.input()
	if err := validation.ValidateConstructionInput(in); err != nil {
		h.metrics.failures.WithLabelValues("construction", "validation").Inc()
		h.respondValidationError(w, err, op)
		return
	}

	out, err := consortium.CalculateConstruction(in)
	if err != nil {
		h.metrics.failures.WithLabelValues("construction", "engine").Inc()
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	h.metrics.simulations.WithLabelValues("construction").Inc()

	h.saveAndRespond(r.Context(), w, "construction", in, out, op)
}

func (h *handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleComparison"

	var req comparisonRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.metrics.failures.WithLabelValues("comparison", "decode").Inc()
		h.respondDecodeError(w, err, op)
		return
	}
	if req.TermMonths <= 0 {
		h.metrics.failures.WithLabelValues("comparison", "validation").Inc()
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("termMonths must be greater than 0, got %d", req.TermMonths), op)
		return
	}

	if req.Schedule && req.StartDate != "" {
		if err := datetime.ValidateDate(req.StartDate); err != nil {
			h.metrics.failures.WithLabelValues("comparison", "validation").Inc()
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("startDate: %v", err), op)
			return
		}
	}

	in := req.input(h.rates)
	comparison := alternatives.Compare(in)
	if req.Schedule {
		schedule, err := alternatives.NewScheduleGenerator(h.logger).ForComparison(in, req.StartDate)
		if err != nil {
			h.metrics.failures.WithLabelValues("comparison", "engine").Inc()
			h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
			return
		}
		comparison.FinancingSchedule = schedule
	}
	h.metrics.simulations.WithLabelValues("comparison").Inc()
	h.writeJSON(w, http.StatusOK, comparison)
}

func (h *handler) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListSimulations"

	limit := constants.DefaultHistoryLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), op)
			return
		}
		limit = min(parsed, constants.MaxHistoryLimit)
	}

	records, err := h.repo.List(r.Context(), limit)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list simulations: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, listResponse{Storage: h.repo.Storage(), Simulations: records})
}

func (h *handler) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetSimulation"

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid simulation id %q", r.PathValue("id")), op)
		return
	}

	record, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to load simulation: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	cfg, err := config.LoadConfigurationFromReader(file)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if cfg.Alternatives == alternatives.DefaultRates() {
		cfg.Alternatives = h.rates
	}

	warnings := cfg.ValidateConfiguration()
	results, err := scenario.Run(h.logger, *cfg)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if validation.IsInputError(err) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, fmt.Sprintf("failed to run scenarios: %v", err), op)
		return
	}

	var csv bytes.Buffer
	output.CsvFormat(&csv, results)

	response := scenariosResponse{
		Scenarios: make([]string, 0, len(results)),
		Results:   make([]scenarioPayload, 0, len(results)),
		CSV:       csv.String(),
		Warnings:  warnings,
	}
	for _, result := range results {
		h.metrics.simulations.WithLabelValues(string(result.Kind)).Inc()
		response.Scenarios = append(response.Scenarios, result.Name)
		response.Results = append(response.Results, scenarioPayload(result))
	}
	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("scenarios computed",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) saveAndRespond(ctx context.Context, w http.ResponseWriter, kind string, input, out any, op string) {
	record, err := history.NewRecord(kind, input, out)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	if err := h.repo.Save(ctx, record); err != nil {
		h.metrics.failures.WithLabelValues(kind, "storage").Inc()
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to save simulation: %v", err), op)
		return
	}

	h.logger.Debug(fmt.Sprintf("stored %s %s", kind, record.ID),
		zap.String("op", op),
		zap.String("storage", h.repo.Storage()),
	)

	h.writeJSON(w, http.StatusCreated, recordResponse{
		ID:        record.ID,
		Kind:      kind,
		CreatedAt: record.CreatedAt,
		Storage:   h.repo.Storage(),
		Input:     input,
		Output:    out,
	})
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

func (h *handler) respondValidationError(w http.ResponseWriter, err error, op string) {
	var inputErr *validation.InputError
	if !errors.As(err, &inputErr) {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.logger.Info("rejected invalid input",
		zap.String("op", op),
		zap.Strings("problems", inputErr.Problems),
	)
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Problems: inputErr.Problems})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
