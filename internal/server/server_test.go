package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/consortium-simulator/internal/history"
	"github.com/iwvelando/consortium-simulator/pkg/alternatives"
	"github.com/iwvelando/consortium-simulator/pkg/consortium"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	cfg.RateLimit.RequestsPerSecond = -1
	return cfg
}

func newTestHandler(t *testing.T) (http.Handler, *history.Memory) {
	t.Helper()
	repo := history.NewMemory()
	return NewHandler(zap.NewNop(), testConfig(t), repo, "test"), repo
}

func postJSON(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

type simulationResponse struct {
	ID        uuid.UUID                   `json:"id"`
	Kind      string                      `json:"kind"`
	Storage   string                      `json:"storage"`
	Input     consortium.SimulationInput  `json:"input"`
	Output    consortium.SimulationOutput `json:"output"`
}

func TestHandleCreateSimulation(t *testing.T) {
	handler, repo := newTestHandler(t)

	rec := postJSON(handler, "/api/simulations",
		`{"credit":"100.000,00","termMonths":120,"adminFeeRate":18}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var resp simulationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Kind != "simulation" || resp.Storage != "memory" {
		t.Errorf("unexpected kind/storage %q/%q", resp.Kind, resp.Storage)
	}
	if resp.Input.Credit != 100000 {
		t.Errorf("expected parsed credit 100000, got %v", resp.Input.Credit)
	}
	if math.Abs(resp.Output.InstallmentValue-983.3) > 1e-6 {
		t.Errorf("expected installment 983.3, got %v", resp.Output.InstallmentValue)
	}
	if resp.Output.RemainingInstallmentCount != 119 {
		t.Errorf("expected 119 remaining installments, got %d", resp.Output.RemainingInstallmentCount)
	}

	if _, err := repo.Get(t.Context(), resp.ID); err != nil {
		t.Errorf("expected simulation %s to be stored: %v", resp.ID, err)
	}
}

func TestHandleCreateSimulationEnums(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postJSON(handler, "/api/simulations", `{
		"credit": 100000,
		"termMonths": 120,
		"adminFeeRate": "18%",
		"reductionPlan": "flex50",
		"insuranceKind": "vehicle",
		"offeredBidPercent": 30,
		"embeddedBidPercent": 10,
		"bidDilutionMode": "reduce-installments"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp simulationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Input.ReductionPlan != consortium.PlanFlex50 {
		t.Errorf("expected flex50 plan, got %v", resp.Input.ReductionPlan)
	}
	if resp.Input.InsuranceKind != consortium.InsuranceVehicle {
		t.Errorf("expected vehicle insurance, got %v", resp.Input.InsuranceKind)
	}
	if resp.Output.EmbeddedBidValue <= 0 || resp.Output.AvailableCredit >= 100000 {
		t.Errorf("expected embedded bid to reduce available credit, got %+v", resp.Output)
	}
}

func TestHandleCreateSimulationRejectsInvalidInput(t *testing.T) {
	handler, repo := newTestHandler(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"zero term", `{"credit":100000,"termMonths":0,"adminFeeRate":18}`, http.StatusBadRequest},
		{"embedded above offered", `{"credit":100000,"termMonths":120,"offeredBidPercent":10,"embeddedBidPercent":20}`, http.StatusBadRequest},
		{"unknown plan", `{"credit":100000,"termMonths":120,"reductionPlan":"flex90"}`, http.StatusBadRequest},
		{"malformed json", `{"credit":`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(handler, "/api/simulations", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("expected error message in response")
			}
		})
	}

	records, err := repo.List(t.Context(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected nothing stored for rejected input, got %d records", len(records))
	}
}

func TestHandleCreateSimulationReportsProblems(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postJSON(handler, "/api/simulations", `{"credit":-1,"termMonths":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if len(resp.Problems) < 2 {
		t.Errorf("expected a problem for each invalid field, got %v", resp.Problems)
	}
}

func TestHandleListAndGetSimulations(t *testing.T) {
	handler, _ := newTestHandler(t)

	var ids []uuid.UUID
	for _, credit := range []string{"50000", "60000", "70000"} {
		rec := postJSON(handler, "/api/simulations",
			`{"credit":`+credit+`,"termMonths":60,"adminFeeRate":15}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp simulationResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		ids = append(ids, resp.ID)
	}

	rec := get(handler, "/api/simulations?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var list listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list.Simulations) != 2 {
		t.Fatalf("expected 2 simulations, got %d", len(list.Simulations))
	}
	if list.Simulations[0].ID != ids[2] {
		t.Errorf("expected newest simulation first, got %s", list.Simulations[0].ID)
	}

	rec = get(handler, "/api/simulations/"+ids[0].String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var record history.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record.ID != ids[0] || record.Kind != "simulation" {
		t.Errorf("unexpected record %s/%s", record.ID, record.Kind)
	}
	var output consortium.SimulationOutput
	if err := json.Unmarshal(record.Output, &output); err != nil {
		t.Fatalf("failed to decode stored output: %v", err)
	}
	if output.AvailableCredit != 50000 {
		t.Errorf("expected stored available credit 50000, got %v", output.AvailableCredit)
	}
}

func TestHandleListSimulationsLimit(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"default", "", http.StatusOK},
		{"capped", "?limit=100000", http.StatusOK},
		{"zero", "?limit=0", http.StatusBadRequest},
		{"negative", "?limit=-3", http.StatusBadRequest},
		{"not a number", "?limit=abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(handler, "/api/simulations"+tt.query)
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleGetSimulationErrors(t *testing.T) {
	handler, _ := newTestHandler(t)

	if rec := get(handler, "/api/simulations/not-a-uuid"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for malformed id, got %d", rec.Code)
	}
	if rec := get(handler, "/api/simulations/"+uuid.NewString()); rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown id, got %d", rec.Code)
	}
}

func TestHandleConstruction(t *testing.T) {
	handler, repo := newTestHandler(t)

	rec := postJSON(handler, "/api/construction", `{
		"credit": 100000,
		"termMonths": 120,
		"adminFeeRate": 18,
		"inccRate": "5%",
		"adjustmentCycle": "semiannual",
		"contemplationMonth": 24,
		"appreciationPercent": 10,
		"startDate": "2025-03"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID     uuid.UUID                     `json:"id"`
		Kind   string                        `json:"kind"`
		Output consortium.ConstructionOutput `json:"output"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Kind != "construction" {
		t.Errorf("expected construction kind, got %q", resp.Kind)
	}
	if len(resp.Output.AdjustmentHistory) != 4 {
		t.Fatalf("expected 4 adjustments, got %d", len(resp.Output.AdjustmentHistory))
	}
	if resp.Output.AdjustmentHistory[0].Date != "2025-09" {
		t.Errorf("expected first adjustment dated 2025-09, got %q", resp.Output.AdjustmentHistory[0].Date)
	}
	expectedCredit := 100000 * math.Pow(1.05, 4)
	if math.Abs(resp.Output.AdjustedCredit-expectedCredit) > 1e-6 {
		t.Errorf("expected adjusted credit %.6f, got %.6f", expectedCredit, resp.Output.AdjustedCredit)
	}
	if resp.Output.ValuationGain == nil {
		t.Error("expected valuation gain when appreciation is supplied")
	}

	if _, err := repo.Get(t.Context(), resp.ID); err != nil {
		t.Errorf("expected construction %s to be stored: %v", resp.ID, err)
	}
}

func TestHandleConstructionRejectsInvalidInput(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postJSON(handler, "/api/construction",
		`{"credit":100000,"termMonths":120,"contemplationMonth":12,"startDate":"March"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleComparison(t *testing.T) {
	handler, repo := newTestHandler(t)

	rec := postJSON(handler, "/api/comparisons", `{
		"value": "100.000",
		"termMonths": 120,
		"adminFeePercent": 15,
		"financingRatePercent": 1,
		"downPaymentPercent": 20
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Financing struct {
			MonthlyPayment float64 `json:"monthlyPayment"`
			TotalPaid      float64 `json:"totalPaid"`
		} `json:"financing"`
		AccumulationMonths int `json:"accumulationMonths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if math.Abs(resp.Financing.MonthlyPayment-1147.77) > 0.01 {
		t.Errorf("expected monthly payment 1147.77, got %.2f", resp.Financing.MonthlyPayment)
	}
	if math.Abs(resp.Financing.TotalPaid-157732.11) > 0.01 {
		t.Errorf("expected total paid 157732.11, got %.2f", resp.Financing.TotalPaid)
	}

	records, err := repo.List(t.Context(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected comparisons not to be stored, got %d records", len(records))
	}

	rec = postJSON(handler, "/api/comparisons", `{"value":100000,"termMonths":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for zero term, got %d", rec.Code)
	}
}

func TestHandleComparisonSchedule(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postJSON(handler, "/api/comparisons", `{
		"value": 100000,
		"termMonths": 120,
		"financingRatePercent": 1,
		"downPaymentPercent": 20,
		"schedule": true,
		"startDate": "2025-03"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		FinancingSchedule []alternatives.Payment `json:"financingSchedule"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	schedule := resp.FinancingSchedule
	if len(schedule) != 120 {
		t.Fatalf("expected 120 payments, got %d", len(schedule))
	}
	if schedule[0].Date != "2025-03" || schedule[119].Date != "2035-02" {
		t.Errorf("unexpected schedule dates %s..%s", schedule[0].Date, schedule[119].Date)
	}
	if math.Abs(schedule[0].Payment-1147.77) > 0.01 || math.Abs(schedule[0].Interest-800) > 1e-9 {
		t.Errorf("unexpected first payment %+v", schedule[0])
	}
	if schedule[119].RemainingPrincipal != 0 {
		t.Errorf("expected schedule to end at zero, got %v", schedule[119].RemainingPrincipal)
	}

	rec = postJSON(handler, "/api/comparisons", `{"value":100000,"termMonths":120}`)
	if strings.Contains(rec.Body.String(), "financingSchedule") {
		t.Error("expected no schedule unless requested")
	}

	rec = postJSON(handler, "/api/comparisons", `{"value":100000,"termMonths":120,"schedule":true,"startDate":"March"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for malformed start date, got %d", rec.Code)
	}
}

func uploadScenarios(t *testing.T, handler http.Handler, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "scenarios.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleScenariosSuccess(t *testing.T) {
	handler, _ := newTestHandler(t)

	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	rec := uploadScenarios(t, handler, data)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp scenariosResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Scenarios) != 4 {
		t.Fatalf("expected 4 active scenarios, got %v", resp.Scenarios)
	}
	for _, name := range resp.Scenarios {
		if name == "inactive draft" {
			t.Error("inactive scenario should not be run")
		}
	}
	if !strings.HasPrefix(resp.CSV, `"scenario","kind","metric","value"`) {
		t.Errorf("expected CSV header, got %q", firstLine(resp.CSV))
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
}

func TestHandleScenariosErrors(t *testing.T) {
	handler, _ := newTestHandler(t)

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/scenarios", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("invalid scenario", func(t *testing.T) {
		data := []byte("scenarios:\n  - name: broken\n    active: true\n    kind: simulation\n    credit: 1000\n    termMonths: 0\n")
		rec := uploadScenarios(t, handler, data)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestHandleScenariosRejectsLargeUpload(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetUploadSizeBytes(64)
	handler := NewHandler(zap.NewNop(), cfg, nil, "test")

	rec := uploadScenarios(t, handler, bytes.Repeat([]byte("#"), 1024))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", rec.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), testConfig(t), nil, " 1.2.3 ")

	rec := get(handler, "/api/version")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode version payload: %v", err)
	}
	if payload["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", payload["version"])
	}

	handler = NewHandler(zap.NewNop(), testConfig(t), nil, "")
	rec = get(handler, "/api/version")
	if !strings.Contains(rec.Body.String(), `"dev"`) {
		t.Errorf("expected dev version fallback, got %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	postJSON(handler, "/api/simulations", `{"credit":100000,"termMonths":120,"adminFeeRate":18}`)
	postJSON(handler, "/api/simulations", `{"credit":100000,"termMonths":0}`)

	rec := get(handler, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`consortium_simulations_total{kind="simulation"} 1`,
		`consortium_simulation_failures_total{kind="simulation",reason="validation"} 1`,
		`consortium_http_requests_total{method="POST",route="POST /api/simulations",status="201"} 1`,
		`consortium_http_requests_total{method="POST",route="POST /api/simulations",status="400"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestRateLimitRejectsBurst(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}
	handler := NewHandler(zap.NewNop(), cfg, nil, "test")

	for i := 0; i < 2; i++ {
		if rec := get(handler, "/api/version"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rec.Code)
		}
	}

	rec := get(handler, "/api/version")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	other := httptest.NewRecorder()
	handler.ServeHTTP(other, req)
	if other.Code != http.StatusOK {
		t.Errorf("expected other client to be served, got %d", other.Code)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := Chain(panicky, Recover(zap.NewNop()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

type headerCountingWriter struct {
	*httptest.ResponseRecorder
	headerWrites int
}

func (w *headerCountingWriter) WriteHeader(code int) {
	w.headerWrites++
	w.ResponseRecorder.WriteHeader(code)
}

func TestRecoverAfterResponseStarted(t *testing.T) {
	started := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("partial"))
		panic("boom")
	})
	handler := Chain(started, Recover(zap.NewNop()))

	rec := &headerCountingWriter{ResponseRecorder: httptest.NewRecorder()}
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.headerWrites != 1 {
		t.Errorf("expected a single WriteHeader call, got %d", rec.headerWrites)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201 to stand, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "partial" {
		t.Errorf("expected body to be left as written, got %q", body)
	}
}

func TestRequestsAreTraced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	handler, _ := newTestHandler(t)
	if rec := get(handler, "/api/version"); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if spans := exporter.GetSpans(); len(spans) == 0 {
		t.Error("expected the request to be recorded as a span")
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
