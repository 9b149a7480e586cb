// Package chi exposes the analysis pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"net/http"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/extract"
	healthuc "github.com/kailas-cloud/factorvec/internal/usecase/health"
)

const maxFactorsPerRequest = 100

// ErrorResponseCode is a machine-readable error class for clients.
type ErrorResponseCode string

const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// AnalyzeRequest carries a report to scan. Company and industry are echoed
// into logs only; extraction reads the report text alone.
type AnalyzeRequest struct {
	Report   string `json:"report"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// FactorsResponse is the output of POST /v1/factors.
type FactorsResponse struct {
	Factors  []domain.Factor `json:"factors"`
	Fallback bool            `json:"fallback"`
}

// VectorResponse is the output of POST /v1/vector.
type VectorResponse struct {
	Vector   domain.FeatureVector `json:"vector"`
	Factors  []domain.Factor      `json:"factors"`
	Fallback bool                 `json:"fallback"`
}

// VectorFromFactorsRequest carries a caller-supplied factor list to encode.
type VectorFromFactorsRequest struct {
	Factors []domain.Factor `json:"factors"`
}

// VectorFromFactorsResponse is the output of POST /v1/vector/from-factors.
type VectorFromFactorsResponse struct {
	Vector domain.FeatureVector `json:"vector"`
}

// HealthResponse is the output of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Analyzer is the consumer interface for the analysis pipeline. Satisfied
// by both the plain service and its caching decorator.
type Analyzer interface {
	Factors(ctx context.Context, payload domain.ReportPayload) extract.Result
	Vector(ctx context.Context, payload domain.ReportPayload) (domain.FeatureVector, extract.Result)
	VectorizeFactors(factors []domain.Factor) domain.FeatureVector
}

// Server is the HTTP API server.
type Server struct {
	analyzer Analyzer
	health   *healthuc.Service
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(analyzer Analyzer, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{analyzer: analyzer, health: health, logger: logger}
}

// Routes mounts all API endpoints on the given router.
func (s *Server) Routes(r chiv5.Router) {
	r.Post("/v1/factors", s.ExtractFactors)
	r.Post("/v1/vector", s.ExtractVector)
	r.Post("/v1/vector/from-factors", s.VectorFromFactors)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ExtractFactors handles POST /v1/factors.
func (s *Server) ExtractFactors(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	res := s.analyzer.Factors(r.Context(), payloadFromRequest(req))

	writeJSON(w, http.StatusOK, FactorsResponse{
		Factors:  res.Factors,
		Fallback: res.Fallback,
	})
}

// ExtractVector handles POST /v1/vector.
func (s *Server) ExtractVector(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	vec, res := s.analyzer.Vector(r.Context(), payloadFromRequest(req))

	writeJSON(w, http.StatusOK, VectorResponse{
		Vector:   vec,
		Factors:  res.Factors,
		Fallback: res.Fallback,
	})
}

// VectorFromFactors handles POST /v1/vector/from-factors. It encodes a
// caller-supplied factor list without scanning any report text.
func (s *Server) VectorFromFactors(w http.ResponseWriter, r *http.Request) {
	var req VectorFromFactorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := validateFactors(req.Factors); err != "" {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err)
		return
	}

	vec := s.analyzer.VectorizeFactors(req.Factors)

	writeJSON(w, http.StatusOK, VectorFromFactorsResponse{Vector: vec})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	var checks map[string]string
	if len(report.Checks) > 0 {
		checks = make(map[string]string, len(report.Checks))
		for k, v := range report.Checks {
			checks[k] = string(v)
		}
	}

	// Degraded still serves extraction; never flip to 503 over a cold cache.
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return AnalyzeRequest{}, false
	}
	return req, true
}

func payloadFromRequest(req AnalyzeRequest) domain.ReportPayload {
	return domain.ReportPayload{
		Report:   req.Report,
		Company:  req.Company,
		Industry: req.Industry,
	}
}

// validateFactors rejects lists the encoder has no defined answer for.
// Returns an empty string when valid.
func validateFactors(factors []domain.Factor) string {
	if len(factors) == 0 {
		return "at least one factor is required"
	}
	if len(factors) > maxFactorsPerRequest {
		return "too many factors"
	}
	for _, f := range factors {
		if f.Name == "" {
			return "factor name is required"
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
