package analysis

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/extract"
	"github.com/kailas-cloud/factorvec/internal/metrics"
	"github.com/kailas-cloud/factorvec/internal/vectorize"
)

// Service runs the full analysis path: condense, extract, vectorize. Like
// the extractor underneath, it never returns an error to callers — a bad
// report yields the default factor set and its vector.
type Service struct {
	extractor      FactorExtractor
	condenser      Condenser
	maxReportChars int
	qubits         int
	logger         *zap.Logger
}

// New creates an analysis service. qubits is the feature vector length.
func New(extractor FactorExtractor, qubits int, logger *zap.Logger) *Service {
	if qubits <= 0 {
		qubits = domain.DefaultFeatureQubits
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{extractor: extractor, qubits: qubits, logger: logger}
}

// WithCondenser attaches an optional report condenser. Reports longer than
// maxReportChars are condensed before scanning; condenser failures fall
// back to the raw text.
func (s *Service) WithCondenser(c Condenser, maxReportChars int) *Service {
	s.condenser = c
	s.maxReportChars = maxReportChars
	return s
}

// Factors extracts the factor list, recording pipeline metrics.
func (s *Service) Factors(ctx context.Context, payload domain.ReportPayload) extract.Result {
	payload.Report = s.condensed(ctx, payload.Report)

	start := time.Now()
	res := s.extractor.Extract(payload)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	metrics.ExtractionsTotal.WithLabelValues(outcome(res)).Inc()

	if res.Fallback {
		s.logger.Warn("extraction fell back to default factors",
			zap.NamedError("cause", res.Cause),
			zap.String("company", payload.Company),
		)
		return res
	}

	metrics.FactorsExtracted.Observe(float64(len(res.Factors)))
	return res
}

// Vector extracts factors and angle-encodes them into the configured
// dimension.
func (s *Service) Vector(ctx context.Context, payload domain.ReportPayload) (domain.FeatureVector, extract.Result) {
	res := s.Factors(ctx, payload)
	return vectorize.AngleEncode(res.Factors, s.qubits), res
}

// VectorizeFactors encodes a caller-supplied factor list without running
// any scanner.
func (s *Service) VectorizeFactors(factors []domain.Factor) domain.FeatureVector {
	return vectorize.AngleEncode(factors, s.qubits)
}

// condensed shortens the report when a condenser is attached and the text
// exceeds the limit. Failures are absorbed: scanning the raw text is always
// preferable to failing the pass.
func (s *Service) condensed(ctx context.Context, report string) string {
	if s.condenser == nil || s.maxReportChars <= 0 || len(report) <= s.maxReportChars {
		return report
	}

	short, err := s.condenser.Condense(ctx, report)
	if err != nil {
		s.logger.Warn("report condenser failed, scanning raw text",
			zap.Int("report_chars", len(report)),
			zap.Error(err),
		)
		return report
	}
	if short == "" {
		return report
	}

	s.logger.Debug("report condensed",
		zap.Int("from_chars", len(report)),
		zap.Int("to_chars", len(short)),
	)
	return short
}

func outcome(res extract.Result) string {
	switch {
	case !res.Fallback:
		return "ok"
	case errors.Is(res.Cause, extract.ErrEmptyReport):
		return "fallback_empty"
	case errors.Is(res.Cause, extract.ErrNoSignals):
		return "fallback_no_signals"
	default:
		return "fallback_panic"
	}
}
