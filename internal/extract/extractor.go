package extract

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/factorvec/internal/domain"
)

var (
	// ErrEmptyReport marks a fallback caused by a missing report text.
	ErrEmptyReport = errors.New("empty report text")
	// ErrNoSignals marks a fallback caused by a report matching nothing.
	ErrNoSignals = errors.New("no signals detected")
)

// categoryScanners run in this order; factor list order depends on it.
var categoryScanners = []scanner{
	financialScanner,
	marketScanner,
	competitiveScanner,
	growthScanner,
	technologyScanner,
}

// Result is one extraction pass. Extract never fails; Fallback marks passes
// that returned the default set instead of scanner output, with Cause
// carrying the reason for logs and metrics.
type Result struct {
	Factors  []domain.Factor
	Fallback bool
	Cause    error
}

// Extractor aggregates the five category scanners. Stateless apart from the
// package-level pattern tables; safe for concurrent use.
type Extractor struct {
	logger *zap.Logger
}

// New creates an Extractor. logger may be nil.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract scans the payload's report text with every category scanner.
// Contract: the result always carries a non-empty factor list — missing
// text, a scanner panic, or a report matching no signal at all each yield
// the default factor set instead of an error.
func (e *Extractor) Extract(payload domain.ReportPayload) (res Result) {
	if payload.Report == "" {
		e.logger.Warn("no report text in payload, using default factors")
		return Result{Factors: domain.DefaultFactors(), Fallback: true, Cause: ErrEmptyReport}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("factor extraction failed", zap.Any("panic", r))
			res = Result{
				Factors:  domain.DefaultFactors(),
				Fallback: true,
				Cause:    fmt.Errorf("extraction panic: %v", r),
			}
		}
	}()

	factors := make([]domain.Factor, 0, 16)
	for _, s := range categoryScanners {
		found := s.scan(payload.Report)
		e.logger.Debug("category scanned",
			zap.String("category", s.category),
			zap.Int("factors", len(found)),
		)
		factors = append(factors, found...)
	}

	if len(factors) == 0 {
		e.logger.Warn("report matched no signals, using default factors")
		return Result{Factors: domain.DefaultFactors(), Fallback: true, Cause: ErrNoSignals}
	}

	e.logger.Debug("extraction complete", zap.Int("factors", len(factors)))
	return Result{Factors: factors}
}
