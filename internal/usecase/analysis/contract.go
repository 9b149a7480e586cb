package analysis

import (
	"context"

	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/extract"
)

// FactorExtractor produces the factor list for a report payload. The
// contract never fails; fallback is reported inside the result.
type FactorExtractor interface {
	Extract(payload domain.ReportPayload) extract.Result
}

// Condenser shortens oversized reports before pattern scanning.
type Condenser interface {
	Condense(ctx context.Context, report string) (string, error)
}
