package health

import "context"

// CachePinger checks cache backend availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// CondenserChecker checks condenser provider availability.
type CondenserChecker interface {
	HealthCheck(ctx context.Context) error
}
