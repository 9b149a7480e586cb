// Package factorvec turns free-text company research reports into weighted
// factors and fixed-length angle-encoded feature vectors.
package factorvec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/factorvec/internal/db"
	dbRedis "github.com/kailas-cloud/factorvec/internal/db/redis"
	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/extract"
	"github.com/kailas-cloud/factorvec/internal/metrics"
	"github.com/kailas-cloud/factorvec/internal/repository/veccache"
	openaiCond "github.com/kailas-cloud/factorvec/internal/transport/openai"
	analysisuc "github.com/kailas-cloud/factorvec/internal/usecase/analysis"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = 24 * time.Hour
	defaultCacheKeyPrefix   = "factorvec:"
	defaultCondenserModel   = "gpt-4o-mini"
	defaultMaxReportChars   = 20000
)

// analyzer is the internal pipeline surface the Client delegates to.
type analyzer interface {
	Factors(ctx context.Context, payload domain.ReportPayload) extract.Result
	Vector(ctx context.Context, payload domain.ReportPayload) (domain.FeatureVector, extract.Result)
	VectorizeFactors(factors []domain.Factor) domain.FeatureVector
}

// Client is the factorvec SDK entry point. Without options it runs fully
// in-process with no external dependencies.
type Client struct {
	analyzer analyzer
	store    db.Store
}

// New creates a factorvec Client. The provided context is used for the
// cache readiness check when a cache is configured.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		featureQubits:  domain.DefaultFeatureQubits,
		cacheTTL:       defaultCacheTTL,
		cacheKeyPrefix: defaultCacheKeyPrefix,
		maxReportChars: defaultMaxReportChars,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := analysisuc.New(extract.New(logger), cfg.featureQubits, logger)

	if cfg.condenserAPIKey != "" {
		if cfg.condenserBaseURL == "" {
			return nil, errors.New("factorvec: condenser base URL required (use WithCondenser)")
		}
		model := cfg.condenserModel
		if model == "" {
			model = defaultCondenserModel
		}
		svc.WithCondenser(openaiCond.NewCondenser(&openaiCond.Config{
			APIKey:  cfg.condenserAPIKey,
			BaseURL: cfg.condenserBaseURL,
			Model:   model,
			Logger:  logger,
		}), cfg.maxReportChars)
	}

	var a analyzer = svc
	var store db.Store

	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("factorvec: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("factorvec: cache not ready: %w", err)
		}
		store = s
		a = veccache.New(svc, s, cfg.cacheKeyPrefix, cfg.cacheTTL, metrics.VectorCacheTotal, logger)
	}

	return &Client{analyzer: a, store: store}, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache connectivity. Returns nil when no cache is configured.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Factors extracts the weighted factor list from the payload's report text.
// Never fails: a missing or unmatchable report yields the default set with
// Fallback true.
func (c *Client) Factors(ctx context.Context, payload ReportPayload) Result {
	res := c.analyzer.Factors(ctx, payloadToDomain(payload))
	return resultFromDomain(res)
}

// Vector extracts factors and angle-encodes them into the configured
// feature vector length.
func (c *Client) Vector(ctx context.Context, payload ReportPayload) (FeatureVector, Result) {
	vec, res := c.analyzer.Vector(ctx, payloadToDomain(payload))
	return FeatureVector(vec), resultFromDomain(res)
}

// VectorizeFactors encodes a caller-supplied factor list without scanning
// any report text.
func (c *Client) VectorizeFactors(factors []Factor) FeatureVector {
	return FeatureVector(c.analyzer.VectorizeFactors(factorsToDomain(factors)))
}

func payloadToDomain(p ReportPayload) domain.ReportPayload {
	return domain.ReportPayload{
		Report:   p.Report,
		Company:  p.Company,
		Industry: p.Industry,
	}
}

func resultFromDomain(res extract.Result) Result {
	return Result{
		Factors:  factorsFromDomain(res.Factors),
		Fallback: res.Fallback,
	}
}
