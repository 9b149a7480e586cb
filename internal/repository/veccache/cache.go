// Package veccache memoizes analysis results in a key-value store, keyed by
// a digest of the report text. It is service-side infrastructure: responses
// are identical with the cache disabled, only slower.
package veccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/factorvec/internal/db"
	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/extract"
)

// Analyzer is the consumer interface for the cached analysis path.
type Analyzer interface {
	Factors(ctx context.Context, payload domain.ReportPayload) extract.Result
	Vector(ctx context.Context, payload domain.ReportPayload) (domain.FeatureVector, extract.Result)
	VectorizeFactors(factors []domain.Factor) domain.FeatureVector
}

// store is the consumer interface for the backing KV store (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// entry is the cached artifact: the vector plus the factors it came from.
type entry struct {
	Vector  domain.FeatureVector `json:"vector"`
	Factors []domain.Factor      `json:"factors"`
}

// CachedAnalyzer decorates an Analyzer with report-keyed vector caching.
// Fallback results are never cached — a transient condenser hiccup must not
// pin defaults for the TTL.
type CachedAnalyzer struct {
	inner      Analyzer
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. cacheTotal is a counter vec with label
// "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Analyzer,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Factors delegates to the inner analyzer; only full vector results are
// worth caching.
func (c *CachedAnalyzer) Factors(ctx context.Context, payload domain.ReportPayload) extract.Result {
	return c.inner.Factors(ctx, payload)
}

// VectorizeFactors delegates to the inner analyzer.
func (c *CachedAnalyzer) VectorizeFactors(factors []domain.Factor) domain.FeatureVector {
	return c.inner.VectorizeFactors(factors)
}

// Vector returns a cached result or runs the inner analysis path.
func (c *CachedAnalyzer) Vector(
	ctx context.Context, payload domain.ReportPayload,
) (domain.FeatureVector, extract.Result) {
	if payload.Report == "" {
		// Nothing to key on; the inner path falls back to defaults anyway.
		return c.inner.Vector(ctx, payload)
	}

	key := c.cacheKey(payload.Report)

	if e, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return e.Vector, extract.Result{Factors: e.Factors}
	}

	c.incCache("miss")

	vec, res := c.inner.Vector(ctx, payload)
	if !res.Fallback {
		c.putToCache(ctx, key, entry{Vector: vec, Factors: res.Factors})
	}
	return vec, res
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAnalyzer) cacheKey(report string) string {
	h := sha256.Sum256([]byte(report))
	return c.keyPrefix + "vec_cache:" + hex.EncodeToString(h[:])
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (entry, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached vector", zap.String("key", key), zap.Error(err))
		}
		return entry{}, false
	}
	if len(data) == 0 {
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Failed to parse cached vector", zap.String("key", key), zap.Error(err))
		return entry{}, false
	}
	if len(e.Vector) == 0 || len(e.Factors) == 0 {
		return entry{}, false
	}

	return e, true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, e entry) {
	data, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("Failed to encode vector for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache vector", zap.String("key", key), zap.Error(err))
	}
}
