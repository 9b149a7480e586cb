package factorvec

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	featureQubits int

	cacheAddrs     []string
	cachePassword  string
	cacheKeyPrefix string
	cacheTTL       time.Duration

	condenserAPIKey  string
	condenserBaseURL string
	condenserModel   string
	maxReportChars   int

	logger *zap.Logger
}

// WithFeatureQubits sets the feature vector length. Default: 4.
func WithFeatureQubits(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.featureQubits = n
	})
}

// WithRedisCache enables vector caching in a Redis instance. Without it the
// client runs fully in-process.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithCacheTTL sets the vector cache entry lifetime. Default: 24h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithCacheKeyPrefix sets the cache key namespace. Default: "factorvec:".
func WithCacheKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheKeyPrefix = prefix
	})
}

// WithCondenser enables LLM condensing of oversized reports via an
// OpenAI-compatible chat-completions API.
func WithCondenser(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.condenserAPIKey = apiKey
		c.condenserBaseURL = baseURL
		c.condenserModel = model
	})
}

// WithMaxReportChars sets the report length above which the condenser runs.
// Default: 20000. Has no effect without WithCondenser.
func WithMaxReportChars(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxReportChars = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
