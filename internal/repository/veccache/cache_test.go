package veccache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/factorvec/internal/db"
	"github.com/kailas-cloud/factorvec/internal/domain"
	"github.com/kailas-cloud/factorvec/internal/extract"
)

// mockStore implements the consumer store interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

// mockAnalyzer counts Vector invocations.
type mockAnalyzer struct {
	vec   domain.FeatureVector
	res   extract.Result
	calls int
}

func (m *mockAnalyzer) Factors(_ context.Context, _ domain.ReportPayload) extract.Result {
	return m.res
}

func (m *mockAnalyzer) Vector(_ context.Context, _ domain.ReportPayload) (domain.FeatureVector, extract.Result) {
	m.calls++
	return m.vec, m.res
}

func (m *mockAnalyzer) VectorizeFactors(_ []domain.Factor) domain.FeatureVector {
	return m.vec
}

func okResult() extract.Result {
	return extract.Result{Factors: []domain.Factor{{Name: "revenue_scale", Value: 2, Weight: 0.25}}}
}

func TestVector_CacheMissStoresResult(t *testing.T) {
	var storedKey string
	var storedTTL time.Duration
	var stored []byte
	ms := &mockStore{
		setWithTTLFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
			storedKey, stored, storedTTL = key, value, ttl
			return nil
		},
	}
	inner := &mockAnalyzer{vec: domain.FeatureVector{1, 2, 3, 4}, res: okResult()}
	c := New(inner, ms, "factorvec:", time.Hour, nil, nil)

	vec, res := c.Vector(context.Background(), domain.ReportPayload{Report: "营收 200亿"})
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
	if len(vec) != 4 || res.Fallback {
		t.Fatalf("unexpected result: %v %v", vec, res)
	}
	if storedKey == "" || stored == nil {
		t.Fatal("expected result to be cached")
	}
	if storedTTL != time.Hour {
		t.Fatalf("expected TTL 1h, got %v", storedTTL)
	}

	var e entry
	if err := json.Unmarshal(stored, &e); err != nil {
		t.Fatalf("cached payload not JSON: %v", err)
	}
	if len(e.Vector) != 4 || len(e.Factors) != 1 {
		t.Fatalf("unexpected cached entry: %+v", e)
	}
}

func TestVector_CacheHitSkipsInner(t *testing.T) {
	data, _ := json.Marshal(entry{
		Vector:  domain.FeatureVector{0, 1, 2, 3},
		Factors: []domain.Factor{{Name: "revenue_scale", Value: 2, Weight: 0.25}},
	})
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) { return data, nil },
	}
	inner := &mockAnalyzer{vec: domain.FeatureVector{9, 9, 9, 9}, res: okResult()}
	c := New(inner, ms, "factorvec:", time.Hour, nil, nil)

	vec, res := c.Vector(context.Background(), domain.ReportPayload{Report: "营收 200亿"})
	if inner.calls != 0 {
		t.Fatalf("expected inner to be skipped, called %d times", inner.calls)
	}
	if vec[3] != 3 {
		t.Fatalf("expected cached vector, got %v", vec)
	}
	if res.Fallback || len(res.Factors) != 1 {
		t.Fatalf("unexpected result from hit: %+v", res)
	}
}

func TestVector_FallbackNotCached(t *testing.T) {
	var setCalls int
	ms := &mockStore{
		setWithTTLFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
			setCalls++
			return nil
		},
	}
	inner := &mockAnalyzer{
		vec: domain.FeatureVector{0, 0, 0, 0},
		res: extract.Result{Factors: domain.DefaultFactors(), Fallback: true, Cause: extract.ErrNoSignals},
	}
	c := New(inner, ms, "factorvec:", time.Hour, nil, nil)

	c.Vector(context.Background(), domain.ReportPayload{Report: "gibberish"})
	if setCalls != 0 {
		t.Fatalf("fallback result must not be cached, got %d writes", setCalls)
	}
}

func TestVector_StoreErrorsAbsorbed(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
		setWithTTLFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
			return errors.New("connection refused")
		},
	}
	inner := &mockAnalyzer{vec: domain.FeatureVector{1, 2, 3, 4}, res: okResult()}
	c := New(inner, ms, "factorvec:", time.Hour, nil, nil)

	vec, res := c.Vector(context.Background(), domain.ReportPayload{Report: "营收 200亿"})
	if inner.calls != 1 {
		t.Fatalf("expected inner call despite store errors, got %d", inner.calls)
	}
	if len(vec) != 4 || res.Fallback {
		t.Fatalf("unexpected result: %v %v", vec, res)
	}
}

func TestVector_CorruptCacheEntryIgnored(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) { return []byte("{not json"), nil },
	}
	inner := &mockAnalyzer{vec: domain.FeatureVector{1, 2, 3, 4}, res: okResult()}
	c := New(inner, ms, "factorvec:", time.Hour, nil, nil)

	_, res := c.Vector(context.Background(), domain.ReportPayload{Report: "营收 200亿"})
	if inner.calls != 1 {
		t.Fatalf("corrupt entry must fall through to inner, got %d calls", inner.calls)
	}
	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.Cause)
	}
}

func TestVector_EmptyReportBypassesCache(t *testing.T) {
	var getCalls int
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			getCalls++
			return nil, db.ErrKeyNotFound
		},
	}
	inner := &mockAnalyzer{
		vec: domain.FeatureVector{0, 0, 0, 0},
		res: extract.Result{Factors: domain.DefaultFactors(), Fallback: true, Cause: extract.ErrEmptyReport},
	}
	c := New(inner, ms, "factorvec:", time.Hour, nil, nil)

	c.Vector(context.Background(), domain.ReportPayload{})
	if getCalls != 0 {
		t.Fatalf("empty report must bypass cache, got %d reads", getCalls)
	}
	if inner.calls != 1 {
		t.Fatalf("expected inner call, got %d", inner.calls)
	}
}

func TestCacheKey_PrefixAndDigest(t *testing.T) {
	c := New(&mockAnalyzer{}, &mockStore{}, "factorvec:", time.Hour, nil, nil)

	k1 := c.cacheKey("report a")
	k2 := c.cacheKey("report b")
	if k1 == k2 {
		t.Fatal("different reports must produce different keys")
	}
	const wantPrefix = "factorvec:vec_cache:"
	if len(k1) != len(wantPrefix)+64 {
		t.Fatalf("unexpected key shape: %q", k1)
	}
	if k1[:len(wantPrefix)] != wantPrefix {
		t.Fatalf("expected prefix %q, got %q", wantPrefix, k1)
	}
}
