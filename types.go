package factorvec

import "github.com/kailas-cloud/factorvec/internal/domain"

// Factor is a single named, weighted signal extracted from report text.
// Value is in [0, 10].
type Factor struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// ReportPayload is the input record for extraction. Only Report is scanned;
// Company and Industry are carried into logs.
type ReportPayload struct {
	Report   string `json:"report"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// Result is one extraction pass. The factor list is never empty; Fallback
// marks passes that returned the default set instead of scanner output.
type Result struct {
	Factors  []Factor `json:"factors"`
	Fallback bool     `json:"fallback"`
}

// FeatureVector is a fixed-length angle-encoded vector, each element in
// [0, 2π].
type FeatureVector []float64

// DefaultFeatureQubits is the default feature vector length.
const DefaultFeatureQubits = domain.DefaultFeatureQubits

// DefaultFactors returns the fixed fallback factor set.
func DefaultFactors() []Factor {
	return factorsFromDomain(domain.DefaultFactors())
}

func factorsFromDomain(ff []domain.Factor) []Factor {
	out := make([]Factor, len(ff))
	for i, f := range ff {
		out[i] = Factor{Name: f.Name, Value: f.Value, Weight: f.Weight}
	}
	return out
}

func factorsToDomain(ff []Factor) []domain.Factor {
	out := make([]domain.Factor, len(ff))
	for i, f := range ff {
		out[i] = domain.Factor{Name: f.Name, Value: f.Value, Weight: f.Weight}
	}
	return out
}
