// Package vectorize compresses a factor list into a fixed-length vector
// suitable for angle-style encoding in a downstream numeric model.
package vectorize

import (
	"math"

	"github.com/kailas-cloud/factorvec/internal/domain"
)

// AngleEncode maps factors to a vector of exactly dim elements. Each factor
// contributes value*weight in list order; short lists are zero-padded and
// long lists truncated to dim before normalization. When the window has any
// non-zero magnitude it is min-max normalized to [0, 2π]; an all-zero window
// is returned unchanged to avoid dividing by zero. A non-zero window with no
// spread (all elements equal) also comes back as zeros, since no angle
// information survives normalization.
func AngleEncode(factors []domain.Factor, dim int) domain.FeatureVector {
	if dim <= 0 {
		dim = domain.DefaultFeatureQubits
	}

	weighted := make(domain.FeatureVector, dim)
	for i, f := range factors {
		if i >= dim {
			break
		}
		weighted[i] = f.Value * f.Weight
	}

	lo, hi, maxAbs := bounds(weighted)
	if maxAbs == 0 {
		return weighted
	}
	if hi == lo {
		return make(domain.FeatureVector, dim)
	}

	for i, v := range weighted {
		weighted[i] = (v - lo) / (hi - lo) * 2 * math.Pi
	}
	return weighted
}

func bounds(v domain.FeatureVector) (lo, hi, maxAbs float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
		if a := math.Abs(x); a > maxAbs {
			maxAbs = a
		}
	}
	return lo, hi, maxAbs
}
