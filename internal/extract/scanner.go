package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/factorvec/internal/domain"
)

// maxFactorValue is the upper clamp for every factor value.
const maxFactorValue = 10.0

// numericMetric extracts a number for one metric via an ordered pattern
// list. The first pattern with a match wins; the first capture group of its
// first match is parsed. The raw value is divided by divisor and clamped.
type numericMetric struct {
	name     string
	weight   float64
	divisor  float64
	patterns []*regexp.Regexp
}

// keywordConcept scores a qualitative concept by keyword frequency. remap,
// when set, transforms the importance score into the emitted value (the
// concept is still gated on the raw score being positive).
type keywordConcept struct {
	name     string
	weight   float64
	keywords []string
	remap    func(score float64) float64
}

// scanner extracts factors for one thematic category. Numeric metrics run
// before keyword concepts; within each kind, declaration order is emission
// order.
type scanner struct {
	category string
	metrics  []numericMetric
	concepts []keywordConcept
}

func (s scanner) scan(text string) []domain.Factor {
	factors := make([]domain.Factor, 0, len(s.metrics)+len(s.concepts))

	for _, m := range s.metrics {
		raw := scanNumber(text, m.patterns)
		if raw <= 0 {
			continue
		}
		factors = append(factors, domain.Factor{
			Name:   m.name,
			Value:  math.Min(raw/m.divisor, maxFactorValue),
			Weight: m.weight,
		})
	}

	for _, c := range s.concepts {
		score := importance(text, c.keywords)
		if score <= 0 {
			continue
		}
		value := score
		if c.remap != nil {
			value = c.remap(score)
		}
		factors = append(factors, domain.Factor{
			Name:   c.name,
			Value:  value,
			Weight: c.weight,
		})
	}

	return factors
}

// scanNumber tries patterns in order and returns the first capture group of
// the first match as a float. Parse failure falls through to the next
// pattern. Returns 0 when nothing matched; a legitimately reported zero is
// indistinguishable from absence, which is a known limitation kept so output
// stays stable for real inputs.
func scanNumber(text string, patterns []*regexp.Regexp) float64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v
	}
	return 0
}

// importance computes a keyword-frequency score in [0, 10]. Each keyword
// contributes min(count*2, 10); the total is averaged over the keyword set.
// Raw repetition is rewarded over semantic depth, by contract.
func importance(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	var total float64
	for _, kw := range keywords {
		count := strings.Count(lower, strings.ToLower(kw))
		if count > 0 {
			total += math.Min(float64(count)*2.0, maxFactorValue)
		}
	}

	return math.Min(total/float64(len(keywords)), maxFactorValue)
}

// compile builds case-insensitive regexps for a metric's pattern list.
// Pattern order is load-bearing: changing it changes output on ambiguous
// text.
func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(`(?i)` + e)
	}
	return res
}
