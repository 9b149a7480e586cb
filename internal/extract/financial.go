package extract

import (
	"math"

	"github.com/kailas-cloud/factorvec/internal/domain"
)

// financialScanner covers revenue scale, margins, growth and balance-sheet
// signals. Patterns mix Chinese and English phrasings with unit synonyms;
// units are advisory only — the number is taken as reported.
var financialScanner = scanner{
	category: "financial",
	metrics: []numericMetric{
		{
			name:    domain.FactorRevenueScale,
			weight:  0.25,
			divisor: 100.0,
			patterns: compile(
				`营收.*?(\d+(?:\.\d+)?)\s*(?:亿|万|千)?(?:美元|元|RMB)?`,
				`收入.*?(\d+(?:\.\d+)?)\s*(?:亿|万|千)?(?:美元|元|RMB)?`,
				`revenue.*?(\d+(?:\.\d+)?)\s*(?:billion|million|thousand)?`,
				`(\d+(?:\.\d+)?)\s*(?:亿|万|千)?(?:美元|元|RMB)?.*?营收`,
				`(\d+(?:\.\d+)?)\s*(?:billion|million|thousand).*?revenue`,
			),
		},
		{
			name:    domain.FactorProfitMargin,
			weight:  0.25,
			divisor: 10.0,
			patterns: compile(
				`利润率.*?(\d+(?:\.\d+)?)%`,
				`毛利率.*?(\d+(?:\.\d+)?)%`,
				`净利率.*?(\d+(?:\.\d+)?)%`,
				`profit margin.*?(\d+(?:\.\d+)?)%`,
				`(\d+(?:\.\d+)?)%.*?利润率`,
			),
		},
		{
			name:    domain.FactorFinancialGrowthRate,
			weight:  0.2,
			divisor: 5.0,
			patterns: compile(
				`增长率.*?(\d+(?:\.\d+)?)%`,
				`增长.*?(\d+(?:\.\d+)?)%`,
				`growth.*?(\d+(?:\.\d+)?)%`,
				`(\d+(?:\.\d+)?)%.*?增长`,
			),
		},
	},
	concepts: []keywordConcept{
		{
			name:     domain.FactorCashFlowHealth,
			weight:   0.15,
			keywords: []string{"现金流", "cash flow", "经营现金流", "operating cash flow"},
		},
		{
			name:     domain.FactorFinancialHealth,
			weight:   0.15,
			keywords: []string{"负债率", "debt ratio", "资产负债率", "debt-to-equity"},
			// Debt talk is inverted into a health reading: the more the
			// report dwells on leverage, the lower the score.
			remap: func(score float64) float64 {
				return math.Max(0, maxFactorValue-score*5)
			},
		},
	},
}
