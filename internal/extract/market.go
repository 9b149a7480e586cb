package extract

import "github.com/kailas-cloud/factorvec/internal/domain"

// marketScanner covers market share, standing and reach.
var marketScanner = scanner{
	category: "market",
	metrics: []numericMetric{
		{
			name:    domain.FactorMarketShare,
			weight:  0.3,
			divisor: 2.0,
			patterns: compile(
				`市场份额.*?(\d+(?:\.\d+)?)%`,
				`market share.*?(\d+(?:\.\d+)?)%`,
				`(\d+(?:\.\d+)?)%.*?市场份额`,
				`(\d+(?:\.\d+)?)%.*?market share`,
			),
		},
	},
	concepts: []keywordConcept{
		{
			name:   domain.FactorMarketPosition,
			weight: 0.25,
			keywords: []string{
				"市场领导者", "market leader", "行业第一", "leading position",
				"市场领先", "market leading", "行业龙头", "dominant position",
			},
		},
		{
			name:     domain.FactorBrandInfluence,
			weight:   0.2,
			keywords: []string{"品牌", "brand", "品牌价值", "brand value", "品牌知名度", "brand awareness"},
		},
		{
			name:     domain.FactorCustomerSatisfaction,
			weight:   0.15,
			keywords: []string{"客户满意度", "customer satisfaction", "用户满意度", "user satisfaction"},
		},
		{
			name:     domain.FactorMarketCoverage,
			weight:   0.1,
			keywords: []string{"全球", "global", "国际化", "international", "覆盖", "coverage"},
		},
	},
}
