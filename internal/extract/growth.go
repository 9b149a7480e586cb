package extract

import "github.com/kailas-cloud/factorvec/internal/domain"

// growthScanner covers user growth, innovation and expansion signals.
var growthScanner = scanner{
	category: "growth",
	metrics: []numericMetric{
		{
			name:    domain.FactorUserGrowthRate,
			weight:  0.25,
			divisor: 3.0,
			patterns: compile(
				`用户增长.*?(\d+(?:\.\d+)?)%`,
				`用户增长率.*?(\d+(?:\.\d+)?)%`,
				`user growth.*?(\d+(?:\.\d+)?)%`,
				`(\d+(?:\.\d+)?)%.*?用户增长`,
			),
		},
	},
	concepts: []keywordConcept{
		{
			name:   domain.FactorInnovationCapability,
			weight: 0.25,
			keywords: []string{
				"创新", "innovation", "新产品", "new product", "研发", "R&D",
				"技术突破", "breakthrough", "创新产品", "innovative product",
			},
		},
		{
			name:   domain.FactorInternationalization,
			weight: 0.2,
			keywords: []string{
				"国际化", "international", "全球", "global", "海外", "overseas",
				"国际市场", "international market", "全球化", "globalization",
			},
		},
		{
			name:   domain.FactorExpansionCapability,
			weight: 0.15,
			keywords: []string{
				"并购", "acquisition", "收购", "merger", "扩张", "expansion",
				"投资", "investment", "战略投资", "strategic investment",
			},
		},
		{
			name:   domain.FactorMarketExpansion,
			weight: 0.15,
			keywords: []string{
				"市场拓展", "market expansion", "新市场", "new market",
				"业务拓展", "business expansion", "多元化", "diversification",
			},
		},
	},
}
