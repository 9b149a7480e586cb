package extract

import "github.com/kailas-cloud/factorvec/internal/domain"

// technologyScanner covers technical depth: AI, data, cloud and mobile.
var technologyScanner = scanner{
	category: "technology",
	concepts: []keywordConcept{
		{
			name:   domain.FactorTechnicalCapability,
			weight: 0.3,
			keywords: []string{
				"技术实力", "technical capability", "技术领先", "technology leadership",
				"核心技术", "core technology", "技术优势", "technical advantage",
			},
		},
		{
			name:   domain.FactorAITechnology,
			weight: 0.25,
			keywords: []string{
				"人工智能", "AI", "artificial intelligence", "机器学习", "machine learning",
				"深度学习", "deep learning", "算法", "algorithm", "智能", "intelligent",
			},
		},
		{
			name:   domain.FactorDataCapability,
			weight: 0.2,
			keywords: []string{
				"数据", "data", "大数据", "big data", "数据分析", "data analytics",
				"数据挖掘", "data mining", "数据驱动", "data-driven",
			},
		},
		{
			name:   domain.FactorCloudComputing,
			weight: 0.15,
			keywords: []string{
				"云计算", "cloud computing", "云服务", "cloud service",
				"云平台", "cloud platform", "云端", "cloud",
			},
		},
		{
			name:   domain.FactorMobileTechnology,
			weight: 0.1,
			keywords: []string{
				"移动", "mobile", "移动应用", "mobile app", "移动平台", "mobile platform",
				"移动互联网", "mobile internet", "移动技术", "mobile technology",
			},
		},
	},
}
