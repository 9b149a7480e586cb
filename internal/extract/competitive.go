package extract

import "github.com/kailas-cloud/factorvec/internal/domain"

// competitiveScanner covers moat-style signals: differentiation, cost,
// channels and talent. Keyword-only — these rarely come with numbers.
var competitiveScanner = scanner{
	category: "competitive",
	concepts: []keywordConcept{
		{
			name:   domain.FactorCompetitiveAdvantage,
			weight: 0.3,
			keywords: []string{
				"竞争优势", "competitive advantage", "核心竞争力", "core competency",
				"差异化", "differentiation", "独特优势", "unique advantage",
			},
		},
		{
			name:   domain.FactorTechnicalAdvantage,
			weight: 0.25,
			keywords: []string{
				"技术优势", "technical advantage", "技术创新", "technology innovation",
				"专利", "patent", "知识产权", "intellectual property",
			},
		},
		{
			name:   domain.FactorCostAdvantage,
			weight: 0.2,
			keywords: []string{
				"成本优势", "cost advantage", "成本控制", "cost control",
				"规模效应", "economies of scale", "效率", "efficiency",
			},
		},
		{
			name:   domain.FactorChannelAdvantage,
			weight: 0.15,
			keywords: []string{
				"渠道", "channel", "分销网络", "distribution network",
				"合作伙伴", "partnership", "生态系统", "ecosystem",
			},
		},
		{
			name:   domain.FactorTalentAdvantage,
			weight: 0.1,
			keywords: []string{
				"人才", "talent", "团队", "team", "专家", "expert",
				"管理团队", "management team", "领导力", "leadership",
			},
		},
	},
}
