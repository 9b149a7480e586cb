package domain

// Factor is a single named, weighted signal extracted from report text.
// Value is always in [0, 10]; producers clamp. Weight is a static constant
// keyed by factor name, never derived from data.
type Factor struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// Factor names form a closed vocabulary. Names are distinct across scanner
// categories in the shipped rule set.
const (
	FactorRevenueScale        = "revenue_scale"
	FactorProfitMargin        = "profit_margin"
	FactorFinancialGrowthRate = "financial_growth_rate"
	FactorCashFlowHealth      = "cash_flow_health"
	FactorFinancialHealth     = "financial_health"

	FactorMarketShare          = "market_share"
	FactorMarketPosition       = "market_position"
	FactorBrandInfluence       = "brand_influence"
	FactorCustomerSatisfaction = "customer_satisfaction"
	FactorMarketCoverage       = "market_coverage"

	FactorCompetitiveAdvantage = "competitive_advantage"
	FactorTechnicalAdvantage   = "technical_advantage"
	FactorCostAdvantage        = "cost_advantage"
	FactorChannelAdvantage     = "channel_advantage"
	FactorTalentAdvantage      = "talent_advantage"

	FactorUserGrowthRate       = "user_growth_rate"
	FactorInnovationCapability = "innovation_capability"
	FactorInternationalization = "internationalization"
	FactorExpansionCapability  = "expansion_capability"
	FactorMarketExpansion      = "market_expansion"

	FactorTechnicalCapability = "technical_capability"
	FactorAITechnology        = "ai_technology"
	FactorDataCapability      = "data_capability"
	FactorCloudComputing      = "cloud_computing"
	FactorMobileTechnology    = "mobile_technology"

	// Fallback-only names.
	FactorInformationRichness = "information_richness"
	FactorDataCredibility     = "data_credibility"
	FactorMarketActivity      = "market_activity"
)

// DefaultFactors returns the fixed fallback set used when the report text is
// missing or an extraction pass fails. Always a fresh slice.
func DefaultFactors() []Factor {
	return []Factor{
		{Name: FactorInformationRichness, Value: 5.0, Weight: 0.2},
		{Name: FactorDataCredibility, Value: 5.0, Weight: 0.25},
		{Name: FactorFinancialHealth, Value: 5.0, Weight: 0.3},
		{Name: FactorMarketActivity, Value: 5.0, Weight: 0.25},
	}
}

// FeatureVector is a fixed-length angle-encoded vector, each element in
// [0, 2π], consumed by a downstream numeric model.
type FeatureVector []float64
