package extract

import (
	"math"
	"testing"

	"github.com/kailas-cloud/factorvec/internal/domain"
)

func findFactor(t *testing.T, factors []domain.Factor, name string) domain.Factor {
	t.Helper()
	for _, f := range factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %s not found in %v", name, factors)
	return domain.Factor{}
}

func hasFactor(factors []domain.Factor, name string) bool {
	for _, f := range factors {
		if f.Name == name {
			return true
		}
	}
	return false
}

func TestScanNumber_FirstPatternWins(t *testing.T) {
	patterns := compile(
		`revenue.*?(\d+(?:\.\d+)?)`,
		`income.*?(\d+(?:\.\d+)?)`,
	)

	// Both patterns would match; the first in the list must win.
	got := scanNumber("income of 50, revenue of 200", patterns)
	if got != 200 {
		t.Fatalf("expected first pattern's capture 200, got %v", got)
	}
}

func TestScanNumber_FirstMatchOfPattern(t *testing.T) {
	patterns := compile(`growth.*?(\d+(?:\.\d+)?)%`)

	got := scanNumber("growth hit 30% then growth of 80%", patterns)
	if got != 30 {
		t.Fatalf("expected first match 30, got %v", got)
	}
}

func TestScanNumber_CaseInsensitive(t *testing.T) {
	patterns := compile(`revenue.*?(\d+(?:\.\d+)?)`)

	if got := scanNumber("Revenue reached 42", patterns); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}

func TestScanNumber_NoMatch(t *testing.T) {
	patterns := compile(`revenue.*?(\d+(?:\.\d+)?)`)

	if got := scanNumber("no numbers here", patterns); got != 0 {
		t.Fatalf("expected 0 for miss, got %v", got)
	}
}

func TestImportance_RepetitionScoring(t *testing.T) {
	// One keyword of a two-keyword set appears 3 times:
	// min(3*2, 10) / 2 = 3.0.
	keywords := []string{"cash flow", "现金流"}
	text := "cash flow up, cash flow stable, cash flow strong"

	got := importance(text, keywords)
	if got != 3.0 {
		t.Fatalf("expected importance 3.0, got %v", got)
	}
}

func TestImportance_PerKeywordClamp(t *testing.T) {
	// 20 occurrences clamp at 10 per keyword before averaging.
	keywords := []string{"brand"}
	text := ""
	for i := 0; i < 20; i++ {
		text += "brand "
	}

	if got := importance(text, keywords); got != 10.0 {
		t.Fatalf("expected clamped importance 10.0, got %v", got)
	}
}

func TestImportance_EmptyInputs(t *testing.T) {
	if got := importance("", []string{"brand"}); got != 0 {
		t.Fatalf("expected 0 for empty text, got %v", got)
	}
	if got := importance("some text", nil); got != 0 {
		t.Fatalf("expected 0 for empty keyword set, got %v", got)
	}
}

func TestFinancialScanner_RevenueScaling(t *testing.T) {
	factors := financialScanner.scan("公司年度营收规模 200亿元，表现稳健")

	f := findFactor(t, factors, domain.FactorRevenueScale)
	if f.Value != 2.0 {
		t.Fatalf("expected revenue 200/100 = 2.0, got %v", f.Value)
	}
	if f.Weight != 0.25 {
		t.Fatalf("expected weight 0.25, got %v", f.Weight)
	}
}

func TestFinancialScanner_RevenueClamp(t *testing.T) {
	factors := financialScanner.scan("revenue of 5000 billion")

	f := findFactor(t, factors, domain.FactorRevenueScale)
	if f.Value != 10.0 {
		t.Fatalf("expected clamp at 10.0, got %v", f.Value)
	}
}

func TestFinancialScanner_DebtInversion(t *testing.T) {
	// "资产负债率" also contains "负债率", so two keywords count once each:
	// importance = (2+2)/4 = 1.0, health = 10 - 1.0*5 = 5.0.
	factors := financialScanner.scan("资产负债率维持低位")

	f := findFactor(t, factors, domain.FactorFinancialHealth)
	if f.Value != 5.0 {
		t.Fatalf("expected inverted health 5.0, got %v", f.Value)
	}
}

func TestFinancialScanner_DebtInversionFloorsAtZero(t *testing.T) {
	// Heavy leverage talk drives importance to the per-keyword cap and the
	// remapped health score to its floor, but the factor is still emitted.
	text := ""
	for i := 0; i < 10; i++ {
		text += "debt ratio debt-to-equity 负债率 资产负债率 "
	}
	factors := financialScanner.scan(text)

	f := findFactor(t, factors, domain.FactorFinancialHealth)
	if f.Value != 0 {
		t.Fatalf("expected floored health 0, got %v", f.Value)
	}
}

func TestMarketScanner_ShareScaling(t *testing.T) {
	factors := marketScanner.scan("market share climbed to 15% this year")

	f := findFactor(t, factors, domain.FactorMarketShare)
	if f.Value != 7.5 {
		t.Fatalf("expected 15/2 = 7.5, got %v", f.Value)
	}
}

func TestGrowthScanner_UserGrowthScaling(t *testing.T) {
	factors := growthScanner.scan("用户增长率达到 12%")

	f := findFactor(t, factors, domain.FactorUserGrowthRate)
	if f.Value != 4.0 {
		t.Fatalf("expected 12/3 = 4.0, got %v", f.Value)
	}
}

func TestScanners_SilentOmission(t *testing.T) {
	factors := financialScanner.scan("利润率为 12%")

	if !hasFactor(factors, domain.FactorProfitMargin) {
		t.Fatal("expected profit margin factor")
	}
	if hasFactor(factors, domain.FactorRevenueScale) {
		t.Fatal("revenue factor must be omitted when not mentioned")
	}
	if hasFactor(factors, domain.FactorCashFlowHealth) {
		t.Fatal("cash flow factor must be omitted when not mentioned")
	}
}

func TestScanners_ValuesBounded(t *testing.T) {
	text := "营收 99999亿, 利润率 500%, 增长率 1000%, market share 80%, " +
		"AI machine learning cloud data brand 创新 全球 团队 渠道 专利"

	for _, s := range categoryScanners {
		for _, f := range s.scan(text) {
			if f.Value < 0 || f.Value > 10 {
				t.Errorf("%s: value %v out of [0,10]", f.Name, f.Value)
			}
			if f.Weight <= 0 || f.Weight > 1 {
				t.Errorf("%s: weight %v out of (0,1]", f.Name, f.Weight)
			}
		}
	}
}

func TestScanners_CategoryWeightSums(t *testing.T) {
	// Per-category weights sum to at most 1.0 in the static tables.
	for _, s := range categoryScanners {
		var sum float64
		for _, m := range s.metrics {
			sum += m.weight
		}
		for _, c := range s.concepts {
			sum += c.weight
		}
		if sum > 1.0+1e-9 {
			t.Errorf("category %s: weight sum %v exceeds 1.0", s.category, sum)
		}
	}
}

func TestScanners_DeclarationOrderPreserved(t *testing.T) {
	text := "营收 200亿 利润率 20% brand market leader 全球 customer satisfaction"

	factors := marketScanner.scan(text)
	// market position, brand, coverage all hit; order must follow the table.
	var names []string
	for _, f := range factors {
		names = append(names, f.Name)
	}
	want := []string{
		domain.FactorMarketPosition,
		domain.FactorBrandInfluence,
		domain.FactorCustomerSatisfaction,
		domain.FactorMarketCoverage,
	}
	if len(names) != len(want) {
		t.Fatalf("expected %d factors, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestImportance_MultiKeywordAverage(t *testing.T) {
	// Both keywords of a 2-keyword set once each: (2+2)/2 = 2.0.
	got := importance("cash flow and 现金流", []string{"cash flow", "现金流"})
	if math.Abs(got-2.0) > 1e-12 {
		t.Fatalf("expected 2.0, got %v", got)
	}
}
