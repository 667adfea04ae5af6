package forecast

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/clachance14/CostTrak-sub001/internal/config"
	"github.com/clachance14/CostTrak-sub001/internal/records"
	"github.com/clachance14/CostTrak-sub001/pkg/fallback"
)

func newTestService() *Service {
	return NewService(config.Default().Estimation, nil)
}

func week(dateStr string) time.Time {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPOForecast(t *testing.T) {
	tests := []struct {
		name     string
		po       records.PurchaseOrder
		expected float64
	}{
		{
			name: "Manual final cost wins",
			po: records.PurchaseOrder{
				CommittedAmount:     100000,
				InvoicedAmount:      20000,
				ForecastAmount:      fallback.Ptr(90000),
				ForecastedFinalCost: fallback.Ptr(80000),
			},
			expected: 80000,
		},
		{
			name: "Zero forecast amount falls through to committed",
			po: records.PurchaseOrder{
				CommittedAmount: 100000,
				InvoicedAmount:  95000,
				ForecastAmount:  fallback.Ptr(0),
			},
			expected: 100000,
		},
		{
			name: "Forecast amount used when final cost missing",
			po: records.PurchaseOrder{
				CommittedAmount: 50000,
				InvoicedAmount:  10000,
				ForecastAmount:  fallback.Ptr(45000),
			},
			expected: 45000,
		},
		{
			name: "Invoiced floor overrides a low manual final cost",
			po: records.PurchaseOrder{
				CommittedAmount:     100000,
				InvoicedAmount:      85000,
				ForecastedFinalCost: fallback.Ptr(70000),
			},
			expected: 85000,
		},
		{
			name: "Bare commitment",
			po: records.PurchaseOrder{
				CommittedAmount: 25000,
			},
			expected: 25000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestService().POForecast(tt.po)
			if result != tt.expected {
				t.Errorf("POForecast() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestPOForecastInvoicedFloor(t *testing.T) {
	// Property: the forecast never shows less than what has been invoiced.
	pos := []records.PurchaseOrder{
		{CommittedAmount: 100, InvoicedAmount: 500},
		{CommittedAmount: 0, InvoicedAmount: 250},
		{InvoicedAmount: 10, ForecastedFinalCost: fallback.Ptr(5)},
	}
	service := newTestService()
	for _, po := range pos {
		if result := service.POForecast(po); result < po.InvoicedAmount {
			t.Errorf("POForecast() = %.2f, below invoiced amount %.2f", result, po.InvoicedAmount)
		}
	}
}

func TestTotalPOForecast(t *testing.T) {
	tests := []struct {
		name              string
		pos               []records.PurchaseOrder
		expectedCommitted float64
		expectedInvoiced  float64
		expectedRemaining float64
	}{
		{
			name: "Standard portfolio",
			pos: []records.PurchaseOrder{
				{CommittedAmount: 100000, InvoicedAmount: 40000},
				{CommittedAmount: 50000, InvoicedAmount: 50000},
			},
			expectedCommitted: 150000,
			expectedInvoiced:  90000,
			expectedRemaining: 60000,
		},
		{
			name: "Overrun invoicing never yields negative remaining",
			pos: []records.PurchaseOrder{
				{CommittedAmount: 10000, InvoicedAmount: 15000},
			},
			expectedCommitted: 10000,
			expectedInvoiced:  15000,
			expectedRemaining: 0,
		},
		{
			name:              "Empty portfolio",
			pos:               nil,
			expectedCommitted: 0,
			expectedInvoiced:  0,
			expectedRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := newTestService().TotalPOForecast(tt.pos)
			if totals.TotalCommitted != tt.expectedCommitted {
				t.Errorf("TotalCommitted = %.2f, expected %.2f", totals.TotalCommitted, tt.expectedCommitted)
			}
			if totals.TotalInvoiced != tt.expectedInvoiced {
				t.Errorf("TotalInvoiced = %.2f, expected %.2f", totals.TotalInvoiced, tt.expectedInvoiced)
			}
			if totals.RemainingCommitments != tt.expectedRemaining {
				t.Errorf("RemainingCommitments = %.2f, expected %.2f", totals.RemainingCommitments, tt.expectedRemaining)
			}
		})
	}
}

func TestLaborRatesByCraft(t *testing.T) {
	actuals := []records.LaborActual{
		{CraftTypeID: "pipefitter", TotalHours: 100, TotalCost: 5000, TotalCostWithBurden: fallback.Ptr(6400)},
		{CraftTypeID: "pipefitter", TotalHours: 100, TotalCost: 5000, TotalCostWithBurden: fallback.Ptr(6400)},
		{CraftTypeID: "welder", TotalHours: 40, TotalCost: 2400},
		{CraftTypeID: "idle", TotalHours: 0, TotalCost: 999},
	}

	rates := newTestService().LaborRatesByCraft(actuals)

	if rate, ok := rates["pipefitter"]; !ok || math.Abs(rate-64.0) > 0.01 {
		t.Errorf("pipefitter rate = %.2f (present=%v), expected 64.00", rate, ok)
	}
	if rate, ok := rates["welder"]; !ok || math.Abs(rate-60.0) > 0.01 {
		t.Errorf("welder rate = %.2f (present=%v), expected 60.00", rate, ok)
	}
	// Zero total hours means no rate at all, not a zero rate.
	if _, ok := rates["idle"]; ok {
		t.Errorf("craft with zero hours should be absent from the rate map")
	}
}

func TestFutureLaborCost(t *testing.T) {
	crafts := map[string]records.CraftType{
		"pipefitter": {ID: "pipefitter", Category: records.CraftDirect, DefaultRate: fallback.Ptr(55)},
		"foreman":    {ID: "foreman", Category: records.CraftIndirect, DefaultRate: fallback.Ptr(70)},
		"engineer":   {ID: "engineer", Category: records.CraftStaff},
	}
	rates := map[string]float64{"pipefitter": 64}

	tests := []struct {
		name             string
		forecasts        []records.LaborForecast
		expectedDirect   float64
		expectedIndirect float64
		expectedStaff    float64
	}{
		{
			name: "Running rate preferred over default",
			forecasts: []records.LaborForecast{
				{CraftTypeID: "pipefitter", ForecastedHeadcount: 2},
			},
			expectedDirect: 2 * 40 * 64,
		},
		{
			name: "Default rate used without running rate",
			forecasts: []records.LaborForecast{
				{CraftTypeID: "foreman", ForecastedHeadcount: 1},
			},
			expectedIndirect: 40 * 70,
		},
		{
			name: "Fallback rate for craft with no rates",
			forecasts: []records.LaborForecast{
				{CraftTypeID: "engineer", ForecastedHeadcount: 1},
			},
			expectedStaff: 40 * 50,
		},
		{
			name: "Unknown craft costs out as direct at the fallback rate",
			forecasts: []records.LaborForecast{
				{CraftTypeID: "mystery", ForecastedHeadcount: 1},
			},
			expectedDirect: 40 * 50,
		},
		{
			name: "Explicit weekly hours override the default",
			forecasts: []records.LaborForecast{
				{CraftTypeID: "pipefitter", ForecastedHeadcount: 1, WeeklyHours: fallback.Ptr(50)},
			},
			expectedDirect: 50 * 64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := newTestService().FutureLaborCost(tt.forecasts, rates, crafts)
			if math.Abs(totals.Direct-tt.expectedDirect) > 0.01 {
				t.Errorf("Direct = %.2f, expected %.2f", totals.Direct, tt.expectedDirect)
			}
			if math.Abs(totals.Indirect-tt.expectedIndirect) > 0.01 {
				t.Errorf("Indirect = %.2f, expected %.2f", totals.Indirect, tt.expectedIndirect)
			}
			if math.Abs(totals.Staff-tt.expectedStaff) > 0.01 {
				t.Errorf("Staff = %.2f, expected %.2f", totals.Staff, tt.expectedStaff)
			}
			expectedTotal := tt.expectedDirect + tt.expectedIndirect + tt.expectedStaff
			if math.Abs(totals.Total-expectedTotal) > 0.01 {
				t.Errorf("Total = %.2f, expected %.2f", totals.Total, expectedTotal)
			}
		})
	}
}

func TestTotalLaborActuals(t *testing.T) {
	actuals := []records.LaborActual{
		{TotalCost: 1000, TotalCostWithBurden: fallback.Ptr(1280)},
		{TotalCost: 500},
	}
	result := newTestService().TotalLaborActuals(actuals)
	if math.Abs(result-1780) > 0.01 {
		t.Errorf("TotalLaborActuals() = %.2f, expected 1780.00 (burdened preferred)", result)
	}
}

func TestProjectEAC(t *testing.T) {
	pos := []records.PurchaseOrder{
		{CommittedAmount: 200000, InvoicedAmount: 120000},
		{CommittedAmount: 50000, InvoicedAmount: 10000, ForecastedFinalCost: fallback.Ptr(60000)},
	}
	actuals := []records.LaborActual{
		{CraftTypeID: "pipefitter", WeekEnding: week("2025-03-02"), TotalHours: 100, TotalCost: 5000, TotalCostWithBurden: fallback.Ptr(6400)},
	}
	forecasts := []records.LaborForecast{
		{CraftTypeID: "pipefitter", WeekEnding: week("2025-03-09"), ForecastedHeadcount: 2},
	}
	crafts := map[string]records.CraftType{
		"pipefitter": {ID: "pipefitter", Category: records.CraftDirect},
	}

	result := newTestService().ProjectEAC(pos, actuals, forecasts, crafts)

	expectedACTD := 130000.0 + 6400.0
	if math.Abs(result.ActualCostToDate-expectedACTD) > 0.01 {
		t.Errorf("ActualCostToDate = %.2f, expected %.2f", result.ActualCostToDate, expectedACTD)
	}

	// remaining = 250000 committed - 130000 invoiced; future = 2 heads * 40h * 64/h
	expectedETC := 120000.0 + 2*40*64
	if math.Abs(result.EstimateToComplete-expectedETC) > 0.01 {
		t.Errorf("EstimateToComplete = %.2f, expected %.2f", result.EstimateToComplete, expectedETC)
	}

	// EAC additivity holds for every computed result.
	if math.Abs(result.EstimateAtCompletion-(result.ActualCostToDate+result.EstimateToComplete)) > 0.001 {
		t.Errorf("EstimateAtCompletion = %.2f, expected ActualCostToDate + EstimateToComplete = %.2f",
			result.EstimateAtCompletion, result.ActualCostToDate+result.EstimateToComplete)
	}

	if result.Breakdown.POActuals != 130000 {
		t.Errorf("Breakdown.POActuals = %.2f, expected 130000", result.Breakdown.POActuals)
	}
	if result.Breakdown.LaborActuals != 6400 {
		t.Errorf("Breakdown.LaborActuals = %.2f, expected 6400", result.Breakdown.LaborActuals)
	}
}

func TestProjectEACIdempotence(t *testing.T) {
	pos := []records.PurchaseOrder{{CommittedAmount: 100000, InvoicedAmount: 25000}}
	actuals := []records.LaborActual{{CraftTypeID: "welder", TotalHours: 40, TotalCost: 2400}}
	forecasts := []records.LaborForecast{{CraftTypeID: "welder", ForecastedHeadcount: 3}}
	crafts := map[string]records.CraftType{"welder": {ID: "welder", Category: records.CraftDirect}}

	service := newTestService()
	first := service.ProjectEAC(pos, actuals, forecasts, crafts)
	second := service.ProjectEAC(pos, actuals, forecasts, crafts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ProjectEAC is not idempotent: %+v != %+v", first, second)
	}
}

func TestVarianceAtCompletion(t *testing.T) {
	result := Result{EstimateAtCompletion: 900000}
	vac := newTestService().VarianceAtCompletion(1000000, result)
	if vac != 100000 {
		t.Errorf("VarianceAtCompletion = %.2f, expected 100000", vac)
	}
}

func TestLaborCategoryForecast(t *testing.T) {
	actuals := []records.LaborActual{
		{CraftTypeID: "welder", TotalHours: 40, TotalCost: 2400},
	}
	crafts := map[string]records.CraftType{"welder": {ID: "welder", Category: records.CraftDirect}}

	cf := newTestService().LaborCategoryForecast("LABOR", 100000, actuals, nil, crafts)

	// Labor has no separate commitment state.
	if cf.Committed != cf.Actuals {
		t.Errorf("Committed = %.2f, expected to equal Actuals %.2f", cf.Committed, cf.Actuals)
	}
	if cf.ForecastedFinal < cf.Actuals {
		t.Errorf("ForecastedFinal = %.2f, below Actuals %.2f", cf.ForecastedFinal, cf.Actuals)
	}
	if math.Abs(cf.Variance-(100000-cf.ForecastedFinal)) > 0.001 {
		t.Errorf("Variance = %.2f, expected %.2f", cf.Variance, 100000-cf.ForecastedFinal)
	}
}

func TestPOCategoryForecastFloor(t *testing.T) {
	tests := []struct {
		name string
		pos  []records.PurchaseOrder
	}{
		{
			name: "Forecast below invoiced gets floored",
			pos: []records.PurchaseOrder{
				{CommittedAmount: 100, InvoicedAmount: 5000, ForecastedFinalCost: fallback.Ptr(100)},
			},
		},
		{
			name: "Standard orders",
			pos: []records.PurchaseOrder{
				{CommittedAmount: 80000, InvoicedAmount: 30000},
				{CommittedAmount: 20000, InvoicedAmount: 20000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf := newTestService().POCategoryForecast("MATERIALS", 150000, tt.pos)
			if cf.ForecastedFinal < cf.Actuals {
				t.Errorf("ForecastedFinal = %.2f, below Actuals %.2f", cf.ForecastedFinal, cf.Actuals)
			}
		})
	}
}

func TestThresholdForecast(t *testing.T) {
	tests := []struct {
		name            string
		committed       float64
		revisedContract float64
		baseMargin      float64
		spent           float64
		expected        float64
	}{
		{
			name:            "Below threshold uses margin-based estimate",
			committed:       100000, // 10% of contract
			revisedContract: 1000000,
			baseMargin:      0.15,
			spent:           50000,
			expected:        850000,
		},
		{
			name:            "At threshold trusts committed",
			committed:       200000, // exactly 20%
			revisedContract: 1000000,
			baseMargin:      0.15,
			spent:           50000,
			expected:        200000,
		},
		{
			name:            "Above threshold trusts committed",
			committed:       600000,
			revisedContract: 1000000,
			baseMargin:      0.15,
			spent:           300000,
			expected:        600000,
		},
		{
			name:            "Margin branch floored by spent",
			committed:       10000,
			revisedContract: 100000,
			baseMargin:      0.95,
			spent:           40000,
			expected:        40000,
		},
		{
			name:            "Committed branch floored by spent",
			committed:       300000,
			revisedContract: 1000000,
			baseMargin:      0.15,
			spent:           350000,
			expected:        350000,
		},
		{
			name:            "Zero contract trusts committed",
			committed:       5000,
			revisedContract: 0,
			baseMargin:      0.15,
			spent:           0,
			expected:        5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestService().ThresholdForecast(tt.committed, tt.revisedContract, tt.baseMargin, tt.spent)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ThresholdForecast() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestWeeklyRunRate(t *testing.T) {
	crafts := map[string]records.CraftType{
		"welder": {ID: "welder", Category: records.CraftDirect},
	}
	rates := map[string]float64{"welder": 60}

	totals := newTestService().WeeklyRunRate(map[string]float64{"welder": 4}, rates, crafts)

	// 4 heads at the 50-hour composite-rate week.
	expected := 4.0 * 50 * 60
	if math.Abs(totals.Direct-expected) > 0.01 {
		t.Errorf("Direct = %.2f, expected %.2f", totals.Direct, expected)
	}
}
