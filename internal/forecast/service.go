// Package forecast computes a project's financial estimate (estimate to
// complete, estimate at completion, variance at completion) from commitment
// records: purchase orders, change orders, labor actuals, labor forecasts,
// and per-diem costs. It is the composition root over the labor and per-diem
// calculators; every method is a pure transformation over its inputs.
package forecast

import (
	"go.uber.org/zap"

	"github.com/clachance14/CostTrak-sub001/internal/config"
	"github.com/clachance14/CostTrak-sub001/internal/records"
	"github.com/clachance14/CostTrak-sub001/pkg/fallback"
	"github.com/clachance14/CostTrak-sub001/pkg/mathutil"
)

// POTotals is the portfolio-level purchase order rollup.
type POTotals struct {
	TotalCommitted       float64 `json:"totalCommitted"`
	TotalInvoiced        float64 `json:"totalInvoiced"`
	TotalForecasted      float64 `json:"totalForecasted"`
	RemainingCommitments float64 `json:"remainingCommitments"`
}

// CategoryTotals accumulates cost into the three labor categories.
type CategoryTotals struct {
	Direct   float64 `json:"direct"`
	Indirect float64 `json:"indirect"`
	Staff    float64 `json:"staff"`
	Total    float64 `json:"total"`
}

// Breakdown itemizes a Result so callers can reconcile components without
// recomputation.
type Breakdown struct {
	POActuals    float64 `json:"poActuals"`
	PORemaining  float64 `json:"poRemaining"`
	POForecasted float64 `json:"poForecasted"`
	LaborActuals float64 `json:"laborActuals"`
	LaborFuture  float64 `json:"laborFuture"`
}

// Result is the output of the project EAC computation. EstimateAtCompletion
// always equals ActualCostToDate plus EstimateToComplete.
type Result struct {
	ActualCostToDate     float64   `json:"actualCostToDate"`
	EstimateToComplete   float64   `json:"estimateToComplete"`
	EstimateAtCompletion float64   `json:"estimateAtCompletion"`
	Breakdown            Breakdown `json:"breakdown"`
}

// CategoryForecast is one budget category's forecast line.
type CategoryForecast struct {
	Category        string  `json:"category"`
	Budget          float64 `json:"budget"`
	Committed       float64 `json:"committed"`
	Actuals         float64 `json:"actuals"`
	ForecastedFinal float64 `json:"forecastedFinal"`
	Variance        float64 `json:"variance"`
}

// Service computes project-level forecasts. All methods are pure given their
// inputs; the service holds only configuration and a logger.
type Service struct {
	cfg    config.EstimationConfig
	logger *zap.Logger
}

// NewService creates a new forecast service with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewService(cfg config.EstimationConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: logger}
}

// POForecast computes one order's forecasted cost: the first positive of the
// manually entered final cost, the forecast amount, and the committed
// amount, floored at the invoiced amount. Precedence is strict left-to-right
// with zero treated as absent; a manual final cost wins even when smaller
// than the commitment, as long as it clears the invoiced floor.
func (s *Service) POForecast(po records.PurchaseOrder) float64 {
	forecast := fallback.FirstPositive(po.CommittedAmount, po.ForecastedFinalCost, po.ForecastAmount)
	return mathutil.FloorAt(forecast, po.InvoicedAmount)
}

// TotalPOForecast rolls a purchase order portfolio into committed, invoiced,
// and per-order forecast sums. Remaining commitments never go negative even
// when invoicing has overrun the commitment.
func (s *Service) TotalPOForecast(pos []records.PurchaseOrder) POTotals {
	var totals POTotals
	for _, po := range pos {
		totals.TotalCommitted += po.CommittedAmount
		totals.TotalInvoiced += po.InvoicedAmount
		totals.TotalForecasted += s.POForecast(po)
	}
	totals.RemainingCommitments = mathutil.NonNegative(totals.TotalCommitted - totals.TotalInvoiced)
	return totals
}

// LaborRatesByCraft computes the running-average rate per craft type over
// actual records with hours, burdened cost over hours. Crafts with zero
// total hours are absent from the map: callers must treat "no data"
// distinctly from a zero rate.
func (s *Service) LaborRatesByCraft(actuals []records.LaborActual) map[string]float64 {
	hours := make(map[string]float64)
	costs := make(map[string]float64)
	for _, a := range actuals {
		if a.TotalHours <= 0 {
			continue
		}
		hours[a.CraftTypeID] += a.TotalHours
		costs[a.CraftTypeID] += a.EffectiveCost()
	}

	rates := make(map[string]float64, len(hours))
	for craft, h := range hours {
		rates[craft] = costs[craft] / h
	}
	return rates
}

// FutureLaborCost prices the labor forecast: each row costs out at its
// craft's running-average rate, falling back to the craft default rate and
// then the configured fallback rate, times headcount at the row's weekly
// hours (or the configured default). Costs accumulate into the craft's
// category, defaulting unknown categories to direct.
func (s *Service) FutureLaborCost(forecasts []records.LaborForecast, rates map[string]float64, crafts map[string]records.CraftType) CategoryTotals {
	var totals CategoryTotals

	for _, f := range forecasts {
		craft, known := crafts[f.CraftTypeID]

		rate := s.cfg.FallbackLaborRate
		if r, ok := rates[f.CraftTypeID]; ok {
			rate = r
		} else if known && craft.DefaultRate != nil && *craft.DefaultRate > 0 {
			rate = *craft.DefaultRate
		} else {
			s.logger.Debug("no rate for craft, using fallback",
				zap.String("op", "forecast.FutureLaborCost"),
				zap.String("craftType", f.CraftTypeID),
				zap.Float64("rate", rate),
			)
		}

		weeklyHours := fallback.Coalesce(s.cfg.DefaultWeeklyHours, f.WeeklyHours) * f.ForecastedHeadcount
		cost := weeklyHours * rate

		category := records.CraftDirect
		if known {
			category = records.NormalizeCraftCategory(craft.Category)
		}
		switch category {
		case records.CraftIndirect:
			totals.Indirect += cost
		case records.CraftStaff:
			totals.Staff += cost
		default:
			totals.Direct += cost
		}
		totals.Total += cost
	}

	return totals
}

// WeeklyRunRate prices one week of planned headcount at composite-rate
// weekly hours, the dashboard's burn figure for staffing plans that carry no
// per-week forecast rows.
func (s *Service) WeeklyRunRate(headcountByCraft map[string]float64, rates map[string]float64, crafts map[string]records.CraftType) CategoryTotals {
	forecasts := make([]records.LaborForecast, 0, len(headcountByCraft))
	hours := s.cfg.CompositeRateWeeklyHours
	for craft, headcount := range headcountByCraft {
		forecasts = append(forecasts, records.LaborForecast{
			CraftTypeID:         craft,
			ForecastedHeadcount: headcount,
			WeeklyHours:         &hours,
		})
	}
	return s.FutureLaborCost(forecasts, rates, crafts)
}

// TotalLaborActuals sums actual labor cost, preferring the burdened figure
// wherever it is present.
func (s *Service) TotalLaborActuals(actuals []records.LaborActual) float64 {
	total := 0.0
	for _, a := range actuals {
		total += a.EffectiveCost()
	}
	return total
}

// ProjectEAC is the top-level estimate: actual cost to date is invoiced PO
// cost plus burdened labor actuals; estimate to complete is remaining PO
// commitments plus future labor cost; the estimate at completion is their
// sum. The breakdown carries every component.
func (s *Service) ProjectEAC(pos []records.PurchaseOrder, actuals []records.LaborActual, forecasts []records.LaborForecast, crafts map[string]records.CraftType) Result {
	poTotals := s.TotalPOForecast(pos)
	laborActuals := s.TotalLaborActuals(actuals)
	rates := s.LaborRatesByCraft(actuals)
	laborFuture := s.FutureLaborCost(forecasts, rates, crafts)

	actualCostToDate := poTotals.TotalInvoiced + laborActuals
	estimateToComplete := poTotals.RemainingCommitments + laborFuture.Total

	result := Result{
		ActualCostToDate:     actualCostToDate,
		EstimateToComplete:   estimateToComplete,
		EstimateAtCompletion: actualCostToDate + estimateToComplete,
		Breakdown: Breakdown{
			POActuals:    poTotals.TotalInvoiced,
			PORemaining:  poTotals.RemainingCommitments,
			POForecasted: poTotals.TotalForecasted,
			LaborActuals: laborActuals,
			LaborFuture:  laborFuture.Total,
		},
	}

	s.logger.Debug("computed project EAC",
		zap.String("op", "forecast.ProjectEAC"),
		zap.Float64("actualCostToDate", result.ActualCostToDate),
		zap.Float64("estimateToComplete", result.EstimateToComplete),
		zap.Float64("estimateAtCompletion", result.EstimateAtCompletion),
	)

	return result
}

// VarianceAtCompletion is the revised contract value minus the estimate at
// completion; positive means the project lands under contract.
func (s *Service) VarianceAtCompletion(revisedContract float64, result Result) float64 {
	return revisedContract - result.EstimateAtCompletion
}

// LaborCategoryForecast forecasts a labor budget category. Labor has no
// separate commitment state: cost realized is cost committed, and the
// forecasted final is actuals plus future labor cost, floored at actuals.
func (s *Service) LaborCategoryForecast(category string, budget float64, actuals []records.LaborActual, forecasts []records.LaborForecast, crafts map[string]records.CraftType) CategoryForecast {
	spent := s.TotalLaborActuals(actuals)
	rates := s.LaborRatesByCraft(actuals)
	future := s.FutureLaborCost(forecasts, rates, crafts)

	forecastedFinal := mathutil.FloorAt(spent+future.Total, spent)
	return CategoryForecast{
		Category:        category,
		Budget:          budget,
		Committed:       spent,
		Actuals:         spent,
		ForecastedFinal: forecastedFinal,
		Variance:        budget - forecastedFinal,
	}
}

// POCategoryForecast forecasts a PO-backed budget category from its orders.
// The forecasted final can never show less than what has been invoiced.
func (s *Service) POCategoryForecast(category string, budget float64, pos []records.PurchaseOrder) CategoryForecast {
	totals := s.TotalPOForecast(pos)

	forecastedFinal := mathutil.FloorAt(totals.TotalForecasted, totals.TotalInvoiced)
	return CategoryForecast{
		Category:        category,
		Budget:          budget,
		Committed:       totals.TotalCommitted,
		Actuals:         totals.TotalInvoiced,
		ForecastedFinal: forecastedFinal,
		Variance:        budget - forecastedFinal,
	}
}

// ThresholdForecast switches estimation policy on spend maturity: while
// committed spend sits below the configured share of the revised contract,
// commitment data is too thin to trust and the forecast is the contract less
// the base margin (a fraction, e.g. 0.15). At or above the threshold the
// committed figure is trusted directly. Both branches floor at spent cost to
// date.
func (s *Service) ThresholdForecast(committed, revisedContract, baseMargin, spent float64) float64 {
	forecast := committed
	if revisedContract > 0 {
		spendRatio := committed / revisedContract
		if spendRatio < s.cfg.SpendThreshold {
			forecast = revisedContract * (1 - baseMargin)
		}
	}
	return mathutil.FloorAt(forecast, spent)
}
