// Package labor aggregates labor wages, burden, and per-diem costs into the
// direct/indirect/staff category totals the forecasting service consumes.
package labor

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/clachance14/CostTrak-sub001/internal/config"
	"github.com/clachance14/CostTrak-sub001/internal/records"
	"github.com/clachance14/CostTrak-sub001/pkg/datetime"
)

// CategoryCost holds one labor category's slice of the project cost.
type CategoryCost struct {
	LaborCost float64 `json:"laborCost"`
	PerDiem   float64 `json:"perDiem"`
	Total     float64 `json:"total"`
}

// CostSummary is the project-level labor cost rollup. Staff carries no
// per-diem bucket: only direct and indirect employees draw per diem.
type CostSummary struct {
	Direct         CategoryCost `json:"direct"`
	Indirect       CategoryCost `json:"indirect"`
	Staff          CategoryCost `json:"staff"`
	TotalLaborCost float64      `json:"totalLaborCost"`
	TotalPerDiem   float64      `json:"totalPerDiem"`
	TotalCost      float64      `json:"totalCost"`
}

// WeeklyCost is one merged weekly row of labor and per-diem cost, keyed by
// week-ending date.
type WeeklyCost struct {
	WeekEnding time.Time `json:"weekEnding"`
	LaborHours float64   `json:"laborHours"`
	LaborCost  float64   `json:"laborCost"`
	PerDiem    float64   `json:"perDiem"`
	Total      float64   `json:"total"`
}

// Calculator aggregates labor actuals and per-diem costs.
type Calculator struct {
	cfg    config.EstimationConfig
	logger *zap.Logger
}

// NewCalculator creates a new calculator with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewCalculator(cfg config.EstimationConfig, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{cfg: cfg, logger: logger}
}

// ProjectCosts aggregates labor actuals (grouped by craft category, unknown
// categories defaulting to direct) and per-diem costs (grouped by employee
// type) into parallel category totals. Empty inputs aggregate to zeros; the
// caller treats a failed fetch as an empty slice.
func (c *Calculator) ProjectCosts(actuals []records.LaborActual, perDiems []records.PerDiemCost, crafts map[string]records.CraftType) CostSummary {
	var summary CostSummary

	for _, a := range actuals {
		cost := a.EffectiveCost()
		switch craftCategory(a.CraftTypeID, crafts) {
		case records.CraftIndirect:
			summary.Indirect.LaborCost += cost
		case records.CraftStaff:
			summary.Staff.LaborCost += cost
		default:
			summary.Direct.LaborCost += cost
		}
		summary.TotalLaborCost += cost
	}

	for _, p := range perDiems {
		switch p.EmployeeType {
		case records.EmployeeIndirect:
			summary.Indirect.PerDiem += p.Amount
		default:
			summary.Direct.PerDiem += p.Amount
		}
		summary.TotalPerDiem += p.Amount
	}

	summary.Direct.Total = summary.Direct.LaborCost + summary.Direct.PerDiem
	summary.Indirect.Total = summary.Indirect.LaborCost + summary.Indirect.PerDiem
	summary.Staff.Total = summary.Staff.LaborCost + summary.Staff.PerDiem
	summary.TotalCost = summary.TotalLaborCost + summary.TotalPerDiem

	c.logger.Debug("aggregated project labor costs",
		zap.String("op", "labor.ProjectCosts"),
		zap.Int("actuals", len(actuals)),
		zap.Int("perDiems", len(perDiems)),
		zap.Float64("totalCost", summary.TotalCost),
	)

	return summary
}

// WeeklyCosts buckets labor actuals by their recorded week ending and
// per-diem rows by the Sunday on or after their work date, merging both into
// one row per week. Rows come back sorted by week ending; a non-nil start or
// end bounds the result inclusively.
func (c *Calculator) WeeklyCosts(actuals []records.LaborActual, perDiems []records.PerDiemCost, start, end *time.Time) []WeeklyCost {
	weeks := make(map[time.Time]*WeeklyCost)

	row := func(week time.Time) *WeeklyCost {
		week = datetime.TruncateToDay(week)
		if r, ok := weeks[week]; ok {
			return r
		}
		r := &WeeklyCost{WeekEnding: week}
		weeks[week] = r
		return r
	}

	for _, a := range actuals {
		r := row(a.WeekEnding)
		r.LaborHours += a.TotalHours
		r.LaborCost += a.EffectiveCost()
	}

	for _, p := range perDiems {
		r := row(datetime.WeekEndingSunday(p.WorkDate))
		r.PerDiem += p.Amount
	}

	results := make([]WeeklyCost, 0, len(weeks))
	for _, r := range weeks {
		if start != nil && r.WeekEnding.Before(datetime.TruncateToDay(*start)) {
			continue
		}
		if end != nil && r.WeekEnding.After(datetime.TruncateToDay(*end)) {
			continue
		}
		r.Total = r.LaborCost + r.PerDiem
		results = append(results, *r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].WeekEnding.Before(results[j].WeekEnding)
	})

	return results
}

// BurdenedCost computes the fully loaded cost of one week of work: straight
// time plus overtime at the configured multiplier, with burden applied to
// straight-time wages only.
func (c *Calculator) BurdenedCost(stHours, stRate, otHours float64) float64 {
	stWages := stHours * stRate
	otWages := otHours * stRate * c.cfg.OvertimeMultiplier
	burden := stWages * c.cfg.BurdenRate
	return stWages + otWages + burden
}

// craftCategory resolves a craft type id to its category, defaulting missing
// or unknown crafts to direct.
func craftCategory(craftTypeID string, crafts map[string]records.CraftType) records.CraftCategory {
	if ct, ok := crafts[craftTypeID]; ok {
		return records.NormalizeCraftCategory(ct.Category)
	}
	return records.CraftDirect
}
