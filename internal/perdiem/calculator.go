// Package perdiem computes, summarizes, and validates per-diem costs from
// employee/day records and produces the trend series the dashboards plot.
package perdiem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/clachance14/CostTrak-sub001/internal/config"
	"github.com/clachance14/CostTrak-sub001/internal/records"
	"github.com/clachance14/CostTrak-sub001/pkg/datetime"
)

// Summary is the project-level per-diem rollup.
type Summary struct {
	TotalDirect   float64 `json:"totalDirect"`
	TotalIndirect float64 `json:"totalIndirect"`
	Total         float64 `json:"total"`
	DaysWorked    float64 `json:"daysWorked"`
	EmployeeCount int     `json:"employeeCount"`
	RecordCount   int     `json:"recordCount"`
}

// PeriodTotals is one aggregation bucket, keyed by pay-period ending date.
type PeriodTotals struct {
	PeriodEnding  time.Time `json:"periodEnding"`
	Direct        float64   `json:"direct"`
	Indirect      float64   `json:"indirect"`
	Total         float64   `json:"total"`
	EmployeeCount int       `json:"employeeCount"`
}

// TrendPoint is one row of a weekly or monthly trend series.
type TrendPoint struct {
	Period        string  `json:"period"`
	Direct        float64 `json:"direct"`
	Indirect      float64 `json:"indirect"`
	Total         float64 `json:"total"`
	EmployeeCount int     `json:"employeeCount"`
}

// Interval selects the trend bucketing.
type Interval string

const (
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// Filter narrows a cost listing. Nil fields match everything.
type Filter struct {
	EmployeeType *records.EmployeeType
	Start        *time.Time
	End          *time.Time
}

// Recalculator is the server-side recalculation capability (a stored
// procedure upstream). It is opaque to this engine: persistence of the
// recomputed rows is the collaborator's responsibility.
type Recalculator interface {
	RecalculateProjectPerDiem(ctx context.Context, projectID string) error
}

// Calculator computes per-diem aggregates and validates configuration.
type Calculator struct {
	cfg    config.PerDiemConfig
	recalc Recalculator
	logger *zap.Logger
}

// NewCalculator creates a new calculator with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
// recalc may be nil when the caller has no recalculation capability.
func NewCalculator(cfg config.PerDiemConfig, recalc Recalculator, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{cfg: cfg, recalc: recalc, logger: logger}
}

// Summarize rolls a project's per-diem rows into direct/indirect totals with
// a distinct-employee count.
func (c *Calculator) Summarize(costs []records.PerDiemCost) Summary {
	summary := Summary{RecordCount: len(costs)}
	employees := make(map[string]struct{})

	for _, p := range costs {
		switch p.EmployeeType {
		case records.EmployeeIndirect:
			summary.TotalIndirect += p.Amount
		default:
			summary.TotalDirect += p.Amount
		}
		summary.Total += p.Amount
		summary.DaysWorked += p.DaysWorked
		if p.EmployeeID != "" {
			employees[p.EmployeeID] = struct{}{}
		}
	}
	summary.EmployeeCount = len(employees)

	return summary
}

// Filter returns the rows matching the filter, preserving input order.
func (c *Calculator) Filter(costs []records.PerDiemCost, f Filter) []records.PerDiemCost {
	var matched []records.PerDiemCost
	for _, p := range costs {
		if f.EmployeeType != nil && p.EmployeeType != *f.EmployeeType {
			continue
		}
		if f.Start != nil && p.WorkDate.Before(datetime.TruncateToDay(*f.Start)) {
			continue
		}
		if f.End != nil && p.WorkDate.After(*f.End) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// ByPayPeriod buckets rows into Sunday-anchored pay periods, sorted by
// period ending.
func (c *Calculator) ByPayPeriod(costs []records.PerDiemCost) []PeriodTotals {
	type bucket struct {
		totals    PeriodTotals
		employees map[string]struct{}
	}
	buckets := make(map[time.Time]*bucket)

	for _, p := range costs {
		ending := datetime.TruncateToDay(datetime.WeekEndingSunday(p.WorkDate))
		b, ok := buckets[ending]
		if !ok {
			b = &bucket{totals: PeriodTotals{PeriodEnding: ending}, employees: make(map[string]struct{})}
			buckets[ending] = b
		}
		accumulate(&b.totals, p)
		if p.EmployeeID != "" {
			b.employees[p.EmployeeID] = struct{}{}
		}
	}

	results := make([]PeriodTotals, 0, len(buckets))
	for _, b := range buckets {
		b.totals.EmployeeCount = len(b.employees)
		results = append(results, b.totals)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].PeriodEnding.Before(results[j].PeriodEnding)
	})
	return results
}

// RangeTotals summarizes the rows falling inside [start, end] inclusive.
func (c *Calculator) RangeTotals(costs []records.PerDiemCost, start, end time.Time) Summary {
	return c.Summarize(c.Filter(costs, Filter{Start: &start, End: &end}))
}

// Trend produces one row per period with direct/indirect/total amounts and a
// distinct-employee count. Weekly keys anchor to the Monday of the work
// week; monthly keys are YYYY-MM. Rows come back sorted by period key.
func (c *Calculator) Trend(costs []records.PerDiemCost, interval Interval) []TrendPoint {
	type bucket struct {
		point     TrendPoint
		employees map[string]struct{}
	}
	buckets := make(map[string]*bucket)

	for _, p := range costs {
		var key string
		switch interval {
		case IntervalMonthly:
			key = datetime.MonthKey(p.WorkDate)
		default:
			key = datetime.WeekStartMonday(p.WorkDate).Format(datetime.WorkDateLayout)
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{point: TrendPoint{Period: key}, employees: make(map[string]struct{})}
			buckets[key] = b
		}
		switch p.EmployeeType {
		case records.EmployeeIndirect:
			b.point.Indirect += p.Amount
		default:
			b.point.Direct += p.Amount
		}
		b.point.Total += p.Amount
		if p.EmployeeID != "" {
			b.employees[p.EmployeeID] = struct{}{}
		}
	}

	results := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		b.point.EmployeeCount = len(b.employees)
		results = append(results, b.point)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Period < results[j].Period
	})
	return results
}

// Recalculate triggers the server-side per-diem recalculation for a project.
func (c *Calculator) Recalculate(ctx context.Context, projectID string) error {
	if c.recalc == nil {
		return fmt.Errorf("no recalculator configured")
	}
	c.logger.Debug("triggering per-diem recalculation",
		zap.String("op", "perdiem.Recalculate"),
		zap.String("project", projectID),
	)
	if err := c.recalc.RecalculateProjectPerDiem(ctx, projectID); err != nil {
		return fmt.Errorf("failed to recalculate per diem for project %s: %w", projectID, err)
	}
	return nil
}

// Unreconciled returns the rows whose amount does not match rate times days,
// a sign the server-side recalculation has not run since an edit.
func (c *Calculator) Unreconciled(costs []records.PerDiemCost) []records.PerDiemCost {
	var rows []records.PerDiemCost
	for _, p := range costs {
		if !p.Reconciled() {
			rows = append(rows, p)
		}
	}
	return rows
}

func accumulate(t *PeriodTotals, p records.PerDiemCost) {
	switch p.EmployeeType {
	case records.EmployeeIndirect:
		t.Indirect += p.Amount
	default:
		t.Direct += p.Amount
	}
	t.Total += p.Amount
}
