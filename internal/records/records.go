// Package records defines the input record types the forecasting engine
// consumes. All records arrive already fetched and validated by upstream
// collaborators (spreadsheet ingestion, the persistence layer); the engine
// treats them as read-only value types.
package records

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clachance14/CostTrak-sub001/pkg/fallback"
	"github.com/clachance14/CostTrak-sub001/pkg/mathutil"
)

// CraftCategory classifies labor for rate defaults and WBS routing.
type CraftCategory string

const (
	CraftDirect   CraftCategory = "direct"
	CraftIndirect CraftCategory = "indirect"
	CraftStaff    CraftCategory = "staff"
)

// NormalizeCraftCategory maps an unknown or empty category to direct, the
// documented default bucket for unclassified labor.
func NormalizeCraftCategory(c CraftCategory) CraftCategory {
	switch c {
	case CraftDirect, CraftIndirect, CraftStaff:
		return c
	default:
		return CraftDirect
	}
}

// EmployeeType classifies per-diem recipients. Staff draws no per diem.
type EmployeeType string

const (
	EmployeeDirect   EmployeeType = "Direct"
	EmployeeIndirect EmployeeType = "Indirect"
)

// CategoryBudget holds one cost category's slice of a discipline budget.
type CategoryBudget struct {
	Manhours   float64 `yaml:"manhours"`
	Value      float64 `yaml:"value"`
	Percentage float64 `yaml:"percentage"`
}

// AddOns holds the add-on costs a discipline budget carries on top of its
// indirect labor: these fold into the Indirect Labor WBS node.
type AddOns struct {
	Taxes       float64 `yaml:"taxes"`
	PerDiem     float64 `yaml:"perDiem"`
	Scaffolding float64 `yaml:"scaffolding"`
	Risk        float64 `yaml:"risk"`
}

// Total sums the add-on components.
func (a AddOns) Total() float64 {
	return a.Taxes + a.PerDiem + a.Scaffolding + a.Risk
}

// BudgetDiscipline is one construction discipline's budget as ingested from
// the estimate spreadsheet.
type BudgetDiscipline struct {
	Name          string         `yaml:"name"`
	DirectLabor   CategoryBudget `yaml:"directLabor"`
	IndirectLabor CategoryBudget `yaml:"indirectLabor"`
	Materials     CategoryBudget `yaml:"materials"`
	Equipment     CategoryBudget `yaml:"equipment"`
	Subcontracts  CategoryBudget `yaml:"subcontracts"`
	AddOns        AddOns         `yaml:"addOns"`
}

// IsAggregateRow reports whether the discipline row is a spreadsheet
// aggregate (ALL LABOR, DISCIPLINE TOTALS) rather than a real line item.
func (d BudgetDiscipline) IsAggregateRow() bool {
	switch normalizeName(d.Name) {
	case "ALL LABOR", "DISCIPLINE TOTALS":
		return true
	}
	return false
}

// PurchaseOrder is a committed vendor obligation.
type PurchaseOrder struct {
	ID                  uuid.UUID `yaml:"id"`
	PONumber            string    `yaml:"poNumber"`
	Vendor              string    `yaml:"vendor"`
	BudgetCategory      string    `yaml:"budgetCategory"`
	CommittedAmount     float64   `yaml:"committedAmount"`
	InvoicedAmount      float64   `yaml:"invoicedAmount"`
	ForecastAmount      *float64  `yaml:"forecastAmount"`
	ForecastedFinalCost *float64  `yaml:"forecastedFinalCost"`
}

// ChangeOrderStatus tracks a change order through its approval lifecycle.
type ChangeOrderStatus string

const (
	ChangeOrderPending  ChangeOrderStatus = "pending"
	ChangeOrderApproved ChangeOrderStatus = "approved"
	ChangeOrderRejected ChangeOrderStatus = "rejected"
)

// ChangeOrder is a contract modification; only approved orders move the
// revised contract value.
type ChangeOrder struct {
	ID     uuid.UUID         `yaml:"id"`
	Number string            `yaml:"number"`
	Amount float64           `yaml:"amount"`
	Status ChangeOrderStatus `yaml:"status"`
}

// ApprovedChangeOrderTotal sums the approved change orders.
func ApprovedChangeOrderTotal(orders []ChangeOrder) float64 {
	total := 0.0
	for _, co := range orders {
		if co.Status == ChangeOrderApproved {
			total += co.Amount
		}
	}
	return total
}

// CraftType is the labor classification lookup row.
type CraftType struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Category    CraftCategory `yaml:"category"`
	DefaultRate *float64      `yaml:"defaultRate"`
}

// LaborActual is one week/craft-type labor record. TotalCost is unburdened;
// TotalCostWithBurden, when present, is the canonical actual cost.
type LaborActual struct {
	CraftTypeID         string    `yaml:"craftTypeId"`
	WeekEnding          time.Time `yaml:"weekEnding"`
	TotalHours          float64   `yaml:"totalHours"`
	TotalCost           float64   `yaml:"totalCost"`
	TotalCostWithBurden *float64  `yaml:"totalCostWithBurden"`
}

// EffectiveCost returns the burdened cost when present, otherwise the
// unburdened cost. Burden-inclusive cost is canonical throughout the engine.
func (a LaborActual) EffectiveCost() float64 {
	return fallback.Coalesce(a.TotalCost, a.TotalCostWithBurden)
}

// LaborForecast is one future week/craft-type headcount plan.
type LaborForecast struct {
	CraftTypeID         string    `yaml:"craftTypeId"`
	WeekEnding          time.Time `yaml:"weekEnding"`
	ForecastedHeadcount float64   `yaml:"forecastedHeadcount"`
	WeeklyHours         *float64  `yaml:"weeklyHours"`
}

// PerDiemCost is one employee/work-day per-diem charge. Amount is derived
// from rate and days, never set independently.
type PerDiemCost struct {
	ID           uuid.UUID    `yaml:"id"`
	EmployeeID   string       `yaml:"employeeId"`
	EmployeeType EmployeeType `yaml:"employeeType"`
	WorkDate     time.Time    `yaml:"workDate"`
	RateApplied  float64      `yaml:"rateApplied"`
	DaysWorked   float64      `yaml:"daysWorked"`
	Amount       float64      `yaml:"amount"`
}

// Reconciled reports whether the row's amount matches rate times days to the
// cent, the invariant the recalculation procedure maintains server-side.
func (p PerDiemCost) Reconciled() bool {
	return mathutil.WithinTolerance(p.Amount, p.RateApplied*p.DaysWorked, 0.01)
}

// PerDiemConfig is a project's per-diem configuration.
type PerDiemConfig struct {
	Enabled      bool    `yaml:"enabled"`
	RateDirect   float64 `yaml:"rateDirect"`
	RateIndirect float64 `yaml:"rateIndirect"`
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
