// Package output provides utilities for formatting and displaying forecast
// reports.
package output

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/clachance14/CostTrak-sub001/internal/forecast"
	"github.com/clachance14/CostTrak-sub001/internal/labor"
	"github.com/clachance14/CostTrak-sub001/internal/perdiem"
	"github.com/clachance14/CostTrak-sub001/internal/wbs"
	"github.com/clachance14/CostTrak-sub001/pkg/constants"
)

// Report bundles one project's computed results for rendering.
type Report struct {
	ProjectName          string                      `json:"projectName"`
	RevisedContract      float64                     `json:"revisedContract"`
	Forecast             forecast.Result             `json:"forecast"`
	VarianceAtCompletion float64                     `json:"varianceAtCompletion"`
	Categories           []forecast.CategoryForecast `json:"categories"`
	Labor                labor.CostSummary           `json:"labor"`
	PerDiem              perdiem.Summary             `json:"perDiem"`
	WBS                  []wbs.Node                  `json:"wbs,omitempty"`
	Warnings             []string                    `json:"warnings,omitempty"`
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report Report) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Forecast for %s ---\n", report.ProjectName)
	_, _ = p.Printf("Revised contract (BAC)   $%.2f\n", report.RevisedContract)
	_, _ = p.Printf("Actual cost to date      $%.2f\n", report.Forecast.ActualCostToDate)
	_, _ = p.Printf("Estimate to complete     $%.2f\n", report.Forecast.EstimateToComplete)
	_, _ = p.Printf("Estimate at completion   $%.2f\n", report.Forecast.EstimateAtCompletion)
	_, _ = p.Printf("Variance at completion   $%.2f\n", report.VarianceAtCompletion)

	b := report.Forecast.Breakdown
	fmt.Printf("\nBreakdown\n")
	_, _ = p.Printf("  PO invoiced            $%.2f\n", b.POActuals)
	_, _ = p.Printf("  PO remaining           $%.2f\n", b.PORemaining)
	_, _ = p.Printf("  PO forecasted          $%.2f\n", b.POForecasted)
	_, _ = p.Printf("  Labor actuals          $%.2f\n", b.LaborActuals)
	_, _ = p.Printf("  Labor future           $%.2f\n", b.LaborFuture)

	if len(report.Categories) > 0 {
		fmt.Printf("\nCategory        | Budget        | Committed     | Actuals       | Forecast      | Variance\n")
		fmt.Printf("________        | ______        | _________     | _______       | ________      | ________\n")
		for _, c := range report.Categories {
			_, _ = p.Printf("%-15s | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
				c.Category, c.Budget, c.Committed, c.Actuals, c.ForecastedFinal, c.Variance)
		}
	}

	fmt.Printf("\nLabor cost               ")
	_, _ = p.Printf("$%.2f (per diem $%.2f)\n", report.Labor.TotalCost, report.Labor.TotalPerDiem)
	_, _ = p.Printf("Per-diem employees       %d over %.0f days\n", report.PerDiem.EmployeeCount, report.PerDiem.DaysWorked)

	if len(report.WBS) > 0 {
		fmt.Printf("\nWBS (%d nodes)\n", len(report.WBS))
		for _, n := range report.WBS {
			_, _ = p.Printf("%s%-14s %-30s $%.2f\n", strings.Repeat("  ", n.Level-1), n.Code, n.Description, n.BudgetTotal)
		}
	}

	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}

// CsvFormat outputs the category forecast lines in comma-separated value
// format.
func CsvFormat(report Report) {
	fmt.Printf(`"category","budget","committed","actuals","forecastedFinal","variance"`)
	fmt.Printf("\n")
	for _, c := range report.Categories {
		fmt.Printf(`"%s","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			c.Category, c.Budget, c.Committed, c.Actuals, c.ForecastedFinal, c.Variance)
		fmt.Printf("\n")
	}
	fmt.Printf(`"TOTAL","%.2f","","%.2f","%.2f","%.2f"`,
		report.RevisedContract, report.Forecast.ActualCostToDate,
		report.Forecast.EstimateAtCompletion, report.VarianceAtCompletion)
	fmt.Printf("\n")
}

// ValidateFormat checks that an output format name is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("unsupported output format %q, expected %s, %s, or %s",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON)
}

// JSONFormat outputs the whole report as indented JSON.
func JSONFormat(report Report) error {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
