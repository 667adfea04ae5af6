package perdiem

import (
	"fmt"

	"github.com/clachance14/CostTrak-sub001/internal/records"
)

// ValidationResult carries the outcome of a per-diem configuration check.
// Warnings flag suspicious but workable configurations; IsValid is false
// only when the configuration could not be fetched at all, which the caller
// signals by passing a fetch error.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Warnings []string `json:"warnings"`
}

// ValidateConfig checks a project's per-diem configuration. Per diem being
// disabled, both rates at zero, or a rate over the configured daily cap all
// warn; none of them fail the check.
func (c *Calculator) ValidateConfig(projectCfg records.PerDiemConfig, fetchErr error) ValidationResult {
	if fetchErr != nil {
		return ValidationResult{
			IsValid:  false,
			Warnings: []string{fmt.Sprintf("unable to load per-diem configuration: %v", fetchErr)},
		}
	}

	result := ValidationResult{IsValid: true}

	if !projectCfg.Enabled {
		result.Warnings = append(result.Warnings, "per diem is disabled for this project")
	}
	if projectCfg.RateDirect == 0 && projectCfg.RateIndirect == 0 {
		result.Warnings = append(result.Warnings, "both direct and indirect per-diem rates are zero")
	}
	if projectCfg.RateDirect > c.cfg.DailyRateCap {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("direct per-diem rate %.2f exceeds %.2f/day", projectCfg.RateDirect, c.cfg.DailyRateCap))
	}
	if projectCfg.RateIndirect > c.cfg.DailyRateCap {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("indirect per-diem rate %.2f exceeds %.2f/day", projectCfg.RateIndirect, c.cfg.DailyRateCap))
	}

	return result
}
