package validation

import (
	"fmt"

	"github.com/iwvelando/consortium-simulator/pkg/consortium"
	"github.com/iwvelando/consortium-simulator/pkg/constants"
)

// ValidateContemplation warns when the contemplation point falls after the
// end of the plan; the engine still runs, with a degenerate remaining schedule.
func ValidateContemplation(name string, contemplationMonth, termMonths int) string {
	if termMonths > 0 && contemplationMonth > termMonths {
		return fmt.Sprintf("Scenario '%s' is contemplated at month %d, after the %d-month term",
			name, contemplationMonth, termMonths)
	}
	return ""
}

// ValidateBidCoverage warns when the offered bid alone would settle the whole
// plan, which yields a negative remaining installment count.
func ValidateBidCoverage(name string, offeredBidPercent float64, offeredBidCount, termMonths int) string {
	if offeredBidPercent >= constants.PercentageMultiplier {
		return fmt.Sprintf("Scenario '%s' offers a bid of %v%% of the credit", name, offeredBidPercent)
	}
	if termMonths > 0 && offeredBidCount >= termMonths {
		return fmt.Sprintf("Scenario '%s' offers %d installments as a bid on a %d-month term",
			name, offeredBidCount, termMonths)
	}
	return ""
}

// ConfigValidator collects warnings over every active scenario.
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ScenarioConfig is the part of a scenario the validator inspects. Exactly
// one of Simulation and Construction is set.
type ScenarioConfig struct {
	Name         string
	Active       bool
	Simulation   *consortium.SimulationInput
	Construction *consortium.ConstructionInput
}

// ValidateAll validates every active scenario and returns warnings.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, scenario := range cv.Scenarios {
		if !scenario.Active {
			continue
		}

		switch {
		case scenario.Simulation != nil:
			in := scenario.Simulation
			if w := ValidateContemplation(scenario.Name, in.AssemblyBidMonth, in.TermMonths); w != "" {
				warnings = append(warnings, w)
			}
			if w := ValidateBidCoverage(scenario.Name, in.OfferedBidPercent, in.OfferedBidInstallmentCount, in.TermMonths); w != "" {
				warnings = append(warnings, w)
			}
		case scenario.Construction != nil:
			in := scenario.Construction
			month := in.ContemplationMonth
			if in.ContemplationUnit == consortium.UnitYears {
				month *= constants.MonthsPerYear
			}
			if w := ValidateContemplation(scenario.Name, month, in.TermMonths); w != "" {
				warnings = append(warnings, w)
			}
			if w := ValidateBidCoverage(scenario.Name, in.OfferedBidPercent, 0, in.TermMonths); w != "" {
				warnings = append(warnings, w)
			}
		default:
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no inputs", scenario.Name))
		}
	}

	return warnings
}
