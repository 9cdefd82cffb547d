// Package scenario runs the configured scenarios through the simulation
// engine and the alternatives comparison.
package scenario

import (
	"fmt"

	"github.com/iwvelando/consortium-simulator/internal/config"
	"github.com/iwvelando/consortium-simulator/pkg/alternatives"
	"github.com/iwvelando/consortium-simulator/pkg/consortium"
	"github.com/iwvelando/consortium-simulator/pkg/validation"
	"go.uber.org/zap"
)

// Result holds the outcome of one scenario. Exactly one of Simulation,
// Construction and Comparison is set, according to Kind.
type Result struct {
	Name         string
	Kind         config.Kind
	Simulation   *consortium.SimulationOutput
	Construction *consortium.ConstructionOutput
	Comparison   *alternatives.Comparison
	Notes        []string
}

// Run processes every active scenario in order. An invalid scenario aborts
// the run.
func Run(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Result
	for _, s := range conf.Scenarios {
		if !s.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", s.Name),
				zap.String("op", "scenario.Run"),
			)
			continue
		}

		result, err := runOne(logger, s, conf.Alternatives)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		logger.Debug(fmt.Sprintf("computed %s scenario %s", result.Kind, s.Name),
			zap.String("op", "scenario.Run"),
		)
		results = append(results, result)
	}

	return results, nil
}

func runOne(logger *zap.Logger, s config.Scenario, rates alternatives.Rates) (Result, error) {
	result := Result{Name: s.Name, Kind: s.ScenarioKind()}

	switch result.Kind {
	case config.KindSimulation:
		in, err := s.SimulationInput()
		if err != nil {
			return result, err
		}
		if err := validation.ValidateSimulationInput(in); err != nil {
			return result, err
		}
		out, err := consortium.Calculate(in)
		if err != nil {
			return result, err
		}
		result.Simulation = out
		if out.RemainingInstallmentCount < 0 {
			result.Notes = append(result.Notes, fmt.Sprintf("bid covers %d installments more than the term", -out.RemainingInstallmentCount))
		}

	case config.KindConstruction:
		in, err := s.ConstructionInput()
		if err != nil {
			return result, err
		}
		if err := validation.ValidateConstructionInput(in); err != nil {
			return result, err
		}
		out, err := consortium.CalculateConstruction(in)
		if err != nil {
			return result, err
		}
		result.Construction = out
		if len(out.AdjustmentHistory) == 0 {
			result.Notes = append(result.Notes, "contemplated before the first INCC adjustment")
		}

	case config.KindComparison:
		in, err := s.ComparisonInput(rates)
		if err != nil {
			return result, err
		}
		comparison := alternatives.Compare(in)
		if s.Schedule {
			schedule, err := alternatives.NewScheduleGenerator(logger).ForComparison(in, s.StartDate)
			if err != nil {
				return result, err
			}
			comparison.FinancingSchedule = schedule
		}
		result.Comparison = &comparison

	default:
		return result, fmt.Errorf("unknown scenario kind %q", s.Kind)
	}

	return result, nil
}
