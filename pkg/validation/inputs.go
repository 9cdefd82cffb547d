package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/consortium-simulator/pkg/consortium"
	"github.com/iwvelando/consortium-simulator/pkg/datetime"
)

// InputError lists every problem found in one input record.
type InputError struct {
	Problems []string
}

func (e *InputError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

// IsInputError reports whether err carries input problems.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p *problems) nonNegative(field string, value float64) {
	if value < 0 {
		p.addf("%s must not be negative, got %v", field, value)
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &InputError{Problems: p}
}

// ValidateSimulationInput checks a SimulationInput the way the simulator
// screens do before running the engine.
func ValidateSimulationInput(in consortium.SimulationInput) error {
	var p problems

	if in.TermMonths <= 0 {
		p.addf("termMonths must be greater than 0, got %d", in.TermMonths)
	}
	p.nonNegative("credit", in.Credit)
	p.nonNegative("adminFeeRate", in.AdminFeeRate)
	p.nonNegative("offeredBidPercent", in.OfferedBidPercent)
	p.nonNegative("embeddedBidPercent", in.EmbeddedBidPercent)
	if in.OfferedBidInstallmentCount < 0 {
		p.addf("offeredBidInstallmentCount must not be negative, got %d", in.OfferedBidInstallmentCount)
	}
	if in.AssemblyBidMonth < 0 {
		p.addf("assemblyBidMonth must not be negative, got %d", in.AssemblyBidMonth)
	}
	if in.EmbeddedBidPercent > in.OfferedBidPercent {
		p.addf("embeddedBidPercent (%v) must not exceed offeredBidPercent (%v)", in.EmbeddedBidPercent, in.OfferedBidPercent)
	}

	return p.err()
}

// ValidateConstructionInput checks a ConstructionInput before simulation.
func ValidateConstructionInput(in consortium.ConstructionInput) error {
	var p problems

	if in.TermMonths <= 0 {
		p.addf("termMonths must be greater than 0, got %d", in.TermMonths)
	}
	p.nonNegative("credit", in.Credit)
	p.nonNegative("adminFeeRate", in.AdminFeeRate)
	p.nonNegative("inccRate", in.INCCRate)
	p.nonNegative("offeredBidPercent", in.OfferedBidPercent)
	p.nonNegative("embeddedBidPercent", in.EmbeddedBidPercent)
	if in.ContemplationMonth < 0 {
		p.addf("contemplationMonth must not be negative, got %d", in.ContemplationMonth)
	}
	if in.EmbeddedBidPercent > in.OfferedBidPercent {
		p.addf("embeddedBidPercent (%v) must not exceed offeredBidPercent (%v)", in.EmbeddedBidPercent, in.OfferedBidPercent)
	}
	if in.StartDate != "" {
		if err := datetime.ValidateDate(in.StartDate); err != nil {
			p.addf("startDate: %v", err)
		}
	}

	return p.err()
}
