package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/consortium-simulator/pkg/alternatives"
	"github.com/iwvelando/consortium-simulator/pkg/consortium"
)

// Kind is the type of computation a scenario runs.
type Kind string

const (
	KindSimulation   Kind = "simulation"
	KindConstruction Kind = "construction"
	KindComparison   Kind = "comparison"
)

// Scenario holds the inputs of one named simulation. Enumerated fields are
// kept as text in the file and parsed on conversion.
type Scenario struct {
	Name   string
	Active bool
	Kind   string

	Credit                     float64
	TermMonths                 int
	AdminFeeRate               float64
	ReductionPlan              string
	Insurance                  string
	OfferedBidPercent          float64
	EmbeddedBidPercent         float64
	OfferedBidInstallmentCount int
	BidDilution                string
	AssemblyBidMonth           int

	// Construction plans.
	INCCRate            float64
	AdjustmentCycle     string
	ContemplationMonth  int
	ContemplationUnit   string
	AppreciationPercent *float64
	StartDate           string

	// Comparisons.
	ReserveFundPercent   float64
	BidKind              string
	EmbeddedSharePercent float64
	FinancingRatePercent float64
	DownPaymentPercent   float64
	// Schedule adds the month-by-month financing schedule, dated from
	// StartDate when set.
	Schedule bool
}

// ScenarioKind returns the normalised kind; an empty kind is a simulation.
func (s Scenario) ScenarioKind() Kind {
	kind := strings.ToLower(strings.TrimSpace(s.Kind))
	if kind == "" {
		return KindSimulation
	}
	return Kind(kind)
}

// SimulationInput converts the scenario into engine input.
func (s Scenario) SimulationInput() (consortium.SimulationInput, error) {
	plan, insurance, dilution, err := s.parseCommon()
	if err != nil {
		return consortium.SimulationInput{}, err
	}

	return consortium.SimulationInput{
		Credit:                     s.Credit,
		TermMonths:                 s.TermMonths,
		AdminFeeRate:               s.AdminFeeRate,
		ReductionPlan:              plan,
		InsuranceKind:              insurance,
		OfferedBidPercent:          s.OfferedBidPercent,
		EmbeddedBidPercent:         s.EmbeddedBidPercent,
		OfferedBidInstallmentCount: s.OfferedBidInstallmentCount,
		BidDilutionMode:            dilution,
		AssemblyBidMonth:           s.AssemblyBidMonth,
	}, nil
}

// ConstructionInput converts the scenario into construction-plan input.
func (s Scenario) ConstructionInput() (consortium.ConstructionInput, error) {
	plan, insurance, dilution, err := s.parseCommon()
	if err != nil {
		return consortium.ConstructionInput{}, err
	}
	cycle, err := consortium.ParseAdjustmentCycle(s.AdjustmentCycle)
	if err != nil {
		return consortium.ConstructionInput{}, err
	}
	unit, err := consortium.ParseContemplationUnit(s.ContemplationUnit)
	if err != nil {
		return consortium.ConstructionInput{}, err
	}

	return consortium.ConstructionInput{
		Credit:              s.Credit,
		TermMonths:          s.TermMonths,
		AdminFeeRate:        s.AdminFeeRate,
		INCCRate:            s.INCCRate,
		AdjustmentCycle:     cycle,
		ContemplationMonth:  s.ContemplationMonth,
		ContemplationUnit:   unit,
		ReductionPlan:       plan,
		InsuranceKind:       insurance,
		OfferedBidPercent:   s.OfferedBidPercent,
		EmbeddedBidPercent:  s.EmbeddedBidPercent,
		BidDilutionMode:     dilution,
		AppreciationPercent: s.AppreciationPercent,
		StartDate:           s.StartDate,
	}, nil
}

// ComparisonInput converts the scenario into an alternatives comparison,
// using rates for the money-at-rest yields.
func (s Scenario) ComparisonInput(rates alternatives.Rates) (alternatives.ComparisonInput, error) {
	kind, err := alternatives.ParseBidKind(s.BidKind)
	if err != nil {
		return alternatives.ComparisonInput{}, err
	}
	if s.TermMonths <= 0 {
		return alternatives.ComparisonInput{}, fmt.Errorf("termMonths must be greater than 0, got %d", s.TermMonths)
	}

	return alternatives.ComparisonInput{
		Value:                s.Credit,
		TermMonths:           s.TermMonths,
		AdminFeePercent:      s.AdminFeeRate,
		ReserveFundPercent:   s.ReserveFundPercent,
		BidPercent:           s.OfferedBidPercent,
		BidKind:              kind,
		EmbeddedSharePercent: s.EmbeddedSharePercent,
		FinancingRatePercent: s.FinancingRatePercent,
		DownPaymentPercent:   s.DownPaymentPercent,
		Rates:                rates,
	}, nil
}

func (s Scenario) parseCommon() (consortium.ReductionPlan, consortium.InsuranceKind, consortium.DilutionMode, error) {
	plan, err := consortium.ParseReductionPlan(s.ReductionPlan)
	if err != nil {
		return 0, 0, 0, err
	}
	insurance, err := consortium.ParseInsuranceKind(s.Insurance)
	if err != nil {
		return 0, 0, 0, err
	}
	dilution, err := consortium.ParseDilutionMode(s.BidDilution)
	if err != nil {
		return 0, 0, 0, err
	}
	return plan, insurance, dilution, nil
}
