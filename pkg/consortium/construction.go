package consortium

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/iwvelando/consortium-simulator/pkg/constants"
	"github.com/iwvelando/consortium-simulator/pkg/datetime"
	"github.com/iwvelando/consortium-simulator/pkg/mathutil"
)

// ErrInvalidTerm is returned by CalculateConstruction when the term is not
// positive.
var ErrInvalidTerm = errors.New("consortium: term must be greater than 0")

// ConstructionInput describes a construction-plan consortium whose credit is
// readjusted by the INCC index until contemplation.
type ConstructionInput struct {
	Credit             float64           `json:"credit"`
	TermMonths         int               `json:"termMonths"`
	AdminFeeRate       float64           `json:"adminFeeRate"`
	INCCRate           float64           `json:"inccRate"`
	AdjustmentCycle    AdjustmentCycle   `json:"adjustmentCycle"`
	ContemplationMonth int               `json:"contemplationMonth"`
	ContemplationUnit  ContemplationUnit `json:"contemplationUnit,omitempty"`
	ReductionPlan      ReductionPlan     `json:"reductionPlan"`
	InsuranceKind      InsuranceKind     `json:"insuranceKind"`
	OfferedBidPercent  float64           `json:"offeredBidPercent"`
	EmbeddedBidPercent float64           `json:"embeddedBidPercent"`
	BidDilutionMode    DilutionMode      `json:"bidDilutionMode"`
	// AppreciationPercent enables the valuation figures when set.
	AppreciationPercent *float64 `json:"appreciationPercent,omitempty"`
	// StartDate (YYYY-MM) dates the adjustment history when set.
	StartDate string `json:"startDate,omitempty"`
}

// Adjustment is one INCC readjustment of the credit.
type Adjustment struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
	Date  string  `json:"date,omitempty"`
}

// ConstructionOutput is the result of a construction-plan simulation.
type ConstructionOutput struct {
	BaseInstallment    float64         `json:"baseInstallment"`
	TotalCost          float64         `json:"totalCost"`
	AdjustedCredit     float64         `json:"adjustedCredit"`
	NewInstallment     float64         `json:"newInstallment"`
	ContemplationMonth int             `json:"contemplationMonth"`
	AdjustmentCycle    AdjustmentCycle `json:"adjustmentCycle"`
	AdjustmentHistory  []Adjustment    `json:"adjustmentHistory"`
	// Simulation holds the post-contemplation figures computed on the
	// adjusted credit.
	Simulation          SimulationOutput `json:"simulation"`
	ValuationGain       *float64         `json:"valuationGain,omitempty"`
	CreditPlusValuation *float64         `json:"creditPlusValuation,omitempty"`
}

// Adjustments yields every INCC readjustment of credit over the first months
// months: at each multiple of the cycle length the running value grows by
// inccRate percent. The sequence restarts from credit on every iteration.
func Adjustments(credit, inccRate float64, months int, cycle AdjustmentCycle) iter.Seq[Adjustment] {
	return func(yield func(Adjustment) bool) {
		value := credit
		step := cycle.Months()
		for month := 1; month <= months; month++ {
			if month%step != 0 {
				continue
			}
			value *= 1 + mathutil.PercentToDecimal(inccRate)
			if !yield(Adjustment{Month: month, Value: value}) {
				return
			}
		}
	}
}

// CalculateConstruction simulates a construction-plan consortium. The base
// installment uses the unrounded credit/term ratio, unlike
// Calculate. The bid is placed at the contemplation month and sized against
// the adjusted credit.
func CalculateConstruction(in ConstructionInput) (*ConstructionOutput, error) {
	if in.TermMonths <= 0 {
		return nil, ErrInvalidTerm
	}

	contemplationMonth := in.ContemplationMonth
	if in.ContemplationUnit == UnitYears {
		contemplationMonth *= constants.MonthsPerYear
	}

	feeFactor := 1 + mathutil.PercentToDecimal(in.AdminFeeRate)
	baseInstallment := (in.Credit / float64(in.TermMonths)) * feeFactor

	history := slices.Collect(Adjustments(in.Credit, in.INCCRate, contemplationMonth, in.AdjustmentCycle))
	if history == nil {
		history = []Adjustment{}
	}
	adjustedCredit := in.Credit
	if len(history) > 0 {
		adjustedCredit = history[len(history)-1].Value
	}

	if in.StartDate != "" {
		for i := range history {
			date, err := datetime.OffsetDate(in.StartDate, datetime.DateTimeLayout, history[i].Month)
			if err != nil {
				return nil, fmt.Errorf("failed to date adjustment history: %w", err)
			}
			history[i].Date = date
		}
	}

	simulation, err := Calculate(SimulationInput{
		Credit:             adjustedCredit,
		TermMonths:         in.TermMonths,
		AdminFeeRate:       in.AdminFeeRate,
		ReductionPlan:      in.ReductionPlan,
		InsuranceKind:      in.InsuranceKind,
		OfferedBidPercent:  in.OfferedBidPercent,
		EmbeddedBidPercent: in.EmbeddedBidPercent,
		BidDilutionMode:    in.BidDilutionMode,
		AssemblyBidMonth:   contemplationMonth,
	})
	if err != nil {
		return nil, err
	}

	out := &ConstructionOutput{
		BaseInstallment:    baseInstallment,
		TotalCost:          baseInstallment * float64(in.TermMonths),
		AdjustedCredit:     adjustedCredit,
		NewInstallment:     simulation.InstallmentValue,
		ContemplationMonth: contemplationMonth,
		AdjustmentCycle:    in.AdjustmentCycle,
		AdjustmentHistory:  history,
		Simulation:         *simulation,
	}

	if in.AppreciationPercent != nil {
		gain := adjustedCredit * mathutil.PercentToDecimal(*in.AppreciationPercent)
		total := adjustedCredit + gain
		out.ValuationGain = &gain
		out.CreditPlusValuation = &total
	}

	return out, nil
}
