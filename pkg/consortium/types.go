// Package consortium implements the consortium purchase-plan simulation engine:
// the installment, bid and post-contemplation amortization model of the
// reference spreadsheet, and its construction-plan sibling whose credit is
// inflated by the INCC index before contemplation.
//
// Every function in this package is a pure computation over its arguments.
// Nothing is logged, cached or validated here; callers check their inputs
// with the validation package before invoking the engine.
package consortium

import (
	"fmt"
	"strings"
)

// ReductionPlan selects the multiplier applied to the nominal installment.
type ReductionPlan int

const (
	PlanFull ReductionPlan = iota
	PlanFlex10
	PlanFlex20
	PlanFlex30
	PlanFlex40
	PlanFlex50
)

var reductionPlanNames = map[ReductionPlan]string{
	PlanFull:   "full",
	PlanFlex10: "flex10",
	PlanFlex20: "flex20",
	PlanFlex30: "flex30",
	PlanFlex40: "flex40",
	PlanFlex50: "flex50",
}

// Factor returns the installment multiplier of the plan. Unknown plans behave
// as the full plan.
func (p ReductionPlan) Factor() float64 {
	switch p {
	case PlanFlex10:
		return 0.9
	case PlanFlex20:
		return 0.8
	case PlanFlex30:
		return 0.7
	case PlanFlex40:
		return 0.6
	case PlanFlex50:
		return 0.5
	default:
		return 1.0
	}
}

func (p ReductionPlan) String() string {
	if name, ok := reductionPlanNames[p]; ok {
		return name
	}
	return fmt.Sprintf("ReductionPlan(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p ReductionPlan) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ReductionPlan) UnmarshalText(text []byte) error {
	parsed, err := ParseReductionPlan(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseReductionPlan accepts a plan name ("full", "flex10".."flex50") or the
// form codes "1".."6" used by the simulator screens.
func ParseReductionPlan(value string) (ReductionPlan, error) {
	switch normalize(value) {
	case "", "full", "integral", "1":
		return PlanFull, nil
	case "flex10", "2":
		return PlanFlex10, nil
	case "flex20", "3":
		return PlanFlex20, nil
	case "flex30", "4":
		return PlanFlex30, nil
	case "flex40", "5":
		return PlanFlex40, nil
	case "flex50", "6":
		return PlanFlex50, nil
	}
	return PlanFull, fmt.Errorf("unknown reduction plan %q", value)
}

// InsuranceKind selects the per-installment insurance levy, if any.
type InsuranceKind int

const (
	InsuranceNone InsuranceKind = iota
	InsuranceVehicle
	InsuranceProperty
)

func (k InsuranceKind) String() string {
	switch k {
	case InsuranceNone:
		return "none"
	case InsuranceVehicle:
		return "vehicle"
	case InsuranceProperty:
		return "property"
	}
	return fmt.Sprintf("InsuranceKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k InsuranceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *InsuranceKind) UnmarshalText(text []byte) error {
	parsed, err := ParseInsuranceKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseInsuranceKind accepts "none", "vehicle", "property" or the form codes
// "1" (vehicle), "2" (property) and "3" (none).
func ParseInsuranceKind(value string) (InsuranceKind, error) {
	switch normalize(value) {
	case "", "none", "3":
		return InsuranceNone, nil
	case "vehicle", "automovel", "1":
		return InsuranceVehicle, nil
	case "property", "imovel", "2":
		return InsuranceProperty, nil
	}
	return InsuranceNone, fmt.Errorf("unknown insurance kind %q", value)
}

// DilutionMode governs how the installments covered by a bid affect the
// schedule after contemplation.
type DilutionMode int

const (
	// DilutionReduceInstallments counts the whole bid, embedded and cash, as paid installments.
	DilutionReduceInstallments DilutionMode = iota
	// DilutionReduceTerm counts only the embedded bid as paid installments.
	DilutionReduceTerm
	// DilutionSpreadEvenly (LUDC) keeps the installment count and spreads the
	// bid over the remaining balance.
	DilutionSpreadEvenly
)

func (m DilutionMode) String() string {
	switch m {
	case DilutionReduceInstallments:
		return "reduce-installments"
	case DilutionReduceTerm:
		return "reduce-term"
	case DilutionSpreadEvenly:
		return "spread-evenly"
	}
	return fmt.Sprintf("DilutionMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m DilutionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DilutionMode) UnmarshalText(text []byte) error {
	parsed, err := ParseDilutionMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseDilutionMode accepts the mode names or the form codes "1" (reduce
// term), "2" (LUDC) and "3" (reduce installments).
func ParseDilutionMode(value string) (DilutionMode, error) {
	switch normalize(value) {
	case "", "reduce-installments", "reduceinstallments", "3":
		return DilutionReduceInstallments, nil
	case "reduce-term", "reduceterm", "1":
		return DilutionReduceTerm, nil
	case "spread-evenly", "spreadevenly", "ludc", "2":
		return DilutionSpreadEvenly, nil
	}
	return DilutionReduceInstallments, fmt.Errorf("unknown bid dilution mode %q", value)
}

// AdjustmentCycle is how often the INCC index is applied to a construction credit.
type AdjustmentCycle int

const (
	CycleAnnual AdjustmentCycle = iota
	CycleSemiannual
)

// Months returns the number of months between two adjustments.
func (c AdjustmentCycle) Months() int {
	if c == CycleSemiannual {
		return 6
	}
	return 12
}

func (c AdjustmentCycle) String() string {
	switch c {
	case CycleAnnual:
		return "annual"
	case CycleSemiannual:
		return "semiannual"
	}
	return fmt.Sprintf("AdjustmentCycle(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c AdjustmentCycle) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *AdjustmentCycle) UnmarshalText(text []byte) error {
	parsed, err := ParseAdjustmentCycle(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseAdjustmentCycle accepts "annual"/"anual" and "semiannual"/"semestral".
func ParseAdjustmentCycle(value string) (AdjustmentCycle, error) {
	switch normalize(value) {
	case "", "annual", "anual":
		return CycleAnnual, nil
	case "semiannual", "semestral":
		return CycleSemiannual, nil
	}
	return CycleAnnual, fmt.Errorf("unknown adjustment cycle %q", value)
}

// ContemplationUnit is the unit the contemplation point is expressed in.
type ContemplationUnit int

const (
	UnitMonths ContemplationUnit = iota
	UnitYears
)

func (u ContemplationUnit) String() string {
	if u == UnitYears {
		return "years"
	}
	return "months"
}

// MarshalText implements encoding.TextMarshaler.
func (u ContemplationUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *ContemplationUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseContemplationUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseContemplationUnit accepts "months"/"meses" and "years"/"anos".
func ParseContemplationUnit(value string) (ContemplationUnit, error) {
	switch normalize(value) {
	case "", "months", "meses":
		return UnitMonths, nil
	case "years", "anos":
		return UnitYears, nil
	}
	return UnitMonths, fmt.Errorf("unknown contemplation unit %q", value)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// SimulationInput is the record the engine simulates. Percent fields are in
// percentage points (15 means 15%).
type SimulationInput struct {
	Credit                     float64       `json:"credit"`
	TermMonths                 int           `json:"termMonths"`
	AdminFeeRate               float64       `json:"adminFeeRate"`
	ReductionPlan              ReductionPlan `json:"reductionPlan"`
	InsuranceKind              InsuranceKind `json:"insuranceKind"`
	OfferedBidPercent          float64       `json:"offeredBidPercent"`
	EmbeddedBidPercent         float64       `json:"embeddedBidPercent"`
	OfferedBidInstallmentCount int           `json:"offeredBidInstallmentCount"`
	BidDilutionMode            DilutionMode  `json:"bidDilutionMode"`
	AssemblyBidMonth           int           `json:"assemblyBidMonth"`
}

// SimulationOutput is the schedule snapshot produced for one SimulationInput.
type SimulationOutput struct {
	InstallmentValue                    float64 `json:"installmentValue"`
	AvailableCredit                     float64 `json:"availableCredit"`
	OutstandingBalance                  float64 `json:"outstandingBalance"`
	RemainingInstallmentCount           int     `json:"remainingInstallmentCount"`
	RemainingInstallmentValue           float64 `json:"remainingInstallmentValue"`
	OfferedBidValue                     float64 `json:"offeredBidValue"`
	EmbeddedBidValue                    float64 `json:"embeddedBidValue"`
	InstallmentPercentOfCredit          float64 `json:"installmentPercentOfCredit"`
	PaidInstallmentCountAtContemplation int     `json:"paidInstallmentCountAtContemplation"`
	OfferedBidInstallments              int     `json:"offeredBidInstallments"`
	EmbeddedBidInstallments             int     `json:"embeddedBidInstallments"`
}
