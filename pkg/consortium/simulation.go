package consortium

import (
	"errors"

	"github.com/iwvelando/consortium-simulator/pkg/constants"
	"github.com/iwvelando/consortium-simulator/pkg/mathutil"
)

// ErrNotComputable is returned when the plan term is zero or negative; there
// is no schedule to simulate.
var ErrNotComputable = errors.New("consortium: simulation needs a term of at least one month")

// Calculate simulates a consortium plan, reproducing the reference
// spreadsheet cell by cell. The order of operations and the rounding points
// are part of the contract: each rate is rounded where the spreadsheet stores
// it and downstream values use the rounded figure.
//
// Degenerate ratios (division by zero, NaN) collapse to 0 instead of failing.
// Inputs are not validated; an embedded bid larger than the offered bid or a
// bid larger than the term is computed through and surfaces as-is, e.g. as a
// negative remaining installment count.
func Calculate(in SimulationInput) (*SimulationOutput, error) {
	if in.TermMonths <= 0 {
		return nil, ErrNotComputable
	}

	credit := in.Credit
	term := float64(in.TermMonths)
	assemblyMonth := float64(in.AssemblyBidMonth)

	feeRate := mathutil.PercentToDecimal(in.AdminFeeRate)
	offeredBidRate := mathutil.PercentToDecimal(in.OfferedBidPercent)
	embeddedBidRate := mathutil.PercentToDecimal(in.EmbeddedBidPercent)

	adjustedFactor := 1 + feeRate
	adjustedCredit := credit * adjustedFactor
	perMonthRate := mathutil.RoundHalfUp(adjustedFactor/term, constants.RatePrecision)

	installmentPercent := mathutil.RoundHalfUp(perMonthRate*in.ReductionPlan.Factor(), constants.InstallmentPercentPrecision)
	installmentValue := credit*installmentPercent + insuranceLevy(in.InsuranceKind, adjustedCredit)

	// Share of the adjusted total already amortized by the installments paid
	// before the assembly in which the bid is placed.
	assemblyDiscount := mathutil.OrFallback(
		mathutil.RoundHalfUp((assemblyMonth*installmentPercent*credit)/credit, constants.RatePrecision), 0)
	monthsAfterAssembly := term - assemblyMonth
	postAssemblyRate := mathutil.OrFallback(
		mathutil.RoundHalfUp((adjustedFactor-assemblyDiscount)/monthsAfterAssembly, constants.RatePrecision), 0)

	// Money value of one installment from the assembly on. Every conversion
	// between a bid amount and an installment count goes through it.
	bidInstallmentValue := mathutil.RoundHalfUp(credit*postAssemblyRate, constants.RatePrecision)

	var totalBidInstallments float64
	var offeredBidValue float64
	if offeredBidRate > 0 {
		totalBidInstallments = roundInstallments(mathutil.SafeRatio(adjustedCredit*offeredBidRate, bidInstallmentValue))
		offeredBidValue = totalBidInstallments * bidInstallmentValue
	} else {
		totalBidInstallments = float64(in.OfferedBidInstallmentCount)
		offeredBidValue = totalBidInstallments * bidInstallmentValue
	}

	embeddedBidInstallments := roundInstallments(mathutil.SafeRatio(adjustedCredit*embeddedBidRate, bidInstallmentValue))
	embeddedBidValue := embeddedBidInstallments * bidInstallmentValue
	cashBidInstallments := totalBidInstallments - embeddedBidInstallments

	availableCredit := credit - embeddedBidValue

	paidByBid := 0.0
	if totalBidInstallments > 0 {
		paidByBid = in.BidDilutionMode.paidInstallments(totalBidInstallments, embeddedBidInstallments)
	}

	paidAtContemplation := 1 + paidByBid
	if in.AssemblyBidMonth >= 1 {
		paidAtContemplation += assemblyMonth - 1
	}
	remainingCount := term - paidAtContemplation

	amortizedFraction := (cashBidInstallments+embeddedBidInstallments)*postAssemblyRate + assemblyDiscount
	remainingFraction := adjustedFactor - amortizedFraction
	outstandingBalance := remainingFraction * credit

	remainingRate := mathutil.OrFallback(
		mathutil.RoundHalfUp(remainingFraction/remainingCount, constants.RatePrecision), 0)
	remainingInstallmentValue := mathutil.OrFallback(
		remainingRate*credit+insuranceLevy(in.InsuranceKind, outstandingBalance), 0)

	return &SimulationOutput{
		InstallmentValue:                    installmentValue,
		AvailableCredit:                     availableCredit,
		OutstandingBalance:                  outstandingBalance,
		RemainingInstallmentCount:           int(remainingCount),
		RemainingInstallmentValue:           remainingInstallmentValue,
		OfferedBidValue:                     offeredBidValue,
		EmbeddedBidValue:                    embeddedBidValue,
		InstallmentPercentOfCredit:          installmentPercent,
		PaidInstallmentCountAtContemplation: int(paidAtContemplation),
		OfferedBidInstallments:              int(totalBidInstallments),
		EmbeddedBidInstallments:             int(embeddedBidInstallments),
	}, nil
}

// paidInstallments is the number of installments a bid settles at
// contemplation under the dilution mode.
func (m DilutionMode) paidInstallments(total, embedded float64) float64 {
	switch m {
	case DilutionSpreadEvenly:
		return 0
	case DilutionReduceTerm:
		return embedded
	default:
		return total
	}
}

// insuranceLevy is the per-installment insurance charged against base. Only
// one rider applies to a plan.
func insuranceLevy(kind InsuranceKind, base float64) float64 {
	switch kind {
	case InsuranceVehicle:
		return constants.VehicleLifeInsuranceRate * base
	case InsuranceProperty:
		return constants.PropertyGuaranteeInsuranceRate * base
	default:
		return 0
	}
}

// roundInstallments rounds a bid expressed in installments to a whole count,
// ties going up.
func roundInstallments(count float64) float64 {
	return mathutil.RoundHalfUp(count, 0)
}
