package alternatives

import (
	"math"

	"github.com/iwvelando/consortium-simulator/pkg/constants"
	"github.com/iwvelando/consortium-simulator/pkg/mathutil"
)

// CashPurchaseResult is the plan of saving up to buy the asset outright.
type CashPurchaseResult struct {
	Value         float64 `json:"value"`
	MonthlySaving float64 `json:"monthlySaving"`
	TotalCost     float64 `json:"totalCost"`
}

// CashPurchase spreads the value, inflated by the opportunity-cost factor,
// evenly over termMonths of saving.
func CashPurchase(value float64, termMonths int) CashPurchaseResult {
	if value == 0 || termMonths <= 0 {
		return CashPurchaseResult{Value: value}
	}
	total := value * constants.CashOpportunityFactor
	return CashPurchaseResult{
		Value:         value,
		MonthlySaving: total / float64(termMonths),
		TotalCost:     total,
	}
}

// RentToOwnResult is a rent-with-purchase-option arrangement.
type RentToOwnResult struct {
	Value       float64 `json:"value"`
	MonthlyRent float64 `json:"monthlyRent"`
	TotalCost   float64 `json:"totalCost"`
}

// RentToOwn charges a fixed share of the value as monthly rent.
func RentToOwn(value float64, termMonths int) RentToOwnResult {
	if termMonths < 0 {
		termMonths = 0
	}
	rent := value * constants.RentToOwnMonthlyRate
	return RentToOwnResult{
		Value:       value,
		MonthlyRent: rent,
		TotalCost:   rent * float64(termMonths),
	}
}

// InvestmentResult is the outcome of leaving an amount invested.
type InvestmentResult struct {
	Initial     float64 `json:"initial"`
	FinalValue  float64 `json:"finalValue"`
	Gain        float64 `json:"gain"`
	MonthlyRate float64 `json:"monthlyRate"`
}

// InvestmentGrowth compounds initial monthly at monthlyRatePercent over
// termMonths. A rate below -100% is not meaningful and yields zeros.
func InvestmentGrowth(initial float64, termMonths int, monthlyRatePercent float64) InvestmentResult {
	rate := mathutil.PercentToDecimal(monthlyRatePercent)
	if initial == 0 || termMonths <= 0 || rate < -1 {
		return InvestmentResult{Initial: initial, MonthlyRate: rate}
	}

	final := initial * math.Pow(1+rate, float64(termMonths))
	return InvestmentResult{
		Initial:     initial,
		FinalValue:  final,
		Gain:        final - initial,
		MonthlyRate: rate,
	}
}

// MonthlyEffectiveRate is the constant monthly rate that turns value into
// totalCost over termMonths: (totalCost/value)^(1/n) - 1.
func MonthlyEffectiveRate(totalCost, value float64, termMonths int) float64 {
	if value == 0 || termMonths <= 0 || totalCost <= 0 {
		return 0
	}
	factor := totalCost / value
	if factor <= 0 {
		return 0
	}
	return mathutil.OrFallback(math.Pow(factor, 1/float64(termMonths))-1, 0)
}

// AccumulationMonths is how many months of putting aside the consortium
// installment, without any yield, it takes to gather the credit net of the
// embedded bid. Partial months count as whole months.
func AccumulationMonths(installment, creditValue, embeddedBid float64) int {
	if installment <= 0 || creditValue <= 0 {
		return 0
	}
	target := creditValue - math.Max(embeddedBid, 0)
	if target <= 0 {
		return 0
	}
	return int(math.Ceil(target / installment))
}
