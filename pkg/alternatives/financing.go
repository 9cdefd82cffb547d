// Package alternatives compares a consortium against the other ways of
// acquiring the same asset: bank financing, saving up for a cash purchase,
// rent-to-own, and leaving the money invested instead.
package alternatives

import (
	"fmt"
	"math"

	"github.com/iwvelando/consortium-simulator/pkg/datetime"
	"github.com/iwvelando/consortium-simulator/pkg/mathutil"
	"go.uber.org/zap"
)

// FinancingResult summarises a Price-table (French amortization) loan.
type FinancingResult struct {
	Value          float64 `json:"value"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	DownPayment    float64 `json:"downPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Payment is one month of a financing amortization schedule.
type Payment struct {
	Month              int     `json:"month"`
	Date               string  `json:"date,omitempty"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// MonthlyPayment is the constant installment of a Price-table loan of
// principal over termMonths at a monthly rate given in percent.
func MonthlyPayment(principal float64, termMonths int, monthlyRatePercent float64) float64 {
	if termMonths <= 0 {
		return 0
	}
	rate := mathutil.PercentToDecimal(monthlyRatePercent)
	if rate == 0 {
		return principal / float64(termMonths)
	}

	power := math.Pow(1+rate, float64(termMonths))
	discountFactor := (power - 1) / power
	return mathutil.SafeRatio(principal*rate, discountFactor)
}

// Financing prices buying value with a bank loan after a down payment of
// downPaymentPercent of the value.
func Financing(value float64, termMonths int, monthlyRatePercent, downPaymentPercent float64) FinancingResult {
	if value == 0 || termMonths <= 0 {
		return FinancingResult{Value: value}
	}

	downPayment := mathutil.ApplyPercentage(value, downPaymentPercent)
	payment := MonthlyPayment(value-downPayment, termMonths, monthlyRatePercent)
	totalPaid := payment*float64(termMonths) + downPayment

	return FinancingResult{
		Value:          value,
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		DownPayment:    downPayment,
		TotalInterest:  totalPaid - value,
	}
}

// ScheduleGenerator builds month-by-month amortization schedules for the
// financing alternative.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate returns the amortization schedule of the financed amount. When
// startDate (YYYY-MM) is set each payment is dated, the first falling on
// startDate itself.
func (g *ScheduleGenerator) Generate(value float64, termMonths int, monthlyRatePercent, downPaymentPercent float64, startDate string) ([]Payment, error) {
	if termMonths <= 0 {
		return nil, fmt.Errorf("financing term must be greater than 0, got %d", termMonths)
	}

	principal := value - mathutil.ApplyPercentage(value, downPaymentPercent)
	rate := mathutil.PercentToDecimal(monthlyRatePercent)
	monthlyPayment := MonthlyPayment(principal, termMonths, monthlyRatePercent)

	schedule := make([]Payment, 0, termMonths)
	remaining := principal
	for month := 1; month <= termMonths; month++ {
		p := Payment{Month: month, Payment: monthlyPayment}
		p.Interest = remaining * rate
		p.Principal = monthlyPayment - p.Interest

		if month == termMonths || mathutil.Round(remaining-p.Principal) == 0 {
			// Absorb floating-point drift in the final payment.
			p.RemainingPrincipal = 0
		} else {
			p.RemainingPrincipal = remaining - p.Principal
		}

		if startDate != "" {
			date, err := datetime.OffsetDate(startDate, datetime.DateTimeLayout, month-1)
			if err != nil {
				return nil, err
			}
			p.Date = date
		}

		schedule = append(schedule, p)
		remaining = p.RemainingPrincipal
		if remaining == 0 {
			if month < termMonths {
				g.logger.Debug(fmt.Sprintf("financing paid off at month %d of %d", month, termMonths),
					zap.String("op", "alternatives.Generate"),
				)
			}
			break
		}
	}

	return schedule, nil
}

// ForComparison generates the schedule of the financing alternative of a
// comparison.
func (g *ScheduleGenerator) ForComparison(in ComparisonInput, startDate string) ([]Payment, error) {
	return g.Generate(in.Value, in.TermMonths, in.FinancingRatePercent, in.DownPaymentPercent, startDate)
}
