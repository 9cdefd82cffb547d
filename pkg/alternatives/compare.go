package alternatives

import "github.com/iwvelando/consortium-simulator/pkg/constants"

// Rates are the monthly yields, in percent, assumed for money left invested.
type Rates struct {
	CreditLetter float64 `json:"creditLetter" mapstructure:"creditLetter" yaml:"creditLetter"`
	CDB          float64 `json:"cdb" mapstructure:"cdb" yaml:"cdb"`
	Savings      float64 `json:"savings" mapstructure:"savings" yaml:"savings"`
}

// DefaultRates returns the yields used when none are configured.
func DefaultRates() Rates {
	return Rates{
		CreditLetter: constants.DefaultCreditLetterMonthlyRate,
		CDB:          constants.DefaultCDBMonthlyRate,
		Savings:      constants.DefaultSavingsMonthlyRate,
	}
}

// WithDefaults fills unset rates from DefaultRates.
func (r Rates) WithDefaults() Rates {
	d := DefaultRates()
	if r.CreditLetter == 0 {
		r.CreditLetter = d.CreditLetter
	}
	if r.CDB == 0 {
		r.CDB = d.CDB
	}
	if r.Savings == 0 {
		r.Savings = d.Savings
	}
	return r
}

// ComparisonInput is everything needed to compare the ways of acquiring an
// asset of Value over TermMonths.
type ComparisonInput struct {
	Value                float64 `json:"value"`
	TermMonths           int     `json:"termMonths"`
	AdminFeePercent      float64 `json:"adminFeePercent"`
	ReserveFundPercent   float64 `json:"reserveFundPercent"`
	BidPercent           float64 `json:"bidPercent"`
	BidKind              BidKind `json:"bidKind"`
	EmbeddedSharePercent float64 `json:"embeddedSharePercent"`
	FinancingRatePercent float64 `json:"financingRatePercent"`
	DownPaymentPercent   float64 `json:"downPaymentPercent"`
	Rates                Rates   `json:"rates"`
}

// Comparison is the side-by-side result of Compare.
type Comparison struct {
	Consortium              ConsortiumCostResult `json:"consortium"`
	Financing               FinancingResult      `json:"financing"`
	CashPurchase            CashPurchaseResult   `json:"cashPurchase"`
	RentToOwn               RentToOwnResult      `json:"rentToOwn"`
	ConsortiumEffectiveRate float64              `json:"consortiumEffectiveRate"`
	FinancingEffectiveRate  float64              `json:"financingEffectiveRate"`
	AccumulationMonths      int                  `json:"accumulationMonths"`
	IdleCreditLetter        InvestmentResult     `json:"idleCreditLetter"`
	CDB                     InvestmentResult     `json:"cdb"`
	Savings                 InvestmentResult     `json:"savings"`
	// FinancingSchedule is only filled when a schedule was requested.
	FinancingSchedule []Payment `json:"financingSchedule,omitempty"`
}

// Compare runs every alternative for the same asset and term.
func Compare(in ComparisonInput) Comparison {
	rates := in.Rates.WithDefaults()

	consortium := ConsortiumCost(ConsortiumCostInput{
		Value:                in.Value,
		TermMonths:           in.TermMonths,
		AdminFeePercent:      in.AdminFeePercent,
		ReserveFundPercent:   in.ReserveFundPercent,
		BidPercent:           in.BidPercent,
		BidKind:              in.BidKind,
		EmbeddedSharePercent: in.EmbeddedSharePercent,
	})
	financing := Financing(in.Value, in.TermMonths, in.FinancingRatePercent, in.DownPaymentPercent)

	return Comparison{
		Consortium:              consortium,
		Financing:               financing,
		CashPurchase:            CashPurchase(in.Value, in.TermMonths),
		RentToOwn:               RentToOwn(in.Value, in.TermMonths),
		ConsortiumEffectiveRate: MonthlyEffectiveRate(consortium.TotalCost, in.Value, in.TermMonths),
		FinancingEffectiveRate:  MonthlyEffectiveRate(financing.TotalPaid, in.Value, in.TermMonths),
		AccumulationMonths:      AccumulationMonths(consortium.MonthlyInstallment, in.Value, consortium.EmbeddedBidValue),
		IdleCreditLetter:        InvestmentGrowth(in.Value, in.TermMonths, rates.CreditLetter),
		CDB:                     InvestmentGrowth(in.Value, in.TermMonths, rates.CDB),
		Savings:                 InvestmentGrowth(in.Value, in.TermMonths, rates.Savings),
	}
}
