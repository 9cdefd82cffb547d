package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iwvelando/consortium-simulator/pkg/alternatives"
	"github.com/iwvelando/consortium-simulator/pkg/consortium"
	"github.com/iwvelando/consortium-simulator/pkg/format"
)

// Money accepts a JSON number or a pt-BR formatted string such as
// "R$ 120.000,00".
type Money float64

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Money(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a number or a currency string, got %s", data)
	}
	*m = Money(format.ParseCurrencyInput(s))
	return nil
}

// Percent accepts a JSON number or a string using either decimal separator
// ("2,5" or "2.5"). Unparseable text counts as zero.
type Percent float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Percent(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a number or a percentage string, got %s", data)
	}
	*p = Percent(format.ParsePercentInput(s, 0))
	return nil
}

type simulationRequest struct {
	Credit                     Money                    `json:"credit"`
	TermMonths                 int                      `json:"termMonths"`
	AdminFeeRate               Percent                  `json:"adminFeeRate"`
	ReductionPlan              consortium.ReductionPlan `json:"reductionPlan"`
	InsuranceKind              consortium.InsuranceKind `json:"insuranceKind"`
	OfferedBidPercent          Percent                  `json:"offeredBidPercent"`
	EmbeddedBidPercent         Percent                  `json:"embeddedBidPercent"`
	OfferedBidInstallmentCount int                      `json:"offeredBidInstallmentCount"`
	BidDilutionMode            consortium.DilutionMode  `json:"bidDilutionMode"`
	AssemblyBidMonth           int                      `json:"assemblyBidMonth"`
}

func (r simulationRequest) input() consortium.SimulationInput {
	return consortium.SimulationInput{
		Credit:                     float64(r.Credit),
		TermMonths:                 r.TermMonths,
		AdminFeeRate:               float64(r.AdminFeeRate),
		ReductionPlan:              r.ReductionPlan,
		InsuranceKind:              r.InsuranceKind,
		OfferedBidPercent:          float64(r.OfferedBidPercent),
		EmbeddedBidPercent:         float64(r.EmbeddedBidPercent),
		OfferedBidInstallmentCount: r.OfferedBidInstallmentCount,
		BidDilutionMode:            r.BidDilutionMode,
		AssemblyBidMonth:           r.AssemblyBidMonth,
	}
}

type constructionRequest struct {
	Credit              Money                        `json:"credit"`
	TermMonths          int                          `json:"termMonths"`
	AdminFeeRate        Percent                      `json:"adminFeeRate"`
	INCCRate            Percent                      `json:"inccRate"`
	AdjustmentCycle     consortium.AdjustmentCycle   `json:"adjustmentCycle"`
	ContemplationMonth  int                          `json:"contemplationMonth"`
	ContemplationUnit   consortium.ContemplationUnit `json:"contemplationUnit"`
	ReductionPlan       consortium.ReductionPlan     `json:"reductionPlan"`
	InsuranceKind       consortium.InsuranceKind     `json:"insuranceKind"`
	OfferedBidPercent   Percent                      `json:"offeredBidPercent"`
	EmbeddedBidPercent  Percent                      `json:"embeddedBidPercent"`
	BidDilutionMode     consortium.DilutionMode      `json:"bidDilutionMode"`
	AppreciationPercent *Percent                     `json:"appreciationPercent"`
	StartDate           string                       `json:"startDate"`
}

func (r constructionRequest) input() consortium.ConstructionInput {
	in := consortium.ConstructionInput{
		Credit:             float64(r.Credit),
		TermMonths:         r.TermMonths,
		AdminFeeRate:       float64(r.AdminFeeRate),
		INCCRate:           float64(r.INCCRate),
		AdjustmentCycle:    r.AdjustmentCycle,
		ContemplationMonth: r.ContemplationMonth,
		ContemplationUnit:  r.ContemplationUnit,
		ReductionPlan:      r.ReductionPlan,
		InsuranceKind:      r.InsuranceKind,
		OfferedBidPercent:  float64(r.OfferedBidPercent),
		EmbeddedBidPercent: float64(r.EmbeddedBidPercent),
		BidDilutionMode:    r.BidDilutionMode,
		StartDate:          r.StartDate,
	}
	if r.AppreciationPercent != nil {
		appreciation := float64(*r.AppreciationPercent)
		in.AppreciationPercent = &appreciation
	}
	return in
}

type comparisonRequest struct {
	Value                Money                `json:"value"`
	TermMonths           int                  `json:"termMonths"`
	AdminFeePercent      Percent              `json:"adminFeePercent"`
	ReserveFundPercent   Percent              `json:"reserveFundPercent"`
	BidPercent           Percent              `json:"bidPercent"`
	BidKind              alternatives.BidKind `json:"bidKind"`
	EmbeddedSharePercent Percent              `json:"embeddedSharePercent"`
	FinancingRatePercent Percent              `json:"financingRatePercent"`
	DownPaymentPercent   Percent              `json:"downPaymentPercent"`
	Rates                *alternatives.Rates  `json:"rates"`
	Schedule             bool                 `json:"schedule"`
	StartDate            string               `json:"startDate"`
}

func (r comparisonRequest) input(defaults alternatives.Rates) alternatives.ComparisonInput {
	rates := defaults
	if r.Rates != nil {
		rates = *r.Rates
		if rates.CreditLetter == 0 {
			rates.CreditLetter = defaults.CreditLetter
		}
		if rates.CDB == 0 {
			rates.CDB = defaults.CDB
		}
		if rates.Savings == 0 {
			rates.Savings = defaults.Savings
		}
	}

	return alternatives.ComparisonInput{
		Value:                float64(r.Value),
		TermMonths:           r.TermMonths,
		AdminFeePercent:      float64(r.AdminFeePercent),
		ReserveFundPercent:   float64(r.ReserveFundPercent),
		BidPercent:           float64(r.BidPercent),
		BidKind:              r.BidKind,
		EmbeddedSharePercent: float64(r.EmbeddedSharePercent),
		FinancingRatePercent: float64(r.FinancingRatePercent),
		DownPaymentPercent:   float64(r.DownPaymentPercent),
		Rates:                rates,
	}
}
