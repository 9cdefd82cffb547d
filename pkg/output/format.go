// Package output provides utilities for formatting and displaying scenario results.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/consortium-simulator/internal/scenario"
	"github.com/iwvelando/consortium-simulator/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type unit int

const (
	unitCurrency unit = iota
	unitCount
	unitRate
)

// metric is one labelled figure of a result.
type metric struct {
	Label string
	Value float64
	Unit  unit
}

func metrics(r scenario.Result) []metric {
	switch {
	case r.Simulation != nil:
		s := r.Simulation
		return []metric{
			{"installment value", s.InstallmentValue, unitCurrency},
			{"installment percent of credit", s.InstallmentPercentOfCredit, unitRate},
			{"offered bid value", s.OfferedBidValue, unitCurrency},
			{"offered bid installments", float64(s.OfferedBidInstallments), unitCount},
			{"embedded bid value", s.EmbeddedBidValue, unitCurrency},
			{"embedded bid installments", float64(s.EmbeddedBidInstallments), unitCount},
			{"available credit", s.AvailableCredit, unitCurrency},
			{"paid installments at contemplation", float64(s.PaidInstallmentCountAtContemplation), unitCount},
			{"outstanding balance", s.OutstandingBalance, unitCurrency},
			{"remaining installments", float64(s.RemainingInstallmentCount), unitCount},
			{"remaining installment value", s.RemainingInstallmentValue, unitCurrency},
		}

	case r.Construction != nil:
		c := r.Construction
		m := []metric{
			{"base installment", c.BaseInstallment, unitCurrency},
			{"total cost", c.TotalCost, unitCurrency},
			{"contemplation month", float64(c.ContemplationMonth), unitCount},
			{"adjustments", float64(len(c.AdjustmentHistory)), unitCount},
			{"adjusted credit", c.AdjustedCredit, unitCurrency},
			{"new installment", c.NewInstallment, unitCurrency},
			{"outstanding balance", c.Simulation.OutstandingBalance, unitCurrency},
			{"remaining installments", float64(c.Simulation.RemainingInstallmentCount), unitCount},
			{"remaining installment value", c.Simulation.RemainingInstallmentValue, unitCurrency},
		}
		if c.ValuationGain != nil && c.CreditPlusValuation != nil {
			m = append(m,
				metric{"valuation gain", *c.ValuationGain, unitCurrency},
				metric{"credit plus valuation", *c.CreditPlusValuation, unitCurrency},
			)
		}
		return m

	case r.Comparison != nil:
		c := r.Comparison
		return []metric{
			{"consortium installment", c.Consortium.MonthlyInstallment, unitCurrency},
			{"consortium total cost", c.Consortium.TotalCost, unitCurrency},
			{"consortium monthly effective rate", c.ConsortiumEffectiveRate, unitRate},
			{"financing installment", c.Financing.MonthlyPayment, unitCurrency},
			{"financing total paid", c.Financing.TotalPaid, unitCurrency},
			{"financing monthly effective rate", c.FinancingEffectiveRate, unitRate},
			{"cash purchase monthly saving", c.CashPurchase.MonthlySaving, unitCurrency},
			{"rent-to-own monthly rent", c.RentToOwn.MonthlyRent, unitCurrency},
			{"months to accumulate the credit", float64(c.AccumulationMonths), unitCount},
			{"idle credit letter final value", c.IdleCreditLetter.FinalValue, unitCurrency},
			{"cdb final value", c.CDB.FinalValue, unitCurrency},
			{"savings final value", c.Savings.FinalValue, unitCurrency},
		}
	}
	return nil
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []scenario.Result) {
	p := message.NewPrinter(language.BrazilianPortuguese)
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s (%s) ---\n", result.Name, result.Kind)
		for _, m := range metrics(result) {
			_, _ = fmt.Fprintf(w, "%-36s | %s\n", m.Label, prettyValue(p, m))
		}
		if c := result.Construction; c != nil && len(c.AdjustmentHistory) > 0 {
			_, _ = fmt.Fprintf(w, "INCC adjustments:\n")
			for _, adj := range c.AdjustmentHistory {
				when := p.Sprintf("month %d", adj.Month)
				if adj.Date != "" {
					when += " (" + adj.Date + ")"
				}
				_, _ = fmt.Fprintf(w, "  %-22s | %s\n", when, format.Currency(adj.Value))
			}
		}
		if c := result.Comparison; c != nil && len(c.FinancingSchedule) > 0 {
			_, _ = fmt.Fprintf(w, "Financing schedule:\n")
			for _, payment := range c.FinancingSchedule {
				when := p.Sprintf("month %d", payment.Month)
				if payment.Date != "" {
					when += " (" + payment.Date + ")"
				}
				_, _ = fmt.Fprintf(w, "  %-22s | %s | interest %s | remaining %s\n", when,
					format.Currency(payment.Payment), format.Currency(payment.Interest), format.Currency(payment.RemainingPrincipal))
			}
		}
		if len(result.Notes) > 0 {
			_, _ = fmt.Fprintf(w, "Notes: %s\n", strings.Join(result.Notes, ", "))
		}
		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

func prettyValue(p *message.Printer, m metric) string {
	switch m.Unit {
	case unitCount:
		return p.Sprintf("%d", int(m.Value))
	case unitRate:
		return format.Percentage(m.Value * 100)
	default:
		return format.Currency(m.Value)
	}
}

// CsvFormat writes one row per figure in comma-separated value format.
func CsvFormat(w io.Writer, results []scenario.Result) {
	_, _ = fmt.Fprintf(w, `"scenario","kind","metric","value"`+"\n")
	for _, result := range results {
		for _, m := range metrics(result) {
			_, _ = fmt.Fprintf(w, `"%s","%s","%s","%s"`+"\n", result.Name, result.Kind, m.Label, csvValue(m))
		}
		if c := result.Comparison; c != nil {
			for _, payment := range c.FinancingSchedule {
				label := fmt.Sprintf("financing month %d remaining principal", payment.Month)
				_, _ = fmt.Fprintf(w, `"%s","%s","%s","%s"`+"\n", result.Name, result.Kind, label,
					csvValue(metric{Value: payment.RemainingPrincipal, Unit: unitCurrency}))
			}
		}
	}
}

func csvValue(m metric) string {
	switch m.Unit {
	case unitCount:
		return strconv.Itoa(int(m.Value))
	case unitRate:
		return strconv.FormatFloat(m.Value, 'f', -1, 64)
	default:
		return strconv.FormatFloat(m.Value, 'f', 2, 64)
	}
}
