package alternatives

import (
	"encoding/json"
	"math"
	"testing"

	"go.uber.org/zap"
)

const tolerance = 0.01

func TestFinancing(t *testing.T) {
	tests := []struct {
		name             string
		value            float64
		term             int
		rate             float64
		downPayment      float64
		expectedPayment  float64
		expectedTotal    float64
		expectedInterest float64
	}{
		{"one percent monthly with 20% down", 100000, 120, 1, 20, 1147.77, 157732.11, 57732.11},
		{"zero interest", 12000, 60, 0, 0, 200, 12000, 0},
		{"full down payment", 50000, 60, 1.5, 100, 0, 50000, 0},
		{"zero value", 0, 60, 1, 20, 0, 0, 0},
		{"zero term", 50000, 0, 1, 20, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Financing(tt.value, tt.term, tt.rate, tt.downPayment)
			if math.Abs(result.MonthlyPayment-tt.expectedPayment) > tolerance {
				t.Errorf("MonthlyPayment = %.2f, expected %.2f", result.MonthlyPayment, tt.expectedPayment)
			}
			if math.Abs(result.TotalPaid-tt.expectedTotal) > tolerance {
				t.Errorf("TotalPaid = %.2f, expected %.2f", result.TotalPaid, tt.expectedTotal)
			}
			if math.Abs(result.TotalInterest-tt.expectedInterest) > tolerance {
				t.Errorf("TotalInterest = %.2f, expected %.2f", result.TotalInterest, tt.expectedInterest)
			}
		})
	}
}

func TestScheduleGenerator(t *testing.T) {
	g := NewScheduleGenerator(zap.NewNop())

	schedule, err := g.Generate(100000, 120, 1, 20, "2025-01")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(schedule) != 120 {
		t.Fatalf("expected 120 payments, got %d", len(schedule))
	}

	first := schedule[0]
	if math.Abs(first.Interest-800) > tolerance {
		t.Errorf("first interest = %.2f, expected 800.00", first.Interest)
	}
	if first.Date != "2025-01" {
		t.Errorf("first date = %q, expected 2025-01", first.Date)
	}
	if last := schedule[len(schedule)-1]; last.RemainingPrincipal != 0 || last.Date != "2034-12" {
		t.Errorf("unexpected final payment %+v", last)
	}

	principal := 0.0
	for _, p := range schedule {
		principal += p.Principal
	}
	if math.Abs(principal-80000) > tolerance {
		t.Errorf("principal repaid = %.2f, expected 80000.00", principal)
	}

	if _, err := g.Generate(100000, 0, 1, 20, ""); err == nil {
		t.Error("expected an error for a zero term")
	}
	if _, err := NewScheduleGenerator(nil).Generate(1000, 12, 1, 0, "2025/01"); err == nil {
		t.Error("expected an error for a malformed start date")
	}
}

func TestCashPurchaseAndRent(t *testing.T) {
	cash := CashPurchase(100000, 120)
	if math.Abs(cash.MonthlySaving-958.33) > tolerance || math.Abs(cash.TotalCost-115000) > tolerance {
		t.Errorf("unexpected cash purchase %+v", cash)
	}
	if zero := CashPurchase(100000, 0); zero.TotalCost != 0 || zero.MonthlySaving != 0 {
		t.Errorf("expected zero cash purchase, got %+v", zero)
	}

	rent := RentToOwn(100000, 120)
	if rent.MonthlyRent != 1000 || rent.TotalCost != 120000 {
		t.Errorf("unexpected rent-to-own %+v", rent)
	}
}

func TestConsortiumCost(t *testing.T) {
	base := ConsortiumCostInput{
		Value:              100000,
		TermMonths:         100,
		AdminFeePercent:    15,
		ReserveFundPercent: 2,
		BidPercent:         30,
	}

	tests := []struct {
		name              string
		kind              BidKind
		share             float64
		expectedFree      float64
		expectedEmbedded  float64
		expectedMonthly   float64
		expectedTotalCost float64
	}{
		{"free bid", BidFree, 0, 30000, 0, 1170, 147000},
		{"embedded bid", BidEmbedded, 0, 0, 30000, 819, 81900},
		{"split bid", BidBoth, 50, 15000, 15000, 994.5, 114450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.BidKind = tt.kind
			in.EmbeddedSharePercent = tt.share
			result := ConsortiumCost(in)

			if math.Abs(result.FreeBidValue-tt.expectedFree) > tolerance {
				t.Errorf("FreeBidValue = %.2f, expected %.2f", result.FreeBidValue, tt.expectedFree)
			}
			if math.Abs(result.EmbeddedBidValue-tt.expectedEmbedded) > tolerance {
				t.Errorf("EmbeddedBidValue = %.2f, expected %.2f", result.EmbeddedBidValue, tt.expectedEmbedded)
			}
			if math.Abs(result.MonthlyInstallment-tt.expectedMonthly) > tolerance {
				t.Errorf("MonthlyInstallment = %.2f, expected %.2f", result.MonthlyInstallment, tt.expectedMonthly)
			}
			if math.Abs(result.TotalCost-tt.expectedTotalCost) > tolerance {
				t.Errorf("TotalCost = %.2f, expected %.2f", result.TotalCost, tt.expectedTotalCost)
			}
		})
	}

	noBid := base
	noBid.BidPercent = 0
	if result := ConsortiumCost(noBid); math.Abs(result.TotalCost-117000) > tolerance {
		t.Errorf("TotalCost without bid = %.2f, expected 117000.00", result.TotalCost)
	}
}

func TestInvestmentGrowth(t *testing.T) {
	tests := []struct {
		name          string
		initial       float64
		term          int
		rate          float64
		expectedFinal float64
	}{
		{"credit letter", 100000, 120, 0.7, 230959.84},
		{"cdb", 100000, 12, 1.0, 112682.50},
		{"savings", 100000, 12, 0.6, 107442.42},
		{"zero term", 100000, 0, 1.0, 0},
		{"rate below total loss", 100000, 12, -150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InvestmentGrowth(tt.initial, tt.term, tt.rate)
			if math.Abs(result.FinalValue-tt.expectedFinal) > tolerance {
				t.Errorf("FinalValue = %.2f, expected %.2f", result.FinalValue, tt.expectedFinal)
			}
			if tt.expectedFinal > 0 && math.Abs(result.Gain-(tt.expectedFinal-tt.initial)) > tolerance {
				t.Errorf("Gain = %.2f, expected %.2f", result.Gain, tt.expectedFinal-tt.initial)
			}
		})
	}
}

func TestMonthlyEffectiveRate(t *testing.T) {
	if got := MonthlyEffectiveRate(130000, 100000, 120); math.Abs(got-0.00218876) > 1e-7 {
		t.Errorf("MonthlyEffectiveRate() = %v, expected 0.00218876", got)
	}
	for _, got := range []float64{
		MonthlyEffectiveRate(0, 100000, 120),
		MonthlyEffectiveRate(130000, 0, 120),
		MonthlyEffectiveRate(130000, 100000, 0),
	} {
		if got != 0 {
			t.Errorf("expected 0 for degenerate input, got %v", got)
		}
	}
}

func TestAccumulationMonths(t *testing.T) {
	tests := []struct {
		installment float64
		credit      float64
		embedded    float64
		expected    int
	}{
		{983.3, 100000, 10000, 92},
		{1000, 100000, 0, 100},
		{1000, 100000, -50, 100},
		{1000, 100000, 100000, 0},
		{0, 100000, 0, 0},
		{1000, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := AccumulationMonths(tt.installment, tt.credit, tt.embedded); got != tt.expected {
			t.Errorf("AccumulationMonths(%v, %v, %v) = %d, expected %d", tt.installment, tt.credit, tt.embedded, got, tt.expected)
		}
	}
}

func TestCompare(t *testing.T) {
	result := Compare(ComparisonInput{
		Value:                100000,
		TermMonths:           100,
		AdminFeePercent:      15,
		ReserveFundPercent:   2,
		BidPercent:           30,
		BidKind:              BidBoth,
		EmbeddedSharePercent: 50,
		FinancingRatePercent: 1,
		DownPaymentPercent:   20,
	})

	if math.Abs(result.Consortium.TotalCost-114450) > tolerance {
		t.Errorf("Consortium.TotalCost = %.2f, expected 114450.00", result.Consortium.TotalCost)
	}
	if result.AccumulationMonths != 86 {
		t.Errorf("AccumulationMonths = %d, expected 86", result.AccumulationMonths)
	}
	if result.ConsortiumEffectiveRate <= 0 || result.FinancingEffectiveRate <= result.ConsortiumEffectiveRate {
		t.Errorf("expected financing to cost more than the consortium: %v vs %v",
			result.FinancingEffectiveRate, result.ConsortiumEffectiveRate)
	}
	if math.Abs(result.CDB.MonthlyRate-0.01) > 1e-12 || math.Abs(result.Savings.MonthlyRate-0.006) > 1e-12 {
		t.Errorf("default rates not applied: cdb %v savings %v", result.CDB.MonthlyRate, result.Savings.MonthlyRate)
	}

	custom := Compare(ComparisonInput{Value: 1000, TermMonths: 12, Rates: Rates{CDB: 2}})
	if math.Abs(custom.CDB.MonthlyRate-0.02) > 1e-12 {
		t.Errorf("CDB.MonthlyRate = %v, expected 0.02", custom.CDB.MonthlyRate)
	}
}

func TestBidKindText(t *testing.T) {
	var in ConsortiumCostInput
	if err := json.Unmarshal([]byte(`{"bidKind": "embutido"}`), &in); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if in.BidKind != BidEmbedded {
		t.Errorf("BidKind = %v, expected embedded", in.BidKind)
	}
	if _, err := ParseBidKind("mixed"); err == nil {
		t.Error("expected an error for an unknown bid kind")
	}
}
