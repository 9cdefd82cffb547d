package alternatives

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/consortium-simulator/pkg/mathutil"
)

// BidKind is how a simplified consortium bid is paid.
type BidKind int

const (
	// BidFree is paid out of pocket on top of the installments.
	BidFree BidKind = iota
	// BidEmbedded is deducted from the credit letter.
	BidEmbedded
	// BidBoth splits the bid between the two.
	BidBoth
)

func (k BidKind) String() string {
	switch k {
	case BidFree:
		return "free"
	case BidEmbedded:
		return "embedded"
	case BidBoth:
		return "both"
	}
	return fmt.Sprintf("BidKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k BidKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BidKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBidKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseBidKind accepts "free"/"livre", "embedded"/"embutido" and "both"/"ambos".
func ParseBidKind(value string) (BidKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "free", "livre":
		return BidFree, nil
	case "embedded", "embutido":
		return BidEmbedded, nil
	case "both", "ambos":
		return BidBoth, nil
	}
	return BidFree, fmt.Errorf("unknown bid kind %q", value)
}

// ConsortiumCostInput describes the simplified consortium used in comparisons.
type ConsortiumCostInput struct {
	Value              float64 `json:"value"`
	TermMonths         int     `json:"termMonths"`
	AdminFeePercent    float64 `json:"adminFeePercent"`
	ReserveFundPercent float64 `json:"reserveFundPercent"`
	BidPercent         float64 `json:"bidPercent"`
	BidKind            BidKind `json:"bidKind"`
	// EmbeddedSharePercent is the embedded part of a BidBoth bid.
	EmbeddedSharePercent float64 `json:"embeddedSharePercent"`
}

// ConsortiumCostResult is the cost summary of a simplified consortium.
type ConsortiumCostResult struct {
	Value              float64 `json:"value"`
	MonthlyInstallment float64 `json:"monthlyInstallment"`
	TotalCost          float64 `json:"totalCost"`
	AdminFeeTotal      float64 `json:"adminFeeTotal"`
	ReserveFundTotal   float64 `json:"reserveFundTotal"`
	BidValue           float64 `json:"bidValue"`
	FreeBidValue       float64 `json:"freeBidValue"`
	EmbeddedBidValue   float64 `json:"embeddedBidValue"`
	BidKind            BidKind `json:"bidKind"`
}

// ConsortiumCost charges the admin fee and reserve fund on the letter net of
// any embedded bid and spreads the result over the term. A free bid is paid
// on top and counts toward the total cost only.
func ConsortiumCost(in ConsortiumCostInput) ConsortiumCostResult {
	if in.Value == 0 || in.TermMonths <= 0 {
		return ConsortiumCostResult{Value: in.Value, BidKind: in.BidKind}
	}

	bid := mathutil.ApplyPercentage(in.Value, in.BidPercent)
	var freeBid, embeddedBid float64
	base := in.Value

	if bid > 0 {
		switch in.BidKind {
		case BidEmbedded:
			embeddedBid = bid
		case BidBoth:
			embeddedBid = mathutil.ApplyPercentage(bid, in.EmbeddedSharePercent)
			freeBid = bid - embeddedBid
		default:
			freeBid = bid
		}
		base = math.Max(in.Value-embeddedBid, 0)
	}

	adminFee := mathutil.ApplyPercentage(base, in.AdminFeePercent)
	reserveFund := mathutil.ApplyPercentage(base, in.ReserveFundPercent)
	financed := base + adminFee + reserveFund

	return ConsortiumCostResult{
		Value:              in.Value,
		MonthlyInstallment: financed / float64(in.TermMonths),
		TotalCost:          financed + freeBid,
		AdminFeeTotal:      adminFee,
		ReserveFundTotal:   reserveFund,
		BidValue:           bid,
		FreeBidValue:       freeBid,
		EmbeddedBidValue:   embeddedBid,
		BidKind:            in.BidKind,
	}
}
