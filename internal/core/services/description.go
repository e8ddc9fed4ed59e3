package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/utils"
	"github.com/shopspring/decimal"
)

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// DescribeEntry derives the human-readable summary of an entry. A caller-supplied
// description in meta wins; otherwise the output depends only on kind, amount and meta.
func DescribeEntry(kind domain.Kind, amount decimal.Decimal, points int64, meta domain.Metadata) string {
	if d := strings.TrimSpace(meta.Description); d != "" {
		return d
	}

	amt := utils.FormatNaira(amount)

	switch kind {
	case domain.KindDataPurchase, domain.KindAirtimePurchase:
		desc := fmt.Sprintf("%s of %s to %s via %s", kind, amt, orDefault(meta.Phone, "Unknown"), orDefault(meta.Provider, "Unknown"))
		if meta.PlanLabel != "" {
			desc += fmt.Sprintf(" (%s)", meta.PlanLabel)
		}
		return desc
	case domain.KindBillPayment:
		return fmt.Sprintf("%s of %s to %s (%s)", kind, amt, orDefault(meta.Recipient, "Unknown"), orDefault(meta.Category, "General"))
	case domain.KindBetting:
		desc := fmt.Sprintf("Betting - %s (%s)", orDefault(meta.Recipient, "Unknown"), amt)
		if meta.PlanLabel != "" {
			desc += fmt.Sprintf(" [%s]", meta.PlanLabel)
		}
		return desc
	case domain.KindTransfer:
		return fmt.Sprintf("Transfer of %s to %s", amt, orDefault(meta.Recipient, "Unknown"))
	case domain.KindRewardRedeem:
		if points < 0 {
			points = -points
		}
		return fmt.Sprintf("Redeemed %d points for %s", points, amt)
	case domain.KindRewardEarn:
		return fmt.Sprintf("Earned %d reward points", points)
	default:
		return fmt.Sprintf("%s of %s", orDefault(string(kind), "Transaction"), amt)
	}
}
