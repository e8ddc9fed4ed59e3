package domain

// Kind is the closed set of ledger entry kinds. The string value is the wire label.
type Kind string

const (
	KindDeposit         Kind = "Deposit"
	KindWithdrawal      Kind = "Withdrawal"
	KindTransfer        Kind = "Transfer"
	KindAddMoney        Kind = "Add Money"
	KindDataPurchase    Kind = "Data Purchase"
	KindAirtimePurchase Kind = "Airtime Purchase"
	KindBillPayment     Kind = "Bill Payment"
	KindBetting         Kind = "Betting"
	KindRewardEarn      Kind = "Reward Points"
	KindRewardRedeem    Kind = "Reward Redemption"
)

// Effect describes what a kind does to the currency balance.
type Effect int

const (
	EffectNone Effect = iota
	EffectCredit
	EffectDebit
)

// AllKinds lists every known kind in declaration order.
var AllKinds = []Kind{
	KindDeposit,
	KindWithdrawal,
	KindTransfer,
	KindAddMoney,
	KindDataPurchase,
	KindAirtimePurchase,
	KindBillPayment,
	KindBetting,
	KindRewardEarn,
	KindRewardRedeem,
}

// ParseKind maps a wire label to a Kind. Unrecognised labels are kept as-is;
// use Known to tell them apart.
func ParseKind(label string) Kind {
	return Kind(label)
}

// Known reports whether k is one of the declared kinds.
func (k Kind) Known() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Effect returns the balance effect of the kind. Unknown kinds have no effect.
func (k Kind) Effect() Effect {
	switch k {
	case KindDeposit, KindAddMoney, KindRewardRedeem:
		return EffectCredit
	case KindWithdrawal, KindTransfer, KindDataPurchase, KindAirtimePurchase, KindBillPayment, KindBetting:
		return EffectDebit
	default:
		return EffectNone
	}
}

// AwardsPoints reports whether applying the kind earns the fixed reward side entry.
func (k Kind) AwardsPoints() bool {
	return k != KindRewardEarn && k != KindRewardRedeem
}

// RequiresPIN reports whether a caller must present the transaction PIN.
func (k Kind) RequiresPIN() bool {
	return k != KindDeposit && k != KindAddMoney
}

// IsReward reports whether the kind moves reward points.
func (k Kind) IsReward() bool {
	return k == KindRewardEarn || k == KindRewardRedeem
}

func (k Kind) String() string {
	return string(k)
}
