package entitlements

import "strings"

type Tier string

const (
	TierFree    Tier = "free"
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

// Fixed subscription price points in minor currency units per billing month.
const (
	BasicPrice   int64 = 200000
	PremiumPrice int64 = 500000
)

// Limits describes what a tier entitles a parent account to.
type Limits struct {
	MaxChildren        int
	MonthlyBookings    int
	CommissionDiscount float64 // fraction subtracted from the platform commission
}

// ForTier returns the entitlement limits of a tier.
func ForTier(tier Tier) Limits {
	switch tier {
	case TierPremium:
		return Limits{MaxChildren: 5, MonthlyBookings: 60, CommissionDiscount: 0.5}
	case TierBasic:
		return Limits{MaxChildren: 2, MonthlyBookings: 20, CommissionDiscount: 0.2}
	default:
		return Limits{MaxChildren: 1, MonthlyBookings: 4, CommissionDiscount: 0}
	}
}

// NormalizeTier maps arbitrary input to a known tier, defaulting to free.
func NormalizeTier(tier string) Tier {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case string(TierPremium):
		return TierPremium
	case string(TierBasic):
		return TierBasic
	default:
		return TierFree
	}
}

// TierRank orders tiers for comparisons; higher is better.
func TierRank(tier Tier) int {
	switch tier {
	case TierPremium:
		return 2
	case TierBasic:
		return 1
	default:
		return 0
	}
}

// TierForAmount maps an exact paid amount to the tier it buys. Amounts that
// match no price point return false; callers fall back to the tier recorded
// on the original order.
func TierForAmount(amount int64) (Tier, bool) {
	switch amount {
	case BasicPrice:
		return TierBasic, true
	case PremiumPrice:
		return TierPremium, true
	default:
		return TierFree, false
	}
}

// PriceForTier returns the checkout amount of a paid tier, or 0 for free.
func PriceForTier(tier Tier) int64 {
	switch tier {
	case TierPremium:
		return PremiumPrice
	case TierBasic:
		return BasicPrice
	default:
		return 0
	}
}
