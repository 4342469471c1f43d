package entitlements

import "testing"

func TestTierForAmount(t *testing.T) {
	tests := []struct {
		amount int64
		tier   Tier
		ok     bool
	}{
		{amount: BasicPrice, tier: TierBasic, ok: true},
		{amount: PremiumPrice, tier: TierPremium, ok: true},
		{amount: 1, tier: TierFree, ok: false},
		{amount: 0, tier: TierFree, ok: false},
		{amount: BasicPrice + 1, tier: TierFree, ok: false},
	}

	for _, tt := range tests {
		tier, ok := TierForAmount(tt.amount)
		if tier != tt.tier || ok != tt.ok {
			t.Fatalf("TierForAmount(%d) = (%q, %v), want (%q, %v)", tt.amount, tier, ok, tt.tier, tt.ok)
		}
	}
}

func TestPriceForTierRoundTrips(t *testing.T) {
	for _, tier := range []Tier{TierBasic, TierPremium} {
		price := PriceForTier(tier)
		if price <= 0 {
			t.Fatalf("paid tier %q has no price", tier)
		}
		got, ok := TierForAmount(price)
		if !ok || got != tier {
			t.Fatalf("TierForAmount(PriceForTier(%q)) = (%q, %v)", tier, got, ok)
		}
	}
	if PriceForTier(TierFree) != 0 {
		t.Fatalf("free tier must not have a price")
	}
}

func TestTierRankOrdering(t *testing.T) {
	if !(TierRank(TierFree) < TierRank(TierBasic) && TierRank(TierBasic) < TierRank(TierPremium)) {
		t.Fatalf("tier ranks are not strictly increasing: free=%d basic=%d premium=%d",
			TierRank(TierFree), TierRank(TierBasic), TierRank(TierPremium))
	}
}

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{in: "premium", want: TierPremium},
		{in: "basic", want: TierBasic},
		{in: "free", want: TierFree},
		{in: "", want: TierFree},
		{in: "gold", want: TierFree},
	}
	for _, tt := range tests {
		if got := NormalizeTier(tt.in); got != tt.want {
			t.Fatalf("NormalizeTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLimitsGrowWithTier(t *testing.T) {
	free := ForTier(TierFree)
	basic := ForTier(TierBasic)
	premium := ForTier(TierPremium)

	if !(free.MaxChildren <= basic.MaxChildren && basic.MaxChildren <= premium.MaxChildren) {
		t.Fatalf("child limits do not grow with tier")
	}
	if !(free.MonthlyBookings <= basic.MonthlyBookings && basic.MonthlyBookings <= premium.MonthlyBookings) {
		t.Fatalf("booking limits do not grow with tier")
	}
	if !(free.CommissionDiscount <= basic.CommissionDiscount && basic.CommissionDiscount <= premium.CommissionDiscount) {
		t.Fatalf("commission discounts do not grow with tier")
	}
	if free.CommissionDiscount != 0 {
		t.Fatalf("free tier must not discount the commission")
	}
	if premium.CommissionDiscount >= 1 {
		t.Fatalf("discount must stay below 100%%")
	}
}
