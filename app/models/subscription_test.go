package models

import (
	"testing"
	"time"
)

func TestSubscriptionIsActive(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{name: "paid and valid", sub: Subscription{Tier: TierBasic, ValidUntil: &future}, want: true},
		{name: "paid but expired", sub: Subscription{Tier: TierPremium, ValidUntil: &past}, want: false},
		{name: "free tier", sub: Subscription{Tier: TierFree, ValidUntil: &future}, want: false},
		{name: "no validity", sub: Subscription{Tier: TierBasic}, want: false},
	}

	for _, tt := range tests {
		if got := tt.sub.IsActive(now); got != tt.want {
			t.Fatalf("%s: IsActive = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPendingPaymentIsSettled(t *testing.T) {
	if (&PendingPayment{Status: PaymentStatusPending}).IsSettled() {
		t.Fatalf("pending order must not be settled")
	}
	if !(&PendingPayment{Status: PaymentStatusSuccess}).IsSettled() {
		t.Fatalf("successful order must be settled")
	}
	if !(&PendingPayment{Status: PaymentStatusFailed}).IsSettled() {
		t.Fatalf("failed order must be settled")
	}
}
