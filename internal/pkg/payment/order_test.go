package payment

import (
	"regexp"
	"testing"
	"time"
)

func TestNewOrderIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	id := NewOrderID(KindSubscription, now)
	if ok, _ := regexp.MatchString(`^SUBS_[0-9a-f]{8}_1700000000000$`, id); !ok {
		t.Fatalf("subscription order id %q has unexpected shape", id)
	}

	id = NewOrderID(KindBooking, now)
	if ok, _ := regexp.MatchString(`^BOOK_[0-9a-f]{8}_1700000000000$`, id); !ok {
		t.Fatalf("booking order id %q has unexpected shape", id)
	}
}

func TestNewOrderIDsAreUnique(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewOrderID(KindSubscription, now)
		if seen[id] {
			t.Fatalf("duplicate order id %q within one timestamp", id)
		}
		seen[id] = true
	}
}

func TestParseOrderID(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{in: "SUBS_ab12cd34_1700000000000", kind: KindSubscription, ok: true},
		{in: "BOOK_ab12cd34_1700000000000", kind: KindBooking, ok: true},
		{in: "SUBSCRIPTION_ab12cd34_1700000000000", ok: false},
		{in: "SUBS-ab12cd34", ok: false},
		{in: "ORDER_123", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		kind, ok := ParseOrderID(tt.in)
		if ok != tt.ok || kind != tt.kind {
			t.Fatalf("ParseOrderID(%q) = (%q, %v), want (%q, %v)", tt.in, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestParseMemo(t *testing.T) {
	tests := []struct {
		memo    string
		orderID string
		kind    Kind
		ok      bool
	}{
		// Bank reference segments precede the order id.
		{
			memo:    "MBVCB.4711.transfer SUBS_ab12cd34_1700000000000",
			orderID: "SUBS_ab12cd34_1700000000000",
			kind:    KindSubscription,
			ok:      true,
		},
		{
			memo:    "FT230112-BOOK_ff00aa11_1700000000000",
			orderID: "BOOK_ff00aa11_1700000000000",
			kind:    KindBooking,
			ok:      true,
		},
		// Bare order id with no bank prefix.
		{
			memo:    "SUBS_ab12cd34_1700000000000",
			orderID: "SUBS_ab12cd34_1700000000000",
			kind:    KindSubscription,
			ok:      true,
		},
		// Unrelated transfer memos are ignored, not errors.
		{memo: "rent for january", ok: false},
		{memo: "MBVCB.4711.personal transfer", ok: false},
		{memo: "", ok: false},
		{memo: " .-. ", ok: false},
		// Prefix must lead the LAST segment.
		{memo: "SUBS_ab12cd34_1700000000000 thanks", ok: false},
	}

	for _, tt := range tests {
		orderID, kind, ok := ParseMemo(tt.memo)
		if ok != tt.ok || orderID != tt.orderID || kind != tt.kind {
			t.Fatalf("ParseMemo(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.memo, orderID, kind, ok, tt.orderID, tt.kind, tt.ok)
		}
	}
}
