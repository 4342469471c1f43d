package payment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Kind classifies what a payment order buys. The kind prefix leads the
// order id so inbound memos can be classified before any lookup.
type Kind string

const (
	KindSubscription Kind = "SUBS"
	KindBooking      Kind = "BOOK"
)

// NewOrderID generates an order id of the form PREFIX_xxxxxxxx_millis,
// e.g. SUBS_ab12cd34_1700000000000. The random segment keeps ids unique
// within a millisecond, the timestamp makes them globally sortable.
func NewOrderID(kind Kind, now time.Time) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%s_%s_%d", kind, hex.EncodeToString(b), now.UnixMilli())
}

// ParseOrderID classifies an order id by its kind prefix.
func ParseOrderID(orderID string) (Kind, bool) {
	switch {
	case strings.HasPrefix(orderID, string(KindSubscription)+"_"):
		return KindSubscription, true
	case strings.HasPrefix(orderID, string(KindBooking)+"_"):
		return KindBooking, true
	default:
		return "", false
	}
}

// memoSeparators are the characters banks use to join transfer memo
// segments. Order ids only contain underscores, so they survive the split.
func isMemoSeparator(r rune) bool {
	return r == '.' || r == '-' || r == ' '
}

// ParseMemo extracts the order id from a free-text bank transfer memo.
// Banks prepend their own reference segments; the application order id is
// the final segment. A memo whose last segment lacks a known kind prefix
// is not one of our payments and is ignored without error.
func ParseMemo(memo string) (orderID string, kind Kind, ok bool) {
	fields := strings.FieldsFunc(memo, isMemoSeparator)
	if len(fields) == 0 {
		return "", "", false
	}
	last := strings.TrimSpace(fields[len(fields)-1])
	k, ok := ParseOrderID(last)
	if !ok {
		return "", "", false
	}
	return last, k, true
}
