package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// baseCommissionRate is the platform commission on bookings before any
// subscription tier discount.
const baseCommissionRate = 0.15

// billingPeriodMonths is the subscription validity bought per payment.
const billingPeriodMonths = 1

var (
	ErrOrderNotFound  = errors.New("no pending payment for order id")
	ErrAmountMismatch = errors.New("paid amount below expected amount")
	ErrOrderClosed    = errors.New("payment order already failed")
	ErrEmptyBatch     = errors.New("booking batch has no payable sessions")
)

// Service ties signer, verifier, order resolution and reconciliation
// together. All state transitions go through the repository's conditional
// updates; the service holds no mutable state of its own.
type Service struct {
	cfg      Config
	repo     Repository
	signer   *Signer
	verifier *Verifier
}

// NewService creates a payment service from an injected repository.
func NewService(cfg Config, repo Repository) *Service {
	return &Service{
		cfg:      cfg,
		repo:     repo,
		signer:   NewSigner(cfg),
		verifier: NewVerifier(cfg),
	}
}

// NewServiceFromDB creates a payment service from a GORM DB handle.
func NewServiceFromDB(cfg Config, db *gorm.DB) *Service {
	return NewService(cfg, NewRepository(db))
}

// Verifier exposes the callback verifier for handlers that only need to
// check a signature.
func (s *Service) Verifier() *Verifier {
	return s.verifier
}

// VerifyWebhookBody checks the raw-body HMAC of an asynchronous webhook.
func (s *Service) VerifyWebhookBody(payload []byte, signatureHeader string) bool {
	return VerifyWebhookSignature(payload, signatureHeader, s.cfg)
}

// Checkout is the result handed back to the browser: the created order and
// the signed gateway URL to redirect to.
type Checkout struct {
	OrderID    string
	Amount     int64
	PaymentURL string
}

// CheckoutSubscription creates a pending subscription order and the signed
// redirect URL for it.
func (s *Service) CheckoutSubscription(ctx context.Context, userID uint, tier entitlements.Tier, clientIP, locale string) (*Checkout, error) {
	if userID == 0 {
		return nil, errors.New("user id is required")
	}
	price := entitlements.PriceForTier(tier)
	if price <= 0 {
		return nil, fmt.Errorf("tier %q cannot be purchased", tier)
	}

	now := time.Now()
	orderID := NewOrderID(KindSubscription, now)
	pending := &models.PendingPayment{
		OrderID: orderID,
		Kind:    models.PaymentKindSubscription,
		UserID:  userID,
		Amount:  price,
		Tier:    string(tier),
		Status:  models.PaymentStatusPending,
	}
	if err := s.repo.CreatePendingPayment(ctx, pending); err != nil {
		return nil, err
	}

	url, err := s.signer.PaymentURL(CheckoutRequest{
		OrderID:   orderID,
		Amount:    price,
		OrderInfo: fmt.Sprintf("%s subscription %s", tier, orderID),
		ClientIP:  clientIP,
		Locale:    locale,
	}, now)
	if err != nil {
		return nil, err
	}
	return &Checkout{OrderID: orderID, Amount: price, PaymentURL: url}, nil
}

// CheckoutBookingBatch creates a pending order covering every unpaid
// session in a booking batch.
func (s *Service) CheckoutBookingBatch(ctx context.Context, userID uint, batchID, clientIP, locale string) (*Checkout, error) {
	if userID == 0 || strings.TrimSpace(batchID) == "" {
		return nil, errors.New("user id and batch id are required")
	}

	bookings, err := s.repo.ListBookingsByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, b := range bookings {
		if b.ParentID != userID {
			return nil, fmt.Errorf("batch %s does not belong to user %d", batchID, userID)
		}
		if b.Status == models.BookingStatusPending {
			total += b.Price
		}
	}
	if total <= 0 {
		return nil, ErrEmptyBatch
	}

	now := time.Now()
	orderID := NewOrderID(KindBooking, now)
	pending := &models.PendingPayment{
		OrderID: orderID,
		Kind:    models.PaymentKindBooking,
		UserID:  userID,
		Amount:  total,
		BatchID: batchID,
		Status:  models.PaymentStatusPending,
	}
	if err := s.repo.CreatePendingPayment(ctx, pending); err != nil {
		return nil, err
	}

	url, err := s.signer.PaymentURL(CheckoutRequest{
		OrderID:   orderID,
		Amount:    total,
		OrderInfo: fmt.Sprintf("lesson batch %s %s", batchID, orderID),
		ClientIP:  clientIP,
		Locale:    locale,
	}, now)
	if err != nil {
		return nil, err
	}
	return &Checkout{OrderID: orderID, Amount: total, PaymentURL: url}, nil
}

// BankTransferNotification is the normalized shape of the asynchronous
// webhook payload: a free-text memo, the transferred amount and the
// gateway-side transaction identity.
type BankTransferNotification struct {
	TransactionID  string
	Memo           string
	Amount         int64
	BankCode       string
	ReceivedAt     time.Time
	RawJSON        string
	SignatureValid bool
}

// WebhookResult is the acknowledgement returned to the gateway.
type WebhookResult struct {
	Success   bool
	Duplicate bool
	Ignored   bool
	Replayed  bool
	OrderID   string
	Message   string
}

// ProcessBankWebhook reconciles one webhook delivery. Every delivery is
// persisted first; duplicates and replays acknowledge without touching
// domain state, so the gateway's at-least-once delivery applies each
// domain effect exactly once.
func (s *Service) ProcessBankWebhook(ctx context.Context, notif BankTransferNotification) (*WebhookResult, error) {
	orderID, _, ours := ParseMemo(notif.Memo)

	eventID := strings.TrimSpace(notif.TransactionID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(notif.RawJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	if !notif.SignatureValid {
		// Keep the delivery for audit, but under its own key: an unsigned
		// delivery must not consume the event id a genuine one will carry.
		created, stored, err := s.repo.CreateWebhookEventIfNotExists(ctx, &models.PaymentWebhookEvent{
			Gateway:        Gateway,
			GatewayEventID: "badsig:" + eventID,
			OrderID:        orderID,
			PayloadJSON:    notif.RawJSON,
			SignatureValid: false,
		})
		if err != nil {
			return nil, err
		}
		if created {
			_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, "invalid webhook signature")
		}
		return &WebhookResult{Success: false, Message: "invalid signature"}, ErrBadSignature
	}

	created, stored, err := s.repo.CreateWebhookEventIfNotExists(ctx, &models.PaymentWebhookEvent{
		Gateway:        Gateway,
		GatewayEventID: eventID,
		OrderID:        orderID,
		PayloadJSON:    notif.RawJSON,
		SignatureValid: true,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return &WebhookResult{Success: true, Duplicate: true, OrderID: orderID}, nil
	}

	if !ours {
		// Someone else's transfer sharing the webhook feed; not an error.
		_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, "")
		return &WebhookResult{Success: true, Ignored: true}, nil
	}

	pending, err := s.repo.GetPendingPaymentByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, "unknown order id")
			return &WebhookResult{Success: false, OrderID: orderID, Message: "order not found"}, ErrOrderNotFound
		}
		return nil, err
	}

	switch pending.Status {
	case models.PaymentStatusSuccess:
		_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, "")
		return &WebhookResult{Success: true, Replayed: true, OrderID: orderID}, nil
	case models.PaymentStatusFailed:
		_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, "order already failed")
		return &WebhookResult{Success: false, OrderID: orderID, Message: "order already closed"}, ErrOrderClosed
	}

	if notif.Amount < pending.Amount {
		msg := fmt.Sprintf("amount mismatch: got %d, expected %d", notif.Amount, pending.Amount)
		_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, msg)
		return &WebhookResult{Success: false, OrderID: orderID, Message: "amount below expected"}, ErrAmountMismatch
	}

	replayed, reconcileErr := s.reconcile(ctx, pending, notif.Amount, notif.TransactionID, notif.BankCode, time.Now())
	if reconcileErr != nil {
		// The transaction rolled back, the order is still PENDING and the
		// gateway is expected to retry.
		_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, reconcileErr.Error())
		return &WebhookResult{Success: false, OrderID: orderID, Message: "processing failed"}, reconcileErr
	}

	_ = s.repo.MarkWebhookProcessed(ctx, stored.ID, "")
	return &WebhookResult{Success: true, Replayed: replayed, OrderID: orderID}, nil
}

// ReturnResult is what the synchronous return-redirect page shows.
type ReturnResult struct {
	OrderID string
	Code    ResponseCode
	Message string
	Settled bool
}

// ProcessReturn handles the synchronous return-redirect. Nothing from the
// query string is trusted before Verify succeeds; settlement goes through
// the same conditional-update path as the webhook.
func (s *Service) ProcessReturn(ctx context.Context, params map[string]string) (*ReturnResult, error) {
	vp, err := s.verifier.Verify(params)
	if err != nil {
		return nil, err
	}

	code := vp.ResponseCode()
	result := &ReturnResult{OrderID: vp.OrderID(), Code: code, Message: code.Message()}

	pending, err := s.repo.GetPendingPaymentByOrderID(ctx, vp.OrderID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !code.Success() {
		// Definite gateway failure; close the order unless it already
		// settled through the webhook.
		_, _ = s.repo.MarkPaymentFailed(ctx, pending.OrderID, vp.TransactionNo(), now)
		return result, nil
	}

	switch pending.Status {
	case models.PaymentStatusSuccess:
		result.Settled = true
		return result, nil
	case models.PaymentStatusFailed:
		// Closed (e.g. expired) before the browser came back; a success
		// code here must not read as settled.
		return result, ErrOrderClosed
	}

	amount, err := vp.Amount()
	if err != nil {
		return nil, err
	}
	if amount < pending.Amount {
		return nil, ErrAmountMismatch
	}

	replayed, err := s.reconcile(ctx, pending, amount, vp.TransactionNo(), vp.BankCode(), now)
	if err != nil {
		return nil, err
	}
	if replayed {
		// Lost the CAS to a concurrent delivery; report what actually
		// landed on the row.
		current, err := s.repo.GetPendingPaymentByOrderID(ctx, pending.OrderID)
		if err != nil {
			return nil, err
		}
		if current.Status != models.PaymentStatusSuccess {
			return result, ErrOrderClosed
		}
	}
	result.Settled = true
	return result, nil
}

// reconcile performs the PENDING -> SUCCESS transition and the domain
// effect in one transaction. It reports replayed=true when another
// delivery won the transition first.
func (s *Service) reconcile(ctx context.Context, pending *models.PendingPayment, paidAmount int64, txnNo, bankCode string, now time.Time) (replayed bool, err error) {
	err = s.repo.Transact(ctx, func(tx Repository) error {
		won, err := tx.MarkPaymentSucceeded(ctx, pending.OrderID, txnNo, bankCode, now)
		if err != nil {
			return err
		}
		if !won {
			replayed = true
			return nil
		}
		return s.applyDomainEffect(ctx, tx, pending, paidAmount, now)
	})
	return replayed, err
}

// applyDomainEffect applies the business-state change bought by the order.
// Subscription and booking orders keep separate derivation rules; only the
// transition machinery is shared.
func (s *Service) applyDomainEffect(ctx context.Context, tx Repository, pending *models.PendingPayment, paidAmount int64, now time.Time) error {
	switch pending.Kind {
	case models.PaymentKindSubscription:
		return s.applySubscriptionEffect(ctx, tx, pending, paidAmount, now)
	case models.PaymentKindBooking:
		return s.applyBookingEffect(ctx, tx, pending, now)
	default:
		return fmt.Errorf("unknown payment kind %q on order %s", pending.Kind, pending.OrderID)
	}
}

func (s *Service) applySubscriptionEffect(ctx context.Context, tx Repository, pending *models.PendingPayment, paidAmount int64, now time.Time) error {
	// The paid amount decides the tier; unrecognized amounts (manual
	// transfers, promo prices) fall back to the tier chosen at checkout.
	tier, ok := entitlements.TierForAmount(paidAmount)
	if !ok {
		tier = entitlements.NormalizeTier(pending.Tier)
	}
	if tier == entitlements.TierFree {
		return fmt.Errorf("order %s resolves to no payable tier", pending.OrderID)
	}

	// Renewal extends the current window instead of restarting it.
	start := now
	if existing, err := tx.GetSubscriptionByUserID(ctx, pending.UserID); err == nil {
		if existing.ValidUntil != nil && existing.ValidUntil.After(now) {
			start = *existing.ValidUntil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	validUntil := start.AddDate(0, billingPeriodMonths, 0)

	return tx.UpsertSubscription(ctx, &models.Subscription{
		UserID:      pending.UserID,
		Tier:        string(tier),
		ValidUntil:  &validUntil,
		LastOrderID: pending.OrderID,
	})
}

func (s *Service) applyBookingEffect(ctx context.Context, tx Repository, pending *models.PendingPayment, now time.Time) error {
	if pending.BatchID == "" {
		return fmt.Errorf("booking order %s has no batch reference", pending.OrderID)
	}

	tier := entitlements.TierFree
	if sub, err := tx.GetSubscriptionByUserID(ctx, pending.UserID); err == nil {
		if sub.IsActive(now) {
			tier = entitlements.NormalizeTier(sub.Tier)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	rate := commissionRate(tier)

	// A zero-row update means the batch was already confirmed; the
	// status-guarded update keeps replays harmless.
	_, err := tx.ConfirmBookingBatch(ctx, pending.BatchID, now, rate)
	return err
}

// commissionRate returns the effective platform commission on a booking
// for a subscription tier.
func commissionRate(tier entitlements.Tier) float64 {
	return baseCommissionRate * (1 - entitlements.ForTier(tier).CommissionDiscount)
}
