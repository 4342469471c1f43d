package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/entitlements"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/payment"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/session"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/usercontext"
)

var paymentService *payment.Service

// InitializePaymentController wires the shared payment service, called once
// during router setup.
func InitializePaymentController(svc *payment.Service) {
	paymentService = svc
}

// HandlePricing returns the public tier table.
func HandlePricing(c *fiber.Ctx) error {
	tiers := []fiber.Map{}
	for _, tier := range []entitlements.Tier{entitlements.TierFree, entitlements.TierBasic, entitlements.TierPremium} {
		limits := entitlements.ForTier(tier)
		tiers = append(tiers, fiber.Map{
			"tier":                tier,
			"price":               entitlements.PriceForTier(tier),
			"max_children":        limits.MaxChildren,
			"monthly_bookings":    limits.MonthlyBookings,
			"commission_discount": limits.CommissionDiscount,
		})
	}
	return c.JSON(fiber.Map{"tiers": tiers})
}

// HandleSubscriptionCheckout starts a subscription purchase and hands the
// client the gateway redirect URL.
func HandleSubscriptionCheckout(c *fiber.Ctx) error {
	tier := entitlements.NormalizeTier(c.FormValue("tier", c.Query("tier")))
	if tier == entitlements.TierFree {
		return jsonError(c, fiber.StatusBadRequest, "bad_tier", "Choose a paid tier")
	}

	userID := usercontext.GetUserID(c)
	checkout, err := paymentService.CheckoutSubscription(c.Context(), userID, tier, GetClientIP(c), c.Query("locale", "vn"))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not start checkout")
	}

	// Drop the cached tier so the next request re-reads it from the DB
	// once the payment settles.
	_ = session.DeleteSessionValue(c, middleware.SessionKeyUserTier)

	return c.JSON(fiber.Map{
		"order_id":    checkout.OrderID,
		"amount":      checkout.Amount,
		"payment_url": checkout.PaymentURL,
	})
}

// HandleBookingCheckout starts payment for a pending booking batch.
func HandleBookingCheckout(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	if batchID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Batch id is required")
	}

	userID := usercontext.GetUserID(c)
	checkout, err := paymentService.CheckoutBookingBatch(c.Context(), userID, batchID, GetClientIP(c), c.Query("locale", "vn"))
	if err != nil {
		if errors.Is(err, payment.ErrEmptyBatch) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "No payable bookings in this batch")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not start checkout")
	}

	return c.JSON(fiber.Map{
		"order_id":    checkout.OrderID,
		"amount":      checkout.Amount,
		"payment_url": checkout.PaymentURL,
	})
}
