package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/jobqueue"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/payment"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/session"
)

// webhookSignatureHeader carries the hex HMAC of the raw request body.
const webhookSignatureHeader = "X-EduPay-Signature"

// bankWebhookPayload is the JSON body the gateway posts for incoming bank
// transfers.
type bankWebhookPayload struct {
	TransactionID string `json:"transaction_id"`
	Content       string `json:"content"`
	Amount        int64  `json:"amount"`
	BankCode      string `json:"bank_code"`
	Timestamp     int64  `json:"timestamp"`
}

// HandlePaymentWebhook processes asynchronous bank-transfer notifications.
// The gateway retries non-2xx responses, so only outcomes a retry could fix
// return an error status.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()

	sigValid := paymentService.VerifyWebhookBody(body, c.Get(webhookSignatureHeader))

	var payload bankWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warnf("webhook: unparseable payload: %v", err)
		return jsonError(c, fiber.StatusBadRequest, "bad_payload", "Invalid JSON body")
	}

	receivedAt := time.Now()
	if payload.Timestamp > 0 {
		receivedAt = time.UnixMilli(payload.Timestamp)
	}

	result, err := paymentService.ProcessBankWebhook(c.Context(), payment.BankTransferNotification{
		TransactionID:  payload.TransactionID,
		Memo:           payload.Content,
		Amount:         payload.Amount,
		BankCode:       payload.BankCode,
		ReceivedAt:     receivedAt,
		RawJSON:        string(body),
		SignatureValid: sigValid,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrBadSignature):
			log.Warnf("webhook: invalid signature for txn %s", payload.TransactionID)
			return jsonError(c, fiber.StatusUnauthorized, "invalid_signature", "Signature verification failed")
		case errors.Is(err, payment.ErrOrderNotFound):
			log.Warnf("webhook: unknown order in memo %q", payload.Content)
			return jsonError(c, fiber.StatusNotFound, "order_not_found", "No matching order")
		case errors.Is(err, payment.ErrAmountMismatch):
			log.Warnf("webhook: amount mismatch for order %s", result.OrderID)
			return jsonError(c, fiber.StatusUnprocessableEntity, "amount_mismatch", "Transferred amount below expected")
		case errors.Is(err, payment.ErrOrderClosed):
			log.Warnf("webhook: order %s already closed", result.OrderID)
			return jsonError(c, fiber.StatusConflict, "order_closed", "Order already failed")
		default:
			log.Errorf("webhook: processing failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Processing failed, please retry")
		}
	}

	if result.Success && !result.Duplicate && !result.Ignored && !result.Replayed {
		if err := jobqueue.EnqueuePaymentReceipt(result.OrderID); err != nil {
			log.Warnf("webhook: failed to enqueue receipt for %s: %v", result.OrderID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":   result.Success,
		"duplicate": result.Duplicate,
		"ignored":   result.Ignored,
		"order_id":  result.OrderID,
	})
}

// HandlePaymentReturn handles the browser redirect back from the gateway.
func HandlePaymentReturn(c *fiber.Ctx) error {
	params := make(map[string]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})

	result, err := paymentService.ProcessReturn(c.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingSignature), errors.Is(err, payment.ErrBadSignature):
			return jsonError(c, fiber.StatusBadRequest, "invalid_signature", "Signature verification failed")
		case errors.Is(err, payment.ErrOrderNotFound):
			return jsonError(c, fiber.StatusNotFound, "order_not_found", "No matching order")
		case errors.Is(err, payment.ErrOrderClosed):
			return jsonError(c, fiber.StatusConflict, "order_closed", "Order already failed")
		default:
			log.Errorf("payment return: processing failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Processing failed")
		}
	}

	if result.Settled {
		// The subscription tier may have just changed; invalidate the
		// session cache so the middleware re-reads it.
		_ = session.DeleteSessionValue(c, middleware.SessionKeyUserTier)
	}

	return c.JSON(fiber.Map{
		"order_id": result.OrderID,
		"code":     result.Code,
		"message":  result.Message,
		"settled":  result.Settled,
	})
}
