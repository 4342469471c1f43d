package payment

import (
	"crypto/hmac"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the raw-body HMAC delivered in the
// X-EduPay-Signature header of asynchronous webhooks. The sorted-parameter
// Verifier covers the return-redirect; webhooks sign the payload bytes.
func VerifyWebhookSignature(payload []byte, signatureHeader string, cfg Config) bool {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || cfg.Secret == "" {
		return false
	}

	decoded, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	hf, err := cfg.Algorithm.hashFunc()
	if err != nil {
		return false
	}
	mac := hmac.New(hf, []byte(cfg.Secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decoded)
}
