package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestVerifyWebhookSignature(t *testing.T) {
	cfg := testConfig(AlgorithmSHA512)
	payload := []byte(`{"transaction_id":"txn-1","amount":200000}`)

	mac := hmac.New(sha512.New, []byte(cfg.Secret))
	mac.Write(payload)
	validSig := hex.EncodeToString(mac.Sum(nil))

	if !VerifyWebhookSignature(payload, validSig, cfg) {
		t.Fatalf("expected signature to validate")
	}
	if VerifyWebhookSignature(payload, "deadbeef", cfg) {
		t.Fatalf("expected invalid signature to fail")
	}
	if VerifyWebhookSignature(payload, "", cfg) {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifyWebhookSignature([]byte(`{"tampered":true}`), validSig, cfg) {
		t.Fatalf("expected tampered payload to fail")
	}

	noSecret := cfg
	noSecret.Secret = ""
	if VerifyWebhookSignature(payload, validSig, noSecret) {
		t.Fatalf("expected missing secret to fail closed")
	}
}
