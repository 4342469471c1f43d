package payment

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidateFailsClosed(t *testing.T) {
	cfg := testConfig(AlgorithmSHA512)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete config should validate, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		missing string
	}{
		{name: "no merchant", mutate: func(c *Config) { c.MerchantCode = "" }, missing: "EDUPAY_MERCHANT_CODE"},
		{name: "no terminal", mutate: func(c *Config) { c.TerminalID = "" }, missing: "EDUPAY_TERMINAL_ID"},
		{name: "no secret", mutate: func(c *Config) { c.Secret = "" }, missing: "EDUPAY_SECRET"},
		{name: "no gateway url", mutate: func(c *Config) { c.GatewayURL = "" }, missing: "EDUPAY_GATEWAY_URL"},
		{name: "no return url", mutate: func(c *Config) { c.ReturnURL = "" }, missing: "EDUPAY_RETURN_URL"},
	}

	for _, tt := range tests {
		c := testConfig(AlgorithmSHA512)
		tt.mutate(&c)
		err := c.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
		if !strings.Contains(err.Error(), tt.missing) {
			t.Fatalf("%s: error %q does not name %s", tt.name, err, tt.missing)
		}
	}
}

func TestConfigValidateRejectsBadAlgorithm(t *testing.T) {
	cfg := testConfig("hmac-md5")
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported algorithm to be rejected")
	}
}

func TestConfigValidateRejectsNonPositiveExpiry(t *testing.T) {
	cfg := testConfig(AlgorithmSHA512)
	cfg.Expiry = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero expiry to be rejected")
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("EDUPAY_MERCHANT_CODE", "EDUMERCH01")
	t.Setenv("EDUPAY_TERMINAL_ID", "TERM01")
	t.Setenv("EDUPAY_SECRET", "top-secret")
	t.Setenv("EDUPAY_GATEWAY_URL", "https://pay.example.com/paymentv2")
	t.Setenv("EDUPAY_RETURN_URL", "https://learn.example.com/payments/return")

	cfg, err := NewConfigFromEnv()
	if err != nil {
		t.Fatalf("NewConfigFromEnv returned error: %v", err)
	}
	if cfg.Algorithm != AlgorithmSHA512 {
		t.Fatalf("default algorithm = %q, want %q", cfg.Algorithm, AlgorithmSHA512)
	}
	if cfg.Command != "pay" || cfg.CurrencyCode != "VND" {
		t.Fatalf("unexpected defaults: command=%q currency=%q", cfg.Command, cfg.CurrencyCode)
	}
	if cfg.Expiry != 15*time.Minute {
		t.Fatalf("expiry = %s, want 15m", cfg.Expiry)
	}
}

func TestNewConfigFromEnvFailsWithoutSecret(t *testing.T) {
	t.Setenv("EDUPAY_MERCHANT_CODE", "EDUMERCH01")
	t.Setenv("EDUPAY_TERMINAL_ID", "TERM01")
	t.Setenv("EDUPAY_SECRET", "")
	t.Setenv("EDUPAY_GATEWAY_URL", "https://pay.example.com/paymentv2")
	t.Setenv("EDUPAY_RETURN_URL", "https://learn.example.com/payments/return")

	if _, err := NewConfigFromEnv(); err == nil {
		t.Fatalf("expected incomplete env to fail, not fall back to a default secret")
	}
}
