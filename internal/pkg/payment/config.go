package payment

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/env"
)

// Gateway is the provider key stored on webhook events and payment rows.
const Gateway = "edupay"

// Algorithm selects the HMAC variant of the gateway contract.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "hmac-sha256"
	AlgorithmSHA512 Algorithm = "hmac-sha512"
)

func (a Algorithm) hashFunc() (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported signature algorithm: %q", a)
	}
}

// Config carries the merchant contract with the bank gateway. It is built
// once at startup and validated eagerly; a missing secret or merchant id
// aborts startup instead of degrading into an unsigned test mode.
type Config struct {
	MerchantCode string
	TerminalID   string
	Secret       string
	Algorithm    Algorithm
	GatewayURL   string
	ReturnURL    string

	Version       string
	Command       string
	CurrencyCode  string
	DefaultLocale string
	Expiry        time.Duration
}

// NewConfigFromEnv reads the gateway contract from the environment. All
// security-relevant fields are required.
func NewConfigFromEnv() (Config, error) {
	cfg := Config{
		MerchantCode:  strings.TrimSpace(env.GetEnv("EDUPAY_MERCHANT_CODE", "")),
		TerminalID:    strings.TrimSpace(env.GetEnv("EDUPAY_TERMINAL_ID", "")),
		Secret:        strings.TrimSpace(env.GetEnv("EDUPAY_SECRET", "")),
		Algorithm:     Algorithm(strings.ToLower(strings.TrimSpace(env.GetEnv("EDUPAY_ALGORITHM", string(AlgorithmSHA512))))),
		GatewayURL:    strings.TrimSpace(env.GetEnv("EDUPAY_GATEWAY_URL", "")),
		ReturnURL:     strings.TrimSpace(env.GetEnv("EDUPAY_RETURN_URL", "")),
		Version:       env.GetEnv("EDUPAY_VERSION", "2.1.0"),
		Command:       "pay",
		CurrencyCode:  env.GetEnv("EDUPAY_CURRENCY", "VND"),
		DefaultLocale: env.GetEnv("EDUPAY_LOCALE", "vn"),
		Expiry:        15 * time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field needed to sign and verify is present.
func (c Config) Validate() error {
	var missing []string
	if c.MerchantCode == "" {
		missing = append(missing, "EDUPAY_MERCHANT_CODE")
	}
	if c.TerminalID == "" {
		missing = append(missing, "EDUPAY_TERMINAL_ID")
	}
	if c.Secret == "" {
		missing = append(missing, "EDUPAY_SECRET")
	}
	if c.GatewayURL == "" {
		missing = append(missing, "EDUPAY_GATEWAY_URL")
	}
	if c.ReturnURL == "" {
		missing = append(missing, "EDUPAY_RETURN_URL")
	}
	if len(missing) > 0 {
		return errors.New("payment gateway config incomplete, missing: " + strings.Join(missing, ", "))
	}
	if _, err := c.Algorithm.hashFunc(); err != nil {
		return err
	}
	if c.Expiry <= 0 {
		return errors.New("payment gateway expiry must be positive")
	}
	return nil
}
