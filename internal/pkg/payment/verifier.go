package payment

import (
	"crypto/hmac"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMissingSignature = errors.New("callback is missing the signature parameter")
	ErrBadSignature     = errors.New("callback signature does not match")
)

// Verifier checks inbound callback parameters against the shared secret.
// Verification is stateless: it depends only on the parameters and the
// config, never on database state.
type Verifier struct {
	cfg Config
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{cfg: cfg}
}

// Verify strips the signature fields, recomputes the HMAC over the
// remaining parameters and compares in constant time. Only on success does
// the caller get a VerifiedParams handle; the reconciler accepts nothing
// else, so unverified input cannot reach business state.
func (v *Verifier) Verify(params map[string]string) (*VerifiedParams, error) {
	received := strings.TrimSpace(params[ParamSecureHash])
	if received == "" {
		return nil, ErrMissingSignature
	}
	receivedMAC, err := hex.DecodeString(strings.ToLower(received))
	if err != nil {
		return nil, ErrBadSignature
	}

	clean := make(map[string]string, len(params))
	for k, val := range params {
		if k == ParamSecureHash || k == ParamSecureHashTyp {
			continue
		}
		clean[k] = val
	}

	signer := Signer{cfg: v.cfg}
	expected, err := signer.Sign(clean)
	if err != nil {
		return nil, err
	}
	expectedMAC, err := hex.DecodeString(expected)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal(expectedMAC, receivedMAC) {
		return nil, ErrBadSignature
	}
	return &VerifiedParams{values: clean}, nil
}

// VerifiedParams is the only view onto callback fields. It is produced
// exclusively by Verifier.Verify.
type VerifiedParams struct {
	values map[string]string
}

func (p *VerifiedParams) get(key string) string {
	return p.values[key]
}

// OrderID returns the transaction reference chosen at checkout.
func (p *VerifiedParams) OrderID() string {
	return p.get(ParamTxnRef)
}

// Amount returns the paid amount in minor currency units. The gateway
// transmits amounts multiplied by 100.
func (p *VerifiedParams) Amount() (int64, error) {
	raw := p.get(ParamAmount)
	if raw == "" {
		return 0, errors.New("callback has no amount field")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return n / 100, nil
}

// ResponseCode returns the gateway status code of the transaction.
func (p *VerifiedParams) ResponseCode() ResponseCode {
	return ResponseCode(p.get(ParamResponseCode))
}

// TransactionNo returns the gateway-side transaction identifier.
func (p *VerifiedParams) TransactionNo() string {
	return p.get(ParamTransactionNo)
}

// BankCode returns the code of the paying bank.
func (p *VerifiedParams) BankCode() string {
	return p.get(ParamBankCode)
}

// OrderInfo returns the free-text description echoed by the gateway.
func (p *VerifiedParams) OrderInfo() string {
	return p.get(ParamOrderInfo)
}
