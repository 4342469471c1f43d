package payment

import (
	"crypto/hmac"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Gateway parameter names shared by the outbound redirect URL and the
// inbound return-redirect.
const (
	ParamVersion       = "ep_Version"
	ParamCommand       = "ep_Command"
	ParamMerchantCode  = "ep_MerchantCode"
	ParamTerminalID    = "ep_TerminalID"
	ParamAmount        = "ep_Amount"
	ParamCurrencyCode  = "ep_CurrCode"
	ParamTxnRef        = "ep_TxnRef"
	ParamOrderInfo     = "ep_OrderInfo"
	ParamIPAddr        = "ep_IpAddr"
	ParamLocale        = "ep_Locale"
	ParamCreateDate    = "ep_CreateDate"
	ParamExpireDate    = "ep_ExpireDate"
	ParamReturnURL     = "ep_ReturnUrl"
	ParamResponseCode  = "ep_ResponseCode"
	ParamTransactionNo = "ep_TransactionNo"
	ParamBankCode      = "ep_BankCode"
	ParamPayDate       = "ep_PayDate"
	ParamSecureHash    = "ep_SecureHash"
	ParamSecureHashTyp = "ep_SecureHashType"
)

// gatewayTimeLayout is the timestamp format the gateway expects.
const gatewayTimeLayout = "20060102150405"

// CheckoutRequest is the caller-supplied part of an outbound payment URL.
type CheckoutRequest struct {
	OrderID   string
	Amount    int64 // minor currency units
	OrderInfo string
	ClientIP  string
	Locale    string
}

// Signer builds signed redirect URLs for the gateway. It is a pure function
// of its config and input; it touches neither the database nor the clock.
type Signer struct {
	cfg Config
}

func NewSigner(cfg Config) *Signer {
	return &Signer{cfg: cfg}
}

// PaymentURL assembles the full parameter set, signs it and returns the
// redirect URL the client is sent to.
func (s *Signer) PaymentURL(req CheckoutRequest, now time.Time) (string, error) {
	if strings.TrimSpace(req.OrderID) == "" {
		return "", errors.New("order id is required")
	}
	if req.Amount <= 0 {
		return "", errors.New("amount must be positive")
	}

	locale := req.Locale
	if locale == "" {
		locale = s.cfg.DefaultLocale
	}

	params := map[string]string{
		ParamVersion:      s.cfg.Version,
		ParamCommand:      s.cfg.Command,
		ParamMerchantCode: s.cfg.MerchantCode,
		ParamTerminalID:   s.cfg.TerminalID,
		// The gateway expects amounts multiplied by 100.
		ParamAmount:       fmt.Sprintf("%d", req.Amount*100),
		ParamCurrencyCode: s.cfg.CurrencyCode,
		ParamTxnRef:       req.OrderID,
		ParamOrderInfo:    req.OrderInfo,
		ParamIPAddr:       req.ClientIP,
		ParamLocale:       locale,
		ParamCreateDate:   now.Format(gatewayTimeLayout),
		ParamExpireDate:   now.Add(s.cfg.Expiry).Format(gatewayTimeLayout),
		ParamReturnURL:    s.cfg.ReturnURL,
	}

	signature, err := s.Sign(params)
	if err != nil {
		return "", err
	}

	query := encodeParams(params)
	return s.cfg.GatewayURL + "?" + query + "&" + ParamSecureHash + "=" + signature, nil
}

// Sign computes the hex HMAC over the canonical serialization of params.
// The signature fields themselves and empty values are excluded.
func (s *Signer) Sign(params map[string]string) (string, error) {
	hf, err := s.cfg.Algorithm.hashFunc()
	if err != nil {
		return "", err
	}
	mac := hmac.New(hf, []byte(s.cfg.Secret))
	mac.Write([]byte(canonicalize(params)))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// canonicalize serializes params as key=value&key=value with keys in
// lexicographic order, which normalizes insertion order on both ends.
func canonicalize(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == ParamSecureHash || k == ParamSecureHashTyp || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// encodeParams builds the query string in the same sorted order as the
// canonical form so redirect URLs are reproducible.
func encodeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
