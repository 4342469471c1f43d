package payment

// ResponseCode is a gateway-defined transaction status code.
type ResponseCode string

const (
	CodeSuccess           ResponseCode = "00"
	CodeSuspectedFraud    ResponseCode = "07"
	CodeNotRegistered     ResponseCode = "09"
	CodeAuthFailed        ResponseCode = "10"
	CodeExpired           ResponseCode = "11"
	CodeAccountLocked     ResponseCode = "12"
	CodeWrongOTP          ResponseCode = "13"
	CodeCancelled         ResponseCode = "24"
	CodeInsufficientFunds ResponseCode = "51"
	CodeLimitExceeded     ResponseCode = "65"
	CodeBankMaintenance   ResponseCode = "75"
	CodePasswordAttempts  ResponseCode = "79"
	CodeUnknown           ResponseCode = "99"
)

var codeMessages = map[ResponseCode]string{
	CodeSuccess:           "transaction successful",
	CodeSuspectedFraud:    "amount deducted, transaction held for fraud review",
	CodeNotRegistered:     "card or account not registered for online payments",
	CodeAuthFailed:        "customer authentication failed more than three times",
	CodeExpired:           "payment window expired",
	CodeAccountLocked:     "customer account is locked",
	CodeWrongOTP:          "wrong one-time password",
	CodeCancelled:         "transaction cancelled by customer",
	CodeInsufficientFunds: "insufficient funds",
	CodeLimitExceeded:     "daily transaction limit exceeded",
	CodeBankMaintenance:   "issuing bank under maintenance",
	CodePasswordAttempts:  "payment password entered wrong too many times",
	CodeUnknown:           "other gateway error",
}

// Success reports whether the code is the gateway's success status.
func (c ResponseCode) Success() bool {
	return c == CodeSuccess
}

// Message returns the human-readable status for the code. Every defined
// code has an entry; unknown codes fall through to the generic message.
func (c ResponseCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return codeMessages[CodeUnknown]
}
