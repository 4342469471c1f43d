package payment

import "testing"

func TestResponseCodeSuccess(t *testing.T) {
	if !CodeSuccess.Success() {
		t.Fatalf("expected code 00 to be success")
	}
	for _, code := range []ResponseCode{CodeCancelled, CodeInsufficientFunds, CodeUnknown, "42"} {
		if code.Success() {
			t.Fatalf("code %q must not be success", code)
		}
	}
}

func TestEveryDefinedCodeHasMessage(t *testing.T) {
	codes := []ResponseCode{
		CodeSuccess, CodeSuspectedFraud, CodeNotRegistered, CodeAuthFailed,
		CodeExpired, CodeAccountLocked, CodeWrongOTP, CodeCancelled,
		CodeInsufficientFunds, CodeLimitExceeded, CodeBankMaintenance,
		CodePasswordAttempts, CodeUnknown,
	}
	seen := map[string]bool{}
	for _, code := range codes {
		msg := code.Message()
		if msg == "" {
			t.Fatalf("code %q has no message", code)
		}
		if seen[msg] {
			t.Fatalf("message %q is shared by more than one code", msg)
		}
		seen[msg] = true
	}
}

func TestUnknownCodeFallsBackToGenericMessage(t *testing.T) {
	if got := ResponseCode("1234").Message(); got != CodeUnknown.Message() {
		t.Fatalf("unmapped code message = %q, want the generic message", got)
	}
}
