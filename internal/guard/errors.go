package guard

import (
	"errors"
	"fmt"
)

// Denial codes carried by every guarded-action denial. They are stable
// machine identifiers: the calling layer explains which gate blocked an
// action by code, never by parsing the reason text.
const (
	CodeKillSwitchExceeded = "KILL_SWITCH_EXCEEDED"
	CodeMonthlyCapExceeded = "MONTHLY_CAP_EXCEEDED"
	CodeCircuitBreakerOpen = "CIRCUIT_BREAKER_OPEN"
	CodeSafetyRuleVeto     = "SAFETY_RULE_VETO"
)

// DeniedError is the single error kind raised when any safety gate blocks
// an action. A denial must halt the remediation pipeline; callers never
// catch-and-continue past one.
type DeniedError struct {
	Code   string
	Reason string
}

// Error implements the error interface
func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// Denied creates a denial with the given machine code and human reason
func Denied(code, reason string) *DeniedError {
	return &DeniedError{Code: code, Reason: reason}
}

// IsDenied unwraps a guard denial from an error chain
func IsDenied(err error) (*DeniedError, bool) {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied, true
	}
	return nil, false
}
