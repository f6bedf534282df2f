package network

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for simple checks.
var (
	ErrCancelled  = errors.New("transaction cancelled by user")
	ErrNoAccounts = errors.New("wallet has no accounts")
)

// NetworkError is returned when an HTTP call to the node fails before submission.
type NetworkError struct {
	Op     string
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status code %d: %s", e.Op, e.URL, e.Status, e.Body)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError returns true if err is or wraps a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// EncodingError is returned when the node rejects the encode request.
type EncodingError struct {
	Status int
	Body   string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to encode transaction: %v", e.Err)
	}
	return fmt.Sprintf("failed to encode transaction (status %d): %s", e.Status, e.Body)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// IsEncodingError returns true if err is or wraps an EncodingError.
func IsEncodingError(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}

// SigningError is returned when the wallet refuses or fails to sign.
type SigningError struct {
	Address string
	Err     error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign transaction for %s: %v", e.Address, e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// IsSigningError returns true if err is or wraps a SigningError.
func IsSigningError(err error) bool {
	var se *SigningError
	return errors.As(err, &se)
}

// AmountViolation is one "amount" field whose value starts with a leading zero.
// Path is relative to the message at MsgIndex.
type AmountViolation struct {
	MsgIndex int    `json:"msg_index" yaml:"msg_index"`
	Path     string `json:"path" yaml:"path"`
	Amount   any    `json:"amount" yaml:"amount"`
}

func (v AmountViolation) String() string {
	return fmt.Sprintf("msgs[%d] %s: %v", v.MsgIndex, v.Path, v.Amount)
}

// LeadingZeroAmountsError blocks a send whose messages carry leading-zero amounts,
// which the chain decodes as hexadecimal.
type LeadingZeroAmountsError struct {
	Violations []AmountViolation
}

func (e *LeadingZeroAmountsError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "leading zero amounts are interpreted by the chain as hex not int: " + strings.Join(parts, ", ")
}
