package usecase

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/platform/resilience"
)

// ErrorCode is the closed set of codes surfaced in error envelopes.
type ErrorCode string

const (
	CodeValidationError  ErrorCode = "VALIDATION_ERROR"
	CodeInvalidPlayerID  ErrorCode = "INVALID_PLAYER_ID"
	CodeInvalidGameweek  ErrorCode = "INVALID_GAMEWEEK"
	CodeInvalidTeamID    ErrorCode = "INVALID_TEAM_ID"
	CodeAPIUnavailable   ErrorCode = "API_UNAVAILABLE"
	CodeAPITimeout       ErrorCode = "API_TIMEOUT"
	CodeAPIRateLimited   ErrorCode = "API_RATE_LIMITED"
	CodeAPIInvalidResp   ErrorCode = "API_INVALID_RESPONSE"
	CodePlayerNotFound   ErrorCode = "PLAYER_NOT_FOUND"
	CodeTeamNotFound     ErrorCode = "TEAM_NOT_FOUND"
	CodeGameweekNotFound ErrorCode = "GAMEWEEK_NOT_FOUND"
	CodeNoDataAvailable  ErrorCode = "NO_DATA_AVAILABLE"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeNetworkError     ErrorCode = "NETWORK_ERROR"
)

var (
	// ErrUpstreamTimeout marks upstream calls that ran out of time.
	ErrUpstreamTimeout       = errors.New("upstream request timed out")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Error is the result type every service returns on failure. Its code is
// passed through Classify unchanged.
type Error struct {
	Code    ErrorCode
	Message string
	Details any
	cause   error
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewErrorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func WrapError(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// UpstreamError is a non-2xx response from the FPL API.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s responded with status %d", e.Endpoint, e.StatusCode)
}

// Classify maps any failure onto the error taxonomy. Rules apply in order:
// domain errors keep their code, then 429, connection failures, timeouts,
// server-side failures, and finally anything unrecognized.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var upstreamErr *UpstreamError
	hasStatus := errors.As(err, &upstreamErr)

	switch {
	case hasStatus && upstreamErr.StatusCode == 429:
		return WrapError(err, CodeAPIRateLimited, "FPL API rate limit exceeded, please try again later")
	case isConnectionFailure(err):
		return WrapError(err, CodeNetworkError, "unable to reach the FPL API")
	case isTimeout(err):
		return WrapError(err, CodeAPITimeout, "FPL API request timed out")
	case hasStatus && upstreamErr.StatusCode >= 500,
		errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, ErrDependencyUnavailable):
		return WrapError(err, CodeAPIUnavailable, "FPL API is currently unavailable")
	default:
		return WrapError(err, CodeAPIInvalidResp, "unexpected response from the FPL API")
	}
}

// IsRetryable reports whether a caller may retry a failed call with this code.
// Nothing in this server retries automatically.
func IsRetryable(code ErrorCode) bool {
	switch code {
	case CodeAPITimeout, CodeNetworkError, CodeAPIUnavailable:
		return true
	default:
		return false
	}
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return !dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return !opErr.Timeout()
	}

	return false
}

func isTimeout(err error) bool {
	if errors.Is(err, ErrUpstreamTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
