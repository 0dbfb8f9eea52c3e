package usecase

import (
	"context"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutNetError struct{}

func (timeoutNetError) Error() string   { return "i/o timeout" }
func (timeoutNetError) Timeout() bool   { return true }
func (timeoutNetError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "rate limited", err: &UpstreamError{Endpoint: "/fixtures/", StatusCode: 429}, want: CodeAPIRateLimited},
		{name: "wrapped rate limit", err: errors.Wrap(&UpstreamError{StatusCode: 429}, "fetch"), want: CodeAPIRateLimited},
		{name: "connection refused", err: errors.Wrap(refused, "GET /fixtures/"), want: CodeNetworkError},
		{name: "host not found", err: &net.DNSError{Err: "no such host", Name: "fantasy.premierleague.com", IsNotFound: true}, want: CodeNetworkError},
		{name: "timeout marker", err: errors.Mark(errors.New("deadline"), ErrUpstreamTimeout), want: CodeAPITimeout},
		{name: "context deadline", err: errors.Wrap(context.DeadlineExceeded, "GET"), want: CodeAPITimeout},
		{name: "net timeout", err: &net.OpError{Op: "read", Net: "tcp", Err: timeoutNetError{}}, want: CodeAPITimeout},
		{name: "server error", err: &UpstreamError{StatusCode: 502}, want: CodeAPIUnavailable},
		{name: "circuit open", err: errors.Wrap(resilience.ErrCircuitOpen, "GET"), want: CodeAPIUnavailable},
		{name: "not found status", err: &UpstreamError{StatusCode: 404}, want: CodeAPIInvalidResp},
		{name: "decode failure", err: errors.New("decode payload: unexpected end of JSON input"), want: CodeAPIInvalidResp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Code)
			assert.NotEmpty(t, got.Message)
			assert.True(t, errors.Is(got, tc.err), "classified error keeps its cause")
		})
	}
}

func TestClassify_DomainErrorPassesThrough(t *testing.T) {
	domainErr := NewError(CodePlayerNotFound, "player with id 7 not found")

	assert.Same(t, domainErr, Classify(domainErr))
	assert.Same(t, domainErr, Classify(errors.Wrap(domainErr, "get player stats")))
	assert.Nil(t, Classify(nil))
}

func TestIsRetryable(t *testing.T) {
	retryable := map[ErrorCode]bool{
		CodeAPITimeout:     true,
		CodeNetworkError:   true,
		CodeAPIUnavailable: true,
	}
	all := []ErrorCode{
		CodeValidationError, CodeInvalidPlayerID, CodeInvalidGameweek, CodeInvalidTeamID,
		CodeAPIUnavailable, CodeAPITimeout, CodeAPIRateLimited, CodeAPIInvalidResp,
		CodePlayerNotFound, CodeTeamNotFound, CodeGameweekNotFound, CodeNoDataAvailable,
		CodeInternalError, CodeNetworkError,
	}
	for _, code := range all {
		assert.Equal(t, retryable[code], IsRetryable(code), string(code))
	}
}

func TestError_Message(t *testing.T) {
	err := WrapError(errors.New("boom"), CodeNoDataAvailable, "reference data unavailable")
	assert.Equal(t, "NO_DATA_AVAILABLE: reference data unavailable: boom", err.Error())
	assert.Equal(t, "TEAM_NOT_FOUND: team with id 21 not found", NewErrorf(CodeTeamNotFound, "team with id %d not found", 21).Error())
}
