package mcpapi

import (
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fpl-mcp/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Code    usecase.ErrorCode `json:"code"`
	Details any               `json:"details,omitempty"`
}

func encodeEnvelope(v any) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(err, "encode envelope")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

func successResult(data any) (*mcp.CallToolResult, error) {
	text, err := encodeEnvelope(successEnvelope{Success: true, Data: data})
	if err != nil {
		return nil, err
	}
	return textResult(text, false), nil
}

// errorResult always produces an envelope; if even that cannot be encoded the
// fallback is a fixed INTERNAL_ERROR body.
func errorResult(e *usecase.Error) *mcp.CallToolResult {
	details := e.Details
	if details == nil && isUpstreamCode(e.Code) {
		details = map[string]any{"retryable": usecase.IsRetryable(e.Code)}
	}

	text, err := encodeEnvelope(errorEnvelope{
		Error:   true,
		Message: e.Message,
		Code:    e.Code,
		Details: details,
	})
	if err != nil {
		text = `{"error":true,"message":"failed to encode error response","code":"INTERNAL_ERROR"}`
	}
	return textResult(text, true)
}

func isUpstreamCode(code usecase.ErrorCode) bool {
	switch code {
	case usecase.CodeAPIUnavailable, usecase.CodeAPITimeout, usecase.CodeAPIRateLimited,
		usecase.CodeAPIInvalidResp, usecase.CodeNetworkError:
		return true
	default:
		return false
	}
}
