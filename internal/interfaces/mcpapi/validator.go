package mcpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-mcp/internal/usecase"
)

// FieldViolation describes one rejected argument.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// Validator decodes tool arguments and checks them against the request
// struct tags. It reports every violation, never only the first, and never
// touches the network.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: v}
}

// Bind fills dst (a pointer to a request struct) from raw JSON arguments.
// Failures are VALIDATION_ERROR domain errors.
func (v *Validator) Bind(ctx context.Context, raw json.RawMessage, dst any) error {
	ctx, span := startSpan(ctx, "mcpapi.Validator.Bind")
	defer span.End()

	fields := make(map[string]json.RawMessage)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := sonic.Unmarshal(trimmed, &fields); err != nil {
			return validationError([]FieldViolation{{
				Path:    "",
				Message: "arguments must be a JSON object",
				Rule:    "type",
			}})
		}
	}

	violations, mistyped := decodeFields(fields, dst)

	if err := v.validate.StructCtx(ctx, dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return usecase.WrapError(err, usecase.CodeInternalError, "argument validation failed")
		}
		for _, fe := range fieldErrs {
			path := fieldPath(fe)
			if mistyped[rootField(path)] {
				continue
			}
			violations = append(violations, FieldViolation{
				Path:    path,
				Message: violationMessage(path, fe),
				Rule:    fe.Tag(),
			})
		}
	}

	if len(violations) > 0 {
		return validationError(violations)
	}
	return nil
}

// decodeFields decodes each present field on its own so a type mismatch in one
// argument does not hide problems in the others.
func decodeFields(fields map[string]json.RawMessage, dst any) ([]FieldViolation, map[string]bool) {
	violations := make([]FieldViolation, 0)
	mistyped := make(map[string]bool)

	target := reflect.ValueOf(dst).Elem()
	targetType := target.Type()
	for i := 0; i < targetType.NumField(); i++ {
		name := jsonFieldName(targetType.Field(i))
		raw, ok := fields[name]
		if !ok || name == "" {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if err := sonic.Unmarshal(raw, target.Field(i).Addr().Interface()); err != nil {
			mistyped[name] = true
			violations = append(violations, FieldViolation{
				Path:    name,
				Message: fmt.Sprintf("%s must be %s", name, describeType(targetType.Field(i).Type)),
				Rule:    "type",
			})
		}
	}
	return violations, mistyped
}

func validationError(violations []FieldViolation) error {
	messages := make([]string, 0, len(violations))
	for _, item := range violations {
		messages = append(messages, item.Message)
	}
	return usecase.NewError(usecase.CodeValidationError, "invalid arguments: "+strings.Join(messages, "; ")).
		WithDetails(violations)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldPath drops the struct name validator puts in front of every namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func rootField(path string) string {
	if idx := strings.IndexAny(path, ".["); idx >= 0 {
		return path[:idx]
	}
	return path
}

func violationMessage(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "unique":
		return fmt.Sprintf("%s must not contain duplicate values", path)
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at least %s items", path, fe.Param())
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", path, fe.Param())
		default:
			return fmt.Sprintf("%s must be greater than or equal to %s", path, fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at most %s items", path, fe.Param())
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", path, fe.Param())
		default:
			return fmt.Sprintf("%s must be less than or equal to %s", path, fe.Param())
		}
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Slice:
		return "an array of " + strings.TrimPrefix(strings.TrimPrefix(describeType(t.Elem()), "an "), "a ") + "s"
	default:
		return "a " + t.Kind().String()
	}
}
