package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("underlying")
	err := Wrap(CodeInternal, cause, "operation failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be findable")
	}
	if err.Code() != CodeInternal {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	typed := New(CodeNotFound, "transaction not found")
	wrapped := fmt.Errorf("handler: %w", typed)

	found := As(wrapped)
	if found == nil {
		t.Fatal("expected typed error")
	}
	if found.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", found.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "missing required field: tipo").
		WithDetails(map[string]any{"field": "tipo"})

	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details())
	}
	if details["field"] != "tipo" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestErrorStringIncludesCode(t *testing.T) {
	err := New(CodeRateLimit, "rate limit exceeded")
	if err.Error() != "RATE_LIMIT_EXCEEDED: rate limit exceeded" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}
