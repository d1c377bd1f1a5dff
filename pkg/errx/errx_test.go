package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BAD_INPUT", TypeValidation, http.StatusBadRequest, "bad input")

	if code != "TEST.BAD_INPUT" {
		t.Fatalf("expected prefixed code, got %s", code)
	}

	err := reg.New(code).WithDetail("field", "name")
	if err.Type != TypeValidation {
		t.Errorf("expected validation type, got %s", err.Type)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Details["field"] != "name" {
		t.Errorf("expected detail to be set, got %v", err.Details)
	}

	t.Run("duplicate registration panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		reg.Register("BAD_INPUT", TypeValidation, http.StatusBadRequest, "again")
	})
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "nothing", TypeInternal) != nil {
		t.Fatal("wrapping nil should yield nil")
	}

	cause := errors.New("connection refused")
	err := Wrap(cause, "recall failed", TypeExternal)
	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", err.HTTPStatus)
	}

	outer := fmt.Errorf("handler: %w", err)
	if !IsType(outer, TypeExternal) {
		t.Error("IsType should see through fmt wrapping")
	}
	if IsType(outer, TypeValidation) {
		t.Error("IsType matched the wrong type")
	}
	if e, ok := As(outer); !ok || e.Message != "recall failed" {
		t.Errorf("As returned %v, %v", e, ok)
	}
}
