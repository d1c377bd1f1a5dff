package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aidul23/agent-mem/pkg/errx"
	"github.com/gofiber/fiber/v2"
)

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestErrorHandler(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name       string
		debug      bool
		err        error
		wantStatus int
		wantCode   string
		wantCause  bool
	}{
		{"registered", false, ErrJSONRequired(), http.StatusBadRequest, "HTTP.JSON_REQUIRED", false},
		{"cause hidden", false, ErrInvalidBody(cause), http.StatusBadRequest, "HTTP.INVALID_BODY", false},
		{"cause in debug", true, ErrInvalidBody(cause), http.StatusBadRequest, "HTTP.INVALID_BODY", true},
		{"fiber error", false, fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "FIBER_ERROR", false},
		{"plain error", false, cause, http.StatusInternalServerError, "INTERNAL_ERROR", false},
		{"wrapped errx", false, errx.Wrap(cause, "store down", errx.TypeExternal), http.StatusBadGateway, "EXTERNAL", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(tt.debug)})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body := decode(t, resp)
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", body["code"], tt.wantCode)
			}
			_, hasCause := body["underlying_error"]
			if hasCause != (tt.wantCause && tt.debug) {
				t.Errorf("underlying_error present = %v", hasCause)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"json", "application/json", `{"name":"x"}`, http.StatusOK},
		{"form", "application/x-www-form-urlencoded", "name=x", http.StatusBadRequest},
		{"malformed", "application/json", `{"name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
			app.Post("/", func(c *fiber.Ctx) error {
				var p payload
				if err := ParseJSON(c, &p); err != nil {
					return err
				}
				return c.SendString(p.Name)
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
