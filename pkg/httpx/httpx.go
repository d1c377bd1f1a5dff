package httpx

import (
	"net/http"

	"github.com/aidul23/agent-mem/pkg/errx"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

var ErrRegistry = errx.NewRegistry("HTTP")

var (
	CodeJSONRequired   = ErrRegistry.Register("JSON_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Request must be JSON")
	CodeInvalidBody    = ErrRegistry.Register("INVALID_BODY", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
	CodeMissingUpload  = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "file is required")
	CodeUploadTooLarge = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "file too large")
)

func ErrJSONRequired() *errx.Error {
	return ErrRegistry.New(CodeJSONRequired)
}

func ErrInvalidBody(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeInvalidBody, err)
}

func ErrMissingUpload() *errx.Error {
	return ErrRegistry.New(CodeMissingUpload)
}

func ErrUploadTooLarge() *errx.Error {
	return ErrRegistry.New(CodeUploadTooLarge)
}

// ParseJSON requires a JSON content type and decodes the body into out
func ParseJSON(c *fiber.Ctx, out any) error {
	if !c.Is("json") {
		return ErrJSONRequired()
	}
	if err := c.BodyParser(out); err != nil {
		return ErrInvalidBody(err)
	}
	return nil
}

// ErrorHandler converts handler errors to JSON responses. debug adds the
// wrapped cause of errx errors.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.Get(fiber.HeaderXRequestID)

		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"error":      e.Message,
				"code":       "FIBER_ERROR",
				"status":     e.Code,
				"request_id": requestID,
			})
		}

		if e, ok := errx.As(err); ok {
			entry := logx.WithFields(logx.Fields{
				"path":       c.Path(),
				"method":     c.Method(),
				"code":       e.Code,
				"request_id": requestID,
			})
			if e.HTTPStatus >= http.StatusInternalServerError {
				entry.Errorf("Request error: %v", err)
			} else {
				entry.Debugf("Request rejected: %v", err)
			}

			response := fiber.Map{
				"error":      e.Message,
				"code":       e.Code,
				"type":       string(e.Type),
				"status":     e.HTTPStatus,
				"request_id": requestID,
			}
			if len(e.Details) > 0 {
				response["details"] = e.Details
			}
			if debug && e.Err != nil {
				response["underlying_error"] = e.Err.Error()
			}
			return c.Status(e.HTTPStatus).JSON(response)
		}

		logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": requestID,
		}).Errorf("Unhandled error: %v", err)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Internal Server Error",
			"type":       "INTERNAL",
			"code":       "INTERNAL_ERROR",
			"request_id": requestID,
		})
	}
}
