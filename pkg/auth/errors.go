package auth

import (
	"net/http"

	"github.com/aidul23/agent-mem/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized           = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "authentication required")
	CodeTokenValidationFailed  = ErrRegistry.Register("TOKEN_VALIDATION_FAILED", errx.TypeAuthorization, http.StatusUnauthorized, "invalid or expired token")
	CodeTokenGenerationFailed  = ErrRegistry.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "failed to generate token")
	CodeInsufficientPermission = ErrRegistry.Register("INSUFFICIENT_PERMISSION", errx.TypeAuthorization, http.StatusForbidden, "insufficient permissions")
)

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrTokenValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenValidationFailed)
}

func ErrTokenGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenGenerationFailed)
}

func ErrInsufficientPermission() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermission)
}
