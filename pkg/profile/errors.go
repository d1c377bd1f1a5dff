package profile

import (
	"net/http"

	"github.com/aidul23/agent-mem/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

var (
	CodeProfileNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "user profile not found")
	CodeStoreUnavailable = ErrRegistry.Register("STORE_UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "consent store unavailable")
)

func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrStoreUnavailable(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStoreUnavailable, err)
}
