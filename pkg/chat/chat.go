package chat

import (
	"net/http"

	"github.com/aidul23/agent-mem/pkg/errx"
)

// Request is one user turn
type Request struct {
	UserID     string `json:"user_id"`
	Message    string `json:"message"`
	ProductID  string `json:"product_id,omitempty"`
	Department string `json:"department,omitempty"`
}

// Reply is the assistant's answer and whether the user's memory was in use
type Reply struct {
	Reply         string `json:"reply"`
	MemoryEnabled bool   `json:"memory_enabled"`
}

var ErrRegistry = errx.NewRegistry("CHAT")

var (
	CodeMessageRequired = ErrRegistry.Register("MESSAGE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Message is required")
	CodeLLMFailed       = ErrRegistry.Register("LLM_FAILED", errx.TypeExternal, http.StatusBadGateway, "language model request failed")
)

func ErrMessageRequired() *errx.Error {
	return ErrRegistry.New(CodeMessageRequired)
}

func ErrLLMFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeLLMFailed, err)
}
