package memory

import (
	"net/http"

	"github.com/aidul23/agent-mem/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MEMORY")

var (
	CodeInvalidRuleID       = ErrRegistry.Register("INVALID_RULE_ID", errx.TypeValidation, http.StatusBadRequest, "rule id is required")
	CodeInvalidVersion      = ErrRegistry.Register("INVALID_VERSION", errx.TypeValidation, http.StatusBadRequest, "version is required")
	CodeInvalidTopic        = ErrRegistry.Register("INVALID_TOPIC", errx.TypeValidation, http.StatusBadRequest, "topic is required")
	CodeInvalidQuery        = ErrRegistry.Register("INVALID_QUERY", errx.TypeValidation, http.StatusBadRequest, "query is required")
	CodeInvalidImportance   = ErrRegistry.Register("INVALID_IMPORTANCE", errx.TypeValidation, http.StatusBadRequest, "importance must be one of critical, high, normal, low")
	CodeEmptyDocument       = ErrRegistry.Register("EMPTY_DOCUMENT", errx.TypeValidation, http.StatusBadRequest, "document has no content")
	CodeUnsupportedDocument = ErrRegistry.Register("UNSUPPORTED_DOCUMENT", errx.TypeValidation, http.StatusUnsupportedMediaType, "unsupported document type")
)

func ErrInvalidRuleID() *errx.Error {
	return ErrRegistry.New(CodeInvalidRuleID)
}

func ErrInvalidVersion() *errx.Error {
	return ErrRegistry.New(CodeInvalidVersion)
}

func ErrInvalidTopic() *errx.Error {
	return ErrRegistry.New(CodeInvalidTopic)
}

func ErrInvalidQuery() *errx.Error {
	return ErrRegistry.New(CodeInvalidQuery)
}

func ErrInvalidImportance() *errx.Error {
	return ErrRegistry.New(CodeInvalidImportance)
}

func ErrEmptyDocument() *errx.Error {
	return ErrRegistry.New(CodeEmptyDocument)
}

func ErrUnsupportedDocument() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedDocument)
}
