package memory

import "context"

// Backend is the external long-term memory service. It only stores text.
type Backend interface {
	// Retain stores content in a bank under a free-form context label
	Retain(ctx context.Context, bankID, content, contextLabel string) error

	// Recall runs a relevance search and returns at most limit texts.
	// A limit <= 0 leaves the result count to the service.
	Recall(ctx context.Context, bankID, query string, limit int) ([]string, error)
}

// Reflector is implemented by backends that can synthesize a summary over a bank
type Reflector interface {
	Reflect(ctx context.Context, bankID, query string) (string, error)
}

// Pinger is implemented by backends that expose a health check
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status tells the caller whether the memory service answered
type Status int

const (
	StatusOK Status = iota
	// StatusDisabled means the bank was opened without memory consent
	StatusDisabled
	// StatusUnavailable means the backend failed; the failure was logged
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDisabled:
		return "disabled"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// RecallResult is the outcome of a recall: records, or an explicit reason there are none
type RecallResult struct {
	Records []Record
	Status  Status
}

// Texts returns the stored text of each recalled record
func (r RecallResult) Texts() []string {
	return Texts(r.Records)
}
