package errx

import "fmt"

// Code is a registered, prefixed error code such as "MEMORY.INVALID_RULE_ID"
type Code string

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry groups the error codes of one domain under a common prefix
type Registry struct {
	prefix string
	codes  map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]definition),
	}
}

// Register declares a code. Registration happens at package init, so duplicates panic.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)
	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.codes[full] = definition{
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New builds an error for a registered code
func (r *Registry) New(code Code) *Error {
	def, ok := r.codes[code]
	if !ok {
		return &Error{
			Code:       string(code),
			Message:    "unregistered error code",
			Type:       TypeInternal,
			HTTPStatus: statusFor(TypeInternal),
		}
	}
	return &Error{
		Code:       string(code),
		Message:    def.message,
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause builds an error for a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Err = cause
	return e
}
