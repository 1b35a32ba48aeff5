package errx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code represents a unique error code for each type of error
type Code string

// Type represents the general category of the error
type Type string

const (
	TypeValidation Type = "VALIDATION"
	TypeNotFound   Type = "NOT_FOUND"
	TypeConflict   Type = "CONFLICT"
	TypeInternal   Type = "INTERNAL"
	TypeSystem     Type = "SYSTEM" // filesystem and other OS failures
)

// Error represents a standardized error
type Error struct {
	Code    Code           `json:"code"`
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Type, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a single detail to the error and returns the same error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps another error as the cause of this error
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Print renders an error with its details in a stable order.
func Print(e error) string {
	if e == nil {
		return "nil"
	}

	var xerr *Error
	if !errors.As(e, &xerr) || len(xerr.Details) == 0 {
		return fmt.Sprintf("Error: %s", e.Error())
	}

	keys := make([]string, 0, len(xerr.Details))
	for k := range xerr.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, xerr.Details[k]))
	}
	return fmt.Sprintf("Error: %s, Details: {%s}", e.Error(), strings.Join(parts, ", "))
}

// IsCode checks if an error is an Error with a specific code
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsType checks if an error is an Error with a specific type
func IsType(err error, errType Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// Registry manages the error definitions of one package
type Registry struct {
	prefix    string
	errorDefs map[Code]*Error
}

// NewRegistry creates a new Registry with a prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:    prefix,
		errorDefs: make(map[Code]*Error),
	}
}

// Register adds a new error definition and returns its prefixed code
func (r *Registry) Register(code Code, errType Type, message string) Code {
	fullCode := Code(fmt.Sprintf("%s_%s", r.prefix, code))
	r.errorDefs[fullCode] = &Error{
		Code:    fullCode,
		Type:    errType,
		Message: message,
	}
	return fullCode
}

// New creates a new instance of a registered error
func (r *Registry) New(code Code) *Error {
	if def, ok := r.errorDefs[code]; ok {
		return &Error{
			Code:    def.Code,
			Type:    def.Type,
			Message: def.Message,
		}
	}
	return &Error{
		Code:    "UNKNOWN_ERROR",
		Type:    TypeInternal,
		Message: "An unexpected error occurred",
	}
}

// NewWithMessage creates a new instance of a registered error with a custom message
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	err := r.New(code)
	err.Message = message
	return err
}

// NewWithCause creates a new instance of a registered error with an underlying cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// Wrap wraps a standard error with contextual information
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}

	var xerr *Error
	if errors.As(err, &xerr) {
		return &Error{
			Code:    xerr.Code,
			Type:    errType,
			Message: message,
			Details: xerr.Details,
			cause:   err,
		}
	}

	return &Error{
		Code:    Code(fmt.Sprintf("%s_ERROR", errType)),
		Type:    errType,
		Message: message,
		cause:   err,
	}
}

// New creates a new Error with the given message and type
func New(message string, errType Type) *Error {
	return &Error{
		Code:    Code(fmt.Sprintf("%s_ERROR", errType)),
		Type:    errType,
		Message: message,
	}
}
