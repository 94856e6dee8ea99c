package apperr

import "errors"

// Code classifies an error for clients. Codes surface in the GraphQL
// response under extensions.code.
type Code string

const (
	CodeBadUserInput    Code = "BAD_USER_INPUT"
	CodeConflict        Code = "CONFLICT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeInternal        Code = "INTERNAL_SERVER_ERROR"
)

// Error is the client-facing error shape shared by services and resolvers.
// Field names the offending input field where one applies.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions satisfies the graphql-go extended error interface so the code
// (and field, if set) travel with the formatted GraphQL error.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Code)}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

func BadUserInput(message string) *Error {
	return &Error{Code: CodeBadUserInput, Message: message}
}

func Conflict(message, field string) *Error {
	return &Error{Code: CodeConflict, Message: message, Field: field}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// Internal is the opaque error returned for unclassified failures. The
// underlying detail is logged server-side, never sent to the client.
func Internal() *Error {
	return &Error{Code: CodeInternal, Message: "something went wrong"}
}

// CodeOf extracts the classification of err, or CodeInternal when err is
// not an *Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
