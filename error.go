package commonsmeta

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to coarse categories a caller
// can act on. EMALFORMED indicates the wiki's encoding assumptions were
// violated (corrupt parse tree structure); it is never converted into a
// default value by callers, unlike ENOTFOUND.
const (
	EINVALID   = "invalid"   // validation failed or unparseable input
	EINTERNAL  = "internal"  // internal error
	EMALFORMED = "malformed" // structurally broken template markup
	ENOTFOUND  = "not_found" // entity does not exist
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("commonsmeta error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
