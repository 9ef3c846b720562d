package service

import (
	mcerrors "filedrop/backend/common/errors"
)

// Error is a coded service failure. Handlers map the code to an HTTP status;
// the message is safe to show to callers.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

func ErrCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return mcerrors.ErrInternalServer
}
