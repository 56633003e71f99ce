package customErrors

import (
	"errors"
	"fmt"
)

const (
	ErrDuplicateUser    = "DUPLICATE USER"
	ErrAuth             = "UNAUTHORIZED"
	ErrNotAuthenticated = "NOT AUTHENTICATED"
	ErrIndexOutOfRange  = "INDEX OUT OF RANGE"
	ErrInvalidInput     = "INVALID INPUT"
	ErrNotFound         = "NOT FOUND"
	ErrStorage          = "STORAGE FAILURE"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e ErrorResponse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %s, message: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

func (e ErrorResponse) Unwrap() error {
	return e.Err
}

// New builds an ErrorResponse with a formatted message.
func New(code string, format string, args ...any) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches the underlying cause, usually a driver error.
func Wrap(code string, err error, message string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first ErrorResponse in err's chain, or "" if none.
func CodeOf(err error) string {
	var resp ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code
	}
	return ""
}

func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
