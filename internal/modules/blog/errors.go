package blog

import (
	"fmt"
	"net/http"
)

// DomainError mirrors the user module's structured error shape so the shared
// httpx formatter can turn blog errors into problem+json responses too.
type DomainError struct {
	Code       string
	HTTPStatus int
	Title      string
	Message    string
	cause      error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.cause }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy wrapping the underlying error.
func (e *DomainError) WithCause(err error) *DomainError {
	if err == nil {
		return e
	}
	cp := *e
	cp.cause = err
	return &cp
}

// --- RFC7807 mapping accessors (satisfy httpx.DomainProblem) ---

func (e *DomainError) ProblemCode() string { return e.Code }
func (e *DomainError) ProblemStatus() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}
func (e *DomainError) ProblemTitle() string   { return e.Title }
func (e *DomainError) ProblemDetail() string  { return e.Message }
func (e *DomainError) ProblemTypeURI() string { return "" }
func (e *DomainError) ProblemContext() any    { return nil }

var (
	ErrPostNotFound = &DomainError{
		Code:       "ErrPostNotFound",
		HTTPStatus: http.StatusNotFound,
		Title:      "Not Found",
		Message:    "post not found",
	}

	ErrCategoryNotFound = &DomainError{
		Code:       "ErrCategoryNotFound",
		HTTPStatus: http.StatusNotFound,
		Title:      "Not Found",
		Message:    "category not found",
	}

	ErrTagNotFound = &DomainError{
		Code:       "ErrTagNotFound",
		HTTPStatus: http.StatusNotFound,
		Title:      "Not Found",
		Message:    "tag not found",
	}

	ErrCommentNotFound = &DomainError{
		Code:       "ErrCommentNotFound",
		HTTPStatus: http.StatusNotFound,
		Title:      "Not Found",
		Message:    "comment not found",
	}

	ErrForbidden = &DomainError{
		Code:       "ErrForbidden",
		HTTPStatus: http.StatusForbidden,
		Title:      "Forbidden",
		Message:    "insufficient permissions",
	}

	ErrInvalidStatus = &DomainError{
		Code:       "ErrInvalidStatus",
		HTTPStatus: http.StatusUnprocessableEntity,
		Title:      "Unprocessable Entity",
		Message:    "invalid post status",
	}

	ErrCommentsDisabled = &DomainError{
		Code:       "ErrCommentsDisabled",
		HTTPStatus: http.StatusForbidden,
		Title:      "Forbidden",
		Message:    "comments are disabled for this post",
	}

	ErrInternal = &DomainError{
		Code:       "ErrInternal",
		HTTPStatus: http.StatusInternalServerError,
		Title:      "Internal Server Error",
		Message:    "internal server error",
	}
)
