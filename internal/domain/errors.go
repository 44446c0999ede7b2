package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CalcError is a domain failure with a stable code and optional message
// arguments. Codes map 1:1 onto locale catalog keys: code
// "undefined_variable" renders through "error-undefined-variable".
type CalcError struct {
	Code string
	Args map[string]string
	msg  string
}

func (e *CalcError) Error() string { return e.msg }

// MessageKey returns the locale catalog key for this error.
func (e *CalcError) MessageKey() string {
	return "error-" + strings.ReplaceAll(e.Code, "_", "-")
}

// Is matches any CalcError with the same code, so callers can compare against
// the exported sentinels with errors.Is.
func (e *CalcError) Is(target error) bool {
	var other *CalcError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// Domain errors without arguments.
var (
	ErrDivisionByZero          = &CalcError{Code: "division_by_zero", msg: "division by zero"}
	ErrSessionNotFound         = &CalcError{Code: "session_not_found", msg: "session not found"}
	ErrCannotDeleteLastSession = &CalcError{Code: "cannot_delete_last_session", msg: "cannot delete the last session"}
	ErrNotAnInteger            = &CalcError{Code: "not_an_integer", msg: "result is not an integer"}
)

func ErrUndefinedVariable(name string) *CalcError {
	return &CalcError{
		Code: "undefined_variable",
		Args: map[string]string{"name": name},
		msg:  fmt.Sprintf("undefined variable: %s", name),
	}
}

func ErrUnknownFunction(name string) *CalcError {
	return &CalcError{
		Code: "unknown_function",
		Args: map[string]string{"name": name},
		msg:  fmt.Sprintf("function %q is not known", name),
	}
}

func ErrArgumentMismatch(name string, count int) *CalcError {
	return &CalcError{
		Code: "argument_mismatch",
		Args: map[string]string{"name": name, "count": strconv.Itoa(count)},
		msg:  fmt.Sprintf("function %q requires exactly %d argument(s)", name, count),
	}
}

func ErrTypeMismatch(expected, got string) *CalcError {
	return &CalcError{
		Code: "type_mismatch",
		Args: map[string]string{"expected": expected, "got": got},
		msg:  fmt.Sprintf("type mismatch: expected %s, got %s", expected, got),
	}
}

func ErrParser(detail string) *CalcError {
	return &CalcError{
		Code: "parser",
		Args: map[string]string{"detail": detail},
		msg:  fmt.Sprintf("parser error: %s", detail),
	}
}

// ErrDomain covers value-domain failures such as the factorial of a negative
// integer.
func ErrDomain(detail string) *CalcError {
	return &CalcError{
		Code: "domain",
		Args: map[string]string{"detail": detail},
		msg:  detail,
	}
}

// Code extracts the domain error code, or "" for non-domain errors.
func Code(err error) string {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// AsCalcError unwraps err into a CalcError when possible.
func AsCalcError(err error) (*CalcError, bool) {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
