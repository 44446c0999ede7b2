package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageKey(t *testing.T) {
	assert.Equal(t, "error-division-by-zero", ErrDivisionByZero.MessageKey())
	assert.Equal(t, "error-undefined-variable", ErrUndefinedVariable("x").MessageKey())
	assert.Equal(t, "error-argument-mismatch", ErrArgumentMismatch("f", 2).MessageKey())
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrSessionNotFound)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NotErrorIs(t, err, ErrDivisionByZero)

	// Two independently built errors with the same code compare equal.
	assert.ErrorIs(t, ErrUndefinedVariable("a"), ErrUndefinedVariable("b"))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "division_by_zero", Code(ErrDivisionByZero))
	assert.Equal(t, "parser", Code(fmt.Errorf("wrap: %w", ErrParser("oops"))))
	assert.Equal(t, "", Code(errors.New("plain")))
	assert.Equal(t, "", Code(nil))
}

func TestArgsCarryMessageData(t *testing.T) {
	err := ErrArgumentMismatch("sqrt", 1)
	assert.Equal(t, map[string]string{"name": "sqrt", "count": "1"}, err.Args)

	ce, ok := AsCalcError(fmt.Errorf("wrap: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "argument_mismatch", ce.Code)
}
