package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"neocalc/internal/domain"
)

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"fr", "fr"},
		{"fr-FR", "fr"},
		{"it-IT", "it"},
		{"pt-BR", "pt-BR"},
		{"pt_BR", "pt-BR"},
		{"pt", "pt-BR"},
		{"", "en"},
		{"???", "en"},
		{"zh-CN", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchLocale(tt.in).String(), "input %q", tt.in)
	}
}

func TestTranslatorResolvesRequestedLocale(t *testing.T) {
	tr := NewTranslator("en")

	assert.Equal(t, "Cannot divide by zero", tr.T("en", "error-division-by-zero", nil))
	assert.Equal(t, "Não é possível dividir por zero", tr.T("pt-BR", "error-division-by-zero", nil))
	assert.Equal(t, "Division par zéro impossible", tr.T("fr-FR", "error-division-by-zero", nil))
}

func TestTranslatorFallsBackToDefaultLocale(t *testing.T) {
	tr := NewTranslator("en")

	// Unsupported locales get the default locale's message.
	assert.Equal(t, "Cannot divide by zero", tr.T("ja", "error-division-by-zero", nil))
	assert.Equal(t, "Cannot divide by zero", tr.T("", "error-division-by-zero", nil))
}

func TestTranslatorUnknownKeyReturnsKey(t *testing.T) {
	tr := NewTranslator("en")
	assert.Equal(t, "no-such-key", tr.T("en", "no-such-key", nil))
}

func TestTranslatorLenientPlaceholders(t *testing.T) {
	tr := NewTranslator("en")

	// With the argument supplied the placeholder expands.
	out := tr.T("en", "error-undefined-variable", map[string]string{"name": "x"})
	assert.Equal(t, `Undefined variable "x"`, out)

	// Without it the message still renders, placeholder intact.
	out = tr.T("en", "error-undefined-variable", nil)
	assert.Contains(t, out, "Undefined variable")
	assert.Contains(t, out, "$name")
}

func TestTranslatorTError(t *testing.T) {
	tr := NewTranslator("en")

	assert.Equal(t, "Cannot divide by zero", tr.TError("en", domain.ErrDivisionByZero))
	assert.Equal(t, "Não é possível dividir por zero", tr.TError("pt-BR", domain.ErrDivisionByZero))

	out := tr.TError("fr", domain.ErrUndefinedVariable("x"))
	assert.Equal(t, "Variable non définie « x »", out)

	// Non-domain errors collapse to the generic message.
	assert.Equal(t, "An error occurred", tr.TError("en", errors.New("boom")))
	assert.Equal(t, "", tr.TError("en", nil))
}
