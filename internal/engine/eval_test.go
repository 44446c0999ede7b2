package engine_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocalc/internal/domain"
	"neocalc/internal/engine"
	_ "neocalc/internal/engine/functions"
)

func eval(t *testing.T, ctx *engine.Context, expression string) engine.Number {
	t.Helper()
	v, err := engine.Evaluate(expression, ctx)
	require.NoError(t, err, "expression %q", expression)
	return v
}

func evalStr(t *testing.T, ctx *engine.Context, expression string) string {
	t.Helper()
	return engine.FormatNumber(eval(t, ctx, expression))
}

func TestIntegerArithmetic(t *testing.T) {
	ctx := engine.NewContext()
	tests := []struct {
		expression string
		want       string
	}{
		{"1+1", "2"},
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"10-4-3", "3"},
		{"7%3", "1"},
		{"-5+3", "-2"},
		{"2^10", "1024"},
		{"2^3^2", "512"}, // right associative
		{"5!", "120"},
		{"3!!", "720"},
		{"2*3!", "12"}, // factorial binds tighter than *
		{"-2^2", "4"}, // unary minus binds tighter than ^
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, evalStr(t, ctx, tt.expression), tt.expression)
	}
}

func TestExactRationalArithmetic(t *testing.T) {
	ctx := engine.NewContext()

	assert.Equal(t, "5", evalStr(t, ctx, "10/2"))
	assert.Equal(t, "1/3", evalStr(t, ctx, "1/3"))
	assert.Equal(t, "1", evalStr(t, ctx, "1/3*3"))
	assert.Equal(t, "5/6", evalStr(t, ctx, "1/2+1/3"))
	assert.Equal(t, "1/4", evalStr(t, ctx, "2^-2"))
	assert.Equal(t, "1/2", evalStr(t, ctx, "7/2 % 1"))
}

func TestBigIntegerArithmetic(t *testing.T) {
	ctx := engine.NewContext()

	assert.Equal(t, "1267650600228229401496703205376", evalStr(t, ctx, "2^100"))

	fact50 := evalStr(t, ctx, "50!")
	assert.Len(t, fact50, 65)
	assert.True(t, strings.HasPrefix(fact50, "30414093"), "50! = %s", fact50)
}

func TestKindPromotion(t *testing.T) {
	ctx := engine.NewContext()

	v := eval(t, ctx, "1+0.5")
	assert.Equal(t, engine.KindFloat, v.Kind())
	f, _ := v.Float64()
	assert.Equal(t, 1.5, f)

	v = eval(t, ctx, "1/2 + 0.5")
	assert.Equal(t, engine.KindFloat, v.Kind())
	f, _ = v.Float64()
	assert.Equal(t, 1.0, f)

	v = eval(t, ctx, "sqrt(-4)")
	assert.Equal(t, engine.KindComplex, v.Kind())
	assert.Equal(t, "2i", engine.FormatNumber(v))
}

func TestDivisionByZeroYieldsInfinity(t *testing.T) {
	ctx := engine.NewContext()

	v := eval(t, ctx, "1/0")
	assert.Equal(t, engine.KindFloat, v.Kind())
	f, _ := v.Float64()
	assert.True(t, math.IsInf(f, 1))

	v = eval(t, ctx, "-1/0")
	f, _ = v.Float64()
	assert.True(t, math.IsInf(f, -1))

	v = eval(t, ctx, "0^-2")
	f, _ = v.Float64()
	assert.True(t, math.IsInf(f, 1))

	v = eval(t, ctx, "5%0")
	f, _ = v.Float64()
	assert.True(t, math.IsNaN(f))
}

func TestVariables(t *testing.T) {
	ctx := engine.NewContext()

	assert.Equal(t, "41", evalStr(t, ctx, "x = 41"))
	assert.Equal(t, "42", evalStr(t, ctx, "x + 1"))

	_, err := engine.Evaluate("nope + 1", ctx)
	require.Error(t, err)
	assert.Equal(t, "undefined_variable", domain.Code(err))
}

func TestConstants(t *testing.T) {
	ctx := engine.NewContext()

	f, _ := eval(t, ctx, "pi").Float64()
	assert.Equal(t, math.Pi, f)
	f, _ = eval(t, ctx, "e").Float64()
	assert.Equal(t, math.E, f)
}

func TestUserFunctions(t *testing.T) {
	ctx := engine.NewContext()

	eval(t, ctx, "f(x) = x^2")
	assert.Equal(t, "25", evalStr(t, ctx, "f(5)"))
	assert.Equal(t, "169", evalStr(t, ctx, "f(f(2)+9)"))

	_, err := engine.Evaluate("f(1, 2)", ctx)
	require.Error(t, err)
	assert.Equal(t, "argument_mismatch", domain.Code(err))
}

func TestDynamicScoping(t *testing.T) {
	t.Run("function updates a global", func(t *testing.T) {
		ctx := engine.NewContext()
		eval(t, ctx, "x = 10")
		eval(t, ctx, "g() = x = 20")
		eval(t, ctx, "g()")
		assert.Equal(t, "20", evalStr(t, ctx, "x"))
	})

	t.Run("parameters shadow globals", func(t *testing.T) {
		ctx := engine.NewContext()
		eval(t, ctx, "x = 10")
		eval(t, ctx, "h(x) = x * 2")
		assert.Equal(t, "10", evalStr(t, ctx, "h(5)"))
		assert.Equal(t, "10", evalStr(t, ctx, "x"))
	})

	t.Run("fresh locals stay local", func(t *testing.T) {
		ctx := engine.NewContext()
		eval(t, ctx, "k() = y = 5")
		eval(t, ctx, "k()")
		_, err := engine.Evaluate("y", ctx)
		require.Error(t, err)
		assert.Equal(t, "undefined_variable", domain.Code(err))
	})
}

func TestImplicitMultiplication(t *testing.T) {
	ctx := engine.NewContext()

	assert.Equal(t, "8", evalStr(t, ctx, "2(3+1)"))
	assert.Equal(t, "8", evalStr(t, ctx, "(1+1)(2+2)"))

	f, _ := eval(t, ctx, "2pi").Float64()
	assert.InDelta(t, 2*math.Pi, f, 1e-12)
}

func TestBuiltinFunctions(t *testing.T) {
	ctx := engine.NewContext()

	assert.Equal(t, "4", evalStr(t, ctx, "sqrt(16)"))
	assert.Equal(t, "3", evalStr(t, ctx, "abs(-3)"))
	assert.Equal(t, "120", evalStr(t, ctx, "fact(5)"))
	assert.Equal(t, "3/2", evalStr(t, ctx, "mean(1, 2)"))
	assert.Equal(t, "2", evalStr(t, ctx, "median(1, 2, 3)"))
	assert.Equal(t, "1", evalStr(t, ctx, "band(2^100 + 1, 1)"))
	assert.Equal(t, "1024", evalStr(t, ctx, "lsh(1, 10)"))

	f, _ := eval(t, ctx, "sin(pi/2)").Float64()
	assert.InDelta(t, 1.0, f, 1e-12)

	// Uppercase aliases resolve to the same implementations.
	assert.Equal(t, "3", evalStr(t, ctx, "ABS(-3)"))

	_, err := engine.Evaluate("definitely_not_a_function(1)", ctx)
	require.Error(t, err)
	assert.Equal(t, "unknown_function", domain.Code(err))
}

func TestFactorialDomainErrors(t *testing.T) {
	ctx := engine.NewContext()

	_, err := engine.Evaluate("(-1)!", ctx)
	require.Error(t, err)
	assert.Equal(t, "domain", domain.Code(err))

	_, err = engine.Evaluate("(1/2)!", ctx)
	require.Error(t, err)
	assert.Equal(t, "domain", domain.Code(err))
}

func TestParserErrors(t *testing.T) {
	ctx := engine.NewContext()
	for _, expression := range []string{
		"",
		"1 +",
		"(1",
		"1 2",
		"f(1,",
		"f(1 2)",
		"@",
		"g(x, 1) = x",
	} {
		_, err := engine.Evaluate(expression, ctx)
		require.Error(t, err, "expression %q", expression)
		assert.Equal(t, "parser", domain.Code(err), "expression %q", expression)
	}
}

func TestNumericLiterals(t *testing.T) {
	ctx := engine.NewContext()

	assert.Equal(t, "255", evalStr(t, ctx, "0xFF"))
	assert.Equal(t, "255", evalStr(t, ctx, "0o377"))
	assert.Equal(t, "5", evalStr(t, ctx, "0b101"))

	f, _ := eval(t, ctx, "1.5e3").Float64()
	assert.Equal(t, 1500.0, f)

	// 'e' without exponent digits is an identifier, so 2e = 2 * e.
	f, _ = eval(t, ctx, "2e").Float64()
	assert.InDelta(t, 2*math.E, f, 1e-12)
}

// Long flat chains must not exhaust the stack: the evaluator unwinds left
// spines iteratively.
func TestLongOperatorChain(t *testing.T) {
	ctx := engine.NewContext()
	expression := strings.Repeat("1+", 1999) + "1"
	assert.Equal(t, "2000", evalStr(t, ctx, expression))
}
