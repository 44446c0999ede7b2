package engine_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocalc/internal/engine"
)

func TestNumberJSONRoundTrip(t *testing.T) {
	big2pow100 := new(big.Int).Exp(big.NewInt(2), big.NewInt(100), nil)
	numbers := []engine.Number{
		engine.IntegerFromInt64(42),
		engine.IntegerFromInt64(-1),
		engine.NewInteger(big2pow100),
		engine.NewRational(big.NewRat(-7, 3)),
		engine.NewFloat(1.5),
		engine.NewComplex(complex(1, -2)),
	}
	for _, n := range numbers {
		data, err := json.Marshal(n)
		require.NoError(t, err)

		var back engine.Number
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, n.Kind(), back.Kind())
		assert.Equal(t, engine.FormatNumber(n), engine.FormatNumber(back))
	}
}

func TestNumberJSONRejectsGarbage(t *testing.T) {
	var n engine.Number
	assert.Error(t, json.Unmarshal([]byte(`{"type":"integer","value":"abc"}`), &n))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"rational","numer":"1","denom":"0"}`), &n))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"martian"}`), &n))
}

func TestExprRoundTrip(t *testing.T) {
	for _, expression := range []string{
		"1 + 2 * 3",
		"-x^2",
		"f(1, g(2), y)",
		"total = a + b",
		"f(x, y) = x*y + 1",
		"h() = 7",
	} {
		expr, err := engine.Parse(expression)
		require.NoError(t, err, expression)

		data, err := engine.MarshalExpr(expr)
		require.NoError(t, err, expression)

		back, err := engine.UnmarshalExpr(data)
		require.NoError(t, err, expression)
		assert.Equal(t, expr, back, expression)
	}
}

// A context survives persistence with its variables and function definitions
// intact and callable.
func TestContextJSONRoundTrip(t *testing.T) {
	ctx := engine.NewContext()
	eval(t, ctx, "a = 7")
	eval(t, ctx, "half = 1/2")
	eval(t, ctx, "f(x) = x * a")

	data, err := json.Marshal(ctx)
	require.NoError(t, err)

	restored := engine.NewContext()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, "7", evalStr(t, restored, "a"))
	assert.Equal(t, "1/2", evalStr(t, restored, "half"))
	assert.Equal(t, "42", evalStr(t, restored, "f(6)"))
}
