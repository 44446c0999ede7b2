package engine_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"neocalc/internal/engine"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{2, "2"},
		{2.0000000000001, "2"}, // epsilon snap
		{-3.0000000000001, "-3"},
		{0.25, "0.25"},
		{1e20, "1e+20"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.FormatFloat(tt.in), "%v", tt.in)
	}
}

func TestFormatComplex(t *testing.T) {
	tests := []struct {
		in   complex128
		want string
	}{
		{complex(3, 0), "3"},
		{complex(0, 2), "2i"},
		{complex(0, -1), "-1i"},
		{complex(1, 2), "1 + 2i"},
		{complex(1, -2), "1 - 2i"},
		{complex(-1.5, 0.5), "-1.5 + 0.5i"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.FormatComplex(tt.in), "%v", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	half := engine.NewRational(big.NewRat(1, 2))
	assert.Equal(t, "1/2", engine.FormatNumber(half))
	assert.Equal(t, "0.5", engine.FormatNumberDecimal(half))

	// Rationals that reduce to integers print as integers either way.
	two := engine.NewRational(big.NewRat(4, 2))
	assert.Equal(t, "2", engine.FormatNumber(two))
	assert.Equal(t, "2", engine.FormatNumberDecimal(two))

	assert.Equal(t, "-7", engine.FormatNumber(engine.IntegerFromInt64(-7)))
}

func TestMapInputToken(t *testing.T) {
	assert.Equal(t, "/", engine.MapInputToken("÷"))
	assert.Equal(t, "*", engine.MapInputToken("×"))
	assert.Equal(t, "-", engine.MapInputToken("−"))
	assert.Equal(t, "pi", engine.MapInputToken("π"))
	assert.Equal(t, "sqrt(", engine.MapInputToken("√"))
	assert.Equal(t, "7", engine.MapInputToken("7"))
}

func TestShouldAutoParen(t *testing.T) {
	assert.True(t, engine.ShouldAutoParen("sin"))
	assert.True(t, engine.ShouldAutoParen("sqrt"))
	assert.False(t, engine.ShouldAutoParen("pi"))
	assert.False(t, engine.ShouldAutoParen("+"))
}
