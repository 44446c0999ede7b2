package functions

import (
	"math"
	"math/big"
	"math/cmplx"

	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

func logBase10(args []engine.Number) (engine.Number, error) {
	c, err := oneArg(args, "log")
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewComplex(cmplx.Log10(c)), nil
}

func ln(args []engine.Number) (engine.Number, error) {
	c, err := oneArg(args, "ln")
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewComplex(cmplx.Log(c)), nil
}

func sqrt(args []engine.Number) (engine.Number, error) {
	c, err := oneArg(args, "sqrt")
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewComplex(cmplx.Sqrt(c)), nil
}

func abs(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("abs", 1)
	}
	n := args[0]
	switch n.Kind() {
	case engine.KindInteger:
		return engine.NewInteger(new(big.Int).Abs(n.Int())), nil
	case engine.KindRational:
		return engine.NewRational(new(big.Rat).Abs(n.Rat())), nil
	case engine.KindFloat:
		f, _ := n.Float64()
		return engine.NewFloat(math.Abs(f)), nil
	default:
		return engine.NewFloat(cmplx.Abs(n.Complex())), nil // magnitude
	}
}

func fact(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("fact", 1)
	}
	return engine.Factorial(args[0])
}

// valueAndDigits handles the optional second "digits" argument shared by the
// rounding functions (default 0).
func valueAndDigits(args []engine.Number, name string) (float64, int, error) {
	if len(args) == 0 || len(args) > 2 {
		return 0, 0, domain.ErrArgumentMismatch(name, 1)
	}
	f, ok := args[0].Float64()
	if !ok {
		return 0, 0, domain.ErrTypeMismatch("real number", args[0].Kind().String())
	}
	digits := 0
	if len(args) == 2 {
		if d, ok := args[1].Float64(); ok {
			digits = int(d)
		}
	}
	return f, digits, nil
}

func round(args []engine.Number) (engine.Number, error) {
	f, digits, err := valueAndDigits(args, "round")
	if err != nil {
		return engine.Number{}, err
	}
	multiplier := math.Pow(10, float64(digits))
	return engine.NewFloat(math.Round(f*multiplier) / multiplier), nil
}

func floor(args []engine.Number) (engine.Number, error) {
	f, _, err := valueAndDigits(args, "floor")
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewFloat(math.Floor(f)), nil
}

func ceiling(args []engine.Number) (engine.Number, error) {
	f, _, err := valueAndDigits(args, "ceil")
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewFloat(math.Ceil(f)), nil
}

func trunc(args []engine.Number) (engine.Number, error) {
	f, _, err := valueAndDigits(args, "trunc")
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewFloat(math.Trunc(f)), nil
}

func init() {
	engine.RegisterBuiltin("log", logBase10)
	engine.RegisterBuiltin("ln", ln)
	engine.RegisterBuiltin("sqrt", sqrt)
	engine.RegisterBuiltin("abs", abs)
	engine.RegisterBuiltin("ABS", abs)
	engine.RegisterBuiltin("fact", fact)
	engine.RegisterBuiltin("FACT", fact)
	engine.RegisterBuiltin("round", round)
	engine.RegisterBuiltin("ROUND", round)
	engine.RegisterBuiltin("floor", floor)
	engine.RegisterBuiltin("FLOOR", floor)
	engine.RegisterBuiltin("ceil", ceiling)
	engine.RegisterBuiltin("CEILING", ceiling)
	engine.RegisterBuiltin("trunc", trunc)
	engine.RegisterBuiltin("TRUNC", trunc)
}
