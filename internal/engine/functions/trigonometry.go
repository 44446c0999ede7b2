package functions

import (
	"math/cmplx"

	"neocalc/internal/engine"
)

func trig(name string, fn func(complex128) complex128) engine.BuiltinFunc {
	return func(args []engine.Number) (engine.Number, error) {
		c, err := oneArg(args, name)
		if err != nil {
			return engine.Number{}, err
		}
		return engine.NewComplex(fn(c)), nil
	}
}

func init() {
	engine.RegisterBuiltin("sin", trig("sin", cmplx.Sin))
	engine.RegisterBuiltin("cos", trig("cos", cmplx.Cos))
	engine.RegisterBuiltin("tan", trig("tan", cmplx.Tan))
	engine.RegisterBuiltin("asin", trig("asin", cmplx.Asin))
	engine.RegisterBuiltin("acos", trig("acos", cmplx.Acos))
	engine.RegisterBuiltin("atan", trig("atan", cmplx.Atan))
	// Alias.
	engine.RegisterBuiltin("cosin", trig("cosin", cmplx.Acos))
}
