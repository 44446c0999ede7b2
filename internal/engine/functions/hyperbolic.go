package functions

import (
	"math/cmplx"

	"neocalc/internal/engine"
)

func init() {
	engine.RegisterBuiltin("sinh", trig("sinh", cmplx.Sinh))
	engine.RegisterBuiltin("cosh", trig("cosh", cmplx.Cosh))
	engine.RegisterBuiltin("tanh", trig("tanh", cmplx.Tanh))
}
