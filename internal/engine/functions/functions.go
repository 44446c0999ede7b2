// Package functions provides the builtin calculator functions. Each family
// registers itself with the engine from an init function; importing this
// package (usually blank) makes the whole library available to the
// evaluator.
package functions

import (
	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

// oneArg enforces single-argument arity and widens the argument to complex.
func oneArg(args []engine.Number, name string) (complex128, error) {
	if len(args) != 1 {
		return 0, domain.ErrArgumentMismatch(name, 1)
	}
	return args[0].Complex(), nil
}

func toComplexArgs(args []engine.Number) []complex128 {
	out := make([]complex128, len(args))
	for i, n := range args {
		out[i] = n.Complex()
	}
	return out
}
