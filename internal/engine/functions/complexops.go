package functions

import (
	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

func conj(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("conj", 1)
	}
	n := args[0]
	if n.Kind() == engine.KindComplex {
		c := n.Complex()
		return engine.NewComplex(complex(real(c), -imag(c))), nil
	}
	return n, nil // real numbers are their own conjugate
}

func re(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("re", 1)
	}
	n := args[0]
	if n.Kind() == engine.KindComplex {
		return engine.NewFloat(real(n.Complex())), nil
	}
	return n, nil
}

func im(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("im", 1)
	}
	switch args[0].Kind() {
	case engine.KindComplex:
		return engine.NewFloat(imag(args[0].Complex())), nil
	case engine.KindFloat:
		return engine.NewFloat(0), nil
	default:
		return engine.IntegerFromInt64(0), nil
	}
}

func init() {
	engine.RegisterBuiltin("conj", conj)
	engine.RegisterBuiltin("re", re)
	engine.RegisterBuiltin("im", im)
	engine.RegisterBuiltin("lm", im) // alias
}
