package functions

import (
	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

// Zero is false, anything else is true.
func isTruthy(n engine.Number) bool {
	return !n.IsZero()
}

func fromBool(b bool) engine.Number {
	if b {
		return engine.IntegerFromInt64(1)
	}
	return engine.IntegerFromInt64(0)
}

func trueVal(_ []engine.Number) (engine.Number, error)  { return fromBool(true), nil }
func falseVal(_ []engine.Number) (engine.Number, error) { return fromBool(false), nil }

func not(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("not", 1)
	}
	return fromBool(!isTruthy(args[0])), nil
}

func and(args []engine.Number) (engine.Number, error) {
	for _, arg := range args {
		if !isTruthy(arg) {
			return fromBool(false), nil
		}
	}
	return fromBool(true), nil
}

func or(args []engine.Number) (engine.Number, error) {
	for _, arg := range args {
		if isTruthy(arg) {
			return fromBool(true), nil
		}
	}
	return fromBool(false), nil
}

// XOR is true when an odd number of arguments are true.
func xor(args []engine.Number) (engine.Number, error) {
	trueCount := 0
	for _, arg := range args {
		if isTruthy(arg) {
			trueCount++
		}
	}
	return fromBool(trueCount%2 != 0), nil
}

// ifFunc selects between its branches. Both branches are already evaluated by
// the caller in this architecture.
func ifFunc(args []engine.Number) (engine.Number, error) {
	if len(args) != 3 {
		return engine.Number{}, domain.ErrArgumentMismatch("if", 3)
	}
	if isTruthy(args[0]) {
		return args[1], nil
	}
	return args[2], nil
}

func init() {
	for _, name := range []string{"TRUE", "true"} {
		engine.RegisterBuiltin(name, trueVal)
	}
	for _, name := range []string{"FALSE", "false"} {
		engine.RegisterBuiltin(name, falseVal)
	}
	for _, name := range []string{"NOT", "not"} {
		engine.RegisterBuiltin(name, not)
	}
	for _, name := range []string{"AND", "and"} {
		engine.RegisterBuiltin(name, and)
	}
	for _, name := range []string{"OR", "or"} {
		engine.RegisterBuiltin(name, or)
	}
	for _, name := range []string{"XOR", "xor"} {
		engine.RegisterBuiltin(name, xor)
	}
	for _, name := range []string{"IF", "if"} {
		engine.RegisterBuiltin(name, ifFunc)
	}
}
