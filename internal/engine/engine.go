// Package engine implements the NeoCalc expression engine: an exact numeric
// tower (big integers, rationals, floats, complex), a Pratt parser, and an
// evaluator with dynamically scoped variables and user-defined functions.
//
// The builtin function library lives in the functions subpackage and is wired
// in through RegisterBuiltin; import it for side effects:
//
//	import _ "neocalc/internal/engine/functions"
package engine

import "neocalc/internal/domain"

// Evaluate parses and evaluates an expression against the given context.
func Evaluate(expression string, ctx *Context) (Number, error) {
	expr, err := Parse(expression)
	if err != nil {
		return Number{}, err
	}
	return Eval(expr, ctx)
}

// BuiltinFunc is the signature of a builtin calculator function. Arity
// checking is the function's own responsibility, since several builtins are
// variadic.
type BuiltinFunc func(args []Number) (Number, error)

var builtins = map[string]BuiltinFunc{}

// RegisterBuiltin adds a function to the global registry. Called from init
// functions in the functions subpackage; later registrations win, which is
// how case aliases share one implementation.
func RegisterBuiltin(name string, fn BuiltinFunc) {
	builtins[name] = fn
}

// Builtins lists the registered function names.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

func applyBuiltin(name string, args []Number) (Number, error) {
	fn, ok := builtins[name]
	if !ok {
		return Number{}, domain.ErrUnknownFunction(name)
	}
	return fn(args)
}
