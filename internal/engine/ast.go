package engine

import (
	"math"

	"neocalc/internal/domain"
)

type BinaryOp string

const (
	OpAdd BinaryOp = "add"
	OpSub BinaryOp = "sub"
	OpMul BinaryOp = "mul"
	OpDiv BinaryOp = "div"
	OpMod BinaryOp = "mod"
	OpPow BinaryOp = "pow"
)

type UnaryOp string

const (
	OpNeg       UnaryOp = "neg"
	OpFactorial UnaryOp = "factorial"
)

// Expr is a parsed expression node.
type Expr interface {
	exprNode()
}

type Literal struct {
	Value Number
}

type Variable struct {
	Name string
}

type Binary struct {
	Op       BinaryOp
	LHS, RHS Expr
}

type Unary struct {
	Op      UnaryOp
	Operand Expr
}

type Call struct {
	Name string
	Args []Expr
}

type Assign struct {
	Name  string
	Value Expr
}

type FuncDef struct {
	Name   string
	Params []string
	Body   Expr
}

func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Call) exprNode()     {}
func (*Assign) exprNode()   {}
func (*FuncDef) exprNode()  {}

// UserFunction is a function defined at the prompt: f(x) = body.
type UserFunction struct {
	Params []string
	Body   Expr
}

// Context holds the evaluation state: a scope chain for variables (index 0 is
// the global scope) and the user-defined functions. Variables resolve
// dynamically, from the innermost scope outward.
type Context struct {
	scopes    []map[string]Number
	functions map[string]UserFunction
}

// NewContext returns a fresh context. The global scope starts with the
// keypad constants (the π key feeds "pi" into the lexer).
func NewContext() *Context {
	global := map[string]Number{
		"pi": NewFloat(math.Pi),
		"e":  NewFloat(math.E),
	}
	return &Context{
		scopes:    []map[string]Number{global},
		functions: map[string]UserFunction{},
	}
}

func (c *Context) GetVar(name string) (Number, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, true
		}
	}
	return Number{}, false
}

// SetVar updates name in the nearest scope that already holds it, and defines
// it in the current scope otherwise. This is what makes `f() = x = 20` update
// a global x.
func (c *Context) SetVar(name string, value Number) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			c.scopes[i][name] = value
			return
		}
	}
	c.scopes[len(c.scopes)-1][name] = value
}

// DefineVar forces a definition in the current scope, shadowing any outer
// binding. Used for function parameters.
func (c *Context) DefineVar(name string, value Number) {
	c.scopes[len(c.scopes)-1][name] = value
}

func (c *Context) DefineFunction(name string, fn UserFunction) {
	c.functions[name] = fn
}

func (c *Context) Function(name string) (UserFunction, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

func (c *Context) PushScope() {
	c.scopes = append(c.scopes, map[string]Number{})
}

func (c *Context) PopScope() {
	if len(c.scopes) > 1 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

// Eval evaluates an expression tree against a context. Left spines of binary
// operators are unwound iteratively so long chains like 1 + 1 + ... + 1 use
// constant goroutine stack, then the pending operators apply left to right.
func Eval(e Expr, ctx *Context) (Number, error) {
	type pending struct {
		op  BinaryOp
		rhs Expr
	}
	var stack []pending
	cur := e
	for {
		b, ok := cur.(*Binary)
		if !ok {
			break
		}
		stack = append(stack, pending{b.Op, b.RHS})
		cur = b.LHS
	}

	result, err := evalLeaf(cur, ctx)
	if err != nil {
		return Number{}, err
	}

	// The deepest spine entry was pushed last, so popping applies the
	// operators in source order.
	for i := len(stack) - 1; i >= 0; i-- {
		rhs, err := Eval(stack[i].rhs, ctx)
		if err != nil {
			return Number{}, err
		}
		result = applyBinary(stack[i].op, result, rhs)
	}
	return result, nil
}

func applyBinary(op BinaryOp, lhs, rhs Number) Number {
	switch op {
	case OpAdd:
		return lhs.Add(rhs)
	case OpSub:
		return lhs.Sub(rhs)
	case OpMul:
		return lhs.Mul(rhs)
	case OpDiv:
		return lhs.Div(rhs)
	case OpMod:
		return lhs.Mod(rhs)
	default:
		return Pow(lhs, rhs)
	}
}

func evalLeaf(e Expr, ctx *Context) (Number, error) {
	switch node := e.(type) {
	case *Literal:
		return node.Value, nil

	case *Variable:
		v, ok := ctx.GetVar(node.Name)
		if !ok {
			return Number{}, domain.ErrUndefinedVariable(node.Name)
		}
		return v, nil

	case *Assign:
		v, err := Eval(node.Value, ctx)
		if err != nil {
			return Number{}, err
		}
		ctx.SetVar(node.Name, v)
		return v, nil

	case *FuncDef:
		ctx.DefineFunction(node.Name, UserFunction{Params: node.Params, Body: node.Body})
		return IntegerFromInt64(0), nil

	case *Unary:
		v, err := Eval(node.Operand, ctx)
		if err != nil {
			return Number{}, err
		}
		if node.Op == OpNeg {
			return v.Neg(), nil
		}
		return Factorial(v)

	case *Call:
		args := make([]Number, len(node.Args))
		for i, argExpr := range node.Args {
			v, err := Eval(argExpr, ctx)
			if err != nil {
				return Number{}, err
			}
			args[i] = v
		}

		if fn, ok := ctx.Function(node.Name); ok {
			if len(args) != len(fn.Params) {
				return Number{}, domain.ErrArgumentMismatch(node.Name, len(fn.Params))
			}
			ctx.PushScope()
			for i, param := range fn.Params {
				ctx.DefineVar(param, args[i])
			}
			result, err := Eval(fn.Body, ctx)
			ctx.PopScope()
			return result, err
		}
		return applyBuiltin(node.Name, args)
	}
	// Binary is handled by Eval's spine loop.
	return Number{}, domain.ErrParser("unreachable expression node")
}
