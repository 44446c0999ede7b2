package engine

import (
	"encoding/json"
	"fmt"
)

// JSON forms for AST and context persistence. Sessions store their evaluation
// state (variables and user-defined functions) between processes, so every
// Expr node carries a "type" tag.

type exprEnvelope struct {
	Type    string            `json:"type"`
	Value   json.RawMessage   `json:"value,omitempty"`
	Name    string            `json:"name,omitempty"`
	Op      string            `json:"op,omitempty"`
	LHS     json.RawMessage   `json:"lhs,omitempty"`
	RHS     json.RawMessage   `json:"rhs,omitempty"`
	Operand json.RawMessage   `json:"operand,omitempty"`
	Args    []json.RawMessage `json:"args,omitempty"`
	Params  []string          `json:"params,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

// MarshalExpr encodes an expression tree.
func MarshalExpr(e Expr) ([]byte, error) {
	env, err := toEnvelope(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

func toEnvelope(e Expr) (*exprEnvelope, error) {
	raw := func(child Expr) (json.RawMessage, error) {
		data, err := MarshalExpr(child)
		return json.RawMessage(data), err
	}

	switch node := e.(type) {
	case *Literal:
		value, err := json.Marshal(node.Value)
		if err != nil {
			return nil, err
		}
		return &exprEnvelope{Type: "literal", Value: value}, nil
	case *Variable:
		return &exprEnvelope{Type: "variable", Name: node.Name}, nil
	case *Binary:
		lhs, err := raw(node.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := raw(node.RHS)
		if err != nil {
			return nil, err
		}
		return &exprEnvelope{Type: "binary", Op: string(node.Op), LHS: lhs, RHS: rhs}, nil
	case *Unary:
		operand, err := raw(node.Operand)
		if err != nil {
			return nil, err
		}
		return &exprEnvelope{Type: "unary", Op: string(node.Op), Operand: operand}, nil
	case *Call:
		args := make([]json.RawMessage, len(node.Args))
		for i, arg := range node.Args {
			data, err := MarshalExpr(arg)
			if err != nil {
				return nil, err
			}
			args[i] = data
		}
		return &exprEnvelope{Type: "call", Name: node.Name, Args: args}, nil
	case *Assign:
		value, err := raw(node.Value)
		if err != nil {
			return nil, err
		}
		return &exprEnvelope{Type: "assign", Name: node.Name, Body: value}, nil
	case *FuncDef:
		body, err := raw(node.Body)
		if err != nil {
			return nil, err
		}
		// Params must survive even when empty.
		params := node.Params
		if params == nil {
			params = []string{}
		}
		return &exprEnvelope{Type: "funcdef", Name: node.Name, Params: params, Body: body}, nil
	}
	return nil, fmt.Errorf("marshal expr: unknown node %T", e)
}

// UnmarshalExpr decodes an expression tree.
func UnmarshalExpr(data []byte) (Expr, error) {
	var env exprEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	child := func(raw json.RawMessage, field string) (Expr, error) {
		if raw == nil {
			return nil, fmt.Errorf("unmarshal expr: %s node missing %s", env.Type, field)
		}
		return UnmarshalExpr(raw)
	}

	switch env.Type {
	case "literal":
		var value Number
		if err := json.Unmarshal(env.Value, &value); err != nil {
			return nil, err
		}
		return &Literal{Value: value}, nil
	case "variable":
		return &Variable{Name: env.Name}, nil
	case "binary":
		lhs, err := child(env.LHS, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := child(env.RHS, "rhs")
		if err != nil {
			return nil, err
		}
		return &Binary{Op: BinaryOp(env.Op), LHS: lhs, RHS: rhs}, nil
	case "unary":
		operand, err := child(env.Operand, "operand")
		if err != nil {
			return nil, err
		}
		return &Unary{Op: UnaryOp(env.Op), Operand: operand}, nil
	case "call":
		args := make([]Expr, len(env.Args))
		for i, rawArg := range env.Args {
			arg, err := UnmarshalExpr(rawArg)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Call{Name: env.Name, Args: args}, nil
	case "assign":
		value, err := child(env.Body, "body")
		if err != nil {
			return nil, err
		}
		return &Assign{Name: env.Name, Value: value}, nil
	case "funcdef":
		body, err := child(env.Body, "body")
		if err != nil {
			return nil, err
		}
		return &FuncDef{Name: env.Name, Params: env.Params, Body: body}, nil
	}
	return nil, fmt.Errorf("unmarshal expr: unknown node type %q", env.Type)
}

type userFunctionJSON struct {
	Params []string        `json:"params"`
	Body   json.RawMessage `json:"body"`
}

type contextJSON struct {
	Scopes    []map[string]Number         `json:"scopes"`
	Functions map[string]userFunctionJSON `json:"functions"`
}

func (c *Context) MarshalJSON() ([]byte, error) {
	out := contextJSON{
		Scopes:    c.scopes,
		Functions: make(map[string]userFunctionJSON, len(c.functions)),
	}
	for name, fn := range c.functions {
		body, err := MarshalExpr(fn.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal context function %s: %w", name, err)
		}
		params := fn.Params
		if params == nil {
			params = []string{}
		}
		out.Functions[name] = userFunctionJSON{Params: params, Body: body}
	}
	return json.Marshal(out)
}

func (c *Context) UnmarshalJSON(data []byte) error {
	var in contextJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	scopes := in.Scopes
	if len(scopes) == 0 {
		scopes = []map[string]Number{{}}
	}
	functions := make(map[string]UserFunction, len(in.Functions))
	for name, fn := range in.Functions {
		body, err := UnmarshalExpr(fn.Body)
		if err != nil {
			return fmt.Errorf("unmarshal context function %s: %w", name, err)
		}
		functions[name] = UserFunction{Params: fn.Params, Body: body}
	}
	c.scopes = scopes
	c.functions = functions
	return nil
}
