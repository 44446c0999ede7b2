package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"math/cmplx"

	"neocalc/internal/domain"
)

// NumberKind discriminates the numeric tower. Promotion rank:
// Integer < Rational < Float < Complex.
type NumberKind int

const (
	KindInteger NumberKind = iota
	KindRational
	KindFloat
	KindComplex
)

func (k NumberKind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindRational:
		return "Rational"
	case KindFloat:
		return "Float"
	case KindComplex:
		return "Complex"
	}
	return "Unknown"
}

// Number is an arbitrary-precision numeric value. Integers and rationals are
// exact (math/big); floats and complex values are 64-bit. The zero value is
// the integer 0. Values are immutable: operations return fresh Numbers and
// never mutate the receiver's big.Int/big.Rat.
type Number struct {
	kind NumberKind
	i    *big.Int
	r    *big.Rat
	f    float64
	c    complex128
}

func IntegerFromInt64(v int64) Number { return Number{kind: KindInteger, i: big.NewInt(v)} }
func NewInteger(v *big.Int) Number    { return Number{kind: KindInteger, i: v} }
func NewRational(v *big.Rat) Number   { return Number{kind: KindRational, r: v} }
func NewFloat(v float64) Number       { return Number{kind: KindFloat, f: v} }
func NewComplex(v complex128) Number  { return Number{kind: KindComplex, c: v} }

func (n Number) Kind() NumberKind { return n.kind }

// Int returns the underlying integer. Valid only for KindInteger.
func (n Number) Int() *big.Int { return n.intOrZero() }

// Rat returns the underlying rational. Valid only for KindRational.
func (n Number) Rat() *big.Rat {
	if n.r == nil {
		return new(big.Rat)
	}
	return n.r
}

func (n Number) intOrZero() *big.Int {
	if n.i == nil {
		return new(big.Int)
	}
	return n.i
}

// Complex widens any number to complex128. Integers beyond float64 range
// become ±Inf.
func (n Number) Complex() complex128 {
	switch n.kind {
	case KindInteger:
		f, _ := new(big.Float).SetInt(n.intOrZero()).Float64()
		return complex(f, 0)
	case KindRational:
		f, _ := n.Rat().Float64()
		return complex(f, 0)
	case KindFloat:
		return complex(n.f, 0)
	case KindComplex:
		return n.c
	}
	return 0
}

// Float64 reports the value as a float64 when it is real.
func (n Number) Float64() (float64, bool) {
	switch n.kind {
	case KindInteger:
		f, _ := new(big.Float).SetInt(n.intOrZero()).Float64()
		return f, true
	case KindRational:
		f, _ := n.Rat().Float64()
		return f, true
	case KindFloat:
		return n.f, true
	case KindComplex:
		if imag(n.c) == 0 {
			return real(n.c), true
		}
		return 0, false
	}
	return 0, false
}

func (n Number) IsZero() bool {
	switch n.kind {
	case KindInteger:
		return n.intOrZero().Sign() == 0
	case KindRational:
		return n.Rat().Sign() == 0
	case KindFloat:
		return n.f == 0
	case KindComplex:
		return n.c == 0
	}
	return true
}

// promote lifts both operands to their common kind.
func promote(l, r Number) (Number, Number) {
	if l.kind == r.kind {
		return l, r
	}
	if l.kind == KindComplex || r.kind == KindComplex {
		return NewComplex(l.Complex()), NewComplex(r.Complex())
	}
	if l.kind == KindFloat || r.kind == KindFloat {
		lf, _ := l.Float64()
		rf, _ := r.Float64()
		return NewFloat(lf), NewFloat(rf)
	}
	// Integer vs Rational.
	toRat := func(n Number) Number {
		if n.kind == KindRational {
			return n
		}
		return NewRational(new(big.Rat).SetInt(n.intOrZero()))
	}
	return toRat(l), toRat(r)
}

func (n Number) Add(m Number) Number {
	l, r := promote(n, m)
	switch l.kind {
	case KindInteger:
		return NewInteger(new(big.Int).Add(l.i, r.i))
	case KindRational:
		return NewRational(new(big.Rat).Add(l.r, r.r))
	case KindFloat:
		return NewFloat(l.f + r.f)
	default:
		return NewComplex(l.c + r.c)
	}
}

func (n Number) Sub(m Number) Number {
	l, r := promote(n, m)
	switch l.kind {
	case KindInteger:
		return NewInteger(new(big.Int).Sub(l.i, r.i))
	case KindRational:
		return NewRational(new(big.Rat).Sub(l.r, r.r))
	case KindFloat:
		return NewFloat(l.f - r.f)
	default:
		return NewComplex(l.c - r.c)
	}
}

func (n Number) Mul(m Number) Number {
	l, r := promote(n, m)
	switch l.kind {
	case KindInteger:
		return NewInteger(new(big.Int).Mul(l.i, r.i))
	case KindRational:
		return NewRational(new(big.Rat).Mul(l.r, r.r))
	case KindFloat:
		return NewFloat(l.f * r.f)
	default:
		return NewComplex(l.c * r.c)
	}
}

// Div divides, keeping exactness where possible: Integer/Integer yields a
// Rational. Division by a zero integer/rational promotes to float so the
// result is ±Inf rather than a panic.
func (n Number) Div(m Number) Number {
	if n.kind == KindInteger && m.kind == KindInteger {
		if m.intOrZero().Sign() == 0 {
			lf, _ := n.Float64()
			return NewFloat(lf / 0)
		}
		return NewRational(new(big.Rat).SetFrac(n.intOrZero(), m.intOrZero()))
	}
	l, r := promote(n, m)
	switch l.kind {
	case KindRational:
		if r.r.Sign() == 0 {
			lf, _ := l.Float64()
			return NewFloat(lf / 0)
		}
		return NewRational(new(big.Rat).Quo(l.r, r.r))
	case KindFloat:
		return NewFloat(l.f / r.f)
	case KindComplex:
		return NewComplex(l.c / r.c)
	default:
		// Unreachable: the Integer/Integer case returned above.
		return NewFloat(math.NaN())
	}
}

// Mod is the truncated remainder. Not defined for complex operands; NaN
// signals the invalid operation there.
func (n Number) Mod(m Number) Number {
	l, r := promote(n, m)
	switch l.kind {
	case KindInteger:
		if r.i.Sign() == 0 {
			return NewFloat(math.NaN())
		}
		return NewInteger(new(big.Int).Rem(l.i, r.i))
	case KindRational:
		if r.r.Sign() == 0 {
			return NewFloat(math.NaN())
		}
		return NewRational(ratRem(l.r, r.r))
	case KindFloat:
		return NewFloat(math.Mod(l.f, r.f))
	default:
		return NewFloat(math.NaN())
	}
}

// ratRem computes l - trunc(l/r)*r.
func ratRem(l, r *big.Rat) *big.Rat {
	q := new(big.Rat).Quo(l, r)
	t := new(big.Int).Quo(q.Num(), q.Denom())
	return new(big.Rat).Sub(l, new(big.Rat).Mul(new(big.Rat).SetInt(t), r))
}

func (n Number) Neg() Number {
	switch n.kind {
	case KindInteger:
		return NewInteger(new(big.Int).Neg(n.intOrZero()))
	case KindRational:
		return NewRational(new(big.Rat).Neg(n.Rat()))
	case KindFloat:
		return NewFloat(-n.f)
	default:
		return NewComplex(-n.c)
	}
}

// Cmp orders two numbers; ok is false when either operand is complex.
func (n Number) Cmp(m Number) (int, bool) {
	l, r := promote(n, m)
	switch l.kind {
	case KindInteger:
		return l.i.Cmp(r.i), true
	case KindRational:
		return l.r.Cmp(r.r), true
	case KindFloat:
		switch {
		case l.f < r.f:
			return -1, true
		case l.f > r.f:
			return 1, true
		case l.f == r.f:
			return 0, true
		}
		return 0, false // NaN
	default:
		return 0, false
	}
}

// Pow raises base to exp. Integer^Integer stays exact while the exponent fits
// a uint32 (negative exponents produce exact rationals); everything else goes
// through complex powers.
func Pow(base, exp Number) Number {
	if base.kind == KindInteger && exp.kind == KindInteger {
		e := exp.intOrZero()
		if e.Sign() >= 0 {
			if e.IsUint64() && e.Uint64() <= math.MaxUint32 {
				return NewInteger(new(big.Int).Exp(base.intOrZero(), e, nil))
			}
		} else {
			abs := new(big.Int).Neg(e)
			if abs.IsUint64() && abs.Uint64() <= math.MaxUint32 {
				den := new(big.Int).Exp(base.intOrZero(), abs, nil)
				if den.Sign() == 0 {
					return NewFloat(math.Inf(1)) // e.g. 0^-2
				}
				return NewRational(new(big.Rat).SetFrac(big.NewInt(1), den))
			}
		}
		// Exponent too large for exact arithmetic.
		bf, _ := base.Float64()
		ef, _ := exp.Float64()
		return NewFloat(math.Pow(bf, ef))
	}
	return NewComplex(cmplx.Pow(base.Complex(), exp.Complex()))
}

// Factorial computes n! for non-negative integers.
func Factorial(n Number) (Number, error) {
	if n.kind != KindInteger {
		return Number{}, domain.ErrDomain("factorial only implemented for integers")
	}
	if n.intOrZero().Sign() < 0 {
		return Number{}, domain.ErrDomain("factorial of negative integer")
	}
	acc := big.NewInt(1)
	k := big.NewInt(1)
	for k.Cmp(n.i) <= 0 {
		acc.Mul(acc, k)
		k.Add(k, big.NewInt(1))
	}
	return NewInteger(acc), nil
}

// numberJSON is the persisted representation. Integer and rational components
// are decimal strings so arbitrary precision survives the round trip; complex
// values split into re/im.
type numberJSON struct {
	Type  string  `json:"type"`
	Value string  `json:"value,omitempty"`
	Numer string  `json:"numer,omitempty"`
	Denom string  `json:"denom,omitempty"`
	Float float64 `json:"float,omitempty"`
	Re    float64 `json:"re,omitempty"`
	Im    float64 `json:"im,omitempty"`
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case KindInteger:
		return json.Marshal(numberJSON{Type: "integer", Value: n.intOrZero().String()})
	case KindRational:
		r := n.Rat()
		return json.Marshal(numberJSON{Type: "rational", Numer: r.Num().String(), Denom: r.Denom().String()})
	case KindFloat:
		return json.Marshal(numberJSON{Type: "float", Float: n.f})
	case KindComplex:
		return json.Marshal(numberJSON{Type: "complex", Re: real(n.c), Im: imag(n.c)})
	}
	return nil, fmt.Errorf("marshal number: unknown kind %d", n.kind)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var repr numberJSON
	if err := json.Unmarshal(data, &repr); err != nil {
		return err
	}
	switch repr.Type {
	case "integer":
		i, ok := new(big.Int).SetString(repr.Value, 10)
		if !ok {
			return fmt.Errorf("unmarshal number: bad integer %q", repr.Value)
		}
		*n = NewInteger(i)
	case "rational":
		num, ok := new(big.Int).SetString(repr.Numer, 10)
		if !ok {
			return fmt.Errorf("unmarshal number: bad numerator %q", repr.Numer)
		}
		den, ok := new(big.Int).SetString(repr.Denom, 10)
		if !ok || den.Sign() == 0 {
			return fmt.Errorf("unmarshal number: bad denominator %q", repr.Denom)
		}
		*n = NewRational(new(big.Rat).SetFrac(num, den))
	case "float":
		*n = NewFloat(repr.Float)
	case "complex":
		*n = NewComplex(complex(repr.Re, repr.Im))
	default:
		return fmt.Errorf("unmarshal number: unknown type %q", repr.Type)
	}
	return nil
}
