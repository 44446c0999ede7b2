package functions

import (
	"math"
	"math/big"
	"math/bits"

	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

// Bitwise functions operate on exact integers of any size; shifts and
// rotations bound their second operand.

func toInt(n engine.Number) (*big.Int, error) {
	if n.Kind() != engine.KindInteger {
		return nil, domain.ErrTypeMismatch("bitwise operation", "integer")
	}
	return n.Int(), nil
}

func binaryIntOp(name string, op func(a, b *big.Int) (engine.Number, error)) engine.BuiltinFunc {
	return func(args []engine.Number) (engine.Number, error) {
		if len(args) != 2 {
			return engine.Number{}, domain.ErrArgumentMismatch(name, 2)
		}
		a, err := toInt(args[0])
		if err != nil {
			return engine.Number{}, err
		}
		b, err := toInt(args[1])
		if err != nil {
			return engine.Number{}, err
		}
		return op(a, b)
	}
}

func bnot(args []engine.Number) (engine.Number, error) {
	if len(args) != 1 {
		return engine.Number{}, domain.ErrArgumentMismatch("bnot", 1)
	}
	a, err := toInt(args[0])
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewInteger(new(big.Int).Not(a)), nil
}

func shiftCount(b *big.Int) (uint, bool) {
	if b.Sign() < 0 || !b.IsUint64() || b.Uint64() > math.MaxUint32 {
		return 0, false
	}
	return uint(b.Uint64()), true
}

func init() {
	engine.RegisterBuiltin("band", binaryIntOp("band", func(a, b *big.Int) (engine.Number, error) {
		return engine.NewInteger(new(big.Int).And(a, b)), nil
	}))
	engine.RegisterBuiltin("bor", binaryIntOp("bor", func(a, b *big.Int) (engine.Number, error) {
		return engine.NewInteger(new(big.Int).Or(a, b)), nil
	}))
	engine.RegisterBuiltin("bxor", binaryIntOp("bxor", func(a, b *big.Int) (engine.Number, error) {
		return engine.NewInteger(new(big.Int).Xor(a, b)), nil
	}))
	engine.RegisterBuiltin("bnot", bnot)
	engine.RegisterBuiltin("lsh", binaryIntOp("lsh", func(a, b *big.Int) (engine.Number, error) {
		shift, ok := shiftCount(b)
		if !ok {
			return engine.Number{}, domain.ErrDomain("shift count too large or negative")
		}
		return engine.NewInteger(new(big.Int).Lsh(a, shift)), nil
	}))
	engine.RegisterBuiltin("rsh", binaryIntOp("rsh", func(a, b *big.Int) (engine.Number, error) {
		shift, ok := shiftCount(b)
		if !ok {
			return engine.Number{}, domain.ErrDomain("shift count too large or negative")
		}
		return engine.NewInteger(new(big.Int).Rsh(a, shift)), nil
	}))
	// Rotations are defined over 64-bit values.
	engine.RegisterBuiltin("rol", binaryIntOp("rol", func(a, b *big.Int) (engine.Number, error) {
		if !a.IsInt64() || !b.IsUint64() || b.Uint64() > math.MaxUint32 {
			return engine.Number{}, domain.ErrDomain("rotation arguments too large")
		}
		rotated := bits.RotateLeft64(uint64(a.Int64()), int(b.Uint64()%64))
		return engine.NewInteger(big.NewInt(int64(rotated))), nil
	}))
	engine.RegisterBuiltin("ror", binaryIntOp("ror", func(a, b *big.Int) (engine.Number, error) {
		if !a.IsInt64() || !b.IsUint64() || b.Uint64() > math.MaxUint32 {
			return engine.Number{}, domain.ErrDomain("rotation arguments too large")
		}
		rotated := bits.RotateLeft64(uint64(a.Int64()), -int(b.Uint64()%64))
		return engine.NewInteger(big.NewInt(int64(rotated))), nil
	}))
}
