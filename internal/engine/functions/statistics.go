package functions

import (
	"math/cmplx"
	"sort"

	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

// Statistics stay exact where the inputs allow it: mean(1, 2) is the rational
// 3/2, not 1.5.

func mean(args []engine.Number) (engine.Number, error) {
	if len(args) == 0 {
		return engine.Number{}, domain.ErrArgumentMismatch("mean", 1)
	}
	sum := engine.IntegerFromInt64(0)
	for _, arg := range args {
		sum = sum.Add(arg)
	}
	return sum.Div(engine.IntegerFromInt64(int64(len(args)))), nil
}

func median(args []engine.Number) (engine.Number, error) {
	if len(args) == 0 {
		return engine.Number{}, domain.ErrArgumentMismatch("median", 1)
	}
	for _, n := range args {
		if n.Kind() == engine.KindComplex {
			return engine.Number{}, domain.ErrTypeMismatch("real numbers", "complex")
		}
	}

	sorted := make([]engine.Number, len(args))
	copy(sorted, args)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp, ok := sorted[i].Cmp(sorted[j])
		return ok && cmp < 0
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	two := engine.IntegerFromInt64(2)
	return sorted[mid-1].Add(sorted[mid]).Div(two), nil
}

// variance is the sample variance (n-1 denominator).
func variance(args []engine.Number) (engine.Number, error) {
	if len(args) < 2 {
		return engine.Number{}, domain.ErrArgumentMismatch("variance", 2)
	}
	m, err := mean(args)
	if err != nil {
		return engine.Number{}, err
	}
	sumSq := engine.IntegerFromInt64(0)
	for _, x := range args {
		diff := x.Sub(m)
		sumSq = sumSq.Add(diff.Mul(diff))
	}
	return sumSq.Div(engine.IntegerFromInt64(int64(len(args) - 1))), nil
}

func stdDev(args []engine.Number) (engine.Number, error) {
	v, err := variance(args)
	if err != nil {
		return engine.Number{}, err
	}
	return engine.NewComplex(cmplx.Sqrt(v.Complex())), nil
}

func init() {
	engine.RegisterBuiltin("mean", mean)
	engine.RegisterBuiltin("median", median)
	engine.RegisterBuiltin("var", variance)
	engine.RegisterBuiltin("std", stdDev)
}
