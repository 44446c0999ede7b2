package functions

import (
	"math"
	"math/cmplx"

	"neocalc/internal/domain"
	"neocalc/internal/engine"
)

// Financial functions follow the spreadsheet sign conventions (money paid out
// is negative). Rates, periods and values all go through complex arithmetic
// so fractional and negative rates take the same code path.

const rateEpsilon = 1e-9

func annuityArgs(name string, args []engine.Number) ([]complex128, error) {
	if len(args) < 3 || len(args) > 5 {
		return nil, domain.ErrArgumentMismatch(name, 3)
	}
	return toComplexArgs(args), nil
}

func optArg(args []complex128, i int) complex128 {
	if len(args) > i {
		return args[i]
	}
	return 0
}

// fv(rate, nper, pv[, pmt[, type]]):future value.
func fv(args []engine.Number) (engine.Number, error) {
	c, err := annuityArgs("fv", args)
	if err != nil {
		return engine.Number{}, err
	}
	rate, nper, pv := c[0], c[1], c[2]
	pmt := optArg(c, 3)
	typeVal := real(optArg(c, 4))

	var result complex128
	if cmplx.Abs(rate) < rateEpsilon {
		result = -(pv + pmt*nper)
	} else {
		factor := cmplx.Pow(1+rate, nper)
		termPmt := pmt * (1 + rate*complex(typeVal, 0)) * ((factor - 1) / rate)
		result = -(pv*factor + termPmt)
	}
	return engine.NewComplex(result), nil
}

// pv(rate, nper, fv[, pmt[, type]]):present value.
func pv(args []engine.Number) (engine.Number, error) {
	c, err := annuityArgs("pv", args)
	if err != nil {
		return engine.Number{}, err
	}
	rate, nper, fv := c[0], c[1], c[2]
	pmt := optArg(c, 3)
	typeVal := real(optArg(c, 4))

	var result complex128
	if cmplx.Abs(rate) < rateEpsilon {
		result = -(fv + pmt*nper)
	} else {
		factor := cmplx.Pow(1+rate, nper)
		termPmt := pmt * (1 + rate*complex(typeVal, 0)) * ((factor - 1) / rate)
		result = -(fv + termPmt) / factor
	}
	return engine.NewComplex(result), nil
}

// pmt(rate, nper, pv[, fv[, type]]):periodic payment.
func pmt(args []engine.Number) (engine.Number, error) {
	c, err := annuityArgs("pmt", args)
	if err != nil {
		return engine.Number{}, err
	}
	rate, nper, pv := c[0], c[1], c[2]
	fv := optArg(c, 3)
	typeVal := real(optArg(c, 4))

	var result complex128
	if cmplx.Abs(rate) < rateEpsilon {
		result = -(fv + pv) / nper
	} else {
		factor := cmplx.Pow(1+rate, nper)
		num := (pv*factor + fv) * rate
		den := (1 + rate*complex(typeVal, 0)) * (factor - 1)
		result = -(num / den)
	}
	return engine.NewComplex(result), nil
}

// nper(rate, pmt, pv[, fv[, type]]):number of periods.
func nper(args []engine.Number) (engine.Number, error) {
	c, err := annuityArgs("nper", args)
	if err != nil {
		return engine.Number{}, err
	}
	rate, pmt, pv := c[0], c[1], c[2]
	fv := optArg(c, 3)
	typeVal := real(optArg(c, 4))

	if cmplx.Abs(rate) < rateEpsilon {
		return engine.NewComplex(-(fv + pv) / pmt), nil
	}
	rType := 1 + rate*complex(typeVal, 0)
	num := pmt*rType - fv*rate
	den := pmt*rType + pv*rate
	periods := cmplx.Log(num/den) / cmplx.Log(1+rate)
	return engine.NewComplex(periods), nil
}

// npv(rate, v1, v2, ...):net present value. Each term discounts
// independently so error does not accumulate across periods.
func npv(args []engine.Number) (engine.Number, error) {
	if len(args) < 2 {
		return engine.Number{}, domain.ErrArgumentMismatch("npv", 2)
	}
	c := toComplexArgs(args)
	rate := c[0]
	var sum complex128
	for i, val := range c[1:] {
		t := float64(i + 1)
		sum += val / cmplx.Pow(1+rate, complex(t, 0))
	}
	return engine.NewComplex(sum), nil
}

// irr(v0, v1, ...):internal rate of return by Newton iteration from a 10%
// guess.
func irr(args []engine.Number) (engine.Number, error) {
	values := make([]float64, len(args))
	for i, n := range args {
		values[i] = real(n.Complex())
	}
	guess := 0.1
	for iter := 0; iter < 100; iter++ {
		var npv, deriv float64
		for i, val := range values {
			t := float64(i)
			factor := math.Pow(1+guess, t)
			npv += val / factor
			if t > 0 {
				dFactor := math.Pow(1+guess, t+1)
				deriv -= t * val / dFactor
			}
		}
		if math.Abs(npv) < 1e-7 {
			return engine.NewComplex(complex(guess, 0)), nil
		}
		if math.Abs(deriv) < 1e-10 {
			break
		}
		guess -= npv / deriv
	}
	return engine.NewComplex(complex(guess, 0)), nil
}

// rate(nper, pmt, pv[, fv[, type[, guess]]]):interest rate per period, by
// Newton iteration with a numeric derivative.
func rateFn(args []engine.Number) (engine.Number, error) {
	if len(args) < 3 {
		return engine.Number{}, domain.ErrArgumentMismatch("rate", 3)
	}
	c := toComplexArgs(args)
	nper, pmt, pv := real(c[0]), real(c[1]), real(c[2])
	fv := real(optArg(c, 3))
	typeVal := real(optArg(c, 4))
	guess := 0.1
	if len(c) >= 6 {
		guess = real(c[5])
	}

	annuity := func(r float64) float64 {
		factor := math.Pow(1+r, nper)
		termPmt := pmt * (1 + r*typeVal) * ((factor - 1) / r)
		return pv*factor + termPmt + fv
	}

	for iter := 0; iter < 100; iter++ {
		if math.Abs(guess) < 1e-9 {
			if y := pv + pmt*nper + fv; math.Abs(y) < 1e-7 {
				return engine.NewComplex(0), nil
			}
			guess = 0.0001
			continue
		}
		y := annuity(guess)
		const delta = 1e-5
		deriv := (annuity(guess+delta) - y) / delta
		if math.Abs(deriv) < 1e-10 {
			break
		}
		next := guess - y/deriv
		if math.Abs(next-guess) < 1e-7 {
			return engine.NewComplex(complex(next, 0)), nil
		}
		guess = next
	}
	return engine.NewComplex(complex(guess, 0)), nil
}

func init() {
	engine.RegisterBuiltin("fv", fv)
	engine.RegisterBuiltin("pv", pv)
	engine.RegisterBuiltin("pmt", pmt)
	engine.RegisterBuiltin("nper", nper)
	engine.RegisterBuiltin("rate", rateFn)
	engine.RegisterBuiltin("npv", npv)
	engine.RegisterBuiltin("irr", irr)
}
