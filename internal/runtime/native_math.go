package runtime

import (
	"math"
	"math/rand"
)

// ============================================================================
// std:math 模块
// ============================================================================

func buildMathModule() *Module {
	exports := map[string]Value{
		"pi": NewNumber(math.Pi),
		"e":  NewNumber(math.E),

		"abs":    NewNative("math.abs", nativeMathAbs),
		"floor":  NewNative("math.floor", nativeMathFloor),
		"ceil":   NewNative("math.ceil", nativeMathCeil),
		"round":  NewNative("math.round", nativeMathRound),
		"sqrt":   NewNative("math.sqrt", nativeMathSqrt),
		"pow":    NewNative("math.pow", nativeMathPow),
		"min":    NewNative("math.min", nativeMathMin),
		"max":    NewNative("math.max", nativeMathMax),
		"clamp":  NewNative("math.clamp", nativeMathClamp),
		"sin":    NewNative("math.sin", nativeMathSin),
		"cos":    NewNative("math.cos", nativeMathCos),
		"tan":    NewNative("math.tan", nativeMathTan),
		"log":    NewNative("math.log", nativeMathLog),
		"exp":    NewNative("math.exp", nativeMathExp),
		"random": NewNative("math.random", nativeMathRandom),
	}
	return &Module{Name: "math", Exports: exports}
}

func nativeMathAbs(args []Value) (Value, error) {
	x, err := argNumber("math.abs", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Abs(x)), nil
}

func nativeMathFloor(args []Value) (Value, error) {
	x, err := argNumber("math.floor", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Floor(x)), nil
}

func nativeMathCeil(args []Value) (Value, error) {
	x, err := argNumber("math.ceil", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Ceil(x)), nil
}

func nativeMathRound(args []Value) (Value, error) {
	x, err := argNumber("math.round", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Round(x)), nil
}

func nativeMathSqrt(args []Value) (Value, error) {
	x, err := argNumber("math.sqrt", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Sqrt(x)), nil
}

func nativeMathPow(args []Value) (Value, error) {
	x, err := argNumber("math.pow", args, 0)
	if err != nil {
		return NullValue, err
	}
	y, err := argNumber("math.pow", args, 1)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Pow(x, y)), nil
}

// nativeMathMin 任意个数字参数的最小值，无参数时返回 null
func nativeMathMin(args []Value) (Value, error) {
	if len(args) == 0 {
		return NullValue, nil
	}
	min, err := argNumber("math.min", args, 0)
	if err != nil {
		return NullValue, err
	}
	for i := 1; i < len(args); i++ {
		x, err := argNumber("math.min", args, i)
		if err != nil {
			return NullValue, err
		}
		if x < min {
			min = x
		}
	}
	return NewNumber(min), nil
}

// nativeMathMax 任意个数字参数的最大值，无参数时返回 null
func nativeMathMax(args []Value) (Value, error) {
	if len(args) == 0 {
		return NullValue, nil
	}
	max, err := argNumber("math.max", args, 0)
	if err != nil {
		return NullValue, err
	}
	for i := 1; i < len(args); i++ {
		x, err := argNumber("math.max", args, i)
		if err != nil {
			return NullValue, err
		}
		if x > max {
			max = x
		}
	}
	return NewNumber(max), nil
}

// nativeMathClamp 把 x 限制在 [lo, hi] 区间内
func nativeMathClamp(args []Value) (Value, error) {
	x, err := argNumber("math.clamp", args, 0)
	if err != nil {
		return NullValue, err
	}
	lo, err := argNumber("math.clamp", args, 1)
	if err != nil {
		return NullValue, err
	}
	hi, err := argNumber("math.clamp", args, 2)
	if err != nil {
		return NullValue, err
	}
	if x < lo {
		return NewNumber(lo), nil
	}
	if x > hi {
		return NewNumber(hi), nil
	}
	return NewNumber(x), nil
}

func nativeMathSin(args []Value) (Value, error) {
	x, err := argNumber("math.sin", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Sin(x)), nil
}

func nativeMathCos(args []Value) (Value, error) {
	x, err := argNumber("math.cos", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Cos(x)), nil
}

func nativeMathTan(args []Value) (Value, error) {
	x, err := argNumber("math.tan", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Tan(x)), nil
}

func nativeMathLog(args []Value) (Value, error) {
	x, err := argNumber("math.log", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Log(x)), nil
}

func nativeMathExp(args []Value) (Value, error) {
	x, err := argNumber("math.exp", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Exp(x)), nil
}

// nativeMathRandom [0, 1) 区间内的随机数
func nativeMathRandom(args []Value) (Value, error) {
	return NewNumber(rand.Float64()), nil
}
