package runtime

import "math"

// ============================================================================
// std:optimization 模块
// ============================================================================
//
// 模拟退火与黄金分割搜索的辅助函数。这些是纯数值计算，
// 搜索循环本身由脚本编写。
//
// ============================================================================

func buildOptimizationModule() *Module {
	exports := map[string]Value{
		"temperature":  NewNative("optimization.temperature", nativeOptTemperature),
		"acceptance":   NewNative("optimization.acceptance", nativeOptAcceptance),
		"coolingSteps": NewNative("optimization.coolingSteps", nativeOptCoolingSteps),
		"goldenSplit":  NewNative("optimization.goldenSplit", nativeOptGoldenSplit),
	}
	return &Module{Name: "optimization", Exports: exports}
}

// nativeOptTemperature 几何降温：t0 * rate^step
func nativeOptTemperature(args []Value) (Value, error) {
	t0, err := argNumber("optimization.temperature", args, 0)
	if err != nil {
		return NullValue, err
	}
	rate, err := argNumber("optimization.temperature", args, 1)
	if err != nil {
		return NullValue, err
	}
	step, err := argNumber("optimization.temperature", args, 2)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(t0 * math.Pow(rate, step)), nil
}

// nativeOptAcceptance Metropolis 接受概率
//
// delta <= 0（更优解）时为 1，否则 exp(-delta/temp)。
func nativeOptAcceptance(args []Value) (Value, error) {
	delta, err := argNumber("optimization.acceptance", args, 0)
	if err != nil {
		return NullValue, err
	}
	temp, err := argNumber("optimization.acceptance", args, 1)
	if err != nil {
		return NullValue, err
	}
	if delta <= 0 {
		return NewNumber(1), nil
	}
	if temp <= 0 {
		return NewNumber(0), nil
	}
	return NewNumber(math.Exp(-delta / temp)), nil
}

// nativeOptCoolingSteps 从 t0 降到 tmin 需要的步数
func nativeOptCoolingSteps(args []Value) (Value, error) {
	t0, err := argNumber("optimization.coolingSteps", args, 0)
	if err != nil {
		return NullValue, err
	}
	tmin, err := argNumber("optimization.coolingSteps", args, 1)
	if err != nil {
		return NullValue, err
	}
	rate, err := argNumber("optimization.coolingSteps", args, 2)
	if err != nil {
		return NullValue, err
	}
	if t0 <= 0 || tmin <= 0 || tmin >= t0 || rate <= 0 || rate >= 1 {
		return NewNumber(0), nil
	}
	return NewNumber(math.Ceil(math.Log(tmin/t0) / math.Log(rate))), nil
}

// nativeOptGoldenSplit 黄金分割搜索的内点 {lo, hi}
func nativeOptGoldenSplit(args []Value) (Value, error) {
	a, err := argNumber("optimization.goldenSplit", args, 0)
	if err != nil {
		return NullValue, err
	}
	b, err := argNumber("optimization.goldenSplit", args, 1)
	if err != nil {
		return NullValue, err
	}

	inv := 1 / goldenRatio
	split := NewObjectData()
	split.Set("lo", NewNumber(b-(b-a)*inv))
	split.Set("hi", NewNumber(a+(b-a)*inv))
	return NewObject(split), nil
}
