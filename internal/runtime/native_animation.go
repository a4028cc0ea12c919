package runtime

import "math"

// ============================================================================
// std:animation 模块
// ============================================================================
//
// 缓动函数。输入进度 t 取 [0,1]，输出为缓动后的进度。
//
// ============================================================================

func buildAnimationModule() *Module {
	exports := map[string]Value{
		"linear":    NewNative("animation.linear", nativeAnimLinear),
		"easeIn":    NewNative("animation.easeIn", nativeAnimEaseIn),
		"easeOut":   NewNative("animation.easeOut", nativeAnimEaseOut),
		"easeInOut": NewNative("animation.easeInOut", nativeAnimEaseInOut),
		"bounce":    NewNative("animation.bounce", nativeAnimBounce),
		"frames":    NewNative("animation.frames", nativeAnimFrames),
	}
	return &Module{Name: "animation", Exports: exports}
}

func clampProgress(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func nativeAnimLinear(args []Value) (Value, error) {
	t, err := argNumber("animation.linear", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(clampProgress(t)), nil
}

// nativeAnimEaseIn 二次缓入
func nativeAnimEaseIn(args []Value) (Value, error) {
	t, err := argNumber("animation.easeIn", args, 0)
	if err != nil {
		return NullValue, err
	}
	t = clampProgress(t)
	return NewNumber(t * t), nil
}

// nativeAnimEaseOut 二次缓出
func nativeAnimEaseOut(args []Value) (Value, error) {
	t, err := argNumber("animation.easeOut", args, 0)
	if err != nil {
		return NullValue, err
	}
	t = clampProgress(t)
	return NewNumber(t * (2 - t)), nil
}

// nativeAnimEaseInOut 三次缓入缓出
func nativeAnimEaseInOut(args []Value) (Value, error) {
	t, err := argNumber("animation.easeInOut", args, 0)
	if err != nil {
		return NullValue, err
	}
	t = clampProgress(t)
	if t < 0.5 {
		return NewNumber(4 * t * t * t), nil
	}
	return NewNumber(1 - math.Pow(-2*t+2, 3)/2), nil
}

// nativeAnimBounce 指数衰减正弦弹跳
func nativeAnimBounce(args []Value) (Value, error) {
	t, err := argNumber("animation.bounce", args, 0)
	if err != nil {
		return NullValue, err
	}
	t = clampProgress(t)
	return NewNumber(1 - math.Exp(-6*t)*math.Abs(math.Cos(t*math.Pi*3))), nil
}

// nativeAnimFrames 时长（毫秒）和帧率对应的帧数，帧率缺省 60
func nativeAnimFrames(args []Value) (Value, error) {
	duration, err := argNumber("animation.frames", args, 0)
	if err != nil {
		return NullValue, err
	}
	fps := optNumber(args, 1, 60)
	return NewNumber(math.Ceil(duration / 1000 * fps)), nil
}
