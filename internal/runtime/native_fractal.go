package runtime

import "math"

// ============================================================================
// std:fractal 模块
// ============================================================================

func buildFractalModule() *Module {
	exports := map[string]Value{
		"dimension":  NewNative("fractal.dimension", nativeFractalDimension),
		"sierpinski": NewNative("fractal.sierpinski", nativeFractalSierpinski),
		"kochLength": NewNative("fractal.kochLength", nativeFractalKochLength),
		"mandelbrot": NewNative("fractal.mandelbrot", nativeFractalMandelbrot),
	}
	return &Module{Name: "fractal", Exports: exports}
}

// nativeFractalDimension 相似维数 log(parts) / log(scale)
func nativeFractalDimension(args []Value) (Value, error) {
	parts, err := argNumber("fractal.dimension", args, 0)
	if err != nil {
		return NullValue, err
	}
	scale, err := argNumber("fractal.dimension", args, 1)
	if err != nil {
		return NullValue, err
	}
	if parts <= 0 || scale <= 1 {
		return NewNumber(0), nil
	}
	return NewNumber(math.Log(parts) / math.Log(scale)), nil
}

// nativeFractalSierpinski 谢尔宾斯基三角形第 depth 层的三角形数 3^depth
func nativeFractalSierpinski(args []Value) (Value, error) {
	depth, err := argNumber("fractal.sierpinski", args, 0)
	if err != nil {
		return NullValue, err
	}
	if depth < 0 {
		return NewNumber(0), nil
	}
	return NewNumber(math.Pow(3, math.Floor(depth))), nil
}

// nativeFractalKochLength 科赫曲线第 depth 次迭代后的长度倍数 (4/3)^depth
func nativeFractalKochLength(args []Value) (Value, error) {
	depth, err := argNumber("fractal.kochLength", args, 0)
	if err != nil {
		return NullValue, err
	}
	if depth < 0 {
		return NewNumber(1), nil
	}
	return NewNumber(math.Pow(4.0/3.0, math.Floor(depth))), nil
}

// nativeFractalMandelbrot 曼德博集合逃逸迭代数
//
// 参数：cx, cy, maxIter（缺省 100）。点在集合内时返回 maxIter。
func nativeFractalMandelbrot(args []Value) (Value, error) {
	cx, err := argNumber("fractal.mandelbrot", args, 0)
	if err != nil {
		return NullValue, err
	}
	cy, err := argNumber("fractal.mandelbrot", args, 1)
	if err != nil {
		return NullValue, err
	}
	maxIter := int(optNumber(args, 2, 100))

	x, y := 0.0, 0.0
	for i := 0; i < maxIter; i++ {
		if x*x+y*y > 4 {
			return NewNumber(float64(i)), nil
		}
		x, y = x*x-y*y+cx, 2*x*y+cy
	}
	return NewNumber(float64(maxIter)), nil
}
