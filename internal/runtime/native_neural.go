package runtime

import "math"

// ============================================================================
// std:neural 模块
// ============================================================================
//
// 模拟的神经网络构建块。层构造器返回描述对象，不做真实训练；
// sigmoid / relu 是逐数值的激活函数。
//
// ============================================================================

func buildNeuralModule() *Module {
	exports := map[string]Value{
		"linear":     NewNative("neural.linear", nativeNeuralLinear),
		"sequential": NewNative("neural.sequential", nativeNeuralSequential),
		"relu":       NewNative("neural.relu", nativeNeuralRelu),
		"sigmoid":    NewNative("neural.sigmoid", nativeNeuralSigmoid),
		"tanh":       NewNative("neural.tanh", nativeNeuralTanh),
		"paramCount": NewNative("neural.paramCount", nativeNeuralParamCount),
	}
	return &Module{Name: "neural", Exports: exports}
}

// nativeNeuralLinear 全连接层描述 {kind, in, out, params}
func nativeNeuralLinear(args []Value) (Value, error) {
	in, err := argNumber("neural.linear", args, 0)
	if err != nil {
		return NullValue, err
	}
	out, err := argNumber("neural.linear", args, 1)
	if err != nil {
		return NullValue, err
	}

	layer := NewObjectData()
	layer.Set("kind", NewString("linear"))
	layer.Set("in", NewNumber(in))
	layer.Set("out", NewNumber(out))
	layer.Set("params", NewNumber(in*out+out)) // 权重 + 偏置
	return NewObject(layer), nil
}

// nativeNeuralSequential 层序列描述 {kind, layers, params}
func nativeNeuralSequential(args []Value) (Value, error) {
	layers, err := argArray("neural.sequential", args, 0)
	if err != nil {
		return NullValue, err
	}

	total := 0.0
	for _, l := range layers.Elements {
		if obj := l.AsObject(); obj != nil {
			if p, ok := obj.Get("params"); ok {
				total += p.AsNumber()
			}
		}
	}

	model := NewObjectData()
	model.Set("kind", NewString("sequential"))
	model.Set("layers", args[0])
	model.Set("params", NewNumber(total))
	return NewObject(model), nil
}

func nativeNeuralRelu(args []Value) (Value, error) {
	x, err := argNumber("neural.relu", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Max(0, x)), nil
}

func nativeNeuralSigmoid(args []Value) (Value, error) {
	x, err := argNumber("neural.sigmoid", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(1 / (1 + math.Exp(-x))), nil
}

func nativeNeuralTanh(args []Value) (Value, error) {
	x, err := argNumber("neural.tanh", args, 0)
	if err != nil {
		return NullValue, err
	}
	return NewNumber(math.Tanh(x)), nil
}

// nativeNeuralParamCount 模型或层的参数总数
func nativeNeuralParamCount(args []Value) (Value, error) {
	if len(args) == 0 || args[0].Type != ValObject {
		return NewNumber(0), nil
	}
	if p, ok := args[0].AsObject().Get("params"); ok {
		return NewNumber(p.AsNumber()), nil
	}
	return NewNumber(0), nil
}
