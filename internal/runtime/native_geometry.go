package runtime

import "math"

// ============================================================================
// std:geometry 模块
// ============================================================================
//
// 黄金比例与正多边形常量。四个节点常量来自可视化布局的
// 四种节点形状权重。
//
// ============================================================================

var (
	goldenRatio = (1 + math.Sqrt(5)) / 2 // φ ≈ 1.618
	goldenAngle = 2.399                  // ≈ 137.5°（弧度）
)

func buildGeometryModule() *Module {
	exports := map[string]Value{
		"phi":         NewNumber(goldenRatio),
		"goldenAngle": NewNumber(goldenAngle),

		// 节点形状权重常量
		"tetrahedral": NewNumber((math.Pi*math.Pi + goldenRatio*math.Sqrt(5)) / 2), // ≈ 7.416
		"hexagonal":   NewNumber(math.Pi + (2*math.Sqrt(3))/goldenRatio),           // ≈ 4.373
		"pentagonal":  NewNumber((math.Pi + goldenRatio + math.Sqrt(5)) / 3),       // ≈ 2.327
		"fractal":     NewNumber(math.Pi*goldenRatio*goldenRatio + math.Sqrt(2)),   // ≈ 9.737

		"interiorAngle": NewNative("geometry.interiorAngle", nativeGeoInteriorAngle),
		"polygonArea":   NewNative("geometry.polygonArea", nativeGeoPolygonArea),
		"spiralPoint":   NewNative("geometry.spiralPoint", nativeGeoSpiralPoint),
	}
	return &Module{Name: "geometry", Exports: exports}
}

// nativeGeoInteriorAngle 正 n 边形的内角（度）
func nativeGeoInteriorAngle(args []Value) (Value, error) {
	n, err := argNumber("geometry.interiorAngle", args, 0)
	if err != nil {
		return NullValue, err
	}
	if n < 3 {
		return NewNumber(0), nil
	}
	return NewNumber((n - 2) * 180 / n), nil
}

// nativeGeoPolygonArea 边长为 side 的正 n 边形面积
func nativeGeoPolygonArea(args []Value) (Value, error) {
	n, err := argNumber("geometry.polygonArea", args, 0)
	if err != nil {
		return NullValue, err
	}
	side, err := argNumber("geometry.polygonArea", args, 1)
	if err != nil {
		return NullValue, err
	}
	if n < 3 {
		return NewNumber(0), nil
	}
	area := n * side * side / (4 * math.Tan(math.Pi/n))
	return NewNumber(area), nil
}

// nativeGeoSpiralPoint 黄金螺旋上第 n 个点
//
// 返回 {x, y, theta, r}。base 为起始半径，缺省 50。
func nativeGeoSpiralPoint(args []Value) (Value, error) {
	n, err := argNumber("geometry.spiralPoint", args, 0)
	if err != nil {
		return NullValue, err
	}
	base := optNumber(args, 1, 50)

	theta := n * goldenAngle
	r := base * math.Pow(goldenRatio, n/2)

	point := NewObjectData()
	point.Set("x", NewNumber(r*math.Cos(theta)))
	point.Set("y", NewNumber(r*math.Sin(theta)))
	point.Set("theta", NewNumber(theta))
	point.Set("r", NewNumber(r))
	return NewObject(point), nil
}
