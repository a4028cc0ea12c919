package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// std:ui 模块
// ============================================================================
//
// 编辑器主题颜色与颜色工具函数。节点颜色表与可视化画布的
// 四种节点类型一一对应。
//
// ============================================================================

var nodeColors = map[string]string{
	"tetrahedral": "#FF5555",
	"hexagonal":   "#5555FF",
	"pentagonal":  "#55FF55",
	"fractal":     "#AA55FF",
}

func buildUIModule() *Module {
	exports := map[string]Value{
		"background": NewString("#1E1E2E"),
		"foreground": NewString("#CDD6F4"),
		"accent":     NewString("#89B4FA"),

		"rgb":       NewNative("ui.rgb", nativeUIRgb),
		"nodeColor": NewNative("ui.nodeColor", nativeUINodeColor),
		"lighten":   NewNative("ui.lighten", nativeUILighten),
	}
	return &Module{Name: "ui", Exports: exports}
}

// nativeUIRgb 把 0-255 的三个分量编码为 #RRGGBB
func nativeUIRgb(args []Value) (Value, error) {
	r, err := argNumber("ui.rgb", args, 0)
	if err != nil {
		return NullValue, err
	}
	g, err := argNumber("ui.rgb", args, 1)
	if err != nil {
		return NullValue, err
	}
	b, err := argNumber("ui.rgb", args, 2)
	if err != nil {
		return NullValue, err
	}
	return NewString(fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))), nil
}

// nativeUINodeColor 节点类型对应的主题色，未知类型返回前景色
func nativeUINodeColor(args []Value) (Value, error) {
	kind, err := argString("ui.nodeColor", args, 0)
	if err != nil {
		return NullValue, err
	}
	if c, ok := nodeColors[strings.ToLower(kind)]; ok {
		return NewString(c), nil
	}
	return NewString("#CDD6F4"), nil
}

// nativeUILighten 把 #RRGGBB 颜色向白色插值，f 取 [0,1]
func nativeUILighten(args []Value) (Value, error) {
	hex, err := argString("ui.lighten", args, 0)
	if err != nil {
		return NullValue, err
	}
	f, err := argNumber("ui.lighten", args, 1)
	if err != nil {
		return NullValue, err
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}

	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return args[0], nil
	}

	mix := func(c float64) int {
		return clampByte(c + (255-c)*f)
	}
	return NewString(fmt.Sprintf("#%02X%02X%02X", mix(r), mix(g), mix(b))), nil
}

func clampByte(f float64) int {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return int(f)
}

func parseHexColor(s string) (r, g, b float64, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(s[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(s[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return float64(rv), float64(gv), float64(bv), true
}
