package runtime

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{-3, "-3"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1000000, "1000000"},
		{1.618, "1.618"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.input); got != tt.expected {
			t.Errorf("FormatNumber(%v): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{NullValue, "null"},
		{TrueValue, "true"},
		{FalseValue, "false"},
		{NewNumber(42), "42"},
		{NewString("plain"), "plain"},
		{NewArray([]Value{NewNumber(1), NewString("a")}), `[1, "a"]`},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}

	obj := NewObjectData()
	obj.Set("b", NewNumber(2))
	obj.Set("a", NewNumber(1))
	// 对象键保持写入顺序
	if got := NewObject(obj).String(); got != "{b: 2, a: 1}" {
		t.Errorf("expected insertion order, got %q", got)
	}
}

func TestValueIsTruthy(t *testing.T) {
	truthy := []Value{
		TrueValue,
		NewNumber(1),
		NewNumber(-0.5),
		NewString("x"),
		NewArray(nil),
		NewObject(NewObjectData()),
	}
	falsy := []Value{
		NullValue,
		FalseValue,
		NewNumber(0),
		NewString(""),
	}

	for _, v := range truthy {
		if !v.IsTruthy() {
			t.Errorf("expected %s to be truthy", v.TypeName())
		}
	}
	for _, v := range falsy {
		if v.IsTruthy() {
			t.Errorf("expected %v to be falsy", v)
		}
	}
}

func TestValueEquals(t *testing.T) {
	if !NewNumber(1).Equals(NewNumber(1)) {
		t.Error("expected equal numbers")
	}
	if NewNumber(1).Equals(NewString("1")) {
		t.Error("expected number != string")
	}
	if !NullValue.Equals(NewNull()) {
		t.Error("expected null == null")
	}

	// 引用类型按标识比较
	arr := NewArray([]Value{NewNumber(1)})
	other := NewArray([]Value{NewNumber(1)})
	if !arr.Equals(arr) {
		t.Error("expected array equal to itself")
	}
	if arr.Equals(other) {
		t.Error("expected distinct arrays to be unequal")
	}
}

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObjectData()
	obj.Set("z", NewNumber(1))
	obj.Set("a", NewNumber(2))
	obj.Set("z", NewNumber(3)) // 重复键不改变位置

	if len(obj.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(obj.Keys))
	}
	if obj.Keys[0] != "z" || obj.Keys[1] != "a" {
		t.Errorf("unexpected key order: %v", obj.Keys)
	}

	v, ok := obj.Get("z")
	if !ok || v.AsNumber() != 3 {
		t.Errorf("expected updated value 3, got %v", v.AsNumber())
	}
}

func TestJSXNodeString(t *testing.T) {
	props := NewObjectData()
	props.Set("id", NewString("root"))

	node := &JSXNode{Tag: "div", Props: props}
	got := NewJSX(node).String()
	if got == "" || got[0] != '<' {
		t.Errorf("expected element rendering, got %q", got)
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{NullValue, "null"},
		{TrueValue, "bool"},
		{NewNumber(1), "number"},
		{NewString(""), "string"},
		{NewArray(nil), "array"},
		{NewObject(NewObjectData()), "object"},
	}

	for _, tt := range tests {
		if got := tt.value.TypeName(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
