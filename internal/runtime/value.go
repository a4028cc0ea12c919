package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phixeo/phixeo/internal/ast"
)

// ============================================================================
// Value - 运行时值
// ============================================================================
//
// 单一的带标签值类型。数字统一为 float64，字符串不可变；
// 数组和对象持有指针，别名之间共享可变状态。
//
// ============================================================================

// ValueType 值类型
type ValueType byte

const (
	ValNull ValueType = iota
	ValBool
	ValNumber
	ValString
	ValArray
	ValObject
	ValFunc
	ValNative
	ValBound
	ValClass
	ValInstance
	ValComponent
	ValModule
	ValJSX
)

// Value 运行时值
type Value struct {
	Type ValueType
	Data interface{}
}

// 预定义常量值
var (
	NullValue  = Value{Type: ValNull}
	TrueValue  = Value{Type: ValBool, Data: true}
	FalseValue = Value{Type: ValBool, Data: false}
)

// Array 数组，持有可变元素切片
type Array struct {
	Elements []Value
}

// Object 字符串键对象，保持键的插入顺序
type Object struct {
	Fields map[string]Value
	Keys   []string // 插入顺序
}

// NewObjectData 创建空对象
func NewObjectData() *Object {
	return &Object{Fields: make(map[string]Value)}
}

// Set 写入字段，新键追加到顺序表
func (o *Object) Set(key string, v Value) {
	if _, ok := o.Fields[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.Fields[key] = v
}

// Get 读取字段
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.Fields[key]
	return v, ok
}

// Function 用户定义函数
//
// Closure 指向声明处的作用域，调用时在其下新建子作用域。
type Function struct {
	Name    string
	Params  []string
	Body    []ast.Statement
	Closure *Scope
}

// NativeFunc 宿主提供的原生函数
type NativeFunc func(args []Value) (Value, error)

// Native 原生函数及其名称（用于错误消息）
type Native struct {
	Name string
	Fn   NativeFunc
}

// BoundMethod 绑定了接收者的方法
type BoundMethod struct {
	Recv   Value
	Method *Function
}

// PropDef 类属性 / 组件元数据定义
//
// Init 是声明处的初始化表达式，实例化时逐个求值。
type PropDef struct {
	Name  string
	Init  ast.Expression
	Const bool
}

// Class 类定义
//
// 名称带 static 前缀的函数成员注册为静态方法，
// 去掉前缀并将首字母小写后作为方法名。
type Class struct {
	Name    string
	Props   []PropDef
	Methods map[string]*Function
	Statics map[string]*Function
	Closure *Scope // 声明处作用域，属性默认值在其子作用域中求值
}

// Instance 类实例
type Instance struct {
	Class  *Class
	Fields *Object
}

// Component 组件定义
//
// Props / States 由名称带 prop / state 前缀的变量成员提取，
// 去掉前缀并将首字母小写。render 方法必定存在（语法阶段保证）。
type Component struct {
	Name    string
	Props   []PropDef
	States  []PropDef
	Render  *Function
	Methods map[string]*Function
	Closure *Scope // 声明处作用域
}

// Module 标准库模块：名称到导出表
type Module struct {
	Name    string
	Exports map[string]Value
}

// JSXNode 求值后的 JSX 元素
//
// Props 总是包含 children 键的三态形状：无子节点时缺省，
// 单个子节点直接存放，多个子节点存为数组。
type JSXNode struct {
	Tag      string
	Props    *Object
	Children []Value
}

// ============================================================================
// 构造函数
// ============================================================================

// NewNull 创建 null 值
func NewNull() Value {
	return NullValue
}

// NewBool 创建布尔值
func NewBool(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// NewNumber 创建数字值
func NewNumber(f float64) Value {
	return Value{Type: ValNumber, Data: f}
}

// NewString 创建字符串值
func NewString(s string) Value {
	return Value{Type: ValString, Data: s}
}

// NewArray 创建数组值
func NewArray(elements []Value) Value {
	return Value{Type: ValArray, Data: &Array{Elements: elements}}
}

// NewObject 创建对象值
func NewObject(obj *Object) Value {
	return Value{Type: ValObject, Data: obj}
}

// NewFunc 创建函数值
func NewFunc(fn *Function) Value {
	return Value{Type: ValFunc, Data: fn}
}

// NewNative 创建原生函数值
func NewNative(name string, fn NativeFunc) Value {
	return Value{Type: ValNative, Data: &Native{Name: name, Fn: fn}}
}

// NewBound 创建绑定方法值
func NewBound(recv Value, method *Function) Value {
	return Value{Type: ValBound, Data: &BoundMethod{Recv: recv, Method: method}}
}

// NewClass 创建类值
func NewClass(c *Class) Value {
	return Value{Type: ValClass, Data: c}
}

// NewInstance 创建实例值
func NewInstance(inst *Instance) Value {
	return Value{Type: ValInstance, Data: inst}
}

// NewComponent 创建组件值
func NewComponent(c *Component) Value {
	return Value{Type: ValComponent, Data: c}
}

// NewModule 创建模块值
func NewModule(m *Module) Value {
	return Value{Type: ValModule, Data: m}
}

// NewJSX 创建 JSX 元素值
func NewJSX(node *JSXNode) Value {
	return Value{Type: ValJSX, Data: node}
}

// ============================================================================
// 访问与转换
// ============================================================================

// IsNull 检查是否为 null
func (v Value) IsNull() bool {
	return v.Type == ValNull
}

// IsTruthy 检查是否为真值
//
// null 和 false 为假，数字 0 和空字符串为假，其余为真。
func (v Value) IsTruthy() bool {
	switch v.Type {
	case ValNull:
		return false
	case ValBool:
		return v.Data.(bool)
	case ValNumber:
		return v.Data.(float64) != 0
	case ValString:
		return v.Data.(string) != ""
	default:
		return true
	}
}

// AsNumber 转换为数字，非数字返回 0
func (v Value) AsNumber() float64 {
	if v.Type == ValNumber {
		return v.Data.(float64)
	}
	return 0
}

// AsString 转换为字符串，非字符串返回其显示形式
func (v Value) AsString() string {
	if v.Type == ValString {
		return v.Data.(string)
	}
	return v.String()
}

// AsArray 转换为数组，非数组返回 nil
func (v Value) AsArray() *Array {
	if v.Type == ValArray {
		return v.Data.(*Array)
	}
	return nil
}

// AsObject 转换为对象，非对象返回 nil
func (v Value) AsObject() *Object {
	if v.Type == ValObject {
		return v.Data.(*Object)
	}
	return nil
}

// TypeName 返回面向用户的类型名
func (v Value) TypeName() string {
	switch v.Type {
	case ValNull:
		return "null"
	case ValBool:
		return "bool"
	case ValNumber:
		return "number"
	case ValString:
		return "string"
	case ValArray:
		return "array"
	case ValObject:
		return "object"
	case ValFunc, ValNative, ValBound:
		return "function"
	case ValClass:
		return "class"
	case ValInstance:
		return v.Data.(*Instance).Class.Name
	case ValComponent:
		return "component"
	case ValModule:
		return "module"
	case ValJSX:
		return "element"
	default:
		return "unknown"
	}
}

// Equals 值相等比较
//
// 数字、字符串、布尔按值比较；数组、对象等引用类型按身份比较。
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}

	switch v.Type {
	case ValNull:
		return true
	case ValBool:
		return v.Data.(bool) == other.Data.(bool)
	case ValNumber:
		return v.Data.(float64) == other.Data.(float64)
	case ValString:
		return v.Data.(string) == other.Data.(string)
	default:
		return v.Data == other.Data
	}
}

// FormatNumber 数字的显示形式：整数不带小数点
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String 返回值的显示形式（print 使用的形式）
func (v Value) String() string {
	switch v.Type {
	case ValNull:
		return "null"
	case ValBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case ValNumber:
		return FormatNumber(v.Data.(float64))
	case ValString:
		return v.Data.(string)
	case ValArray:
		arr := v.Data.(*Array)
		parts := make([]string, len(arr.Elements))
		for i, el := range arr.Elements {
			parts[i] = el.displayElem()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValObject:
		obj := v.Data.(*Object)
		parts := make([]string, 0, len(obj.Keys))
		for _, k := range obj.Keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, obj.Fields[k].displayElem()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ValFunc:
		return fmt.Sprintf("<func %s>", v.Data.(*Function).Name)
	case ValNative:
		return fmt.Sprintf("<native %s>", v.Data.(*Native).Name)
	case ValBound:
		return fmt.Sprintf("<method %s>", v.Data.(*BoundMethod).Method.Name)
	case ValClass:
		return fmt.Sprintf("<class %s>", v.Data.(*Class).Name)
	case ValInstance:
		return fmt.Sprintf("<%s instance>", v.Data.(*Instance).Class.Name)
	case ValComponent:
		return fmt.Sprintf("<component %s>", v.Data.(*Component).Name)
	case ValModule:
		return fmt.Sprintf("<module %s>", v.Data.(*Module).Name)
	case ValJSX:
		return v.Data.(*JSXNode).render()
	default:
		return "unknown"
	}
}

// displayElem 容器内部元素的显示形式：字符串加引号
func (v Value) displayElem() string {
	if v.Type == ValString {
		return fmt.Sprintf("%q", v.Data.(string))
	}
	return v.String()
}

// render JSX 元素的显示形式，近似其源文本
func (n *JSXNode) render() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Tag)

	for _, k := range n.Props.Keys {
		if k == "children" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(fmt.Sprintf("%q", n.Props.Fields[k].AsString()))
	}

	if len(n.Children) == 0 {
		sb.WriteString(" />")
		return sb.String()
	}

	sb.WriteByte('>')
	for _, c := range n.Children {
		sb.WriteString(c.String())
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
	return sb.String()
}
