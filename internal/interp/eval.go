package interp

import (
	"math"

	"github.com/phixeo/phixeo/internal/ast"
	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/i18n"
	"github.com/phixeo/phixeo/internal/runtime"
	"github.com/phixeo/phixeo/internal/token"
)

// ============================================================================
// 求值器
// ============================================================================
//
// 对封闭的 AST 节点集合做穷尽的类型分发，遇到集合之外的节点
// 是内部错误。return 以显式的控制流信号建模，沿语句执行逐层
// 上传，在最近的函数调用处消费。
//
// ============================================================================

// flow 控制流信号
type flow int

const (
	flowNormal flow = iota // 顺序执行
	flowReturn             // return 正在解开调用栈
)

func noPos() token.Position {
	return token.Position{}
}

// ============================================================================
// 语句
// ============================================================================

// execStmts 顺序执行语句列表，return 信号立即上传
func (i *Interp) execStmts(stmts []ast.Statement, scope *runtime.Scope) (flow, runtime.Value, error) {
	for _, stmt := range stmts {
		fl, v, err := i.execStmt(stmt, scope)
		if err != nil {
			return flowNormal, runtime.NullValue, err
		}
		if fl == flowReturn {
			return flowReturn, v, nil
		}
	}
	return flowNormal, runtime.NullValue, nil
}

// execStmt 执行单个语句
//
// 返回的 Value 只对表达式语句和 return 有意义。
func (i *Interp) execStmt(stmt ast.Statement, scope *runtime.Scope) (flow, runtime.Value, error) {
	if err := i.step(); err != nil {
		return flowNormal, runtime.NullValue, err
	}

	switch s := stmt.(type) {

	case *ast.VarDecl:
		v := runtime.NullValue
		if s.Init != nil {
			var err error
			v, err = i.evalExpr(s.Init, scope)
			if err != nil {
				return flowNormal, runtime.NullValue, err
			}
		}
		scope.DeclareVar(s.Name, v, s.Const)
		return flowNormal, runtime.NullValue, nil

	case *ast.FuncDecl:
		scope.DeclareFunc(i.buildFunction(s, scope))
		return flowNormal, runtime.NullValue, nil

	case *ast.ClassDecl:
		scope.DeclareClass(i.buildClass(s, scope))
		return flowNormal, runtime.NullValue, nil

	case *ast.ComponentDecl:
		scope.DeclareComponent(i.buildComponent(s, scope))
		return flowNormal, runtime.NullValue, nil

	case *ast.ImportDecl:
		// 导入从不失败：未识别的路径绑定空模块
		m := i.registry.Load(s.Path)
		scope.DeclareVar(runtime.BindingName(s.Path), runtime.NewModule(m), false)
		return flowNormal, runtime.NullValue, nil

	case *ast.ExprStmt:
		v, err := i.evalExpr(s.Expr, scope)
		return flowNormal, v, err

	case *ast.IfStmt:
		cond, err := i.evalExpr(s.Cond, scope)
		if err != nil {
			return flowNormal, runtime.NullValue, err
		}
		// if 体在当前作用域中执行，不压入新作用域
		if cond.IsTruthy() {
			return i.execStmts(s.Then, scope)
		}
		return i.execStmts(s.Else, scope)

	case *ast.ForStmt:
		return i.execFor(s, scope)

	case *ast.ReturnStmt:
		v := runtime.NullValue
		if s.Value != nil {
			var err error
			v, err = i.evalExpr(s.Value, scope)
			if err != nil {
				return flowNormal, runtime.NullValue, err
			}
		}
		return flowReturn, v, nil

	default:
		return flowNormal, runtime.NullValue,
			errors.NewInternal(i18n.T(i18n.ErrUnknownNode, stmt))
	}
}

// execFor 执行三段式 for 循环
//
// init 在新建的循环作用域中执行一次；每轮迭代的循环体再压入
// 一层子作用域。条件和更新都缺省时循环体只执行一次。
func (i *Interp) execFor(s *ast.ForStmt, scope *runtime.Scope) (flow, runtime.Value, error) {
	loopScope := scope.Child()

	if s.Init != nil {
		if fl, v, err := i.execStmt(s.Init, loopScope); err != nil || fl == flowReturn {
			return fl, v, err
		}
	}

	// 无条件且无更新：结构上会死循环，只执行一次
	if s.Cond == nil && s.Update == nil {
		bodyScope := loopScope.Child()
		return i.execStmts(s.Body, bodyScope)
	}

	for {
		if err := i.step(); err != nil {
			return flowNormal, runtime.NullValue, err
		}

		if s.Cond != nil {
			cond, err := i.evalExpr(s.Cond, loopScope)
			if err != nil {
				return flowNormal, runtime.NullValue, err
			}
			if !cond.IsTruthy() {
				break
			}
		}

		bodyScope := loopScope.Child()
		fl, v, err := i.execStmts(s.Body, bodyScope)
		if err != nil || fl == flowReturn {
			return fl, v, err
		}

		if s.Update != nil {
			if _, err := i.evalExpr(s.Update, loopScope); err != nil {
				return flowNormal, runtime.NullValue, err
			}
		}
	}

	return flowNormal, runtime.NullValue, nil
}

// ============================================================================
// 声明构建
// ============================================================================

func (i *Interp) buildFunction(d *ast.FuncDecl, scope *runtime.Scope) *runtime.Function {
	params := make([]string, len(d.Params))
	for n, p := range d.Params {
		params[n] = p.Name
	}
	return &runtime.Function{
		Name:    d.Name,
		Params:  params,
		Body:    d.Body,
		Closure: scope,
	}
}

// buildClass 把类声明转成运行时类
//
// 变量成员成为属性定义（初始化表达式延迟到实例化时求值）；
// 名称带 static 前缀的函数成员注册为静态方法。
func (i *Interp) buildClass(d *ast.ClassDecl, scope *runtime.Scope) *runtime.Class {
	c := &runtime.Class{
		Name:    d.Name,
		Methods: make(map[string]*runtime.Function),
		Statics: make(map[string]*runtime.Function),
		Closure: scope,
	}

	for _, m := range d.Members {
		switch member := m.(type) {
		case *ast.VarDecl:
			c.Props = append(c.Props, runtime.PropDef{
				Name:  member.Name,
				Init:  member.Init,
				Const: member.Const,
			})
		case *ast.FuncDecl:
			fn := i.buildFunction(member, scope)
			if rest, ok := trimPrefix(member.Name, "static"); ok {
				fn.Name = rest
				c.Statics[rest] = fn
			} else {
				c.Methods[member.Name] = fn
			}
		}
	}

	return c
}

// buildComponent 把组件声明转成运行时组件
//
// prop 前缀的变量成员是属性，state 前缀的是状态，其余变量成员
// 也归入状态；render 函数成员必定存在（语法阶段保证）。
func (i *Interp) buildComponent(d *ast.ComponentDecl, scope *runtime.Scope) *runtime.Component {
	c := &runtime.Component{
		Name:    d.Name,
		Methods: make(map[string]*runtime.Function),
		Closure: scope,
	}

	for _, m := range d.Members {
		switch member := m.(type) {
		case *ast.VarDecl:
			def := runtime.PropDef{Name: member.Name, Init: member.Init, Const: member.Const}
			if rest, ok := trimPrefix(member.Name, "prop"); ok {
				def.Name = rest
				c.Props = append(c.Props, def)
			} else if rest, ok := trimPrefix(member.Name, "state"); ok {
				def.Name = rest
				c.States = append(c.States, def)
			} else {
				c.States = append(c.States, def)
			}
		case *ast.FuncDecl:
			fn := i.buildFunction(member, scope)
			if member.Name == "render" {
				c.Render = fn
			} else {
				c.Methods[member.Name] = fn
			}
		}
	}

	return c
}

// trimPrefix 去掉命名前缀并把剩余部分首字母小写
//
// "propTitle" + "prop" → "title"。剩余部分必须以大写字母开头，
// 否则不视为带前缀（"property" 不是 prop 前缀）。
func trimPrefix(name, prefix string) (string, bool) {
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return "", false
	}
	rest := name[len(prefix):]
	if rest[0] < 'A' || rest[0] > 'Z' {
		return "", false
	}
	return string(rest[0]+'a'-'A') + rest[1:], true
}

// ============================================================================
// 表达式
// ============================================================================

func (i *Interp) evalExpr(expr ast.Expression, scope *runtime.Scope) (runtime.Value, error) {
	if err := i.step(); err != nil {
		return runtime.NullValue, err
	}

	switch e := expr.(type) {

	case *ast.Literal:
		return literalValue(e), nil

	case *ast.Identifier:
		v, ok := scope.Resolve(e.Name)
		if !ok {
			return runtime.NullValue, errors.NewName(errors.N0001, e.Pos(),
				i18n.T(i18n.ErrUndefinedVariable, e.Name))
		}
		return v, nil

	case *ast.AssignExpr:
		return i.evalAssign(e, scope)

	case *ast.BinaryExpr:
		return i.evalBinary(e, scope)

	case *ast.CallExpr:
		return i.evalCall(e, scope)

	case *ast.ArrayLiteral:
		elements := make([]runtime.Value, len(e.Elements))
		for n, el := range e.Elements {
			v, err := i.evalExpr(el, scope)
			if err != nil {
				return runtime.NullValue, err
			}
			elements[n] = v
		}
		return runtime.NewArray(elements), nil

	case *ast.ObjectLiteral:
		obj := runtime.NewObjectData()
		for _, f := range e.Fields {
			v, err := i.evalExpr(f.Value, scope)
			if err != nil {
				return runtime.NullValue, err
			}
			obj.Set(f.Key, v)
		}
		return runtime.NewObject(obj), nil

	case *ast.PropertyAccess:
		return i.evalProperty(e, scope)

	case *ast.JSXElement:
		return i.evalJSX(e, scope)

	default:
		return runtime.NullValue,
			errors.NewInternal(i18n.T(i18n.ErrUnknownNode, expr))
	}
}

func literalValue(e *ast.Literal) runtime.Value {
	switch v := e.Value.(type) {
	case float64:
		return runtime.NewNumber(v)
	case string:
		return runtime.NewString(v)
	case bool:
		return runtime.NewBool(v)
	default:
		return runtime.NullValue
	}
}

// ============================================================================
// 赋值
// ============================================================================

// evalAssign 赋值表达式，结果是右值
//
// 目标为简单名称时走宽容赋值（缺失则在最内层隐式声明）；
// 其余目标是属性或下标的就地更新。
func (i *Interp) evalAssign(e *ast.AssignExpr, scope *runtime.Scope) (runtime.Value, error) {
	v, err := i.evalExpr(e.Value, scope)
	if err != nil {
		return runtime.NullValue, err
	}

	switch target := e.Target.(type) {

	case *ast.Identifier:
		if !scope.AssignVar(target.Name, v) {
			return runtime.NullValue, errors.New(errors.KindProperty, errors.R0004, target.Pos(),
				i18n.T(i18n.ErrAssignConst, target.Name))
		}
		return v, nil

	case *ast.PropertyAccess:
		obj, err := i.evalExpr(target.Object, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		if obj.IsNull() {
			return runtime.NullValue, errors.NewProperty(errors.R0001, target.Pos(),
				i18n.T(i18n.ErrNullProperty, target.Name))
		}

		switch obj.Type {
		case runtime.ValObject:
			obj.AsObject().Set(target.Name, v)
			return v, nil
		case runtime.ValInstance:
			obj.Data.(*runtime.Instance).Fields.Set(target.Name, v)
			return v, nil
		default:
			return runtime.NullValue, errors.NewProperty(errors.R0002, target.Pos(),
				i18n.T(i18n.ErrUnknownProperty, target.Name, obj.TypeName()))
		}

	case *ast.BinaryExpr: // 下标赋值 arr[i] = v
		container, err := i.evalExpr(target.Left, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		index, err := i.evalExpr(target.Right, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		return i.indexWrite(container, index, v, target.Pos())

	default:
		// 语法阶段已拦截，防御性兜底
		return runtime.NullValue,
			errors.NewInternal(i18n.T(i18n.ErrUnknownNode, e.Target))
	}
}

// indexWrite 下标写入
//
// 数组越界写入补 null 扩容到位；对象按字符串键写入。
func (i *Interp) indexWrite(container, index, v runtime.Value, pos token.Position) (runtime.Value, error) {
	switch container.Type {
	case runtime.ValArray:
		arr := container.AsArray()
		if index.Type != runtime.ValNumber {
			return runtime.NullValue, errors.NewProperty(errors.R0006, pos,
				i18n.T(i18n.ErrBadIndex))
		}
		idx := int(math.Floor(index.AsNumber()))
		if idx < 0 {
			return runtime.NullValue, errors.NewProperty(errors.R0006, pos,
				i18n.T(i18n.ErrBadIndex))
		}
		for len(arr.Elements) <= idx {
			arr.Elements = append(arr.Elements, runtime.NullValue)
		}
		arr.Elements[idx] = v
		return v, nil

	case runtime.ValObject:
		if index.Type != runtime.ValString {
			return runtime.NullValue, errors.NewProperty(errors.R0006, pos,
				i18n.T(i18n.ErrBadIndex))
		}
		container.AsObject().Set(index.Data.(string), v)
		return v, nil

	default:
		return runtime.NullValue, errors.NewProperty(errors.R0006, pos,
			i18n.T(i18n.ErrBadIndex))
	}
}

// ============================================================================
// 二元 / 一元运算
// ============================================================================

func (i *Interp) evalBinary(e *ast.BinaryExpr, scope *runtime.Scope) (runtime.Value, error) {
	// 一元形式
	if e.Left == nil {
		operand, err := i.evalExpr(e.Right, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		switch e.Op {
		case "!":
			return runtime.NewBool(!operand.IsTruthy()), nil
		case "-":
			if operand.Type != runtime.ValNumber {
				return runtime.NullValue, i.badOperands(e, runtime.NullValue, operand)
			}
			return runtime.NewNumber(-operand.AsNumber()), nil
		default:
			return runtime.NullValue,
				errors.NewInternal(i18n.T(i18n.ErrUnknownNode, e))
		}
	}

	// 逻辑运算：短路，不求值右操作数
	if e.Op == "&&" || e.Op == "||" {
		left, err := i.evalExpr(e.Left, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		if e.Op == "&&" && !left.IsTruthy() {
			return runtime.FalseValue, nil
		}
		if e.Op == "||" && left.IsTruthy() {
			return runtime.TrueValue, nil
		}
		right, err := i.evalExpr(e.Right, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		return runtime.NewBool(right.IsTruthy()), nil
	}

	left, err := i.evalExpr(e.Left, scope)
	if err != nil {
		return runtime.NullValue, err
	}
	right, err := i.evalExpr(e.Right, scope)
	if err != nil {
		return runtime.NullValue, err
	}

	// 下标读取
	if e.Op == "[]" {
		return i.indexRead(left, right, e.Pos())
	}

	bothNumbers := left.Type == runtime.ValNumber && right.Type == runtime.ValNumber

	switch e.Op {
	case "+":
		if bothNumbers {
			return runtime.NewNumber(left.AsNumber() + right.AsNumber()), nil
		}
		// 任一侧是字符串时拼接
		if left.Type == runtime.ValString || right.Type == runtime.ValString {
			return runtime.NewString(left.AsString() + right.AsString()), nil
		}
		return runtime.NullValue, i.badOperands(e, left, right)

	case "-", "*":
		if !bothNumbers {
			return runtime.NullValue, i.badOperands(e, left, right)
		}
		if e.Op == "-" {
			return runtime.NewNumber(left.AsNumber() - right.AsNumber()), nil
		}
		return runtime.NewNumber(left.AsNumber() * right.AsNumber()), nil

	case "/":
		if !bothNumbers {
			return runtime.NullValue, i.badOperands(e, left, right)
		}
		if right.AsNumber() == 0 {
			return runtime.NullValue, errors.NewProperty(errors.R0005, e.Pos(),
				i18n.T(i18n.ErrDivisionByZero))
		}
		return runtime.NewNumber(left.AsNumber() / right.AsNumber()), nil

	case "%":
		if !bothNumbers {
			return runtime.NullValue, i.badOperands(e, left, right)
		}
		if right.AsNumber() == 0 {
			return runtime.NullValue, errors.NewProperty(errors.R0005, e.Pos(),
				i18n.T(i18n.ErrDivisionByZero))
		}
		return runtime.NewNumber(math.Mod(left.AsNumber(), right.AsNumber())), nil

	case "==":
		return runtime.NewBool(left.Equals(right)), nil
	case "!=":
		return runtime.NewBool(!left.Equals(right)), nil

	case "<", "<=", ">", ">=":
		if bothNumbers {
			return runtime.NewBool(compareNumbers(e.Op, left.AsNumber(), right.AsNumber())), nil
		}
		if left.Type == runtime.ValString && right.Type == runtime.ValString {
			return runtime.NewBool(compareStrings(e.Op, left.Data.(string), right.Data.(string))), nil
		}
		return runtime.NullValue, i.badOperands(e, left, right)

	default:
		return runtime.NullValue,
			errors.NewInternal(i18n.T(i18n.ErrUnknownNode, e))
	}
}

func (i *Interp) badOperands(e *ast.BinaryExpr, left, right runtime.Value) error {
	return errors.New(errors.KindProperty, errors.R0004, e.Pos(),
		i18n.T(i18n.ErrBadOperands, e.Op, left.TypeName(), right.TypeName()))
}

func compareNumbers(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func compareStrings(op, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

// indexRead 下标读取
//
// 越界和缺失的键读出 null；字符串下标取单字符子串。
func (i *Interp) indexRead(container, index runtime.Value, pos token.Position) (runtime.Value, error) {
	switch container.Type {
	case runtime.ValArray:
		arr := container.AsArray()
		if index.Type != runtime.ValNumber {
			return runtime.NullValue, nil
		}
		idx := int(math.Floor(index.AsNumber()))
		if idx < 0 || idx >= len(arr.Elements) {
			return runtime.NullValue, nil
		}
		return arr.Elements[idx], nil

	case runtime.ValObject:
		if index.Type != runtime.ValString {
			return runtime.NullValue, nil
		}
		if v, ok := container.AsObject().Get(index.Data.(string)); ok {
			return v, nil
		}
		return runtime.NullValue, nil

	case runtime.ValString:
		if index.Type != runtime.ValNumber {
			return runtime.NullValue, nil
		}
		runes := []rune(container.Data.(string))
		idx := int(math.Floor(index.AsNumber()))
		if idx < 0 || idx >= len(runes) {
			return runtime.NullValue, nil
		}
		return runtime.NewString(string(runes[idx])), nil

	default:
		return runtime.NullValue, errors.NewProperty(errors.R0006, pos,
			i18n.T(i18n.ErrBadIndex))
	}
}

// ============================================================================
// 调用
// ============================================================================

func (i *Interp) evalCall(e *ast.CallExpr, scope *runtime.Scope) (runtime.Value, error) {
	// 按名调用时给出更准确的 NameError
	var callee runtime.Value
	if id, ok := e.Callee.(*ast.Identifier); ok {
		v, found := scope.Resolve(id.Name)
		if !found {
			return runtime.NullValue, errors.NewName(errors.N0002, id.Pos(),
				i18n.T(i18n.ErrUndefinedFunction, id.Name))
		}
		callee = v
	} else {
		v, err := i.evalExpr(e.Callee, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		callee = v
	}

	args := make([]runtime.Value, len(e.Args))
	for n, a := range e.Args {
		v, err := i.evalExpr(a, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		args[n] = v
	}

	return i.callValue(callee, args, e.Pos())
}

// callValue 调用任意可调用值
func (i *Interp) callValue(callee runtime.Value, args []runtime.Value, pos token.Position) (runtime.Value, error) {
	switch callee.Type {

	case runtime.ValFunc:
		return i.callFunction(callee.Data.(*runtime.Function), runtime.NullValue, args)

	case runtime.ValBound:
		b := callee.Data.(*runtime.BoundMethod)
		return i.callFunction(b.Method, b.Recv, args)

	case runtime.ValNative:
		n := callee.Data.(*runtime.Native)
		v, err := n.Fn(args)
		if err != nil {
			// 原生函数不知道调用点，补上位置
			if se, ok := errors.AsScriptError(err); ok && !se.Pos.IsValid() {
				se.Pos = pos
			}
			return runtime.NullValue, err
		}
		return v, nil

	case runtime.ValClass:
		return i.instantiate(callee.Data.(*runtime.Class), args)

	case runtime.ValComponent:
		// 直接调用组件等价于渲染：第一个参数是属性对象
		props := runtime.NewObjectData()
		if len(args) > 0 && args[0].Type == runtime.ValObject {
			props = args[0].AsObject()
		}
		return i.renderComponent(callee.Data.(*runtime.Component), props)

	default:
		return runtime.NullValue, errors.NewProperty(errors.R0003, pos,
			i18n.T(i18n.ErrNotCallable, callee.TypeName()))
	}
}

// callFunction 调用用户定义函数
//
// 调用作用域是闭包作用域的子作用域（词法作用域）。实参按位置
// 绑定：多出的忽略，缺少的绑定 null。方法调用额外绑定 this。
func (i *Interp) callFunction(fn *runtime.Function, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
	callScope := fn.Closure.Child()

	if !recv.IsNull() {
		callScope.DeclareVar("this", recv, true)
	}

	for n, param := range fn.Params {
		if n < len(args) {
			callScope.DeclareVar(param, args[n], false)
		} else {
			callScope.DeclareVar(param, runtime.NullValue, false)
		}
	}

	fl, v, err := i.execStmts(fn.Body, callScope)
	if err != nil {
		return runtime.NullValue, err
	}
	if fl == flowReturn {
		return v, nil
	}
	return runtime.NullValue, nil
}

// instantiate 实例化类
//
// 属性默认值在声明处作用域的子作用域中按声明顺序求值，
// 之后如有 init 方法则以实例为 this 调用。
func (i *Interp) instantiate(c *runtime.Class, args []runtime.Value) (runtime.Value, error) {
	inst := &runtime.Instance{Class: c, Fields: runtime.NewObjectData()}

	propScope := c.Closure.Child()
	for _, def := range c.Props {
		v := runtime.NullValue
		if def.Init != nil {
			var err error
			v, err = i.evalExpr(def.Init, propScope)
			if err != nil {
				return runtime.NullValue, err
			}
		}
		inst.Fields.Set(def.Name, v)
	}

	value := runtime.NewInstance(inst)
	if init, ok := c.Methods["init"]; ok {
		if _, err := i.callFunction(init, value, args); err != nil {
			return runtime.NullValue, err
		}
	}
	return value, nil
}

// renderComponent 渲染组件
//
// 每次渲染新建组件作用域：属性（调用方提供或默认值）为 const，
// 状态为可变变量，方法的闭包重绑到组件作用域，使它们共享状态。
func (i *Interp) renderComponent(c *runtime.Component, props *runtime.Object) (runtime.Value, error) {
	compScope := c.Closure.Child()

	for _, def := range c.Props {
		v, ok := props.Get(def.Name)
		if !ok {
			v = runtime.NullValue
			if def.Init != nil {
				var err error
				v, err = i.evalExpr(def.Init, compScope)
				if err != nil {
					return runtime.NullValue, err
				}
			}
		}
		compScope.DeclareVar(def.Name, v, true)
	}

	for _, def := range c.States {
		v := runtime.NullValue
		if def.Init != nil {
			var err error
			v, err = i.evalExpr(def.Init, compScope)
			if err != nil {
				return runtime.NullValue, err
			}
		}
		compScope.DeclareVar(def.Name, v, def.Const)
	}

	for name, m := range c.Methods {
		compScope.DeclareFunc(&runtime.Function{
			Name:    name,
			Params:  m.Params,
			Body:    m.Body,
			Closure: compScope,
		})
	}

	render := &runtime.Function{
		Name:    "render",
		Params:  c.Render.Params,
		Body:    c.Render.Body,
		Closure: compScope,
	}
	return i.callFunction(render, runtime.NullValue, nil)
}

// ============================================================================
// 属性访问
// ============================================================================

// evalProperty 属性访问
//
// null 目标是 PropertyError；对象缺失的键读出 null；其余类型
// 缺失的成员是 PropertyError。
func (i *Interp) evalProperty(e *ast.PropertyAccess, scope *runtime.Scope) (runtime.Value, error) {
	obj, err := i.evalExpr(e.Object, scope)
	if err != nil {
		return runtime.NullValue, err
	}

	if obj.IsNull() {
		return runtime.NullValue, errors.NewProperty(errors.R0001, e.Pos(),
			i18n.T(i18n.ErrNullProperty, e.Name))
	}

	switch obj.Type {

	case runtime.ValModule:
		m := obj.Data.(*runtime.Module)
		if v, ok := m.Exports[e.Name]; ok {
			return v, nil
		}
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, "module "+m.Name))

	case runtime.ValObject:
		if v, ok := obj.AsObject().Get(e.Name); ok {
			return v, nil
		}
		return runtime.NullValue, nil

	case runtime.ValInstance:
		inst := obj.Data.(*runtime.Instance)
		if v, ok := inst.Fields.Get(e.Name); ok {
			return v, nil
		}
		if m, ok := inst.Class.Methods[e.Name]; ok {
			return runtime.NewBound(obj, m), nil
		}
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, obj.TypeName()))

	case runtime.ValClass:
		c := obj.Data.(*runtime.Class)
		if fn, ok := c.Statics[e.Name]; ok {
			return runtime.NewFunc(fn), nil
		}
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, "class "+c.Name))

	case runtime.ValArray:
		if e.Name == "length" {
			return runtime.NewNumber(float64(len(obj.AsArray().Elements))), nil
		}
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, "array"))

	case runtime.ValString:
		if e.Name == "length" {
			return runtime.NewNumber(float64(len([]rune(obj.Data.(string))))), nil
		}
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, "string"))

	case runtime.ValJSX:
		node := obj.Data.(*runtime.JSXNode)
		switch e.Name {
		case "tag":
			return runtime.NewString(node.Tag), nil
		case "props":
			return runtime.NewObject(node.Props), nil
		}
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, "element"))

	default:
		return runtime.NullValue, errors.NewProperty(errors.R0002, e.Pos(),
			i18n.T(i18n.ErrUnknownProperty, e.Name, obj.TypeName()))
	}
}

// ============================================================================
// JSX
// ============================================================================

// evalJSX 求值 JSX 元素为不透明的 {tag, props} 值
//
// 裸属性求值为 true。props.children 是三态的：无子节点时缺省，
// 单个子节点直接存放，多个存为数组。
func (i *Interp) evalJSX(e *ast.JSXElement, scope *runtime.Scope) (runtime.Value, error) {
	props := runtime.NewObjectData()

	for _, attr := range e.Attrs {
		v := runtime.TrueValue
		if attr.Value != nil {
			var err error
			v, err = i.evalExpr(attr.Value, scope)
			if err != nil {
				return runtime.NullValue, err
			}
		}
		props.Set(attr.Name, v)
	}

	children := make([]runtime.Value, 0, len(e.Children))
	for _, child := range e.Children {
		v, err := i.evalExpr(child, scope)
		if err != nil {
			return runtime.NullValue, err
		}
		children = append(children, v)
	}

	switch len(children) {
	case 0:
		// 无子节点时省略 children 键
	case 1:
		props.Set("children", children[0])
	default:
		props.Set("children", runtime.NewArray(children))
	}

	return runtime.NewJSX(&runtime.JSXNode{
		Tag:      e.Tag,
		Props:    props,
		Children: children,
	}), nil
}
