package interp

import (
	"strings"
	"testing"

	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/runtime"
)

// run 执行源代码并断言成功
func run(t *testing.T, source string) *Result {
	t.Helper()
	i := New()
	result, err := i.Run(source, "test.phx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

// runError 执行源代码并断言失败，返回脚本错误
func runError(t *testing.T, source string) *errors.ScriptError {
	t.Helper()
	i := New()
	_, err := i.Run(source, "test.phx")
	if err == nil {
		t.Fatalf("expected error for %q, got none", source)
	}
	se, ok := errors.AsScriptError(err)
	if !ok {
		t.Fatalf("expected ScriptError, got %T: %v", err, err)
	}
	return se
}

// checkOutput 断言输出行完全一致
func checkOutput(t *testing.T, result *Result, expected ...string) {
	t.Helper()
	if len(result.Output) != len(expected) {
		t.Fatalf("expected %d output lines, got %d: %v", len(expected), len(result.Output), result.Output)
	}
	for i := range expected {
		if result.Output[i] != expected[i] {
			t.Errorf("output line %d: expected %q, got %q", i, expected[i], result.Output[i])
		}
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`2 + 3 * 4`, "14"},
		{`(2 + 3) * 4`, "20"},
		{`10 / 4`, "2.5"},
		{`10 % 3`, "1"},
		{`-5 + 3`, "-2"},
		{`2 + 3.5`, "5.5"},
	}

	for _, tt := range tests {
		result := run(t, tt.input)
		if result.Value.String() != tt.expected {
			t.Errorf("input %q: expected %s, got %s", tt.input, tt.expected, result.Value.String())
		}
	}
}

func TestStringConcat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a" + "b"`, "ab"},
		{`"a" + 1`, "a1"},
		{`1 + "a"`, "1a"},
		{`"x" + true`, "xtrue"},
	}

	for _, tt := range tests {
		result := run(t, tt.input)
		if result.Value.String() != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, result.Value.String())
		}
	}
}

func TestComparisonsAndLogic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`1 < 2 && 3 > 2`, "true"},
		{`1 >= 2 || 2 <= 2`, "true"},
		{`"apple" < "banana"`, "true"},
		{`1 == 1.0`, "true"},
		{`"a" != "b"`, "true"},
		{`1 == "1"`, "false"},
		{`!0`, "true"},
		{`!"text"`, "false"},
	}

	for _, tt := range tests {
		result := run(t, tt.input)
		if result.Value.String() != tt.expected {
			t.Errorf("input %q: expected %s, got %s", tt.input, tt.expected, result.Value.String())
		}
	}
}

func TestShortCircuit(t *testing.T) {
	// 右操作数在短路时不被求值
	result := run(t, `
		var called = false
		func mark() {
			called = true
			return true
		}
		false && mark()
		print(called)
		true || mark()
		print(called)
	`)
	checkOutput(t, result, "false", "false")

	// 逻辑运算的结果是布尔值，不是操作数本身
	result = run(t, `print(1 && "yes", 0 || 2)`)
	checkOutput(t, result, "true true")
}

func TestPrintAndLog(t *testing.T) {
	result := run(t, `
		print(1, "two", true, null)
		log("same", "behavior")
	`)
	checkOutput(t, result, "1 two true null", "same behavior")
}

func TestVarAndConst(t *testing.T) {
	result := run(t, `
		var x = 1
		x = x + 1
		print(x)
	`)
	checkOutput(t, result, "2")

	se := runError(t, `
		const phi = 1.618
		phi = 2
	`)
	if se.Kind != errors.KindProperty || se.Code != errors.R0004 {
		t.Errorf("expected KindProperty/R0004, got %v/%s", se.Kind, se.Code)
	}
}

func TestImplicitDeclaration(t *testing.T) {
	// 对未声明名称赋值会在最内层作用域声明它
	result := run(t, `
		counter = 10
		print(counter)
	`)
	checkOutput(t, result, "10")
}

func TestIfStatement(t *testing.T) {
	result := run(t, `
		var a = 5
		if (a > 3) {
			print("big")
		} else if (a > 0) {
			print("small")
		} else {
			print("none")
		}
	`)
	checkOutput(t, result, "big")

	// if 体在当前作用域执行，声明对后续可见
	result = run(t, `
		if (true) {
			var fromBranch = 42
		}
		print(fromBranch)
	`)
	checkOutput(t, result, "42")
}

func TestForLoop(t *testing.T) {
	result := run(t, `
		for (var i = 0; i < 5; i = i + 1) {
			print(i)
		}
	`)
	checkOutput(t, result, "0", "1", "2", "3", "4")

	// 循环变量在循环自己的作用域中，外部不可见
	se := runError(t, `
		for (var i = 0; i < 3; i = i + 1) { }
		print(i)
	`)
	if se.Kind != errors.KindName || se.Code != errors.N0001 {
		t.Errorf("expected KindName/N0001, got %v/%s", se.Kind, se.Code)
	}

	// 无条件无更新的 for 执行循环体恰好一次
	result = run(t, `
		var n = 0
		for (;;) {
			n = n + 1
		}
		print(n)
	`)
	checkOutput(t, result, "1")
}

func TestFunctions(t *testing.T) {
	result := run(t, `
		func add(a, b) {
			return a + b
		}
		print(add(2, 3))
	`)
	checkOutput(t, result, "5")

	// 多余实参被忽略，缺少的形参绑定 null
	result = run(t, `
		func second(a, b) {
			return b
		}
		print(second(1, 2, 3))
		print(second(1))
	`)
	checkOutput(t, result, "2", "null")

	// return 穿透嵌套块
	result = run(t, `
		func findFirst(limit) {
			for (var i = 0; i < limit; i = i + 1) {
				if (i * i > 10) {
					return i
				}
			}
			return -1
		}
		print(findFirst(100))
	`)
	checkOutput(t, result, "4")
}

func TestClosures(t *testing.T) {
	// 闭包在外层函数返回后仍持有其作用域
	result := run(t, `
		func makeCounter() {
			var count = 0
			func next() {
				count = count + 1
				return count
			}
			return next
		}
		var c1 = makeCounter()
		var c2 = makeCounter()
		print(c1())
		print(c1())
		print(c2())
	`)
	checkOutput(t, result, "1", "2", "1")
}

func TestClasses(t *testing.T) {
	result := run(t, `
		class Point {
			var x = 0
			var y = 0
			func init(px, py) {
				this.x = px
				this.y = py
			}
			func sum() {
				return this.x + this.y
			}
		}
		var p = Point(3, 4)
		print(p.x, p.y, p.sum())
	`)
	checkOutput(t, result, "3 4 7")

	// 属性默认值在无 init 时生效
	result = run(t, `
		class Config {
			var depth = 8
		}
		var c = Config()
		print(c.depth)
	`)
	checkOutput(t, result, "8")
}

func TestClassStatics(t *testing.T) {
	// static 前缀的方法通过类名访问，名字去掉前缀
	result := run(t, `
		class Circle {
			var r = 1
			func staticUnit() {
				return 1
			}
		}
		print(Circle.unit())
	`)
	checkOutput(t, result, "1")
}

func TestComponents(t *testing.T) {
	i := New()
	_, err := i.Run(`
		component Badge {
			var propLabel = "default"
			var stateClicks = 0
			func render() {
				return <span title={label}>{label}</span>
			}
		}
	`, "test.phx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 未提供属性时使用默认值
	v, err := i.RenderComponent("Badge", nil)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if v.Type != runtime.ValJSX {
		t.Fatalf("expected JSX value, got %s", v.TypeName())
	}
	node := v.Data.(*runtime.JSXNode)
	if node.Tag != "span" {
		t.Errorf("expected tag span, got %q", node.Tag)
	}
	title, _ := node.Props.Get("title")
	if title.AsString() != "default" {
		t.Errorf("expected default title, got %q", title.AsString())
	}

	// 调用方提供的属性覆盖默认值
	v, err = i.RenderComponent("Badge", map[string]runtime.Value{
		"label": runtime.NewString("custom"),
	})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	node = v.Data.(*runtime.JSXNode)
	title, _ = node.Props.Get("title")
	if title.AsString() != "custom" {
		t.Errorf("expected custom title, got %q", title.AsString())
	}

	// 未知组件是名称错误
	if _, err = i.RenderComponent("Missing", nil); err == nil {
		t.Error("expected error for unknown component")
	}
}

func TestComponentMethodsShareState(t *testing.T) {
	i := New()
	_, err := i.Run(`
		component Counter {
			var stateCount = 10
			func bump() {
				count = count + 1
				return count
			}
			func render() {
				bump()
				bump()
				return <div>{count}</div>
			}
		}
	`, "test.phx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := i.RenderComponent("Counter", nil)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	node := v.Data.(*runtime.JSXNode)
	children, _ := node.Props.Get("children")
	if children.String() != "12" {
		t.Errorf("expected shared state 12, got %s", children.String())
	}
}

func TestJSXChildrenShaping(t *testing.T) {
	// 无子节点省略 children 键
	result := run(t, `<br/>`)
	node := result.Value.Data.(*runtime.JSXNode)
	if _, ok := node.Props.Get("children"); ok {
		t.Error("expected no children key for empty element")
	}

	// 单个子节点直接存放
	result = run(t, `<p>"only"</p>`)
	node = result.Value.Data.(*runtime.JSXNode)
	child, ok := node.Props.Get("children")
	if !ok || child.Type != runtime.ValString || child.AsString() != "only" {
		t.Errorf("expected bare string child, got %v", child)
	}

	// 多个子节点存为数组
	result = run(t, `<ul><li>"a"</li><li>"b"</li></ul>`)
	node = result.Value.Data.(*runtime.JSXNode)
	child, _ = node.Props.Get("children")
	if child.Type != runtime.ValArray {
		t.Fatalf("expected array children, got %s", child.TypeName())
	}
	if len(child.AsArray().Elements) != 2 {
		t.Errorf("expected 2 children, got %d", len(child.AsArray().Elements))
	}
}

func TestJSXAttributes(t *testing.T) {
	result := run(t, `
		var w = 10;
		<div id="root" hidden size={w * 2}/>
	`)
	node := result.Value.Data.(*runtime.JSXNode)

	id, _ := node.Props.Get("id")
	if id.AsString() != "root" {
		t.Errorf("expected id root, got %q", id.AsString())
	}

	// 裸属性求值为 true
	hidden, _ := node.Props.Get("hidden")
	if hidden.Type != runtime.ValBool || !hidden.IsTruthy() {
		t.Errorf("expected bare attr true, got %v", hidden)
	}

	size, _ := node.Props.Get("size")
	if size.AsNumber() != 20 {
		t.Errorf("expected size 20, got %v", size.AsNumber())
	}
}

func TestJSXValueProperties(t *testing.T) {
	result := run(t, `
		var el = <div id="x"/>
		print(el.tag)
	`)
	checkOutput(t, result, "div")
}

func TestModules(t *testing.T) {
	result := run(t, `
		import "std:math"
		print(math.pow(2, 10))
		print(math.max(1, 7, 3))
	`)
	checkOutput(t, result, "1024", "7")

	// 导入路径的绑定名是最后一个冒号之后的部分
	result = run(t, `
		import "std:geometry"
		print(geometry.tetrahedral(3))
	`)
	if len(result.Output) != 1 {
		t.Fatalf("expected 1 output line, got %d", len(result.Output))
	}
}

func TestUnknownModuleFallback(t *testing.T) {
	// 未知模块导入成功，得到空模块
	result := run(t, `
		import "nonexistent_module"
		print(nonexistent_module)
	`)
	checkOutput(t, result, "<module nonexistent_module>")

	// 但访问它的成员是属性错误
	se := runError(t, `
		import "nonexistent_module"
		nonexistent_module.anything
	`)
	if se.Kind != errors.KindProperty || se.Code != errors.R0002 {
		t.Errorf("expected KindProperty/R0002, got %v/%s", se.Kind, se.Code)
	}
}

func TestBareImportBindsEmptyModule(t *testing.T) {
	// 无 std: 前缀的裸名不解析标准模块，绑定空模块
	se := runError(t, `
		import "math"
		math.abs(-1)
	`)
	if se.Kind != errors.KindProperty || se.Code != errors.R0002 {
		t.Errorf("expected KindProperty/R0002, got %v/%s", se.Kind, se.Code)
	}

	result := run(t, `
		import "std:math"
		print(math.abs(-1))
	`)
	checkOutput(t, result, "1")
}

func TestModuleCaching(t *testing.T) {
	// 同一解释器内重复导入得到同一个模块实例
	result := run(t, `
		import "std:math"
		var first = math
		import "std:math"
		print(first == math)
	`)
	checkOutput(t, result, "true")
}

func TestDisabledModules(t *testing.T) {
	i := New()
	i.DisableModules([]string{"math"})

	// 被禁用的模块表现为空模块
	_, err := i.Run(`
		import "std:math"
		math.pi
	`, "test.phx")
	if err == nil {
		t.Error("expected property error on disabled module export")
	}
}

func TestIndexing(t *testing.T) {
	result := run(t, `
		var items = [10, 20, 30]
		print(items[1])
		print(items[99])
		print(items.length)
	`)
	checkOutput(t, result, "20", "null", "3")

	// 写越界索引用 null 填充
	result = run(t, `
		var a = []
		a[2] = 9
		print(a)
	`)
	checkOutput(t, result, "[null, null, 9]")

	// 对象按字符串键索引
	result = run(t, `
		var obj = {name: "phi", value: 1.618}
		print(obj["name"])
		print(obj["missing"])
	`)
	checkOutput(t, result, "phi", "null")

	// 非容器不可索引
	se := runError(t, `var n = 5 n[0]`)
	if se.Code != errors.R0006 {
		t.Errorf("expected R0006, got %s", se.Code)
	}
}

func TestPropertyErrors(t *testing.T) {
	se := runError(t, `
		var nothing = null
		nothing.field
	`)
	if se.Kind != errors.KindProperty || se.Code != errors.R0001 {
		t.Errorf("expected KindProperty/R0001, got %v/%s", se.Kind, se.Code)
	}

	// 对象缺失的键读出 null，不报错
	result := run(t, `
		var obj = {a: 1}
		print(obj.b)
	`)
	checkOutput(t, result, "null")
}

func TestNameErrors(t *testing.T) {
	se := runError(t, `print(undeclared)`)
	if se.Kind != errors.KindName || se.Code != errors.N0001 {
		t.Errorf("expected KindName/N0001, got %v/%s", se.Kind, se.Code)
	}

	se = runError(t, `missingFunc()`)
	if se.Kind != errors.KindName || se.Code != errors.N0002 {
		t.Errorf("expected KindName/N0002, got %v/%s", se.Kind, se.Code)
	}
}

func TestRuntimeErrors(t *testing.T) {
	se := runError(t, `1 / 0`)
	if se.Code != errors.R0005 {
		t.Errorf("expected R0005 for division by zero, got %s", se.Code)
	}

	se = runError(t, `7 % 0`)
	if se.Code != errors.R0005 {
		t.Errorf("expected R0005 for modulo by zero, got %s", se.Code)
	}

	se = runError(t, `var n = 1 n()`)
	if se.Code != errors.R0003 {
		t.Errorf("expected R0003 for calling a number, got %s", se.Code)
	}

	se = runError(t, `true - 1`)
	if se.Code != errors.R0004 {
		t.Errorf("expected R0004 for bad operands, got %s", se.Code)
	}
}

func TestLexAndParseErrors(t *testing.T) {
	se := runError(t, `var s = "never closed`)
	if se.Kind != errors.KindLex {
		t.Errorf("expected KindLex, got %v", se.Kind)
	}
	if se.Code != errors.L0002 {
		t.Errorf("expected L0002 for unterminated string, got %s", se.Code)
	}

	se = runError(t, `var = 5`)
	if se.Kind != errors.KindParse {
		t.Errorf("expected KindParse, got %v", se.Kind)
	}
	if se.Code != errors.P0002 {
		t.Errorf("expected P0002 for missing identifier, got %s", se.Code)
	}

	// 各错误对应自己的错误码
	codes := []struct {
		source   string
		expected string
	}{
		{`var c = @`, errors.L0001},
		{`/* open`, errors.L0003},
		{`var n = 1e`, errors.L0004},
		{`1 = 2`, errors.P0003},
		{`component Empty { var x = 0 }`, errors.P0004},
		{`var el = <div></span>`, errors.P0006},
	}
	for _, tt := range codes {
		se := runError(t, tt.source)
		if se.Code != tt.expected {
			t.Errorf("%q: expected code %s, got %s", tt.source, tt.expected, se.Code)
		}
	}
}

func TestStepBudget(t *testing.T) {
	i := New()
	i.SetMaxSteps(100)

	_, err := i.Run(`
		for (var n = 0; n < 100000; n = n + 1) {
		}
	`, "test.phx")
	if err == nil {
		t.Fatal("expected step budget error")
	}
	se, _ := errors.AsScriptError(err)
	if se.Code != errors.R0007 {
		t.Errorf("expected R0007, got %s", se.Code)
	}
}

func TestSessionPersistence(t *testing.T) {
	// 同一解释器的多次 Run 共享作用域（REPL 会话语义）
	i := New()

	if _, err := i.Run(`var total = 40`, "<repl:1>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := i.Run(`print(total + 2)`, "<repl:2>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkOutput(t, result, "42")

	// 每次 Run 只返回本次产生的输出
	result, err = i.Run(`print("fresh")`, "<repl:3>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkOutput(t, result, "fresh")
}

func TestTopLevelReturn(t *testing.T) {
	result := run(t, `
		var x = 2
		return x * 21
		print("unreachable")
	`)
	if result.Value.AsNumber() != 42 {
		t.Errorf("expected 42, got %v", result.Value.AsNumber())
	}
	if len(result.Output) != 0 {
		t.Errorf("expected no output after return, got %v", result.Output)
	}
}

func TestResultValueIsLastExpression(t *testing.T) {
	result := run(t, `
		var a = 1
		a + 1
		a + 2
	`)
	if result.Value.AsNumber() != 3 {
		t.Errorf("expected 3, got %v", result.Value.AsNumber())
	}

	// 声明语句不改变结果值
	result = run(t, `
		5 + 5
		var b = 99
	`)
	if result.Value.AsNumber() != 10 {
		t.Errorf("expected 10, got %v", result.Value.AsNumber())
	}
}

func TestStringLength(t *testing.T) {
	result := run(t, `print("héllo".length)`)
	checkOutput(t, result, "5")
}

func TestHostModuleRegistration(t *testing.T) {
	i := New()
	i.RegisterModule("host", func() *runtime.Module {
		return &runtime.Module{
			Name: "host",
			Exports: map[string]runtime.Value{
				"greeting": runtime.NewString("hello from host"),
			},
		}
	})

	result, err := i.Run(`
		import "std:host"
		print(host.greeting)
	`, "test.phx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkOutput(t, result, "hello from host")
}

func TestNumberFormatting(t *testing.T) {
	result := run(t, `
		print(1.0)
		print(0.5)
		print(100)
		print(2.5e2)
	`)
	checkOutput(t, result, "1", "0.5", "100", "250")
}

func TestNestedDataStructures(t *testing.T) {
	result := run(t, `
		var data = {
			points: [{x: 1}, {x: 2}],
			label: "set",
		}
		print(data.points[1].x)
		print(data.points.length)
	`)
	checkOutput(t, result, "2", "2")
}

func TestOutputOrdering(t *testing.T) {
	result := run(t, `
		func chatty(n) {
			print("in " + n)
			return n
		}
		print(chatty(1) + chatty(2))
	`)
	checkOutput(t, result, "in 1", "in 2", "3")
}

func TestErrorMessageHasPosition(t *testing.T) {
	i := New()
	_, err := i.Run("var ok = 1\nbroken.prop", "test.phx")
	if err == nil {
		t.Fatal("expected error")
	}
	se, _ := errors.AsScriptError(err)
	if se.Pos.Line != 2 {
		t.Errorf("expected error on line 2, got %d", se.Pos.Line)
	}
	if !strings.Contains(se.Error(), "test.phx") {
		t.Errorf("expected filename in error, got %q", se.Error())
	}
}
