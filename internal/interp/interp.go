package interp

import (
	"strings"

	"github.com/phixeo/phixeo/internal/ast"
	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/i18n"
	"github.com/phixeo/phixeo/internal/lexer"
	"github.com/phixeo/phixeo/internal/parser"
	"github.com/phixeo/phixeo/internal/runtime"
)

// ============================================================================
// Interp - 树遍历解释器
// ============================================================================
//
// 一次运行 = 词法 → 语法 → 求值。解释器实例持有全局作用域、
// 模块注册表和输出缓冲；单线程，不在多个 goroutine 间共享。
//
// 每次独立执行应创建新的解释器实例。同一实例上多次 Run
// 共享作用域和模块缓存（REPL 的会话语义）。
//
// ============================================================================

// Result 一次运行的结果
type Result struct {
	Value  runtime.Value // 最后一个表达式语句的值
	Output []string      // print / log 产生的输出行（有序）
}

// Interp 解释器
type Interp struct {
	globals  *runtime.Scope    // 内建函数所在的全局作用域
	root     *runtime.Scope    // 程序根作用域（全局的子作用域）
	registry *runtime.Registry // 模块注册表，缓存随实例存续
	output   []string          // 输出行缓冲
	steps    int               // 已执行步数
	maxSteps int               // 步数预算，0 表示不限
}

// New 创建解释器
func New() *Interp {
	i := &Interp{
		globals:  runtime.NewScope(),
		registry: runtime.NewRegistry(),
	}
	i.root = i.globals.Child()
	i.installBuiltins()
	return i
}

// SetMaxSteps 设置执行步数预算，0 表示不限
func (i *Interp) SetMaxSteps(n int) {
	i.maxSteps = n
}

// RegisterModule 注册宿主扩展模块
func (i *Interp) RegisterModule(name string, builder runtime.ModuleBuilder) {
	i.registry.Register(name, builder)
}

// DisableModules 禁用一组标准模块（来自配置）
func (i *Interp) DisableModules(names []string) {
	i.registry.Disable(names)
}

// Globals 返回程序根作用域（供 REPL 检查绑定）
func (i *Interp) Globals() *runtime.Scope {
	return i.root
}

// Run 执行一段源代码
//
// 快速失败：词法、语法、求值的第一个错误立即终止运行并返回。
// 返回值是最后一个表达式语句的值和本次运行产生的输出行。
func (i *Interp) Run(source, filename string) (*Result, error) {
	// 词法
	l := lexer.New(source, filename)
	l.ScanTokens()
	if l.HasErrors() {
		first := l.Errors()[0]
		return nil, errors.NewLex(first.Code, first.Pos, first.Message)
	}

	// 语法
	p := parser.New(source, filename)
	program := p.Parse()
	if p.HasErrors() {
		first := p.Errors()[0]
		return nil, errors.NewParse(first.Code, first.Pos, first.Message)
	}

	// 求值
	outputStart := len(i.output)
	last := runtime.NullValue

	for _, stmt := range program.Statements {
		fl, v, err := i.execStmt(stmt, i.root)
		if err != nil {
			return nil, err
		}
		if fl == flowReturn {
			// 顶层 return 提前结束程序
			last = v
			break
		}
		if _, ok := stmt.(*ast.ExprStmt); ok {
			last = v
		}
	}

	return &Result{
		Value:  last,
		Output: i.output[outputStart:],
	}, nil
}

// RenderComponent 宿主 API：按名称渲染组件
//
// props 提供属性值，未提供的属性按声明处的默认值求值。
// 返回 render 方法产出的元素值。
func (i *Interp) RenderComponent(name string, props map[string]runtime.Value) (runtime.Value, error) {
	comp, ok := i.root.LookupComponent(name)
	if !ok {
		return runtime.NullValue, errors.NewName(errors.N0003, noPos(),
			i18n.T(i18n.ErrUnknownComponent, name))
	}

	obj := runtime.NewObjectData()
	for k, v := range props {
		obj.Set(k, v)
	}
	return i.renderComponent(comp, obj)
}

// ============================================================================
// 内建函数
// ============================================================================

// installBuiltins 安装全局内建：print 和 log
//
// 两者都把参数以空格连接成一行写入输出缓冲。
func (i *Interp) installBuiltins() {
	emit := func(args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for n, a := range args {
			parts[n] = a.String()
		}
		i.output = append(i.output, strings.Join(parts, " "))
		return runtime.NullValue, nil
	}

	i.globals.DeclareVar("print", runtime.NewNative("print", emit), true)
	i.globals.DeclareVar("log", runtime.NewNative("log", emit), true)
}

// ============================================================================
// 步数预算
// ============================================================================

// step 记账一个执行步，超出预算时报错
func (i *Interp) step() error {
	if i.maxSteps <= 0 {
		return nil
	}
	i.steps++
	if i.steps > i.maxSteps {
		return errors.New(errors.KindProperty, errors.R0007, noPos(),
			i18n.T(i18n.ErrStepBudget, i.maxSteps))
	}
	return nil
}
