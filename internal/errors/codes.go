// Package errors 提供 Phixeo 脚本语言的错误处理系统
package errors

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	default:
		return "unknown"
	}
}

// ============================================================================
// 错误类别
// ============================================================================
//
// 整个语言核心只有五类错误，全部快速失败：第一个错误终止本次运行，
// 由宿主（编辑器）原样展示，没有部分结果、重试或恢复。
//
// ============================================================================

// Kind 错误类别
type Kind int

const (
	KindLex      Kind = iota // 词法错误（无法匹配的字符）
	KindParse                // 语法错误（意外符号、结构不完整）
	KindName                 // 名称错误（作用域链中找不到变量/函数）
	KindProperty             // 属性错误（对 null/undefined 访问成员）
	KindInternal             // 内部错误（AST 分发遇到未知节点，理应不可达）
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindParse:
		return "ParseError"
	case KindName:
		return "NameError"
	case KindProperty:
		return "PropertyError"
	case KindInternal:
		return "InternalError"
	default:
		return "Error"
	}
}

// ============================================================================
// 错误码
// ============================================================================
//
// 前缀对应错误类别：L 词法 / P 语法 / N 名称 / R 运行时属性与求值 / X 内部。
//
// ============================================================================

const (
	// L0001-L0099: 词法错误
	L0001 = "L0001" // 意外字符
	L0002 = "L0002" // 未闭合的字符串
	L0003 = "L0003" // 未闭合的块注释
	L0004 = "L0004" // 无效的数字
	L0005 = "L0005" // JSX 标签缺少标签名
	L0006 = "L0006" // 未闭合的 JSX 元素

	// P0001-P0099: 语法错误
	P0001 = "P0001" // 意外的符号
	P0002 = "P0002" // 缺少期望的符号
	P0003 = "P0003" // 无效的赋值目标
	P0004 = "P0004" // 组件缺少 render 方法
	P0005 = "P0005" // 类/组件体内的非法成员
	P0006 = "P0006" // JSX 结束标签不匹配
	P0007 = "P0007" // 表达式嵌套过深

	// N0001-N0099: 名称错误
	N0001 = "N0001" // 未定义的变量
	N0002 = "N0002" // 未定义的函数
	N0003 = "N0003" // 未定义的组件

	// R0001-R0099: 运行时错误
	R0001 = "R0001" // 对 null 访问属性
	R0002 = "R0002" // 属性不存在
	R0003 = "R0003" // 不可调用
	R0004 = "R0004" // 运算符操作数类型错误
	R0005 = "R0005" // 除以零
	R0006 = "R0006" // 下标目标类型错误
	R0007 = "R0007" // 超出执行步数预算
	R0008 = "R0008" // 模块函数参数类型错误

	// X0001-X0099: 内部错误
	X0001 = "X0001" // 未知 AST 节点
)
