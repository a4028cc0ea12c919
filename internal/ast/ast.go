package ast

import (
	"fmt"
	"strings"

	"github.com/phixeo/phixeo/internal/token"
)

// ============================================================================
// AST 节点定义
// ============================================================================
//
// 节点集合是封闭的：求值器对节点做穷尽的类型分发，遇到集合之外的
// 节点即为内部错误。节点树的所有权严格为父到子，没有回边和共享——
// 唯一的例外是闭包：函数值持有声明时的函数体子树引用，原样复用。
//
// ============================================================================

// Node 是所有 AST 节点的基接口
type Node interface {
	Pos() token.Position // 返回节点在源代码中的位置
	End() token.Position // 返回节点结束位置
	String() string      // 返回节点的字符串表示（用于调试）
}

// Statement 表示一个语句节点
type Statement interface {
	Node
	stmtNode()
}

// Expression 表示一个表达式节点
type Expression interface {
	Node
	exprNode()
}

// ============================================================================
// 语句节点
// ============================================================================

// VarDecl 变量声明 (var x = 1; const y = 2;)
type VarDecl struct {
	Token   token.Token // var 或 const token
	Const   bool        // 是否为 const
	Name    string      // 变量名
	NameTok token.Token // 变量名 token
	Type    string      // 可选的类型标注（var x: number = 1）
	Init    Expression  // 初始化表达式（可为 nil）
}

func (d *VarDecl) Pos() token.Position { return d.Token.Pos }
func (d *VarDecl) End() token.Position {
	if d.Init != nil {
		return d.Init.End()
	}
	return d.NameTok.Pos
}
func (d *VarDecl) String() string {
	kw := "var"
	if d.Const {
		kw = "const"
	}
	if d.Init != nil {
		return fmt.Sprintf("%s %s = %s", kw, d.Name, d.Init)
	}
	return fmt.Sprintf("%s %s", kw, d.Name)
}
func (d *VarDecl) stmtNode() {}

// Param 函数参数
type Param struct {
	Name string // 参数名
	Type string // 可选的类型标注
}

// FuncDecl 函数声明
type FuncDecl struct {
	Token      token.Token // func token
	Name       string      // 函数名
	Params     []Param     // 参数列表
	ReturnType string      // 可选的返回类型标注
	Body       []Statement // 函数体语句列表
	BodyEnd    token.Token // 右大括号 token
}

func (d *FuncDecl) Pos() token.Position { return d.Token.Pos }
func (d *FuncDecl) End() token.Position { return d.BodyEnd.Pos }
func (d *FuncDecl) String() string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("func %s(%s) {...}", d.Name, strings.Join(names, ", "))
}
func (d *FuncDecl) stmtNode() {}

// ClassDecl 类声明
//
// 类体只接受变量和函数声明；语法分析器负责校验。
type ClassDecl struct {
	Token   token.Token // class token
	Name    string      // 类名
	Members []Statement // 成员（VarDecl / FuncDecl）
	BodyEnd token.Token // 右大括号 token
}

func (d *ClassDecl) Pos() token.Position { return d.Token.Pos }
func (d *ClassDecl) End() token.Position { return d.BodyEnd.Pos }
func (d *ClassDecl) String() string      { return fmt.Sprintf("class %s {...}", d.Name) }
func (d *ClassDecl) stmtNode()           {}

// ComponentDecl 组件声明
//
// 组件体同样只接受变量和函数声明，其中：
// - 名称带 prop 前缀的变量成员是属性元数据
// - 名称带 state 前缀的变量成员是状态元数据
// - 必须有一个名为 render 的函数成员（缺少时是语法错误）
type ComponentDecl struct {
	Token   token.Token // component token
	Name    string      // 组件名
	Members []Statement // 成员（VarDecl / FuncDecl）
	BodyEnd token.Token // 右大括号 token
}

func (d *ComponentDecl) Pos() token.Position { return d.Token.Pos }
func (d *ComponentDecl) End() token.Position { return d.BodyEnd.Pos }
func (d *ComponentDecl) String() string      { return fmt.Sprintf("component %s {...}", d.Name) }
func (d *ComponentDecl) stmtNode()           {}

// ImportDecl 导入声明 (import "std:math")
type ImportDecl struct {
	Token   token.Token // import token
	Path    string      // 导入路径（如 "std:math"）
	PathTok token.Token // 路径字符串 token
}

func (d *ImportDecl) Pos() token.Position { return d.Token.Pos }
func (d *ImportDecl) End() token.Position { return d.PathTok.Pos }
func (d *ImportDecl) String() string      { return fmt.Sprintf("import %q", d.Path) }
func (d *ImportDecl) stmtNode()           {}

// ExprStmt 表达式语句
type ExprStmt struct {
	Expr Expression
}

func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (s *ExprStmt) End() token.Position { return s.Expr.End() }
func (s *ExprStmt) String() string      { return s.Expr.String() }
func (s *ExprStmt) stmtNode()           {}

// IfStmt if 语句
//
// if 体在当前作用域中顺序执行，不会压入新作用域；
// 只有函数体和循环体才创建子作用域。
type IfStmt struct {
	Token token.Token // if token
	Cond  Expression  // 条件
	Then  []Statement // 真分支
	Else  []Statement // 假分支（可为 nil）
	EndTok token.Token // 最后一个右大括号 token
}

func (s *IfStmt) Pos() token.Position { return s.Token.Pos }
func (s *IfStmt) End() token.Position { return s.EndTok.Pos }
func (s *IfStmt) String() string      { return fmt.Sprintf("if (%s) {...}", s.Cond) }
func (s *IfStmt) stmtNode()           {}

// ForStmt 经典三段式 for 循环
//
// init 在新建的子作用域中执行一次；cond 每轮求值；
// cond 和 update 都缺省时循环体只执行一次（避免结构性死循环）。
type ForStmt struct {
	Token  token.Token // for token
	Init   Statement   // 初始化（可为 nil）
	Cond   Expression  // 条件（可为 nil）
	Update Expression  // 更新（可为 nil）
	Body   []Statement // 循环体
	EndTok token.Token // 右大括号 token
}

func (s *ForStmt) Pos() token.Position { return s.Token.Pos }
func (s *ForStmt) End() token.Position { return s.EndTok.Pos }
func (s *ForStmt) String() string      { return "for (...) {...}" }
func (s *ForStmt) stmtNode()           {}

// ReturnStmt return 语句
type ReturnStmt struct {
	Token token.Token // return token
	Value Expression  // 返回值（可为 nil）
}

func (s *ReturnStmt) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStmt) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Token.Pos
}
func (s *ReturnStmt) String() string {
	if s.Value != nil {
		return fmt.Sprintf("return %s", s.Value)
	}
	return "return"
}
func (s *ReturnStmt) stmtNode() {}

// ============================================================================
// 表达式节点
// ============================================================================

// Literal 字面量（数字、字符串、布尔、null）
type Literal struct {
	Token token.Token // 字面量 token
	Value interface{} // float64 / string / bool / nil
}

func (e *Literal) Pos() token.Position { return e.Token.Pos }
func (e *Literal) End() token.Position { return token.SpanFromToken(e.Token).End }
func (e *Literal) String() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	if e.Value == nil {
		return "null"
	}
	return fmt.Sprintf("%v", e.Value)
}
func (e *Literal) exprNode() {}

// Identifier 标识符引用
type Identifier struct {
	Token token.Token // 标识符 token
	Name  string      // 名称
}

func (e *Identifier) Pos() token.Position { return e.Token.Pos }
func (e *Identifier) End() token.Position { return token.SpanFromToken(e.Token).End }
func (e *Identifier) String() string      { return e.Name }
func (e *Identifier) exprNode()           {}

// AssignExpr 赋值表达式（右结合）
//
// 目标只能是简单名称、属性访问或下标表达式，其他目标在语法阶段报错。
type AssignExpr struct {
	Target Expression  // 赋值目标
	Token  token.Token // = token
	Value  Expression  // 右值
}

func (e *AssignExpr) Pos() token.Position { return e.Target.Pos() }
func (e *AssignExpr) End() token.Position { return e.Value.End() }
func (e *AssignExpr) String() string      { return fmt.Sprintf("%s = %s", e.Target, e.Value) }
func (e *AssignExpr) exprNode()           {}

// BinaryExpr 二元 / 一元运算
//
// Left 为 nil 表示一元形式（!x, -x）。下标访问是 Op 为 "[]" 的
// 二元形式，Right 为下标表达式。
type BinaryExpr struct {
	Left  Expression  // 左操作数（一元时为 nil）
	Op    string      // 运算符符号（"+", "==", "&&", "[]" 等）
	OpTok token.Token // 运算符 token
	Right Expression  // 右操作数
}

func (e *BinaryExpr) Pos() token.Position {
	if e.Left != nil {
		return e.Left.Pos()
	}
	return e.OpTok.Pos
}
func (e *BinaryExpr) End() token.Position { return e.Right.End() }
func (e *BinaryExpr) String() string {
	if e.Left == nil {
		return fmt.Sprintf("(%s%s)", e.Op, e.Right)
	}
	if e.Op == "[]" {
		return fmt.Sprintf("%s[%s]", e.Left, e.Right)
	}
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}
func (e *BinaryExpr) exprNode() {}

// CallExpr 调用表达式
type CallExpr struct {
	Callee Expression   // 被调用者（名称、属性访问等）
	LParen token.Token  // ( token
	Args   []Expression // 位置实参
	RParen token.Token  // ) token
}

func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }
func (e *CallExpr) End() token.Position { return e.RParen.Pos }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}
func (e *CallExpr) exprNode() {}

// ObjectField 对象字面量的键值对
type ObjectField struct {
	Key   string     // 键名
	Value Expression // 值表达式
}

// ObjectLiteral 对象字面量 ({ a: 1, b: 2 })
type ObjectLiteral struct {
	LBrace token.Token   // { token
	Fields []ObjectField // 键值对（保持书写顺序）
	RBrace token.Token   // } token
}

func (e *ObjectLiteral) Pos() token.Position { return e.LBrace.Pos }
func (e *ObjectLiteral) End() token.Position { return e.RBrace.Pos }
func (e *ObjectLiteral) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Key, f.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (e *ObjectLiteral) exprNode() {}

// ArrayLiteral 数组字面量 ([1, 2, 3])
type ArrayLiteral struct {
	LBracket token.Token  // [ token
	Elements []Expression // 元素
	RBracket token.Token  // ] token
}

func (e *ArrayLiteral) Pos() token.Position { return e.LBracket.Pos }
func (e *ArrayLiteral) End() token.Position { return e.RBracket.Pos }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (e *ArrayLiteral) exprNode() {}

// PropertyAccess 属性访问 (obj.name)
type PropertyAccess struct {
	Object  Expression  // 对象表达式
	DotTok  token.Token // . token
	Name    string      // 成员名
	NameTok token.Token // 成员名 token
}

func (e *PropertyAccess) Pos() token.Position { return e.Object.Pos() }
func (e *PropertyAccess) End() token.Position { return token.SpanFromToken(e.NameTok).End }
func (e *PropertyAccess) String() string      { return fmt.Sprintf("%s.%s", e.Object, e.Name) }
func (e *PropertyAccess) exprNode()           {}

// ============================================================================
// JSX 节点
// ============================================================================

// JSXAttr JSX 属性
//
// 三种形式：
//   name="literal"  字符串字面量属性（Value 为 *Literal）
//   name={expr}     花括号表达式属性（Value 为任意表达式）
//   name            裸布尔标志（Value 为 nil，求值为 true）
type JSXAttr struct {
	Name    string      // 属性名
	NameTok token.Token // 属性名 token
	Value   Expression  // 属性值（裸标志时为 nil）
}

// JSXElement JSX 元素
//
// 子节点列表由字符串字面量、嵌套元素和花括号表达式组成，
// 以匹配的结束标签或自闭合标记终止。
type JSXElement struct {
	OpenTok   token.Token  // JSX_OPEN token（Literal 为标签名）
	Tag       string       // 标签名
	Attrs     []JSXAttr    // 属性列表
	Children  []Expression // 子节点
	SelfClose bool         // 是否自闭合
	CloseTok  token.Token  // JSX_SELF_CLOSE 或 JSX_CLOSE token
}

func (e *JSXElement) Pos() token.Position { return e.OpenTok.Pos }
func (e *JSXElement) End() token.Position { return e.CloseTok.Pos }
func (e *JSXElement) String() string {
	if e.SelfClose {
		return fmt.Sprintf("<%s ... />", e.Tag)
	}
	return fmt.Sprintf("<%s ...>...</%s>", e.Tag, e.Tag)
}
func (e *JSXElement) exprNode() {}

// ============================================================================
// Program - 顶层节点列表
// ============================================================================

// Program 一次解析的结果：顶层语句的有序列表
type Program struct {
	Filename   string      // 源文件名
	Statements []Statement // 顶层语句
}

// NodeCount 统计节点总数（用于幂等性测试与调试）
func (p *Program) NodeCount() int {
	n := 0
	for _, s := range p.Statements {
		n += countNode(s)
	}
	return n
}

func countNode(node Node) int {
	if node == nil {
		return 0
	}

	n := 1
	switch t := node.(type) {
	case *VarDecl:
		n += countNode(t.Init)
	case *FuncDecl:
		for _, s := range t.Body {
			n += countNode(s)
		}
	case *ClassDecl:
		for _, m := range t.Members {
			n += countNode(m)
		}
	case *ComponentDecl:
		for _, m := range t.Members {
			n += countNode(m)
		}
	case *ExprStmt:
		n += countNode(t.Expr)
	case *IfStmt:
		n += countNode(t.Cond)
		for _, s := range t.Then {
			n += countNode(s)
		}
		for _, s := range t.Else {
			n += countNode(s)
		}
	case *ForStmt:
		n += countNode(t.Init)
		n += countNode(t.Cond)
		n += countNode(t.Update)
		for _, s := range t.Body {
			n += countNode(s)
		}
	case *ReturnStmt:
		n += countNode(t.Value)
	case *AssignExpr:
		n += countNode(t.Target)
		n += countNode(t.Value)
	case *BinaryExpr:
		n += countNode(t.Left)
		n += countNode(t.Right)
	case *CallExpr:
		n += countNode(t.Callee)
		for _, a := range t.Args {
			n += countNode(a)
		}
	case *ObjectLiteral:
		for _, f := range t.Fields {
			n += countNode(f.Value)
		}
	case *ArrayLiteral:
		for _, el := range t.Elements {
			n += countNode(el)
		}
	case *PropertyAccess:
		n += countNode(t.Object)
	case *JSXElement:
		for _, a := range t.Attrs {
			n += countNode(a.Value)
		}
		for _, c := range t.Children {
			n += countNode(c)
		}
	}
	return n
}
