package token

import "fmt"

// ============================================================================
// Token 类型定义
// ============================================================================
//
// TokenType 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（ILLEGAL, EOF）
// 2. 字面量（字符串、数字、标识符）
// 3. 运算符（算术、比较、逻辑）
// 4. 分隔符（括号、逗号、分号等）
// 5. JSX 标记（开始标签、结束标签、自闭合、标签结束）
// 6. 关键字
//
// 空白和注释在词法分析阶段直接丢弃，不进入 Token 流。
//
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	ILLEGAL TokenType = iota // 非法字符
	EOF                      // 文件结束

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	IDENT  // 标识符 (变量名、函数名等)
	NUMBER // 数字字面量
	STRING // 字符串字面量

	// ----------------------------------------------------------
	// 算术运算符
	// ----------------------------------------------------------
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	ASSIGN  // =

	// ----------------------------------------------------------
	// 比较运算符
	// ----------------------------------------------------------
	EQ // ==
	NE // !=
	LT // <
	LE // <=
	GT // >
	GE // >=

	// ----------------------------------------------------------
	// 逻辑运算符
	// ----------------------------------------------------------
	AND // &&
	OR  // ||
	NOT // !

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;
	COLON     // :

	// ----------------------------------------------------------
	// JSX 标记
	// ----------------------------------------------------------
	// JSX 标签只在表达式开头位置被识别（由词法器模式栈控制），
	// 避免与比较运算符 < > 产生歧义。
	JSX_OPEN       // <tag     （Literal 为标签名）
	JSX_CLOSE      // </tag>   （Literal 为标签名）
	JSX_SELF_CLOSE // />
	JSX_END        // >        （结束开始标签，进入子节点）

	// ----------------------------------------------------------
	// 关键字
	// ----------------------------------------------------------
	keyword_beg // 关键字起始标记（不是实际 token）
	IMPORT      // import
	CLASS       // class
	COMPONENT   // component
	VAR         // var
	CONST       // const
	FUNC        // func
	IF          // if
	ELSE        // else
	FOR         // for
	RETURN      // return
	TRUE        // true
	FALSE       // false
	NULL        // null
	keyword_end // 关键字结束标记（不是实际 token）
)

// ============================================================================
// Token 类型名称映射
// ============================================================================

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	ASSIGN:  "=",

	EQ: "==",
	NE: "!=",
	LT: "<",
	LE: "<=",
	GT: ">",
	GE: ">=",

	AND: "&&",
	OR:  "||",
	NOT: "!",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",
	COLON:     ":",

	JSX_OPEN:       "JSX_OPEN",
	JSX_CLOSE:      "JSX_CLOSE",
	JSX_SELF_CLOSE: "/>",
	JSX_END:        "JSX_END",

	IMPORT:    "import",
	CLASS:     "class",
	COMPONENT: "component",
	VAR:       "var",
	CONST:     "const",
	FUNC:      "func",
	IF:        "if",
	ELSE:      "else",
	FOR:       "for",
	RETURN:    "return",
	TRUE:      "true",
	FALSE:     "false",
	NULL:      "null",
}

// ============================================================================
// 关键字查找
// ============================================================================
//
// keywords 将关键字字符串映射到对应的 TokenType。
// 用于在词法分析时区分标识符和关键字。
//
// ============================================================================

var keywords = map[string]TokenType{
	"import":    IMPORT,
	"class":     CLASS,
	"component": COMPONENT,
	"var":       VAR,
	"const":     CONST,
	"func":      FUNC,
	"if":        IF,
	"else":      ELSE,
	"for":       FOR,
	"return":    RETURN,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
}

// LookupIdent 查找标识符是否为关键字
//
// 短关键字（2-4 字符）使用 switch 直接匹配，避免哈希计算；
// 较长的关键字走 map 查找。
func LookupIdent(ident string) TokenType {
	switch len(ident) {
	case 2:
		if ident == "if" {
			return IF
		}

	case 3:
		switch ident {
		case "var":
			return VAR
		case "for":
			return FOR
		}

	case 4:
		switch ident {
		case "func":
			return FUNC
		case "else":
			return ELSE
		case "true":
			return TRUE
		case "null":
			return NULL
		}
	}

	if tok, ok := keywords[ident]; ok {
		return tok
	}

	return IDENT
}

// IsKeyword 判断 TokenType 是否为关键字
func IsKeyword(t TokenType) bool {
	return t > keyword_beg && t < keyword_end
}

// String 返回 TokenType 的字符串表示
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Filename string // 文件名
	Line     int    // 行号 (从1开始)
	Column   int    // 列号 (从1开始)
	Offset   int    // 字节偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "filename:line:column"
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid 检查位置是否有效
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ============================================================================
// Span - 源代码范围
// ============================================================================

// Span 表示源代码中的一个范围（开始到结束），用于错误报告和编辑器高亮。
type Span struct {
	Start Position // 开始位置
	End   Position // 结束位置
}

// NewSpan 创建新的 Span
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// SpanFromToken 从 Token 创建覆盖整个 Token 的 Span
func SpanFromToken(t Token) Span {
	endPos := t.Pos
	endPos.Column += len(t.Literal)
	endPos.Offset += len(t.Literal)
	return Span{Start: t.Pos, End: endPos}
}

// Length 返回 Span 的长度（仅在同一行有效）
func (s Span) Length() int {
	if s.Start.Line == s.End.Line {
		return s.End.Column - s.Start.Column
	}
	return 1 // 多行时返回 1
}

// String 返回 Span 的字符串表示
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", s.Start.Filename, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.Filename, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元
//
// Token 由词法分析器一次性创建，之后不可变，按顺序被语法分析器消费。
// - Type: token 类型（如 IDENT, NUMBER, IF 等）
// - Literal: 原始字面量文本（JSX 标签 token 中为标签名）
// - Value: 解析后的值（数字、字符串）
// - Pos: 在源代码中的位置
type Token struct {
	Type    TokenType   // Token 类型
	Literal string      // 原始字面量
	Value   interface{} // 解析后的值 (用于数字、字符串)
	Pos     Position    // 位置信息
}

// String 返回 Token 的字符串表示（用于调试）
func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, STRING, JSX_OPEN, JSX_CLOSE:
		return fmt.Sprintf("%s(%s) at %s", t.Type, t.Literal, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Type, t.Pos)
	}
}

// New 创建一个新的 Token
func New(tokenType TokenType, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Pos:     pos,
	}
}

// NewWithValue 创建一个带值的 Token
//
// 用于数字和字符串字面量，value 参数存储解析后的实际值。
func NewWithValue(tokenType TokenType, literal string, value interface{}, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Value:   value,
		Pos:     pos,
	}
}
