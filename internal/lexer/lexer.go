package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/i18n"
	"github.com/phixeo/phixeo/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// 词法分析器负责将源代码字符串转换为 Token 序列。
//
// 为了区分 JSX 标签和小于运算符，扫描器维护一个模式栈：
//   - normal:       普通代码，`<` 只有在表达式头部且后跟字母时才开启 JSX
//   - jsxTag:       在 `<tag ... >` 内部，扫描属性名、= 和属性值
//   - jsxChildren:  在开始标签和结束标签之间，只接受字符串字面量、
//                   嵌套元素和花括号表达式
//
// 花括号表达式会压入一个 normal 模式帧并记录大括号深度，
// 匹配的 `}` 弹回外层 JSX 模式。
//
// 性能优化说明：
// 1. ASCII 快速路径：大多数源代码字符是 ASCII，避免不必要的 UTF-8 解码
// 2. Token 切片预分配：根据源码长度预估 token 数量，减少切片扩容
// 3. 空白字符批量跳过：一次性跳过连续空白，减少循环次数
// 4. 字符串快速路径：无转义字符时直接切片，避免逐字符拷贝
//
// ============================================================================

// 扫描模式
type scanMode int

const (
	modeNormal      scanMode = iota // 普通代码
	modeJSXTag                      // JSX 开始标签内部
	modeJSXChildren                 // JSX 子节点区域
)

// modeFrame 模式栈帧
//
// braceDepth 只对 normal 帧有意义：从 JSX 进入花括号表达式时压入的
// normal 帧需要知道哪个 `}` 是它的结束。
type modeFrame struct {
	mode       scanMode
	braceDepth int
}

// Lexer 词法分析器结构体
type Lexer struct {
	source   string        // 源代码字符串
	filename string        // 源文件名（用于错误报告）
	tokens   []token.Token // 已扫描的 Token 列表

	start     int // 当前 Token 的起始位置（字节偏移）
	current   int // 当前扫描位置（字节偏移）
	line      int // 当前行号（从1开始）
	column    int // 当前列号（从1开始）
	lineStart int // 当前行的起始偏移（用于计算列号）

	modes []modeFrame // 模式栈，栈底总是 normal 帧

	errors []Error // 词法错误列表
}

// Error 表示词法分析错误
type Error struct {
	Code    string         // 错误码（L 前缀）
	Pos     token.Position // 错误位置
	Message string         // 错误信息
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ============================================================================
// 构造函数
// ============================================================================

// New 创建一个新的词法分析器
//
// 参数:
//   - source: 源代码字符串
//   - filename: 源文件名（用于错误报告）
func New(source, filename string) *Lexer {
	// 预估 token 数量：源码长度 / 5 是一个经验值
	estimatedTokens := len(source) / 5
	if estimatedTokens < 16 {
		estimatedTokens = 16
	}

	return &Lexer{
		source:   source,
		filename: filename,
		tokens:   make([]token.Token, 0, estimatedTokens),
		line:     1,
		column:   1,
		modes:    []modeFrame{{mode: modeNormal}},
	}
}

// ============================================================================
// 公共方法
// ============================================================================

// ScanTokens 扫描所有 tokens
//
// 这是词法分析的主入口，会扫描整个源代码并返回 Token 序列。
// 最后一个 Token 总是 EOF，表示文件结束。
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		l.start = l.current

		switch l.currentMode() {
		case modeJSXTag:
			l.scanJSXTagToken()
		case modeJSXChildren:
			l.scanJSXChildToken()
		default:
			l.scanToken()
		}
	}

	// 未闭合的 JSX 元素
	if len(l.modes) > 1 {
		l.error(errors.L0006, i18n.T(i18n.ErrUnterminatedJSX))
	}

	// 添加 EOF token 标记文件结束
	l.tokens = append(l.tokens, token.Token{
		Type: token.EOF,
		Pos:  l.currentPos(),
	})

	return l.tokens
}

// Errors 返回所有词法错误
func (l *Lexer) Errors() []Error {
	return l.errors
}

// HasErrors 检查是否有错误
func (l *Lexer) HasErrors() bool {
	return len(l.errors) > 0
}

// ============================================================================
// 普通模式扫描
// ============================================================================

// scanToken 扫描单个 token（普通模式）
//
// 这是词法分析的核心函数，根据当前字符决定如何处理。
// switch 分支按字符出现频率排序。
func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {

	// ----------------------------------------------------------
	// 高频：空白字符（代码中最常见）
	// ----------------------------------------------------------
	case ' ', '\t', '\r':
		l.skipWhitespace()

	case '\n':
		l.newLine()
		l.skipWhitespace()

	// ----------------------------------------------------------
	// 高频：常用分隔符
	// ----------------------------------------------------------
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '{':
		l.addToken(token.LBRACE)
		l.openBrace()
	case '}':
		// 若当前 normal 帧是由 JSX 花括号表达式压入的，
		// 匹配的 `}` 弹回外层 JSX 模式
		l.addToken(token.RBRACE)
		l.closeBrace()
	case '[':
		l.addToken(token.LBRACKET)
	case ']':
		l.addToken(token.RBRACKET)
	case ',':
		l.addToken(token.COMMA)
	case ';':
		l.addToken(token.SEMICOLON)
	case ':':
		l.addToken(token.COLON)

	case '.':
		l.addToken(token.DOT)

	// ----------------------------------------------------------
	// 高频：常用运算符（可能是多字符）
	// ----------------------------------------------------------
	case '=':
		if l.match('=') {
			l.addToken(token.EQ)
		} else {
			l.addToken(token.ASSIGN)
		}

	case '+':
		l.addToken(token.PLUS)

	case '-':
		l.addToken(token.MINUS)

	case '*':
		l.addToken(token.STAR)

	case '/':
		// / 或 // 注释 或 /* 块注释
		if l.match('/') {
			l.lineComment()
		} else if l.match('*') {
			l.blockComment()
		} else {
			l.addToken(token.SLASH)
		}

	case '%':
		l.addToken(token.PERCENT)

	// ----------------------------------------------------------
	// 中频：比较和逻辑运算符
	// ----------------------------------------------------------
	case '!':
		if l.match('=') {
			l.addToken(token.NE)
		} else {
			l.addToken(token.NOT)
		}

	case '<':
		// < 或 <= 或 JSX 开始标签
		//
		// 只有在表达式头部（前一个 token 不能结束表达式）且
		// 后跟字母时，`<` 才开启 JSX；a < b 始终是比较
		if l.atExpressionHead() && isAlpha(l.peek()) {
			l.jsxOpenTag()
		} else if l.match('=') {
			l.addToken(token.LE)
		} else {
			l.addToken(token.LT)
		}

	case '>':
		if l.match('=') {
			l.addToken(token.GE)
		} else {
			l.addToken(token.GT)
		}

	case '&':
		if l.match('&') {
			l.addToken(token.AND)
		} else {
			l.error(errors.L0001, i18n.T(i18n.ErrUnexpectedChar, ch))
		}

	case '|':
		if l.match('|') {
			l.addToken(token.OR)
		} else {
			l.error(errors.L0001, i18n.T(i18n.ErrUnexpectedChar, ch))
		}

	// ----------------------------------------------------------
	// 字符串字面量
	// ----------------------------------------------------------
	case '"':
		l.string('"')
	case '\'':
		l.string('\'')

	// ----------------------------------------------------------
	// 默认：标识符、数字或非法字符
	// ----------------------------------------------------------
	default:
		if isDigit(ch) {
			l.number()
		} else if isAlpha(ch) {
			l.identifier()
		} else {
			l.error(errors.L0001, i18n.T(i18n.ErrUnexpectedChar, ch))
		}
	}
}

// atExpressionHead 判断下一个 token 是否处于表达式头部
//
// 前一个 token 能够结束一个表达式时（名称、字面量、右括号等），
// `<` 是比较运算符；否则是 JSX 开始标签的候选。
func (l *Lexer) atExpressionHead() bool {
	if len(l.tokens) == 0 {
		return true
	}

	switch l.tokens[len(l.tokens)-1].Type {
	case token.IDENT, token.NUMBER, token.STRING,
		token.RPAREN, token.RBRACKET, token.RBRACE,
		token.TRUE, token.FALSE, token.NULL,
		token.JSX_SELF_CLOSE, token.JSX_CLOSE, token.JSX_END:
		return false
	}
	return true
}

// ============================================================================
// JSX 扫描
// ============================================================================

// jsxOpenTag 扫描 `<tag`，生成 JSX_OPEN 并进入标签模式
//
// 调用时 `<` 已被消费，且已确认下一个字符是字母。
func (l *Lexer) jsxOpenTag() {
	nameStart := l.current
	for isTagNameChar(l.peekByte()) {
		l.advanceByte()
	}

	name := l.source[nameStart:l.current]
	l.tokens = append(l.tokens, token.Token{
		Type:    token.JSX_OPEN,
		Literal: name,
		Pos:     l.currentPos(),
	})
	l.pushMode(modeJSXTag)
}

// scanJSXTagToken 扫描开始标签内部的单个 token
//
// 标签内部接受：属性名、=、字符串属性值、花括号表达式、
// `>`（进入子节点模式）和 `/>`（自闭合，弹出模式）。
func (l *Lexer) scanJSXTagToken() {
	ch := l.advance()

	switch ch {
	case ' ', '\t', '\r':
		l.skipWhitespace()

	case '\n':
		l.newLine()
		l.skipWhitespace()

	case '>':
		// 开始标签结束，进入子节点模式
		l.addToken(token.JSX_END)
		l.modes[len(l.modes)-1].mode = modeJSXChildren

	case '/':
		if l.match('>') {
			// 自闭合标签，整个元素结束
			l.addToken(token.JSX_SELF_CLOSE)
			l.popMode()
		} else {
			l.error(errors.L0001, i18n.T(i18n.ErrUnexpectedChar, ch))
		}

	case '=':
		l.addToken(token.ASSIGN)

	case '{':
		// 属性值为花括号表达式，切回普通代码扫描
		l.addToken(token.LBRACE)
		l.pushMode(modeNormal)

	case '"':
		l.string('"')
	case '\'':
		l.string('\'')

	default:
		if isAlpha(ch) {
			// 属性名：允许字母、数字和连字符
			for isTagNameChar(l.peekByte()) {
				l.advanceByte()
			}
			l.tokens = append(l.tokens, token.Token{
				Type:    token.IDENT,
				Literal: l.source[l.start:l.current],
				Pos:     l.currentPos(),
			})
		} else {
			l.error(errors.L0001, i18n.T(i18n.ErrUnexpectedChar, ch))
		}
	}
}

// scanJSXChildToken 扫描子节点区域的单个 token
//
// 子节点区域接受：字符串字面量、嵌套元素、花括号表达式
// 和结束标签 `</tag>`。
func (l *Lexer) scanJSXChildToken() {
	ch := l.advance()

	switch ch {
	case ' ', '\t', '\r':
		l.skipWhitespace()

	case '\n':
		l.newLine()
		l.skipWhitespace()

	case '<':
		if l.match('/') {
			// 结束标签 </tag>
			l.jsxCloseTag()
		} else if isAlpha(l.peek()) {
			// 嵌套元素
			l.jsxOpenTag()
		} else {
			l.error(errors.L0005, i18n.T(i18n.ErrExpectedJSXTagName))
		}

	case '{':
		// 花括号子表达式，切回普通代码扫描
		l.addToken(token.LBRACE)
		l.pushMode(modeNormal)

	case '"':
		l.string('"')
	case '\'':
		l.string('\'')

	default:
		l.error(errors.L0001, i18n.T(i18n.ErrUnexpectedChar, ch))
	}
}

// jsxCloseTag 扫描 `</tag>`，生成 JSX_CLOSE 并弹出模式
//
// 调用时 `</` 已被消费。
func (l *Lexer) jsxCloseTag() {
	if !isAlpha(l.peek()) {
		l.error(errors.L0005, i18n.T(i18n.ErrExpectedJSXTagName))
		return
	}

	nameStart := l.current
	for isTagNameChar(l.peekByte()) {
		l.advanceByte()
	}
	name := l.source[nameStart:l.current]

	if !l.match('>') {
		l.error(errors.L0006, i18n.T(i18n.ErrUnterminatedJSX))
		return
	}

	l.tokens = append(l.tokens, token.Token{
		Type:    token.JSX_CLOSE,
		Literal: name,
		Pos:     l.currentPos(),
	})
	l.popMode()
}

// ============================================================================
// 模式栈操作
// ============================================================================

func (l *Lexer) currentMode() scanMode {
	return l.modes[len(l.modes)-1].mode
}

func (l *Lexer) pushMode(m scanMode) {
	l.modes = append(l.modes, modeFrame{mode: m})
}

func (l *Lexer) popMode() {
	// 栈底的 normal 帧永不弹出
	if len(l.modes) > 1 {
		l.modes = l.modes[:len(l.modes)-1]
	}
}

// openBrace 记录普通模式中的 `{`
func (l *Lexer) openBrace() {
	l.modes[len(l.modes)-1].braceDepth++
}

// closeBrace 处理普通模式中的 `}`
//
// 当前帧是从 JSX 压入的且深度已归零时，这个 `}` 结束花括号
// 表达式，弹回外层 JSX 模式。
func (l *Lexer) closeBrace() {
	top := &l.modes[len(l.modes)-1]
	if top.braceDepth > 0 {
		top.braceDepth--
		return
	}
	if len(l.modes) > 1 {
		l.popMode()
	}
}

// ============================================================================
// 空白字符处理
// ============================================================================

// skipWhitespace 批量跳过连续的空白字符
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch := l.peekByte()

		switch ch {
		case ' ', '\t', '\r':
			l.advanceByte()
		case '\n':
			l.advanceByte()
			l.newLine()
		default:
			return
		}
	}
}

// ============================================================================
// 注释处理
// ============================================================================

// lineComment 处理单行注释 //
func (l *Lexer) lineComment() {
	for !l.isAtEnd() && l.peekByte() != '\n' {
		l.advance()
	}
	// 不消费换行符，让主循环处理（更新行号）
}

// blockComment 处理多行注释 /* */
//
// 支持嵌套注释，如 /* outer /* inner */ outer */
func (l *Lexer) blockComment() {
	depth := 1

	for depth > 0 && !l.isAtEnd() {
		if l.peekByte() == '/' && l.peekNextByte() == '*' {
			l.advance()
			l.advance()
			depth++
			continue
		}

		if l.peekByte() == '*' && l.peekNextByte() == '/' {
			l.advance()
			l.advance()
			depth--
			continue
		}

		if l.peekByte() == '\n' {
			l.advance()
			l.newLine()
			continue
		}

		l.advance()
	}

	if depth > 0 {
		l.error(errors.L0003, i18n.T(i18n.ErrUnterminatedComment))
	}
}

// ============================================================================
// 字符串处理
// ============================================================================

// string 处理字符串字面量
//
// 支持单引号 'xxx' 和双引号 "xxx" 两种形式。
// 支持转义字符：\n \r \t \\ \' \" \0
//
// 优化说明:
//   - 快速路径：如果字符串不包含转义字符，直接切片返回
//   - 慢速路径：包含转义字符时，使用 strings.Builder 构建
func (l *Lexer) string(quote rune) {
	startOffset := l.current // 字符串内容的起始位置（引号后）

	// 快速扫描检查是否包含转义字符
	hasEscape := false
	scanPos := l.current

	for scanPos < len(l.source) {
		b := l.source[scanPos]
		if b == '\\' {
			hasEscape = true
			break
		}
		if b == byte(quote) || b == '\n' {
			break
		}
		scanPos++
	}

	// ==========================================================
	// 快速路径：无转义字符，直接切片
	// ==========================================================
	if !hasEscape {
		endPos := scanPos

		for l.current < endPos {
			l.advance()
		}

		if l.isAtEnd() || l.peek() == '\n' {
			l.error(errors.L0002, i18n.T(i18n.ErrUnterminatedString))
			return
		}

		value := l.source[startOffset:l.current]
		l.advance() // 跳过结束引号

		l.addTokenWithValue(token.STRING, value)
		return
	}

	// ==========================================================
	// 慢速路径：包含转义字符，需要处理转义
	// ==========================================================
	var sb strings.Builder
	sb.Grow(scanPos - startOffset + 16)

	for !l.isAtEnd() {
		ch := l.peek()

		if ch == quote {
			break
		}

		// 字符串不能跨行
		if ch == '\n' {
			l.error(errors.L0002, i18n.T(i18n.ErrUnterminatedString))
			return
		}

		if ch == '\\' {
			l.advance()
			if l.isAtEnd() {
				l.error(errors.L0002, i18n.T(i18n.ErrUnterminatedString))
				return
			}

			escaped := l.advance()
			switch escaped {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			default:
				// 未知转义，保留原字符
				sb.WriteRune(escaped)
			}
		} else {
			sb.WriteRune(l.advance())
		}
	}

	if l.isAtEnd() {
		l.error(errors.L0002, i18n.T(i18n.ErrUnterminatedString))
		return
	}

	l.advance() // 跳过结束引号
	l.addTokenWithValue(token.STRING, sb.String())
}

// ============================================================================
// 数字处理
// ============================================================================

// number 处理数字字面量
//
// 支持十进制整数、浮点数和科学计数法（1.5e10, 2E-3）。
// 所有数字都以 float64 表示。
func (l *Lexer) number() {
	// 整数部分
	for isDigit(l.peek()) {
		l.advance()
	}

	// 小数部分
	if l.peekByte() == '.' && isDigit(l.peekNextRune()) {
		l.advance() // 跳过 '.'

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// 科学计数法 e/E
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		l.advance()

		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advance()
		}

		// 指数部分必须有数字
		if !isDigit(l.peek()) {
			l.error(errors.L0004, i18n.T(i18n.ErrInvalidExponent))
			return
		}

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	literal := l.source[l.start:l.current]
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		l.error(errors.L0004, i18n.T(i18n.ErrInvalidNumber, literal))
		return
	}

	l.addTokenWithValue(token.NUMBER, value)
}

// ============================================================================
// 标识符处理
// ============================================================================

// identifier 处理标识符和关键字
//
// 标识符以字母或下划线开头，后跟字母、数字或下划线。
// 扫描完成后查找关键字表，确定是标识符还是关键字。
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.current]
	l.addToken(token.LookupIdent(text))
}

// ============================================================================
// 底层字符操作（带 ASCII 优化）
// ============================================================================

// isAtEnd 检查是否到达源代码末尾
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance 前进一个字符并返回它
//
// 这是通用版本，支持完整的 UTF-8 字符。
// 对于 ASCII 字符，会自动使用快速路径。
func (l *Lexer) advance() rune {
	if l.current >= len(l.source) {
		return 0
	}

	b := l.source[l.current]

	// ASCII 快速路径
	if b < utf8.RuneSelf {
		l.current++
		l.column++
		return rune(b)
	}

	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	l.column++
	return r
}

// advanceByte 前进一个字节（仅用于已知是 ASCII 的情况）
func (l *Lexer) advanceByte() {
	l.current++
	l.column++
}

// peek 查看当前字符但不前进
func (l *Lexer) peek() rune {
	if l.current >= len(l.source) {
		return 0
	}

	b := l.source[l.current]

	// ASCII 快速路径
	if b < utf8.RuneSelf {
		return rune(b)
	}

	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

// peekByte 查看当前字节（仅用于 ASCII 检查）
func (l *Lexer) peekByte() byte {
	if l.current >= len(l.source) {
		return 0
	}
	return l.source[l.current]
}

// peekNextByte 查看下一个字节（仅用于 ASCII 检查）
func (l *Lexer) peekNextByte() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// peekNextRune 查看下一个 rune（用于浮点数检测）
func (l *Lexer) peekNextRune() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}

	b := l.source[l.current+1]
	if b < utf8.RuneSelf {
		return rune(b)
	}

	r, _ := utf8.DecodeRuneInString(l.source[l.current+1:])
	return r
}

// match 如果当前字符匹配则前进
//
// 用于识别多字符运算符，如 == != <= 等。
func (l *Lexer) match(expected rune) bool {
	if l.current >= len(l.source) {
		return false
	}

	b := l.source[l.current]

	// ASCII 快速路径
	if b < utf8.RuneSelf {
		if rune(b) != expected {
			return false
		}
		l.current++
		l.column++
		return true
	}

	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	if r != expected {
		return false
	}
	l.current += size
	l.column++
	return true
}

// ============================================================================
// 位置追踪
// ============================================================================

// newLine 处理换行
func (l *Lexer) newLine() {
	l.line++
	l.column = 1
	l.lineStart = l.current
}

// currentPos 获取当前 token 的位置
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column - (l.current - l.start),
		Offset:   l.start,
	}
}

// ============================================================================
// Token 生成
// ============================================================================

// addToken 添加一个无值的 Token
func (l *Lexer) addToken(tokenType token.TokenType) {
	literal := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{
		Type:    tokenType,
		Literal: literal,
		Pos:     l.currentPos(),
	})
}

// addTokenWithValue 添加一个带解析值的 Token
func (l *Lexer) addTokenWithValue(tokenType token.TokenType, value interface{}) {
	literal := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{
		Type:    tokenType,
		Literal: literal,
		Value:   value,
		Pos:     l.currentPos(),
	})
}

// error 记录一个词法错误
func (l *Lexer) error(code, message string) {
	l.errors = append(l.errors, Error{
		Code:    code,
		Pos:     l.currentPos(),
		Message: message,
	})
}

// ============================================================================
// 字符分类
// ============================================================================

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}

// isTagNameChar JSX 标签名和属性名允许的字符
func isTagNameChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b == '_' || b == '-'
}
