package parser

import (
	"fmt"

	"github.com/phixeo/phixeo/internal/ast"
	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/i18n"
	"github.com/phixeo/phixeo/internal/lexer"
	"github.com/phixeo/phixeo/internal/token"
)

// ============================================================================
// Parser - 语法分析器
// ============================================================================
//
// 递归下降解析器，单 token 前瞻。表达式使用优先级爬升法解析，
// 语句按起始关键字分发。解析器只依赖词法分析器产出的 Token 序列，
// 不读源文件。
//
// 解析是纯函数：同一 Token 序列解析两次得到结构完全相同的树。
//
// ============================================================================

// Parser 语法分析器
type Parser struct {
	lexer     *lexer.Lexer
	tokens    []token.Token
	current   int
	errors    []Error
	filename  string
	panicMode bool // 错误恢复模式标志，用于避免级联报错
	exprDepth int  // 表达式解析深度，防止栈溢出
}

// maxExprDepth 最大表达式嵌套深度，防止栈溢出
const maxExprDepth = 200

// maxParseErrors 最大错误数量限制，防止错误爆炸
const maxParseErrors = 50

// Error 语法分析错误
type Error struct {
	Code    string // 错误码（词法 L / 语法 P 前缀）
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// New 创建一个新的语法分析器
func New(source, filename string) *Parser {
	l := lexer.New(source, filename)
	tokens := l.ScanTokens()

	p := &Parser{
		lexer:    l,
		tokens:   tokens,
		current:  0,
		filename: filename,
	}

	// 词法错误并入语法错误列表，调用方只需检查一处
	for _, e := range l.Errors() {
		p.errors = append(p.errors, Error{Code: e.Code, Pos: e.Pos, Message: e.Message})
	}

	return p
}

// Parse 解析源文件，返回顶层语句列表
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{
		Filename: p.filename,
	}

	for !p.isAtEnd() {
		p.panicMode = false // 每次迭代重置 panicMode

		stmt := p.parseStatement()
		if p.panicMode {
			p.synchronize()
			continue
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	return program
}

// Errors 返回所有语法错误（含词法错误）
func (p *Parser) Errors() []Error {
	return p.errors
}

// HasErrors 检查是否有错误
func (p *Parser) HasErrors() bool {
	return len(p.errors) > 0
}

// ============================================================================
// 辅助方法
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorCode(errors.P0002, message)
	p.panicMode = true
	return token.Token{} // 返回零值，调用方应检查 panicMode
}

// error 记录一个通用语法错误（意外的符号）
func (p *Parser) error(message string) {
	p.errorCode(errors.P0001, message)
}

func (p *Parser) errorCode(code, message string) {
	// panicMode 下跳过后续错误，避免级联报错
	if p.panicMode {
		return
	}

	pos := p.peek().Pos

	// 避免在同一位置重复报错
	if len(p.errors) > 0 {
		last := p.errors[len(p.errors)-1]
		if last.Pos.Line == pos.Line && last.Pos.Column == pos.Column {
			return
		}
	}

	// 检查是否超过最大错误数量
	if len(p.errors) >= maxParseErrors {
		p.errors = append(p.errors, Error{
			Code:    errors.P0001,
			Pos:     pos,
			Message: i18n.T(i18n.ErrTooManyErrors),
		})
		p.panicMode = true
		return
	}

	p.errors = append(p.errors, Error{
		Code:    code,
		Pos:     pos,
		Message: message,
	})
}

// synchronize 错误恢复：跳到下一个语句边界
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		// 分号后是安全点
		if p.previous().Type == token.SEMICOLON {
			return
		}
		// 右大括号后通常是安全点
		if p.previous().Type == token.RBRACE {
			return
		}

		// 新语句的开始是安全的同步点
		switch p.peek().Type {
		case token.IMPORT, token.CLASS, token.COMPONENT,
			token.VAR, token.CONST, token.FUNC,
			token.IF, token.FOR, token.RETURN:
			return
		}

		p.advance()
	}
}

// ============================================================================
// 语句解析
// ============================================================================

// parseStatement 按起始关键字分发
func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.IMPORT:
		return p.parseImport()
	case token.VAR:
		return p.parseVarDecl(false)
	case token.CONST:
		return p.parseVarDecl(true)
	case token.FUNC:
		return p.parseFuncDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.COMPONENT:
		return p.parseComponentDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseImport 解析导入声明 (import "std:math";)
func (p *Parser) parseImport() ast.Statement {
	importTok := p.advance() // 消费 import

	pathTok := p.consume(token.STRING, i18n.T(i18n.ErrExpectedToken, "module path string after 'import'"))
	if p.panicMode {
		return nil
	}

	path, _ := pathTok.Value.(string)
	p.match(token.SEMICOLON)

	return &ast.ImportDecl{
		Token:   importTok,
		Path:    path,
		PathTok: pathTok,
	}
}

// parseVarDecl 解析变量声明 (var x = 1; const y: number = 2;)
func (p *Parser) parseVarDecl(isConst bool) ast.Statement {
	kwTok := p.advance() // 消费 var 或 const

	kind := "variable"
	if isConst {
		kind = "constant"
	}
	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedName, kind))
	if p.panicMode {
		return nil
	}

	// 可选的类型标注
	typeName := ""
	if p.match(token.COLON) {
		typeTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedToken, "type name after ':'"))
		if p.panicMode {
			return nil
		}
		typeName = typeTok.Literal
	}

	// 可选的初始化表达式
	var init ast.Expression
	if p.match(token.ASSIGN) {
		init = p.parseExpression()
		if p.panicMode {
			return nil
		}
	}

	p.match(token.SEMICOLON)

	return &ast.VarDecl{
		Token:   kwTok,
		Const:   isConst,
		Name:    nameTok.Literal,
		NameTok: nameTok,
		Type:    typeName,
		Init:    init,
	}
}

// parseFuncDecl 解析函数声明
func (p *Parser) parseFuncDecl() ast.Statement {
	funcTok := p.advance() // 消费 func

	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedName, "function"))
	if p.panicMode {
		return nil
	}

	params := p.parseParams()
	if p.panicMode {
		return nil
	}

	// 可选的返回类型标注
	returnType := ""
	if p.match(token.COLON) {
		typeTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedToken, "return type after ':'"))
		if p.panicMode {
			return nil
		}
		returnType = typeTok.Literal
	}

	body, endTok := p.parseBlock()
	if p.panicMode {
		return nil
	}

	return &ast.FuncDecl{
		Token:      funcTok,
		Name:       nameTok.Literal,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		BodyEnd:    endTok,
	}
}

// parseParams 解析参数列表 (a, b: number, c)
func (p *Parser) parseParams() []ast.Param {
	p.consume(token.LPAREN, i18n.T(i18n.ErrExpectedToken, "'(' before parameter list"))
	if p.panicMode {
		return nil
	}

	var params []ast.Param
	if !p.check(token.RPAREN) {
		for {
			nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedParamName))
			if p.panicMode {
				return nil
			}

			typeName := ""
			if p.match(token.COLON) {
				typeTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedToken, "type name after ':'"))
				if p.panicMode {
					return nil
				}
				typeName = typeTok.Literal
			}

			params = append(params, ast.Param{Name: nameTok.Literal, Type: typeName})

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.consume(token.RPAREN, i18n.T(i18n.ErrExpectedToken, "')' after parameter list"))
	return params
}

// parseBlock 解析大括号包围的语句块
func (p *Parser) parseBlock() ([]ast.Statement, token.Token) {
	p.consume(token.LBRACE, i18n.T(i18n.ErrExpectedToken, "'{'"))
	if p.panicMode {
		return nil, token.Token{}
	}

	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmt := p.parseStatement()
		if p.panicMode {
			return nil, token.Token{}
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	endTok := p.consume(token.RBRACE, i18n.T(i18n.ErrExpectedToken, "'}'"))
	return stmts, endTok
}

// parseClassDecl 解析类声明
//
// 类体只接受变量和函数声明。
func (p *Parser) parseClassDecl() ast.Statement {
	classTok := p.advance() // 消费 class

	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedName, "class"))
	if p.panicMode {
		return nil
	}

	members, endTok := p.parseMemberBlock("class")
	if p.panicMode {
		return nil
	}

	return &ast.ClassDecl{
		Token:   classTok,
		Name:    nameTok.Literal,
		Members: members,
		BodyEnd: endTok,
	}
}

// parseComponentDecl 解析组件声明
//
// 组件体与类体相同，另外要求必须有一个名为 render 的函数成员。
func (p *Parser) parseComponentDecl() ast.Statement {
	compTok := p.advance() // 消费 component

	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedName, "component"))
	if p.panicMode {
		return nil
	}

	members, endTok := p.parseMemberBlock("component")
	if p.panicMode {
		return nil
	}

	hasRender := false
	for _, m := range members {
		if fn, ok := m.(*ast.FuncDecl); ok && fn.Name == "render" {
			hasRender = true
			break
		}
	}
	if !hasRender {
		p.errorCode(errors.P0004, i18n.T(i18n.ErrComponentNoRender, nameTok.Literal))
	}

	return &ast.ComponentDecl{
		Token:   compTok,
		Name:    nameTok.Literal,
		Members: members,
		BodyEnd: endTok,
	}
}

// parseMemberBlock 解析类 / 组件体，校验成员种类
func (p *Parser) parseMemberBlock(kind string) ([]ast.Statement, token.Token) {
	p.consume(token.LBRACE, i18n.T(i18n.ErrExpectedToken, "'{' before "+kind+" body"))
	if p.panicMode {
		return nil, token.Token{}
	}

	var members []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		switch p.peek().Type {
		case token.VAR:
			m := p.parseVarDecl(false)
			if p.panicMode {
				return nil, token.Token{}
			}
			members = append(members, m)
		case token.CONST:
			m := p.parseVarDecl(true)
			if p.panicMode {
				return nil, token.Token{}
			}
			members = append(members, m)
		case token.FUNC:
			m := p.parseFuncDecl()
			if p.panicMode {
				return nil, token.Token{}
			}
			members = append(members, m)
		default:
			p.errorCode(errors.P0005, i18n.T(i18n.ErrInvalidClassMember, kind))
			p.panicMode = true
			return nil, token.Token{}
		}
	}

	endTok := p.consume(token.RBRACE, i18n.T(i18n.ErrExpectedToken, "'}' after "+kind+" body"))
	return members, endTok
}

// parseIfStmt 解析 if 语句，else if 解析为嵌套 if
func (p *Parser) parseIfStmt() ast.Statement {
	ifTok := p.advance() // 消费 if

	p.consume(token.LPAREN, i18n.T(i18n.ErrExpectedToken, "'(' after 'if'"))
	if p.panicMode {
		return nil
	}
	cond := p.parseExpression()
	if p.panicMode {
		return nil
	}
	p.consume(token.RPAREN, i18n.T(i18n.ErrExpectedToken, "')' after condition"))
	if p.panicMode {
		return nil
	}

	then, endTok := p.parseBlock()
	if p.panicMode {
		return nil
	}

	var elseStmts []ast.Statement
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			// else if 链
			nested := p.parseIfStmt()
			if p.panicMode {
				return nil
			}
			elseStmts = []ast.Statement{nested}
			endTok = nested.(*ast.IfStmt).EndTok
		} else {
			elseStmts, endTok = p.parseBlock()
			if p.panicMode {
				return nil
			}
		}
	}

	return &ast.IfStmt{
		Token:  ifTok,
		Cond:   cond,
		Then:   then,
		Else:   elseStmts,
		EndTok: endTok,
	}
}

// parseForStmt 解析经典三段式 for 循环
//
// 三段都可省略：for (;;) 或 for (var i = 0; i < n;) 等。
func (p *Parser) parseForStmt() ast.Statement {
	forTok := p.advance() // 消费 for

	p.consume(token.LPAREN, i18n.T(i18n.ErrExpectedToken, "'(' after 'for'"))
	if p.panicMode {
		return nil
	}

	// 初始化子句（变量声明或表达式）
	var init ast.Statement
	if !p.match(token.SEMICOLON) {
		switch p.peek().Type {
		case token.VAR:
			init = p.parseVarDecl(false) // parseVarDecl 消费分号
		case token.CONST:
			init = p.parseVarDecl(true)
		default:
			expr := p.parseExpression()
			if !p.panicMode {
				init = &ast.ExprStmt{Expr: expr}
				p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectedToken, "';' after for initializer"))
			}
		}
		if p.panicMode {
			return nil
		}
	}

	// 条件子句
	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
		if p.panicMode {
			return nil
		}
	}
	p.consume(token.SEMICOLON, i18n.T(i18n.ErrExpectedToken, "';' after for condition"))
	if p.panicMode {
		return nil
	}

	// 更新子句
	var update ast.Expression
	if !p.check(token.RPAREN) {
		update = p.parseExpression()
		if p.panicMode {
			return nil
		}
	}
	p.consume(token.RPAREN, i18n.T(i18n.ErrExpectedToken, "')' after for clauses"))
	if p.panicMode {
		return nil
	}

	body, endTok := p.parseBlock()
	if p.panicMode {
		return nil
	}

	return &ast.ForStmt{
		Token:  forTok,
		Init:   init,
		Cond:   cond,
		Update: update,
		Body:   body,
		EndTok: endTok,
	}
}

// parseReturnStmt 解析 return 语句
func (p *Parser) parseReturnStmt() ast.Statement {
	returnTok := p.advance() // 消费 return

	var value ast.Expression
	if !p.check(token.SEMICOLON) && !p.check(token.RBRACE) && !p.isAtEnd() {
		value = p.parseExpression()
		if p.panicMode {
			return nil
		}
	}

	p.match(token.SEMICOLON)

	return &ast.ReturnStmt{
		Token: returnTok,
		Value: value,
	}
}

// parseExprStmt 解析表达式语句
func (p *Parser) parseExprStmt() ast.Statement {
	expr := p.parseExpression()
	if p.panicMode || expr == nil {
		return nil
	}
	p.match(token.SEMICOLON)
	return &ast.ExprStmt{Expr: expr}
}

// ============================================================================
// 表达式解析（优先级爬升）
// ============================================================================

// 优先级常量，从低到高
const (
	PREC_NONE       = iota
	PREC_ASSIGNMENT // =
	PREC_OR         // ||
	PREC_AND        // &&
	PREC_EQUALITY   // ==, !=
	PREC_COMPARISON // <, >, <=, >=
	PREC_TERM       // +, -
	PREC_FACTOR     // *, /, %
	PREC_UNARY      // !, -
	PREC_POSTFIX    // [], (), .
	PREC_PRIMARY
)

func (p *Parser) getPrecedence(t token.TokenType) int {
	switch t {
	case token.ASSIGN:
		return PREC_ASSIGNMENT
	case token.OR:
		return PREC_OR
	case token.AND:
		return PREC_AND
	case token.EQ, token.NE:
		return PREC_EQUALITY
	case token.LT, token.LE, token.GT, token.GE:
		return PREC_COMPARISON
	case token.PLUS, token.MINUS:
		return PREC_TERM
	case token.STAR, token.SLASH, token.PERCENT:
		return PREC_FACTOR
	case token.LBRACKET, token.LPAREN, token.DOT:
		return PREC_POSTFIX
	default:
		return PREC_NONE
	}
}

func (p *Parser) parseExpression() ast.Expression {
	// 检查递归深度，防止栈溢出
	p.exprDepth++
	if p.exprDepth > maxExprDepth {
		p.errorCode(errors.P0007, i18n.T(i18n.ErrExprTooDeep))
		p.panicMode = true
		p.exprDepth--
		return nil
	}
	defer func() { p.exprDepth-- }()

	return p.parsePrecedence(PREC_ASSIGNMENT)
}

func (p *Parser) parsePrecedence(precedence int) ast.Expression {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for precedence <= p.getPrecedence(p.peek().Type) && !p.panicMode {
		left = p.parseInfixExpr(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parsePrefixExpr() ast.Expression {
	switch p.peek().Type {
	case token.NUMBER:
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: tok.Value.(float64)}
	case token.STRING:
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: tok.Value.(string)}
	case token.TRUE:
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: true}
	case token.FALSE:
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: false}
	case token.NULL:
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: nil}
	case token.IDENT:
		tok := p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.LPAREN:
		return p.parseGroupExpr()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.NOT, token.MINUS:
		return p.parseUnaryExpr()
	case token.JSX_OPEN:
		return p.parseJSXElement()
	default:
		p.error(i18n.T(i18n.ErrExpectedExpression))
		p.panicMode = true
		p.advance() // 跳过无效 token，防止无限循环
		return nil
	}
}

func (p *Parser) parseInfixExpr(left ast.Expression) ast.Expression {
	switch p.peek().Type {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE,
		token.AND, token.OR:
		return p.parseBinaryExpr(left)
	case token.ASSIGN:
		return p.parseAssignExpr(left)
	case token.LBRACKET:
		return p.parseIndexExpr(left)
	case token.LPAREN:
		return p.parseCallExpr(left)
	case token.DOT:
		return p.parsePropertyAccess(left)
	default:
		return left
	}
}

func (p *Parser) parseGroupExpr() ast.Expression {
	p.advance() // 消费 (
	expr := p.parseExpression()
	if p.panicMode {
		return nil
	}
	p.consume(token.RPAREN, i18n.T(i18n.ErrExpectedToken, "')' after expression"))
	return expr
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	op := p.advance()
	operand := p.parsePrecedence(PREC_UNARY)
	if operand == nil {
		return nil
	}

	// 一元形式：Left 为 nil
	return &ast.BinaryExpr{
		Left:  nil,
		Op:    op.Literal,
		OpTok: op,
		Right: operand,
	}
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	op := p.advance()
	prec := p.getPrecedence(op.Type)
	right := p.parsePrecedence(prec + 1)
	if right == nil {
		return nil
	}

	return &ast.BinaryExpr{
		Left:  left,
		Op:    op.Literal,
		OpTok: op,
		Right: right,
	}
}

// parseAssignExpr 解析赋值表达式（右结合）
func (p *Parser) parseAssignExpr(left ast.Expression) ast.Expression {
	if !isValidAssignTarget(left) {
		p.errorCode(errors.P0003, i18n.T(i18n.ErrInvalidAssignTarget))
	}

	op := p.advance()
	right := p.parsePrecedence(PREC_ASSIGNMENT)
	if right == nil {
		return nil
	}

	return &ast.AssignExpr{
		Target: left,
		Token:  op,
		Value:  right,
	}
}

// isValidAssignTarget 检查表达式是否是有效的赋值目标
func isValidAssignTarget(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		return true // x = ...
	case *ast.PropertyAccess:
		return true // obj.prop = ...
	case *ast.BinaryExpr:
		return e.Op == "[]" // arr[0] = ...
	default:
		return false
	}
}

// parseIndexExpr 解析下标表达式，作为 Op 为 "[]" 的二元形式
func (p *Parser) parseIndexExpr(left ast.Expression) ast.Expression {
	lbracket := p.advance() // 消费 [
	index := p.parseExpression()
	if p.panicMode {
		return nil
	}
	p.consume(token.RBRACKET, i18n.T(i18n.ErrExpectedToken, "']' after index"))
	if p.panicMode {
		return nil
	}

	return &ast.BinaryExpr{
		Left:  left,
		Op:    "[]",
		OpTok: lbracket,
		Right: index,
	}
}

func (p *Parser) parseCallExpr(left ast.Expression) ast.Expression {
	lparen := p.advance() // 消费 (

	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			arg := p.parseExpression()
			if p.panicMode {
				return nil
			}
			args = append(args, arg)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	rparen := p.consume(token.RPAREN, i18n.T(i18n.ErrExpectedToken, "')' after arguments"))
	if p.panicMode {
		return nil
	}

	return &ast.CallExpr{
		Callee: left,
		LParen: lparen,
		Args:   args,
		RParen: rparen,
	}
}

func (p *Parser) parsePropertyAccess(left ast.Expression) ast.Expression {
	dotTok := p.advance() // 消费 .

	nameTok := p.consume(token.IDENT, i18n.T(i18n.ErrExpectedToken, "property name after '.'"))
	if p.panicMode {
		return nil
	}

	return &ast.PropertyAccess{
		Object:  left,
		DotTok:  dotTok,
		Name:    nameTok.Literal,
		NameTok: nameTok,
	}
}

// parseArrayLiteral 解析数组字面量 [1, 2, 3]
func (p *Parser) parseArrayLiteral() ast.Expression {
	lbracket := p.advance() // 消费 [

	var elements []ast.Expression
	if !p.check(token.RBRACKET) {
		for {
			el := p.parseExpression()
			if p.panicMode {
				return nil
			}
			elements = append(elements, el)

			if !p.match(token.COMMA) {
				break
			}
			// 允许尾随逗号
			if p.check(token.RBRACKET) {
				break
			}
		}
	}

	rbracket := p.consume(token.RBRACKET, i18n.T(i18n.ErrExpectedToken, "']' after array elements"))
	if p.panicMode {
		return nil
	}

	return &ast.ArrayLiteral{
		LBracket: lbracket,
		Elements: elements,
		RBracket: rbracket,
	}
}

// parseObjectLiteral 解析对象字面量 { a: 1, "b": 2 }
//
// 键是标识符或字符串字面量，保持书写顺序。
func (p *Parser) parseObjectLiteral() ast.Expression {
	lbrace := p.advance() // 消费 {

	var fields []ast.ObjectField
	if !p.check(token.RBRACE) {
		for {
			var key string
			switch p.peek().Type {
			case token.IDENT:
				key = p.advance().Literal
			case token.STRING:
				tok := p.advance()
				key, _ = tok.Value.(string)
			default:
				p.errorCode(errors.P0002, i18n.T(i18n.ErrExpectedToken, "property key"))
				p.panicMode = true
				return nil
			}

			p.consume(token.COLON, i18n.T(i18n.ErrExpectedToken, "':' after property key"))
			if p.panicMode {
				return nil
			}

			value := p.parseExpression()
			if p.panicMode {
				return nil
			}

			fields = append(fields, ast.ObjectField{Key: key, Value: value})

			if !p.match(token.COMMA) {
				break
			}
			// 允许尾随逗号
			if p.check(token.RBRACE) {
				break
			}
		}
	}

	rbrace := p.consume(token.RBRACE, i18n.T(i18n.ErrExpectedToken, "'}' after object fields"))
	if p.panicMode {
		return nil
	}

	return &ast.ObjectLiteral{
		LBrace: lbrace,
		Fields: fields,
		RBrace: rbrace,
	}
}

// ============================================================================
// JSX 解析
// ============================================================================

// parseJSXElement 解析 JSX 元素
//
// 词法分析器已经切好了 JSX_OPEN / JSX_END / JSX_SELF_CLOSE / JSX_CLOSE，
// 解析器只需按结构组装并校验结束标签匹配。
func (p *Parser) parseJSXElement() ast.Expression {
	openTok := p.advance() // 消费 JSX_OPEN，Literal 为标签名
	tag := openTok.Literal

	// 属性列表
	var attrs []ast.JSXAttr
	for p.check(token.IDENT) {
		nameTok := p.advance()
		attr := ast.JSXAttr{Name: nameTok.Literal, NameTok: nameTok}

		if p.match(token.ASSIGN) {
			switch p.peek().Type {
			case token.STRING:
				tok := p.advance()
				attr.Value = &ast.Literal{Token: tok, Value: tok.Value.(string)}
			case token.LBRACE:
				p.advance() // 消费 {
				attr.Value = p.parseExpression()
				if p.panicMode {
					return nil
				}
				p.consume(token.RBRACE, i18n.T(i18n.ErrExpectedToken, "'}' after attribute expression"))
				if p.panicMode {
					return nil
				}
			default:
				p.errorCode(errors.P0002, i18n.T(i18n.ErrExpectedToken, "attribute value"))
				p.panicMode = true
				return nil
			}
		}
		// 无 = 号：裸布尔标志，Value 保持 nil

		attrs = append(attrs, attr)
	}

	// 自闭合元素
	if p.check(token.JSX_SELF_CLOSE) {
		closeTok := p.advance()
		return &ast.JSXElement{
			OpenTok:   openTok,
			Tag:       tag,
			Attrs:     attrs,
			SelfClose: true,
			CloseTok:  closeTok,
		}
	}

	p.consume(token.JSX_END, i18n.T(i18n.ErrExpectedToken, "'>' or '/>' in tag"))
	if p.panicMode {
		return nil
	}

	// 子节点：字符串字面量、嵌套元素、花括号表达式
	var children []ast.Expression
	for !p.check(token.JSX_CLOSE) && !p.isAtEnd() {
		switch p.peek().Type {
		case token.STRING:
			tok := p.advance()
			children = append(children, &ast.Literal{Token: tok, Value: tok.Value.(string)})
		case token.JSX_OPEN:
			child := p.parseJSXElement()
			if p.panicMode {
				return nil
			}
			children = append(children, child)
		case token.LBRACE:
			p.advance() // 消费 {
			child := p.parseExpression()
			if p.panicMode {
				return nil
			}
			p.consume(token.RBRACE, i18n.T(i18n.ErrExpectedToken, "'}' after child expression"))
			if p.panicMode {
				return nil
			}
			children = append(children, child)
		default:
			p.error(i18n.T(i18n.ErrUnexpectedToken, p.peek().Type))
			p.panicMode = true
			return nil
		}
	}

	closeTok := p.consume(token.JSX_CLOSE, i18n.T(i18n.ErrExpectedToken, "closing tag"))
	if p.panicMode {
		return nil
	}

	// 结束标签必须与开始标签匹配
	if closeTok.Literal != tag {
		p.errorCode(errors.P0006, i18n.T(i18n.ErrMismatchedJSXClose, tag, closeTok.Literal))
	}

	return &ast.JSXElement{
		OpenTok:  openTok,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
		CloseTok: closeTok,
	}
}
