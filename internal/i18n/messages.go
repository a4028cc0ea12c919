package i18n

// ============================================================================
// 消息 ID 常量
// ============================================================================
//
// 所有面向用户的消息通过 T(msgID, args...) 取得当前语言的文本。
// 按子系统分组：词法 / 语法 / 运行时 / 模块。
//
// ============================================================================

const (
	// ========== 词法分析器 ==========
	ErrUnexpectedChar      = "lex.unexpected_char"       // 意外字符
	ErrUnterminatedString  = "lex.unterminated_string"   // 未闭合的字符串
	ErrUnterminatedComment = "lex.unterminated_comment"  // 未闭合的块注释
	ErrInvalidNumber       = "lex.invalid_number"        // 无效的数字
	ErrInvalidExponent     = "lex.invalid_exponent"      // 无效的指数
	ErrExpectedJSXTagName  = "lex.expected_jsx_tag_name" // < 后需要标签名
	ErrUnterminatedJSX     = "lex.unterminated_jsx"      // 未闭合的 JSX 标签

	// ========== 语法分析器 ==========
	ErrUnexpectedToken     = "parse.unexpected_token"      // 意外的符号
	ErrExpectedToken       = "parse.expected_token"        // 需要某符号
	ErrExpectedExpression  = "parse.expected_expression"   // 需要表达式
	ErrExpectedName        = "parse.expected_name"         // 需要名称
	ErrExpectedParamName   = "parse.expected_param_name"   // 需要参数名
	ErrInvalidAssignTarget = "parse.invalid_assign_target" // 无效的赋值目标
	ErrInvalidClassMember  = "parse.invalid_class_member"  // 类成员只能是变量或函数
	ErrComponentNoRender   = "parse.component_no_render"   // 组件缺少 render 方法
	ErrMismatchedJSXClose  = "parse.mismatched_jsx_close"  // JSX 结束标签不匹配
	ErrTooManyErrors       = "parse.too_many_errors"       // 错误过多
	ErrExprTooDeep         = "parse.expr_too_deep"         // 表达式嵌套过深

	// ========== 运行时 ==========
	ErrUndefinedVariable = "run.undefined_variable" // 未定义的变量
	ErrUndefinedFunction = "run.undefined_function" // 未定义的函数
	ErrNullProperty      = "run.null_property"      // 对 null 访问属性
	ErrUnknownProperty   = "run.unknown_property"   // 属性不存在
	ErrNotCallable       = "run.not_callable"       // 不可调用
	ErrBadOperands       = "run.bad_operands"       // 运算符操作数类型错误
	ErrBadIndex          = "run.bad_index"          // 下标目标类型错误
	ErrDivisionByZero    = "run.division_by_zero"   // 除以零
	ErrUnknownNode       = "run.unknown_node"       // 未知 AST 节点（内部错误）
	ErrStepBudget        = "run.step_budget"        // 超出执行步数预算
	ErrUnknownComponent  = "run.unknown_component"  // 未定义的组件
	ErrAssignConst       = "run.assign_const"        // 给常量赋值

	// ========== 模块 ==========
	ErrModuleArgType = "mod.arg_type" // 模块函数参数类型错误
)
