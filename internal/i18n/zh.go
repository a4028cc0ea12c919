package i18n

var messagesZH = map[string]string{
	// ========== 词法分析器 ==========
	ErrUnexpectedChar:      "意外字符 '%c'",
	ErrUnterminatedString:  "未闭合的字符串",
	ErrUnterminatedComment: "未闭合的块注释",
	ErrInvalidNumber:       "无效的数字: %s",
	ErrInvalidExponent:     "无效的数字: 需要指数部分",
	ErrExpectedJSXTagName:  "'<' 后需要标签名",
	ErrUnterminatedJSX:     "未闭合的 JSX 元素",

	// ========== 语法分析器 ==========
	ErrUnexpectedToken:     "意外的符号: %s",
	ErrExpectedToken:       "需要 %s",
	ErrExpectedExpression:  "需要表达式",
	ErrExpectedName:        "需要%s名",
	ErrExpectedParamName:   "需要参数名",
	ErrInvalidAssignTarget: "无效的赋值目标",
	ErrInvalidClassMember:  "%s 体内只允许变量或函数声明",
	ErrComponentNoRender:   "组件 '%s' 缺少 render 方法",
	ErrMismatchedJSXClose:  "结束标签不匹配: 需要 </%s> 但得到 </%s>",
	ErrTooManyErrors:       "错误过多，停止解析",
	ErrExprTooDeep:         "表达式嵌套过深",

	// ========== 运行时 ==========
	ErrUndefinedVariable: "未定义的变量 '%s'",
	ErrUndefinedFunction: "未定义的函数 '%s'",
	ErrNullProperty:      "不能读取 null 的属性 '%s'",
	ErrUnknownProperty:   "属性 '%s' 不存在于 %s",
	ErrNotCallable:       "'%s' 不可调用",
	ErrBadOperands:       "运算符 '%s' 不能应用于 %s 和 %s",
	ErrBadIndex:          "下标运算符需要数组、对象或字符串",
	ErrDivisionByZero:    "除以零",
	ErrUnknownNode:       "内部错误: 未知的 AST 节点 %T",
	ErrStepBudget:        "超出执行步数预算（%d 步）",
	ErrUnknownComponent:  "未定义的组件 '%s'",
	ErrAssignConst:       "不能给常量 '%s' 赋值",

	// ========== 模块 ==========
	ErrModuleArgType: "%s: 第 %d 个参数必须是 %s",
}
