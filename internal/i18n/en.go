package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrUnexpectedChar:      "unexpected character '%c'",
	ErrUnterminatedString:  "unterminated string",
	ErrUnterminatedComment: "unterminated block comment",
	ErrInvalidNumber:       "invalid number: %s",
	ErrInvalidExponent:     "invalid number: expected exponent",
	ErrExpectedJSXTagName:  "expected tag name after '<'",
	ErrUnterminatedJSX:     "unterminated JSX element",

	// ========== Parser ==========
	ErrUnexpectedToken:     "unexpected token: %s",
	ErrExpectedToken:       "expected %s",
	ErrExpectedExpression:  "expected expression",
	ErrExpectedName:        "expected %s name",
	ErrExpectedParamName:   "expected parameter name",
	ErrInvalidAssignTarget: "invalid assignment target",
	ErrInvalidClassMember:  "only variable and function declarations are allowed in a %s body",
	ErrComponentNoRender:   "component '%s' is missing a render method",
	ErrMismatchedJSXClose:  "mismatched closing tag: expected </%s> but got </%s>",
	ErrTooManyErrors:       "too many errors, aborting",
	ErrExprTooDeep:         "expression too deeply nested",

	// ========== Runtime ==========
	ErrUndefinedVariable: "undefined variable '%s'",
	ErrUndefinedFunction: "undefined function '%s'",
	ErrNullProperty:      "cannot read property '%s' of null",
	ErrUnknownProperty:   "property '%s' does not exist on %s",
	ErrNotCallable:       "'%s' is not callable",
	ErrBadOperands:       "operator '%s' cannot be applied to %s and %s",
	ErrBadIndex:          "subscript operator requires an array, object or string",
	ErrDivisionByZero:    "division by zero",
	ErrUnknownNode:       "internal error: unknown AST node %T",
	ErrStepBudget:        "execution step budget exceeded (%d steps)",
	ErrUnknownComponent:  "undefined component '%s'",
	ErrAssignConst:       "cannot assign to constant '%s'",

	// ========== Modules ==========
	ErrModuleArgType: "%s: argument %d must be %s",
}
