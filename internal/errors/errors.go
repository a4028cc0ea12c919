package errors

import (
	"fmt"

	"github.com/phixeo/phixeo/internal/token"
)

// ============================================================================
// ScriptError - 语言核心的统一错误载体
// ============================================================================
//
// 词法、语法和求值阶段的所有失败都用 ScriptError 表达。
// Pos 在可用时携带行列信息（求值期间部分节点没有精确位置，此时 Pos 无效）。
//
// ============================================================================

// ScriptError 脚本错误
type ScriptError struct {
	Kind    Kind           // 错误类别
	Code    string         // 错误码 (如 P0004)
	Pos     token.Position // 位置（可能无效）
	Message string         // 主消息
	Hints   []string       // 修复建议（可选）
}

// Error 实现 error 接口
func (e *ScriptError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New 创建一个脚本错误
func New(kind Kind, code string, pos token.Position, message string) *ScriptError {
	return &ScriptError{
		Kind:    kind,
		Code:    code,
		Pos:     pos,
		Message: message,
	}
}

// NewLex 创建词法错误
func NewLex(code string, pos token.Position, message string) *ScriptError {
	return New(KindLex, code, pos, message)
}

// NewParse 创建语法错误
func NewParse(code string, pos token.Position, message string) *ScriptError {
	return New(KindParse, code, pos, message)
}

// NewName 创建名称错误
func NewName(code string, pos token.Position, message string) *ScriptError {
	return New(KindName, code, pos, message)
}

// NewProperty 创建属性错误
func NewProperty(code string, pos token.Position, message string) *ScriptError {
	return New(KindProperty, code, pos, message)
}

// NewInternal 创建内部错误
//
// 内部错误表示解析器与求值器之间的节点集合不一致，理应不可达。
func NewInternal(message string) *ScriptError {
	return New(KindInternal, X0001, token.Position{}, message)
}

// WithHint 追加一条修复建议
func (e *ScriptError) WithHint(hint string) *ScriptError {
	e.Hints = append(e.Hints, hint)
	return e
}

// AsScriptError 尝试将 error 还原为 ScriptError
func AsScriptError(err error) (*ScriptError, bool) {
	se, ok := err.(*ScriptError)
	return se, ok
}
