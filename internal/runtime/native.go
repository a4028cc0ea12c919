package runtime

import (
	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/i18n"
	"github.com/phixeo/phixeo/internal/token"
)

// ============================================================================
// Native 参数检查辅助
// ============================================================================

// argNumber 取第 i 个参数并要求是数字
func argNumber(fnName string, args []Value, i int) (float64, error) {
	if i >= len(args) || args[i].Type != ValNumber {
		return 0, errors.New(errors.KindProperty, errors.R0008, token.Position{},
			i18n.T(i18n.ErrModuleArgType, fnName, i+1, "a number"))
	}
	return args[i].Data.(float64), nil
}

// argString 取第 i 个参数并要求是字符串
func argString(fnName string, args []Value, i int) (string, error) {
	if i >= len(args) || args[i].Type != ValString {
		return "", errors.New(errors.KindProperty, errors.R0008, token.Position{},
			i18n.T(i18n.ErrModuleArgType, fnName, i+1, "a string"))
	}
	return args[i].Data.(string), nil
}

// argArray 取第 i 个参数并要求是数组
func argArray(fnName string, args []Value, i int) (*Array, error) {
	if i >= len(args) || args[i].Type != ValArray {
		return nil, errors.New(errors.KindProperty, errors.R0008, token.Position{},
			i18n.T(i18n.ErrModuleArgType, fnName, i+1, "an array"))
	}
	return args[i].Data.(*Array), nil
}

// optNumber 取第 i 个可选数字参数，缺省时返回 def
func optNumber(args []Value, i int, def float64) float64 {
	if i < len(args) && args[i].Type == ValNumber {
		return args[i].Data.(float64)
	}
	return def
}
