package errors

import (
	"os"
	"runtime"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBoldRed
	ColorBoldYellow
	ColorBoldCyan
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:      "\033[0m",
	ColorRed:        "\033[31m",
	ColorGreen:      "\033[32m",
	ColorYellow:     "\033[33m",
	ColorBlue:       "\033[34m",
	ColorCyan:       "\033[36m",
	ColorBoldRed:    "\033[1;31m",
	ColorBoldYellow: "\033[1;33m",
	ColorBoldCyan:   "\033[1;36m",
}

// colorsEnabled 是否启用颜色
var colorsEnabled = detectColorSupport()

// detectColorSupport 检测终端是否支持颜色
func detectColorSupport() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Windows 10 1511+ 支持 ANSI，通过 TERM 粗略判断
	if runtime.GOOS == "windows" {
		term := os.Getenv("TERM")
		return term != "" && term != "dumb"
	}

	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// SetColorsEnabled 强制开关颜色（用于测试和非 TTY 输出）
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// paint 给文本着色
func paint(text string, color Color) string {
	if !colorsEnabled || color == ColorReset {
		return text
	}
	return ansiCodes[color] + text + ansiCodes[ColorReset]
}
