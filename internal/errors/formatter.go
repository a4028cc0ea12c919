package errors

import (
	"fmt"
	"strings"
)

// ============================================================================
// 格式化器
// ============================================================================
//
// 输出风格：
//
//   LexError[L0001]: unexpected character '@'
//    --> widget.phx:3:7
//     |
//   3 | var x @ 1
//     |       ^
//
// ============================================================================

// Formatter 错误格式化器
type Formatter struct {
	Colors     bool // 是否使用颜色
	ShowSource bool // 是否显示源代码
	ShowHints  bool // 是否显示修复建议
	TabWidth   int  // Tab 宽度
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:     true,
		ShowSource: true,
		ShowHints:  true,
		TabWidth:   4,
	}
}

// Format 格式化脚本错误
//
// sourceLines 为出错文件按行分割的内容，可以为 nil（此时只输出头部）。
func (f *Formatter) Format(err *ScriptError, sourceLines []string) string {
	var sb strings.Builder

	// 错误头: LexError[L0001]: unexpected character '@'
	kindStr := f.colorize(err.Kind.String(), ColorBoldRed)
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), ColorBoldRed)
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", kindStr, codeStr, err.Message))

	if !err.Pos.IsValid() {
		return sb.String()
	}

	// 位置: --> widget.phx:3:7
	arrow := f.colorize("-->", ColorCyan)
	location := f.colorize(err.Pos.String(), ColorCyan)
	sb.WriteString(fmt.Sprintf(" %s %s\n", arrow, location))

	// 源代码行与插入符
	line := err.Pos.Line
	if f.ShowSource && line > 0 && line <= len(sourceLines) {
		sb.WriteString(f.formatSourceLine(sourceLines[line-1], line, err.Pos.Column))
	}

	// 修复建议
	if f.ShowHints {
		for _, hint := range err.Hints {
			hintLabel := f.colorize(" = help:", ColorCyan)
			sb.WriteString(fmt.Sprintf("%s %s\n", hintLabel, hint))
		}
	}

	return sb.String()
}

// formatSourceLine 渲染单行源代码与插入符
func (f *Formatter) formatSourceLine(source string, line, column int) string {
	var sb strings.Builder

	lineNum := fmt.Sprintf("%d", line)
	gutter := strings.Repeat(" ", len(lineNum))

	// Tab 展开，保证插入符列对齐
	expanded, caretCol := f.expandTabs(source, column)

	sb.WriteString(fmt.Sprintf(" %s %s\n", gutter, f.colorize("|", ColorCyan)))
	sb.WriteString(fmt.Sprintf(" %s %s %s\n", f.colorize(lineNum, ColorCyan), f.colorize("|", ColorCyan), expanded))

	if caretCol > 0 {
		caret := strings.Repeat(" ", caretCol-1) + "^"
		sb.WriteString(fmt.Sprintf(" %s %s %s\n", gutter, f.colorize("|", ColorCyan), f.colorize(caret, ColorBoldRed)))
	}

	return sb.String()
}

// expandTabs 将 Tab 展开为空格并换算插入符所在列
func (f *Formatter) expandTabs(source string, column int) (string, int) {
	var sb strings.Builder
	caretCol := 0
	col := 0

	for i, r := range source {
		if i == column-1 {
			caretCol = col + 1
		}
		if r == '\t' {
			spaces := f.TabWidth - col%f.TabWidth
			sb.WriteString(strings.Repeat(" ", spaces))
			col += spaces
		} else {
			sb.WriteRune(r)
			col++
		}
	}

	// 插入符在行尾之后（如 EOF 错误）
	if caretCol == 0 && column > 0 {
		caretCol = col + 1
	}

	return sb.String(), caretCol
}

// colorize 按格式化器设置着色
func (f *Formatter) colorize(text string, color Color) string {
	if !f.Colors {
		return text
	}
	return paint(text, color)
}
