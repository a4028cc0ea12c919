package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ============================================================================
// 错误报告器
// ============================================================================
//
// Reporter 缓存源代码并把 ScriptError 渲染到输出流。
// CLI 和 REPL 共用一个实例；宿主编辑器走 LSP 诊断通道，不经过这里。
//
// ============================================================================

// Reporter 错误报告器
type Reporter struct {
	formatter   *Formatter
	sourceCache map[string][]string // 文件名 -> 按行分割的源代码
	out         io.Writer
}

// NewReporter 创建错误报告器
func NewReporter() *Reporter {
	return &Reporter{
		formatter:   NewFormatter(),
		sourceCache: make(map[string][]string),
		out:         os.Stderr,
	}
}

// SetOutput 设置输出流
func (r *Reporter) SetOutput(w io.Writer) {
	r.out = w
}

// SetFormatter 设置格式化器
func (r *Reporter) SetFormatter(f *Formatter) {
	r.formatter = f
}

// SetSource 登记源代码（来自编辑器缓冲区或文件内容）
func (r *Reporter) SetSource(filename, content string) {
	r.sourceCache[filename] = strings.Split(content, "\n")
}

// LoadSource 从磁盘加载源文件
func (r *Reporter) LoadSource(filename string) error {
	if _, ok := r.sourceCache[filename]; ok {
		return nil // 已加载
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	r.sourceCache[filename] = strings.Split(string(data), "\n")
	return nil
}

// Report 渲染并输出一个错误
func (r *Reporter) Report(err *ScriptError) {
	lines := r.sourceCache[err.Pos.Filename]
	fmt.Fprint(r.out, r.formatter.Format(err, lines))
}

// ReportAll 渲染并输出一组错误
func (r *Reporter) ReportAll(errs []*ScriptError) {
	for _, e := range errs {
		r.Report(e)
	}
}
