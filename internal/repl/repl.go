// repl.go - Phixeo REPL (Read-Eval-Print Loop)
//
// 提供交互式命令行界面，支持：
// - 多行输入（检测未闭合的括号）
// - 行编辑与历史记录
// - 特殊命令（:help, :quit, :reset, :load, :modules）
// - 自动打印表达式结果
// - 错误友好显示

package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/interp"
	"github.com/phixeo/phixeo/internal/pkg"
	"github.com/phixeo/phixeo/internal/runtime"
)

// historyFile 历史记录文件名（位于用户主目录）
const historyFile = ".phixeo_history"

// REPL 交互式解释器
type REPL struct {
	interp         *interp.Interp
	line           *liner.State
	writer         io.Writer
	reporter       *errors.Reporter
	config         *pkg.Config
	inputCount     int // 交互输入的序号，用于错误报告中的伪文件名
	promptPrimary  string
	promptContinue string
}

// New 创建 REPL
//
// config 为 nil 时使用默认配置。
func New(config *pkg.Config) *REPL {
	if config == nil {
		config = pkg.GenerateDefault()
	}

	r := &REPL{
		interp:         newInterp(config),
		writer:         os.Stdout,
		reporter:       errors.NewReporter(),
		config:         config,
		promptPrimary:  config.Repl.Prompt,
		promptContinue: config.Repl.Continue,
	}
	if r.promptPrimary == "" {
		r.promptPrimary = "phx> "
	}
	if r.promptContinue == "" {
		r.promptContinue = "...> "
	}
	return r
}

func newInterp(config *pkg.Config) *interp.Interp {
	i := interp.New()
	i.SetMaxSteps(config.Sandbox.MaxSteps)
	i.DisableModules(config.Modules.Disabled)
	return i
}

// Run 运行 REPL，直到 EOF 或 :quit
func (r *REPL) Run() {
	r.printWelcome()

	r.line = liner.NewLiner()
	r.line.SetCtrlCAborts(true)
	defer r.line.Close()

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = r.line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = r.line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, ok := r.readInput()
		if !ok {
			fmt.Fprintln(r.writer, "\nBye!")
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		// 处理特殊命令
		if strings.HasPrefix(trimmed, ":") {
			if r.handleCommand(trimmed) {
				return
			}
			continue
		}

		r.line.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		r.execute(input)
	}
}

// readInput 读取一条完整输入
//
// 括号未闭合时继续以续行提示符读取下一行。返回 false 表示 EOF。
func (r *REPL) readInput() (string, bool) {
	var b strings.Builder

	for {
		prompt := r.promptPrimary
		if b.Len() > 0 {
			prompt = r.promptContinue
		}

		line, err := r.line.Prompt(prompt)
		if err == io.EOF {
			return "", false
		}
		if err == liner.ErrPromptAborted {
			// Ctrl-C 丢弃当前输入
			return "", true
		}
		if err != nil {
			fmt.Fprintf(r.writer, "Error reading input: %v\n", err)
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// printWelcome 打印欢迎信息
func (r *REPL) printWelcome() {
	fmt.Fprintf(r.writer, "Phixeo REPL v%s\n", runtime.Version)
	fmt.Fprintln(r.writer, "Type :help for help, :quit to exit")
	fmt.Fprintln(r.writer)
}

// handleCommand 处理特殊命令，返回 true 表示退出 REPL
func (r *REPL) handleCommand(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case ":help", ":h", ":?":
		r.printHelp()

	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.writer, "Bye!")
		return true

	case ":reset", ":clear":
		r.interp = newInterp(r.config)
		fmt.Fprintln(r.writer, "Environment reset.")

	case ":load", ":l":
		if len(args) < 1 {
			fmt.Fprintln(r.writer, "Usage: :load <filename>")
			return false
		}
		r.loadFile(args[0])

	case ":modules":
		fmt.Fprintln(r.writer, "Standard modules: system, math, geometry, neural, ui,")
		fmt.Fprintln(r.writer, "                  animation, fractal, optimization, data")
		fmt.Fprintln(r.writer, "Import with: import \"std:<name>\"")

	default:
		fmt.Fprintf(r.writer, "Unknown command: %s\n", cmd)
		fmt.Fprintln(r.writer, "Type :help for available commands.")
	}
	return false
}

// printHelp 打印帮助信息
func (r *REPL) printHelp() {
	fmt.Fprintln(r.writer, "Available commands:")
	fmt.Fprintln(r.writer, "  :help, :h, :?     Show this help message")
	fmt.Fprintln(r.writer, "  :quit, :q, :exit  Exit the REPL")
	fmt.Fprintln(r.writer, "  :reset, :clear    Reset the environment")
	fmt.Fprintln(r.writer, "  :load <file>      Load and execute a file")
	fmt.Fprintln(r.writer, "  :modules          List standard library modules")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Multi-line input:")
	fmt.Fprintln(r.writer, "  Unfinished expressions (open brackets/parens)")
	fmt.Fprintln(r.writer, "  will continue on the next line.")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Examples:")
	fmt.Fprintln(r.writer, "  phx> var x = 10")
	fmt.Fprintln(r.writer, "  phx> print(x * 2)")
	fmt.Fprintln(r.writer, "  phx> func add(a, b) {")
	fmt.Fprintln(r.writer, "  ...>   return a + b")
	fmt.Fprintln(r.writer, "  ...> }")
}

// loadFile 加载并执行文件
func (r *REPL) loadFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(r.writer, "Error loading file: %v\n", err)
		return
	}

	r.reporter.SetSource(filename, string(source))
	result, runErr := r.interp.Run(string(source), filename)
	if runErr != nil {
		r.reportError(runErr)
		return
	}
	for _, l := range result.Output {
		fmt.Fprintln(r.writer, l)
	}
	fmt.Fprintf(r.writer, "Loaded: %s\n", filename)
}

// execute 执行一条输入并打印输出与结果值
func (r *REPL) execute(input string) {
	r.inputCount++
	name := fmt.Sprintf("<repl:%d>", r.inputCount)
	r.reporter.SetSource(name, input)

	result, err := r.interp.Run(input, name)
	if err != nil {
		r.reportError(err)
		return
	}

	for _, l := range result.Output {
		fmt.Fprintln(r.writer, l)
	}
	if !result.Value.IsNull() {
		fmt.Fprintln(r.writer, result.Value.String())
	}
}

func (r *REPL) reportError(err error) {
	if se, ok := errors.AsScriptError(err); ok {
		r.reporter.Report(se)
		return
	}
	fmt.Fprintf(r.writer, "Error: %v\n", err)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

// needsMoreInput 检查输入是否还有未闭合的括号
//
// 字符串字面量和注释中的括号不计入深度。
func needsMoreInput(input string) bool {
	depth := 0
	inString := false
	stringChar := byte(0)
	escaped := false
	inLineComment := false
	inBlockComment := false

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inLineComment {
			if ch == '\n' {
				inLineComment = false
			}
			continue
		}
		if inBlockComment {
			if ch == '*' && i+1 < len(input) && input[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}

		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				escaped = true
			case stringChar:
				inString = false
			case '\n':
				inString = false // 未闭合的字符串交给词法分析器报错
			}
			continue
		}

		switch ch {
		case '"', '\'':
			inString = true
			stringChar = ch
		case '/':
			if i+1 < len(input) {
				switch input[i+1] {
				case '/':
					inLineComment = true
					i++
				case '*':
					inBlockComment = true
					i++
				}
			}
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
	}

	return depth > 0
}
