package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phixeo/phixeo/internal/ast"
	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/i18n"
	"github.com/phixeo/phixeo/internal/interp"
	"github.com/phixeo/phixeo/internal/lexer"
	"github.com/phixeo/phixeo/internal/parser"
	"github.com/phixeo/phixeo/internal/pkg"
	"github.com/phixeo/phixeo/internal/repl"
	"github.com/phixeo/phixeo/internal/runtime"
)

// 全局语言参数
var globalLang string

func main() {
	// 预扫描全局参数 --lang 或 -lang
	args := preprocessArgs(os.Args[1:])

	if globalLang != "" {
		i18n.SetLanguageFromString(globalLang)
	}

	if len(args) < 1 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]

	switch command {
	case "run":
		cmdRun(args[1:])
	case "check":
		cmdCheck(args[1:])
	case "repl":
		cmdRepl(args[1:])
	case "init":
		cmdInit(args[1:])
	case "version", "-v", "--version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		// 兼容旧用法：直接运行文件
		if !isFlag(args[0]) {
			cmdRun(args)
		} else {
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
			printUsage()
			os.Exit(1)
		}
	}
}

// preprocessArgs 预处理参数，提取全局 --lang 参数
func preprocessArgs(args []string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--lang" || arg == "-lang" {
			if i+1 < len(args) {
				globalLang = args[i+1]
				i++ // 跳过下一个参数
				continue
			}
		} else if strings.HasPrefix(arg, "--lang=") {
			globalLang = strings.TrimPrefix(arg, "--lang=")
			continue
		} else if strings.HasPrefix(arg, "-lang=") {
			globalLang = strings.TrimPrefix(arg, "-lang=")
			continue
		}
		result = append(result, arg)
	}
	return result
}

func isFlag(s string) bool {
	return len(s) > 0 && s[0] == '-'
}

func printUsage() {
	fmt.Printf("Phixeo v%s\n\n", runtime.Version)
	fmt.Println("Usage:")
	fmt.Println("  phix [--lang en|zh] <command> [options] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run <file>      Run a Phixeo script")
	fmt.Println("  check <file>    Check a script for syntax errors")
	fmt.Println("  repl            Start an interactive session")
	fmt.Println("  init            Create a phixeo.toml in the current directory")
	fmt.Println("  version         Show version information")
	fmt.Println("  help            Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -tokens         Print the token stream instead of running")
	fmt.Println("  -ast            Print the syntax tree instead of running")
	fmt.Println("  --lang <en|zh>  Error message language")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  phix run main.phx")
	fmt.Println("  phix run -ast main.phx")
	fmt.Println("  phix check main.phx")
	fmt.Println("  phix repl")
}

// cmdRun 运行脚本
func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	showTokens := fs.Bool("tokens", false, "print the token stream instead of running")
	showAST := fs.Bool("ast", false, "print the syntax tree instead of running")

	fs.Usage = func() {
		fmt.Println("Usage: phix run [options] <file>")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "error: no input file")
		os.Exit(1)
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		os.Exit(1)
	}

	// 词法分析模式
	if *showTokens {
		runLexer(string(source), filename)
		return
	}

	// AST 模式
	if *showAST {
		runParser(string(source), filename, true)
		return
	}

	// 正常运行
	config := pkg.LoadForScript(filename)
	i := interp.New()
	i.SetMaxSteps(config.Sandbox.MaxSteps)
	i.DisableModules(config.Modules.Disabled)

	result, runErr := i.Run(string(source), filename)
	if runErr != nil {
		reportError(runErr, filename, string(source))
		os.Exit(1)
	}
	printRunResult(os.Stdout, result)
}

// printRunResult 打印一次运行的控制台输出，然后是非空的结果值
func printRunResult(w io.Writer, result *interp.Result) {
	for _, line := range result.Output {
		fmt.Fprintln(w, line)
	}
	if !result.Value.IsNull() {
		fmt.Fprintln(w, result.Value.String())
	}
}

// cmdCheck 语法检查
func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "print the syntax tree on success")

	fs.Usage = func() {
		fmt.Println("Usage: phix check [options] <file>")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "error: no input file")
		os.Exit(1)
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		os.Exit(1)
	}

	runParser(string(source), filename, *verbose)
}

// cmdRepl 启动交互式会话
func cmdRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Println("Usage: phix repl")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	var config *pkg.Config
	if path := pkg.FindConfigFile(dir); path != "" {
		config, err = pkg.LoadConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			config = pkg.GenerateDefault()
		}
	} else {
		config = pkg.GenerateDefault()
	}

	repl.New(config).Run()
}

// cmdInit 在当前目录创建配置文件
func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Println("Usage: phix init")
		fmt.Println()
		fmt.Println("Creates a default phixeo.toml in the current directory.")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	configPath := filepath.Join(dir, pkg.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(os.Stderr, "error: %s already exists\n", pkg.ConfigFileName)
		os.Exit(1)
	}

	config := pkg.GenerateDefault()
	if err := config.Save(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", pkg.ConfigFileName)
}

// cmdVersion 显示版本信息
func cmdVersion() {
	fmt.Printf("Phixeo v%s\n", runtime.Version)
	fmt.Println("An embeddable scripting language with JSX-style component literals.")
}

// runLexer 运行词法分析器
func runLexer(source, filename string) {
	l := lexer.New(source, filename)
	tokens := l.ScanTokens()

	fmt.Println("=== Tokens ===")
	for _, tok := range tokens {
		fmt.Printf("  %s\n", tok)
	}
	fmt.Println()

	if l.HasErrors() {
		fmt.Println("Lexical errors:")
		for _, e := range l.Errors() {
			fmt.Printf("  %s\n", e)
		}
		os.Exit(1)
	}
}

// runParser 运行解析器
func runParser(source, filename string, verbose bool) {
	p := parser.New(source, filename)
	program := p.Parse()

	if p.HasErrors() {
		fmt.Println("Syntax errors:")
		for _, e := range p.Errors() {
			fmt.Printf("  %s\n", e)
		}
		os.Exit(1)
	}

	if verbose {
		fmt.Println("=== AST ===")
		printAST(program)
		fmt.Println()
	}

	fmt.Printf("%s: syntax OK\n", filename)
	if verbose {
		fmt.Printf("  statements: %d\n", len(program.Statements))
		fmt.Printf("  nodes: %d\n", program.NodeCount())
	}
}

// printAST 打印 AST
func printAST(program *ast.Program) {
	for i, stmt := range program.Statements {
		fmt.Printf("  Statement[%d]: %s\n", i, stmt)
	}
}

// reportError 报告脚本错误
func reportError(err error, filename, source string) {
	if se, ok := errors.AsScriptError(err); ok {
		reporter := errors.NewReporter()
		reporter.SetSource(filename, source)
		reporter.Report(se)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
