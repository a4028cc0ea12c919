package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/phixeo/phixeo/internal/lsp"
	"github.com/phixeo/phixeo/internal/runtime"
)

func main() {
	// 解析命令行参数
	showVersion := flag.Bool("version", false, "show version information")
	showHelp := flag.Bool("help", false, "show help message")
	logFile := flag.String("log", "", "log file path (no logging by default)")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Phixeo Language Server v%s\n", runtime.Version)
		os.Exit(0)
	}

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// 创建并启动 LSP 服务器
	server := lsp.NewServer(*logFile)
	ctx := context.Background()

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Phixeo Language Server")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  phixls [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version    show version information")
	fmt.Println("  --help       show help message")
	fmt.Println("  --log <file> log file path")
	fmt.Println()
	fmt.Println("The server communicates with editors over stdin/stdout.")
}
