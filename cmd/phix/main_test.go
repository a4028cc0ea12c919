package main

import (
	"strings"
	"testing"

	"github.com/phixeo/phixeo/internal/interp"
)

func TestPrintRunResult(t *testing.T) {
	i := interp.New()

	// 控制台输出在前，结果值在后
	result, err := i.Run(`
		print("a")
		print("b")
		1 + 2
	`, "test.phx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf strings.Builder
	printRunResult(&buf, result)
	if buf.String() != "a\nb\n3\n" {
		t.Errorf("unexpected run output %q", buf.String())
	}

	// 结果为 null 时不额外打印
	result, err = i.Run(`print("only")`, "test.phx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf.Reset()
	printRunResult(&buf, result)
	if buf.String() != "only\n" {
		t.Errorf("unexpected run output %q", buf.String())
	}
}
