package lsp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/phixeo/phixeo/internal/ast"
)

// keywordDocs 关键字悬停文档
var keywordDocs = map[string]string{
	"var":       "**var** — declares a mutable variable.\n\n```\nvar x = 10\n```",
	"const":     "**const** — declares a constant. Assigning to it is a runtime error.\n\n```\nconst phi = 1.618\n```",
	"func":      "**func** — declares a function.\n\n```\nfunc add(a, b) {\n  return a + b\n}\n```",
	"class":     "**class** — declares a class with properties and methods.\n\n```\nclass Point {\n  var x = 0\n  var y = 0\n}\n```",
	"component": "**component** — declares a UI component. Must define a `render` function.\n\n```\ncomponent Badge {\n  var propLabel = \"\"\n  func render() {\n    return <span>{label}</span>\n  }\n}\n```",
	"import":    "**import** — loads a standard library module.\n\n```\nimport \"std:math\"\nprint(math.pi)\n```",
	"if":        "**if** — conditional statement, with optional `else` and `else if`.",
	"else":      "**else** — alternative branch of an `if`.",
	"for":       "**for** — loop with init, condition and update clauses.\n\n```\nfor (var i = 0; i < 10; i = i + 1) { print(i) }\n```",
	"return":    "**return** — returns from the enclosing function.",
	"true":      "**true** — boolean literal.",
	"false":     "**false** — boolean literal.",
	"null":      "**null** — the absence of a value.",
}

// builtinDocs 内建函数悬停文档
var builtinDocs = map[string]string{
	"print": "**print(args...)** — writes its arguments, joined by spaces, to the output.",
	"log":   "**log(args...)** — same as `print`; writes its arguments to the output.",
}

// handleHover 处理悬停请求
func (s *Server) handleHover(id json.RawMessage, params json.RawMessage) {
	var p protocol.HoverParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, -32700, "Parse error")
		return
	}

	docURI := string(p.TextDocument.URI)
	doc := s.documents.Get(docURI)
	if doc == nil {
		s.sendResult(id, nil)
		return
	}

	line := int(p.Position.Line)
	character := int(p.Position.Character)

	hover := s.getHoverInfo(doc, line, character)
	if hover == nil {
		s.sendResult(id, nil)
		return
	}

	s.sendResult(id, hover)
}

// getHoverInfo 获取悬停信息
func (s *Server) getHoverInfo(doc *Document, line, character int) *protocol.Hover {
	word := doc.GetWordAt(line, character)
	if word == "" {
		return nil
	}

	var content string

	// 关键字
	if docStr, ok := keywordDocs[word]; ok {
		content = docStr
	}

	// 内建函数
	if content == "" {
		if docStr, ok := builtinDocs[word]; ok {
			content = docStr
		}
	}

	// 标准库模块（import "std:xxx" 后的绑定名）
	if content == "" {
		content = s.moduleHoverInfo(word)
	}

	// 文档内的顶层声明
	if content == "" {
		content = documentHoverInfo(doc, word)
	}

	if content == "" {
		return nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: content,
		},
	}
}

// moduleHoverInfo 标准库模块的悬停信息：导出成员列表
func (s *Server) moduleHoverInfo(word string) string {
	found := false
	for _, name := range s.registry.Names() {
		if name == word {
			found = true
			break
		}
	}
	if !found {
		return ""
	}

	mod := s.registry.Load("std:" + word)

	names := make([]string, 0, len(mod.Exports))
	for n := range mod.Exports {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "**module std:%s**\n\n", word)
	for _, n := range names {
		v := mod.Exports[n]
		fmt.Fprintf(&b, "- `%s.%s` (%s)\n", word, n, v.TypeName())
	}
	return b.String()
}

// documentHoverInfo 文档内顶层声明的悬停信息
func documentHoverInfo(doc *Document, word string) string {
	program := doc.GetProgram()
	if program == nil {
		return ""
	}

	for _, stmt := range program.Statements {
		switch d := stmt.(type) {
		case *ast.FuncDecl:
			if d.Name == word {
				names := make([]string, len(d.Params))
				for i, p := range d.Params {
					names[i] = p.Name
				}
				return fmt.Sprintf("```\nfunc %s(%s)\n```", d.Name, strings.Join(names, ", "))
			}
		case *ast.ClassDecl:
			if d.Name == word {
				return fmt.Sprintf("```\nclass %s\n```\n\n%d member(s)", d.Name, len(d.Members))
			}
		case *ast.ComponentDecl:
			if d.Name == word {
				return fmt.Sprintf("```\ncomponent %s\n```\n\n%d member(s)", d.Name, len(d.Members))
			}
		case *ast.VarDecl:
			if d.Name == word {
				kw := "var"
				if d.Const {
					kw = "const"
				}
				if d.Init != nil {
					return fmt.Sprintf("```\n%s %s = %s\n```", kw, d.Name, d.Init)
				}
				return fmt.Sprintf("```\n%s %s\n```", kw, d.Name)
			}
		}
	}
	return ""
}
