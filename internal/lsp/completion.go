package lsp

import (
	"encoding/json"
	"sort"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/phixeo/phixeo/internal/ast"
)

// keywords 语言关键字补全列表
var keywords = []string{
	"var", "const", "func", "class", "component",
	"import", "if", "else", "for", "return",
	"true", "false", "null",
}

// handleCompletion 处理补全请求
func (s *Server) handleCompletion(id json.RawMessage, params json.RawMessage) {
	var p protocol.CompletionParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, -32700, "Parse error")
		return
	}

	docURI := string(p.TextDocument.URI)
	doc := s.documents.Get(docURI)
	if doc == nil {
		s.sendResult(id, []protocol.CompletionItem{})
		return
	}

	line := int(p.Position.Line)
	character := int(p.Position.Character)

	items := s.getCompletions(doc, line, character)
	s.sendResult(id, protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	})
}

// getCompletions 获取补全列表
func (s *Server) getCompletions(doc *Document, line, character int) []protocol.CompletionItem {
	lineText := doc.GetLine(line)
	if character > len(lineText) {
		character = len(lineText)
	}
	before := lineText[:character]

	// import 路径内：补全标准库模块名
	if inImportPath(before) {
		return s.moduleCompletions()
	}

	// 模块成员访问：math.xxx
	if modName, ok := memberAccessTarget(before); ok {
		if items := s.exportCompletions(modName); items != nil {
			return items
		}
		// 不是模块名的成员访问不做猜测
		return nil
	}

	var items []protocol.CompletionItem

	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  protocol.CompletionItemKindKeyword,
		})
	}

	for name, docStr := range builtinDocs {
		items = append(items, protocol.CompletionItem{
			Label:         name,
			Kind:          protocol.CompletionItemKindFunction,
			Documentation: docStr,
		})
	}

	items = append(items, documentCompletions(doc)...)

	return items
}

// moduleCompletions 标准库模块名补全
func (s *Server) moduleCompletions() []protocol.CompletionItem {
	names := s.registry.Names()
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, protocol.CompletionItem{
			Label:  "std:" + name,
			Kind:   protocol.CompletionItemKindModule,
			Detail: "standard library module",
		})
	}
	return items
}

// exportCompletions 模块导出成员补全
func (s *Server) exportCompletions(modName string) []protocol.CompletionItem {
	found := false
	for _, name := range s.registry.Names() {
		if name == modName {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	mod := s.registry.Load("std:" + modName)

	names := make([]string, 0, len(mod.Exports))
	for n := range mod.Exports {
		names = append(names, n)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, n := range names {
		items = append(items, protocol.CompletionItem{
			Label:  n,
			Kind:   exportKind(mod.Exports[n].TypeName()),
			Detail: mod.Exports[n].TypeName(),
		})
	}
	return items
}

func exportKind(typeName string) protocol.CompletionItemKind {
	if typeName == "native" || typeName == "function" {
		return protocol.CompletionItemKindFunction
	}
	return protocol.CompletionItemKindConstant
}

// documentCompletions 文档内顶层声明补全
func documentCompletions(doc *Document) []protocol.CompletionItem {
	program := doc.GetProgram()
	if program == nil {
		return nil
	}

	var items []protocol.CompletionItem
	for _, stmt := range program.Statements {
		switch d := stmt.(type) {
		case *ast.FuncDecl:
			items = append(items, protocol.CompletionItem{
				Label: d.Name,
				Kind:  protocol.CompletionItemKindFunction,
			})
		case *ast.ClassDecl:
			items = append(items, protocol.CompletionItem{
				Label: d.Name,
				Kind:  protocol.CompletionItemKindClass,
			})
		case *ast.ComponentDecl:
			items = append(items, protocol.CompletionItem{
				Label: d.Name,
				Kind:  protocol.CompletionItemKindClass,
			})
		case *ast.VarDecl:
			kind := protocol.CompletionItemKindVariable
			if d.Const {
				kind = protocol.CompletionItemKindConstant
			}
			items = append(items, protocol.CompletionItem{
				Label: d.Name,
				Kind:  kind,
			})
		case *ast.ImportDecl:
			items = append(items, protocol.CompletionItem{
				Label:  moduleBinding(d.Path),
				Kind:   protocol.CompletionItemKindModule,
				Detail: d.Path,
			})
		}
	}
	return items
}

// inImportPath 判断光标是否在 import 路径字符串内
func inImportPath(before string) bool {
	trimmed := strings.TrimLeft(before, " \t")
	if !strings.HasPrefix(trimmed, "import") {
		return false
	}
	// 位于未闭合的引号内
	return strings.Count(trimmed, "\"")%2 == 1 || strings.Count(trimmed, "'")%2 == 1
}

// memberAccessTarget 提取光标前的成员访问目标（ident. 形式）
func memberAccessTarget(before string) (string, bool) {
	i := len(before)
	// 跳过已输入的成员名前缀
	for i > 0 && isWordChar(before[i-1]) {
		i--
	}
	if i == 0 || before[i-1] != '.' {
		return "", false
	}
	end := i - 1

	start := end
	for start > 0 && isWordChar(before[start-1]) {
		start--
	}
	if start == end {
		return "", false
	}
	return before[start:end], true
}

// moduleBinding 导入路径对应的绑定名（最后一个冒号之后的部分）
func moduleBinding(path string) string {
	if idx := strings.LastIndex(path, ":"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
