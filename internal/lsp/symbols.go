package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/phixeo/phixeo/internal/ast"
)

// handleDocumentSymbol 处理文档符号请求
func (s *Server) handleDocumentSymbol(id json.RawMessage, params json.RawMessage) {
	var p protocol.DocumentSymbolParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.sendError(id, -32700, "Parse error")
		return
	}

	docURI := string(p.TextDocument.URI)
	doc := s.documents.Get(docURI)
	if doc == nil {
		s.sendResult(id, []protocol.DocumentSymbol{})
		return
	}

	symbols := s.getDocumentSymbols(doc)
	s.sendResult(id, symbols)
}

// getDocumentSymbols 获取文档符号列表
func (s *Server) getDocumentSymbols(doc *Document) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol

	program := doc.GetProgram()
	if program == nil {
		return symbols
	}

	for _, stmt := range program.Statements {
		symbol := statementToSymbol(stmt)
		if symbol != nil {
			symbols = append(symbols, *symbol)
		}
	}

	return symbols
}

// statementToSymbol 将顶层声明转换为符号
func statementToSymbol(stmt ast.Statement) *protocol.DocumentSymbol {
	switch d := stmt.(type) {
	case *ast.FuncDecl:
		return funcToSymbol(d)

	case *ast.ClassDecl:
		sym := declSymbol(d.Name, "class", protocol.SymbolKindClass,
			d.Pos().Line, d.End().Line, d.Token.Pos.Column-1+len("class "))
		for _, m := range d.Members {
			if child := memberToSymbol(m); child != nil {
				sym.Children = append(sym.Children, *child)
			}
		}
		return sym

	case *ast.ComponentDecl:
		sym := declSymbol(d.Name, "component", protocol.SymbolKindClass,
			d.Pos().Line, d.End().Line, d.Token.Pos.Column-1+len("component "))
		for _, m := range d.Members {
			if child := memberToSymbol(m); child != nil {
				sym.Children = append(sym.Children, *child)
			}
		}
		return sym

	case *ast.VarDecl:
		return varToSymbol(d)
	}
	return nil
}

// memberToSymbol 将类/组件成员转换为符号
func memberToSymbol(stmt ast.Statement) *protocol.DocumentSymbol {
	switch d := stmt.(type) {
	case *ast.FuncDecl:
		sym := funcToSymbol(d)
		sym.Kind = protocol.SymbolKindMethod
		return sym
	case *ast.VarDecl:
		sym := varToSymbol(d)
		sym.Kind = protocol.SymbolKindField
		return sym
	}
	return nil
}

func funcToSymbol(d *ast.FuncDecl) *protocol.DocumentSymbol {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	sym := declSymbol(d.Name, fmt.Sprintf("func(%s)", strings.Join(names, ", ")),
		protocol.SymbolKindFunction,
		d.Pos().Line, d.End().Line, d.Token.Pos.Column-1+len("func "))
	return sym
}

func varToSymbol(d *ast.VarDecl) *protocol.DocumentSymbol {
	kind := protocol.SymbolKindVariable
	detail := "var"
	if d.Const {
		kind = protocol.SymbolKindConstant
		detail = "const"
	}
	endLine := d.End().Line
	return declSymbol(d.Name, detail, kind, d.Pos().Line, endLine, d.NameTok.Pos.Column-1)
}

// declSymbol 构造一个声明符号
//
// startLine/endLine 使用 1 起始的行号，nameCol 使用 0 起始的列号。
func declSymbol(name, detail string, kind protocol.SymbolKind, startLine, endLine, nameCol int) *protocol.DocumentSymbol {
	if nameCol < 0 {
		nameCol = 0
	}
	return &protocol.DocumentSymbol{
		Name:   name,
		Detail: detail,
		Kind:   kind,
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(startLine - 1), Character: 0},
			End:   protocol.Position{Line: uint32(endLine - 1), Character: uint32(nameCol + len(name) + 10)},
		},
		SelectionRange: protocol.Range{
			Start: protocol.Position{Line: uint32(startLine - 1), Character: uint32(nameCol)},
			End:   protocol.Position{Line: uint32(startLine - 1), Character: uint32(nameCol + len(name))},
		},
	}
}
