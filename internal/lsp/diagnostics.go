package lsp

import (
	"go.lsp.dev/protocol"
)

// getDiagnostics 获取文档的诊断信息
func (s *Server) getDiagnostics(doc *Document) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	// 确保文档已解析
	_ = doc.GetProgram()

	// 词法和语法错误（解析器已将词法错误合并进自己的错误列表）
	for _, err := range doc.ParseErrs {
		diag := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(err.Pos.Line - 1), // LSP 行号从 0 开始
					Character: uint32(err.Pos.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(err.Pos.Line - 1),
					Character: uint32(err.Pos.Column + 10), // 估计错误范围
				},
			},
			Severity: protocol.DiagnosticSeverityError,
			Source:   "phixeo",
			Message:  err.Message,
		}
		diagnostics = append(diagnostics, diag)
	}

	return diagnostics
}
