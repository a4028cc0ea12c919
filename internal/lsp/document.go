package lsp

import (
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/phixeo/phixeo/internal/ast"
	"github.com/phixeo/phixeo/internal/errors"
	"github.com/phixeo/phixeo/internal/parser"
	"github.com/phixeo/phixeo/internal/token"
)

// Document 表示一个打开的文档
type Document struct {
	URI     string
	Content string
	Version int
	Lines   []string // 按行分割的内容

	// 缓存的解析结果
	Program   *ast.Program
	ParseErrs []parser.Error

	// 是否需要重新解析
	dirty bool
}

// DocumentManager 文档管理器
type DocumentManager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewDocumentManager 创建文档管理器
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*Document),
	}
}

// Open 打开文档
func (dm *DocumentManager) Open(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   splitLines(content),
		dirty:   true,
	}

	doc.parse()

	dm.documents[uri] = doc
	return doc
}

// Close 关闭文档
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.documents, uri)
}

// Get 获取文档
func (dm *DocumentManager) Get(uri string) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.documents[uri]
}

// UpdateContent 更新文档内容
func (dm *DocumentManager) UpdateContent(uri, content string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.documents[uri]
	if !ok {
		return
	}

	doc.Content = content
	doc.Lines = splitLines(content)
	doc.Version++
	doc.dirty = true
	doc.parse()
}

// ContentChange 一次文档内容变更
//
// Range 使用指针：LSP 规范里省略 range 表示替换全文，而
// (0,0)-(0,0) 的空范围是文件开头的一次合法增量插入，
// 两者必须区分开。
type ContentChange struct {
	Range *protocol.Range `json:"range,omitempty"`
	Text  string          `json:"text"`
}

// ApplyChange 应用增量变更
func (dm *DocumentManager) ApplyChange(uri string, change ContentChange, version int) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.documents[uri]
	if !ok {
		return
	}

	if change.Range == nil {
		doc.Content = change.Text
		doc.Lines = splitLines(change.Text)
	} else {
		doc.Content = applyTextEdit(doc.Content, *change.Range, change.Text)
		doc.Lines = splitLines(doc.Content)
	}

	doc.Version = version
	doc.dirty = true
	doc.parse()
}

// maxDocumentSize 文档大小限制（500KB），防止内存暴涨
const maxDocumentSize = 500 * 1024

// parse 解析文档
func (doc *Document) parse() {
	if !doc.dirty {
		return
	}

	if len(doc.Content) > maxDocumentSize {
		doc.Program = nil
		doc.ParseErrs = []parser.Error{{
			Code:    errors.P0001,
			Pos:     token.Position{Line: 1, Column: 1},
			Message: "document too large to parse",
		}}
		doc.dirty = false
		return
	}

	filename := uriToPath(doc.URI)

	p := parser.New(doc.Content, filename)
	doc.Program = p.Parse()
	doc.ParseErrs = p.Errors()

	doc.dirty = false
}

// GetProgram 获取 AST（如果需要会重新解析）
func (doc *Document) GetProgram() *ast.Program {
	if doc.dirty {
		doc.parse()
	}
	return doc.Program
}

// GetLine 获取指定行内容
func (doc *Document) GetLine(line int) string {
	if line < 0 || line >= len(doc.Lines) {
		return ""
	}
	return doc.Lines[line]
}

// GetWordAt 获取指定位置的单词
func (doc *Document) GetWordAt(line, character int) string {
	if line < 0 || line >= len(doc.Lines) {
		return ""
	}

	lineText := doc.Lines[line]
	if character < 0 || character > len(lineText) {
		return ""
	}

	start := character
	for start > 0 && isWordChar(lineText[start-1]) {
		start--
	}

	end := character
	for end < len(lineText) && isWordChar(lineText[end]) {
		end++
	}

	return lineText[start:end]
}

// splitLines 将内容按行分割
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// applyTextEdit 应用文本编辑
func applyTextEdit(content string, rang protocol.Range, newText string) string {
	lines := splitLines(content)

	startLine := int(rang.Start.Line)
	startChar := int(rang.Start.Character)
	endLine := int(rang.End.Line)
	endChar := int(rang.End.Character)

	if startLine >= len(lines) {
		startLine = len(lines) - 1
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}
	if startLine < 0 {
		startLine = 0
	}
	if endLine < 0 {
		endLine = 0
	}

	startLineText := ""
	endLineText := ""
	if startLine < len(lines) {
		startLineText = lines[startLine]
	}
	if endLine < len(lines) {
		endLineText = lines[endLine]
	}

	if startChar > len(startLineText) {
		startChar = len(startLineText)
	}
	if endChar > len(endLineText) {
		endChar = len(endLineText)
	}

	var result strings.Builder

	for i := 0; i < startLine; i++ {
		result.WriteString(lines[i])
		result.WriteString("\n")
	}
	result.WriteString(startLineText[:startChar])

	result.WriteString(newText)

	result.WriteString(endLineText[endChar:])
	for i := endLine + 1; i < len(lines); i++ {
		result.WriteString("\n")
		result.WriteString(lines[i])
	}

	return result.String()
}

// isWordChar 判断是否是单词字符
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}
