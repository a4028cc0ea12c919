package lsp

import (
	"encoding/json"
	"strings"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/phixeo/phixeo/internal/runtime"
)

// newTestServer 构造不绑定 stdio 的服务器，仅用于查询类请求
func newTestServer() *Server {
	return &Server{
		documents: NewDocumentManager(),
		registry:  runtime.NewRegistry(),
	}
}

// ============================================================================
// Document Manager Tests
// ============================================================================

func TestDocumentManager_Open(t *testing.T) {
	dm := NewDocumentManager()

	content := `var x = 10
func greet(name) {
  return "hi " + name
}`

	doc := dm.Open("file:///test.phx", content, 1)

	if doc == nil {
		t.Fatal("expected document to be created")
	}
	if doc.URI != "file:///test.phx" {
		t.Errorf("expected URI 'file:///test.phx', got '%s'", doc.URI)
	}
	if doc.Version != 1 {
		t.Errorf("expected version 1, got %d", doc.Version)
	}
	if doc.Content != content {
		t.Errorf("content mismatch")
	}

	if doc.GetProgram() == nil {
		t.Error("expected program to be parsed")
	}
	if len(doc.ParseErrs) != 0 {
		t.Errorf("expected no parse errors, got %v", doc.ParseErrs)
	}
}

func TestDocumentManager_GetAndClose(t *testing.T) {
	dm := NewDocumentManager()

	dm.Open("file:///test.phx", "var a = 1", 1)

	if dm.Get("file:///test.phx") == nil {
		t.Fatal("expected document to exist")
	}
	if dm.Get("file:///nonexistent.phx") != nil {
		t.Error("expected nil for nonexistent document")
	}

	dm.Close("file:///test.phx")
	if dm.Get("file:///test.phx") != nil {
		t.Error("expected document to be removed after close")
	}
}

func TestDocumentManager_UpdateContent(t *testing.T) {
	dm := NewDocumentManager()

	dm.Open("file:///test.phx", "var a = 1", 1)
	dm.UpdateContent("file:///test.phx", "var b = 2")

	doc := dm.Get("file:///test.phx")
	if doc.Content != "var b = 2" {
		t.Errorf("expected updated content, got %q", doc.Content)
	}
	if doc.Version != 2 {
		t.Errorf("expected version 2, got %d", doc.Version)
	}
}

func TestDocumentManager_ApplyChange_FullReplace(t *testing.T) {
	dm := NewDocumentManager()
	dm.Open("file:///test.phx", "var a = 1", 1)

	// 省略 range 表示全文替换
	dm.ApplyChange("file:///test.phx", ContentChange{
		Text: "var b = 2\nvar c = 3",
	}, 2)

	doc := dm.Get("file:///test.phx")
	if doc.Content != "var b = 2\nvar c = 3" {
		t.Errorf("expected replaced content, got %q", doc.Content)
	}
	if doc.Version != 2 {
		t.Errorf("expected version 2, got %d", doc.Version)
	}
	if len(doc.Lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(doc.Lines))
	}
}

func TestDocumentManager_ApplyChange_Incremental(t *testing.T) {
	dm := NewDocumentManager()
	dm.Open("file:///test.phx", "var x = 1\nvar y = 2", 1)

	// 把第一行的 x 改成 z
	dm.ApplyChange("file:///test.phx", ContentChange{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 4},
			End:   protocol.Position{Line: 0, Character: 5},
		},
		Text: "z",
	}, 2)

	doc := dm.Get("file:///test.phx")
	if doc.Content != "var z = 1\nvar y = 2" {
		t.Errorf("unexpected content after edit: %q", doc.Content)
	}
}

func TestDocumentManager_ApplyChange_InsertAtFileStart(t *testing.T) {
	dm := NewDocumentManager()
	dm.Open("file:///test.phx", "var x = 1;", 1)

	// 文件开头的空范围插入不得被当成全文替换
	dm.ApplyChange("file:///test.phx", ContentChange{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 0},
		},
		Text: "// header\n",
	}, 2)

	doc := dm.Get("file:///test.phx")
	if doc.Content != "// header\nvar x = 1;" {
		t.Errorf("expected original content preserved, got %q", doc.Content)
	}
}

func TestContentChangeDecoding(t *testing.T) {
	// 省略 range 的 JSON 解码出 nil Range
	var full ContentChange
	if err := json.Unmarshal([]byte(`{"text":"abc"}`), &full); err != nil {
		t.Fatal(err)
	}
	if full.Range != nil {
		t.Error("expected nil range for omitted field")
	}

	// 显式的空范围保留为非 nil
	var incr ContentChange
	if err := json.Unmarshal([]byte(`{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"rangeLength":0,"text":"x"}`), &incr); err != nil {
		t.Fatal(err)
	}
	if incr.Range == nil {
		t.Error("expected non-nil range for explicit empty range")
	}
}

func TestApplyTextEdit(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		rang     protocol.Range
		newText  string
		expected string
	}{
		{
			"replace within line",
			"var x = 1",
			protocol.Range{Start: protocol.Position{Line: 0, Character: 8}, End: protocol.Position{Line: 0, Character: 9}},
			"42",
			"var x = 42",
		},
		{
			"insert at line start",
			"a\nb",
			protocol.Range{Start: protocol.Position{Line: 1, Character: 0}, End: protocol.Position{Line: 1, Character: 0}},
			"x",
			"a\nxb",
		},
		{
			"delete across lines",
			"aa\nbb\ncc",
			protocol.Range{Start: protocol.Position{Line: 0, Character: 1}, End: protocol.Position{Line: 2, Character: 1}},
			"",
			"ac",
		},
	}

	for _, tt := range tests {
		result := applyTextEdit(tt.content, tt.rang, tt.newText)
		if result != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, result)
		}
	}
}

func TestDocument_GetLine(t *testing.T) {
	dm := NewDocumentManager()
	doc := dm.Open("file:///test.phx", "line1\nline2\nline3", 1)

	tests := []struct {
		line     int
		expected string
	}{
		{0, "line1"},
		{1, "line2"},
		{2, "line3"},
		{-1, ""},
		{10, ""},
	}

	for _, tt := range tests {
		if got := doc.GetLine(tt.line); got != tt.expected {
			t.Errorf("GetLine(%d): expected %q, got %q", tt.line, tt.expected, got)
		}
	}
}

func TestDocument_GetWordAt(t *testing.T) {
	dm := NewDocumentManager()
	doc := dm.Open("file:///test.phx", "func my_helper() {}", 1)

	tests := []struct {
		line, char int
		expected   string
	}{
		{0, 0, "func"},
		{0, 2, "func"},
		{0, 5, "my_helper"},
		{0, 10, "my_helper"},
		{0, 16, ""},  // 括号之间
		{5, 0, ""},   // 越界行
		{0, 99, ""},  // 越界列
	}

	for _, tt := range tests {
		if got := doc.GetWordAt(tt.line, tt.char); got != tt.expected {
			t.Errorf("GetWordAt(%d, %d): expected %q, got %q", tt.line, tt.char, tt.expected, got)
		}
	}
}

// ============================================================================
// Diagnostics Tests
// ============================================================================

func TestDiagnostics_CleanDocument(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///ok.phx", "var x = 1\nprint(x)", 1)

	diags := s.getDiagnostics(doc)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestDiagnostics_ParseError(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///bad.phx", "var x = 1\nvar = 2", 1)

	diags := s.getDiagnostics(doc)
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	d := diags[0]
	// 词法/语法位置是 1 起始，LSP 位置是 0 起始
	if d.Range.Start.Line != 1 {
		t.Errorf("expected diagnostic on line 1 (0-based), got %d", d.Range.Start.Line)
	}
	if d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("expected error severity, got %v", d.Severity)
	}
	if d.Source != "phixeo" {
		t.Errorf("expected source 'phixeo', got %q", d.Source)
	}
	if d.Message == "" {
		t.Error("expected non-empty message")
	}
}

// ============================================================================
// Document Symbol Tests
// ============================================================================

func TestDocumentSymbols(t *testing.T) {
	s := newTestServer()

	content := `func add(a, b) {
  return a + b
}
const phi = 1.618
var count = 0
class Point {
  var x = 0
  func sum() {
    return this.x
  }
}`
	doc := s.documents.Open("file:///sym.phx", content, 1)

	symbols := s.getDocumentSymbols(doc)
	if len(symbols) != 4 {
		t.Fatalf("expected 4 symbols, got %d", len(symbols))
	}

	fn := symbols[0]
	if fn.Name != "add" || fn.Kind != protocol.SymbolKindFunction {
		t.Errorf("unexpected function symbol: %+v", fn)
	}
	if fn.Detail != "func(a, b)" {
		t.Errorf("expected detail 'func(a, b)', got %q", fn.Detail)
	}
	if fn.Range.Start.Line != 0 {
		t.Errorf("expected function on line 0, got %d", fn.Range.Start.Line)
	}

	if symbols[1].Name != "phi" || symbols[1].Kind != protocol.SymbolKindConstant {
		t.Errorf("unexpected const symbol: %+v", symbols[1])
	}
	if symbols[2].Name != "count" || symbols[2].Kind != protocol.SymbolKindVariable {
		t.Errorf("unexpected var symbol: %+v", symbols[2])
	}

	cls := symbols[3]
	if cls.Name != "Point" || cls.Kind != protocol.SymbolKindClass {
		t.Errorf("unexpected class symbol: %+v", cls)
	}
	if len(cls.Children) != 2 {
		t.Fatalf("expected 2 class members, got %d", len(cls.Children))
	}
	if cls.Children[0].Kind != protocol.SymbolKindField {
		t.Errorf("expected field member, got %v", cls.Children[0].Kind)
	}
	if cls.Children[1].Name != "sum" || cls.Children[1].Kind != protocol.SymbolKindMethod {
		t.Errorf("unexpected method member: %+v", cls.Children[1])
	}
}

func TestDocumentSymbols_Component(t *testing.T) {
	s := newTestServer()

	content := `component Badge {
  var propLabel = ""
  func render() {
    return <span>{label}</span>
  }
}`
	doc := s.documents.Open("file:///comp.phx", content, 1)

	symbols := s.getDocumentSymbols(doc)
	if len(symbols) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(symbols))
	}
	if symbols[0].Name != "Badge" || symbols[0].Detail != "component" {
		t.Errorf("unexpected component symbol: %+v", symbols[0])
	}
	if len(symbols[0].Children) != 2 {
		t.Errorf("expected 2 members, got %d", len(symbols[0].Children))
	}
}

// ============================================================================
// Hover Tests
// ============================================================================

func TestHover_Keyword(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///h.phx", "var x = 10", 1)

	hover := s.getHoverInfo(doc, 0, 1)
	if hover == nil {
		t.Fatal("expected hover for keyword")
	}
	if !strings.Contains(hover.Contents.Value, "**var**") {
		t.Errorf("unexpected hover content: %q", hover.Contents.Value)
	}
}

func TestHover_Builtin(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///h.phx", "print(1)", 1)

	hover := s.getHoverInfo(doc, 0, 2)
	if hover == nil {
		t.Fatal("expected hover for builtin")
	}
	if !strings.Contains(hover.Contents.Value, "print") {
		t.Errorf("unexpected hover content: %q", hover.Contents.Value)
	}
}

func TestHover_Module(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///h.phx", "import \"std:math\"\nprint(math.pi)", 1)

	hover := s.getHoverInfo(doc, 1, 7)
	if hover == nil {
		t.Fatal("expected hover for module binding")
	}
	if !strings.Contains(hover.Contents.Value, "module std:math") {
		t.Errorf("unexpected hover content: %q", hover.Contents.Value)
	}
	if !strings.Contains(hover.Contents.Value, "math.pi") {
		t.Errorf("expected export listing, got: %q", hover.Contents.Value)
	}
}

func TestHover_UserFunction(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///h.phx", "func add(a, b) {\n  return a + b\n}", 1)

	hover := s.getHoverInfo(doc, 0, 6)
	if hover == nil {
		t.Fatal("expected hover for user function")
	}
	if !strings.Contains(hover.Contents.Value, "func add(a, b)") {
		t.Errorf("unexpected hover content: %q", hover.Contents.Value)
	}
}

func TestHover_NoWord(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///h.phx", "var x = 10", 1)

	// 光标在等号上，两侧都不是单词字符
	if hover := s.getHoverInfo(doc, 0, 6); hover != nil {
		t.Errorf("expected nil hover, got %+v", hover)
	}

	// 无文档可查的未知标识符
	if hover := s.getHoverInfo(doc, 0, 4); hover == nil {
		// x 是顶层声明，应当有悬停
		t.Error("expected hover for declared variable")
	}
}

// ============================================================================
// Completion Tests
// ============================================================================

func TestCompletion_ImportPath(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///c.phx", "import \"", 1)

	items := s.getCompletions(doc, 0, 8)
	if len(items) == 0 {
		t.Fatal("expected module completions")
	}

	found := false
	for _, item := range items {
		if !strings.HasPrefix(item.Label, "std:") {
			t.Errorf("expected std: prefix, got %q", item.Label)
		}
		if item.Label == "std:math" {
			found = true
		}
	}
	if !found {
		t.Error("expected std:math in module completions")
	}
}

func TestCompletion_ModuleMembers(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///c.phx", "import \"std:math\"\nmath.", 1)

	items := s.getCompletions(doc, 1, 5)
	if len(items) == 0 {
		t.Fatal("expected export completions")
	}

	byLabel := make(map[string]protocol.CompletionItem)
	for _, item := range items {
		byLabel[item.Label] = item
	}

	pow, ok := byLabel["pow"]
	if !ok {
		t.Fatal("expected 'pow' in math completions")
	}
	if pow.Kind != protocol.CompletionItemKindFunction {
		t.Errorf("expected function kind for pow, got %v", pow.Kind)
	}

	pi, ok := byLabel["pi"]
	if !ok {
		t.Fatal("expected 'pi' in math completions")
	}
	if pi.Kind != protocol.CompletionItemKindConstant {
		t.Errorf("expected constant kind for pi, got %v", pi.Kind)
	}
}

func TestCompletion_UnknownMemberTarget(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///c.phx", "var foo = 1\nfoo.", 1)

	if items := s.getCompletions(doc, 1, 4); len(items) != 0 {
		t.Errorf("expected no completions for non-module member access, got %d", len(items))
	}
}

func TestCompletion_Default(t *testing.T) {
	s := newTestServer()
	doc := s.documents.Open("file:///c.phx", "func myHelper() {\n  return 1\n}\n", 1)

	items := s.getCompletions(doc, 3, 0)

	hasKeyword := false
	hasHelper := false
	for _, item := range items {
		if item.Label == "var" && item.Kind == protocol.CompletionItemKindKeyword {
			hasKeyword = true
		}
		if item.Label == "myHelper" && item.Kind == protocol.CompletionItemKindFunction {
			hasHelper = true
		}
	}
	if !hasKeyword {
		t.Error("expected 'var' keyword completion")
	}
	if !hasHelper {
		t.Error("expected 'myHelper' document completion")
	}
}

func TestInImportPath(t *testing.T) {
	tests := []struct {
		before   string
		expected bool
	}{
		{`import "`, true},
		{`import "std:`, true},
		{`  import "std:ma`, true},
		{`import "std:math"`, false},
		{`var x = `, false},
		{`print("import "`, false},
	}

	for _, tt := range tests {
		if got := inImportPath(tt.before); got != tt.expected {
			t.Errorf("inImportPath(%q): expected %v, got %v", tt.before, tt.expected, got)
		}
	}
}

func TestMemberAccessTarget(t *testing.T) {
	tests := []struct {
		before string
		target string
		ok     bool
	}{
		{"math.", "math", true},
		{"math.po", "math", true},
		{"  geometry.sp", "geometry", true},
		{"a.b.c", "b", true},
		{".foo", "", false},
		{"foo", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		target, ok := memberAccessTarget(tt.before)
		if target != tt.target || ok != tt.ok {
			t.Errorf("memberAccessTarget(%q): expected (%q, %v), got (%q, %v)",
				tt.before, tt.target, tt.ok, target, ok)
		}
	}
}

func TestModuleBinding(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"std:math", "math"},
		{"ext:host", "host"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := moduleBinding(tt.path); got != tt.expected {
			t.Errorf("moduleBinding(%q): expected %q, got %q", tt.path, tt.expected, got)
		}
	}
}
