package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected TokenType
	}{
		{"if", IF},
		{"var", VAR},
		{"for", FOR},
		{"func", FUNC},
		{"else", ELSE},
		{"true", TRUE},
		{"null", NULL},
		{"const", CONST},
		{"false", FALSE},
		{"class", CLASS},
		{"import", IMPORT},
		{"return", RETURN},
		{"component", COMPONENT},
		// 非关键字
		{"foo", IDENT},
		{"If", IDENT},
		{"variable", IDENT},
		{"", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q): expected %v, got %v", tt.ident, tt.expected, got)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range []TokenType{IMPORT, CLASS, COMPONENT, VAR, CONST, FUNC, IF, ELSE, FOR, RETURN, TRUE, FALSE, NULL} {
		if !IsKeyword(kw) {
			t.Errorf("expected %v to be a keyword", kw)
		}
	}
	for _, other := range []TokenType{IDENT, NUMBER, STRING, PLUS, LPAREN, JSX_OPEN, EOF, ILLEGAL} {
		if IsKeyword(other) {
			t.Errorf("expected %v not to be a keyword", other)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		typ      TokenType
		expected string
	}{
		{PLUS, "+"},
		{EQ, "=="},
		{JSX_SELF_CLOSE, "/>"},
		{IDENT, "IDENT"},
		{IMPORT, "import"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("TokenType.String(): expected %q, got %q", tt.expected, got)
		}
	}

	// 未知类型回退到数字表示
	if got := TokenType(9999).String(); got != "TokenType(9999)" {
		t.Errorf("unexpected string for unknown type: %q", got)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "main.phx", Line: 3, Column: 7}
	if got := p.String(); got != "main.phx:3:7" {
		t.Errorf("expected 'main.phx:3:7', got %q", got)
	}

	anon := Position{Line: 1, Column: 1}
	if got := anon.String(); got != "1:1" {
		t.Errorf("expected '1:1', got %q", got)
	}

	if !p.IsValid() {
		t.Error("expected valid position")
	}
	if (Position{}).IsValid() {
		t.Error("expected zero position to be invalid")
	}
}

func TestSpan(t *testing.T) {
	tok := NewWithValue(IDENT, "hello", nil, Position{Filename: "a.phx", Line: 2, Column: 4, Offset: 10})
	span := SpanFromToken(tok)

	if span.Start.Column != 4 || span.End.Column != 9 {
		t.Errorf("unexpected span columns: %d-%d", span.Start.Column, span.End.Column)
	}
	if span.Length() != 5 {
		t.Errorf("expected length 5, got %d", span.Length())
	}
	if got := span.String(); got != "a.phx:2:4-9" {
		t.Errorf("unexpected span string %q", got)
	}

	multi := NewSpan(Position{Line: 1, Column: 2}, Position{Line: 3, Column: 1})
	if multi.Length() != 1 {
		t.Errorf("expected multi-line length 1, got %d", multi.Length())
	}
}

func TestTokenString(t *testing.T) {
	tok := New(IDENT, "count", Position{Line: 1, Column: 5})
	if got := tok.String(); got != "IDENT(count) at 1:5" {
		t.Errorf("unexpected token string %q", got)
	}

	plus := New(PLUS, "+", Position{Line: 2, Column: 3})
	if got := plus.String(); got != "+ at 2:3" {
		t.Errorf("unexpected token string %q", got)
	}
}
