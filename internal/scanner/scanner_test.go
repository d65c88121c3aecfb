package scanner

import "testing"

func kinds(source string) []TokenKind {
	s := New(source)
	var out []TokenKind
	for {
		tok := s.ScanToken()
		out = append(out, tok.Kind)
		if tok.Kind == Eof {
			return out
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	got := kinds("( ) , . + - * / != <= >= <> = < >")
	want := []TokenKind{
		LeftParen, RightParen, Comma, Period, Plus, Minus, Asterisk, ForwardSlash,
		NotEqual, LessEqual, GreaterEqual, NotEqual, Equals, LessThan, GreaterThan, Eof,
	}
	assertKinds(t, got, want)
}

func TestScanNumber(t *testing.T) {
	s := New("42 3.14")
	first := s.ScanToken()
	if first.Kind != Number || first.Lexeme != "42" {
		t.Fatalf("first = %+v", first)
	}
	second := s.ScanToken()
	if second.Kind != Number || second.Lexeme != "3.14" {
		t.Fatalf("second = %+v", second)
	}
}

func TestScanStringLiteral(t *testing.T) {
	s := New(`'hello'`)
	tok := s.ScanToken()
	if tok.Kind != String || tok.Lexeme != `'hello'` {
		t.Fatalf("tok = %+v", tok)
	}
}

func TestScanStringWithEscapedQuote(t *testing.T) {
	s := New(`'it\'s fine' rest`)
	tok := s.ScanToken()
	if tok.Kind != String {
		t.Fatalf("tok.Kind = %v, want String", tok.Kind)
	}
	next := s.ScanToken()
	if next.Kind != Identifier || next.Lexeme != "rest" {
		t.Fatalf("next = %+v", next)
	}
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	s := New(`'oops`)
	tok := s.ScanToken()
	if tok.Kind != Error {
		t.Fatalf("tok.Kind = %v, want Error", tok.Kind)
	}
}

func TestScanEnclosedIdentifierIsNeverKeyword(t *testing.T) {
	s := New("`select` select")
	first := s.ScanToken()
	if first.Kind != EnclosedIdentifier || first.Lexeme != "`select`" {
		t.Fatalf("first = %+v", first)
	}
	second := s.ScanToken()
	if second.Kind != KWSelect {
		t.Fatalf("second.Kind = %v, want KWSelect", second.Kind)
	}
}

func TestScanKeywordIsCaseInsensitive(t *testing.T) {
	for _, src := range []string{"true", "True", "TRUE"} {
		s := New(src)
		tok := s.ScanToken()
		if tok.Kind != KWTrue {
			t.Fatalf("source %q: Kind = %v, want KWTrue", src, tok.Kind)
		}
	}
}

func TestScanIdentifierNotKeyword(t *testing.T) {
	s := New("customer_id")
	tok := s.ScanToken()
	if tok.Kind != Identifier || tok.Lexeme != "customer_id" {
		t.Fatalf("tok = %+v", tok)
	}
}

func TestSkipsLineCommentsAndWhitespace(t *testing.T) {
	s := New("// a comment\n  42")
	tok := s.ScanToken()
	if tok.Kind != Number || tok.Lexeme != "42" || tok.Line != 2 {
		t.Fatalf("tok = %+v", tok)
	}
}

func TestDivisionIsNotConfusedWithLineComment(t *testing.T) {
	got := kinds("1 / 2")
	want := []TokenKind{Number, ForwardSlash, Number, Eof}
	assertKinds(t, got, want)
}

func TestMinusIsAlwaysMinus(t *testing.T) {
	got := kinds("a - -b")
	want := []TokenKind{Identifier, Minus, Minus, Identifier, Eof}
	assertKinds(t, got, want)
}

func assertKinds(t *testing.T, got, want []TokenKind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(got)=%d len(want)=%d got=%v want=%v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (full got=%v)", i, got[i], want[i], got)
		}
	}
}
