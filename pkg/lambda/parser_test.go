package lambda

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseGrouping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"a b", "a b"},
		{"a b c d", "((a b) c) d"},
		{"a (b (c d))", "a (b (c d))"},
		{"(a b) (c d)", "(a b) (c d)"},
		{"fn x => x", "(λx.x)"},
		{"fn x => x y z", "(λx.(x y) z)"},
		{"fn x => fn y => x y", "(λx.(λy.x y))"},
		{"(fn x => x) y", "(λx.x) y"},
		{"fn x => x fn y => y", "(λx.x (λy.y))"},
		{"((((x))))", "x"},
		{"f (fn x => x) a", "(f (λx.x)) a"},
		{"  a\tb\n c ", "(a b) c"},
		{"a # trailing comment", "a"},
		{"# leading\n fn x => x", "(λx.x)"},
		{"fn x => # inside\n x", "(λx.x)"},
		{"a\u00a0b\u2003c", "(a b) c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got := Grouped(e.Term); got != tt.want {
				t.Errorf("Grouped(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err := Check(e); err != nil {
				t.Errorf("Check: %v", err)
			}
		})
	}
}

func TestParseLeftAssociative(t *testing.T) {
	e, err := Parse("a b c d")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	outer, ok := e.Term.(*App)
	if !ok {
		t.Fatalf("expected *App, got %T", e.Term)
	}
	if v, ok := outer.Arg.(*Var); !ok || v.Name != 'd' {
		t.Errorf("outer operand = %v, want d", outer.Arg)
	}
	mid, ok := outer.Fun.(*App)
	if !ok {
		t.Fatalf("expected nested *App, got %T", outer.Fun)
	}
	if _, ok := mid.Fun.(*App); !ok {
		t.Errorf("expected ((a b) c), got %s", Grouped(mid))
	}
}

func TestParseBinding(t *testing.T) {
	e, err := Parse("fn x => fn y => x y z")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	outer := e.Term.(*Abs)
	inner := outer.Body.(*Abs)

	var got []string
	walkVars(e.Term, func(v *Var) {
		switch v.Binder {
		case Free:
			got = append(got, string(v.Name)+":free")
		case outer.ID:
			got = append(got, string(v.Name)+":outer")
		case inner.ID:
			got = append(got, string(v.Name)+":inner")
		default:
			got = append(got, string(v.Name)+":?")
		}
	})
	want := []string{"x:outer", "y:inner", "z:free"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseShadowing(t *testing.T) {
	e, err := Parse("fn x => x (fn x => x)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	outer := e.Term.(*Abs)
	app := outer.Body.(*App)
	inner := app.Arg.(*Abs)

	if v := app.Fun.(*Var); v.Binder != outer.ID {
		t.Errorf("first x bound to %d, want outer %d", v.Binder, outer.ID)
	}
	if v := inner.Body.(*Var); v.Binder != inner.ID {
		t.Errorf("second x bound to %d, want inner %d", v.Binder, inner.ID)
	}
}

func TestTokens(t *testing.T) {
	p := NewParser("fn x => (x y) # done", nil)
	var got []TokenType
	for p.current.Type != TokenEOF {
		got = append(got, p.current.Type)
		p.next()
	}
	want := []TokenType{TokenFn, TokenIdent, TokenArrow, TokenLParen, TokenIdent, TokenIdent, TokenRParen}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		token string
	}{
		{"", 0, ""},
		{"   ", 3, ""},
		{"(a b", 4, ""},
		{"a b)", 3, ")"},
		{"fn => x", 3, "=>"},
		{"fn x x", 5, "x"},
		{"fn x =>", 7, ""},
		{"foo", 0, "foo"},
		{"a + b", 2, "+"},
		{"a fn x => x", 2, "fn"},
		{"()", 1, ")"},
		{"fn x = x", 5, "="},
		{"a\x85b", 1, "\x85"},
		{"a\xa0b", 1, "\xa0"},
		{"fn λ => λ", 3, "λ"},
		{"aλ", 1, "λ"},
		{"fn é => é", 3, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if perr.Pos != tt.pos || perr.Token != tt.token {
				t.Errorf("error at %d near %q, want %d near %q (%v)", perr.Pos, perr.Token, tt.pos, tt.token, err)
			}
			if perr.Input != tt.input {
				t.Errorf("error input = %q, want %q", perr.Input, tt.input)
			}
		})
	}
}

func TestBlank(t *testing.T) {
	for _, s := range []string{"", "   ", "# comment", "  # a\n\t# b\n"} {
		if !Blank(s) {
			t.Errorf("Blank(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"x", "# c\nx", "  ("} {
		if Blank(s) {
			t.Errorf("Blank(%q) = true, want false", s)
		}
	}
}

func TestSourceRoundTrip(t *testing.T) {
	inputs := []string{
		"x",
		"a b c d",
		"fn x => fn y => x y",
		"(fn x => x x) (fn y => y)",
		"fn f => fn x => f (f x)",
		"a (fn x => x b) c",
	}
	for _, in := range inputs {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		src := Source(e.Term)
		again, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(Source(%q)) = Parse(%q): %v", in, src, err)
		}
		if got, want := Grouped(again.Term), Grouped(e.Term); got != want {
			t.Errorf("round trip of %q: got %q, want %q", in, got, want)
		}
	}
}
