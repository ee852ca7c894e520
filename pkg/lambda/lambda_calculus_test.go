package lambda

import (
	"testing"
)

// TestKCombinator applies K = λx.λy.x to two arguments; the second one is
// dropped after being reduced.
func TestKCombinator(t *testing.T) {
	ev := NewEvaluator(nil)
	res := evalString(t, ev, "(fn x => fn y => x) a ((fn z => z) b)")
	t.Logf("K combinator: K a ((λz.z) b) → %v", res)

	if v, ok := res.Term.(*Var); !ok || v.Name != 'a' {
		t.Errorf("Expected variable 'a', got %v", res)
	}
}

// TestSCombinator checks that S K K behaves as the identity.
func TestSCombinator(t *testing.T) {
	ev := NewEvaluator(nil)
	res := evalString(t, ev, "(fn x => fn y => fn z => x z (y z)) (fn a => fn b => a) (fn c => fn d => c) e")
	t.Logf("S combinator: S K K e → %v", res)

	stats := ev.Stats()
	t.Logf("Reductions: %d beta, %d alpha", stats.BetaReductions, stats.AlphaConversions)

	if v, ok := res.Term.(*Var); !ok || v.Name != 'e' {
		t.Errorf("Expected variable 'e', got %v", res)
	}
}

// TestChurchNumerals applies Church numerals to free f and x, which leaves
// the stuck application chain f (f (... x)).
func TestChurchNumerals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Zero",
			input: "(fn f => fn x => x) f x",
			want:  "x",
		},
		{
			name:  "One",
			input: "(fn f => fn x => f x) f x",
			want:  "f x",
		},
		{
			name:  "Two",
			input: "(fn f => fn x => f (f x)) f x",
			want:  "f (f x)",
		},
		{
			name:  "SuccZero",
			input: "(fn n => fn f => fn x => f (n f x)) (fn f => fn x => x) f x",
			want:  "f x",
		},
		{
			name:  "SuccOne",
			input: "(fn n => fn f => fn x => f (n f x)) (fn f => fn x => f x) f x",
			want:  "f (f x)",
		},
		{
			name:  "AddOneOne",
			input: "(fn m => fn n => fn f => fn x => m f (n f x)) (fn f => fn x => f x) (fn f => fn x => f x) f x",
			want:  "f (f x)",
		},
		{
			name:  "MulTwoTwo",
			input: "(fn m => fn n => fn f => m (n f)) (fn f => fn x => f (f x)) (fn f => fn x => f (f x)) f x",
			want:  "f (f (f (f x)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evalString(t, NewEvaluator(nil), tt.input)
			if got := Grouped(res.Term); got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBooleans(t *testing.T) {
	const (
		tru  = "(fn x => fn y => x)"
		fls  = "(fn x => fn y => y)"
		not  = "(fn b => b " + fls + " " + tru + ")"
		and  = "(fn p => fn q => p q p)"
		or   = "(fn p => fn q => p p q)"
		pair = "(fn x => fn y => fn f => f x y)"
	)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"NotTrue", not + " " + tru + " a b", "b"},
		{"NotFalse", not + " " + fls + " a b", "a"},
		{"AndTrueTrue", and + " " + tru + " " + tru + " a b", "a"},
		{"AndTrueFalse", and + " " + tru + " " + fls + " a b", "b"},
		{"OrFalseTrue", or + " " + fls + " " + tru + " a b", "a"},
		{"OrFalseFalse", or + " " + fls + " " + fls + " a b", "b"},
		{"PairFst", "(fn p => p " + tru + ") (" + pair + " a b)", "a"},
		{"PairSnd", "(fn p => p " + fls + ") (" + pair + " a b)", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evalString(t, NewEvaluator(nil), tt.input)
			if got := res.String(); got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
