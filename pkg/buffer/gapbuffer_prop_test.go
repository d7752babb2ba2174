package buffer

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

var textGen = rapid.StringOfN(rapid.SampledFrom([]rune("ab \nxé\t")), 0, 40, -1)

func concatLines(g *GapBuffer) string {
	var sb strings.Builder
	for i := 0; i < g.LineCount(); i++ {
		sb.WriteString(g.Line(i))
	}
	return sb.String()
}

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen.Draw(t, "text")
		if got := New(text).String(); got != text {
			t.Fatalf("round trip: got %q want %q", got, text)
		}
	})
}

func TestProperty_InsertionIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		runes := []rune(textGen.Draw(t, "text"))
		k := rapid.IntRange(0, len(runes)).Draw(t, "k")
		c := rapid.SampledFrom([]rune("q\n ")).Draw(t, "c")

		g := New(string(runes))
		if err := g.Insert(c, k); err != nil {
			t.Fatalf("insert: %v", err)
		}
		want := string(runes[:k]) + string(c) + string(runes[k:])
		if g.String() != want {
			t.Fatalf("got %q want %q", g.String(), want)
		}
	})
}

func TestProperty_DeletionIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		runes := []rune(textGen.Draw(t, "text"))
		if len(runes) == 0 {
			return
		}
		k := rapid.IntRange(1, len(runes)).Draw(t, "k")

		g := New(string(runes))
		g.DeleteBackward(k)
		want := string(runes[:k-1]) + string(runes[k:])
		if g.String() != want {
			t.Fatalf("backward: got %q want %q", g.String(), want)
		}

		f := rapid.IntRange(0, len(runes)-1).Draw(t, "f")
		g = New(string(runes))
		g.DeleteForward(f)
		want = string(runes[:f]) + string(runes[f+1:])
		if g.String() != want {
			t.Fatalf("forward: got %q want %q", g.String(), want)
		}
	})
}

func TestProperty_LineIndexConsistency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := NewWithCapacity(textGen.Draw(t, "text"), rapid.IntRange(1, 8).Draw(t, "cap"))
		steps := rapid.IntRange(0, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			pos := rapid.IntRange(0, g.Len()).Draw(t, "pos")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				r := rapid.SampledFrom([]rune("zy\n")).Draw(t, "r")
				if err := g.Insert(r, pos); err != nil {
					t.Fatalf("insert: %v", err)
				}
			case 1:
				g.DeleteBackward(pos)
			case 2:
				g.DeleteForward(pos)
			}
			g.Check()
		}
		text := g.String()
		if got, want := g.LineCount(), strings.Count(text, "\n")+1; got != want {
			t.Fatalf("line count %d, want %d", got, want)
		}
		if got := concatLines(g); got != text {
			t.Fatalf("joined lines %q, text %q", got, text)
		}
		if g.Len() != len([]rune(text)) {
			t.Fatalf("length %d, text runes %d", g.Len(), len([]rune(text)))
		}
	})
}

func TestProperty_IdempotentNoops(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen.Draw(t, "text")
		g := New(text)
		g.DeleteBackward(0)
		g.DeleteForward(g.Len())
		if g.String() != text || g.Len() != len([]rune(text)) {
			t.Fatalf("no-op deletes changed %q to %q", text, g.String())
		}
	})
}

// TestProperty_MatchesRuneModel replays random edits against a plain rune
// slice and compares the text after every step. Small capacities keep the
// gap empty often.
func TestProperty_MatchesRuneModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen.Draw(t, "text")
		model := []rune(text)
		g := NewWithCapacity(text, rapid.IntRange(1, 8).Draw(t, "cap"))
		steps := rapid.IntRange(0, 80).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			pos := rapid.IntRange(0, len(model)).Draw(t, "pos")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				r := rapid.SampledFrom([]rune("zy\n")).Draw(t, "r")
				if err := g.Insert(r, pos); err != nil {
					t.Fatalf("insert: %v", err)
				}
				model = append(model[:pos], append([]rune{r}, model[pos:]...)...)
			case 1:
				g.DeleteBackward(pos)
				if pos > 0 {
					model = append(model[:pos-1], model[pos:]...)
				}
			case 2:
				g.DeleteForward(pos)
				if pos < len(model) {
					model = append(model[:pos], model[pos+1:]...)
				}
			}
			if g.String() != string(model) {
				t.Fatalf("step %d: got %q want %q", i, g.String(), string(model))
			}
			if g.Len() != len(model) {
				t.Fatalf("step %d: length %d want %d", i, g.Len(), len(model))
			}
		}
		if got := concatLines(g); got != string(model) {
			t.Fatalf("joined lines %q, model %q", got, string(model))
		}
	})
}
