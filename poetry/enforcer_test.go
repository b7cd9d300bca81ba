package poetry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func poemLines(texts ...string) []Line {
	out := make([]Line, len(texts))
	for i, text := range texts {
		out[i] = Line{Index: i, Text: text}
	}
	return out
}

func TestEnforce_ConformingGroupIsNoOp(t *testing.T) {
	t.Parallel()

	e := &Enforcer{Lookup: mustLookup(t, testCorpusForms)}
	lines := poemLines(
		"Сияет солнце за горой",
		"Поёт ветер на дороге",
		"Зовёт меня за волной",
		"Поёт вдали весной",
	)
	// ABAB: {0,2} conforms as-is; {1,3} anchor is not in the dictionary.
	got, reports, err := e.Enforce(lines, SchemeABAB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if diff := cmp.Diff(lines, got); diff != "" {
		t.Fatalf("lines changed (-in +out):\n%s", diff)
	}
	if !reports[0].Ok || reports[0].Key != "ой" || reports[0].Substituted != nil {
		t.Fatalf("group {0,2} report=%+v, want ok with key ой and no substitutions", reports[0])
	}
	if reports[1].Ok {
		t.Fatalf("group {1,3} report=%+v, want ok=false (anchor unresolvable)", reports[1])
	}
}

func TestEnforce_SubstitutesNonConformingMember(t *testing.T) {
	t.Parallel()

	e := &Enforcer{Lookup: mustLookup(t, testCorpusForms)}
	lines := poemLines(
		"Сияет солнце за горой",
		"Поёт вдали весной",
		"Зовёт меня за волной",
		"Гремит над нами хор",
	)
	got, reports, err := e.Enforce(lines, SchemeABAB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}

	// {0,2} conform untouched.
	if got[0].Text != lines[0].Text || got[2].Text != lines[2].Text {
		t.Fatalf("conforming lines changed: %v", got)
	}

	// {1,3}: "хор" (key ор) must converge on the anchor key ой. No
	// 1-syllable candidate exists, so the filter relaxes to the first
	// unused candidate in dictionary order.
	if want := "Гремит над нами зимой"; got[3].Text != want {
		t.Fatalf("line 3=%q, want %q", got[3].Text, want)
	}
	if !reports[1].Ok || reports[1].Key != "ой" {
		t.Fatalf("group {1,3} report=%+v", reports[1])
	}
	if diff := cmp.Diff([]int{3}, reports[1].Substituted); diff != "" {
		t.Fatalf("substituted mismatch (-want +got):\n%s", diff)
	}
}

func TestEnforce_CapitalizedAnchorNotReused(t *testing.T) {
	t.Parallel()

	// Dictionary surfaces are lowercase; a capitalized trailing word must
	// still be excluded from its own substitution pool.
	e := &Enforcer{Lookup: mustLookup(t, []string{"зимо́й", "весно́й"})}
	lines := poemLines(
		"Плывёт над полем Зимой",
		"Мне снится тихая тоска",
		"Свободная строка моя",
		"Ещё одна строка моя",
	)
	got, reports, err := e.Enforce(lines, SchemeAABB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if want := "Мне снится тихая весной"; got[1].Text != want {
		t.Fatalf("line 1=%q, want %q (anchor word must not rhyme with itself)", got[1].Text, want)
	}
	if diff := cmp.Diff([]int{1}, reports[0].Substituted); diff != "" {
		t.Fatalf("substituted mismatch (-want +got):\n%s", diff)
	}
}

func TestEnforce_AvoidsRepeatingSubstitutes(t *testing.T) {
	t.Parallel()

	e := &Enforcer{Lookup: mustLookup(t, testCorpusForms)}
	lines := poemLines(
		"Плывёт над полем зимой",
		"Мне снится тихая тоска",
		"Свободная строка",
		"Ложится свет на леса",
	)
	got, reports, err := e.Enforce(lines, SchemeAABA)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}

	// Anchor зимой; both rhyming members are replaced with distinct
	// candidates, in dictionary order, matching the 2-syllable last words.
	if want := "Мне снится тихая весной"; got[1].Text != want {
		t.Fatalf("line 1=%q, want %q", got[1].Text, want)
	}
	if want := "Ложится свет на горой"; got[3].Text != want {
		t.Fatalf("line 3=%q, want %q", got[3].Text, want)
	}
	if diff := cmp.Diff([]int{1, 3}, reports[0].Substituted); diff != "" {
		t.Fatalf("substituted mismatch (-want +got):\n%s", diff)
	}

	// The free line of AABA is never rhyme-checked.
	if got[2].Text != lines[2].Text || !reports[1].Ok {
		t.Fatalf("free line touched: %q report=%+v", got[2].Text, reports[1])
	}
}

func TestEnforce_NoCandidatesLeavesGroupUnchanged(t *testing.T) {
	t.Parallel()

	// Dictionary where the anchor key has no candidate besides the anchor.
	e := &Enforcer{Lookup: mustLookup(t, []string{"приво́льно", "зимо́й"})}
	lines := poemLines(
		"Дышит поле привольно",
		"Гремит над нами хор",
		"Свободная строка моя",
		"Ещё одна строка моя",
	)
	got, reports, err := e.Enforce(lines, SchemeAABB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if diff := cmp.Diff(lines, got); diff != "" {
		t.Fatalf("lines changed (-in +out):\n%s", diff)
	}
	if reports[0].Ok || reports[0].Key != "ольно" {
		t.Fatalf("group report=%+v, want ok=false key=ольно", reports[0])
	}
}

func TestEnforce_Idempotent(t *testing.T) {
	t.Parallel()

	e := &Enforcer{Lookup: mustLookup(t, testCorpusForms)}
	lines := poemLines(
		"Сияет солнце за горой",
		"Поёт вдали весной",
		"Зовёт меня за волной",
		"Гремит над нами хор",
	)
	once, _, err := e.Enforce(lines, SchemeABAB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	twice, reports, err := e.Enforce(once, SchemeABAB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second pass changed lines (-once +twice):\n%s", diff)
	}
	for _, r := range reports {
		if !r.Ok || r.Substituted != nil {
			t.Fatalf("second pass report=%+v, want clean no-op", r)
		}
	}
}

func TestEnforce_EmotionRankingPrefersNearest(t *testing.T) {
	t.Parallel()

	joy, _ := NewEmotionVector(map[string]float64{"joy": 1})
	sadness, _ := NewEmotionVector(map[string]float64{"sadness": 1})

	anchor, _ := Analyze("зимо́й")
	bright, _ := Analyze("весно́й")
	dark, _ := Analyze("горо́й")
	lookup, err := NewLookup([]Entry{
		{Word: anchor},
		{Word: bright, Emotions: joy},
		{Word: dark, Emotions: sadness},
	})
	if err != nil {
		t.Fatalf("NewLookup: %v", err)
	}

	e := &Enforcer{Lookup: lookup, Emotion: sadness}
	lines := poemLines(
		"Плывёт над полем зимой",
		"Мне снится тихая тоска",
		"Свободная строка моя",
		"Ещё одна строка моя",
	)
	got, _, err := e.Enforce(lines, SchemeAABB)
	if err != nil {
		t.Fatalf("Enforce: %v", err)
	}
	// Dictionary order would pick весной; emotion ranking prefers горой.
	if want := "Мне снится тихая горой"; got[1].Text != want {
		t.Fatalf("line 1=%q, want %q", got[1].Text, want)
	}
}
