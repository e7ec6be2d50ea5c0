package charclass

import "testing"

func TestParseSimpleRange(t *testing.T) {
	ranges, negated, err := Parse("a-zA-Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if negated {
		t.Fatalf("expected not negated")
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
}

func TestParseNegated(t *testing.T) {
	_, negated, err := Parse("^0-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !negated {
		t.Fatalf("expected negated")
	}
}

func TestParseEscapes(t *testing.T) {
	ranges, _, err := Parse(`\n\t\r\\\-\]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 6 {
		t.Fatalf("expected 6 singleton ranges, got %d", len(ranges))
	}
	want := []rune{'\n', '\t', '\r', '\\', '-', ']'}
	for i, w := range want {
		if ranges[i].Lo != w || ranges[i].Hi != w {
			t.Errorf("range %d: want %q, got %q", i, w, ranges[i].Lo)
		}
	}
}

func TestMatchBasic(t *testing.T) {
	m := MustCompile("a-zA-Z")
	cases := map[rune]bool{'a': true, 'z': true, 'A': true, 'Z': true, '0': false, ' ': false}
	for r, want := range cases {
		if got := m.Match(r); got != want {
			t.Errorf("Match(%q) = %v, want %v", r, got, want)
		}
	}
}

func TestMatchNegated(t *testing.T) {
	m := MustCompile("^0-9")
	if m.Match('5') {
		t.Errorf("expected digit to not match negated digit class")
	}
	if !m.Match('x') {
		t.Errorf("expected non-digit to match negated digit class")
	}
}

func TestMatchUnicode(t *testing.T) {
	m := MustCompile("à-ÿ")
	if !m.Match('é') {
		t.Errorf("expected e-acute to match Latin-1 supplement range")
	}
	if m.Match('a') {
		t.Errorf("expected plain ascii a to not match")
	}
}

func TestInvertedRangeError(t *testing.T) {
	if _, _, err := Parse("z-a"); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestCompileMergesAdjacentRanges(t *testing.T) {
	m := Compile([]Range{{Lo: 'a', Hi: 'c'}, {Lo: 'd', Hi: 'f'}, {Lo: 'x', Hi: 'z'}}, false)
	if len(m.Ranges()) != 2 {
		t.Fatalf("expected adjacent ranges a-c and d-f to merge into one, got %v", m.Ranges())
	}
}
