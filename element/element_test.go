package element

import "testing"

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(rune) bool
		in   string
		out  string
	}{
		{"digit", IsDigit[rune], "0123456789", "a/:x "},
		{"nonzero", IsNonZeroDigit[rune], "123456789", "0a"},
		{"hex", IsHexDigit[rune], "09afAF", "gG:/"},
		{"oct", IsOctDigit[rune], "01234567", "89a"},
		{"alpha", IsAlpha[rune], "azAZ", "09@[`{é"},
		{"alphanumeric", IsAlphanumeric[rune], "az09", "_- "},
		{"punct", IsPunct[rune], "!/:@[`{~", "aZ0 \t"},
		{"control", IsControl[rune], "\x00\x1f\x7f\n", " a~"},
		{"space", IsSpace[rune], " \t", "\n\r\f"},
		{"multispace", IsMultispace[rune], " \t\n\r", "\f\va"},
		{"whitespace", IsWhitespace[rune], " \t\n\r\f\v", "a\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range tt.in {
				if !tt.fn(c) {
					t.Errorf("%s(%q) = false, want true", tt.name, c)
				}
			}
			for _, c := range tt.out {
				if tt.fn(c) {
					t.Errorf("%s(%q) = true, want false", tt.name, c)
				}
			}
		})
	}
}

func TestClassifiersBytes(t *testing.T) {
	if !IsDigit(byte('7')) {
		t.Errorf("IsDigit('7') = false, want true")
	}
	if IsAlpha(byte(0xe9)) {
		t.Errorf("IsAlpha(0xe9) = true, want false")
	}
	if !IsByte[byte]() {
		t.Errorf("IsByte[byte]() = false, want true")
	}
	if IsByte[rune]() {
		t.Errorf("IsByte[rune]() = true, want false")
	}
}

func TestSets(t *testing.T) {
	tests := []struct {
		name string
		set  Set[rune]
		in   string
		out  string
	}{
		{"closed", Closed('a', 'c'), "abc", "d`"},
		{"half-open", HalfOpen('a', 'c'), "ab", "c"},
		{"open", Open('a', 'c'), "b", "ac"},
		{"at-least", AtLeast('x'), "xyz", "w"},
		{"at-most", AtMost('b'), "ab", "c"},
		{"of", Of('a', 'q'), "aq", "b"},
		{"chars", Chars[rune]("+-é"), "+-é", "e*"},
		{"func", Func[rune](IsDigit[rune]), "5", "x"},
		{"union", Union(Closed('0', '9'), Of('_')), "5_", "a"},
		{"not", Not(Chars[rune]("\"\\")), "ab", "\"\\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range tt.in {
				if !tt.set.Contains(c) {
					t.Errorf("Contains(%q) = false, want true", c)
				}
			}
			for _, c := range tt.out {
				if tt.set.Contains(c) {
					t.Errorf("Contains(%q) = true, want false", c)
				}
			}
		})
	}
}

func TestCharsBytesIgnoreNonASCII(t *testing.T) {
	set := Chars[byte]("aé")
	if !set.Contains('a') {
		t.Errorf("Contains('a') = false, want true")
	}
	if set.Contains(0xe9) {
		t.Errorf("Contains(0xe9) = true, want false")
	}
}
