package arabic

import (
	"testing"
)

func TestNormalize_LetterFolding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hamza alef above", "أحمد", "احمد"},
		{"hamza alef below", "إسلام", "اسلام"},
		{"madda alef", "آمال", "امال"},
		{"taa marbuta", "مدرسة", "مدرسه"},
		{"alef maksura", "مستشفى", "مستشفي"},
		{"yaa hamza", "رئيس", "رييس"},
		{"waw hamza", "مؤكد", "موكد"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_StripsDiacriticsAndTatweel(t *testing.T) {
	// "الخَبَرُ" with fatha/damma plus a tatweel elongation
	got := Normalize("الخَبَرُ مهـــم")
	want := "الخبر مهم"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_EasternDigits(t *testing.T) {
	if got := Normalize("١٣١ تريليون"); got != "131 تريليون" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_StripsPunctuationAndCollapsesWhitespace(t *testing.T) {
	got := Normalize("  السوداني: الحكومة، ورثت!  131   تريليون ")
	want := "السوداني الحكومه ورثت 131 تريليون"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"أخبارٌ عاجلة: وزارة التربية تُعلن النتائج ١٠٠٪",
		"فيتي سجل هدفاً",
		"",
		"hello world 42",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExpandAliases_KeepsOriginalToken(t *testing.T) {
	got := ExpandAliases("فيتي سجل هدف")
	want := "فيتي فينيسيوس سجل هدف"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpandAliases_MultiWordExpansion(t *testing.T) {
	got := ExpandAliases("الريال فاز")
	want := "الريال ريال مدريد فاز"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenSet_AliasSuperset(t *testing.T) {
	// Token set with alias expansion must be a superset of the plain
	// normalized token set.
	text := "فيتي سجل في مرمى البارسا"
	expanded := TokenSet(text)

	for _, w := range []string{"فيتي", "سجل", "مرمي", "البارسا"} {
		if _, ok := expanded[w]; !ok {
			t.Errorf("expanded token set missing base token %q", w)
		}
	}
	for _, w := range []string{"فينيسيوس", "برشلونه"} {
		if _, ok := expanded[w]; !ok {
			t.Errorf("expanded token set missing alias expansion %q", w)
		}
	}
}

func TestTokenSet_DropsShortTokens(t *testing.T) {
	set := TokenSet("و في 5 م")
	if _, ok := set["و"]; ok {
		t.Error("single-rune token should be dropped")
	}
	if _, ok := set["5"]; ok {
		t.Error("single-digit token should be dropped")
	}
	if _, ok := set["في"]; !ok {
		t.Error("two-rune token should be kept")
	}
}

func TestIsQuestion(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"هل صحيح أن الوزارة أعلنت النتائج", true},
		{"متى تبدأ الامتحانات", true},
		{"الحكومة ورثت 131 تريليون دينار", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsQuestion(tc.in); got != tc.want {
			t.Errorf("IsQuestion(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsCasual(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"مرحبا", true},
		{"صباح الخير", true},
		{"شكراً جزيلاً لك", true},
		// greeting word but more than four tokens
		{"مرحبا اريد التحقق من خبر عاجل اليوم", false},
		// short but no greeting keyword
		{"خبر عاجل", false},
	}
	for _, tc := range tests {
		if got := IsCasual(tc.in); got != tc.want {
			t.Errorf("IsCasual(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
