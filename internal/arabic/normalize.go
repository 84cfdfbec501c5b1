// Package arabic canonicalizes Arabic text for matching: diacritic and
// tatweel stripping, letter-variant folding, Eastern-digit folding, and a
// static alias table expanding colloquial short forms to canonical names.
package arabic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const tatweel = 'ـ'

// minTokenLen is the minimum token length (in runes) for the lexical token
// set. The embedding input is not filtered this way.
const minTokenLen = 2

// Normalize canonicalizes Arabic text: strips diacritics and tatweel, folds
// hamza-bearing alef forms to bare alef, taa marbuta to haa, alef maksura and
// yaa-hamza to yaa, waw-hamza to waw, folds Eastern digits to ASCII, drops
// everything outside Arabic letters/ASCII digits/whitespace, and collapses
// whitespace runs. Normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDiacritic(r) || r == tatweel {
			continue
		}
		r = foldLetter(r)
		if r >= '٠' && r <= '٩' { // Arabic-Indic digits
			r = '0' + (r - '٠')
		}
		if isAllowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandAliases returns the normalized text with each alias token followed by
// the tokens of its canonical expansion. The original token is kept so
// downstream overlap matches either form. First matching alias entry wins.
func ExpandAliases(text string) string {
	norm := Normalize(text)
	if norm == "" {
		return ""
	}

	words := strings.Split(norm, " ")
	expanded := make([]string, 0, len(words))
	for _, w := range words {
		expanded = append(expanded, w)
		for _, a := range aliasTable {
			if a.short == w {
				expanded = append(expanded, strings.Fields(a.full)...)
				break
			}
		}
	}
	return strings.Join(expanded, " ")
}

// TokenSet returns the alias-expanded token set of text, dropping tokens
// shorter than two runes.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(ExpandAliases(text)) {
		if utf8.RuneCountInString(w) >= minTokenLen {
			set[w] = struct{}{}
		}
	}
	return set
}

// questionWords are Arabic interrogatives signalling question intent.
var questionWords = map[string]struct{}{
	"هل": {}, "ماذا": {}, "متى": {}, "أين": {}, "لماذا": {},
	"كيف": {}, "من": {}, "بكم": {}, "كم": {},
}

// IsQuestion reports whether any whitespace-separated token of the raw text
// is an Arabic interrogative.
func IsQuestion(text string) bool {
	for _, w := range strings.Fields(strings.TrimSpace(text)) {
		if _, ok := questionWords[w]; ok {
			return true
		}
	}
	return false
}

// casualKeywords mark greetings and pleasantries.
var casualKeywords = []string{
	"مرحبا", "مرحباً", "اهلا", "أهلا", "هلا", "السلام",
	"صباح", "مساء", "شكرا", "شكراً", "تحية",
}

// IsCasual reports whether text is a short casual message: at most four
// tokens and containing a greeting keyword.
func IsCasual(text string) bool {
	if len(strings.Fields(text)) > 4 {
		return false
	}
	for _, kw := range casualKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// isDiacritic reports whether r is an Arabic diacritical mark.
func isDiacritic(r rune) bool {
	switch {
	case r >= 'ؗ' && r <= 'ؚ':
		return true
	case r >= 'ً' && r <= 'ْ':
		return true
	case r >= 'ٗ' && r <= 'ٟ':
		return true
	case r == 'ٰ':
		return true
	case r >= 'ۖ' && r <= 'ۭ':
		return true
	}
	return false
}

// foldLetter maps orthographic letter variants to a canonical form.
func foldLetter(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ': // hamza-bearing alef forms
		return 'ا' // alef
	case 'ى', 'ئ': // alef maksura, yaa with hamza
		return 'ي' // yaa
	case 'ؤ': // waw with hamza
		return 'و' // waw
	case 'ة': // taa marbuta
		return 'ه' // haa
	}
	return r
}

// isAllowed keeps Arabic letters, ASCII digits, and whitespace.
func isAllowed(r rune) bool {
	switch {
	case r >= 'ء' && r <= 'غ':
		return true
	case r >= 'ف' && r <= 'ي':
		return true
	case r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return false
}
