// Package classify turns free text into a semantic answer category.
package classify

import (
	"regexp"
	"strings"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// YesWords are affirmative words and phrases, matched as substrings.
var YesWords = []string{"اي", "ايه", "ايوه", "أيوه", "نعم", "تم", "اوكي", "طيب", "تمام", "يب", "يلا", "كملي", "اكمل"}

// NoWords are negative words and phrases, matched as substrings.
var NoWords = []string{"لا", "الغاء", "إلغاء", "وقف", "مو لازم", "ماابغى", "ما ابي"}

// Button values sent by hosts that cannot send Arabic; matched exactly.
const (
	LiteralYes = "yes"
	LiteralNo  = "no"
)

var (
	digitPattern    = regexp.MustCompile(`\p{Nd}`)
	deliveryPattern = regexp.MustCompile(`توصيل|بريد|استلام|فرع`)
	branchPattern   = regexp.MustCompile(`فرع|استلام`)
)

// NormalizeAlef replaces the hamza-above alef variant with the bare alef.
func NormalizeAlef(text string) string {
	return strings.ReplaceAll(text, "أ", "ا")
}

// Canonical trims the text and composes it to NFC so that decomposed input
// (alef followed by a combining hamza) compares equal to its composed form.
func Canonical(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// Classify maps text to an answer. The checks run in a fixed priority order and
// the first match wins: yes, no, duration, delivery, then free query.
func Classify(text string) domain.Answer {
	trimmed := Canonical(text)

	if IsYes(trimmed) {
		return domain.Yes()
	}
	if IsNo(trimmed) {
		return domain.No()
	}
	if digitPattern.MatchString(trimmed) {
		return domain.Duration(trimmed)
	}
	if deliveryPattern.MatchString(trimmed) {
		if branchPattern.MatchString(trimmed) {
			return domain.Delivery(domain.DeliveryBranch)
		}
		return domain.Delivery(domain.DeliveryPost)
	}
	return domain.FreeQuery(trimmed)
}

// IsYes reports whether text contains an affirmative word.
func IsYes(text string) bool {
	return fold(strings.TrimSpace(text)) == LiteralYes || includesAny(text, YesWords)
}

// IsNo reports whether text contains a negative word.
func IsNo(text string) bool {
	return fold(strings.TrimSpace(text)) == LiteralNo || includesAny(text, NoWords)
}

// fold lowercases with Unicode case folding. Casers are stateful, so one is built per call.
func fold(text string) string {
	return cases.Fold().String(text)
}

func includesAny(text string, words []string) bool {
	t := fold(NormalizeAlef(text))
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
