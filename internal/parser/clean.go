package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// BoilerplatePatterns are the case-insensitive keywords that mark a text
// block as navigation, legal or advertising noise.
var BoilerplatePatterns = []string{
	"advertisement",
	"subscribe",
	"privacy policy",
	"cookie policy",
	"navigation",
	"menu",
	"social media",
	"contact us",
	"legal",
	"terms of use",
}

var boilerplateRe = compileBoilerplate(BoilerplatePatterns)

func compileBoilerplate(patterns []string) *regexp.Regexp {
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}

// CleanText collapses whitespace runs to a single space, trims the result
// and removes every rune below U+0020. Control characters that are
// whitespace (tab, newline, ...) count as separators; the rest are dropped.
// CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 {
			if unicode.IsSpace(r) {
				return ' '
			}
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// IsBoilerplate reports whether s matches any boilerplate pattern.
func IsBoilerplate(s string) bool {
	return boilerplateRe.MatchString(s)
}

// Assemble cleans each candidate, drops empty and boilerplate blocks and
// joins the survivors with newlines in their original order.
func Assemble(candidates []string) string {
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		cleaned := CleanText(c)
		if cleaned == "" || IsBoilerplate(cleaned) {
			continue
		}
		kept = append(kept, cleaned)
	}
	return strings.Join(kept, "\n")
}
