package registry

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// headerTokens matches the column titles a labeled export uses, in English
// and Hebrew. English words are matched whole against the output of
// headerWords, so "valid" or "paid" never pass for an id column.
var headerTokens = regexp.MustCompile(
	`(?i)\b(names?|ids?|phones?|mobiles?|plates?|vehicles?|trucks?|orgs?|organi[sz]ations?|company)\b` +
		`|שם|ת["'.״]?ז|זהות|טלפון|נייד|פלאפון|רכב|משאית|לוחית|ארגון`,
)

// Detect classifies a file by its first two lines: any recognized header
// token makes it standard, otherwise it is treated as a messy legacy export.
func Detect(lines []string) domain.FileKind {
	head := lines
	if len(head) > 2 {
		head = head[:2]
	}
	if headerTokens.MatchString(headerWords(strings.Join(head, " "))) {
		return domain.FileKindStandard
	}
	return domain.FileKindMessy
}

// headerWords lower-cases s and splits compound column titles into words:
// underscores become spaces and a space is inserted at camelCase and
// letter/digit boundaries, so "driver_id", "IDNumber" and "Mobile1" read as
// "driver id", "id number" and "mobile 1".
func headerWords(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if r == '_' {
			b.WriteByte(' ')
			continue
		}
		if i > 0 && wordBreak(rs[i-1], r, rs[i+1:]) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// wordBreak reports whether a new word starts at cur.
func wordBreak(prev, cur rune, rest []rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur):
		// the last capital of an acronym starts the next word: "IDNumber"
		return len(rest) > 0 && unicode.IsLower(rest[0])
	case unicode.IsLetter(prev) && unicode.IsDigit(cur),
		unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	}
	return false
}
