package registry

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nonDigit       = regexp.MustCompile(`\D`)
	exactlyNine    = regexp.MustCompile(`^\d{9}$`)
	lettersNumbers = regexp.MustCompile(`^[A-Za-z]+\d+$`)
)

// phonePrefixes are the leading digit runs of local mobile numbers, with and
// without the country code or the trunk zero.
var phonePrefixes = []string{"05", "972", "59", "56"}

// digitsOnly drops every character that is not an ASCII digit.
func digitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// LooksLikePhone reports whether s reads as a local mobile number: its digits
// start with a known prefix and there are at least nine of them.
func LooksLikePhone(s string) bool {
	d := digitsOnly(s)
	if len(d) < 9 {
		return false
	}
	for _, p := range phonePrefixes {
		if strings.HasPrefix(d, p) {
			return true
		}
	}
	return false
}

// LooksLikeID reports whether s is a nine-digit national id or a
// letters-then-digits identifier such as AB1234.
func LooksLikeID(s string) bool {
	s = strings.TrimSpace(s)
	return exactlyNine.MatchString(s) || lettersNumbers.MatchString(s)
}

// LooksLikePlate reports whether s reads as a vehicle plate. Seven and eight
// digit runs count unless they start with 05, which is a phone prefix; short
// hyphenated strings with more than five digits count as well.
func LooksLikePlate(s string) bool {
	s = strings.TrimSpace(s)
	d := digitsOnly(s)
	if (len(d) == 7 || len(d) == 8) && !strings.HasPrefix(d, "05") {
		return true
	}
	return strings.Contains(s, "-") && utf8.RuneCountInString(s) < 12 && len(d) > 5
}

// NormalizePhone rewrites raw as XXX-XXX-XXXX. The 972 country code becomes a
// leading zero and a nine-digit number starting with 5 gets its zero back.
// Inputs with fewer than ten digits after that are returned unchanged.
func NormalizePhone(raw string) string {
	d := digitsOnly(raw)
	if strings.HasPrefix(d, "972") {
		d = "0" + d[3:]
	}
	if len(d) == 9 && d[0] == '5' {
		d = "0" + d
	}
	if len(d) < 10 {
		return raw
	}
	return d[:3] + "-" + d[3:6] + "-" + d[6:]
}

// FormatPlate groups an eight-digit plate as XXX-XX-XXX and a seven-digit
// plate as XX-XXX-XX. Anything else is returned unchanged.
func FormatPlate(raw string) string {
	d := digitsOnly(raw)
	switch len(d) {
	case 8:
		return d[:3] + "-" + d[3:5] + "-" + d[5:]
	case 7:
		return d[:2] + "-" + d[2:5] + "-" + d[5:]
	default:
		return raw
	}
}

// slot is a record field a column value can be moved into by the repair pass.
type slot int

const (
	slotID slot = iota
	slotPhone
	slotPlate
)

// repairRule pairs a predicate with the slot a matching value belongs to.
type repairRule struct {
	slot  slot
	match func(string) bool
}

// repairRules are evaluated top to bottom for every column offered by repair. The
// first rule that matches and still has room wins the column.
var repairRules = []repairRule{
	{slot: slotID, match: LooksLikeID},
	{slot: slotPhone, match: LooksLikePhone},
	{slot: slotPlate, match: LooksLikePlate},
}
