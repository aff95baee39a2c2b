package registry

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// field identifies a record field a header cell can be mapped to.
type field int

const (
	fieldName field = iota
	fieldID
	fieldPhone
	fieldOrg
	fieldPlate
	fieldTrailer
	fieldCount
)

// headerPatterns are matched against header cells split by headerWords. More specific
// fields come first and claim their cell, so "org name" is an organization
// column rather than a name column.
var headerPatterns = []struct {
	field field
	re    *regexp.Regexp
}{
	{fieldOrg, regexp.MustCompile(`organi[sz]ation|\borg\b|company|agency|ארגון|חברה|גוף`)},
	{fieldTrailer, regexp.MustCompile(`trailer|נגרר|עגלה`)},
	{fieldPlate, regexp.MustCompile(`plate|vehicle|truck|\bcar\b|רכב|משאית|לוחית|רישוי`)},
	{fieldPhone, regexp.MustCompile(`phone|mobile|\btel\b|טלפון|נייד|פלאפון`)},
	{fieldID, regexp.MustCompile(`\bid\b|passport|identity|ת["'.״]?ז|זהות|דרכון`)},
	{fieldName, regexp.MustCompile(`name|שם`)},
}

// columns maps each field to its header index, -1 when no header matched.
type columns [fieldCount]int

// locateColumns finds, for every field, the first header cell matching its
// pattern that no earlier field has already claimed.
func locateColumns(header []string) columns {
	var c columns
	for i := range c {
		c[i] = -1
	}
	taken := make([]bool, len(header))
	for _, p := range headerPatterns {
		for i, cell := range header {
			if taken[i] || !p.re.MatchString(headerWords(cell)) {
				continue
			}
			c[p.field] = i
			taken[i] = true
			break
		}
	}
	return c
}

// ParseStandard parses a labeled export whose first line is the header row.
// Values in the wrong column are moved by the repair pass, phones and plates
// are normalized, and records whose name is shorter than two characters
// are dropped.
func ParseStandard(lines []string) []domain.RegistryRecord {
	records := []domain.RegistryRecord{}
	if len(lines) == 0 {
		return records
	}
	cols := locateColumns(SplitQuoted(lines[0]))
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rec, ok := parseStandardLine(SplitQuoted(line), cols); ok {
			records = append(records, rec)
		}
	}
	return records
}

func parseStandardLine(cells []string, cols columns) (domain.RegistryRecord, bool) {
	claimed := make([]bool, len(cells))
	cell := func(f field) string {
		i := cols[f]
		if i < 0 || i >= len(cells) {
			return ""
		}
		claimed[i] = true
		return cells[i]
	}

	rec := domain.RegistryRecord{
		Name:    cell(fieldName),
		ID:      cell(fieldID),
		Phone:   cell(fieldPhone),
		Org:     cell(fieldOrg),
		Truck:   cell(fieldPlate),
		Trailer: cell(fieldTrailer),
	}

	if LooksLikePlate(rec.Phone) && LooksLikePhone(rec.Truck) {
		rec.Phone, rec.Truck = rec.Truck, rec.Phone
	}

	if rec.ID == "" || rec.Phone == "" || rec.Truck == "" {
		repair(&rec, cells, cols[fieldName], claimed)
	}

	var extra []string
	for i, v := range cells {
		if !claimed[i] && v != "" {
			extra = append(extra, v)
		}
	}
	rec.Extra = strings.Join(extra, ", ")

	rec.Name = strings.TrimSpace(rec.Name)
	rec.Phone = NormalizePhone(rec.Phone)
	rec.Truck = FormatPlate(rec.Truck)
	rec.Trailer = FormatPlate(rec.Trailer)

	return rec, utf8.RuneCountInString(rec.Name) > 1
}

// repair offers every non-empty column except the name column to
// repairRules in order and marks the columns it copies into a slot as
// claimed. Columns already holding an id, phone or plate value of rec are
// not offered again, so a plate is never copied into the trailer slot twice.
func repair(rec *domain.RegistryRecord, cells []string, nameCol int, claimed []bool) {
	for i, v := range cells {
		if i == nameCol || v == "" || holds(rec, v) {
			continue
		}
		for _, rule := range repairRules {
			if rule.match(v) && fill(rec, rule.slot, v) {
				claimed[i] = true
				break
			}
		}
	}
}

func holds(rec *domain.RegistryRecord, v string) bool {
	return v == rec.ID || v == rec.Phone || v == rec.Truck || v == rec.Trailer
}

// fill stores v in the given slot if it is still empty. A plate goes to the
// trailer once the truck is known.
func fill(rec *domain.RegistryRecord, s slot, v string) bool {
	switch s {
	case slotID:
		if rec.ID == "" {
			rec.ID = v
			return true
		}
	case slotPhone:
		if rec.Phone == "" {
			rec.Phone = v
			return true
		}
	case slotPlate:
		if rec.Truck == "" {
			rec.Truck = v
			return true
		}
		if rec.Trailer == "" {
			rec.Trailer = v
			return true
		}
	}
	return false
}
