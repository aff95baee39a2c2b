package registry

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

const (
	// messyBannerLines is the number of title lines legacy exports carry
	// before the first data row.
	messyBannerLines = 4

	// PrivateOrg is the organization given to rows that name no known agency.
	PrivateOrg = "פרטי"

	// MessyMarker is stored in Extra for every record read from a legacy export.
	MessyMarker = "יובא מקובץ לא מובנה"
)

// embeddedID finds an identifier that legacy exports glue onto the name.
var embeddedID = regexp.MustCompile(`SUNJ\d+|UN\d+|AUN\d+|\d{9}`)

// knownOrgs are searched in order in the upper-cased line.
var knownOrgs = []string{"WFP", "UNICEF", "UNOPS", "UK MED"}

// ParseMessy parses an unlabeled legacy export: banner lines are skipped, the
// name and id are read from fixed columns, and the organization is inferred
// from the whole line.
func ParseMessy(lines []string) []domain.RegistryRecord {
	records := []domain.RegistryRecord{}
	if len(lines) <= messyBannerLines {
		return records
	}
	for _, line := range lines[messyBannerLines:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitRaw(line)
		name, id := at(cells, 1), at(cells, 2)
		if corruptID(id) {
			name, id = recoverID(name, id)
		}
		if name == "" {
			continue
		}
		records = append(records, domain.RegistryRecord{
			Name:  name,
			ID:    id,
			Org:   inferOrg(line),
			Extra: MessyMarker,
		})
	}
	return records
}

func at(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

// corruptID reports whether the id column holds something other than an id:
// nothing, an agency label, or a fragment too short to identify anyone.
func corruptID(id string) bool {
	return id == "" ||
		strings.Contains(strings.ToUpper(id), "UNOPS") ||
		utf8.RuneCountInString(id) < 5
}

// recoverID moves an identifier embedded in name into the id, dropping the
// #/: separators around it. The inputs are returned as-is when name holds
// no identifier.
func recoverID(name, id string) (string, string) {
	loc := embeddedID.FindStringIndex(name)
	if loc == nil {
		return name, id
	}
	found := name[loc[0]:loc[1]]
	before := strings.TrimRight(name[:loc[0]], "#: ")
	after := strings.TrimLeft(name[loc[1]:], "#: ")
	return strings.TrimSpace(before + " " + after), found
}

func inferOrg(line string) string {
	upper := strings.ToUpper(line)
	for _, org := range knownOrgs {
		if strings.Contains(upper, org) {
			return org
		}
	}
	return PrivateOrg
}
