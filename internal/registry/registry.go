// Package registry turns uploaded personnel/vehicle CSV exports into
// registry records. It is pure: no I/O, no clock, no shared state.
//
// Two layouts are understood. Standard files have a header row naming the
// columns; the parser maps columns by header and repairs misplaced values
// with the field classifier. Messy files are fixed-offset legacy exports
// without usable headers.
package registry

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// Result is the outcome of parsing one file.
type Result struct {
	Kind    domain.FileKind
	Records []domain.RegistryRecord
}

// Parse detects the layout of text and extracts its records.
func Parse(text string) Result {
	lines := splitLines(text)
	kind := Detect(lines)
	if kind == domain.FileKindStandard {
		return Result{Kind: kind, Records: ParseStandard(lines)}
	}
	return Result{Kind: kind, Records: ParseMessy(lines)}
}

// Import parses text and wraps the records into an active RegistryFile named
// fileName and uploaded at now.
func Import(text, fileName string, now time.Time) domain.RegistryFile {
	return NewFile(fileName, Parse(text), now)
}

// fileDatePattern finds D.M.YY, D-M-YYYY and similar dates in file names.
var fileDatePattern = regexp.MustCompile(`(\d{1,2})[.-](\d{1,2})[.-](\d{4}|\d{2})`)

// ParseFileDate recovers the export date from a file name such as
// "workers 5.3.24.csv" and returns it as "2006-01-02". Names without a valid
// date fall back to the date of now.
func ParseFileDate(fileName string, now time.Time) string {
	m := fileDatePattern.FindStringSubmatch(fileName)
	if m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		if d.Day() == day && int(d.Month()) == month {
			return d.Format(time.DateOnly)
		}
	}
	return now.Format(time.DateOnly)
}

// NewFile wraps a parse result into an active RegistryFile uploaded at now.
func NewFile(fileName string, res Result, now time.Time) domain.RegistryFile {
	records := res.Records
	if records == nil {
		records = []domain.RegistryRecord{}
	}
	return domain.RegistryFile{
		ID:         uuid.New(),
		FileName:   fileName,
		FileDate:   ParseFileDate(fileName, now),
		UploadedAt: now,
		IsActive:   true,
		Kind:       res.Kind,
		Data:       records,
	}
}
