package domain

import (
	"time"

	"github.com/google/uuid"
)

// RegistryRecord is one personnel/vehicle line extracted from an uploaded CSV.
// Name is always non-empty; every other field may be empty.
// Phone is normalized to XXX-XXX-XXXX when it has at least ten digits, and
// Truck/Trailer are formatted plates when they have seven or eight digits.
type RegistryRecord struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Phone   string `json:"phone"`
	Org     string `json:"org"`
	Truck   string `json:"truck"`
	Trailer string `json:"trailer"`
	Extra   string `json:"extra"`
}

// FileKind says which parser produced a RegistryFile.
type FileKind string

const (
	// FileKindStandard is a CSV with a recognizable header row.
	FileKindStandard FileKind = "standard"
	// FileKindMessy is an unlabeled fixed-offset legacy export.
	FileKindMessy FileKind = "messy"
)

// RegistryFile groups the records imported from one uploaded file.
// It is created on upload and afterwards only toggled active/inactive or deleted.
type RegistryFile struct {
	ID         uuid.UUID        `json:"id"`
	FileName   string           `json:"file_name"`
	FileDate   string           `json:"file_date"` // "2006-01-02"
	UploadedAt time.Time        `json:"uploaded_at"`
	IsActive   bool             `json:"is_active"`
	Kind       FileKind         `json:"kind"`
	Data       []RegistryRecord `json:"data"`
}

// RegistryFileSummary describes a stored file without its records.
type RegistryFileSummary struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	FileDate   string    `json:"file_date"`
	UploadedAt time.Time `json:"uploaded_at"`
	IsActive   bool      `json:"is_active"`
	Kind       FileKind  `json:"kind"`
	Records    int       `json:"records"`
}

// Summary returns the file's metadata and record count.
func (f RegistryFile) Summary() RegistryFileSummary {
	return RegistryFileSummary{
		ID:         f.ID,
		FileName:   f.FileName,
		FileDate:   f.FileDate,
		UploadedAt: f.UploadedAt,
		IsActive:   f.IsActive,
		Kind:       f.Kind,
		Records:    len(f.Data),
	}
}

// FileImport reports the outcome of importing one uploaded file.
// FileID is nil when nothing was stored for the file; Error is empty on success.
type FileImport struct {
	FileName string     `json:"file_name"`
	FileID   *uuid.UUID `json:"file_id,omitempty"`
	Kind     FileKind   `json:"kind,omitempty"`
	Records  int        `json:"records"`
	Error    string     `json:"error,omitempty"`
}

// ImportReport summarizes a batch upload.
type ImportReport struct {
	Files    []FileImport `json:"files"`
	Imported int          `json:"imported"`
}

// SortDirection orders search results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchQuery selects registry records. An empty Text matches every record;
// an empty SortColumn keeps upload order.
type SearchQuery struct {
	Text       string
	SortColumn string
	Direction  SortDirection
}

// SearchHit is a matching record together with the file it came from.
type SearchHit struct {
	RegistryRecord
	FileID   uuid.UUID `json:"file_id"`
	FileName string    `json:"file_name"`
	FileDate string    `json:"file_date"`
}
