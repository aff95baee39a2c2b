package domain

// ExportRow is a single row of the arrivals report.
// Date and Time are already formatted in the configured local time zone
// ("02/01/2006" and "15:04") so the CSV writer can emit them verbatim.
type ExportRow struct {
	Date   string
	Time   string
	Org    string
	Type   string
	Status string
}
