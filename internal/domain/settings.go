package domain

// Defaults applied to Settings fields that are missing from a stored blob.
const (
	DefaultMaxSearchResults = 50
	MaxSearchResultsLimit   = 500
)

// Settings holds user preferences that travel with the state blob.
type Settings struct {
	// HideEmpty omits zero-value counters from the share message.
	HideEmpty bool `json:"hide_empty"`

	// MaxSearchResults caps the number of registry search hits.
	MaxSearchResults int `json:"max_search_results"`

	// Categories lists the allowed LogEntry.Type values.
	Categories []string `json:"categories"`
}

// DefaultCategories returns the log categories of a fresh state.
func DefaultCategories() []string {
	return []string{"משאית", "מכולה"}
}

// DefaultSettings returns the settings of a fresh state.
func DefaultSettings() Settings {
	return Settings{
		MaxSearchResults: DefaultMaxSearchResults,
		Categories:       DefaultCategories(),
	}
}
