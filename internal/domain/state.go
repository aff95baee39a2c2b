// Package domain contains the core data types for the checkpoint logbook.
// This package only depends on uuid and is imported by every other
// internal package (registry, repo, service, handler).
package domain

// StateVersion is the schema version written with every stored blob.
// Version 1 blobs predate registry files and settings.
const StateVersion = 2

// State is the whole persisted application state. It is read and written
// as one JSON blob; there is no partial persistence.
type State struct {
	Version       int            `json:"version"`
	Counters      []Counter      `json:"counters"`
	Logs          []LogEntry     `json:"logs"`
	RegistryFiles []RegistryFile `json:"registry_files"`
	Settings      Settings       `json:"settings"`
}

// DefaultState returns the seed state used when nothing is stored yet or the
// stored blob cannot be decoded.
func DefaultState() State {
	return State{
		Version:       StateVersion,
		Counters:      DefaultCounters(),
		Logs:          []LogEntry{},
		RegistryFiles: []RegistryFile{},
		Settings:      DefaultSettings(),
	}
}

// ApplyDefaults fills fields that older or hand-edited blobs leave out so
// callers never have to treat a missing field as meaningful.
func (s *State) ApplyDefaults() {
	if s.Counters == nil {
		s.Counters = DefaultCounters()
	}
	if s.Logs == nil {
		s.Logs = []LogEntry{}
	}
	if s.RegistryFiles == nil {
		s.RegistryFiles = []RegistryFile{}
	}
	for i := range s.RegistryFiles {
		if s.RegistryFiles[i].Data == nil {
			s.RegistryFiles[i].Data = []RegistryRecord{}
		}
		if s.RegistryFiles[i].Kind == "" {
			s.RegistryFiles[i].Kind = FileKindStandard
		}
	}
	if s.Settings.MaxSearchResults <= 0 {
		s.Settings.MaxSearchResults = DefaultMaxSearchResults
	}
	if len(s.Settings.Categories) == 0 {
		s.Settings.Categories = DefaultCategories()
	}
	s.Version = StateVersion
}
