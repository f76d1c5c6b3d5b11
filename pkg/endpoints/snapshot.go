package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// Snapshot is the serialized form of a registry, used to compare catalogs
// across releases.
type Snapshot struct {
	Groups  []Group `json:"groups"`
	Entries []Entry `json:"entries"`
}

// Snapshot copies the registry's groups and entries
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Groups:  slices.Clone(r.groups),
		Entries: slices.Clone(r.entries),
	}
}

// WriteSnapshot encodes the registry as indented JSON
func (r *Registry) WriteSnapshot(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot and rebuilds a validated registry from it
func ReadSnapshot(rd io.Reader) (*Registry, error) {
	var snap Snapshot
	if err := json.NewDecoder(rd).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return NewRegistry(snap.Groups, snap.Entries)
}
