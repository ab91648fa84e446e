package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrMalformed   = errors.New("catalog malformed")
)

// Entry is one crime card: what it is called and how many years it adds.
type Entry struct {
	Name  string `json:"name"`
	Years int    `json:"years"`
}

type document struct {
	Crimes json.RawMessage `json:"crimes"`
}

type rawEntry struct {
	Name  json.RawMessage `json:"name"`
	Years json.RawMessage `json:"years"`
}

// Load reads the catalog file at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a {"crimes": [...]} document. Rows are returned in source
// order; duplicates are kept.
func Parse(r io.Reader) ([]Entry, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if isAbsent(doc.Crimes) {
		return nil, fmt.Errorf("%w: missing \"crimes\" key", ErrMalformed)
	}

	var rows []rawEntry
	if err := json.Unmarshal(doc.Crimes, &rows); err != nil {
		return nil, fmt.Errorf("%w: \"crimes\" is not a list of objects: %v", ErrMalformed, err)
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		e, err := parseEntry(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(row rawEntry) (Entry, error) {
	if isAbsent(row.Name) {
		return Entry{}, errors.New("missing name")
	}
	var name string
	if err := json.Unmarshal(row.Name, &name); err != nil {
		return Entry{}, errors.New("name is not a string")
	}
	if name == "" {
		return Entry{}, errors.New("empty name")
	}

	if isAbsent(row.Years) {
		return Entry{}, fmt.Errorf("%q: missing years", name)
	}
	var years int
	if err := json.Unmarshal(row.Years, &years); err != nil {
		return Entry{}, fmt.Errorf("%q: years is not an integer", name)
	}
	if years <= 0 {
		return Entry{}, fmt.Errorf("%q: years must be positive, got %d", name, years)
	}

	return Entry{Name: name, Years: years}, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
