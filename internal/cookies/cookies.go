// Package cookies loads a browser cookie export and renders it as an HTTP
// Cookie header. Only name/value pairs are kept; domain and path scoping can
// be added later if the platform ever needs it.
package cookies

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entry is one cookie from a list-shaped export. Extra fields such as
// "domain" or "expires" are ignored.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Store is a normalized cookie set (name -> value).
type Store struct {
	values map[string]string
}

// Parse builds a Store from raw JSON. Two shapes are accepted: an object
// mapping cookie names to values, or a list of {name, value} entries where
// later entries override earlier ones on duplicate names.
func Parse(data []byte) (*Store, error) {
	values := make(map[string]string)

	// JSON null decodes into both shapes as a nil value; the nil checks keep
	// it from passing as an empty store.
	var asMap map[string]string
	if err := json.Unmarshal(data, &asMap); err == nil && asMap != nil {
		for name, value := range asMap {
			values[name] = value
		}
		return &Store{values: values}, nil
	}

	var asList []Entry
	if err := json.Unmarshal(data, &asList); err == nil && asList != nil {
		for _, e := range asList {
			values[e.Name] = e.Value
		}
		return &Store{values: values}, nil
	}

	return nil, fmt.Errorf("cookies: JSON must be a name->value object or a list of {name, value} entries")
}

// Load reads and parses a cookie file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cookies: reading %s: %w", path, err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cookies: parsing %s: %w", path, err)
	}
	return store, nil
}

// Len returns the number of cookies.
func (s *Store) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the store holds no cookies.
func (s *Store) IsEmpty() bool {
	return len(s.values) == 0
}

// Names returns the cookie names in sorted order. Names are safe to log;
// values are not.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HeaderValue renders the Cookie header, e.g. "a=1; b=2". Pairs are sorted
// by name so the output is deterministic.
func (s *Store) HeaderValue() string {
	names := s.Names()
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+s.values[name])
	}
	return strings.Join(pairs, "; ")
}
