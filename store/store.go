// Package store holds the variables of a running script.
//
// Every value is kept as text. Whether a value is an integer is decided
// each time it is used, by trying to parse it; nothing is tagged.
package store

import (
	"sort"
	"strconv"
)

// Store maps variable names to their current text value.
// A Store lives for a whole run and is never reset.
type Store struct {
	vars map[string]string
}

// New creates an empty store
func New() *Store {
	return &Store{vars: make(map[string]string)}
}

// Get returns the value of name and whether it has been assigned
func (s *Store) Get(name string) (string, bool) {
	value, ok := s.vars[name]
	return value, ok
}

// Set stores value under name, creating the variable if needed
func (s *Store) Set(name, value string) {
	s.vars[name] = value
}

// Len returns the number of assigned variables
func (s *Store) Len() int {
	return len(s.vars)
}

// Names returns all variable names in sorted order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of every variable
func (s *Store) Snapshot() map[string]string {
	snapshot := make(map[string]string, len(s.vars))
	for name, value := range s.vars {
		snapshot[name] = value
	}
	return snapshot
}

// IsInteger reports whether value is a base-10 signed 32-bit integer:
// an optional sign followed by digits only, with no surrounding whitespace.
func IsInteger(value string) bool {
	_, ok := ParseInteger(value)
	return ok
}

// ParseInteger parses value with the same rules as IsInteger
func ParseInteger(value string) (int32, bool) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// FormatInteger renders n in decimal
func FormatInteger(n int32) string {
	return strconv.FormatInt(int64(n), 10)
}
