package testcase

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store keeps test cases as one YAML document per file, keyed by id.
type Store struct {
	dir string
}

// NewStore creates the backing directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create test case directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}

// Save writes the test case, refreshing its modification timestamp.
func (s *Store) Save(tc *TestCase) error {
	if tc.ID == "" {
		return fmt.Errorf("test case has no id")
	}
	tc.Touch()
	data, err := yaml.Marshal(tc)
	if err != nil {
		return fmt.Errorf("marshal test case: %w", err)
	}
	if err := os.WriteFile(s.path(tc.ID), data, 0644); err != nil {
		return fmt.Errorf("write test case: %w", err)
	}
	return nil
}

// Load reads one test case by id.
func (s *Store) Load(id string) (*TestCase, error) {
	return LoadFile(s.path(id))
}

// Delete removes a test case file.
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("delete test case: %w", err)
	}
	return nil
}

// List loads every test case in the store, sorted by name. Files that
// fail to parse are skipped so one bad document never hides the rest.
func (s *Store) List() ([]*TestCase, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read test case directory: %w", err)
	}
	var cases []*TestCase
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		tc, err := LoadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		cases = append(cases, tc)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

// Search returns cases whose name contains the query (case-insensitive)
// or that carry it as a tag.
func (s *Store) Search(query string) ([]*TestCase, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*TestCase
	for _, tc := range all {
		if strings.Contains(strings.ToLower(tc.Name), q) || tc.HasTag(query) {
			out = append(out, tc)
		}
	}
	return out, nil
}

// LoadFile strict-decodes a single test case document.
func LoadFile(path string) (*TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test case: %w", err)
	}
	return Load(data)
}

// Load strict-decodes YAML so unknown fields surface as errors instead of
// being silently dropped.
func Load(data []byte) (*TestCase, error) {
	var tc TestCase
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&tc); err != nil {
		return nil, fmt.Errorf("parse test case: %w", err)
	}
	return &tc, nil
}
