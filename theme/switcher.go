package theme

import (
	"fmt"
	"maps"
	"slices"
)

// Switcher holds several named property sets and serves lookups from the
// active one. Toggling takes effect on the next Read.
type Switcher struct {
	names  []string
	sets   map[string]Properties
	active int
}

// NewSwitcher builds a switcher over the given sets with active selected.
func NewSwitcher(sets map[string]map[string]string, active string) (*Switcher, error) {
	s := &Switcher{
		names: slices.Sorted(maps.Keys(sets)),
		sets:  make(map[string]Properties, len(sets)),
	}
	for name, props := range sets {
		s.sets[name] = Properties(props)
	}
	if len(s.names) == 0 {
		return s, nil
	}
	if active == "" {
		return s, nil
	}
	if err := s.Select(active); err != nil {
		return nil, err
	}
	return s, nil
}

// Select makes the named set active.
func (s *Switcher) Select(name string) error {
	idx := slices.Index(s.names, name)
	if idx < 0 {
		return fmt.Errorf("selecting theme %q: %w", name, ErrUnknownTheme)
	}
	s.active = idx
	return nil
}

// Toggle advances to the next set in name order and returns its name.
func (s *Switcher) Toggle() string {
	if len(s.names) == 0 {
		return ""
	}
	s.active = (s.active + 1) % len(s.names)
	return s.names[s.active]
}

// Active returns the active set name, or "" when there are no sets.
func (s *Switcher) Active() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[s.active]
}

// Lookup implements Source against the active set.
func (s *Switcher) Lookup(name string) (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	return s.sets[s.names[s.active]].Lookup(name)
}
