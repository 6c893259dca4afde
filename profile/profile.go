package profile

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// DefaultName is the name of the section holding fallback values.
const DefaultName = "DEFAULT"

// Section is one named group of settings from the configuration store.
type Section struct {
	Name   string
	Values map[string]string
}

// Store holds every section of the configuration store.
type Store struct {
	Default  Section
	Sections []Section
}

// Profile is a resolved profile: the values of the selected section layered
// over the DEFAULT section.
type Profile struct {
	// Name is the name of the section that was selected.
	Name   string
	Values map[string]string
}

// Get returns the value stored under key.
func (p *Profile) Get(key string) (string, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// Resolve selects the section for name.
//
// DefaultName and exact matches win. Otherwise the first section, in
// declaration order, whose name starts with name is used. ErrProfileNotFound
// is returned when nothing matches.
func Resolve(name string, store Store) (*Profile, error) {
	if name == "" || name == DefaultName {
		return &Profile{Name: DefaultName, Values: maps.Clone(valuesOf(store.Default))}, nil
	}

	section, ok := store.Lookup(name)
	if !ok {
		section, ok = store.LookupPrefix(name)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	values := maps.Clone(valuesOf(store.Default))
	maps.Copy(values, section.Values)

	return &Profile{Name: section.Name, Values: values}, nil
}

// Lookup returns the section named exactly name.
func (s Store) Lookup(name string) (Section, bool) {
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return s.Sections[i], true
		}
	}
	return Section{}, false
}

// LookupPrefix returns the first section whose name starts with prefix.
func (s Store) LookupPrefix(prefix string) (Section, bool) {
	for i := range s.Sections {
		if strings.HasPrefix(s.Sections[i].Name, prefix) {
			return s.Sections[i], true
		}
	}
	return Section{}, false
}

// Names returns the section names in declaration order.
func (s Store) Names() []string {
	names := make([]string, len(s.Sections))
	for i := range s.Sections {
		names[i] = s.Sections[i].Name
	}
	return names
}

func valuesOf(s Section) map[string]string {
	if s.Values == nil {
		return map[string]string{}
	}
	return s.Values
}

// NewSection builds a Section from loosely typed values such as those
// produced by a YAML decoder. Scalars are formatted with fmt, lists are
// joined with commas and nested maps are rejected.
func NewSection(name string, raw map[string]any) (Section, error) {
	if name == "" {
		return Section{}, ErrUnnamedSection
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		s, err := stringify(v)
		if err != nil {
			return Section{}, fmt.Errorf("section %s: key %s: %w", name, k, err)
		}
		values[k] = s
	}
	return Section{Name: name, Values: values}, nil
}

func stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, err := stringify(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case []string:
		return strings.Join(val, ","), nil
	case map[string]any:
		return "", errors.New("nested values are not supported")
	default:
		return fmt.Sprint(val), nil
	}
}
