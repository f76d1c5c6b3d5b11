package endpoints

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Descriptor describes one documented HTTP operation
type Descriptor struct {
	Method       Method       `json:"method" validate:"http_method"`
	Path         PathTemplate `json:"path"`
	Description  string       `json:"description,omitempty"`
	RequiresAuth bool         `json:"requiresAuth"`
	// Hidden marks an endpoint that is registered but deliberately kept out
	// of the navigation. Lookup is unaffected.
	Hidden bool `json:"hidden,omitempty"`
}

// Group is a feature area of the documented API
type Group struct {
	Tag       string `json:"tag" validate:"required,lowercase,alphanum"`
	Title     string `json:"title" validate:"required"`
	Collapsed bool   `json:"collapsed"`
}

// Entry binds a symbolic key and a group to a descriptor
type Entry struct {
	Key   string `json:"key" validate:"required,endpoint_key"`
	Group string `json:"group" validate:"required"`
	Descriptor
}

var (
	keyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	rules := map[string]validator.Func{
		"endpoint_key": func(fl validator.FieldLevel) bool {
			return keyPattern.MatchString(fl.Field().String())
		},
		"http_method": func(fl validator.FieldLevel) bool {
			return Method(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("endpoints: register %s validation: %v", tag, err))
		}
	}
	return v
}

// Registry is an immutable, ordered table of endpoint descriptors. It is
// safe for concurrent use once constructed.
type Registry struct {
	groups     []Group
	groupIndex map[string]int
	entries    []Entry
	index      map[string]int
}

// NewRegistry validates groups and entries and builds a registry that keeps
// their declaration order.
func NewRegistry(groups []Group, entries []Entry) (*Registry, error) {
	r := &Registry{
		groups:     slices.Clone(groups),
		groupIndex: make(map[string]int, len(groups)),
		entries:    slices.Clone(entries),
		index:      make(map[string]int, len(entries)),
	}

	for i, g := range r.groups {
		if err := validate.Struct(g); err != nil {
			return nil, fmt.Errorf("%w: group %q: %v", ErrInvalidEntry, g.Tag, err)
		}
		if _, exists := r.groupIndex[g.Tag]; exists {
			return nil, fmt.Errorf("%w: duplicate group %q", ErrInvalidEntry, g.Tag)
		}
		r.groupIndex[g.Tag] = i
	}

	for i, e := range r.entries {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidEntry, e.Key, err)
		}
		if e.Path.IsZero() {
			return nil, fmt.Errorf("%w: %q: path template is required", ErrInvalidEntry, e.Key)
		}
		if _, ok := r.groupIndex[e.Group]; !ok {
			return nil, fmt.Errorf("%w: %q references %q", ErrUnknownGroup, e.Key, e.Group)
		}
		if _, exists := r.index[e.Key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
		}
		r.index[e.Key] = i
	}

	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error
func MustNewRegistry(groups []Group, entries []Entry) *Registry {
	r, err := NewRegistry(groups, entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor registered under key. Keys are case-sensitive.
func (r *Registry) Lookup(key string) (Descriptor, error) {
	i, ok := r.index[key]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return r.entries[i].Descriptor, nil
}

// Entry returns the full entry registered under key
func (r *Registry) Entry(key string) (Entry, error) {
	i, ok := r.index[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return r.entries[i], nil
}

// ListByGroup yields the entries declared under the group tag, in declaration
// order. Every range over the returned sequence starts from the beginning.
// An unknown tag yields nothing.
func (r *Registry) ListByGroup(tag string) iter.Seq2[string, Descriptor] {
	return func(yield func(string, Descriptor) bool) {
		for _, e := range r.entries {
			if e.Group != tag {
				continue
			}
			if !yield(e.Key, e.Descriptor) {
				return
			}
		}
	}
}

// All yields every entry in declaration order
func (r *Registry) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range r.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Keys returns all keys in declaration order
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Groups returns the declared groups in order
func (r *Registry) Groups() []Group {
	return slices.Clone(r.groups)
}

// Group returns the group declared under tag
func (r *Registry) Group(tag string) (Group, bool) {
	i, ok := r.groupIndex[tag]
	if !ok {
		return Group{}, false
	}
	return r.groups[i], true
}

// Len returns the number of entries
func (r *Registry) Len() int {
	return len(r.entries)
}

// RenderExamplePath substitutes placeholder values into the descriptor's path
func RenderExamplePath(d Descriptor, values map[string]string) (string, error) {
	if d.Path.IsZero() {
		return "", errors.New("descriptor has no path template")
	}
	return d.Path.Render(values)
}
