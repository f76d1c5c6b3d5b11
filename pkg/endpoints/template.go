package endpoints

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// Segment is one slash-separated part of a path template. Exactly one of
// Literal and Param is set.
type Segment struct {
	Literal string
	Param   string
}

// IsParam reports whether the segment is a named placeholder
func (s Segment) IsParam() bool {
	return s.Param != ""
}

func (s Segment) String() string {
	if s.IsParam() {
		return "{" + s.Param + "}"
	}
	return s.Literal
}

// PathTemplate is a parsed URL path whose segments may be {name} placeholders.
// The zero value is an empty, unparsed template.
type PathTemplate struct {
	raw           string
	segments      []Segment
	trailingSlash bool
}

// ParseTemplate parses s strictly. Placeholders must span a whole segment,
// be identifiers and be unique within the template.
func ParseTemplate(s string) (PathTemplate, error) {
	fail := func(reason string) (PathTemplate, error) {
		return PathTemplate{}, fmt.Errorf("%w %q: %s", ErrInvalidTemplate, s, reason)
	}

	if !strings.HasPrefix(s, "/") {
		return fail("must start with /")
	}
	if strings.ContainsFunc(s, unicode.IsSpace) {
		return fail("contains whitespace")
	}
	if strings.ContainsAny(s, "?#") {
		return fail("query and fragment are not part of a path")
	}

	t := PathTemplate{raw: s}
	body := s[1:]
	if body == "" {
		return t, nil
	}
	if strings.HasSuffix(body, "/") {
		t.trailingSlash = true
		body = body[:len(body)-1]
	}

	seen := make(map[string]bool)
	for _, part := range strings.Split(body, "/") {
		if part == "" {
			return fail("empty segment")
		}

		if strings.HasPrefix(part, "{") {
			if !strings.HasSuffix(part, "}") {
				return fail("unterminated placeholder " + part)
			}
			name := part[1 : len(part)-1]
			if !isIdentifier(name) {
				return fail("invalid placeholder name " + part)
			}
			if seen[name] {
				return fail("duplicate placeholder {" + name + "}")
			}
			seen[name] = true
			t.segments = append(t.segments, Segment{Param: name})
			continue
		}

		if strings.ContainsAny(part, "{}") {
			return fail("placeholder must span a whole segment: " + part)
		}
		t.segments = append(t.segments, Segment{Literal: part})
	}

	return t, nil
}

// MustParseTemplate is ParseTemplate that panics on error. It is meant for
// static tables.
func MustParseTemplate(s string) PathTemplate {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// String returns the template as authored
func (t PathTemplate) String() string {
	return t.raw
}

// IsZero reports whether the template was never parsed
func (t PathTemplate) IsZero() bool {
	return t.raw == ""
}

// Segments returns a copy of the parsed segments
func (t PathTemplate) Segments() []Segment {
	return slices.Clone(t.segments)
}

// Params returns placeholder names in template order
func (t PathTemplate) Params() []string {
	var params []string
	for _, seg := range t.segments {
		if seg.IsParam() {
			params = append(params, seg.Param)
		}
	}
	return params
}

// HasParam reports whether name is a placeholder of the template
func (t PathTemplate) HasParam(name string) bool {
	for _, seg := range t.segments {
		if seg.Param == name {
			return true
		}
	}
	return false
}

// Render substitutes every placeholder with its value. A placeholder with no
// value (or an empty one) fails with ErrMissingPlaceholderValue, reported in
// template order; a value whose key is not a placeholder fails with
// ErrUnknownPlaceholder. Missing values are reported first.
func (t PathTemplate) Render(values map[string]string) (string, error) {
	for _, seg := range t.segments {
		if !seg.IsParam() {
			continue
		}
		if v, ok := values[seg.Param]; !ok || v == "" {
			return "", &PlaceholderError{Err: ErrMissingPlaceholderValue, Name: seg.Param, Template: t.raw}
		}
	}

	var extra []string
	for name := range values {
		if !t.HasParam(name) {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return "", &PlaceholderError{Err: ErrUnknownPlaceholder, Name: extra[0], Template: t.raw}
	}

	var b strings.Builder
	for _, seg := range t.segments {
		b.WriteByte('/')
		if seg.IsParam() {
			b.WriteString(url.PathEscape(values[seg.Param]))
		} else {
			b.WriteString(seg.Literal)
		}
	}
	if b.Len() == 0 || t.trailingSlash {
		b.WriteByte('/')
	}
	return b.String(), nil
}

// MarshalText implements encoding.TextMarshaler
func (t PathTemplate) MarshalText() ([]byte, error) {
	return []byte(t.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with strict parsing
func (t *PathTemplate) UnmarshalText(text []byte) error {
	parsed, err := ParseTemplate(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
