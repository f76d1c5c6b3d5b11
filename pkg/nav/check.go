package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

// ErrCheckFailed is returned by Report.Err when findings fail the build
var ErrCheckFailed = errors.New("navigation check failed")

// Severity of a finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FindingKind classifies a finding
type FindingKind string

const (
	// KindDanglingLink is a sidebar link with no page behind it
	KindDanglingLink FindingKind = "dangling_link"
	// KindDuplicateLink is a link listed twice in one section
	KindDuplicateLink FindingKind = "duplicate_link"
	// KindUnreachableEndpoint is an authenticated endpoint no sidebar link documents
	KindUnreachableEndpoint FindingKind = "unreachable_endpoint"
	// KindHiddenEndpoint is an endpoint registered but kept out of navigation
	KindHiddenEndpoint FindingKind = "hidden_endpoint"
)

// Finding is one consistency problem
type Finding struct {
	Kind     FindingKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Section  string      `json:"section,omitempty"`
	Link     string      `json:"link,omitempty"`
	Key      string      `json:"key,omitempty"`
	Message  string      `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s", f.Severity, f.Kind, f.Message)
}

// Report collects findings in the order they were found
type Report struct {
	Findings []Finding `json:"findings"`
}

// Count returns the number of findings with the given severity
func (r Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any finding has error severity
func (r Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Err returns ErrCheckFailed when the report has errors, or any findings
// at all when strict is set.
func (r Report) Err(strict bool) error {
	errs, warns := r.Count(SeverityError), r.Count(SeverityWarning)
	if errs > 0 || (strict && warns > 0) {
		return fmt.Errorf("%w: %d errors, %d warnings", ErrCheckFailed, errs, warns)
	}
	return nil
}

// Checker verifies that the navigation model, the endpoint registry and the
// page tree agree with each other.
type Checker struct {
	apiPrefix string
}

// NewChecker creates a checker for the API reference section at apiPrefix
func NewChecker(apiPrefix string) *Checker {
	return &Checker{apiPrefix: NormalizePrefix(apiPrefix)}
}

// Check runs every rule. A nil page set skips the dangling-link rule.
func (c *Checker) Check(m *Model, reg *endpoints.Registry, pages *PageSet) Report {
	var report Report
	add := func(f Finding) { report.Findings = append(report.Findings, f) }

	// pages reachable from any section, custom links included
	reachable := make(map[string]bool)
	seen := make(map[string]map[string]bool)
	for prefix, it := range m.Links() {
		if IsExternal(it.Link) {
			continue
		}
		link := normalizeLink(it.Link)

		if seen[prefix] == nil {
			seen[prefix] = make(map[string]bool)
		}
		if seen[prefix][link] {
			add(Finding{
				Kind:     KindDuplicateLink,
				Severity: SeverityWarning,
				Section:  prefix,
				Link:     it.Link,
				Message:  fmt.Sprintf("%s lists %s more than once", prefix, it.Link),
			})
		}
		seen[prefix][link] = true

		reachable[pageKey(link)] = true

		if pages != nil && !pages.Has(it.Link) {
			add(Finding{
				Kind:     KindDanglingLink,
				Severity: SeverityError,
				Section:  prefix,
				Link:     it.Link,
				Message:  fmt.Sprintf("%q (%s) does not resolve to a page", it.Text, it.Link),
			})
		}
	}

	for e := range reg.All() {
		if e.Hidden {
			add(Finding{
				Kind:     KindHiddenEndpoint,
				Severity: SeverityWarning,
				Key:      e.Key,
				Message: fmt.Sprintf("%s %s is registered but hidden from navigation; confirm whether it is internal or should be removed",
					e.Method, e.Path),
			})
			continue
		}
		if !e.RequiresAuth {
			continue
		}
		link := EndpointLink(c.apiPrefix, e.Group, e.Key)
		if !reachable[pageKey(normalizeLink(link))] {
			add(Finding{
				Kind:     KindUnreachableEndpoint,
				Severity: SeverityWarning,
				Key:      e.Key,
				Link:     link,
				Message:  fmt.Sprintf("%s %s is not reachable from navigation", e.Method, e.Path),
			})
		}
	}

	return report
}

// pageKey identifies the page a normalized link resolves to, so
// /api/table/create-table and /api/table/create-table/ match
func pageKey(link string) string {
	if link == "/" {
		return link
	}
	return strings.TrimSuffix(link, "/")
}
