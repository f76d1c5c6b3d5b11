package diff

import (
	"fmt"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

// Analyzer analyzes differences between two endpoint catalogs
type Analyzer struct{}

// NewAnalyzer creates a new diff analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Compare returns the changes needed to go from the old catalog to the new
// one. Group changes come first, then endpoints removed or changed in old
// order, then endpoints added in new order.
func (a *Analyzer) Compare(from, to *endpoints.Registry) *DiffResult {
	result := &DiffResult{Changes: []Change{}}
	result.Changes = append(result.Changes, a.compareGroups(from, to)...)

	for e := range from.All() {
		next, err := to.Entry(e.Key)
		if err != nil {
			result.Changes = append(result.Changes, newChange(EndpointRemoved, e.Key,
				signature(e.Descriptor), "",
				fmt.Sprintf("Endpoint '%s' was removed", e.Key)))
			continue
		}
		result.Changes = append(result.Changes, a.compareEntries(e, next)...)
	}

	for e := range to.All() {
		if _, err := from.Entry(e.Key); err != nil {
			result.Changes = append(result.Changes, newChange(EndpointAdded, e.Key,
				"", signature(e.Descriptor),
				fmt.Sprintf("Endpoint '%s' was added", e.Key)))
		}
	}

	return result
}

func (a *Analyzer) compareGroups(from, to *endpoints.Registry) []Change {
	var changes []Change
	for _, g := range from.Groups() {
		if _, ok := to.Group(g.Tag); !ok {
			changes = append(changes, newChange(GroupRemoved, g.Tag, g.Title, "",
				fmt.Sprintf("Group '%s' was removed", g.Tag)))
		}
	}
	for _, g := range to.Groups() {
		if _, ok := from.Group(g.Tag); !ok {
			changes = append(changes, newChange(GroupAdded, g.Tag, "", g.Title,
				fmt.Sprintf("Group '%s' was added", g.Tag)))
		}
	}
	return changes
}

func (a *Analyzer) compareEntries(old, next endpoints.Entry) []Change {
	var changes []Change
	key := old.Key

	if old.Method != next.Method {
		changes = append(changes, newChange(MethodChanged, key, old.Method.String(), next.Method.String(),
			fmt.Sprintf("Endpoint '%s' method changed from %s to %s", key, old.Method, next.Method)))
	}
	if old.Path.String() != next.Path.String() {
		changes = append(changes, newChange(PathChanged, key, old.Path.String(), next.Path.String(),
			fmt.Sprintf("Endpoint '%s' path changed from '%s' to '%s'", key, old.Path, next.Path)))
	}
	if old.RequiresAuth != next.RequiresAuth {
		ct := AuthDropped
		desc := fmt.Sprintf("Endpoint '%s' no longer requires authentication", key)
		if next.RequiresAuth {
			ct = AuthRequired
			desc = fmt.Sprintf("Endpoint '%s' now requires authentication", key)
		}
		changes = append(changes, newChange(ct, key,
			fmt.Sprint(old.RequiresAuth), fmt.Sprint(next.RequiresAuth), desc))
	}
	if old.Group != next.Group {
		changes = append(changes, newChange(GroupChanged, key, old.Group, next.Group,
			fmt.Sprintf("Endpoint '%s' moved from group '%s' to '%s'", key, old.Group, next.Group)))
	}
	if old.Description != next.Description {
		changes = append(changes, newChange(DescriptionChanged, key, old.Description, next.Description,
			fmt.Sprintf("Endpoint '%s' description changed", key)))
	}
	if old.Hidden != next.Hidden {
		changes = append(changes, newChange(VisibilityChanged, key,
			fmt.Sprint(old.Hidden), fmt.Sprint(next.Hidden),
			fmt.Sprintf("Endpoint '%s' hidden flag changed", key)))
	}

	return changes
}

func newChange(ct ChangeType, key, oldValue, newValue, description string) Change {
	return Change{
		Type:         ct,
		Severity:     GetSeverity(ct),
		Key:          key,
		OldValue:     oldValue,
		NewValue:     newValue,
		Description:  description,
		MigrationTip: GetMigrationTip(ct),
	}
}

func signature(d endpoints.Descriptor) string {
	return d.Method.String() + " " + d.Path.String()
}
