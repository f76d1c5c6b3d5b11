package diff

// ChangeType represents the type of change detected
type ChangeType string

const (
	EndpointAdded      ChangeType = "endpoint_added"
	EndpointRemoved    ChangeType = "endpoint_removed"
	MethodChanged      ChangeType = "method_changed"
	PathChanged        ChangeType = "path_changed"
	AuthRequired       ChangeType = "auth_required"
	AuthDropped        ChangeType = "auth_dropped"
	GroupChanged       ChangeType = "group_changed"
	DescriptionChanged ChangeType = "description_changed"
	VisibilityChanged  ChangeType = "visibility_changed"
	GroupAdded         ChangeType = "group_added"
	GroupRemoved       ChangeType = "group_removed"
)

// Severity represents the severity level of a change
type Severity string

const (
	Breaking    Severity = "breaking"
	NonBreaking Severity = "non_breaking"
	Warning     Severity = "warning"
)

// Change represents a single change between two catalogs
type Change struct {
	Type         ChangeType `json:"type"`
	Severity     Severity   `json:"severity"`
	Key          string     `json:"key"`
	OldValue     string     `json:"old_value,omitempty"`
	NewValue     string     `json:"new_value,omitempty"`
	Description  string     `json:"description"`
	MigrationTip string     `json:"migration_tip,omitempty"`
}

// DiffResult contains all changes detected between two catalogs
type DiffResult struct {
	Changes []Change `json:"changes"`
}

// HasBreaking reports whether any change breaks existing clients
func (r *DiffResult) HasBreaking() bool {
	for _, c := range r.Changes {
		if c.Severity == Breaking {
			return true
		}
	}
	return false
}

// BySeverity returns the changes with the given severity, in order
func (r *DiffResult) BySeverity(s Severity) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Severity == s {
			out = append(out, c)
		}
	}
	return out
}

// GetSeverity determines the severity of a change based on its type
func GetSeverity(changeType ChangeType) Severity {
	switch changeType {
	case EndpointRemoved, MethodChanged, PathChanged, AuthRequired, GroupRemoved:
		return Breaking

	case EndpointAdded, GroupAdded, DescriptionChanged:
		return NonBreaking

	default:
		// group moves, visibility and dropped auth change the docs, not clients
		return Warning
	}
}

// GetMigrationTip provides a migration tip based on change type
func GetMigrationTip(changeType ChangeType) string {
	switch changeType {
	case EndpointRemoved:
		return "Remove all calls to this endpoint"
	case MethodChanged:
		return "Update clients to use the new HTTP method"
	case PathChanged:
		return "Update request URLs to the new path"
	case AuthRequired:
		return "Send an API key or bearer token with this request"
	case GroupRemoved:
		return "Move links to this section elsewhere"
	default:
		return ""
	}
}
