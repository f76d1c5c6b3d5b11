package diff

import (
	"fmt"
	"strings"
)

var severityTitles = []struct {
	severity Severity
	title    string
}{
	{Breaking, "破坏性变更"},
	{NonBreaking, "新增与改进"},
	{Warning, "其他变更"},
}

// Changelog renders the result as a markdown section under heading
func (r *DiffResult) Changelog(heading string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s\n\n", heading))

	if len(r.Changes) == 0 {
		b.WriteString("无接口变更。\n")
		return b.String()
	}

	for _, st := range severityTitles {
		changes := r.BySeverity(st.severity)
		if len(changes) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("### %s\n\n", st.title))
		for _, c := range changes {
			b.WriteString(fmt.Sprintf("- `%s`: %s", c.Key, c.Description))
			if c.MigrationTip != "" {
				b.WriteString(fmt.Sprintf(" (%s)", c.MigrationTip))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
