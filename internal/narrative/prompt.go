package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seceng-tools/access-review/api/schemas"
)

// maxFindingsPerCategory caps how many findings are listed per category in
// the prompt; the rest collapse into a remainder count to keep the prompt
// size manageable.
const maxFindingsPerCategory = 5

// BuildPrompt renders the findings into the prompt block sent to the model.
// The output is wrapped in <findings> tags so the model can identify the data
// section, and lists each category's findings most severe first.
func BuildPrompt(findings []schemas.Finding) string {
	counts, groups := Summarize(findings)

	var summary []string
	for _, group := range groups {
		summary = append(summary, fmt.Sprintf("\nCategory: %s", group.Category))

		sorted := make([]schemas.Finding, len(group.Findings))
		copy(sorted, group.Findings)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Severity.SortRank() < sorted[j].Severity.SortRank()
		})

		shown := sorted
		if len(shown) > maxFindingsPerCategory {
			shown = shown[:maxFindingsPerCategory]
		}
		for _, f := range shown {
			summary = append(summary, fmt.Sprintf("  - %s: %s (%s: %s)",
				f.Severity, f.Description, f.ResourceType, f.ResourceID))
		}

		if len(group.Findings) > maxFindingsPerCategory {
			summary = append(summary, fmt.Sprintf("  - ... and %d more %s findings",
				len(group.Findings)-maxFindingsPerCategory, group.Category))
		}
	}

	return fmt.Sprintf(`<findings>
# AWS Security Findings Summary

Total findings: %d
- Critical: %d
- High: %d
- Medium: %d
- Low: %d
- Informational: %d

## Findings by Category:
%s
</findings>
`,
		len(findings),
		counts[schemas.SeverityCritical],
		counts[schemas.SeverityHigh],
		counts[schemas.SeverityMedium],
		counts[schemas.SeverityLow],
		counts[schemas.SeverityInfo],
		strings.Join(summary, "\n"))
}
