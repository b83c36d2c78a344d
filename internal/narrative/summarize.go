// Package narrative turns a list of access-review findings into a
// human-readable report narrative, either by invoking a model through a
// schemas.ModelInvoker or by local, deterministic generation when the model
// is unavailable.
package narrative

import (
	"github.com/seceng-tools/access-review/api/schemas"
)

// SeverityCounts maps each of the five recognized severity levels to the
// number of findings carrying it. All five keys are always present.
type SeverityCounts map[schemas.Severity]int

// CategoryGroup holds the findings sharing one category label, in their
// original input order.
type CategoryGroup struct {
	Category string
	Findings []schemas.Finding
}

// CategoryOther is the grouping label for findings without a category.
const CategoryOther = "Other"

// Summarize computes the severity counts and category grouping for a findings
// list. Findings with an unrecognized severity are excluded from the counts
// but still grouped by category; a missing category groups under "Other".
// Categories come back in first-seen order.
func Summarize(findings []schemas.Finding) (SeverityCounts, []CategoryGroup) {
	counts := make(SeverityCounts, len(schemas.Severities()))
	for _, sev := range schemas.Severities() {
		counts[sev] = 0
	}

	var groups []CategoryGroup
	index := make(map[string]int)

	for _, f := range findings {
		if f.Severity.Known() {
			counts[f.Severity]++
		}

		category := f.Category
		if category == "" {
			category = CategoryOther
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}

	return counts, groups
}
