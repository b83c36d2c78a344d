package narrative

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/seceng-tools/access-review/api/schemas"
)

// fallbackReport is the fixed narrative returned when model generation fails.
// It is deliberately self-disclosing about the degraded mode and points the
// reader at the CSV report for the full findings list.
const fallbackReport = "# AWS Access Review Report\n\n" +
	"## Executive Summary\n\n" +
	"Due to technical limitations, a detailed AI analysis could not be generated. " +
	"Please refer to the CSV report for a complete list of findings.\n\n" +
	"## Key Recommendations\n\n" +
	"1. **High Priority:** Review all findings marked as Critical or High priority first\n" +
	"2. **Medium Priority:** Address Medium priority findings as part of regular maintenance\n" +
	"3. **Low Priority:** Consider Low priority findings for long-term security improvements\n" +
	"4. **Ongoing:** Maintain regular security reviews and monitoring\n\n" +
	"## Next Steps\n\n" +
	"For detailed findings and specific recommendations, please consult the attached CSV" +
	" report. Consider scheduling a follow-up security review once the highest priority items" +
	" have been addressed.\n\n" +
	"---\n" +
	"This report was generated by the AWS Access Review Tool. For questions or assistance, " +
	"please contact your security team."

// FallbackNarrative returns the static narrative used whenever the model call
// or its response processing fails. Deterministic and independent of the
// findings.
func FallbackNarrative() string {
	return fallbackReport
}

// localKeyIssueLimit and localPositiveLimit cap the issue lists in the local
// narrative the same way the prompt caps per-category listings.
const (
	localKeyIssueLimit = 5
	localPositiveLimit = 3
)

// LocalNarrative builds a plain-text findings summary without any model call.
// It is used when no model client is configured at all, and is a richer,
// data-driven sibling of FallbackNarrative.
func LocalNarrative(findings []schemas.Finding, now time.Time) string {
	counts := map[schemas.Severity]int{
		schemas.SeverityCritical: 0,
		schemas.SeverityHigh:     0,
		schemas.SeverityMedium:   0,
		schemas.SeverityLow:      0,
		schemas.SeverityInfo:     0,
	}

	categoryCounts := make(map[string]int)
	var categoryOrder []string
	var keyIssues []string
	var positives []string

	for _, f := range findings {
		sev := f.Severity
		if sev == "" {
			sev = schemas.SeverityMedium
		}
		if _, ok := counts[sev]; ok {
			counts[sev]++
		}

		category := f.Category
		if category == "" {
			category = CategoryOther
		}
		if _, ok := categoryCounts[category]; !ok {
			categoryOrder = append(categoryOrder, category)
		}
		categoryCounts[category]++

		if sev == schemas.SeverityCritical || sev == schemas.SeverityHigh {
			keyIssues = append(keyIssues, fmt.Sprintf("- %s (%s: %s)",
				f.Description, f.ResourceType, f.ResourceID))
		}

		if sev == schemas.SeverityInfo && strings.Contains(strings.ToLower(f.Description), "no ") ||
			strings.Contains(strings.ToLower(f.ID), "positive") {
			positives = append(positives, fmt.Sprintf("- %s", f.Description))
		}
	}

	// Largest categories first; ties keep first-seen order.
	sort.SliceStable(categoryOrder, func(i, j int) bool {
		return categoryCounts[categoryOrder[i]] > categoryCounts[categoryOrder[j]]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "\nAWS Access Review Report - %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&b, "This automated security review has analyzed your AWS environment across "+
		"multiple security dimensions and identified %d findings.\n\n", len(findings))
	b.WriteString("FINDINGS SUMMARY\n")
	fmt.Fprintf(&b, "Total findings: %d\n", len(findings))
	fmt.Fprintf(&b, "Critical: %d - Requires immediate attention\n", counts[schemas.SeverityCritical])
	fmt.Fprintf(&b, "High: %d - Should be addressed soon\n", counts[schemas.SeverityHigh])
	fmt.Fprintf(&b, "Medium: %d - Should be planned for remediation\n", counts[schemas.SeverityMedium])
	fmt.Fprintf(&b, "Low: %d - Consider addressing when convenient\n", counts[schemas.SeverityLow])
	fmt.Fprintf(&b, "Informational: %d - No action needed\n\n", counts[schemas.SeverityInfo])
	b.WriteString("FINDINGS BY CATEGORY\n")

	for _, category := range categoryOrder {
		fmt.Fprintf(&b, "%s: %d findings\n", category, categoryCounts[category])
	}

	if len(keyIssues) > 0 {
		b.WriteString("\nKEY ISSUES REQUIRING ATTENTION\n")
		b.WriteString("The following critical or high severity issues were identified:\n")
		shown := keyIssues
		if len(shown) > localKeyIssueLimit {
			shown = shown[:localKeyIssueLimit]
		}
		b.WriteString(strings.Join(shown, "\n"))
		b.WriteString("\n")
		if len(keyIssues) > localKeyIssueLimit {
			fmt.Fprintf(&b, "...and %d more critical or high severity issues.\n",
				len(keyIssues)-localKeyIssueLimit)
		}
	}

	if len(positives) > 0 {
		b.WriteString("\nPOSITIVE SECURITY FINDINGS\n")
		b.WriteString("The following security best practices were detected:\n")
		shown := positives
		if len(shown) > localPositiveLimit {
			shown = shown[:localPositiveLimit]
		}
		b.WriteString(strings.Join(shown, "\n"))
		b.WriteString("\n")
		if len(positives) > localPositiveLimit {
			fmt.Fprintf(&b, "...and %d more positive findings.\n", len(positives)-localPositiveLimit)
		}
	}

	b.WriteString("\nRECOMMENDATIONS\n")
	b.WriteString("1. Address all Critical and High findings as soon as possible\n")
	b.WriteString("2. Create a remediation plan for Medium findings\n")
	b.WriteString("3. Schedule regular security reviews using this tool\n")
	b.WriteString("4. For detailed findings, please see the attached CSV report\n")

	return b.String()
}
