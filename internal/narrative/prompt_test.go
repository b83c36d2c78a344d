package narrative

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seceng-tools/access-review/api/schemas"
)

func TestBuildPrompt_EmptyFindings(t *testing.T) {
	want := `<findings>
# AWS Security Findings Summary

Total findings: 0
- Critical: 0
- High: 0
- Medium: 0
- Low: 0
- Informational: 0

## Findings by Category:

</findings>
`

	got := BuildPrompt(nil)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPrompt_SeverityCountsAlwaysPrinted(t *testing.T) {
	prompt := BuildPrompt([]schemas.Finding{
		{Severity: schemas.SeverityCritical, Category: "IAM", Description: "root access key exists"},
	})

	assert.Contains(t, prompt, "Total findings: 1")
	assert.Contains(t, prompt, "- Critical: 1")
	// Zero counts are still listed.
	assert.Contains(t, prompt, "- High: 0")
	assert.Contains(t, prompt, "- Medium: 0")
	assert.Contains(t, prompt, "- Low: 0")
	assert.Contains(t, prompt, "- Informational: 0")
}

func TestBuildPrompt_CategoryCapAndRemainder(t *testing.T) {
	// Six IAM findings: five are listed most severe first, the sixth
	// collapses into the remainder line.
	input := []schemas.Finding{
		{Severity: schemas.SeverityLow, Category: "IAM", Description: "low one", ResourceType: "IAM User", ResourceID: "alice"},
		{Severity: schemas.SeverityCritical, Category: "IAM", Description: "crit", ResourceType: "IAM User", ResourceID: "root"},
		{Severity: schemas.SeverityHigh, Category: "IAM", Description: "high", ResourceType: "IAM Role", ResourceID: "admin"},
		{Severity: schemas.SeverityLow, Category: "IAM", Description: "low two", ResourceType: "IAM User", ResourceID: "bob"},
		{Severity: schemas.SeverityMedium, Category: "IAM", Description: "med", ResourceType: "IAM Policy", ResourceID: "wide"},
		{Severity: schemas.SeverityInfo, Category: "IAM", Description: "info", ResourceType: "IAM", ResourceID: "acct"},
	}

	prompt := BuildPrompt(input)

	wantLines := []string{
		"\nCategory: IAM",
		"  - Critical: crit (IAM User: root)",
		"  - High: high (IAM Role: admin)",
		"  - Medium: med (IAM Policy: wide)",
		"  - Low: low one (IAM User: alice)",
		"  - Low: low two (IAM User: bob)",
		"  - ... and 1 more IAM findings",
	}
	assert.Contains(t, prompt, strings.Join(wantLines, "\n"))
	assert.NotContains(t, prompt, "info (", "sixth finding must not be listed explicitly")
}

func TestBuildPrompt_NoRemainderLineAtOrUnderCap(t *testing.T) {
	var input []schemas.Finding
	for i := 0; i < 5; i++ {
		input = append(input, schemas.Finding{
			Severity: schemas.SeverityLow, Category: "S3",
			Description: fmt.Sprintf("bucket %d", i),
		})
	}

	prompt := BuildPrompt(input)

	assert.NotContains(t, prompt, "more S3 findings")
}

func TestBuildPrompt_WithinCategoryOrderIsStableBySeverity(t *testing.T) {
	// Ties keep input order; unrecognized severity sorts after Informational
	// and a missing severity sorts alongside Low.
	input := []schemas.Finding{
		{Severity: "Weird", Category: "EC2", Description: "weird"},
		{Severity: schemas.SeverityInfo, Category: "EC2", Description: "informational"},
		{Severity: "", Category: "EC2", Description: "no severity"},
		{Severity: schemas.SeverityLow, Category: "EC2", Description: "real low"},
	}

	prompt := BuildPrompt(input)

	noSev := strings.Index(prompt, "no severity")
	realLow := strings.Index(prompt, "real low")
	info := strings.Index(prompt, "informational")
	weird := strings.Index(prompt, "weird (")
	require.True(t, noSev >= 0 && realLow >= 0 && info >= 0 && weird >= 0)
	assert.Less(t, noSev, realLow, "empty severity ranks as Low and keeps input order on ties")
	assert.Less(t, realLow, info)
	assert.Less(t, info, weird, "unrecognized severity sorts last")
}

func TestBuildPrompt_CategorySectionsFollowFirstSeenOrder(t *testing.T) {
	input := []schemas.Finding{
		{Severity: schemas.SeverityLow, Category: "S3"},
		{Severity: schemas.SeverityCritical, Category: "IAM"},
		{Severity: schemas.SeverityHigh, Category: "S3"},
	}

	prompt := BuildPrompt(input)

	s3 := strings.Index(prompt, "Category: S3")
	iam := strings.Index(prompt, "Category: IAM")
	require.True(t, s3 >= 0 && iam >= 0)
	assert.Less(t, s3, iam)
}
