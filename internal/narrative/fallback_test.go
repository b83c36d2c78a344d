package narrative

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seceng-tools/access-review/api/schemas"
)

func TestFallbackNarrative_IsDeterministicAndSelfDisclosing(t *testing.T) {
	first := FallbackNarrative()
	second := FallbackNarrative()

	assert.Equal(t, first, second)
	assert.Contains(t, first, "a detailed AI analysis could not be generated")
	assert.Contains(t, first, "CSV report")
}

func TestLocalNarrative_CountsAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	input := []schemas.Finding{
		{Severity: schemas.SeverityCritical, Category: "IAM", Description: "root key", ResourceType: "IAM User", ResourceID: "root"},
		{Severity: schemas.SeverityLow, Category: "S3"},
		{Category: "S3"}, // missing severity counts as Medium here
	}

	got := LocalNarrative(input, now)

	assert.Contains(t, got, "AWS Access Review Report - 2026-03-14 09:26:53")
	assert.Contains(t, got, "identified 3 findings")
	assert.Contains(t, got, "Critical: 1 - Requires immediate attention")
	assert.Contains(t, got, "Medium: 1 - Should be planned for remediation")
	assert.Contains(t, got, "Low: 1 - Consider addressing when convenient")
}

func TestLocalNarrative_CategoriesSortedByCountDescending(t *testing.T) {
	input := []schemas.Finding{
		{Category: "IAM"},
		{Category: "S3"},
		{Category: "S3"},
	}

	got := LocalNarrative(input, time.Now())

	s3 := strings.Index(got, "S3: 2 findings")
	iam := strings.Index(got, "IAM: 1 findings")
	assert.True(t, s3 >= 0 && iam >= 0)
	assert.Less(t, s3, iam)
}

func TestLocalNarrative_KeyIssuesCappedWithRemainder(t *testing.T) {
	var input []schemas.Finding
	for i := 0; i < 7; i++ {
		input = append(input, schemas.Finding{
			Severity: schemas.SeverityHigh, Category: "IAM",
			Description: "over-privileged role", ResourceType: "IAM Role", ResourceID: "r",
		})
	}

	got := LocalNarrative(input, time.Now())

	assert.Contains(t, got, "KEY ISSUES REQUIRING ATTENTION")
	assert.Contains(t, got, "...and 2 more critical or high severity issues.")
	assert.Equal(t, localKeyIssueLimit, strings.Count(got, "- over-privileged role"))
}

func TestLocalNarrative_PositiveFindings(t *testing.T) {
	input := []schemas.Finding{
		{Severity: schemas.SeverityInfo, Category: "IAM", Description: "No root access keys found"},
		{ID: "S3-POSITIVE-001", Severity: schemas.SeverityLow, Category: "S3", Description: "All buckets block public access"},
	}

	got := LocalNarrative(input, time.Now())

	assert.Contains(t, got, "POSITIVE SECURITY FINDINGS")
	assert.Contains(t, got, "- No root access keys found")
	assert.Contains(t, got, "- All buckets block public access")
}

func TestLocalNarrative_AlwaysEndsWithRecommendations(t *testing.T) {
	got := LocalNarrative(nil, time.Now())

	assert.Contains(t, got, "RECOMMENDATIONS")
	assert.True(t, strings.HasSuffix(got, "4. For detailed findings, please see the attached CSV report\n"))
	assert.NotContains(t, got, "KEY ISSUES")
	assert.NotContains(t, got, "POSITIVE SECURITY FINDINGS")
}
