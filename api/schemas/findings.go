package schemas

// -- Finding Schemas --

// Severity represents the severity level of a security finding, ranging from
// critical to informational. Values are capitalized to match the labels the
// collectors emit in their JSON output.
type Severity string

// Constants defining the standard severity levels for findings.
const (
	SeverityCritical Severity = "Critical"      // Immediate action required.
	SeverityHigh     Severity = "High"          // High priority issues.
	SeverityMedium   Severity = "Medium"        // Important but less urgent.
	SeverityLow      Severity = "Low"           // Minor issues.
	SeverityInfo     Severity = "Informational" // Awareness only.
)

// severityRanks orders the known severities for sorting, most severe first.
var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// rankUnknown places unrecognized severities after every known level.
const rankUnknown = 999

// Severities lists the known severity levels in rank order.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Known reports whether s is one of the five recognized severity levels.
func (s Severity) Known() bool {
	_, ok := severityRanks[s]
	return ok
}

// SortRank returns the ordering key used when listing findings within a
// category. An empty severity sorts alongside Low; anything else that is not
// a recognized level sorts after Informational.
func (s Severity) SortRank() int {
	if s == "" {
		return severityRanks[SeverityLow]
	}
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return rankUnknown
}

// Finding is one security finding from an access review run. All fields come
// from the collector that produced the finding and are read-only here; absent
// optional fields are simply empty strings.
type Finding struct {
	ID       string   `json:"id,omitempty"`       // Collector-assigned identifier, e.g. "IAM-001".
	Category string   `json:"category,omitempty"` // Free-text grouping label, e.g. "IAM", "S3".
	Severity Severity `json:"severity,omitempty"`

	Description string `json:"description,omitempty"`

	ResourceType string `json:"resource_type,omitempty"` // AWS resource type, e.g. "IAM User".
	ResourceID   string `json:"resource_id,omitempty"`   // ARN or name of the affected resource.

	Recommendation string `json:"recommendation,omitempty"` // Suggested remediation steps.
	Compliance     string `json:"compliance,omitempty"`     // Related compliance frameworks or controls.
	DetectionDate  string `json:"detection_date,omitempty"` // ISO 8601 timestamp from the collector.
}

// ReviewEnvelope is the on-disk wrapper some collectors use around their
// findings output. A bare JSON array of findings is also accepted.
type ReviewEnvelope struct {
	AccountID string    `json:"account_id,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
	Findings  []Finding `json:"findings"`
}
