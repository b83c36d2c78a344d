// Package reporting produces the detailed CSV report that accompanies the
// narrative, and optionally delivers report artifacts to S3-compatible
// storage.
package reporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/seceng-tools/access-review/api/schemas"
)

// csvColumns fixes the CSV column order. Downstream consumers parse the
// report by header name, so renaming a column is a breaking change.
var csvColumns = []string{
	"id",
	"category",
	"severity",
	"resource_type",
	"resource_id",
	"description",
	"recommendation",
	"compliance",
	"detection_date",
}

// CSVReport renders all findings as an RFC 4180 CSV document, one row per
// finding in input order, with a header row.
func CSVReport(findings []schemas.Finding) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, f := range findings {
		row := []string{
			f.ID,
			f.Category,
			string(f.Severity),
			f.ResourceType,
			f.ResourceID,
			f.Description,
			f.Recommendation,
			f.Compliance,
			f.DetectionDate,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVFilename returns the timestamped filename for a CSV report generated at
// the given time.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("aws-access-review-%s.csv", now.Format("2006-01-02-15-04-05"))
}

// NarrativeFilename returns the timestamped filename for the narrative text
// generated at the given time.
func NarrativeFilename(now time.Time) string {
	return fmt.Sprintf("aws-access-review-%s.md", now.Format("2006-01-02-15-04-05"))
}
