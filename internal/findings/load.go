// Package findings loads collector output from disk for the CLI. The core
// narrative library never touches the filesystem; callers hand it a findings
// slice directly.
package findings

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/seceng-tools/access-review/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load decodes findings from r. Both layouts the collectors produce are
// accepted: a bare JSON array of findings, or an envelope object with a
// "findings" key.
func Load(r io.Reader) ([]schemas.Finding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings input: %w", err)
	}

	var list []schemas.Finding
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var envelope schemas.ReviewEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse findings input: %w", err)
	}
	if envelope.Findings == nil {
		return nil, fmt.Errorf("findings input has no findings field")
	}
	return envelope.Findings, nil
}

// LoadFile reads and decodes the findings file at path.
func LoadFile(path string) ([]schemas.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open findings file %s: %w", path, err)
	}
	defer f.Close()

	list, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load findings from %s: %w", path, err)
	}
	return list, nil
}
