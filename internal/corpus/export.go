// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// Report is a relevance query together with its answer, as handed to
// reporting consumers. Sections is set for sectioned queries, Buckets
// otherwise.
type Report struct {
	GeneratedAt  time.Time             `json:"generated_at" yaml:"generated_at"`
	Query        types.RelevanceQuery  `json:"query" yaml:"query"`
	Songs        int                   `json:"songs" yaml:"songs"`
	Vocabulary   int                   `json:"vocabulary" yaml:"vocabulary"`
	SectionWidth int                   `json:"section_width,omitempty" yaml:"section_width,omitempty"`
	Buckets      types.RelevanceResult `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Sections     []types.SectionResult `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// ExportYAML writes the report to indexDir/report.yaml and returns the path.
func (s *Store) ExportYAML(report Report) (string, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.indexDir, "report.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the report to indexDir/report.json and returns the path.
func (s *Store) ExportJSON(report Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.indexDir, "report.json")
	return path, os.WriteFile(path, data, 0o644)
}
