// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RelevanceQuery selects a slice of the corpus by time window and authorship
// and asks for the tokens that best characterize it.
type RelevanceQuery struct {
	// YearFrom and YearTo bound the publication year, both inclusive.
	YearFrom int `json:"year_from" yaml:"year_from"`
	YearTo   int `json:"year_to" yaml:"year_to"`

	// IncludeCompilations admits songs from compilation releases.
	IncludeCompilations bool `json:"include_compilations" yaml:"include_compilations"`

	// TopN is the number of highest-weighted tokens to report.
	TopN int `json:"top_n" yaml:"top_n"`

	// Artists lists the authors to count in. An empty list selects nothing.
	Artists []string `json:"artists" yaml:"artists"`
}

// RelevanceBucket groups the top-ranked tokens that share the same summed
// raw frequency over the selected songs. Tokens are sorted.
type RelevanceBucket struct {
	Frequency int      `json:"frequency" yaml:"frequency"`
	Tokens    []string `json:"tokens" yaml:"tokens"`
}

// RelevanceResult is ordered by descending Frequency. An empty result means
// no song matched the query.
type RelevanceResult []RelevanceBucket

// Tokens returns every token in the result, highest frequency first.
func (r RelevanceResult) Tokens() []string {
	var out []string
	for _, b := range r {
		out = append(out, b.Tokens...)
	}
	return out
}

// SectionResult is the relevance result for one time section of a
// sectioned query.
type SectionResult struct {
	From    int             `json:"from" yaml:"from"`
	To      int             `json:"to" yaml:"to"`
	Songs   int             `json:"songs" yaml:"songs"`
	Buckets RelevanceResult `json:"buckets" yaml:"buckets"`
}
