package domain

import "time"

// EvalCase is a single retrieval-quality test case: a query and the source
// document expected to be ranked first.
type EvalCase struct {
	// Name identifies the case in reports.
	Name string

	// Query is the natural-language input.
	Query string

	// Mode selects which answer mode to evaluate.
	Mode AnswerMode

	// WantSource is the document path expected as the top citation.
	WantSource string
}

// EvalCaseResult is the outcome of one case in one run.
type EvalCaseResult struct {
	// Name is the case name.
	Name string

	// Query is the evaluated query.
	Query string

	// WantSource is the expected top source.
	WantSource string

	// GotSource is the top-ranked source actually returned, empty when
	// the context came back empty.
	GotSource string

	// Rank is the 1-based position of WantSource in the returned context,
	// deduplicated by source; 0 when it did not appear at all.
	Rank int

	// Hit reports whether WantSource was ranked first.
	Hit bool
}

// EvalRun is one sweep of all cases at a fixed top-k.
type EvalRun struct {
	// ID is the run identifier.
	ID string

	// CreatedAt is when the run finished.
	CreatedAt time.Time

	// TopK is the retrieval depth used for the run.
	TopK int

	// Total is the number of cases evaluated.
	Total int

	// Hits is the number of cases whose expected source ranked first.
	Hits int

	// Cases holds the per-case outcomes.
	Cases []EvalCaseResult
}

// HitRate returns Hits/Total, or 0 for an empty run.
func (r EvalRun) HitRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Total)
}
