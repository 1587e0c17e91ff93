package ports

// Progress phases reported during search and batch replace
const (
	PhaseFilter  = "filter"
	PhaseRefine  = "refine"
	PhaseReplace = "replace"
)

// CountPending is reported for the filter phase before the true
// candidate count is known (full-scan fallback)
const CountPending = -1

// Progress is one progress callback payload. Filter reports Count;
// refine reports Current/Total; replace reports Current/Total/RecordID.
type Progress struct {
	Phase    string
	Count    int
	Current  int
	Total    int
	RecordID int64
}

// ProgressFunc receives progress updates. Callbacks are invoked at most
// once per record per phase, strictly monotonically.
type ProgressFunc func(Progress)
