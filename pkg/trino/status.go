package trino

// ExecState is the client-side view of a query's lifecycle. The
// submit/poll/cancel sequence moves Submitted → Running → one of
// Finished, Failed or Cancelled; Cached short-circuits the whole
// sequence on a cache hit.
type ExecState string

const (
	StateSubmitted ExecState = "SUBMITTED"
	StateRunning   ExecState = "RUNNING"
	StateFinished  ExecState = "FINISHED"
	StateFailed    ExecState = "FAILED"
	StateCancelled ExecState = "CANCELLED"
	StateCached    ExecState = "CACHED"
)

// QueryStatus is a per-page execution snapshot handed to progress
// observers. State carries the engine-reported label, or "CACHED" when
// the result was served from the local cache without a network call.
type QueryStatus struct {
	QueryID  string
	State    string
	Progress float64
	RowCount int
}

// cachedStatus is the snapshot reported for a cache hit.
func cachedStatus(rows int) QueryStatus {
	return QueryStatus{
		State:    string(StateCached),
		Progress: 100,
		RowCount: rows,
	}
}

// statusFrom builds a snapshot from a statement response. Engines that
// omit stats report as running with unknown progress.
func statusFrom(resp *statementResponse, queryID string, rows int) QueryStatus {
	st := QueryStatus{
		QueryID:  queryID,
		State:    string(StateRunning),
		RowCount: rows,
	}
	if resp.Stats != nil {
		if resp.Stats.State != "" {
			st.State = resp.Stats.State
		}
		if resp.Stats.ProgressPercentage != nil {
			st.Progress = *resp.Stats.ProgressPercentage
		}
	}
	return st
}
