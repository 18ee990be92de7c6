package models

import "time"

// LoadState is the lifecycle of a table load: Idle → Loading → {Ready, Failed}.
// Exactly one variant is held at a time.
type LoadState interface {
	Phase() Phase
	isLoadState()
}

// Phase names a LoadState variant.
type Phase int

const (
	// PhaseIdle means no load has been triggered yet.
	PhaseIdle Phase = iota
	// PhaseLoading means a load is in flight.
	PhaseLoading
	// PhaseReady means the last load produced a report.
	PhaseReady
	// PhaseFailed means the last load ended with an error.
	PhaseFailed
)

// String returns the display name for a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "error"
	default:
		return "unknown"
	}
}

type (
	// Idle is the state before the first load.
	Idle struct{}

	// Loading is held while fetch and aggregation run.
	Loading struct {
		StartedAt time.Time
		// Previous is the report of the last successful load, if any.
		Previous *Report
	}

	// Ready holds the result of a successful load.
	Ready struct {
		Report   *Report
		LoadedAt time.Time
		Duration time.Duration
	}

	// Failed holds the terminal error of the last load.
	Failed struct {
		Err      *LoadError
		FailedAt time.Time
	}
)

// Phase implements LoadState.
func (Idle) Phase() Phase { return PhaseIdle }

// Phase implements LoadState.
func (Loading) Phase() Phase { return PhaseLoading }

// Phase implements LoadState.
func (Ready) Phase() Phase { return PhaseReady }

// Phase implements LoadState.
func (Failed) Phase() Phase { return PhaseFailed }

func (Idle) isLoadState()    {}
func (Loading) isLoadState() {}
func (Ready) isLoadState()   {}
func (Failed) isLoadState()  {}

// BeginLoad returns the Loading state entered from s, or false when a load is
// already in flight.
func BeginLoad(s LoadState, now time.Time) (Loading, bool) {
	switch st := s.(type) {
	case Loading:
		return st, false
	case Ready:
		return Loading{StartedAt: now, Previous: st.Report}, true
	default:
		return Loading{StartedAt: now}, true
	}
}

// LastReport returns the most recent report visible from s, or nil.
func LastReport(s LoadState) *Report {
	switch st := s.(type) {
	case Ready:
		return st.Report
	case Loading:
		return st.Previous
	default:
		return nil
	}
}
