package tui

import (
	"task-manager/internal/domain"
)

// Phase is the lifecycle of the task list
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Op is a request the client can have in flight
type Op int

const (
	OpNone Op = iota
	OpFetch
	OpCreate
	OpUpdate
	OpToggle
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpFetch:
		return "fetch"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpToggle:
		return "toggle"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Banner messages shown when an operation fails
const (
	BannerFetchFailed  = "Failed to fetch tasks. Please try again."
	BannerCreateFailed = "Failed to create task."
	BannerUpdateFailed = "Failed to update task."
	BannerToggleFailed = "Failed to update task status."
	BannerDeleteFailed = "Failed to delete task."
)

func (o Op) failureBanner() string {
	switch o {
	case OpFetch:
		return BannerFetchFailed
	case OpCreate:
		return BannerCreateFailed
	case OpUpdate:
		return BannerUpdateFailed
	case OpToggle:
		return BannerToggleFailed
	case OpDelete:
		return BannerDeleteFailed
	default:
		return ""
	}
}

// Event is an input to State.Apply
type Event interface {
	event()
}

type (
	FetchRequested    struct{}
	FetchSucceeded    struct{ Tasks []domain.Task }
	FetchFailed       struct{ Err error }
	MutationRequested struct{ Op Op }
	MutationSucceeded struct{ Op Op }
	MutationFailed    struct {
		Op  Op
		Err error
	}
	EditStarted   struct{ ID string }
	EditCancelled struct{}
)

func (FetchRequested) event()    {}
func (FetchSucceeded) event()    {}
func (FetchFailed) event()       {}
func (MutationRequested) event() {}
func (MutationSucceeded) event() {}
func (MutationFailed) event()    {}
func (EditStarted) event()       {}
func (EditCancelled) event()     {}

// State is everything the terminal client knows about the task list.
// At most one request is in flight at a time.
type State struct {
	Phase     Phase
	Tasks     []domain.Task
	InFlight  Op
	Banner    string
	EditingID string
}

// Busy reports whether a request is in flight
func (s State) Busy() bool {
	return s.InFlight != OpNone
}

// Editing reports whether the form is bound to an existing task
func (s State) Editing() bool {
	return s.EditingID != ""
}

// Task returns the task with id from the current list
func (s State) Task(id string) (domain.Task, bool) {
	for _, task := range s.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Apply returns the state after e and whether e was accepted.
// A rejected event leaves the state unchanged.
func (s State) Apply(e Event) (State, bool) {
	switch e := e.(type) {
	case FetchRequested:
		if s.Busy() {
			return s, false
		}
		s.Phase = PhaseLoading
		s.InFlight = OpFetch
		s.Banner = ""
		return s, true

	case FetchSucceeded:
		if s.InFlight != OpFetch {
			return s, false
		}
		s.Phase = PhaseReady
		s.InFlight = OpNone
		s.Tasks = append([]domain.Task{}, e.Tasks...)
		if _, ok := s.Task(s.EditingID); !ok {
			s.EditingID = ""
		}
		return s, true

	case FetchFailed:
		if s.InFlight != OpFetch {
			return s, false
		}
		s.Phase = PhaseFailed
		s.InFlight = OpNone
		// a list already shown stays; only the first load ends empty
		if s.Tasks == nil {
			s.Tasks = []domain.Task{}
			s.EditingID = ""
		}
		s.Banner = BannerFetchFailed
		return s, true

	case MutationRequested:
		if s.Busy() || e.Op == OpNone || e.Op == OpFetch {
			return s, false
		}
		s.InFlight = e.Op
		return s, true

	case MutationSucceeded:
		if !s.Busy() || s.InFlight != e.Op {
			return s, false
		}
		if e.Op == OpUpdate {
			s.EditingID = ""
		}
		// every successful mutation is followed by a re-fetch
		s.Phase = PhaseLoading
		s.InFlight = OpFetch
		s.Banner = ""
		return s, true

	case MutationFailed:
		if !s.Busy() || s.InFlight != e.Op {
			return s, false
		}
		s.InFlight = OpNone
		s.Banner = e.Op.failureBanner()
		return s, true

	case EditStarted:
		if _, ok := s.Task(e.ID); !ok {
			return s, false
		}
		s.EditingID = e.ID
		return s, true

	case EditCancelled:
		if !s.Editing() {
			return s, false
		}
		s.EditingID = ""
		return s, true
	}
	return s, false
}
