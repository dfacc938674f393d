package services

import (
	"github.com/dmitrijs2005/portal/internal/client/client"
	"github.com/dmitrijs2005/portal/internal/client/models"
)

// State is a position in the submission state machine:
//
//	idle -> validating -> submitting -> settled-{success,duplicate,error} -> idle
//
// A rejected validation goes straight back to idle.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSettledSuccess
	StateSettledDuplicate
	StateSettledError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSettledSuccess:
		return "settled-success"
	case StateSettledDuplicate:
		return "settled-duplicate"
	case StateSettledError:
		return "settled-error"
	default:
		return "invalid"
	}
}

type Transition struct {
	From State
	To   State
}

// Result says how a submit command ended.
type Result int

const (
	// ResultRejected: failed local validation, nothing was sent.
	ResultRejected Result = iota
	// ResultIgnored: another submission was in flight, nothing was sent.
	ResultIgnored
	ResultSuccess
	// ResultDuplicate: the backend already had this write. Counts as success.
	ResultDuplicate
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultRejected:
		return "rejected"
	case ResultIgnored:
		return "ignored"
	case ResultSuccess:
		return "success"
	case ResultDuplicate:
		return "duplicate"
	case ResultError:
		return "error"
	default:
		return "invalid"
	}
}

// Outcome is the single event produced for each submit command.
type Outcome struct {
	Result Result
	// Settled is the settled state the attempt passed through, or StateIdle
	// when it never reached the network.
	Settled State
	Class   client.ErrorClass
	// Message is what the user should see.
	Message string
	Err     error

	IdempotencyKey string
	Post           *models.Post

	// Thread and Posts hold the re-read performed after a successful write.
	Thread     *models.Thread
	Posts      *models.PostPage
	RefreshErr error
}

// OK reports whether the write is known to have taken effect.
func (o Outcome) OK() bool {
	return o.Result == ResultSuccess || o.Result == ResultDuplicate
}
