package domain

import "time"

// OutcomeStatus classifies how the player fared with one action.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome is the per-action result folded into a playback report.
type Outcome struct {
	Index   int           `json:"index"`
	Kind    ActionKind    `json:"kind"`
	Target  string        `json:"target,omitempty"`
	Status  OutcomeStatus `json:"status"`
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}
