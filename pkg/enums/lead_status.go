package enums

import "fmt"

// LeadStatus tracks the lifecycle of a carrier lead.
type LeadStatus string

const (
	LeadStatusNew            LeadStatus = "new"
	LeadStatusInProgress     LeadStatus = "in_progress"
	LeadStatusFollowUp       LeadStatus = "follow_up"
	LeadStatusHandToDispatch LeadStatus = "hand_to_dispatch"
	LeadStatusActive         LeadStatus = "active"
	LeadStatusLost           LeadStatus = "lost"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusInProgress,
	LeadStatusFollowUp,
	LeadStatusHandToDispatch,
	LeadStatusActive,
	LeadStatusLost,
}

// leadStatusRank orders the pipeline; lost sits outside the chain.
var leadStatusRank = map[LeadStatus]int{
	LeadStatusNew:            0,
	LeadStatusInProgress:     1,
	LeadStatusFollowUp:       2,
	LeadStatusHandToDispatch: 3,
	LeadStatusActive:         4,
}

// String implements fmt.Stringer.
func (s LeadStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LeadStatus.
func (s LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status accepts no further transitions.
// Lost is final, and active leads never move backwards through this pipeline.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusLost || s == LeadStatusActive
}

// CanTransitionTo reports whether target is reachable from s. The pipeline
// only moves forward; lost is reachable from any non-terminal state.
func (s LeadStatus) CanTransitionTo(target LeadStatus) bool {
	if !s.IsValid() || !target.IsValid() || s == target {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == LeadStatusLost {
		return true
	}
	return leadStatusRank[target] > leadStatusRank[s]
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
