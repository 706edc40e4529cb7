package assessment

import (
	"strings"
)

// Status is the lifecycle tag carried by a single section/CLO assessment
// record. Rollup logic switches on exact members, so the set is closed.
type Status string

const (
	StatusUnassigned       Status = "unassigned"
	StatusAssigned         Status = "assigned"
	StatusInProgress       Status = "in_progress"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusApprovalPending  Status = "approval_pending"
	StatusApproved         Status = "approved"
	StatusNeverComingIn    Status = "never_coming_in"
)

// AggregateStatus is a pure projection over a set of records. It is never
// stored; it is recomputed from scratch on every read.
type AggregateStatus string

const (
	AggregateNotStarted  AggregateStatus = "not_started"
	AggregateInProgress  AggregateStatus = "in_progress"
	AggregateNeedsRework AggregateStatus = "needs_rework"
	AggregateSubmitted   AggregateStatus = "submitted"
	AggregateApproved    AggregateStatus = "approved"
	AggregateNCI         AggregateStatus = "nci"
	AggregateUnknown     AggregateStatus = "unknown"
)

// Record is the assessment state of one CLO for one section.
type Record struct {
	Status         Status
	StudentsTook   *int
	StudentsPassed *int
	AssessmentTool string
}

// HasData reports whether an instructor has entered anything for this
// record, independent of its lifecycle status. A record whose StudentsTook
// is nil still counts as having data when StudentsPassed or a tool name is
// present; the rollup must reflect "something is happening" even before an
// explicit status toggle.
func (r Record) HasData() bool {
	if r.StudentsTook != nil || r.StudentsPassed != nil {
		return true
	}
	return strings.TrimSpace(r.AssessmentTool) != ""
}

// ResolveStatus computes one aggregate status for a unit (section, course,
// program rollup) from its records. The rules are an ordered precedence
// list: they are not mutually exclusive, and order is the tie-break.
//
//  1. any approval_pending          -> needs_rework
//  2. all never_coming_in           -> nci
//  3. all approved                  -> approved
//  4. all awaiting_approval         -> submitted
//  5. any in_progress or any data   -> in_progress
//  6. all assigned/unassigned       -> not_started
//  7. otherwise                     -> unknown
//
// A single rejected record gates the whole unit regardless of how many
// siblings are already approved. Empty input yields not_started. The
// function is total: unrecognized status strings fall through every rule
// and land on unknown, which is an escape hatch rather than an error.
func ResolveStatus(records []Record) AggregateStatus {
	if len(records) == 0 {
		return AggregateNotStarted
	}

	allNCI := true
	allApproved := true
	allAwaiting := true
	allIdle := true
	anyActive := false
	for _, r := range records {
		if r.Status == StatusApprovalPending {
			return AggregateNeedsRework
		}
		if r.Status != StatusNeverComingIn {
			allNCI = false
		}
		if r.Status != StatusApproved {
			allApproved = false
		}
		if r.Status != StatusAwaitingApproval {
			allAwaiting = false
		}
		if r.Status != StatusAssigned && r.Status != StatusUnassigned {
			allIdle = false
		}
		if r.Status == StatusInProgress || r.HasData() {
			anyActive = true
		}
	}

	switch {
	case allNCI:
		return AggregateNCI
	case allApproved:
		return AggregateApproved
	case allAwaiting:
		return AggregateSubmitted
	case anyActive:
		return AggregateInProgress
	case allIdle:
		return AggregateNotStarted
	}
	return AggregateUnknown
}

// ValidStatus reports whether s is a member of the closed lifecycle set.
// The write path rejects anything else; ResolveStatus tolerates it.
func ValidStatus(s Status) bool {
	switch s {
	case StatusUnassigned, StatusAssigned, StatusInProgress,
		StatusAwaitingApproval, StatusApprovalPending,
		StatusApproved, StatusNeverComingIn:
		return true
	}
	return false
}
