package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobKind names a background job.
type JobKind string

// Job kinds.
const (
	JobMatchOrder         JobKind = "match_order"
	JobPlanSingleDelivery JobKind = "plan_single_delivery"
	JobRecomputeETA       JobKind = "recompute_eta"
)

// Valid reports whether k is a known job kind.
func (k JobKind) Valid() bool {
	switch k {
	case JobMatchOrder, JobPlanSingleDelivery, JobRecomputeETA:
		return true
	}
	return false
}

// Job is a unit of background work. Exactly one target id is set, depending on Kind.
type Job struct {
	ID           uuid.UUID
	Kind         JobKind
	OrderID      int64
	AssignmentID int64
	DeliveryID   int64
	Attempt      int
	EnqueuedAt   time.Time
}

// NewJob builds a job with a fresh id.
func NewJob(kind JobKind, targetID int64, at time.Time) Job {
	j := Job{ID: uuid.New(), Kind: kind, EnqueuedAt: at}
	switch kind {
	case JobMatchOrder:
		j.OrderID = targetID
	case JobPlanSingleDelivery:
		j.AssignmentID = targetID
	case JobRecomputeETA:
		j.DeliveryID = targetID
	}
	return j
}

// TargetID returns the id the job acts on.
func (j Job) TargetID() int64 {
	switch j.Kind {
	case JobMatchOrder:
		return j.OrderID
	case JobPlanSingleDelivery:
		return j.AssignmentID
	case JobRecomputeETA:
		return j.DeliveryID
	}
	return 0
}
