package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"parts-dispatch/internal/domain"
)

// JobDTO is the wire form of a domain.Job on the jobs topic.
type JobDTO struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	OrderID      int64     `json:"order_id,omitempty"`
	AssignmentID int64     `json:"assignment_id,omitempty"`
	DeliveryID   int64     `json:"delivery_id,omitempty"`
	Attempt      int       `json:"attempt"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// FromDomain converts a job to its wire form.
func FromDomain(j domain.Job) JobDTO {
	return JobDTO{
		ID:           j.ID.String(),
		Kind:         string(j.Kind),
		OrderID:      j.OrderID,
		AssignmentID: j.AssignmentID,
		DeliveryID:   j.DeliveryID,
		Attempt:      j.Attempt,
		EnqueuedAt:   j.EnqueuedAt.UTC(),
	}
}

// ToDomain converts JobDTO to domain.Job. Malformed jobs are permanent errors.
func ToDomain(dto JobDTO) (domain.Job, error) {
	id, err := uuid.Parse(strings.TrimSpace(dto.ID))
	if err != nil {
		return domain.Job{}, Permanent(fmt.Errorf("job id %q: %w", dto.ID, err))
	}
	kind := domain.JobKind(strings.ToLower(strings.TrimSpace(dto.Kind)))
	if !kind.Valid() {
		return domain.Job{}, Permanent(fmt.Errorf("unknown job kind %q", dto.Kind))
	}
	j := domain.Job{
		ID:           id,
		Kind:         kind,
		OrderID:      dto.OrderID,
		AssignmentID: dto.AssignmentID,
		DeliveryID:   dto.DeliveryID,
		Attempt:      max(0, dto.Attempt),
		EnqueuedAt:   dto.EnqueuedAt,
	}
	if j.TargetID() <= 0 {
		return domain.Job{}, Permanent(fmt.Errorf("job %s has no %s target", id, kind))
	}
	return j, nil
}
