package handlers

import (
	"net/http"
	"strings"
	"time"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

// JobHandler lets admins queue background work by hand.
type JobHandler struct {
	queue  jobQueue
	logger logx.Logger
	now    func() time.Time
}

// NewJobHandler creates a new JobHandler. A nil queue answers 503.
func NewJobHandler(logger logx.Logger, q jobQueue) *JobHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &JobHandler{queue: q, logger: logger, now: time.Now}
}

// Enqueue handles POST /jobs.
// @Summary Queue a background job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body enqueueJobRequest true "Job kind and target"
// @Success 202 {object} enqueueJobResponse
// @Failure 503 {object} ErrorResponse "job queue disabled"
// @Router /jobs [post]
func (h *JobHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	if !actorFrom(r).Privileged() {
		writeError(h.logger, w, r, http.StatusForbidden, "only admins queue jobs")
		return
	}
	if h.queue == nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "job queue disabled")
		return
	}
	var req enqueueJobRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	kind := domain.JobKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown job kind")
		return
	}
	if req.TargetID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "target_id is required")
		return
	}

	job := domain.NewJob(kind, req.TargetID, h.now().UTC())
	if err := h.queue.Enqueue(r.Context(), job); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	h.logger.Info("job queued",
		logx.String("event", "job_queued"),
		logx.String("job_id", job.ID.String()),
		logx.String("kind", string(kind)),
		logx.Int64("target_id", req.TargetID),
	)
	writeJSON(h.logger, w, r, http.StatusAccepted, enqueueJobResponse{
		ID:       job.ID.String(),
		Kind:     string(kind),
		TargetID: req.TargetID,
	})
}
