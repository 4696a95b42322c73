package handlers

import (
	"net/http"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

// DeliveryHandler handles HTTP requests for delivery planning and tracking.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// CreateSingle handles POST /deliveries/single.
// @Summary Plan a single pickup and dropoff delivery
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body singleDeliveryRequest true "Assignment to deliver"
// @Success 201 {object} deliveryDTO
// @Failure 400 {object} ErrorResponse "assignment not routable"
// @Failure 403 {object} ErrorResponse "admins only"
// @Router /deliveries/single [post]
func (h *DeliveryHandler) CreateSingle(w http.ResponseWriter, r *http.Request) {
	var req singleDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.AssignmentID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "assignment_id is required")
		return
	}

	d, err := h.usecase.CreateSingleDelivery(r.Context(), actorFrom(r), req.AssignmentID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToDTO(d))
}

// CreateBatch handles POST /deliveries/batch.
// @Summary Plan batched deliveries for several assignments
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body batchDeliveryRequest true "Assignments and vehicle count"
// @Success 201 {array} deliveryDTO
// @Router /deliveries/batch [post]
func (h *DeliveryHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Vehicles < 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "vehicles must not be negative")
		return
	}

	ds, err := h.usecase.CreateBatchedDelivery(r.Context(), actorFrom(r), req.AssignmentIDs, req.Vehicles)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveriesToDTO(ds))
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}

// Route handles GET /deliveries/{id}/route and returns the GeoJSON line with its stops.
func (h *DeliveryHandler) Route(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routeResponse{
		DeliveryID: d.ID,
		Geometry:   d.Geometry,
		Stops:      stopsToDTO(d.Stops),
	})
}

func (h *DeliveryHandler) load(w http.ResponseWriter, r *http.Request) (*domain.Delivery, bool) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	d, err := h.usecase.GetDelivery(r.Context(), actorFrom(r), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return nil, false
	}
	return d, true
}

// UpdateStatus handles PATCH /deliveries/{id}/status.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	to, ok := domain.ParseDeliveryStatus(req.Status)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown delivery status")
		return
	}

	d, err := h.usecase.UpdateDeliveryStatus(r.Context(), actorFrom(r), id, to)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}

// UpdateETA handles POST /deliveries/{id}/update-eta.
func (h *DeliveryHandler) UpdateETA(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.usecase.RecomputeETA(r.Context(), actorFrom(r), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}

// Available handles GET /deliveries/assignments/available.
func (h *DeliveryHandler) Available(w http.ResponseWriter, r *http.Request) {
	cs, err := h.usecase.AvailableAssignments(r.Context(), actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, availableToDTO(cs))
}

// Stats handles GET /deliveries/stats.
func (h *DeliveryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !actorFrom(r).Privileged() {
		writeError(h.logger, w, r, http.StatusForbidden, "only admins read delivery stats")
		return
	}
	s, err := h.usecase.Stats(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryStatsDTO{
		Count:             s.Count,
		BatchedCount:      s.BatchedCount,
		AvgDistanceKm:     s.AvgDistanceKm,
		AvgDurationMin:    s.AvgDurationMin,
		TotalSavingsKm:    s.TotalSavingsKm,
		AvgSavingsPercent: s.AvgSavingsPercent,
	})
}
