package handlers

import (
	"net/http"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/service/matching"
)

// MatchingHandler exposes supplier matching, its simulation and the weight profiles.
type MatchingHandler struct {
	usecase  matchingUsecase
	profiles weightProfiles
	logger   logx.Logger
}

// NewMatchingHandler creates a new MatchingHandler.
func NewMatchingHandler(logger logx.Logger, uc matchingUsecase, profiles weightProfiles) *MatchingHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &MatchingHandler{usecase: uc, profiles: profiles, logger: logger}
}

// RunOrder handles POST /matching/order/{id}.
// @Summary Match every pending item of an order
// @Tags matching
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} matching.ItemResult
// @Failure 400 {object} ErrorResponse "order not in PLACED"
// @Failure 404 {object} ErrorResponse "order not found"
// @Router /matching/order/{id} [post]
func (h *MatchingHandler) RunOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	res, err := h.usecase.RunMatching(r.Context(), id, actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, results(res))
}

// Simulate handles POST /matching/simulate. It scores without writing anything.
func (h *MatchingHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	switch {
	case req.OrderID > 0 && req.OrderItemID > 0:
		writeError(h.logger, w, r, http.StatusBadRequest, "provide order_id or order_item_id, not both")
	case req.OrderID > 0:
		res, err := h.usecase.SimulateOrder(r.Context(), req.OrderID)
		if err != nil {
			writeDomainError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, results(res))
	case req.OrderItemID > 0:
		res, err := h.usecase.SimulateItem(r.Context(), req.OrderItemID)
		if err != nil {
			writeDomainError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, res)
	default:
		writeError(h.logger, w, r, http.StatusBadRequest, "order_id or order_item_id is required")
	}
}

// Logs handles GET /matching/logs/{item_id}.
func (h *MatchingHandler) Logs(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "item_id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	entries, err := h.usecase.MatchLog(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, matchLogToDTO(entries))
}

// GetConfig handles GET /matching/config.
func (h *MatchingHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, h.profiles.Current().All())
}

// PutConfig handles PUT /matching/config. Tiers missing from the body keep their
// current weights; a tier whose weights do not sum to 1 rejects the whole update.
func (h *MatchingHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	if !actorFrom(r).Privileged() {
		writeError(h.logger, w, r, http.StatusForbidden, "only admins change weight profiles")
		return
	}
	var req map[domain.Urgency]domain.WeightProfile
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if len(req) == 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "no weight profiles given")
		return
	}

	updated, err := h.profiles.Replace(req)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	h.logger.Info("weight profiles updated",
		logx.String("event", "weights_updated"),
		logx.Int64("user_id", actorFrom(r).UserID),
		logx.Int("tiers", len(req)),
	)
	writeJSON(h.logger, w, r, http.StatusOK, updated.All())
}

func results(res []matching.ItemResult) []matching.ItemResult {
	if res == nil {
		return []matching.ItemResult{}
	}
	return res
}
