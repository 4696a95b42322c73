package handlers

import (
	"net/http"
	"slices"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

const defaultNotificationLimit = 50

// OrderHandler handles HTTP requests for orders, their items and assignments.
type OrderHandler struct {
	usecase ordersUsecase
	logger  logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, uc ordersUsecase) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{usecase: uc, logger: logger}
}

// Place handles POST /orders.
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body placeOrderRequest true "Order payload"
// @Success 201 {object} orderDTO
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 403 {object} ErrorResponse "not the buyer"
// @Router /orders [post]
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.usecase.PlaceOrder(r.Context(), actorFrom(r), newOrderFromRequest(req))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, orderToDTO(o))
}

// Get handles GET /orders/{id}. Only admins, the ordering buyer and suppliers holding
// an assignment on the order can see it.
// @Summary Get order with items, history and total value
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} orderDetailsResponse
// @Failure 404 {object} ErrorResponse "order not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	details, err := h.usecase.GetOrder(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	if !canView(actorFrom(r), details.Order) {
		writeError(h.logger, w, r, http.StatusForbidden, "order is not visible to this user")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderDetailsResponse{
		orderDTO:   orderToDTO(details.Order),
		TotalValue: details.TotalValue,
		History:    historyToDTO(details.History),
	})
}

// History handles GET /orders/{id}/history.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	details, err := h.usecase.GetOrder(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	if !canView(actorFrom(r), details.Order) {
		writeError(h.logger, w, r, http.StatusForbidden, "order is not visible to this user")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, historyToDTO(details.History))
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	next, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown order status")
		return
	}

	o, err := h.usecase.TransitionOrderStatus(r.Context(), id, next, actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToDTO(o))
}

// UpdateItemStatus handles PATCH /orders/items/{id}/status.
func (h *OrderHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	next, ok := domain.ParseItemStatus(req.Status)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown item status")
		return
	}

	it, err := h.usecase.TransitionItemStatus(r.Context(), id, next, actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, itemToDTO(it))
}

// Cancel handles POST /orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	o, err := h.usecase.CancelOrder(r.Context(), id, actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToDTO(o))
}

// ConfirmAssignment handles POST /orders/assignments/{id}/confirm.
// @Summary Supplier accepts a proposed assignment
// @Tags orders
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} assignmentDTO
// @Failure 400 {object} ErrorResponse "insufficient stock or invalid transition"
// @Failure 403 {object} ErrorResponse "not the assigned supplier"
// @Router /orders/assignments/{id}/confirm [post]
func (h *OrderHandler) ConfirmAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.usecase.AcceptAssignment(r.Context(), id, actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToDTO(a))
}

// RejectAssignment handles POST /orders/assignments/{id}/reject.
func (h *OrderHandler) RejectAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.usecase.RejectAssignment(r.Context(), id, actorFrom(r))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToDTO(a))
}

// Notifications handles GET /notifications for the calling user.
func (h *OrderHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultNotificationLimit)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	ns, err := h.usecase.Notifications(r.Context(), actorFrom(r).UserID, limit)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, notificationsToDTO(ns))
}

func canView(actor domain.Actor, o *domain.Order) bool {
	switch {
	case actor.Privileged():
		return true
	case actor.Role == domain.RoleBuyer:
		return o.BuyerUserID == actor.UserID
	case actor.Role == domain.RoleSupplier:
		return slices.Contains(o.SupplierUserIDs(), actor.UserID)
	}
	return false
}
