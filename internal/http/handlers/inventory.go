package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"parts-dispatch/internal/logx"
)

// InventoryHandler serves supplier catalog lookups and stock maintenance.
type InventoryHandler struct {
	usecase catalogUsecase
	logger  logx.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(logger logx.Logger, uc catalogUsecase) *InventoryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &InventoryHandler{usecase: uc, logger: logger}
}

// Search handles GET /inventory/search?part=&min_quantity=.
func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	part := strings.TrimSpace(r.URL.Query().Get("part"))
	if part == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "part is required")
		return
	}
	minQty, err := queryInt(r, "min_quantity", 1)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	stock, err := h.usecase.Search(r.Context(), part, minQty)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, stockToDTO(stock))
}

// Get handles GET /inventory/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, catalogToDTO(c))
}

// Restock handles POST /inventory/{id}/restock.
func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req restockRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.Restock(r.Context(), actorFrom(r), id, req.Quantity)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, catalogToDTO(c))
}

// LowStock handles GET /inventory/low-stock?supplier_id=.
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	supplierID, err := strconv.ParseInt(r.URL.Query().Get("supplier_id"), 10, 64)
	if err != nil || supplierID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid supplier_id")
		return
	}

	cs, err := h.usecase.LowStock(r.Context(), actorFrom(r), supplierID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, catalogListToDTO(cs))
}
