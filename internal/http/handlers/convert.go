package handlers

import (
	"parts-dispatch/internal/domain"
)

func orderToDTO(o *domain.Order) orderDTO {
	out := orderDTO{
		ID:         o.ID,
		BuyerID:    o.BuyerID,
		Urgency:    string(o.Urgency),
		RequiredBy: o.RequiredBy,
		Status:     string(o.Status),
		Items:      make([]orderItemDTO, 0, len(o.Items)),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for i := range o.Items {
		out.Items = append(out.Items, itemToDTO(&o.Items[i]))
	}
	return out
}

func itemToDTO(it *domain.OrderItem) orderItemDTO {
	out := orderItemDTO{
		ID:          it.ID,
		OrderID:     it.OrderID,
		PartNumber:  it.PartNumber,
		Description: it.Description,
		Quantity:    it.Quantity,
		Status:      string(it.Status),
		Assignments: make([]assignmentDTO, 0, len(it.Assignments)),
	}
	for i := range it.Assignments {
		out.Assignments = append(out.Assignments, assignmentToDTO(&it.Assignments[i]))
	}
	return out
}

func assignmentToDTO(a *domain.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:         a.ID,
		SupplierID: a.SupplierID,
		CatalogID:  a.CatalogID,
		UnitPrice:  a.UnitPrice,
		LineTotal:  a.LineTotal,
		Score:      a.Score,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func historyToDTO(hs []domain.HistoryEntry) []historyDTO {
	out := make([]historyDTO, 0, len(hs))
	for _, h := range hs {
		out = append(out, historyDTO{
			ID:          h.ID,
			ItemID:      h.ItemID,
			FromStatus:  h.FromStatus,
			ToStatus:    h.ToStatus,
			ActorUserID: h.ActorUserID,
			ActorRole:   string(h.ActorRole),
			CreatedAt:   h.CreatedAt,
		})
	}
	return out
}

func newOrderFromRequest(req placeOrderRequest) domain.NewOrder {
	in := domain.NewOrder{
		BuyerID:    req.BuyerID,
		Urgency:    domain.Urgency(req.Urgency),
		RequiredBy: req.RequiredBy,
		Items:      make([]domain.NewOrderItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, domain.NewOrderItem{
			PartNumber:  it.PartNumber,
			Description: it.Description,
			Quantity:    it.Quantity,
		})
	}
	return in
}

func matchLogToDTO(entries []domain.MatchLogEntry) []matchLogDTO {
	out := make([]matchLogDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, matchLogDTO{
			SupplierID:         e.SupplierID,
			CatalogID:          e.CatalogID,
			DistanceKm:         e.DistanceKm,
			DistanceScore:      e.DistanceScore,
			ReliabilityScore:   e.ReliabilityScore,
			PriceScore:         e.PriceScore,
			UrgencyScore:       e.UrgencyScore,
			ConsolidationBonus: e.ConsolidationBonus,
			TotalScore:         e.TotalScore,
			Rank:               e.Rank,
			CreatedAt:          e.CreatedAt,
		})
	}
	return out
}

func stopsToDTO(stops []domain.DeliveryStop) []stopDTO {
	out := make([]stopDTO, 0, len(stops))
	for _, s := range stops {
		out = append(out, stopDTO{
			AssignmentID: s.AssignmentID,
			Type:         string(s.Type),
			Sequence:     s.Sequence,
			Lat:          s.Lat,
			Lng:          s.Lng,
			WindowStart:  s.WindowStart,
			WindowEnd:    s.WindowEnd,
			ETA:          s.ETA,
		})
	}
	return out
}

func deliveryToDTO(d *domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:                  d.ID,
		Type:                string(d.Type),
		Status:              string(d.Status),
		TotalDistanceKm:     d.TotalDistanceKm,
		TotalDurationMin:    d.TotalDurationMin,
		OptimizedDistanceKm: d.OptimizedDistanceKm,
		NaiveDistanceKm:     d.NaiveDistanceKm,
		SavingsKm:           d.SavingsKm(),
		SavingsPercent:      d.SavingsPercent(),
		LatestETA:           d.LatestETA,
		Stops:               stopsToDTO(d.Stops),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func deliveriesToDTO(ds []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(ds))
	for i := range ds {
		out = append(out, deliveryToDTO(&ds[i]))
	}
	return out
}

func availableToDTO(cs []domain.AssignmentContext) []availableAssignmentDTO {
	out := make([]availableAssignmentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, availableAssignmentDTO{
			AssignmentID: c.Assignment.ID,
			OrderID:      c.OrderID,
			OrderItemID:  c.ItemID,
			PartNumber:   c.PartNumber,
			Quantity:     c.Quantity,
			SupplierID:   c.Assignment.SupplierID,
			SupplierLat:  c.SupplierLat,
			SupplierLng:  c.SupplierLng,
			BuyerLat:     c.BuyerLat,
			BuyerLng:     c.BuyerLng,
			RequiredBy:   c.RequiredBy,
		})
	}
	return out
}

func catalogToDTO(c *domain.CatalogEntry) catalogDTO {
	return catalogDTO{
		ID:               c.ID,
		SupplierID:       c.SupplierID,
		PartNumber:       c.PartNumber,
		Description:      c.Description,
		UnitPrice:        c.UnitPrice,
		QuantityInStock:  c.QuantityInStock,
		MinOrderQuantity: c.MinOrderQuantity,
		LeadTimeHours:    c.LeadTimeHours,
		LowStock:         c.LowStock(),
		UpdatedAt:        c.UpdatedAt,
	}
}

func catalogListToDTO(cs []domain.CatalogEntry) []catalogDTO {
	out := make([]catalogDTO, 0, len(cs))
	for i := range cs {
		out = append(out, catalogToDTO(&cs[i]))
	}
	return out
}

func stockToDTO(ss []domain.SupplierStock) []stockDTO {
	out := make([]stockDTO, 0, len(ss))
	for i := range ss {
		s := &ss[i]
		out = append(out, stockDTO{
			catalogDTO:      catalogToDTO(&s.CatalogEntry),
			SupplierName:    s.SupplierName,
			Lat:             s.Lat,
			Lng:             s.Lng,
			ServiceRadiusKm: s.ServiceRadiusKm,
			Reliability:     s.Reliability,
		})
	}
	return out
}

func notificationsToDTO(ns []domain.Notification) []notificationDTO {
	out := make([]notificationDTO, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationDTO{
			ID:        n.ID,
			EventID:   n.EventID.String(),
			EventType: string(n.EventType),
			Payload:   n.Payload,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
