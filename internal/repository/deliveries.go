package repository

import (
	"context"
	"fmt"
	"time"

	"parts-dispatch/internal/domain"
)

const assignmentContextQuery = `
        SELECT a.id, a.order_item_id, a.supplier_id, s.user_id, a.catalog_id, a.unit_price, a.line_total,
               a.score, a.status, a.created_at, a.updated_at,
               i.order_id, o.status, i.part_number, i.quantity,
               b.user_id, b.lat, b.lng, o.required_by,
               s.lat, s.lng, c.lead_time_hours,
               (SELECT ds.delivery_id FROM delivery_stops ds
                 WHERE ds.order_assignment_id = a.id ORDER BY ds.delivery_id LIMIT 1)
        FROM order_assignments a
        JOIN order_items i ON i.id = a.order_item_id
        JOIN orders o ON o.id = i.order_id
        JOIN buyers b ON b.id = o.buyer_id
        JOIN suppliers s ON s.id = a.supplier_id
        JOIN parts_catalog c ON c.id = a.catalog_id`

func scanAssignmentContext(row interface{ Scan(...any) error }) (domain.AssignmentContext, error) {
	var c domain.AssignmentContext
	a := &c.Assignment
	err := row.Scan(
		&a.ID, &a.ItemID, &a.SupplierID, &a.SupplierUserID, &a.CatalogID, &a.UnitPrice, &a.LineTotal,
		&a.Score, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&c.OrderID, &c.OrderStatus, &c.PartNumber, &c.Quantity,
		&c.BuyerUserID, &c.BuyerLat, &c.BuyerLng, &c.RequiredBy,
		&c.SupplierLat, &c.SupplierLng, &c.LeadTimeHours,
		&c.ScheduledOnID,
	)
	c.ItemID = a.ItemID
	return c, err
}

// AssignmentContexts - returns routing context for the assignments in request order and locks them.
func (r *TxRepo) AssignmentContexts(ctx context.Context, assignmentIDs []int64) ([]domain.AssignmentContext, error) {
	rows, err := r.tx.Query(ctx, assignmentContextQuery+`
        WHERE a.id = ANY($1)
        FOR UPDATE OF a`, assignmentIDs)
	if err != nil {
		return nil, fmt.Errorf("load assignment contexts: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]domain.AssignmentContext, len(assignmentIDs))
	for rows.Next() {
		c, err := scanAssignmentContext(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment context: %w", err)
		}
		byID[c.Assignment.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.AssignmentContext, 0, len(assignmentIDs))
	for _, id := range assignmentIDs {
		c, ok := byID[id]
		if !ok {
			return nil, notFound("assignment", id)
		}
		out = append(out, c)
	}
	return out, nil
}

// AvailableAssignments - returns ACCEPTED/PROPOSED assignments of CONFIRMED orders that are not on a delivery.
func (r *TxRepo) AvailableAssignments(ctx context.Context) ([]domain.AssignmentContext, error) {
	rows, err := r.tx.Query(ctx, assignmentContextQuery+`
        WHERE a.status IN ('ACCEPTED', 'PROPOSED')
          AND o.status = 'CONFIRMED'
          AND NOT EXISTS (SELECT 1 FROM delivery_stops ds WHERE ds.order_assignment_id = a.id)
        ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("list available assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.AssignmentContext
	for rows.Next() {
		c, err := scanAssignmentContext(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment context: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertDelivery - inserts a delivery with its stops, filling generated IDs.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (delivery_type, status, total_distance_km, total_duration_min,
                                optimized_distance_km, naive_distance_km, route_geometry, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        RETURNING id
    `, string(d.Type), string(d.Status), d.TotalDistanceKm, d.TotalDurationMin,
		d.OptimizedDistanceKm, d.NaiveDistanceKm, d.Geometry, d.CreatedAt).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	for i := range d.Stops {
		s := &d.Stops[i]
		s.DeliveryID = d.ID
		err := r.tx.QueryRow(ctx, `
            INSERT INTO delivery_stops (delivery_id, order_assignment_id, stop_type, sequence, lat, lng,
                                        window_start, window_end, eta)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING id
        `, d.ID, s.AssignmentID, string(s.Type), s.Sequence, s.Lat, s.Lng,
			s.WindowStart, s.WindowEnd, s.ETA).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert delivery stop %d: %w", s.Sequence, err)
		}
	}
	return nil
}

// GetDelivery - returns delivery with stops and latest ETA.
func (r *TxRepo) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	return r.loadDelivery(ctx, id, false)
}

// GetDeliveryForUpdate - returns delivery with stops and locks the delivery row.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	return r.loadDelivery(ctx, id, true)
}

func (r *TxRepo) loadDelivery(ctx context.Context, id int64, lock bool) (*domain.Delivery, error) {
	q := `
        SELECT d.id, d.delivery_type, d.status, d.total_distance_km, d.total_duration_min,
               d.optimized_distance_km, d.naive_distance_km, d.route_geometry, d.created_at, d.updated_at,
               (SELECT e.eta FROM delivery_eta_logs e WHERE e.delivery_id = d.id ORDER BY e.id DESC LIMIT 1)
        FROM deliveries d
        WHERE d.id = $1`
	if lock {
		q += ` FOR UPDATE OF d`
	}

	var d domain.Delivery
	err := r.tx.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.Type, &d.Status, &d.TotalDistanceKm, &d.TotalDurationMin,
		&d.OptimizedDistanceKm, &d.NaiveDistanceKm, &d.Geometry, &d.CreatedAt, &d.UpdatedAt,
		&d.LatestETA,
	)
	if err != nil {
		return nil, wrapGet(err, "delivery", id)
	}

	rows, err := r.tx.Query(ctx, `
        SELECT id, delivery_id, order_assignment_id, stop_type, sequence, lat, lng, window_start, window_end, eta
        FROM delivery_stops
        WHERE delivery_id = $1
        ORDER BY sequence
    `, id)
	if err != nil {
		return nil, fmt.Errorf("list stops of delivery %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.DeliveryStop
		if err := rows.Scan(&s.ID, &s.DeliveryID, &s.AssignmentID, &s.Type, &s.Sequence, &s.Lat, &s.Lng,
			&s.WindowStart, &s.WindowEnd, &s.ETA); err != nil {
			return nil, fmt.Errorf("scan stop: %w", err)
		}
		d.Stops = append(d.Stops, s)
	}
	return &d, rows.Err()
}

// UpdateDeliveryStatus - sets delivery status.
func (r *TxRepo) UpdateDeliveryStatus(ctx context.Context, id int64, status domain.DeliveryStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `UPDATE deliveries SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update delivery status %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("delivery", id)
	}
	return nil
}

// UpdateStopETAs - stores recomputed stop ETAs.
func (r *TxRepo) UpdateStopETAs(ctx context.Context, deliveryID int64, stops []domain.DeliveryStop) error {
	for _, s := range stops {
		ct, err := r.tx.Exec(ctx,
			`UPDATE delivery_stops SET eta = $3 WHERE id = $1 AND delivery_id = $2`, s.ID, deliveryID, s.ETA)
		if err != nil {
			return fmt.Errorf("update stop eta %d: %w", s.ID, err)
		}
		if ct.RowsAffected() == 0 {
			return notFound("delivery stop", s.ID)
		}
	}
	return nil
}

// InsertEtaLog - appends an ETA log row.
func (r *TxRepo) InsertEtaLog(ctx context.Context, e *domain.EtaLogEntry) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO delivery_eta_logs (delivery_id, eta, created_at)
        VALUES ($1, $2, $3)
        RETURNING id
    `, e.DeliveryID, e.ETA, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert eta log: %w", err)
	}
	return nil
}

// DeliveryStats - aggregates every delivery; savings cover batched deliveries only.
func (r *TxRepo) DeliveryStats(ctx context.Context) (domain.DeliveryStats, error) {
	var s domain.DeliveryStats
	err := r.tx.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE delivery_type = 'batched'),
               COALESCE(AVG(total_distance_km), 0),
               COALESCE(AVG(total_duration_min), 0),
               COALESCE(SUM(GREATEST(naive_distance_km - optimized_distance_km, 0))
                        FILTER (WHERE delivery_type = 'batched'), 0),
               COALESCE(AVG(CASE WHEN naive_distance_km > 0
                                 THEN GREATEST(naive_distance_km - optimized_distance_km, 0) / naive_distance_km * 100
                                 ELSE 0 END)
                        FILTER (WHERE delivery_type = 'batched'), 0)
        FROM deliveries
    `).Scan(&s.Count, &s.BatchedCount, &s.AvgDistanceKm, &s.AvgDurationMin, &s.TotalSavingsKm, &s.AvgSavingsPercent)
	if err != nil {
		return domain.DeliveryStats{}, fmt.Errorf("delivery stats: %w", err)
	}
	return s, nil
}
