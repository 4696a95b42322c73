package repository

import (
	"context"
	"fmt"
	"time"

	"parts-dispatch/internal/domain"
)

// GetBuyer - returns buyer by its ID.
func (r *TxRepo) GetBuyer(ctx context.Context, id int64) (*domain.Buyer, error) {
	var b domain.Buyer
	err := r.tx.QueryRow(ctx,
		`SELECT id, user_id, name, lat, lng FROM buyers WHERE id = $1`, id,
	).Scan(&b.ID, &b.UserID, &b.Name, &b.Lat, &b.Lng)
	if err != nil {
		return nil, wrapGet(err, "buyer", id)
	}
	return &b, nil
}

// InsertOrder - inserts an order with its items, filling generated IDs.
func (r *TxRepo) InsertOrder(ctx context.Context, o *domain.Order) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO orders (buyer_id, urgency, required_by, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        RETURNING id
    `, o.BuyerID, string(o.Urgency), o.RequiredBy, string(o.Status), o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := r.tx.QueryRow(ctx, `
            INSERT INTO order_items (order_id, position, part_number, description, quantity, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
            RETURNING id
        `, o.ID, i, it.PartNumber, it.Description, it.Quantity, string(it.Status), it.CreatedAt).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}
	return nil
}

// GetOrder - returns order with items and assignments.
func (r *TxRepo) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return r.loadOrder(ctx, id, false)
}

// GetOrderForUpdate - returns order with items and assignments and locks the order row.
func (r *TxRepo) GetOrderForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.loadOrder(ctx, id, true)
}

func (r *TxRepo) loadOrder(ctx context.Context, id int64, lock bool) (*domain.Order, error) {
	q := `
        SELECT o.id, o.buyer_id, b.user_id, b.lat, b.lng, o.urgency, o.required_by, o.status, o.created_at, o.updated_at
        FROM orders o
        JOIN buyers b ON b.id = o.buyer_id
        WHERE o.id = $1`
	if lock {
		q += ` FOR UPDATE OF o`
	}

	var o domain.Order
	err := r.tx.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.BuyerID, &o.BuyerUserID, &o.BuyerLat, &o.BuyerLng,
		&o.Urgency, &o.RequiredBy, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, wrapGet(err, "order", id)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *TxRepo) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, order_id, part_number, description, quantity, status, created_at, updated_at
        FROM order_items
        WHERE order_id = $1
        ORDER BY position, id
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items of order %d: %w", orderID, err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	index := make(map[int64]int)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.PartNumber, &it.Description, &it.Quantity,
			&it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		index[it.ID] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	arows, err := r.tx.Query(ctx, `
        SELECT a.id, a.order_item_id, a.supplier_id, s.user_id, a.catalog_id, a.unit_price, a.line_total,
               a.score, a.status, a.created_at, a.updated_at
        FROM order_assignments a
        JOIN order_items i ON i.id = a.order_item_id
        JOIN suppliers s ON s.id = a.supplier_id
        WHERE i.order_id = $1
        ORDER BY a.id
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list assignments of order %d: %w", orderID, err)
	}
	defer arows.Close()

	for arows.Next() {
		var a domain.Assignment
		if err := arows.Scan(&a.ID, &a.ItemID, &a.SupplierID, &a.SupplierUserID, &a.CatalogID, &a.UnitPrice,
			&a.LineTotal, &a.Score, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		if i, ok := index[a.ItemID]; ok {
			items[i].Assignments = append(items[i].Assignments, a)
		}
	}
	return items, arows.Err()
}

// OrderIDByItem - resolves the order of an item.
func (r *TxRepo) OrderIDByItem(ctx context.Context, itemID int64) (int64, error) {
	var id int64
	if err := r.tx.QueryRow(ctx, `SELECT order_id FROM order_items WHERE id = $1`, itemID).Scan(&id); err != nil {
		return 0, wrapGet(err, "order item", itemID)
	}
	return id, nil
}

// OrderIDByAssignment - resolves the order of an assignment.
func (r *TxRepo) OrderIDByAssignment(ctx context.Context, assignmentID int64) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `
        SELECT i.order_id
        FROM order_assignments a
        JOIN order_items i ON i.id = a.order_item_id
        WHERE a.id = $1
    `, assignmentID).Scan(&id)
	if err != nil {
		return 0, wrapGet(err, "assignment", assignmentID)
	}
	return id, nil
}

// UpdateOrderStatus - sets order status.
func (r *TxRepo) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update order status %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("order", id)
	}
	return nil
}

// UpdateItemStatus - sets item status.
func (r *TxRepo) UpdateItemStatus(ctx context.Context, id int64, status domain.ItemStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `UPDATE order_items SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update item status %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("order item", id)
	}
	return nil
}

// InsertAssignment - inserts an assignment, filling its ID.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO order_assignments
            (order_item_id, supplier_id, catalog_id, unit_price, line_total, score, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        RETURNING id
    `, a.ItemID, a.SupplierID, a.CatalogID, a.UnitPrice, a.LineTotal, a.Score, string(a.Status), a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// UpdateAssignmentStatus - sets assignment status.
func (r *TxRepo) UpdateAssignmentStatus(ctx context.Context, id int64, status domain.AssignmentStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx,
		`UPDATE order_assignments SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update assignment status %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("assignment", id)
	}
	return nil
}

// InsertHistory - appends a status history row.
func (r *TxRepo) InsertHistory(ctx context.Context, h *domain.HistoryEntry) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO order_status_history
            (order_id, order_item_id, from_status, to_status, actor_user_id, actor_role, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, h.OrderID, h.ItemID, h.FromStatus, h.ToStatus, h.ActorUserID, string(h.ActorRole), h.CreatedAt).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListHistory - returns the status history of an order oldest first.
func (r *TxRepo) ListHistory(ctx context.Context, orderID int64) ([]domain.HistoryEntry, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, order_id, order_item_id, from_status, to_status, actor_user_id, actor_role, created_at
        FROM order_status_history
        WHERE order_id = $1
        ORDER BY id
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list history %d: %w", orderID, err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var h domain.HistoryEntry
		if err := rows.Scan(&h.ID, &h.OrderID, &h.ItemID, &h.FromStatus, &h.ToStatus,
			&h.ActorUserID, &h.ActorRole, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
