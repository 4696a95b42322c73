package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"parts-dispatch/internal/domain"
)

// ReplaceMatchLog - drops the item's previous audit log and writes the new one.
func (r *TxRepo) ReplaceMatchLog(ctx context.Context, itemID int64, entries []domain.MatchLogEntry) error {
	if _, err := r.tx.Exec(ctx, `DELETE FROM match_logs WHERE order_item_id = $1`, itemID); err != nil {
		return fmt.Errorf("clear match log %d: %w", itemID, err)
	}
	for i := range entries {
		e := &entries[i]
		e.ItemID = itemID
		err := r.tx.QueryRow(ctx, `
            INSERT INTO match_logs (order_item_id, supplier_id, catalog_id, distance_km, distance_score,
                                    reliability_score, price_score, urgency_score, consolidation_bonus,
                                    total_score, rank, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            RETURNING id
        `, itemID, e.SupplierID, e.CatalogID, e.DistanceKm, e.DistanceScore, e.ReliabilityScore, e.PriceScore,
			e.UrgencyScore, e.ConsolidationBonus, e.TotalScore, e.Rank, e.CreatedAt).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("insert match log: %w", err)
		}
	}
	return nil
}

// ListMatchLog - returns the item's audit log by rank.
func (r *TxRepo) ListMatchLog(ctx context.Context, itemID int64) ([]domain.MatchLogEntry, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, order_item_id, supplier_id, catalog_id, distance_km, distance_score, reliability_score,
               price_score, urgency_score, consolidation_bonus, total_score, rank, created_at
        FROM match_logs
        WHERE order_item_id = $1
        ORDER BY rank
    `, itemID)
	if err != nil {
		return nil, fmt.Errorf("list match log %d: %w", itemID, err)
	}
	defer rows.Close()

	var out []domain.MatchLogEntry
	for rows.Next() {
		var e domain.MatchLogEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.SupplierID, &e.CatalogID, &e.DistanceKm, &e.DistanceScore,
			&e.ReliabilityScore, &e.PriceScore, &e.UrgencyScore, &e.ConsolidationBonus, &e.TotalScore,
			&e.Rank, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match log: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertEvent - appends an event to the event log.
func (r *TxRepo) InsertEvent(ctx context.Context, e domain.Event) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO event_log (id, event_type, entity_type, entity_id, payload, target_user_ids, occurred_at)
        VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO NOTHING
    `, e.ID.String(), string(e.Type), e.EntityType, e.EntityID, e.Payload, e.TargetUserIDs, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.ID, err)
	}
	return nil
}

// InsertNotifications - fans an event out to one notification row per target user.
func (r *TxRepo) InsertNotifications(ctx context.Context, e domain.Event) error {
	for _, uid := range e.TargetUserIDs {
		_, err := r.tx.Exec(ctx, `
            INSERT INTO notifications (user_id, event_id, event_type, payload, created_at)
            VALUES ($1, $2::uuid, $3, $4, $5)
        `, uid, e.ID.String(), string(e.Type), e.Payload, e.OccurredAt)
		if err != nil {
			return fmt.Errorf("insert notification for user %d: %w", uid, err)
		}
	}
	return nil
}

// ListNotifications - returns a user's newest notifications.
func (r *TxRepo) ListNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, user_id, event_id::text, event_type, payload, is_read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications %d: %w", userID, err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n       domain.Notification
			eventID string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &eventID, &n.EventType, &n.Payload, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.EventID, err = uuid.Parse(eventID); err != nil {
			return nil, fmt.Errorf("parse event id %q: %w", eventID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
