package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
)

const catalogColumns = `c.id, c.supplier_id, c.part_number, c.normalized_part, c.description, c.unit_price,
        c.quantity_in_stock, c.min_order_quantity, c.lead_time_hours, c.updated_at`

func scanCatalog(row pgx.Row, extra ...any) (domain.CatalogEntry, error) {
	var c domain.CatalogEntry
	dst := []any{
		&c.ID, &c.SupplierID, &c.PartNumber, &c.NormalizedPart, &c.Description, &c.UnitPrice,
		&c.QuantityInStock, &c.MinOrderQuantity, &c.LeadTimeHours, &c.UpdatedAt,
	}
	err := row.Scan(append(dst, extra...)...)
	return c, err
}

func findStock(ctx context.Context, q querier, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error) {
	rows, err := q.Query(ctx, `
        SELECT `+catalogColumns+`,
               s.user_id, s.name, s.lat, s.lng, s.service_radius_km, s.reliability
        FROM parts_catalog c
        JOIN suppliers s ON s.id = c.supplier_id
        WHERE c.normalized_part = $1 AND c.quantity_in_stock >= $2
        ORDER BY c.id
    `, normalizedPart, minQuantity)
	if err != nil {
		return nil, fmt.Errorf("find stock %q: %w", normalizedPart, err)
	}
	defer rows.Close()

	var out []domain.SupplierStock
	for rows.Next() {
		var s domain.SupplierStock
		entry, err := scanCatalog(rows,
			&s.SupplierUserID, &s.SupplierName, &s.Lat, &s.Lng, &s.ServiceRadiusKm, &s.Reliability)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		s.CatalogEntry = entry
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindStock - returns supplier stock for the normalized part with at least minQuantity in stock.
func (r *TxRepo) FindStock(ctx context.Context, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error) {
	return findStock(ctx, r.tx, normalizedPart, minQuantity)
}

// GetSupplier - returns supplier by its ID.
func (r *TxRepo) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.tx.QueryRow(ctx, `
        SELECT id, user_id, name, lat, lng, service_radius_km, reliability
        FROM suppliers WHERE id = $1
    `, id).Scan(&s.ID, &s.UserID, &s.Name, &s.Lat, &s.Lng, &s.ServiceRadiusKm, &s.Reliability)
	if err != nil {
		return nil, wrapGet(err, "supplier", id)
	}
	return &s, nil
}

// GetCatalogEntry - returns catalog entry by its ID.
func (r *TxRepo) GetCatalogEntry(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	c, err := scanCatalog(r.tx.QueryRow(ctx, `SELECT `+catalogColumns+` FROM parts_catalog c WHERE c.id = $1`, id))
	if err != nil {
		return nil, wrapGet(err, "catalog entry", id)
	}
	return &c, nil
}

// GetCatalogEntryForUpdate - returns catalog entry by its ID and locks the row.
func (r *TxRepo) GetCatalogEntryForUpdate(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	c, err := scanCatalog(r.tx.QueryRow(ctx,
		`SELECT `+catalogColumns+` FROM parts_catalog c WHERE c.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapGet(err, "catalog entry", id)
	}
	return &c, nil
}

// AdjustStock - changes stock by delta and returns the new quantity. Stock never goes negative.
func (r *TxRepo) AdjustStock(ctx context.Context, catalogID int64, change int, at time.Time) (int, error) {
	var qty int
	err := r.tx.QueryRow(ctx, `
        UPDATE parts_catalog
        SET quantity_in_stock = quantity_in_stock + $2, updated_at = $3
        WHERE id = $1
        RETURNING quantity_in_stock
    `, catalogID, change, at).Scan(&qty)
	if err != nil {
		if IsCheckViolation(err) {
			return 0, fmt.Errorf("catalog entry %d: %w", catalogID, apperr.ErrInsufficientStock)
		}
		return 0, wrapGet(err, "catalog entry", catalogID)
	}
	return qty, nil
}

// InsertLedger - appends a stock ledger row.
func (r *TxRepo) InsertLedger(ctx context.Context, e *domain.LedgerEntry) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO stock_ledger (catalog_id, change, reason, assignment_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, e.CatalogID, e.Change, e.Reason, e.AssignmentID, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert ledger: %w", err)
	}
	return nil
}

// ListLowStock - returns entries below the alert threshold. supplierID 0 lists every supplier.
func (r *TxRepo) ListLowStock(ctx context.Context, supplierID int64) ([]domain.CatalogEntry, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+catalogColumns+`
        FROM parts_catalog c
        WHERE c.quantity_in_stock < c.min_order_quantity * 2
          AND ($1::bigint = 0 OR c.supplier_id = $1::bigint)
        ORDER BY c.quantity_in_stock, c.id
    `, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var out []domain.CatalogEntry
	for rows.Next() {
		c, err := scanCatalog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
