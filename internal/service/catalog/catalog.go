// Package catalog serves supplier stock: lookups, manual restocks and low-stock reports.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
	"parts-dispatch/internal/service/matching"
)

// Service coordinates catalog business logic and orchestrates repository calls.
type Service struct {
	repo             txRunner
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a catalog Service.
func NewService(r txRunner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get retrieves a catalog entry by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: catalog id", apperr.ErrValidation)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.CatalogEntry
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.GetCatalogEntry(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search finds stock for a free-form part number, matched on its normalized form.
func (s *Service) Search(ctx context.Context, part string, minQuantity int) ([]domain.SupplierStock, error) {
	normalized := matching.NormalizePart(part)
	if normalized == "" {
		return nil, fmt.Errorf("%w: part number is required", apperr.ErrValidation)
	}
	if minQuantity < 1 {
		minQuantity = 1
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.SupplierStock
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.FindStock(ctx, normalized, minQuantity)
		return err
	})
	return out, err
}

// Restock adds qty units to an entry and records the adjustment in the ledger.
// Suppliers may restock only their own rows.
func (s *Service) Restock(ctx context.Context, actor domain.Actor, catalogID int64, qty int) (*domain.CatalogEntry, error) {
	if err := validateRestock(catalogID, qty); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var entry *domain.CatalogEntry
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		e, err := tx.GetCatalogEntryForUpdate(ctx, catalogID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, tx, actor, e.SupplierID); err != nil {
			return err
		}

		now := s.now()
		stock, err := tx.AdjustStock(ctx, e.ID, qty, now)
		if err != nil {
			return err
		}
		err = tx.InsertLedger(ctx, &domain.LedgerEntry{
			CatalogID: e.ID,
			Change:    qty,
			Reason:    domain.LedgerManualAdjustment,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		e.QuantityInStock, e.UpdatedAt = stock, now
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog restocked",
		logx.String("event", "catalog_restocked"),
		logx.Int64("catalog_id", entry.ID),
		logx.Int("added", qty),
		logx.Int("quantity_in_stock", entry.QuantityInStock),
	)
	return entry, nil
}

// LowStock lists the supplier's rows below their alert threshold.
func (s *Service) LowStock(ctx context.Context, actor domain.Actor, supplierID int64) ([]domain.CatalogEntry, error) {
	if supplierID <= 0 {
		return nil, fmt.Errorf("%w: supplier id", apperr.ErrValidation)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.CatalogEntry
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if err := s.authorize(ctx, tx, actor, supplierID); err != nil {
			return err
		}
		var err error
		out, err = tx.ListLowStock(ctx, supplierID)
		return err
	})
	return out, err
}

func (s *Service) authorize(ctx context.Context, tx dispatchtx.Repository, actor domain.Actor, supplierID int64) error {
	if actor.Privileged() {
		return nil
	}
	if actor.Role != domain.RoleSupplier {
		return fmt.Errorf("%w: only suppliers manage stock", apperr.ErrForbidden)
	}
	sp, err := tx.GetSupplier(ctx, supplierID)
	if err != nil {
		return err
	}
	if sp.UserID != actor.UserID {
		return fmt.Errorf("%w: supplier %d", apperr.ErrForbidden, supplierID)
	}
	return nil
}

func validateRestock(catalogID int64, qty int) error {
	var problems []string
	if catalogID <= 0 {
		problems = append(problems, "catalog id")
	}
	if qty <= 0 {
		problems = append(problems, "quantity must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, strings.Join(problems, ", "))
	}
	return nil
}
