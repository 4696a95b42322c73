package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/ports/dispatchtx"
)

// Store is the PostgreSQL-backed dispatch store.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (s *Store) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// FindStock runs a catalog lookup outside of a transaction.
func (s *Store) FindStock(ctx context.Context, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error) {
	return findStock(ctx, s.db, normalizedPart, minQuantity)
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var (
	_ dispatchtx.Runner        = (*Store)(nil)
	_ dispatchtx.CatalogLookup = (*Store)(nil)
	_ dispatchtx.Repository    = (*TxRepo)(nil)
)

// querier is the subset of pgx shared by pools and transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
