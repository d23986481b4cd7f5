package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feedme/feedme/internal/api/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the outer DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions.
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Tx is unsupported inside a transaction; nested transactions would need
// SAVEPOINTs which nothing here requires.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: migrations cannot run inside a transaction")
}

func (t *txStore) Users() store.Users             { return &usersRepo{db: t.tx} }
func (t *txStore) Ingredients() store.Ingredients { return &ingredientsRepo{db: t.tx} }
func (t *txStore) Recipes() store.Recipes         { return &recipesRepo{db: t.tx} }
func (t *txStore) Inventory() store.Inventory     { return &inventoryRepo{db: t.tx} }
func (t *txStore) MealPlans() store.MealPlans     { return &mealPlansRepo{db: t.tx} }
