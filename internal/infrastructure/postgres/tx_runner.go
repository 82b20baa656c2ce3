package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/multycomm/crm-api/internal/application/schema"
	"github.com/multycomm/crm-api/internal/application/values"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// Ensure TxRunner implements schema.TxRunner y values.TxRunner.
var _ schema.TxRunner = (*TxRunner)(nil)
var _ values.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El
// Rollback en defer garantiza que la conexión se libera y nada queda a medias
// en cualquier camino de salida (error, return temprano o panic); tras un
// Commit exitoso el Rollback diferido es un no-op. No soporta anidamiento:
// una transacción activa por request.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSchema inicia una transacción para registro de campos: fn recibe el repo
// de custom fields atado a la tx (definición + ALTER TABLE, todo o nada).
func (r *TxRunner) RunSchema(ctx context.Context, fn func(fields repository.CustomFieldRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomFieldRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunValues inicia una transacción para escritura de valores EAV: fn recibe
// los repos de valores y clientes atados a la misma tx.
func (r *TxRunner) RunValues(ctx context.Context, fn func(
	valueRepo repository.FieldValueRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFieldValueRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
