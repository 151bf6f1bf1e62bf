package order

import (
	"context"
	"encoding/json"
	"errors"

	"splitbill-service/internal/split"
	"splitbill-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, restaurant_id, table_id, items, customer_name, subtotal, total_amount,
	status, bill_generated, bill_number, discount_applied, payment_processed, created_at`

// Store reads and clones order rows. Calculators never see it; only the
// workflow and the coordinator do.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// FetchOrder loads the order scoped to its table. Returns ErrNotFound when
// no row matches.
func (s *Store) FetchOrder(ctx context.Context, orderID, tableID string) (*Row, error) {
	row := s.DB.QueryRow(ctx, `
		select `+orderColumns+`
		from orders
		where id = $1 and table_id = $2
	`, orderID, tableID)

	result, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return result, err
}

// FetchByID loads an order without table scoping, for receipts and listings.
func (s *Store) FetchByID(ctx context.Context, orderID string) (*Row, error) {
	row := s.DB.QueryRow(ctx, `
		select `+orderColumns+`
		from orders
		where id = $1
	`, orderID)

	result, err := scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return result, err
}

// ListSplits returns the derived orders previously created from originalID,
// in derived-id order.
func (s *Store) ListSplits(ctx context.Context, originalID string) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
		select `+orderColumns+`
		from orders
		where id like $1 || '-split-%'
		order by id
	`, originalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		result, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *result)
	}
	return out, rows.Err()
}

// WithTx runs fn inside one transaction and commits only if fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Tx is the cloning surface the coordinator drives inside one transaction.
type Tx interface {
	LockOriginal(ctx context.Context, orderID string) error
	InsertClone(ctx context.Context, originalID, newID string, items split.ItemMap) (*Row, error)
}

type pgTx struct {
	tx pgx.Tx
}

// LockOriginal takes a row lock on the original order so two concurrent
// splits of the same order serialize instead of both committing.
func (t *pgTx) LockOriginal(ctx context.Context, orderID string) error {
	var id string
	err := t.tx.QueryRow(ctx, `select id from orders where id = $1 for update`, orderID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// InsertClone creates one derived order by copying every non-identity,
// non-items column from the original row, substituting the new id and the
// share's item payload.
func (t *pgTx) InsertClone(ctx context.Context, originalID, newID string, items split.ItemMap) (*Row, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	row := t.tx.QueryRow(ctx, `
		insert into orders (`+orderColumns+`)
		select $1, restaurant_id, table_id, $2, customer_name, subtotal, total_amount,
			status, bill_generated, bill_number, discount_applied, payment_processed, created_at
		from orders
		where id = $3
		on conflict (id) do nothing
		returning `+orderColumns+`
	`, newID, payload, originalID)

	return scanRow(row)
}

func scanRow(row pgx.Row) (*Row, error) {
	var (
		result   Row
		items    []byte
		subtotal pgtype.Numeric
		total    pgtype.Numeric
	)
	if err := row.Scan(
		&result.ID,
		&result.RestaurantID,
		&result.TableID,
		&items,
		&result.CustomerName,
		&subtotal,
		&total,
		&result.Status,
		&result.BillGenerated,
		&result.BillNumber,
		&result.DiscountApplied,
		&result.PaymentProcessed,
		&result.CreatedAt,
	); err != nil {
		return nil, err
	}

	result.Subtotal = utils.NumericToFloat64(subtotal)
	result.TotalAmount = utils.NumericToFloat64(total)

	if len(items) > 0 {
		if err := json.Unmarshal(items, &result.Items); err != nil {
			return nil, err
		}
	}
	return &result, nil
}
