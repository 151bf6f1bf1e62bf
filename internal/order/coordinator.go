package order

import (
	"context"
	"time"

	"splitbill-service/internal/queue"
	"splitbill-service/internal/split"

	"go.uber.org/zap"
)

// CompletionPaymentMethod is recorded when a split closes its original order.
const CompletionPaymentMethod = "split"

// Completer finalizes billing for a table in the external completion
// subsystem. Called once per split, after the transaction commits.
type Completer interface {
	CompleteOrder(ctx context.Context, restaurantID, tableID string, total float64, paymentMethod string) error
}

// TxStore opens the transaction the coordinator drives.
type TxStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Coordinator turns calculated shares into persisted derived orders: all N
// inserts in one transaction, then a best-effort completion of the original
// order that can no longer undo the commit.
type Coordinator struct {
	Store     TxStore
	Completer Completer
	Queue     *queue.Client
	Logger    *zap.Logger
}

// Persist creates one derived order per share, ids
// "{originalID}-split-1".."{originalID}-split-N" in share order. Either all
// derived orders exist afterwards or none do. Completion and event publishing
// failures are logged and never surfaced; the split has already committed.
func (c *Coordinator) Persist(ctx context.Context, original *Row, shares []split.ItemMap) ([]Result, error) {
	results := make([]Result, 0, len(shares))

	err := c.Store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.LockOriginal(ctx, original.ID); err != nil {
			return err
		}
		for i, share := range shares {
			derivedID := DerivedID(original.ID, i)
			row, err := tx.InsertClone(ctx, original.ID, derivedID, share)
			if err != nil {
				return &PersistError{OrderID: derivedID, Err: err}
			}
			results = append(results, Result{OrderID: row.ID, Items: row.Items, BillData: *row})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.Completer != nil {
		if err := c.Completer.CompleteOrder(ctx, original.RestaurantID, original.TableID, 0, CompletionPaymentMethod); err != nil {
			c.Logger.Warn("order completion failed after split commit",
				zap.String("orderId", original.ID),
				zap.String("tableId", original.TableID),
				zap.Error(err))
		}
	}

	if c.Queue != nil {
		derivedIDs := make([]string, len(results))
		for i, r := range results {
			derivedIDs[i] = r.OrderID
		}
		event := map[string]any{
			"type":         "order.split.completed",
			"orderId":      original.ID,
			"tableId":      original.TableID,
			"restaurantId": original.RestaurantID,
			"splitOrders":  derivedIDs,
			"completedAt":  time.Now().UTC(),
		}
		if err := c.Queue.PublishJSON(ctx, "splitbill.events", "order.split.completed", event); err != nil {
			c.Logger.Warn("split event publish failed", zap.String("orderId", original.ID), zap.Error(err))
		}
	}

	return results, nil
}
