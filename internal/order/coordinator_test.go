package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"splitbill-service/internal/split"

	"go.uber.org/zap"
)

type fakeTx struct {
	failAt   int // zero-based insert index that fails, -1 for none
	locked   []string
	inserted []*Row
}

func (t *fakeTx) LockOriginal(_ context.Context, orderID string) error {
	t.locked = append(t.locked, orderID)
	return nil
}

func (t *fakeTx) InsertClone(_ context.Context, originalID, newID string, items split.ItemMap) (*Row, error) {
	if t.failAt >= 0 && len(t.inserted) == t.failAt {
		return nil, fmt.Errorf("insert returned no row")
	}
	row := &Row{
		ID:           newID,
		RestaurantID: "rest-1",
		TableID:      "table-7",
		Items:        items,
		Status:       "ACTIVE",
	}
	t.inserted = append(t.inserted, row)
	return row, nil
}

type fakeStore struct {
	tx        fakeTx
	committed []*Row
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.tx.inserted = nil
	if err := fn(ctx, &s.tx); err != nil {
		return err
	}
	s.committed = append(s.committed, s.tx.inserted...)
	return nil
}

type fakeCompleter struct {
	calls []completionCall
	err   error
}

type completionCall struct {
	restaurantID  string
	tableID       string
	total         float64
	paymentMethod string
}

func (c *fakeCompleter) CompleteOrder(_ context.Context, restaurantID, tableID string, total float64, paymentMethod string) error {
	c.calls = append(c.calls, completionCall{restaurantID, tableID, total, paymentMethod})
	return c.err
}

func newTestCoordinator(store *fakeStore, completer Completer) *Coordinator {
	return &Coordinator{Store: store, Completer: completer, Logger: zap.NewNop()}
}

func threeShares() []split.ItemMap {
	shares := make([]split.ItemMap, 3)
	for i := range shares {
		shares[i] = split.ItemMap{
			"item-1": {Name: "Pasta", Customizations: []split.Customization{{Qty: 3, Price: 12}}},
		}
	}
	return shares
}

func TestPersistCreatesDerivedOrdersInOrder(t *testing.T) {
	store := &fakeStore{tx: fakeTx{failAt: -1}}
	completer := &fakeCompleter{}
	coordinator := newTestCoordinator(store, completer)

	original := &Row{ID: "order-123", RestaurantID: "rest-1", TableID: "table-7"}
	results, err := coordinator.Persist(context.Background(), original, threeShares())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"order-123-split-1", "order-123-split-2", "order-123-split-3"}
	if len(results) != len(expected) {
		t.Fatalf("expected %d results, got %d", len(expected), len(results))
	}
	for i, id := range expected {
		if results[i].OrderID != id {
			t.Fatalf("result %d: expected id %s, got %s", i, id, results[i].OrderID)
		}
		if results[i].BillData.ID != id {
			t.Fatalf("result %d: billData id mismatch: %s", i, results[i].BillData.ID)
		}
	}
	if len(store.committed) != 3 {
		t.Fatalf("expected 3 committed rows, got %d", len(store.committed))
	}
	if len(store.tx.locked) != 1 || store.tx.locked[0] != "order-123" {
		t.Fatalf("expected a lock on order-123, got %v", store.tx.locked)
	}
}

func TestPersistRollsBackOnInsertFailure(t *testing.T) {
	store := &fakeStore{tx: fakeTx{failAt: 2}}
	completer := &fakeCompleter{}
	coordinator := newTestCoordinator(store, completer)

	original := &Row{ID: "order-123", RestaurantID: "rest-1", TableID: "table-7"}
	results, err := coordinator.Persist(context.Background(), original, threeShares())
	if err == nil {
		t.Fatalf("expected persistence error")
	}
	if results != nil {
		t.Fatalf("expected no partial results, got %d", len(results))
	}

	var persistErr *PersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected *PersistError, got %T", err)
	}
	if persistErr.OrderID != "order-123-split-3" {
		t.Fatalf("expected error to name order-123-split-3, got %s", persistErr.OrderID)
	}

	if len(store.committed) != 0 {
		t.Fatalf("rollback must leave zero committed rows, got %d", len(store.committed))
	}
	if len(completer.calls) != 0 {
		t.Fatalf("completion must not run after rollback")
	}
}

func TestPersistCompletionIsBestEffort(t *testing.T) {
	store := &fakeStore{tx: fakeTx{failAt: -1}}
	completer := &fakeCompleter{err: errors.New("completion service unavailable")}
	coordinator := newTestCoordinator(store, completer)

	original := &Row{ID: "order-9", RestaurantID: "rest-1", TableID: "table-2"}
	results, err := coordinator.Persist(context.Background(), original, threeShares())
	if err != nil {
		t.Fatalf("completion failure must not fail the split: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results despite completion failure, got %d", len(results))
	}
	if len(store.committed) != 3 {
		t.Fatalf("expected committed rows to survive completion failure")
	}
}

func TestPersistCompletionCall(t *testing.T) {
	store := &fakeStore{tx: fakeTx{failAt: -1}}
	completer := &fakeCompleter{}
	coordinator := newTestCoordinator(store, completer)

	original := &Row{ID: "order-9", RestaurantID: "rest-42", TableID: "table-2"}
	if _, err := coordinator.Persist(context.Background(), original, threeShares()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(completer.calls) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(completer.calls))
	}
	call := completer.calls[0]
	if call.restaurantID != "rest-42" || call.tableID != "table-2" {
		t.Fatalf("completion called with wrong scope: %+v", call)
	}
	if call.total != 0 || call.paymentMethod != CompletionPaymentMethod {
		t.Fatalf("expected total 0 and method %q, got %+v", CompletionPaymentMethod, call)
	}
}

func TestDerivedID(t *testing.T) {
	for i, expected := range []string{"order-123-split-1", "order-123-split-2", "order-123-split-3"} {
		if got := DerivedID("order-123", i); got != expected {
			t.Fatalf("index %d: expected %s, got %s", i, expected, got)
		}
	}
}
