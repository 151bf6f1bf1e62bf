package order

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no order matched the requested id and table.
var ErrNotFound = errors.New("order not found")

// PersistError reports that creating one derived order failed and the whole
// split transaction was rolled back.
type PersistError struct {
	OrderID string
	Err     error
}

func (e *PersistError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to create split order %s: %v", e.OrderID, e.Err)
	}
	return fmt.Sprintf("failed to create split order %s", e.OrderID)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
