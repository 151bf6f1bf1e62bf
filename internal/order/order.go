package order

import (
	"fmt"
	"time"

	"splitbill-service/internal/split"
)

// Row is one persisted order. Every column except id and items is copied
// verbatim into derived orders when a bill is split.
type Row struct {
	ID               string        `json:"id"`
	RestaurantID     string        `json:"restaurantId"`
	TableID          string        `json:"tableId"`
	Items            split.ItemMap `json:"items"`
	CustomerName     *string       `json:"customerName,omitempty"`
	Subtotal         float64       `json:"subtotal"`
	TotalAmount      float64       `json:"totalAmount"`
	Status           string        `json:"status"`
	BillGenerated    bool          `json:"billGenerated"`
	BillNumber       *string       `json:"billNumber,omitempty"`
	DiscountApplied  bool          `json:"discountApplied"`
	PaymentProcessed bool          `json:"paymentProcessed"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// Result is one derived order as returned to the caller of a split.
type Result struct {
	OrderID  string        `json:"orderId"`
	Items    split.ItemMap `json:"items"`
	BillData Row           `json:"billData"`
}

// DerivedID builds the deterministic id of the index-th derived order.
// Indexes are zero-based; ids are one-based.
func DerivedID(originalID string, index int) string {
	return fmt.Sprintf("%s-split-%d", originalID, index+1)
}
