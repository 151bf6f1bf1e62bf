// Package completion calls the billing subsystem that finalizes an order for
// a table. The split engine invokes it after a split commits; it never runs
// inside the split transaction.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 8 * time.Second},
	}
}

type completeRequest struct {
	RestaurantID  string  `json:"restaurantId"`
	TableID       string  `json:"tableId"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
}

// CompleteOrder asks the billing subsystem to close out the table's order.
// Callers treat a failure as a warning, not a reason to undo the split.
func (c *Client) CompleteOrder(ctx context.Context, restaurantID, tableID string, total float64, paymentMethod string) error {
	body, err := json.Marshal(completeRequest{
		RestaurantID:  restaurantID,
		TableID:       tableID,
		Total:         total,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		return err
	}

	url := c.BaseURL + "/api/internal/orders/complete"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("completion service returned status %d", res.StatusCode)
	}
	return nil
}
