package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"splitbill-service/internal/middleware"
	"splitbill-service/internal/order"
	"splitbill-service/internal/split"
	"splitbill-service/pkg/response"

	"go.uber.org/zap"
)

// SplitBill validates the request, fetches the original order, derives one
// item map per share and persists them atomically. Closing the original
// order happens after commit and never fails the response.
func (h *Handler) SplitBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Staff context not found")
		return
	}

	var req split.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		var splitErr *split.Error
		if errors.As(err, &splitErr) {
			response.Error(w, splitErr.StatusCode, string(splitErr.Code), splitErr.Message)
			return
		}
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	original, err := h.Store.FetchOrder(ctx, req.OrderID, req.TableID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found for this table")
			return
		}
		h.Logger.Error("split order fetch failed", zap.String("orderId", req.OrderID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load order")
		return
	}
	if original.RestaurantID != authCtx.RestaurantID {
		response.Error(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found for this table")
		return
	}

	shares := req.Apply(original.Items)

	results, err := h.Coordinator.Persist(ctx, original, shares)
	if err != nil {
		h.Logger.Error("bill split failed",
			zap.String("orderId", req.OrderID),
			zap.String("tableId", req.TableID),
			zap.Int("shares", len(shares)),
			zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "SPLIT_FAILED", "Failed to split bill")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Bill split successful",
		"results": results,
	})
}
