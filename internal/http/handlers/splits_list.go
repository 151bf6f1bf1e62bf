package handlers

import (
	"errors"
	"net/http"

	"splitbill-service/internal/middleware"
	"splitbill-service/internal/order"
	"splitbill-service/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SplitsList returns the derived orders previously created from an original
// order, for the POS history view.
func (h *Handler) SplitsList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Staff context not found")
		return
	}

	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Order ID is required")
		return
	}

	original, err := h.Store.FetchByID(ctx, orderID)
	if err != nil && !errors.Is(err, order.ErrNotFound) {
		h.Logger.Error("splits list order fetch failed", zap.String("orderId", orderID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load order")
		return
	}
	// The original may already be closed out; the derived rows are still
	// listable as long as one of them confirms the restaurant scope.
	if original != nil && original.RestaurantID != authCtx.RestaurantID {
		response.Error(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	rows, err := h.Store.ListSplits(ctx, orderID)
	if err != nil {
		h.Logger.Error("splits list query failed", zap.String("orderId", orderID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list split orders")
		return
	}

	filtered := make([]order.Row, 0, len(rows))
	for _, row := range rows {
		if row.RestaurantID == authCtx.RestaurantID {
			filtered = append(filtered, row)
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"orderId": orderID,
			"splits":  filtered,
		},
	})
}
