package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"splitbill-service/internal/middleware"
	"splitbill-service/internal/order"
	"splitbill-service/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

// OrderReceiptPDF renders a printable receipt for any order, including the
// derived orders a split produces.
func (h *Handler) OrderReceiptPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Staff context not found")
		return
	}

	orderID := chi.URLParam(r, "orderId")
	row, err := h.Store.FetchByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("receipt order fetch failed", zap.String("orderId", orderID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load order")
		return
	}
	if row.RestaurantID != authCtx.RestaurantID {
		response.Error(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	pdf := buildReceiptPDF(row)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%s.pdf", row.ID))
	if err := pdf.Output(w); err != nil {
		h.Logger.Error("receipt pdf render failed", zap.String("orderId", orderID), zap.Error(err))
	}
}

func buildReceiptPDF(row *order.Row) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order %s", row.ID), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Table %s", row.TableID), "", 1, "C", false, 0, "")
	if row.CustomerName != nil && *row.CustomerName != "" {
		pdf.CellFormat(0, 5, *row.CustomerName, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 5, row.CreatedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	itemIDs := make([]string, 0, len(row.Items))
	for id := range row.Items {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, id := range itemIDs {
		line := row.Items[id]
		pdf.CellFormat(0, 6, line.Name, "", 1, "L", false, 0, "")
		for _, c := range line.Customizations {
			label := c.Size
			if label == "" {
				label = "-"
			}
			pdf.CellFormat(90, 5, "  "+label, "", 0, "L", false, 0, "")
			pdf.CellFormat(30, 5, formatQty(c.Qty), "", 0, "R", false, 0, "")
			pdf.CellFormat(30, 5, fmt.Sprintf("%.2f", c.Price), "", 0, "R", false, 0, "")
			pdf.CellFormat(0, 5, fmt.Sprintf("%.2f", c.Qty*c.Price), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 6, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%.2f", receiptTotal(row)), "T", 1, "R", false, 0, "")

	if row.BillNumber != nil && *row.BillNumber != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Bill %s", *row.BillNumber), "", 1, "R", false, 0, "")
	}
	return pdf
}

// receiptTotal recomputes from the item lines: a split order carries the
// original's stored totals verbatim, so the stored total_amount does not
// reflect the share.
func receiptTotal(row *order.Row) float64 {
	total := 0.0
	for _, line := range row.Items {
		for _, c := range line.Customizations {
			total += c.Qty * c.Price
		}
	}
	return total
}

func formatQty(qty float64) string {
	s := strconv.FormatFloat(qty, 'f', 3, 64)
	// trim trailing zeros but keep at least one integer digit
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 1 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
