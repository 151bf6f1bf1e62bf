package handlers

import (
	"testing"

	"splitbill-service/internal/order"
	"splitbill-service/internal/split"
)

func TestFormatQty(t *testing.T) {
	cases := []struct {
		qty      float64
		expected string
	}{
		{3, "3"},
		{0, "0"},
		{2.5, "2.5"},
		{10.0 / 3.0, "3.333"},
		{0.25, "0.25"},
	}

	for _, tc := range cases {
		if got := formatQty(tc.qty); got != tc.expected {
			t.Fatalf("formatQty(%v): expected %q, got %q", tc.qty, tc.expected, got)
		}
	}
}

func TestReceiptTotalUsesItemLines(t *testing.T) {
	row := &order.Row{
		TotalAmount: 99, // stored total copied from the original, must be ignored
		Items: split.ItemMap{
			"item-1": {
				Name: "Ramen",
				Customizations: []split.Customization{
					{Qty: 1.5, Price: 12},
					{Qty: 2, Price: 3},
				},
			},
			"item-2": {
				Name: "Tea",
				Customizations: []split.Customization{
					{Qty: 0.5, Price: 4},
				},
			},
		},
	}

	if got := receiptTotal(row); got != 26 {
		t.Fatalf("expected total 26, got %v", got)
	}
}

func TestBuildReceiptPDFRenders(t *testing.T) {
	row := &order.Row{
		ID:      "order-7-split-1",
		TableID: "table-3",
		Items: split.ItemMap{
			"item-1": {
				Name: "Curry",
				Customizations: []split.Customization{
					{Size: "large", Qty: 10.0 / 3.0, Price: 9},
				},
			},
		},
	}

	pdf := buildReceiptPDF(row)
	if pdf.Err() {
		t.Fatalf("pdf build failed: %v", pdf.Error())
	}
}
