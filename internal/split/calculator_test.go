package split

import (
	"math"
	"testing"
)

func sampleItems(qty float64) ItemMap {
	return ItemMap{
		"item-1": {
			Name:     "Margherita",
			Category: "pizza",
			Customizations: []Customization{
				{Size: "large", Qty: qty, Price: 10},
			},
		},
	}
}

func TestByPortionConservation(t *testing.T) {
	shares := ByPortion(sampleItems(9), 3)
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}

	total := 0.0
	for i, share := range shares {
		c := share["item-1"].Customizations[0]
		if c.Qty != 3 {
			t.Fatalf("share %d: expected qty 3, got %v", i, c.Qty)
		}
		if c.Price != 10 {
			t.Fatalf("share %d: expected price 10, got %v", i, c.Price)
		}
		if c.OriginalPrice == nil || *c.OriginalPrice != 10 {
			t.Fatalf("share %d: expected originalPrice 10, got %v", i, c.OriginalPrice)
		}
		total += c.Qty
	}
	if total != 9 {
		t.Fatalf("expected shares to sum to 9, got %v", total)
	}
}

func TestByPortionFractional(t *testing.T) {
	shares := ByPortion(sampleItems(10), 3)

	total := 0.0
	for i, share := range shares {
		c := share["item-1"].Customizations[0]
		if c.Qty != 10.0/3.0 {
			t.Fatalf("share %d: expected qty 10/3, got %v", i, c.Qty)
		}
		total += c.Qty
	}
	if math.Abs(total-10) > 1e-9 {
		t.Fatalf("expected shares to sum to 10, got %v", total)
	}
}

func TestByPortionSingleShare(t *testing.T) {
	shares := ByPortion(sampleItems(4), 1)
	if len(shares) != 1 {
		t.Fatalf("expected 1 share, got %d", len(shares))
	}
	c := shares[0]["item-1"].Customizations[0]
	if c.Qty != 4 || c.Price != 10 {
		t.Fatalf("expected original quantities back, got qty=%v price=%v", c.Qty, c.Price)
	}
	if c.OriginalPrice == nil || *c.OriginalPrice != 10 {
		t.Fatalf("expected originalPrice 10, got %v", c.OriginalPrice)
	}
}

func TestByPercentageConservation(t *testing.T) {
	shares := ByPercentage(sampleItems(20), []float64{40, 35, 25})
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}

	expected := []float64{8, 7, 5}
	total := 0.0
	for i, share := range shares {
		c := share["item-1"].Customizations[0]
		if c.Qty != expected[i] {
			t.Fatalf("share %d: expected qty %v, got %v", i, expected[i], c.Qty)
		}
		if c.Price != 10 {
			t.Fatalf("share %d: expected price 10, got %v", i, c.Price)
		}
		total += c.Qty
	}
	if total != 20 {
		t.Fatalf("expected shares to sum to 20, got %v", total)
	}
}

func TestScaleDoesNotShareState(t *testing.T) {
	items := sampleItems(6)
	shares := ByPortion(items, 2)

	first := shares[0]["item-1"]
	first.Customizations[0].Qty = 999
	if shares[1]["item-1"].Customizations[0].Qty != 3 {
		t.Fatalf("mutating one share leaked into another")
	}
	if items["item-1"].Customizations[0].Qty != 6 {
		t.Fatalf("mutating a share leaked into the source items")
	}
	if items["item-1"].Customizations[0].OriginalPrice != nil {
		t.Fatalf("source items must not gain an originalPrice")
	}
}

func TestByPercentageZeroQuantityKept(t *testing.T) {
	items := ItemMap{
		"item-1": {
			Name: "Espresso",
			Customizations: []Customization{
				{Qty: 0, Price: 3.5},
			},
		},
	}
	shares := ByPercentage(items, []float64{60, 40})
	for i, share := range shares {
		line, ok := share["item-1"]
		if !ok {
			t.Fatalf("share %d: zero-quantity item was dropped", i)
		}
		if line.Customizations[0].Qty != 0 {
			t.Fatalf("share %d: expected qty 0, got %v", i, line.Customizations[0].Qty)
		}
	}
}
