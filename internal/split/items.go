package split

// Customization is one priced sub-line of an order item. Price is per unit;
// quantity is what the split strategies divide.
type Customization struct {
	Size          string   `json:"size,omitempty"`
	Qty           float64  `json:"qty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
}

// ItemLine holds an order item's metadata plus its customizations in the
// order they were stored.
type ItemLine struct {
	Name           string          `json:"name,omitempty"`
	Category       string          `json:"category,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Customizations []Customization `json:"customizations"`
}

// ItemMap maps item id to its line. Key order is irrelevant.
type ItemMap map[string]ItemLine

// scale returns a deep value copy of items with every customization quantity
// replaced by qty*mul/div, in that operation order so that exact inputs stay
// exact. OriginalPrice records the source per-unit price; the per-unit price
// itself is never divided.
func scale(items ItemMap, mul, div float64) ItemMap {
	share := make(ItemMap, len(items))
	for id, line := range items {
		customizations := make([]Customization, len(line.Customizations))
		for i, c := range line.Customizations {
			original := c.Price
			customizations[i] = Customization{
				Size:          c.Size,
				Qty:           c.Qty * mul / div,
				Price:         c.Price,
				OriginalPrice: &original,
			}
		}
		share[id] = ItemLine{
			Name:           line.Name,
			Category:       line.Category,
			Notes:          line.Notes,
			Customizations: customizations,
		}
	}
	return share
}

// ByPortion divides every customization quantity into count equal fractional
// shares. Quantities are not rounded; non-divisible values carry their full
// fractional digits.
func ByPortion(items ItemMap, count int) []ItemMap {
	shares := make([]ItemMap, count)
	for i := range shares {
		shares[i] = scale(items, 1, float64(count))
	}
	return shares
}

// ByPercentage divides quantities according to percentages, one share per
// entry in the caller-supplied order. Zero-quantity results are kept.
func ByPercentage(items ItemMap, percentages []float64) []ItemMap {
	shares := make([]ItemMap, len(percentages))
	for i, p := range percentages {
		shares[i] = scale(items, p, 100)
	}
	return shares
}
