package split

import "math"

type Type string

const (
	TypePortion    Type = "portion"
	TypePercentage Type = "percentage"
)

// percentageSumTolerance bounds how far the percentage list may drift from
// 100 before the request is rejected.
const percentageSumTolerance = 0.01

// Request is the split-bill payload. Exactly one of Count or Percentages is
// meaningful, selected by SplitType; the other field is ignored.
type Request struct {
	TableID     string    `json:"tableId"`
	OrderID     string    `json:"orderId"`
	SplitType   Type      `json:"splitType"`
	Count       int       `json:"count,omitempty"`
	Percentages []float64 `json:"percentages,omitempty"`
}

// Shares returns how many derived orders the request produces. Only valid
// after Validate.
func (r Request) Shares() int {
	if r.SplitType == TypePercentage {
		return len(r.Percentages)
	}
	return r.Count
}

// Validate checks the request shape and numeric constraints. It runs before
// any store access and performs no side effects.
func (r Request) Validate() error {
	if r.TableID == "" {
		return ValidationError(ErrTableIDRequired, "Table ID is required")
	}
	if r.OrderID == "" {
		return ValidationError(ErrOrderIDRequired, "Order ID is required")
	}
	switch r.SplitType {
	case TypePortion:
		if r.Count < 1 {
			return ValidationError(ErrCountInvalid, "Portion split requires a count of at least 1")
		}
	case TypePercentage:
		if len(r.Percentages) == 0 {
			return ValidationError(ErrPercentagesRequired, "Percentage split requires a non-empty list of percentages")
		}
		sum := 0.0
		for _, p := range r.Percentages {
			if p <= 0 {
				return ValidationError(ErrPercentageNotPositive, "Every percentage must be greater than zero")
			}
			sum += p
		}
		if math.Abs(sum-100) > percentageSumTolerance {
			return ValidationError(ErrPercentageSumMismatch, "Percentages must sum to 100")
		}
	case "":
		return ValidationError(ErrSplitTypeRequired, "Split type is required")
	default:
		return ValidationError(ErrSplitTypeInvalid, "Split type must be 'portion' or 'percentage'")
	}
	return nil
}

// Apply runs the strategy selected by SplitType over items. The request must
// have passed Validate.
func (r Request) Apply(items ItemMap) []ItemMap {
	if r.SplitType == TypePercentage {
		return ByPercentage(items, r.Percentages)
	}
	return ByPortion(items, r.Count)
}
