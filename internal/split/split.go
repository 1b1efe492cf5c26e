// Package split computes per-member shares for a bill. It is pure
// computation: no storage, no side effects.
package split

import (
	"fmt"
	"math"
)

// Share is one participant's computed portion of a bill total.
type Share struct {
	UserID uint
	Amount float64
}

// Tolerance is the maximum allowed difference between a custom split's sum
// and the bill total, to absorb decimal rounding on the client side.
const Tolerance = 0.01

// EqualSplit divides total evenly among participants so the shares sum back
// to total exactly. Amounts are computed in integer cents: everyone gets
// floor(cents/n), and the leftover cents go to the first participants in the
// given order. Callers that care about which member absorbs the extra cent
// must pass a deterministic order.
func EqualSplit(total float64, participants []uint) ([]Share, error) {
	if total <= 0 {
		return nil, fmt.Errorf("total amount must be positive")
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	cents := int64(math.Round(total * 100))
	n := int64(len(participants))
	base := cents / n
	remainder := cents % n

	shares := make([]Share, len(participants))
	for i, id := range participants {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{UserID: id, Amount: float64(amount) / 100}
	}
	return shares, nil
}

// ValidateCustomSplit checks caller-specified amounts: each must be strictly
// positive and the sum must match total within Tolerance.
func ValidateCustomSplit(total float64, shares []Share) error {
	if len(shares) == 0 {
		return fmt.Errorf("must have at least one share")
	}

	var sum float64
	for _, s := range shares {
		if s.Amount <= 0 {
			return fmt.Errorf("share amount for user %d must be positive, got %.2f", s.UserID, s.Amount)
		}
		sum += s.Amount
	}

	if math.Abs(sum-total) > Tolerance {
		return fmt.Errorf("share amounts sum to %.2f, expected %.2f", sum, total)
	}
	return nil
}
