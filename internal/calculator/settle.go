package calculator

import (
	"cmp"
	"math"
	"slices"
)

const (
	// PotID identifies the pot entry in a settlement.
	PotID = "pot"
	// PotName is the display name of the pot entry.
	PotName = "Pot"

	// Tolerance is the largest residual still reported as balanced.
	Tolerance = 1e-9
)

// Position is the net position of one settlement entry.
// Negative = owes, positive = is owed.
type Position struct {
	ID     string
	Name   string
	Amount float64
}

// Transfer is one payment instruction produced by Settle.
type Transfer struct {
	GiverID      string
	GiverName    string
	ReceiverID   string
	ReceiverName string
	Amount       float64
}

// Settlement is the result of Settle.
type Settlement struct {
	Transfers []Transfer

	// Residuals holds entries whose remaining amount could not be matched because
	// the input positions did not sum to zero.
	Residuals []Position
}

// Balanced reports whether every position was zeroed, within Tolerance.
func (s Settlement) Balanced() bool {
	for _, r := range s.Residuals {
		if math.Abs(r.Amount) > Tolerance {
			return false
		}
	}
	return true
}

// Imbalance returns the signed sum of the residual amounts.
func (s Settlement) Imbalance() float64 {
	var sum float64
	for _, r := range s.Residuals {
		sum += r.Amount
	}
	return sum
}

// entry is a position still taking part in settlement. remaining is always a magnitude.
type entry struct {
	id        string
	name      string
	remaining float64
}

// Settle turns net positions into transfers that zero every position.
// The pot is appended as the last entry with potCashIn as its position.
//
// Algorithm:
// - Exact matches first: each receiver, in input order, takes the most recently
//   registered ower with exactly the same magnitude
// - Remaining entries: greedy matching of the largest receiver with the largest ower
func Settle(positions []Position, potCashIn float64) Settlement {
	all := make([]Position, 0, len(positions)+1)
	all = append(all, positions...)
	all = append(all, Position{ID: PotID, Name: PotName, Amount: potCashIn})

	var transfers []Transfer
	consumed := make([]bool, len(all))

	// Owers indexed by magnitude, last registered on top.
	owersByAmount := make(map[float64][]int)
	for i, p := range all {
		if p.Amount < 0 {
			owersByAmount[-p.Amount] = append(owersByAmount[-p.Amount], i)
		}
	}

	for i, p := range all {
		if p.Amount <= 0 {
			continue
		}
		stack := owersByAmount[p.Amount]
		if len(stack) == 0 {
			continue
		}
		j := stack[len(stack)-1]
		owersByAmount[p.Amount] = stack[:len(stack)-1]

		ower := all[j]
		transfers = append(transfers, Transfer{
			GiverID:      ower.ID,
			GiverName:    ower.Name,
			ReceiverID:   p.ID,
			ReceiverName: p.Name,
			Amount:       p.Amount,
		})
		consumed[i] = true
		consumed[j] = true
	}

	var receivers, owers []*entry
	for i, p := range all {
		if consumed[i] {
			continue
		}
		switch {
		case p.Amount > 0:
			receivers = append(receivers, &entry{id: p.ID, name: p.Name, remaining: p.Amount})
		case p.Amount < 0:
			owers = append(owers, &entry{id: p.ID, name: p.Name, remaining: -p.Amount})
		}
	}

	byRemainingDesc := func(a, b *entry) int { return cmp.Compare(b.remaining, a.remaining) }
	slices.SortStableFunc(receivers, byRemainingDesc)
	slices.SortStableFunc(owers, byRemainingDesc)

	for len(receivers) > 0 && len(owers) > 0 {
		receiver := receivers[0]
		ower := owers[0]

		amount := math.Min(receiver.remaining, ower.remaining)
		transfers = append(transfers, Transfer{
			GiverID:      ower.id,
			GiverName:    ower.name,
			ReceiverID:   receiver.id,
			ReceiverName: receiver.name,
			Amount:       amount,
		})

		receiver.remaining -= amount
		ower.remaining -= amount

		if receiver.remaining == 0 {
			receivers = receivers[1:]
		}
		if ower.remaining == 0 {
			owers = owers[1:]
		}
	}

	var residuals []Position
	for _, r := range receivers {
		residuals = append(residuals, Position{ID: r.id, Name: r.name, Amount: r.remaining})
	}
	for _, o := range owers {
		residuals = append(residuals, Position{ID: o.id, Name: o.name, Amount: -o.remaining})
	}

	return Settlement{Transfers: transfers, Residuals: residuals}
}
