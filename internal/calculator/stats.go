package calculator

// Movement represents a single money movement with the minimal information needed for stats.
// A missing amount is simply zero.
type Movement struct {
	CashToPot float64 // Positive = paid into the pot, negative = cash taken out
	DebtToPot float64 // Positive = IOU recorded against the pot, negative = debt returned
}

// PlayerForStats represents a seated player with the minimal information needed for aggregation.
type PlayerForStats struct {
	ID        string
	Name      string
	CashedOut bool
	Movements []Movement
}

// ParticipantStats is the financial summary of one player.
type ParticipantStats struct {
	CashIn   float64
	DebtIn   float64
	DebtOut  float64
	Invested float64 // CashIn + DebtIn
	Returned float64 // Same as DebtOut, shown to players as "Returned"

	// Total is what is left to true up: DebtOut - Invested.
	Total float64

	// NetPosition is DebtIn - DebtOut, the signed amount still open against the pot.
	NetPosition float64

	CashedOut bool
}

// GameStats is the financial summary of a whole game.
type GameStats struct {
	CashIn         float64
	DebtIn         float64
	Invested       float64
	Returned       float64
	Total          float64
	NetPosition    float64
	CashedOutCount int
}

// AggregateParticipant reduces a player's movements into a ParticipantStats.
//
// A movement counts as debt-out only when it carries negative debt and exactly zero cash.
// Any other non-zero debt, including negative debt recorded together with cash, is added
// to DebtIn as-is.
func AggregateParticipant(movements []Movement, cashedOut bool) ParticipantStats {
	var cashIn, debtIn, debtOut float64

	for _, m := range movements {
		cashIn += m.CashToPot
		if m.DebtToPot != 0 {
			if m.DebtToPot < 0 && m.CashToPot == 0 {
				debtOut += -m.DebtToPot
			} else {
				debtIn += m.DebtToPot
			}
		}
	}

	invested := cashIn + debtIn
	return ParticipantStats{
		CashIn:      cashIn,
		DebtIn:      debtIn,
		DebtOut:     debtOut,
		Invested:    invested,
		Returned:    debtOut,
		Total:       debtOut - invested,
		NetPosition: debtIn - debtOut,
		CashedOut:   cashedOut,
	}
}

// AggregateGame sums the stats of every player in a game.
func AggregateGame(players []PlayerForStats) GameStats {
	var stats GameStats
	for _, p := range players {
		ps := AggregateParticipant(p.Movements, p.CashedOut)
		stats.CashIn += ps.CashIn
		stats.DebtIn += ps.DebtIn
		stats.Invested += ps.Invested
		stats.Returned += ps.Returned
		stats.Total += ps.Total
		stats.NetPosition += ps.NetPosition
		if ps.CashedOut {
			stats.CashedOutCount++
		}
	}
	return stats
}

// SettlementPositions returns each player's net position in player order together with
// the pot position (the game's total cash-in), ready to be passed to Settle.
func SettlementPositions(players []PlayerForStats) ([]Position, float64) {
	positions := make([]Position, 0, len(players))
	var potCashIn float64
	for _, p := range players {
		ps := AggregateParticipant(p.Movements, p.CashedOut)
		potCashIn += ps.CashIn
		positions = append(positions, Position{
			ID:     p.ID,
			Name:   p.Name,
			Amount: ps.NetPosition,
		})
	}
	return positions, potCashIn
}
