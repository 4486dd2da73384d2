package service

import (
	"github.com/mmynk/pokernight/internal/calculator"
	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/pkg/api"
)

func playersForStats(participants []models.Participant) []calculator.PlayerForStats {
	players := make([]calculator.PlayerForStats, len(participants))
	for i, p := range participants {
		players[i] = calculator.PlayerForStats{
			ID:        p.ID,
			Name:      p.Name,
			CashedOut: p.CashedOut,
			Movements: movementsForStats(p.Movements),
		}
	}
	return players
}

func movementsForStats(movements []models.MoneyMovement) []calculator.Movement {
	out := make([]calculator.Movement, len(movements))
	for i, m := range movements {
		out[i] = calculator.Movement{CashToPot: m.CashToPot, DebtToPot: m.DebtToPot}
	}
	return out
}

func transfersToModels(transfers []calculator.Transfer) []models.Transfer {
	out := make([]models.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = models.Transfer{
			GiverID:      t.GiverID,
			GiverName:    t.GiverName,
			ReceiverID:   t.ReceiverID,
			ReceiverName: t.ReceiverName,
			Amount:       t.Amount,
		}
	}
	return out
}

func gameToAPI(game *models.Game) *api.Game {
	players := playersForStats(game.Participants)
	stats := calculator.AggregateGame(players)

	participants := make([]api.Participant, len(game.Participants))
	for i, p := range game.Participants {
		participants[i] = *participantToAPI(p)
	}

	return &api.Game{
		ID:             game.ID,
		Name:           game.Name,
		State:          string(game.State),
		MoneyChipRatio: game.MoneyChipRatio,
		Participants:   participants,
		Transfers:      transfersToAPI(game.Transfers),
		Stats: &api.GameStats{
			CashIn:         stats.CashIn,
			DebtIn:         stats.DebtIn,
			Invested:       stats.Invested,
			Returned:       stats.Returned,
			Total:          stats.Total,
			NetPosition:    stats.NetPosition,
			CashedOutCount: int32(stats.CashedOutCount),
			PlayerCount:    int32(len(game.Participants)),
		},
		CreatedAt: game.CreatedAt,
		ClosedAt:  game.ClosedAt,
	}
}

func participantToAPI(p models.Participant) *api.Participant {
	movements := make([]api.MoneyMovement, len(p.Movements))
	for i, m := range p.Movements {
		movements[i] = api.MoneyMovement{
			ID:        m.ID,
			CashToPot: m.CashToPot,
			DebtToPot: m.DebtToPot,
			CreatedAt: m.CreatedAt,
		}
	}

	stats := calculator.AggregateParticipant(movementsForStats(p.Movements), p.CashedOut)
	return &api.Participant{
		ID:        p.ID,
		PlayerID:  p.PlayerID,
		Name:      p.Name,
		CashedOut: p.CashedOut,
		Movements: movements,
		Stats: &api.ParticipantStats{
			CashIn:      stats.CashIn,
			DebtIn:      stats.DebtIn,
			DebtOut:     stats.DebtOut,
			Invested:    stats.Invested,
			Returned:    stats.Returned,
			Total:       stats.Total,
			NetPosition: stats.NetPosition,
			CashedOut:   stats.CashedOut,
		},
	}
}

func transfersToAPI(transfers []models.Transfer) []api.Transfer {
	out := make([]api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = api.Transfer{
			GiverID:      t.GiverID,
			GiverName:    t.GiverName,
			ReceiverID:   t.ReceiverID,
			ReceiverName: t.ReceiverName,
			Amount:       t.Amount,
		}
	}
	return out
}

func calculatorTransfersToAPI(transfers []calculator.Transfer) []api.Transfer {
	return transfersToAPI(transfersToModels(transfers))
}
