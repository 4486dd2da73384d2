package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pokernight/pkg/api"
)

func TestPlayersTable(t *testing.T) {
	data := playersTable([]api.Participant{
		{Name: "Alice", CashedOut: true, Stats: &api.ParticipantStats{CashIn: 100, Returned: 150, Total: 50}},
		{Name: "Bob"},
	})

	require.Len(t, data, 3)
	assert.Equal(t, []string{"Alice", "100.00", "0.00", "150.00", "50.00", "cashed out"}, data[1])
	assert.Equal(t, []string{"Bob", "0.00", "0.00", "0.00", "0.00", "playing"}, data[2])
}

func TestTransfersTable(t *testing.T) {
	data := transfersTable([]api.Transfer{
		{GiverName: "Alice", ReceiverName: "Pot", Amount: 100},
		{GiverName: "Alice", ReceiverName: "Bob", Amount: 12.5},
	})

	require.Len(t, data, 3)
	assert.Equal(t, []string{"From", "To", "Amount"}, data[0])
	assert.Equal(t, []string{"Alice", "Bob", "12.50"}, data[2])
}

func TestGamesTable(t *testing.T) {
	data := gamesTable([]api.GameSummary{{ID: "g1", Name: "Friday", State: "Open", PlayerCount: 4}})

	require.Len(t, data, 2)
	assert.Equal(t, "g1", data[1][0])
	assert.Equal(t, "4", data[1][3])
}

func TestRun_Usage(t *testing.T) {
	ctx := context.Background()

	assert.ErrorIs(t, run(ctx, nil, []string{"show"}), errUsage)
	assert.ErrorIs(t, run(ctx, nil, []string{"close", "a", "b"}), errUsage)
	assert.ErrorIs(t, run(ctx, nil, []string{"convert", "game", "player"}), errUsage)

	err := run(ctx, nil, []string{"convert", "game", "player", "lots"})
	assert.ErrorContains(t, err, "invalid amount")
}
