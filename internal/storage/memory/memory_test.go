package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/internal/storage"
)

func TestStore_GameLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	game := &models.Game{Name: "Sunday"}
	require.NoError(t, store.CreateGame(ctx, game))
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, models.GameStateOpen, game.State)

	alice := &models.Participant{Name: "Alice"}
	require.NoError(t, store.AddParticipant(ctx, game.ID, alice))
	require.NoError(t, store.AppendMovement(ctx, game.ID, alice.ID, &models.MoneyMovement{CashToPot: 100}))

	before, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)

	require.NoError(t, store.CashOut(ctx, game.ID, alice.ID, &models.MoneyMovement{DebtToPot: -100}))

	// Snapshots handed out earlier are unaffected by later writes.
	require.Len(t, before.Participants, 1)
	assert.Len(t, before.Participants[0].Movements, 1)
	assert.False(t, before.Participants[0].CashedOut)

	after, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, after.Participants[0].Movements, 2)
	assert.True(t, after.Participants[0].CashedOut)

	err = store.AppendMovement(ctx, game.ID, alice.ID, &models.MoneyMovement{CashToPot: 1})
	assert.ErrorIs(t, err, storage.ErrParticipantCashedOut)

	err = store.RemoveParticipant(ctx, game.ID, alice.ID)
	assert.ErrorIs(t, err, storage.ErrParticipantHasMovements)

	transfers := []models.Transfer{{GiverID: "pot", ReceiverID: alice.ID, Amount: 100}}
	require.NoError(t, store.CloseGame(ctx, game.ID, transfers))

	closed, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed())
	require.Len(t, closed.Transfers, 1)
	assert.Equal(t, game.ID, closed.Transfers[0].GameID)
	assert.NotEmpty(t, closed.Transfers[0].ID)

	assert.ErrorIs(t, store.CloseGame(ctx, game.ID, nil), storage.ErrGameClosed)
	assert.ErrorIs(t, store.RenameGame(ctx, game.ID, "x"), storage.ErrGameClosed)
}

func TestStore_RemoveParticipant(t *testing.T) {
	store := New()
	ctx := context.Background()

	game := &models.Game{}
	require.NoError(t, store.CreateGame(ctx, game))
	assert.NotEmpty(t, game.Name)

	p := &models.Participant{Name: "Bob"}
	require.NoError(t, store.AddParticipant(ctx, game.ID, p))
	require.NoError(t, store.RemoveParticipant(ctx, game.ID, p.ID))

	assert.ErrorIs(t, store.RemoveParticipant(ctx, game.ID, p.ID), storage.ErrParticipantNotFound)

	_, err := store.GetGame(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrGameNotFound)
}

func TestStore_ListGames(t *testing.T) {
	store := New()
	ctx := context.Background()

	older := &models.Game{Name: "Older", CreatedAt: 100}
	newer := &models.Game{Name: "Newer", CreatedAt: 200}
	require.NoError(t, store.CreateGame(ctx, older))
	require.NoError(t, store.CreateGame(ctx, newer))
	require.NoError(t, store.AddParticipant(ctx, newer.ID, &models.Participant{Name: "Carol"}))

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Newer", games[0].Name)
	assert.Equal(t, 1, games[0].PlayerCount)
	assert.Equal(t, "Older", games[1].Name)
}

func TestStore_ConvertDebt(t *testing.T) {
	store := New()
	ctx := context.Background()

	game := &models.Game{Name: "Convert"}
	require.NoError(t, store.CreateGame(ctx, game))
	p := &models.Participant{Name: "Dana"}
	require.NoError(t, store.AddParticipant(ctx, game.ID, p))
	require.NoError(t, store.AppendMovement(ctx, game.ID, p.ID, &models.MoneyMovement{DebtToPot: 80}))

	err := store.ConvertDebt(ctx, game.ID, p.ID, &models.MoneyMovement{CashToPot: 30, DebtToPot: -30})
	assert.ErrorIs(t, err, storage.ErrParticipantNotCashedOut)

	require.NoError(t, store.CashOut(ctx, game.ID, p.ID, &models.MoneyMovement{}))
	require.NoError(t, store.ConvertDebt(ctx, game.ID, p.ID, &models.MoneyMovement{CashToPot: 30, DebtToPot: -30}))

	got, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants[0].Movements, 3)
	assert.True(t, got.Participants[0].CashedOut)
	assert.Equal(t, 30.0, got.Participants[0].Movements[2].CashToPot)
}
