// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/pokernight/internal/models"
)

var (
	ErrGameNotFound            = errors.New("game not found")
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrGameClosed              = errors.New("game is closed")
	ErrParticipantHasMovements = errors.New("participant has recorded movements")
	ErrParticipantCashedOut    = errors.New("participant has already cashed out")
	ErrParticipantNotCashedOut = errors.New("participant has not cashed out")
)

// GameSummary is the list view of a game.
type GameSummary struct {
	ID          string
	Name        string
	State       models.GameState
	PlayerCount int
	CreatedAt   int64
}

// Store defines the interface for game storage operations.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the service layer.
type Store interface {
	// CreateGame persists a new game. ID, State and CreatedAt are filled in when empty.
	CreateGame(ctx context.Context, game *models.Game) error

	// GetGame retrieves a game with its participants, movements and transfers.
	// Returns ErrGameNotFound if the game does not exist.
	GetGame(ctx context.Context, gameID string) (*models.Game, error)

	// ListGames returns all games, newest first.
	ListGames(ctx context.Context) ([]GameSummary, error)

	// RenameGame changes the display name of an open game.
	RenameGame(ctx context.Context, gameID, name string) error

	// AddParticipant seats a new player in an open game. The participant ID and
	// PlayerID are filled in when empty.
	AddParticipant(ctx context.Context, gameID string, participant *models.Participant) error

	// RemoveParticipant removes a seat. Returns ErrParticipantHasMovements if any
	// movement has been recorded for it.
	RemoveParticipant(ctx context.Context, gameID, participantID string) error

	// AppendMovement records a movement for a participant of an open game.
	// Returns ErrParticipantCashedOut once the participant has left the table.
	AppendMovement(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error

	// CashOut records the final movement of a participant and marks them as cashed
	// out in one step.
	CashOut(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error

	// ConvertDebt records a debt repayment for a participant who already cashed out.
	// Returns ErrParticipantNotCashedOut while the participant is still playing.
	ConvertDebt(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error

	// CloseGame stores the settlement and moves the game to Closed in one step.
	// Returns ErrGameClosed if the game was already closed and
	// ErrParticipantNotCashedOut if someone is still at the table.
	CloseGame(ctx context.Context, gameID string, transfers []models.Transfer) error

	// Close releases any resources held by the store.
	Close() error
}
