// Package memory provides an in-memory implementation of the storage.Store interface.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps games in memory. Participants are stored as immutable snapshots:
// every change replaces the snapshot instead of editing it, so a game returned
// by GetGame never changes under the caller.
type Store struct {
	games map[string]*models.Game
	mutex sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		games: make(map[string]*models.Game),
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// CreateGame stores a new open game.
func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.CreatedAt == 0 {
		game.CreatedAt = time.Now().Unix()
	}
	if game.Name == "" {
		game.Name = fmt.Sprintf("Poker Night - %s", time.Unix(game.CreatedAt, 0).Format("Jan 2, 2006"))
	}
	game.State = models.GameStateOpen

	stored := *game
	stored.Participants = nil
	stored.Transfers = nil
	s.games[game.ID] = &stored
	return nil
}

// GetGame returns a copy of the stored game.
func (s *Store) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrGameNotFound, gameID)
	}

	// The participant snapshots themselves are never modified, copying the slices is enough.
	out := *game
	out.Participants = slices.Clone(game.Participants)
	out.Transfers = slices.Clone(game.Transfers)
	return &out, nil
}

// ListGames returns all games, newest first.
func (s *Store) ListGames(ctx context.Context) ([]storage.GameSummary, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	games := make([]storage.GameSummary, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, storage.GameSummary{
			ID:          g.ID,
			Name:        g.Name,
			State:       g.State,
			PlayerCount: len(g.Participants),
			CreatedAt:   g.CreatedAt,
		})
	}
	slices.SortFunc(games, func(a, b storage.GameSummary) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return games, nil
}

// RenameGame changes the name of an open game.
func (s *Store) RenameGame(ctx context.Context, gameID, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game, err := s.openGame(gameID)
	if err != nil {
		return err
	}
	game.Name = name
	return nil
}

// AddParticipant seats a new player in an open game.
func (s *Store) AddParticipant(ctx context.Context, gameID string, participant *models.Participant) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game, err := s.openGame(gameID)
	if err != nil {
		return err
	}
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.PlayerID == "" {
		participant.PlayerID = uuid.New().String()
	}

	snapshot := *participant
	snapshot.Movements = slices.Clone(participant.Movements)
	game.Participants = append(slices.Clone(game.Participants), snapshot)
	return nil
}

// RemoveParticipant deletes a seat without movements.
func (s *Store) RemoveParticipant(ctx context.Context, gameID, participantID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game, err := s.openGame(gameID)
	if err != nil {
		return err
	}
	i, err := participantIndex(game, participantID)
	if err != nil {
		return err
	}
	if !game.Participants[i].Removable() {
		return fmt.Errorf("%w: %s", storage.ErrParticipantHasMovements, participantID)
	}

	game.Participants = slices.Delete(slices.Clone(game.Participants), i, i+1)
	return nil
}

// AppendMovement records a movement for a participant still at the table.
func (s *Store) AppendMovement(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error {
	return s.recordMovement(gameID, participantID, movement, storage.MovementBuyIn)
}

// CashOut records the final movement and marks the participant as cashed out.
func (s *Store) CashOut(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error {
	return s.recordMovement(gameID, participantID, movement, storage.MovementCashOut)
}

// ConvertDebt records a repayment for a participant who already cashed out.
func (s *Store) ConvertDebt(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error {
	return s.recordMovement(gameID, participantID, movement, storage.MovementConversion)
}

func (s *Store) recordMovement(gameID, participantID string, movement *models.MoneyMovement, kind storage.MovementKind) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game, err := s.openGame(gameID)
	if err != nil {
		return err
	}
	i, err := participantIndex(game, participantID)
	if err != nil {
		return err
	}
	current := game.Participants[i]
	if err := kind.Allowed(current.CashedOut); err != nil {
		return fmt.Errorf("%w: %s", err, participantID)
	}

	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt == 0 {
		movement.CreatedAt = time.Now().Unix()
	}

	next := current.WithMovement(*movement)
	if kind == storage.MovementCashOut {
		next = next.WithCashedOut()
	}

	participants := slices.Clone(game.Participants)
	participants[i] = next
	game.Participants = participants
	return nil
}

// CloseGame stores the settlement and closes the game.
func (s *Store) CloseGame(ctx context.Context, gameID string, transfers []models.Transfer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game, err := s.openGame(gameID)
	if err != nil {
		return err
	}
	if !game.AllCashedOut() {
		return fmt.Errorf("%w: game %s", storage.ErrParticipantNotCashedOut, gameID)
	}

	stored := make([]models.Transfer, len(transfers))
	for i := range transfers {
		t := &transfers[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		t.GameID = gameID
		t.Position = i
		stored[i] = *t
	}

	game.Transfers = stored
	game.State = models.GameStateClosed
	game.ClosedAt = time.Now().Unix()
	return nil
}

// openGame must be called with the write lock held.
func (s *Store) openGame(gameID string) (*models.Game, error) {
	game, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrGameNotFound, gameID)
	}
	if game.IsClosed() {
		return nil, fmt.Errorf("%w: %s", storage.ErrGameClosed, gameID)
	}
	return game, nil
}

func participantIndex(game *models.Game, participantID string) (int, error) {
	i := slices.IndexFunc(game.Participants, func(p models.Participant) bool {
		return p.ID == participantID
	})
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", storage.ErrParticipantNotFound, participantID)
	}
	return i, nil
}
