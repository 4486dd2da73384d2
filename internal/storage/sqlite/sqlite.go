// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection keeps transactions serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGame persists a new game to the database.
func (s *SQLiteStore) CreateGame(ctx context.Context, game *models.Game) error {
	// Generate ID if not set
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.CreatedAt == 0 {
		game.CreatedAt = time.Now().Unix()
	}
	if game.Name == "" {
		game.Name = generateTitle(time.Unix(game.CreatedAt, 0))
	}
	game.State = models.GameStateOpen

	var ratio any
	if game.MoneyChipRatio != 0 {
		ratio = game.MoneyChipRatio
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO games (id, name, state, money_chip_ratio, created_at) VALUES (?, ?, ?, ?, ?)",
		game.ID, game.Name, string(game.State), ratio, game.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID, including participants, movements and transfers.
func (s *SQLiteStore) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	game := &models.Game{}
	var state string
	var ratio sql.NullFloat64
	var closedAt sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, state, money_chip_ratio, created_at, closed_at FROM games WHERE id = ?",
		gameID,
	).Scan(&game.ID, &game.Name, &state, &ratio, &game.CreatedAt, &closedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	game.State = models.GameState(state)
	game.MoneyChipRatio = ratio.Float64
	game.ClosedAt = closedAt.Int64

	participants, err := listParticipants(ctx, s.db, gameID)
	if err != nil {
		return nil, err
	}

	movements, err := listMovementsByGame(ctx, s.db, gameID)
	if err != nil {
		return nil, err
	}
	for i := range participants {
		participants[i].Movements = movements[participants[i].ID]
	}
	game.Participants = participants

	transfers, err := listTransfers(ctx, s.db, gameID)
	if err != nil {
		return nil, err
	}
	game.Transfers = transfers

	return game, nil
}

// ListGames retrieves all games, newest first.
func (s *SQLiteStore) ListGames(ctx context.Context) ([]storage.GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.state, g.created_at, COUNT(p.id)
		FROM games g
		LEFT JOIN participants p ON p.game_id = g.id
		GROUP BY g.id
		ORDER BY g.created_at DESC, g.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []storage.GameSummary
	for rows.Next() {
		var g storage.GameSummary
		var state string
		if err := rows.Scan(&g.ID, &g.Name, &state, &g.CreatedAt, &g.PlayerCount); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.State = models.GameState(state)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// RenameGame updates the name of an open game.
func (s *SQLiteStore) RenameGame(ctx context.Context, gameID, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireOpenGame(ctx, tx, gameID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE games SET name = ? WHERE id = ?", name, gameID); err != nil {
		return fmt.Errorf("failed to rename game: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// requireOpenGame returns ErrGameNotFound or ErrGameClosed unless the game is open.
func requireOpenGame(ctx context.Context, q queryer, gameID string) error {
	var state string
	err := q.QueryRowContext(ctx, "SELECT state FROM games WHERE id = ?", gameID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", storage.ErrGameNotFound, gameID)
	}
	if err != nil {
		return fmt.Errorf("failed to get game state: %w", err)
	}
	if models.GameState(state) == models.GameStateClosed {
		return fmt.Errorf("%w: %s", storage.ErrGameClosed, gameID)
	}
	return nil
}

// generateTitle creates an auto-generated title from the game date.
func generateTitle(createdAt time.Time) string {
	return fmt.Sprintf("Poker Night - %s", createdAt.Format("Jan 2, 2006"))
}
