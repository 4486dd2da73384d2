package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/internal/storage"
)

// CloseGame persists the settlement transfers and closes the game in one transaction.
func (s *SQLiteStore) CloseGame(ctx context.Context, gameID string, transfers []models.Transfer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireOpenGame(ctx, tx, gameID); err != nil {
		return err
	}
	var playing int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM participants WHERE game_id = ? AND cashed_out = 0", gameID,
	).Scan(&playing); err != nil {
		return fmt.Errorf("failed to count players at the table: %w", err)
	}
	if playing > 0 {
		return fmt.Errorf("%w: %d still playing", storage.ErrParticipantNotCashedOut, playing)
	}

	for i := range transfers {
		t := &transfers[i]
		// Generate ID if not set
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		t.GameID = gameID
		t.Position = i

		_, err = tx.ExecContext(ctx,
			`INSERT INTO transfers (id, game_id, giver_id, giver_name, receiver_id, receiver_name, amount, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, gameID, t.GiverID, t.GiverName, t.ReceiverID, t.ReceiverName, t.Amount, t.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE games SET state = ?, closed_at = ? WHERE id = ?",
		string(models.GameStateClosed), time.Now().Unix(), gameID,
	)
	if err != nil {
		return fmt.Errorf("failed to close game: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// listTransfers retrieves the settlement of a game in the order it was produced.
func listTransfers(ctx context.Context, q queryer, gameID string) ([]models.Transfer, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, game_id, giver_id, giver_name, receiver_id, receiver_name, amount, position
		 FROM transfers WHERE game_id = ? ORDER BY position`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.Transfer
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.ID, &t.GameID, &t.GiverID, &t.GiverName,
			&t.ReceiverID, &t.ReceiverName, &t.Amount, &t.Position); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}
