package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/internal/storage"
)

// AddParticipant seats a new player in an open game.
func (s *SQLiteStore) AddParticipant(ctx context.Context, gameID string, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.PlayerID == "" {
		participant.PlayerID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireOpenGame(ctx, tx, gameID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO participants (id, game_id, player_id, name, cashed_out, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM participants WHERE game_id = ?))`,
		participant.ID, gameID, participant.PlayerID, participant.Name, participant.CashedOut, gameID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a seat that has no recorded movements.
func (s *SQLiteStore) RemoveParticipant(ctx context.Context, gameID, participantID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireOpenGame(ctx, tx, gameID); err != nil {
		return err
	}
	if _, err := participantCashedOut(ctx, tx, gameID, participantID); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM money_movements WHERE participant_id = ?", participantID,
	).Scan(&count); err != nil {
		return fmt.Errorf("failed to count movements: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", storage.ErrParticipantHasMovements, participantID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID); err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AppendMovement records a movement for a participant still at the table.
func (s *SQLiteStore) AppendMovement(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error {
	return s.recordMovement(ctx, gameID, participantID, movement, storage.MovementBuyIn)
}

// CashOut records the final movement and marks the participant as cashed out.
func (s *SQLiteStore) CashOut(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error {
	return s.recordMovement(ctx, gameID, participantID, movement, storage.MovementCashOut)
}

// ConvertDebt records a repayment for a participant who already cashed out.
func (s *SQLiteStore) ConvertDebt(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) error {
	return s.recordMovement(ctx, gameID, participantID, movement, storage.MovementConversion)
}

func (s *SQLiteStore) recordMovement(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement, kind storage.MovementKind) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt == 0 {
		movement.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireOpenGame(ctx, tx, gameID); err != nil {
		return err
	}
	cashedOut, err := participantCashedOut(ctx, tx, gameID, participantID)
	if err != nil {
		return err
	}
	if err := kind.Allowed(cashedOut); err != nil {
		return fmt.Errorf("%w: %s", err, participantID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO money_movements (id, participant_id, cash_to_pot, debt_to_pot, created_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM money_movements WHERE participant_id = ?))`,
		movement.ID, participantID, movement.CashToPot, movement.DebtToPot, movement.CreatedAt, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}

	if kind == storage.MovementCashOut {
		if _, err := tx.ExecContext(ctx, "UPDATE participants SET cashed_out = 1 WHERE id = ?", participantID); err != nil {
			return fmt.Errorf("failed to cash out participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// participantCashedOut returns the cashed-out flag of a participant seated in gameID.
func participantCashedOut(ctx context.Context, q queryer, gameID, participantID string) (bool, error) {
	var cashedOut bool
	err := q.QueryRowContext(ctx,
		"SELECT cashed_out FROM participants WHERE id = ? AND game_id = ?", participantID, gameID,
	).Scan(&cashedOut)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", storage.ErrParticipantNotFound, participantID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to get participant: %w", err)
	}
	return cashedOut, nil
}

// listParticipants returns the participants of a game in the order they joined.
func listParticipants(ctx context.Context, q queryer, gameID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, player_id, name, cashed_out FROM participants WHERE game_id = ? ORDER BY seq",
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.Name, &p.CashedOut); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// listMovementsByGame returns every movement of a game keyed by participant ID,
// each list in recording order. Missing amounts read as zero.
func listMovementsByGame(ctx context.Context, q queryer, gameID string) (map[string][]models.MoneyMovement, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT m.id, m.participant_id, m.cash_to_pot, m.debt_to_pot, m.created_at
		FROM money_movements m
		JOIN participants p ON p.id = m.participant_id
		WHERE p.game_id = ?
		ORDER BY m.participant_id, m.seq`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get movements: %w", err)
	}
	defer rows.Close()

	movements := make(map[string][]models.MoneyMovement)
	for rows.Next() {
		var m models.MoneyMovement
		var participantID string
		var cash, debt sql.NullFloat64
		if err := rows.Scan(&m.ID, &participantID, &cash, &debt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		m.CashToPot = cash.Float64
		m.DebtToPot = debt.Float64
		movements[participantID] = append(movements[participantID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}

	return movements, nil
}
