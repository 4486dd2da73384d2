package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pokernight/internal/amqp"
	"github.com/mmynk/pokernight/internal/calculator"
	"github.com/mmynk/pokernight/internal/metrics"
	"github.com/mmynk/pokernight/internal/models"
	"github.com/mmynk/pokernight/internal/storage"
	"github.com/mmynk/pokernight/pkg/api"
)

// Ensure LedgerService implements api.LedgerServiceHandler
var _ api.LedgerServiceHandler = (*LedgerService)(nil)

var (
	errNotCashedOut   = errors.New("not every player has cashed out")
	errUnevenGame     = errors.New("invested and returned amounts differ")
	errNoPlayers      = errors.New("game has no players")
	errUnbalanced     = errors.New("settlement does not zero every position")
	errEmptyMovement  = errors.New("movement must move cash or debt")
	errNegativeAmount = errors.New("cash-out amounts must not be negative")
	errNonFinite      = errors.New("amounts must be finite numbers")
	errOverflow       = errors.New("movement would overflow the game totals")
	errNotPositive    = errors.New("amount must be greater than zero")
	errStillPlaying   = errors.New("player has not cashed out")
	errExceedsDebt    = errors.New("amount exceeds the player's open debt")
)

// EventPublisher announces closed games to other systems.
type EventPublisher interface {
	PublishGameClosed(ctx context.Context, msg *amqp.GameClosedMessage) error
}

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	store     storage.Store
	metrics   *metrics.Metrics
	publisher EventPublisher
}

// NewLedgerService creates a new LedgerService with the given storage backend.
// m and publisher may be nil.
func NewLedgerService(store storage.Store, m *metrics.Metrics, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		metrics:   m,
		publisher: publisher,
	}
}

// CreateGame opens a new game.
func (s *LedgerService) CreateGame(ctx context.Context, req *connect.Request[api.CreateGameRequest]) (*connect.Response[api.CreateGameResponse], error) {
	slog.Info("CreateGame request received", "name", req.Msg.Name)

	if req.Msg.MoneyChipRatio < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("money/chip ratio must not be negative"))
	}

	game := &models.Game{
		Name:           strings.TrimSpace(req.Msg.Name),
		MoneyChipRatio: req.Msg.MoneyChipRatio,
	}
	if err := s.store.CreateGame(ctx, game); err != nil {
		slog.Error("CreateGame failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Game created", "game_id", game.ID, "name", game.Name)

	return connect.NewResponse(&api.CreateGameResponse{Game: gameToAPI(game)}), nil
}

// GetGame returns a game with its stats and, once closed, its settlement.
func (s *LedgerService) GetGame(ctx context.Context, req *connect.Request[api.GetGameRequest]) (*connect.Response[api.GetGameResponse], error) {
	game, err := s.loadGame(ctx, req.Msg.GameID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetGameResponse{Game: gameToAPI(game)}), nil
}

// ListGames returns every game, newest first.
func (s *LedgerService) ListGames(ctx context.Context, req *connect.Request[api.ListGamesRequest]) (*connect.Response[api.ListGamesResponse], error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		slog.Error("ListGames failed", "error", err)
		return nil, toConnectError(err)
	}

	summaries := make([]api.GameSummary, len(games))
	for i, g := range games {
		summaries[i] = api.GameSummary{
			ID:          g.ID,
			Name:        g.Name,
			State:       string(g.State),
			PlayerCount: int32(g.PlayerCount),
			CreatedAt:   g.CreatedAt,
		}
	}

	slog.Info("ListGames successful", "count", len(summaries))

	return connect.NewResponse(&api.ListGamesResponse{Games: summaries}), nil
}

// RenameGame changes the name of an open game.
func (s *LedgerService) RenameGame(ctx context.Context, req *connect.Request[api.RenameGameRequest]) (*connect.Response[api.RenameGameResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("name is required"))
	}

	if err := s.store.RenameGame(ctx, req.Msg.GameID, name); err != nil {
		slog.Error("RenameGame failed", "game_id", req.Msg.GameID, "error", err)
		return nil, toConnectError(err)
	}

	game, err := s.loadGame(ctx, req.Msg.GameID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.RenameGameResponse{Game: gameToAPI(game)}), nil
}

// AddPlayer seats a new player in an open game.
func (s *LedgerService) AddPlayer(ctx context.Context, req *connect.Request[api.AddPlayerRequest]) (*connect.Response[api.AddPlayerResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("player name is required"))
	}

	participant := &models.Participant{Name: name}
	if err := s.store.AddParticipant(ctx, req.Msg.GameID, participant); err != nil {
		slog.Error("AddPlayer failed", "game_id", req.Msg.GameID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Player added", "game_id", req.Msg.GameID, "participant_id", participant.ID, "name", name)

	return connect.NewResponse(&api.AddPlayerResponse{Participant: participantToAPI(*participant)}), nil
}

// RemovePlayer removes a player who has not moved any money yet.
func (s *LedgerService) RemovePlayer(ctx context.Context, req *connect.Request[api.RemovePlayerRequest]) (*connect.Response[api.RemovePlayerResponse], error) {
	if err := s.store.RemoveParticipant(ctx, req.Msg.GameID, req.Msg.ParticipantID); err != nil {
		slog.Error("RemovePlayer failed", "game_id", req.Msg.GameID, "participant_id", req.Msg.ParticipantID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Player removed", "game_id", req.Msg.GameID, "participant_id", req.Msg.ParticipantID)

	return connect.NewResponse(&api.RemovePlayerResponse{}), nil
}

// RecordMovement records a cash-in or debt-in for a player still at the table.
func (s *LedgerService) RecordMovement(ctx context.Context, req *connect.Request[api.RecordMovementRequest]) (*connect.Response[api.RecordMovementResponse], error) {
	if err := requireFinite(req.Msg.CashToPot, req.Msg.DebtToPot); err != nil {
		return nil, err
	}
	if req.Msg.CashToPot == 0 && req.Msg.DebtToPot == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errEmptyMovement)
	}

	movement := &models.MoneyMovement{
		CashToPot: req.Msg.CashToPot,
		DebtToPot: req.Msg.DebtToPot,
	}
	if _, err := s.checkTotals(ctx, req.Msg.GameID, req.Msg.ParticipantID, movement); err != nil {
		return nil, err
	}
	if err := s.store.AppendMovement(ctx, req.Msg.GameID, req.Msg.ParticipantID, movement); err != nil {
		slog.Error("RecordMovement failed", "game_id", req.Msg.GameID, "participant_id", req.Msg.ParticipantID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Movement recorded",
		"game_id", req.Msg.GameID,
		"participant_id", req.Msg.ParticipantID,
		"cash_to_pot", movement.CashToPot,
		"debt_to_pot", movement.DebtToPot,
	)

	participant, err := s.loadParticipant(ctx, req.Msg.GameID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.RecordMovementResponse{Participant: participant}), nil
}

// CashOut takes a player off the table. The returned amounts are recorded as a
// movement out of the pot and the player is marked as cashed out.
func (s *LedgerService) CashOut(ctx context.Context, req *connect.Request[api.CashOutRequest]) (*connect.Response[api.CashOutResponse], error) {
	if err := requireFinite(req.Msg.CashAmount, req.Msg.DebtAmount); err != nil {
		return nil, err
	}
	if req.Msg.CashAmount < 0 || req.Msg.DebtAmount < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errNegativeAmount)
	}

	movement := &models.MoneyMovement{
		CashToPot: -req.Msg.CashAmount,
		DebtToPot: -req.Msg.DebtAmount,
	}
	if _, err := s.checkTotals(ctx, req.Msg.GameID, req.Msg.ParticipantID, movement); err != nil {
		return nil, err
	}
	if err := s.store.CashOut(ctx, req.Msg.GameID, req.Msg.ParticipantID, movement); err != nil {
		slog.Error("CashOut failed", "game_id", req.Msg.GameID, "participant_id", req.Msg.ParticipantID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Player cashed out",
		"game_id", req.Msg.GameID,
		"participant_id", req.Msg.ParticipantID,
		"cash", req.Msg.CashAmount,
		"debt", req.Msg.DebtAmount,
	)

	participant, err := s.loadParticipant(ctx, req.Msg.GameID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.CashOutResponse{Participant: participant}), nil
}

// ConvertDebt lets a cashed-out player pay off open debt in cash. The repayment is
// recorded as cash into the pot with the same amount of debt taken back.
func (s *LedgerService) ConvertDebt(ctx context.Context, req *connect.Request[api.ConvertDebtRequest]) (*connect.Response[api.ConvertDebtResponse], error) {
	amount := req.Msg.Amount
	if err := requireFinite(amount); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errNotPositive)
	}

	movement := &models.MoneyMovement{
		CashToPot: amount,
		DebtToPot: -amount,
	}
	participant, err := s.checkTotals(ctx, req.Msg.GameID, req.Msg.ParticipantID, movement)
	if err != nil {
		return nil, err
	}
	if !participant.CashedOut {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errStillPlaying)
	}
	stats := calculator.AggregateParticipant(movementsForStats(participant.Movements), participant.CashedOut)
	if amount > stats.NetPosition {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("%w: %v requested, %v open", errExceedsDebt, amount, stats.NetPosition))
	}

	if err := s.store.ConvertDebt(ctx, req.Msg.GameID, req.Msg.ParticipantID, movement); err != nil {
		slog.Error("ConvertDebt failed", "game_id", req.Msg.GameID, "participant_id", req.Msg.ParticipantID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Debt converted",
		"game_id", req.Msg.GameID,
		"participant_id", req.Msg.ParticipantID,
		"amount", amount,
	)

	view, err := s.loadParticipant(ctx, req.Msg.GameID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ConvertDebtResponse{Participant: view}), nil
}

// GetGameStats returns the aggregated stats of a game and each of its players.
func (s *LedgerService) GetGameStats(ctx context.Context, req *connect.Request[api.GetGameStatsRequest]) (*connect.Response[api.GetGameStatsResponse], error) {
	game, err := s.loadGame(ctx, req.Msg.GameID)
	if err != nil {
		return nil, err
	}

	view := gameToAPI(game)
	return connect.NewResponse(&api.GetGameStatsResponse{
		Stats:        view.Stats,
		Participants: view.Participants,
	}), nil
}

// PreviewSettlement computes the settlement of an eligible game without saving it.
// For a closed game it returns the recorded settlement.
func (s *LedgerService) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error) {
	game, err := s.loadGame(ctx, req.Msg.GameID)
	if err != nil {
		return nil, err
	}

	if game.IsClosed() {
		return connect.NewResponse(&api.PreviewSettlementResponse{
			Transfers: transfersToAPI(game.Transfers),
			Balanced:  true,
		}), nil
	}

	settlement, err := settleGame(game)
	if err != nil {
		slog.Warn("PreviewSettlement refused", "game_id", game.ID, "reason", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	s.metrics.ObserveSettlement(settlement)

	slog.Info("Settlement previewed",
		"game_id", game.ID,
		"transfers", len(settlement.Transfers),
		"balanced", settlement.Balanced(),
	)

	return connect.NewResponse(&api.PreviewSettlementResponse{
		Transfers: calculatorTransfersToAPI(settlement.Transfers),
		Balanced:  settlement.Balanced(),
		Imbalance: settlement.Imbalance(),
	}), nil
}

// CloseGame settles an eligible game, records the transfers and closes it.
func (s *LedgerService) CloseGame(ctx context.Context, req *connect.Request[api.CloseGameRequest]) (*connect.Response[api.CloseGameResponse], error) {
	slog.Info("CloseGame request received", "game_id", req.Msg.GameID)

	game, err := s.loadGame(ctx, req.Msg.GameID)
	if err != nil {
		return nil, err
	}
	if game.IsClosed() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("%w: %s", storage.ErrGameClosed, game.ID))
	}
	if len(game.Participants) == 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errNoPlayers)
	}

	settlement, err := settleGame(game)
	if err != nil {
		slog.Warn("CloseGame refused", "game_id", game.ID, "reason", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	s.metrics.ObserveSettlement(settlement)
	if !settlement.Balanced() {
		slog.Error("CloseGame refused unbalanced settlement", "game_id", game.ID, "imbalance", settlement.Imbalance())
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("%w: imbalance %v", errUnbalanced, settlement.Imbalance()))
	}

	transfers := transfersToModels(settlement.Transfers)
	if err := s.store.CloseGame(ctx, game.ID, transfers); err != nil {
		slog.Error("CloseGame failed", "game_id", game.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.GameClosed()

	slog.Info("Game closed", "game_id", game.ID, "transfers", len(transfers))

	s.publishClosed(ctx, game, transfers)

	closed, err := s.loadGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.CloseGameResponse{Game: gameToAPI(closed)}), nil
}

// publishClosed announces the closed game. The game is already closed at this
// point, so a failed publish is logged and not returned.
func (s *LedgerService) publishClosed(ctx context.Context, game *models.Game, transfers []models.Transfer) {
	if s.publisher == nil {
		return
	}

	msgTransfers := make([]amqp.TransferMessage, len(transfers))
	for i, t := range transfers {
		msgTransfers[i] = amqp.TransferMessage{
			GiverID:      t.GiverID,
			GiverName:    t.GiverName,
			ReceiverID:   t.ReceiverID,
			ReceiverName: t.ReceiverName,
			Amount:       t.Amount,
		}
	}

	msg := amqp.NewGameClosedMessage(game.ID, game.Name, msgTransfers)
	if err := s.publisher.PublishGameClosed(ctx, msg); err != nil {
		slog.Error("Failed to publish game closed event", "game_id", game.ID, "error", err)
	}
}

func (s *LedgerService) loadGame(ctx context.Context, gameID string) (*models.Game, error) {
	if gameID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("game id is required"))
	}
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		slog.Error("Failed to load game", "game_id", gameID, "error", err)
		return nil, toConnectError(err)
	}
	return game, nil
}

func (s *LedgerService) loadParticipant(ctx context.Context, gameID, participantID string) (*api.Participant, error) {
	game, err := s.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	p, ok := game.Participant(participantID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: %s", storage.ErrParticipantNotFound, participantID))
	}
	return participantToAPI(p), nil
}

// checkTotals loads the participant and rejects movement if it would push the
// participant or game aggregates past the float range.
func (s *LedgerService) checkTotals(ctx context.Context, gameID, participantID string, movement *models.MoneyMovement) (models.Participant, error) {
	game, err := s.loadGame(ctx, gameID)
	if err != nil {
		return models.Participant{}, err
	}
	if game.IsClosed() {
		return models.Participant{}, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("%w: %s", storage.ErrGameClosed, gameID))
	}
	i := slices.IndexFunc(game.Participants, func(p models.Participant) bool { return p.ID == participantID })
	if i < 0 {
		return models.Participant{}, connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: %s", storage.ErrParticipantNotFound, participantID))
	}
	current := game.Participants[i]

	participants := slices.Clone(game.Participants)
	participants[i] = current.WithMovement(*movement)
	players := playersForStats(participants)

	stats := calculator.AggregateGame(players)
	totals := []float64{stats.CashIn, stats.DebtIn, stats.Invested, stats.Returned, stats.Total, stats.NetPosition}
	for _, p := range players {
		ps := calculator.AggregateParticipant(p.Movements, p.CashedOut)
		totals = append(totals, ps.CashIn, ps.DebtIn, ps.DebtOut, ps.Invested, ps.Total, ps.NetPosition)
	}
	for _, v := range totals {
		if !isFinite(v) {
			return models.Participant{}, connect.NewError(connect.CodeInvalidArgument, errOverflow)
		}
	}
	return current, nil
}

func requireFinite(amounts ...float64) error {
	for _, v := range amounts {
		if !isFinite(v) {
			return connect.NewError(connect.CodeInvalidArgument, errNonFinite)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// settleGame checks that a game can be settled and runs the solver.
func settleGame(game *models.Game) (calculator.Settlement, error) {
	if !game.AllCashedOut() {
		return calculator.Settlement{}, errNotCashedOut
	}

	players := playersForStats(game.Participants)
	stats := calculator.AggregateGame(players)
	if !isFinite(stats.Invested) || !isFinite(stats.Returned) {
		return calculator.Settlement{}, fmt.Errorf("%w: invested %v, returned %v", errOverflow, stats.Invested, stats.Returned)
	}
	if math.Abs(stats.Invested-stats.Returned) > calculator.Tolerance {
		return calculator.Settlement{}, fmt.Errorf("%w: invested %v, returned %v", errUnevenGame, stats.Invested, stats.Returned)
	}

	positions, potCashIn := calculator.SettlementPositions(players)
	return calculator.Settle(positions, potCashIn), nil
}

// toConnectError maps storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrGameNotFound),
		errors.Is(err, storage.ErrParticipantNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrGameClosed),
		errors.Is(err, storage.ErrParticipantHasMovements),
		errors.Is(err, storage.ErrParticipantCashedOut),
		errors.Is(err, storage.ErrParticipantNotCashedOut):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
