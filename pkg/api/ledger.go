// Package api defines the LedgerService RPC surface: procedure names, messages,
// and Connect handler and client constructors.
//
// Messages are plain Go structs carried as JSON (see Codec), so any Connect client
// speaking "application/json" can call the service.
package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "pokernight.v1.LedgerService"

// Procedure paths, used to register handlers and to identify calls in interceptors.
const (
	LedgerServiceCreateGameProcedure        = "/pokernight.v1.LedgerService/CreateGame"
	LedgerServiceGetGameProcedure           = "/pokernight.v1.LedgerService/GetGame"
	LedgerServiceListGamesProcedure         = "/pokernight.v1.LedgerService/ListGames"
	LedgerServiceRenameGameProcedure        = "/pokernight.v1.LedgerService/RenameGame"
	LedgerServiceAddPlayerProcedure         = "/pokernight.v1.LedgerService/AddPlayer"
	LedgerServiceRemovePlayerProcedure      = "/pokernight.v1.LedgerService/RemovePlayer"
	LedgerServiceRecordMovementProcedure    = "/pokernight.v1.LedgerService/RecordMovement"
	LedgerServiceCashOutProcedure           = "/pokernight.v1.LedgerService/CashOut"
	LedgerServiceConvertDebtProcedure       = "/pokernight.v1.LedgerService/ConvertDebt"
	LedgerServiceGetGameStatsProcedure      = "/pokernight.v1.LedgerService/GetGameStats"
	LedgerServicePreviewSettlementProcedure = "/pokernight.v1.LedgerService/PreviewSettlement"
	LedgerServiceCloseGameProcedure         = "/pokernight.v1.LedgerService/CloseGame"
)

// LedgerServiceHandler is implemented by the server side of the LedgerService.
type LedgerServiceHandler interface {
	CreateGame(context.Context, *connect.Request[CreateGameRequest]) (*connect.Response[CreateGameResponse], error)
	GetGame(context.Context, *connect.Request[GetGameRequest]) (*connect.Response[GetGameResponse], error)
	ListGames(context.Context, *connect.Request[ListGamesRequest]) (*connect.Response[ListGamesResponse], error)
	RenameGame(context.Context, *connect.Request[RenameGameRequest]) (*connect.Response[RenameGameResponse], error)
	AddPlayer(context.Context, *connect.Request[AddPlayerRequest]) (*connect.Response[AddPlayerResponse], error)
	RemovePlayer(context.Context, *connect.Request[RemovePlayerRequest]) (*connect.Response[RemovePlayerResponse], error)
	RecordMovement(context.Context, *connect.Request[RecordMovementRequest]) (*connect.Response[RecordMovementResponse], error)
	CashOut(context.Context, *connect.Request[CashOutRequest]) (*connect.Response[CashOutResponse], error)
	ConvertDebt(context.Context, *connect.Request[ConvertDebtRequest]) (*connect.Response[ConvertDebtResponse], error)
	GetGameStats(context.Context, *connect.Request[GetGameStatsRequest]) (*connect.Response[GetGameStatsResponse], error)
	PreviewSettlement(context.Context, *connect.Request[PreviewSettlementRequest]) (*connect.Response[PreviewSettlementResponse], error)
	CloseGame(context.Context, *connect.Request[CloseGameRequest]) (*connect.Response[CloseGameResponse], error)
}

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient interface {
	CreateGame(context.Context, *connect.Request[CreateGameRequest]) (*connect.Response[CreateGameResponse], error)
	GetGame(context.Context, *connect.Request[GetGameRequest]) (*connect.Response[GetGameResponse], error)
	ListGames(context.Context, *connect.Request[ListGamesRequest]) (*connect.Response[ListGamesResponse], error)
	RenameGame(context.Context, *connect.Request[RenameGameRequest]) (*connect.Response[RenameGameResponse], error)
	AddPlayer(context.Context, *connect.Request[AddPlayerRequest]) (*connect.Response[AddPlayerResponse], error)
	RemovePlayer(context.Context, *connect.Request[RemovePlayerRequest]) (*connect.Response[RemovePlayerResponse], error)
	RecordMovement(context.Context, *connect.Request[RecordMovementRequest]) (*connect.Response[RecordMovementResponse], error)
	CashOut(context.Context, *connect.Request[CashOutRequest]) (*connect.Response[CashOutResponse], error)
	ConvertDebt(context.Context, *connect.Request[ConvertDebtRequest]) (*connect.Response[ConvertDebtResponse], error)
	GetGameStats(context.Context, *connect.Request[GetGameStatsRequest]) (*connect.Response[GetGameStatsResponse], error)
	PreviewSettlement(context.Context, *connect.Request[PreviewSettlementRequest]) (*connect.Response[PreviewSettlementResponse], error)
	CloseGame(context.Context, *connect.Request[CloseGameRequest]) (*connect.Response[CloseGameResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceCreateGameProcedure, connect.NewUnaryHandler(LedgerServiceCreateGameProcedure, svc.CreateGame, opts...))
	mux.Handle(LedgerServiceGetGameProcedure, connect.NewUnaryHandler(LedgerServiceGetGameProcedure, svc.GetGame, opts...))
	mux.Handle(LedgerServiceListGamesProcedure, connect.NewUnaryHandler(LedgerServiceListGamesProcedure, svc.ListGames, opts...))
	mux.Handle(LedgerServiceRenameGameProcedure, connect.NewUnaryHandler(LedgerServiceRenameGameProcedure, svc.RenameGame, opts...))
	mux.Handle(LedgerServiceAddPlayerProcedure, connect.NewUnaryHandler(LedgerServiceAddPlayerProcedure, svc.AddPlayer, opts...))
	mux.Handle(LedgerServiceRemovePlayerProcedure, connect.NewUnaryHandler(LedgerServiceRemovePlayerProcedure, svc.RemovePlayer, opts...))
	mux.Handle(LedgerServiceRecordMovementProcedure, connect.NewUnaryHandler(LedgerServiceRecordMovementProcedure, svc.RecordMovement, opts...))
	mux.Handle(LedgerServiceCashOutProcedure, connect.NewUnaryHandler(LedgerServiceCashOutProcedure, svc.CashOut, opts...))
	mux.Handle(LedgerServiceConvertDebtProcedure, connect.NewUnaryHandler(LedgerServiceConvertDebtProcedure, svc.ConvertDebt, opts...))
	mux.Handle(LedgerServiceGetGameStatsProcedure, connect.NewUnaryHandler(LedgerServiceGetGameStatsProcedure, svc.GetGameStats, opts...))
	mux.Handle(LedgerServicePreviewSettlementProcedure, connect.NewUnaryHandler(LedgerServicePreviewSettlementProcedure, svc.PreviewSettlement, opts...))
	mux.Handle(LedgerServiceCloseGameProcedure, connect.NewUnaryHandler(LedgerServiceCloseGameProcedure, svc.CloseGame, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &ledgerServiceClient{
		createGame:        connect.NewClient[CreateGameRequest, CreateGameResponse](httpClient, baseURL+LedgerServiceCreateGameProcedure, opts...),
		getGame:           connect.NewClient[GetGameRequest, GetGameResponse](httpClient, baseURL+LedgerServiceGetGameProcedure, opts...),
		listGames:         connect.NewClient[ListGamesRequest, ListGamesResponse](httpClient, baseURL+LedgerServiceListGamesProcedure, opts...),
		renameGame:        connect.NewClient[RenameGameRequest, RenameGameResponse](httpClient, baseURL+LedgerServiceRenameGameProcedure, opts...),
		addPlayer:         connect.NewClient[AddPlayerRequest, AddPlayerResponse](httpClient, baseURL+LedgerServiceAddPlayerProcedure, opts...),
		removePlayer:      connect.NewClient[RemovePlayerRequest, RemovePlayerResponse](httpClient, baseURL+LedgerServiceRemovePlayerProcedure, opts...),
		recordMovement:    connect.NewClient[RecordMovementRequest, RecordMovementResponse](httpClient, baseURL+LedgerServiceRecordMovementProcedure, opts...),
		cashOut:           connect.NewClient[CashOutRequest, CashOutResponse](httpClient, baseURL+LedgerServiceCashOutProcedure, opts...),
		convertDebt:       connect.NewClient[ConvertDebtRequest, ConvertDebtResponse](httpClient, baseURL+LedgerServiceConvertDebtProcedure, opts...),
		getGameStats:      connect.NewClient[GetGameStatsRequest, GetGameStatsResponse](httpClient, baseURL+LedgerServiceGetGameStatsProcedure, opts...),
		previewSettlement: connect.NewClient[PreviewSettlementRequest, PreviewSettlementResponse](httpClient, baseURL+LedgerServicePreviewSettlementProcedure, opts...),
		closeGame:         connect.NewClient[CloseGameRequest, CloseGameResponse](httpClient, baseURL+LedgerServiceCloseGameProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createGame        *connect.Client[CreateGameRequest, CreateGameResponse]
	getGame           *connect.Client[GetGameRequest, GetGameResponse]
	listGames         *connect.Client[ListGamesRequest, ListGamesResponse]
	renameGame        *connect.Client[RenameGameRequest, RenameGameResponse]
	addPlayer         *connect.Client[AddPlayerRequest, AddPlayerResponse]
	removePlayer      *connect.Client[RemovePlayerRequest, RemovePlayerResponse]
	recordMovement    *connect.Client[RecordMovementRequest, RecordMovementResponse]
	cashOut           *connect.Client[CashOutRequest, CashOutResponse]
	convertDebt       *connect.Client[ConvertDebtRequest, ConvertDebtResponse]
	getGameStats      *connect.Client[GetGameStatsRequest, GetGameStatsResponse]
	previewSettlement *connect.Client[PreviewSettlementRequest, PreviewSettlementResponse]
	closeGame         *connect.Client[CloseGameRequest, CloseGameResponse]
}

func (c *ledgerServiceClient) CreateGame(ctx context.Context, req *connect.Request[CreateGameRequest]) (*connect.Response[CreateGameResponse], error) {
	return c.createGame.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGame(ctx context.Context, req *connect.Request[GetGameRequest]) (*connect.Response[GetGameResponse], error) {
	return c.getGame.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGames(ctx context.Context, req *connect.Request[ListGamesRequest]) (*connect.Response[ListGamesResponse], error) {
	return c.listGames.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RenameGame(ctx context.Context, req *connect.Request[RenameGameRequest]) (*connect.Response[RenameGameResponse], error) {
	return c.renameGame.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddPlayer(ctx context.Context, req *connect.Request[AddPlayerRequest]) (*connect.Response[AddPlayerResponse], error) {
	return c.addPlayer.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemovePlayer(ctx context.Context, req *connect.Request[RemovePlayerRequest]) (*connect.Response[RemovePlayerResponse], error) {
	return c.removePlayer.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordMovement(ctx context.Context, req *connect.Request[RecordMovementRequest]) (*connect.Response[RecordMovementResponse], error) {
	return c.recordMovement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CashOut(ctx context.Context, req *connect.Request[CashOutRequest]) (*connect.Response[CashOutResponse], error) {
	return c.cashOut.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ConvertDebt(ctx context.Context, req *connect.Request[ConvertDebtRequest]) (*connect.Response[ConvertDebtResponse], error) {
	return c.convertDebt.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGameStats(ctx context.Context, req *connect.Request[GetGameStatsRequest]) (*connect.Response[GetGameStatsResponse], error) {
	return c.getGameStats.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) PreviewSettlement(ctx context.Context, req *connect.Request[PreviewSettlementRequest]) (*connect.Response[PreviewSettlementResponse], error) {
	return c.previewSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CloseGame(ctx context.Context, req *connect.Request[CloseGameRequest]) (*connect.Response[CloseGameResponse], error) {
	return c.closeGame.CallUnary(ctx, req)
}
