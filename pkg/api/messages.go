package api

// MoneyMovement is one cash or debt movement against the pot.
type MoneyMovement struct {
	ID        string  `json:"id"`
	CashToPot float64 `json:"cashToPot"`
	DebtToPot float64 `json:"debtToPot"`
	CreatedAt int64   `json:"createdAt"`
}

// ParticipantStats is the financial summary of one player.
type ParticipantStats struct {
	CashIn      float64 `json:"cashIn"`
	DebtIn      float64 `json:"debtIn"`
	DebtOut     float64 `json:"debtOut"`
	Invested    float64 `json:"invested"`
	Returned    float64 `json:"returned"`
	Total       float64 `json:"total"`
	NetPosition float64 `json:"netPosition"`
	CashedOut   bool    `json:"cashedOut"`
}

// Participant is a player seated in a game.
type Participant struct {
	ID        string            `json:"id"`
	PlayerID  string            `json:"playerId"`
	Name      string            `json:"name"`
	CashedOut bool              `json:"cashedOut"`
	Movements []MoneyMovement   `json:"movements"`
	Stats     *ParticipantStats `json:"stats,omitempty"`
}

// GameStats is the financial summary of a game.
type GameStats struct {
	CashIn         float64 `json:"cashIn"`
	DebtIn         float64 `json:"debtIn"`
	Invested       float64 `json:"invested"`
	Returned       float64 `json:"returned"`
	Total          float64 `json:"total"`
	NetPosition    float64 `json:"netPosition"`
	CashedOutCount int32   `json:"cashedOutCount"`
	PlayerCount    int32   `json:"playerCount"`
}

// Transfer is one settlement payment.
type Transfer struct {
	GiverID      string  `json:"giverId"`
	GiverName    string  `json:"giverName"`
	ReceiverID   string  `json:"receiverId"`
	ReceiverName string  `json:"receiverName"`
	Amount       float64 `json:"amount"`
}

// Game is the full view of a game.
type Game struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	State          string        `json:"state"`
	MoneyChipRatio float64       `json:"moneyChipRatio,omitempty"`
	Participants   []Participant `json:"participants"`
	Transfers      []Transfer    `json:"transfers,omitempty"`
	Stats          *GameStats    `json:"stats,omitempty"`
	CreatedAt      int64         `json:"createdAt"`
	ClosedAt       int64         `json:"closedAt,omitempty"`
}

// GameSummary is the list view of a game.
type GameSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	PlayerCount int32  `json:"playerCount"`
	CreatedAt   int64  `json:"createdAt"`
}

type CreateGameRequest struct {
	Name           string  `json:"name"`
	MoneyChipRatio float64 `json:"moneyChipRatio,omitempty"`
}

type CreateGameResponse struct {
	Game *Game `json:"game"`
}

type GetGameRequest struct {
	GameID string `json:"gameId"`
}

type GetGameResponse struct {
	Game *Game `json:"game"`
}

type ListGamesRequest struct{}

type ListGamesResponse struct {
	Games []GameSummary `json:"games"`
}

type RenameGameRequest struct {
	GameID string `json:"gameId"`
	Name   string `json:"name"`
}

type RenameGameResponse struct {
	Game *Game `json:"game"`
}

type AddPlayerRequest struct {
	GameID string `json:"gameId"`
	Name   string `json:"name"`
}

type AddPlayerResponse struct {
	Participant *Participant `json:"participant"`
}

type RemovePlayerRequest struct {
	GameID        string `json:"gameId"`
	ParticipantID string `json:"participantId"`
}

type RemovePlayerResponse struct{}

// RecordMovementRequest records a buy-in. Positive CashToPot is cash put in,
// positive DebtToPot is an IOU recorded against the pot.
type RecordMovementRequest struct {
	GameID        string  `json:"gameId"`
	ParticipantID string  `json:"participantId"`
	CashToPot     float64 `json:"cashToPot"`
	DebtToPot     float64 `json:"debtToPot"`
}

type RecordMovementResponse struct {
	Participant *Participant `json:"participant"`
}

// CashOutRequest takes a player off the table. The amounts are what the player
// takes back, as cash and as debt owed by the pot.
type CashOutRequest struct {
	GameID        string  `json:"gameId"`
	ParticipantID string  `json:"participantId"`
	CashAmount    float64 `json:"cashAmount"`
	DebtAmount    float64 `json:"debtAmount"`
}

type CashOutResponse struct {
	Participant *Participant `json:"participant"`
}

// ConvertDebtRequest pays off part of a cashed-out player's debt in cash.
// Amount may not exceed the player's open net position.
type ConvertDebtRequest struct {
	GameID        string  `json:"gameId"`
	ParticipantID string  `json:"participantId"`
	Amount        float64 `json:"amount"`
}

type ConvertDebtResponse struct {
	Participant *Participant `json:"participant"`
}

type GetGameStatsRequest struct {
	GameID string `json:"gameId"`
}

type GetGameStatsResponse struct {
	Stats        *GameStats    `json:"stats"`
	Participants []Participant `json:"participants"`
}

type PreviewSettlementRequest struct {
	GameID string `json:"gameId"`
}

type PreviewSettlementResponse struct {
	Transfers []Transfer `json:"transfers"`
	Balanced  bool       `json:"balanced"`
	Imbalance float64    `json:"imbalance"`
}

type CloseGameRequest struct {
	GameID string `json:"gameId"`
}

type CloseGameResponse struct {
	Game *Game `json:"game"`
}
