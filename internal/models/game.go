package models

// GameState is the lifecycle state of a game.
type GameState string

const (
	// GameStateOpen allows players to join, buy in and cash out.
	GameStateOpen GameState = "Open"
	// GameStateClosed is final: the settlement has been recorded.
	GameStateClosed GameState = "Closed"
)

// Game represents one poker night.
type Game struct {
	// ID is the unique identifier for the game (UUID format).
	ID string

	// Name is the display name of the game (e.g., "Friday Hold'em").
	Name string

	// State is Open until the settlement is recorded, then Closed for good.
	State GameState

	// MoneyChipRatio is the money value of one chip. Informational only.
	MoneyChipRatio float64

	// Participants are the players seated in this game, in the order they joined.
	Participants []Participant

	// Transfers is the final settlement. Empty while the game is Open.
	Transfers []Transfer

	// CreatedAt is the Unix timestamp when the game was created.
	CreatedAt int64

	// ClosedAt is the Unix timestamp when the game was closed, zero while Open.
	ClosedAt int64
}

// IsClosed reports whether the game has been settled.
func (g *Game) IsClosed() bool {
	return g.State == GameStateClosed
}

// Participant returns the participant with the given ID.
func (g *Game) Participant(id string) (Participant, bool) {
	for _, p := range g.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// AllCashedOut reports whether every participant has cashed out.
// A game with no participants is trivially cashed out.
func (g *Game) AllCashedOut() bool {
	for _, p := range g.Participants {
		if !p.CashedOut {
			return false
		}
	}
	return true
}
