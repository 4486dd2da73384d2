package models

// Transfer is one payment of a game's final settlement. Transfers are written once,
// when the game closes, and never modified.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string

	// GameID is the game this transfer settles.
	GameID string

	// GiverID is the participant (or the pot) who pays.
	GiverID   string
	GiverName string

	// ReceiverID is the participant (or the pot) who gets paid.
	ReceiverID   string
	ReceiverName string

	// Amount is always positive.
	Amount float64

	// Position is the order in which the settlement produced this transfer.
	Position int
}
