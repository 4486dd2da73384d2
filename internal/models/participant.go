package models

// MoneyMovement is one recorded movement between a participant and the pot.
// Movements are immutable once created.
type MoneyMovement struct {
	ID string

	// CashToPot is the cash paid into the pot. Negative for cash taken out.
	CashToPot float64

	// DebtToPot is the debt recorded against the pot. Negative when the pot returns debt.
	DebtToPot float64

	CreatedAt int64
}

// Participant is a player seated in one game.
type Participant struct {
	// ID is the unique identifier of this seat (UUID format).
	ID string

	// PlayerID identifies the player across games.
	PlayerID string

	// Name is the player's display name.
	Name string

	// CashedOut is set once the player leaves the table. It never resets.
	CashedOut bool

	// Movements are kept in the order they were recorded.
	Movements []MoneyMovement
}

// WithMovement returns a copy of p with m appended. p itself is left untouched,
// so readers holding the previous snapshot never observe the change.
func (p Participant) WithMovement(m MoneyMovement) Participant {
	movements := make([]MoneyMovement, len(p.Movements), len(p.Movements)+1)
	copy(movements, p.Movements)
	p.Movements = append(movements, m)
	return p
}

// WithCashedOut returns a cashed-out copy of p.
func (p Participant) WithCashedOut() Participant {
	p.Movements = append([]MoneyMovement(nil), p.Movements...)
	p.CashedOut = true
	return p
}

// Removable reports whether the participant can still leave the game.
// Only seats without any recorded movement can be removed.
func (p Participant) Removable() bool {
	return len(p.Movements) == 0
}
