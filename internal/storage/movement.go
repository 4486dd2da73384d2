package storage

// MovementKind tells a store which participants may receive a movement.
type MovementKind int

const (
	// MovementBuyIn is a cash-in or debt-in at the table.
	MovementBuyIn MovementKind = iota
	// MovementCashOut is the last movement at the table; it marks the participant cashed out.
	MovementCashOut
	// MovementConversion repays debt in cash after the participant left the table.
	MovementConversion
)

// Allowed returns the error for recording a movement of this kind against a
// participant with the given cashed-out flag, or nil.
func (k MovementKind) Allowed(cashedOut bool) error {
	switch k {
	case MovementConversion:
		if !cashedOut {
			return ErrParticipantNotCashedOut
		}
	default:
		if cashedOut {
			return ErrParticipantCashedOut
		}
	}
	return nil
}
