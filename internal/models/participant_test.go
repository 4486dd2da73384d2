package models

import "testing"

func TestParticipant_WithMovement(t *testing.T) {
	original := Participant{ID: "p1", Name: "Alice"}
	original = original.WithMovement(MoneyMovement{ID: "m1", CashToPot: 50})

	// Leave spare capacity so an in-place append would be visible through the old snapshot.
	original.Movements = append(make([]MoneyMovement, 0, 8), original.Movements...)

	updated := original.WithMovement(MoneyMovement{ID: "m2", DebtToPot: 20})

	if len(original.Movements) != 1 {
		t.Fatalf("original snapshot changed: %d movements", len(original.Movements))
	}
	if len(updated.Movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(updated.Movements))
	}
	if updated.Movements[1].ID != "m2" {
		t.Errorf("expected appended movement m2, got %s", updated.Movements[1].ID)
	}

	// Writing through the new snapshot must not leak into the old one.
	updated.Movements[0].CashToPot = 999
	if original.Movements[0].CashToPot != 50 {
		t.Errorf("snapshots share backing storage")
	}
}

func TestParticipant_WithCashedOut(t *testing.T) {
	p := Participant{ID: "p1"}.WithMovement(MoneyMovement{ID: "m1", CashToPot: 10})
	out := p.WithCashedOut()

	if p.CashedOut {
		t.Error("original snapshot should not be cashed out")
	}
	if !out.CashedOut {
		t.Error("expected cashed-out snapshot")
	}
	if len(out.Movements) != 1 {
		t.Errorf("expected movements to carry over, got %d", len(out.Movements))
	}
}

func TestParticipant_Removable(t *testing.T) {
	p := Participant{ID: "p1"}
	if !p.Removable() {
		t.Error("participant without movements should be removable")
	}
	if p.WithMovement(MoneyMovement{CashToPot: 5}).Removable() {
		t.Error("participant with movements should not be removable")
	}
}

func TestGame_AllCashedOut(t *testing.T) {
	g := &Game{}
	if !g.AllCashedOut() {
		t.Error("empty game should count as cashed out")
	}

	g.Participants = []Participant{{ID: "a", CashedOut: true}, {ID: "b"}}
	if g.AllCashedOut() {
		t.Error("expected false while b is still playing")
	}

	g.Participants[1] = g.Participants[1].WithCashedOut()
	if !g.AllCashedOut() {
		t.Error("expected true once everyone cashed out")
	}

	if _, ok := g.Participant("b"); !ok {
		t.Error("expected to find participant b")
	}
	if _, ok := g.Participant("zzz"); ok {
		t.Error("unexpected participant zzz")
	}
}
