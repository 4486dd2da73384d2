package amqp

import (
	"testing"
	"time"
)

func TestGameClosedMessage_JSON(t *testing.T) {
	msg := NewGameClosedMessage("game-1", "Friday", []TransferMessage{
		{GiverID: "a", GiverName: "Alice", ReceiverID: "pot", ReceiverName: "Pot", Amount: 100},
	})
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	decoded, err := GameClosedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("GameClosedMessageFromJSON failed: %v", err)
	}
	if decoded.GameID != "game-1" || decoded.GameName != "Friday" {
		t.Errorf("unexpected header: %+v", decoded)
	}
	if len(decoded.Transfers) != 1 || decoded.Transfers[0].Amount != 100 {
		t.Errorf("unexpected transfers: %+v", decoded.Transfers)
	}
	if !decoded.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Errorf("timestamp mismatch: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestGameClosedMessageFromJSON_Invalid(t *testing.T) {
	if _, err := GameClosedMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
