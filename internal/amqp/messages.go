package amqp

import (
	"encoding/json"
	"time"
)

// TransferMessage is one settlement payment inside a GameClosedMessage.
type TransferMessage struct {
	GiverID      string  `json:"giver_id"`
	GiverName    string  `json:"giver_name"`
	ReceiverID   string  `json:"receiver_id"`
	ReceiverName string  `json:"receiver_name"`
	Amount       float64 `json:"amount"`
}

// GameClosedMessage announces that a game was settled and closed.
// It carries the full settlement so consumers don't need to read it back.
type GameClosedMessage struct {
	GameID    string            `json:"game_id"`
	GameName  string            `json:"game_name"`
	Transfers []TransferMessage `json:"transfers"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewGameClosedMessage creates a message stamped with the current time.
func NewGameClosedMessage(gameID, gameName string, transfers []TransferMessage) *GameClosedMessage {
	return &GameClosedMessage{
		GameID:    gameID,
		GameName:  gameName,
		Transfers: transfers,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *GameClosedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GameClosedMessageFromJSON creates a message from JSON bytes
func GameClosedMessageFromJSON(data []byte) (*GameClosedMessage, error) {
	var msg GameClosedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
