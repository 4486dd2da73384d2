package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Ensure Codec implements connect.Codec
var _ connect.Codec = Codec{}

// Codec marshals the ledger messages as JSON. It takes the "json" name, so handlers
// answer "application/json" requests with it instead of the protobuf JSON codec.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
