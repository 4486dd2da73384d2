package api

import "testing"

func TestCodec_EmptyBody(t *testing.T) {
	var req ListGamesRequest
	if err := (Codec{}).Unmarshal(nil, &req); err != nil {
		t.Fatalf("Unmarshal of empty body failed: %v", err)
	}
}

func TestCodec_FieldNames(t *testing.T) {
	data, err := (Codec{}).Marshal(&RecordMovementRequest{GameID: "g1", ParticipantID: "p1", CashToPot: 20})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"gameId":"g1","participantId":"p1","cashToPot":20,"debtToPot":0}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
