package pkg

import "encoding/json"

// Message is the JSON envelope for every signaling event, in both
// directions. SDP and ICE candidate contents are opaque to the relay; it
// forwards them verbatim and never inspects them.
type Message struct {
	Event  EventType `json:"event"`
	RoomID string    `json:"roomId,omitempty"`

	// SDP carries the session description for offer/answer events.
	SDP string `json:"sdp,omitempty"`

	// Candidate and CandidateType carry ICE candidates. The type tag is
	// "sender" or "receiver" relative to the original offerer, so the
	// receiving side can tell which gathering phase the candidate
	// belongs to.
	Candidate     json.RawMessage `json:"candidate,omitempty"`
	CandidateType string          `json:"type,omitempty"`

	// Sender and Text carry chat messages.
	Sender string `json:"sender,omitempty"`
	Text   string `json:"message,omitempty"`
}
