package pkg

// EventType names a signaling event on the wire. The names match the
// original browser protocol.
type EventType string

const (
	EventTypeLobby        EventType = "lobby"
	EventTypeSendOffer              = "send-offer"
	EventTypeOffer                  = "offer"
	EventTypeAnswer                 = "answer"
	EventTypeIceCandidate           = "add-ice-candidate"
	EventTypeChatMessage            = "chat-message"
)

// ClientState tracks where a client is in its lifecycle. A paired client
// never returns to waiting; ending a session requires a reconnect.
type ClientState string

const (
	ClientStateIdle         ClientState = "idle"
	ClientStateWaiting                  = "waiting"
	ClientStatePaired                   = "paired"
	ClientStateDisconnected             = "disconnected"
)
