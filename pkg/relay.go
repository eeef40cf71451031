package pkg

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Placeholder until an identity collaborator supplies real names.
const defaultDisplayName = "randomName"

// Relay is the single entry point for the matchmaking and signaling core.
// One mutex guards the registry, queue and rooms as a unit: pairing and
// teardown both read-then-write across them and must be atomic relative to
// each other, so a disconnect racing a pairing decision can never produce
// a room referencing a dead client.
type Relay struct {
	mu         sync.Mutex
	registry   *Registry
	queue      *WaitingQueue
	rooms      *RoomDirectory
	matchmaker *Matchmaker

	autoRequeue bool
	upgrader    websocket.Upgrader
}

func NewRelay(config *Config) *Relay {
	registry := NewRegistry()
	queue := NewWaitingQueue()
	rooms := NewRoomDirectory()

	return &Relay{
		registry:    registry,
		queue:       queue,
		rooms:       rooms,
		matchmaker:  NewMatchmaker(registry, queue, rooms),
		autoRequeue: config.AutoRequeueOnPartnerLeave,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// OnConnect registers a new client, greets it with a lobby event and puts
// it in the waiting queue. Pairing runs immediately; the new arrival may
// complete a pair.
func (r *Relay) OnConnect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.registry.Add(c); err != nil {
		// Should not occur: ids are minted per connection.
		log.WithField("client", c.ID).WithError(err).Error("Refusing client registration")
		return
	}

	SignalingClientsGauge.Inc()

	c.Deliver(&Message{Event: EventTypeLobby})
	r.enqueueLocked(c)
	r.syncGaugesLocked()

	log.WithFields(log.Fields{
		"client": c.ID,
		"name":   c.Name,
	}).Info("Client connected")
}

// OnDisconnect purges the client from every structure. It is invoked
// exactly once per connection by the read pump, but a duplicate event is a
// logged no-op rather than a crash.
func (r *Relay) OnDisconnect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.registry.Get(id)
	if !ok {
		log.WithField("client", id).Info("Disconnect for unknown client")
		return
	}

	if survivor, found := r.rooms.Teardown(id); found {
		survivor.State = ClientStateIdle
		if r.autoRequeue {
			r.enqueueLocked(survivor)
		}
	}

	r.queue.Remove(id)
	r.registry.Remove(id)
	c.State = ClientStateDisconnected
	close(c.send)

	SignalingClientsGauge.Dec()
	r.syncGaugesLocked()

	log.WithField("client", id).Info("Client disconnected")
}

// OnMessage dispatches an inbound signaling event. The relay rebuilds the
// outbound envelope so a client can only ever influence the fields its
// event legitimately carries.
func (r *Relay) OnMessage(id string, msg *Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg.Event {
	case EventTypeOffer, EventTypeAnswer:
		r.rooms.Route(msg.RoomID, id, &Message{
			Event:  msg.Event,
			RoomID: msg.RoomID,
			SDP:    msg.SDP,
		})
	case EventTypeIceCandidate:
		r.rooms.Route(msg.RoomID, id, &Message{
			Event:         msg.Event,
			Candidate:     msg.Candidate,
			CandidateType: msg.CandidateType,
		})
	case EventTypeChatMessage:
		r.rooms.Route(msg.RoomID, id, &Message{
			Event:  msg.Event,
			RoomID: msg.RoomID,
			Sender: id,
			Text:   msg.Text,
		})
	default:
		log.WithFields(log.Fields{
			"client": id,
			"event":  msg.Event,
		}).Warn("Unknown event type")
	}
}

// enqueueLocked appends the client to the waiting queue and runs the
// matchmaker. Callers must hold r.mu.
func (r *Relay) enqueueLocked(c *Client) {
	if err := r.queue.Enqueue(c.ID); err != nil {
		log.WithField("client", c.ID).WithError(err).Error("Failed to enqueue client")
		return
	}

	c.State = ClientStateWaiting
	r.matchmaker.PairAll()
}

// syncGaugesLocked refreshes the waiting/rooms gauges from the structures
// that own the counts. Callers must hold r.mu.
func (r *Relay) syncGaugesLocked() {
	SignalingWaitingGauge.Set(float64(r.queue.Len()))
	SignalingRoomsGauge.Set(float64(r.rooms.Count()))
}

func (r *Relay) HealthHandler(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}

func (r *Relay) StatsHandler(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	stats := map[string]int{
		"clients": r.registry.Count(),
		"waiting": r.queue.Len(),
		"rooms":   r.rooms.Count(),
	}
	r.mu.Unlock()

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// SocketHandler upgrades the connection, mints the client id and hands the
// connection over to the read/write pumps.
func (r *Relay) SocketHandler(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")

	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Error("Failed to upgrade connection: ", err)
		return
	}

	name := req.URL.Query().Get("name")
	if name == "" {
		name = defaultDisplayName
	}

	client := NewClient(uuid.NewString(), name, conn)
	r.OnConnect(client)

	go client.writePump()
	client.readPump(r)
}
