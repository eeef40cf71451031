package pkg

import (
	log "github.com/sirupsen/logrus"
)

// Matchmaker promotes waiting clients into rooms. It owns the decision of
// when two ids become a pair and nothing else; once a room exists the
// RoomDirectory is in charge. Not internally locked; the Relay serializes
// access.
type Matchmaker struct {
	registry *Registry
	queue    *WaitingQueue
	rooms    *RoomDirectory
}

func NewMatchmaker(registry *Registry, queue *WaitingQueue, rooms *RoomDirectory) *Matchmaker {
	return &Matchmaker{
		registry: registry,
		queue:    queue,
		rooms:    rooms,
	}
}

// PairAll drains the waiting queue two at a time until fewer than two
// clients remain, so a burst of arrivals never leaves matchable clients
// stranded. It runs only after a successful enqueue, never on a timer.
func (m *Matchmaker) PairAll() {
	for {
		id1, id2, ok := m.queue.DequeueTwoOldest()
		if !ok {
			return
		}

		c1, ok1 := m.registry.Get(id1)
		c2, ok2 := m.registry.Get(id2)
		if !ok1 || !ok2 {
			// Queue/registry desync, e.g. a disconnect raced the
			// pairing. Abandon this pair; the healthy half is not
			// re-queued.
			log.WithFields(log.Fields{
				"client1": id1,
				"client2": id2,
			}).Error("Abandoning pairing: client record missing")
			continue
		}

		room := m.rooms.CreateRoom(c1, c2)
		c1.State = ClientStatePaired
		c2.State = ClientStatePaired

		c1.Deliver(&Message{Event: EventTypeSendOffer, RoomID: room.ID})
		c2.Deliver(&Message{Event: EventTypeSendOffer, RoomID: room.ID})

		SignalingPairingsCounter.Inc()

		log.WithFields(log.Fields{
			"room":    room.ID,
			"client1": id1,
			"client2": id2,
		}).Info("Paired clients")
	}
}
