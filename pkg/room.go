package pkg

import (
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotRoomMember = errors.New("client is not a room member")
)

// Room is one active pairing of exactly two clients.
type Room struct {
	ID      string
	member1 *Client
	member2 *Client
}

// RoomDirectory owns the set of active rooms and the relay logic between
// room members. Room ids come from a monotonically increasing counter
// owned by the directory; rooms have no meaning across restarts, so the
// counter resets with the process. Not internally locked; the Relay
// serializes access.
type RoomDirectory struct {
	rooms      map[string]*Room
	memberRoom map[string]string
	nextID     uint64
}

func NewRoomDirectory() *RoomDirectory {
	return &RoomDirectory{
		rooms:      make(map[string]*Room),
		memberRoom: make(map[string]string),
		nextID:     1,
	}
}

func (d *RoomDirectory) CreateRoom(c1, c2 *Client) *Room {
	id := strconv.FormatUint(d.nextID, 10)
	d.nextID++

	room := &Room{
		ID:      id,
		member1: c1,
		member2: c2,
	}

	d.rooms[id] = room
	d.memberRoom[c1.ID] = id
	d.memberRoom[c2.ID] = id

	return room
}

func (d *RoomDirectory) Get(roomID string) (*Room, bool) {
	room, ok := d.rooms[roomID]
	return room, ok
}

// OtherMember resolves the counterpart of selfID in the given room. It
// errors when the room is unknown or selfID is not actually a member,
// which guards against spoofed room ids in inbound messages.
func (d *RoomDirectory) OtherMember(roomID, selfID string) (*Client, error) {
	room, ok := d.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	switch selfID {
	case room.member1.ID:
		return room.member2, nil
	case room.member2.ID:
		return room.member1, nil
	}

	return nil, fmt.Errorf("%w: client %s, room %s", ErrNotRoomMember, selfID, roomID)
}

// Route forwards msg verbatim to the other member of the room. Routing
// failures are best-effort conditions: logged, counted and dropped. The
// sender is never told.
func (d *RoomDirectory) Route(roomID, senderID string, msg *Message) {
	peer, err := d.OtherMember(roomID, senderID)
	if err != nil {
		reason := "not_member"
		if errors.Is(err, ErrRoomNotFound) {
			reason = "room_not_found"
		}
		SignalingDropsCounter.WithLabelValues(reason).Inc()
		log.WithFields(log.Fields{
			"room":   roomID,
			"client": senderID,
			"event":  msg.Event,
		}).WithError(err).Warn("Dropping signaling message")
		return
	}

	peer.Deliver(msg)
	SignalingRelayedCounter.WithLabelValues(string(msg.Event)).Inc()
}

// Teardown removes the room containing clientID, if any, and returns the
// other member so the caller can apply its re-queue policy.
func (d *RoomDirectory) Teardown(clientID string) (*Client, bool) {
	roomID, ok := d.memberRoom[clientID]
	if !ok {
		return nil, false
	}

	room := d.rooms[roomID]
	delete(d.rooms, roomID)
	delete(d.memberRoom, room.member1.ID)
	delete(d.memberRoom, room.member2.ID)

	survivor := room.member1
	if survivor.ID == clientID {
		survivor = room.member2
	}

	log.WithFields(log.Fields{
		"room":   roomID,
		"client": clientID,
		"peer":   survivor.ID,
	}).Info("Room torn down")

	return survivor, true
}

func (d *RoomDirectory) Count() int {
	return len(d.rooms)
}
