package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchmakerFixture() (*Matchmaker, *Registry, *WaitingQueue, *RoomDirectory) {
	registry := NewRegistry()
	queue := NewWaitingQueue()
	rooms := NewRoomDirectory()
	return NewMatchmaker(registry, queue, rooms), registry, queue, rooms
}

func addWaiting(t *testing.T, registry *Registry, queue *WaitingQueue, id string) *Client {
	t.Helper()
	c := NewClient(id, "randomName", nil)
	require.NoError(t, registry.Add(c))
	require.NoError(t, queue.Enqueue(id))
	c.State = ClientStateWaiting
	return c
}

func TestPairAllDrainsInArrivalOrder(t *testing.T) {
	m, registry, queue, rooms := newMatchmakerFixture()

	a := addWaiting(t, registry, queue, "a")
	b := addWaiting(t, registry, queue, "b")
	c := addWaiting(t, registry, queue, "c")
	e := addWaiting(t, registry, queue, "e")

	m.PairAll()

	// One invocation drains every available pair, not just the first.
	assert.Zero(t, queue.Len())
	assert.Equal(t, 2, rooms.Count())

	peer, err := rooms.OtherMember("1", "a")
	require.NoError(t, err)
	assert.Same(t, b, peer, "First two arrivals share the first room")

	peer, err = rooms.OtherMember("2", "c")
	require.NoError(t, err)
	assert.Same(t, e, peer)

	for _, client := range []*Client{a, b, c, e} {
		assert.Equal(t, ClientState(ClientStatePaired), client.State)

		msgs := receivedMessages(client)
		require.Len(t, msgs, 1)
		assert.Equal(t, EventType(EventTypeSendOffer), msgs[0].Event)
		assert.NotEmpty(t, msgs[0].RoomID)
	}
}

func TestPairAllOddWaiterStaysQueued(t *testing.T) {
	m, registry, queue, rooms := newMatchmakerFixture()

	addWaiting(t, registry, queue, "a")
	addWaiting(t, registry, queue, "b")
	c := addWaiting(t, registry, queue, "c")

	m.PairAll()

	assert.Equal(t, 1, rooms.Count())
	assert.Equal(t, 1, queue.Len())
	assert.Empty(t, receivedMessages(c), "The odd waiter must not be notified")

	_, found := rooms.Teardown("c")
	assert.False(t, found, "The odd waiter must not be in any room")
}

func TestPairAllAbandonsDesyncedPair(t *testing.T) {
	m, registry, queue, rooms := newMatchmakerFixture()

	a := addWaiting(t, registry, queue, "a")

	// A queue entry whose registry record is gone, as when a disconnect
	// races the pairing.
	require.NoError(t, queue.Enqueue("ghost"))

	m.PairAll()

	assert.Zero(t, rooms.Count(), "A pair with a missing record must not produce a room")
	assert.Zero(t, queue.Len(), "The abandoned pair is consumed, not re-queued")
	assert.Empty(t, receivedMessages(a))
	assert.Equal(t, ClientState(ClientStateWaiting), a.State)
}

func TestPairAllContinuesPastDesyncedPair(t *testing.T) {
	m, registry, queue, rooms := newMatchmakerFixture()

	addWaiting(t, registry, queue, "a")
	require.NoError(t, queue.Enqueue("ghost"))
	c := addWaiting(t, registry, queue, "c")
	e := addWaiting(t, registry, queue, "e")

	m.PairAll()

	// The broken pair is dropped but draining continues behind it.
	assert.Equal(t, 1, rooms.Count())
	assert.Zero(t, queue.Len())
	assert.Len(t, receivedMessages(c), 1)
	assert.Len(t, receivedMessages(e), 1)
}
