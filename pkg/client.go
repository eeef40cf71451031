package pkg

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Sized for WebRTC SDP
	// payloads.
	maxMessageSize = 64 * 1024

	sendBufferSize = 256
)

// Client is one connected participant. The send channel is the client's
// ownership handle: the Relay writes to it while the client is registered
// and closes it exactly once on disconnect.
type Client struct {
	ID    string
	Name  string
	State ClientState

	conn *websocket.Conn
	send chan *Message
}

func NewClient(id, name string, conn *websocket.Conn) *Client {
	return &Client{
		ID:    id,
		Name:  name,
		State: ClientStateIdle,
		conn:  conn,
		send:  make(chan *Message, sendBufferSize),
	}
}

// Deliver queues a message for the client's write pump without blocking.
// Signaling is best-effort: a full buffer drops the message.
func (c *Client) Deliver(msg *Message) {
	select {
	case c.send <- msg:
	default:
		SignalingDropsCounter.WithLabelValues("send_buffer_full").Inc()
		log.WithFields(log.Fields{
			"client": c.ID,
			"event":  msg.Event,
		}).Warn("Send buffer full, dropping message")
	}
}

// readPump pumps messages from the websocket connection to the relay.
// There is at most one reader per connection.
func (c *Client) readPump(relay *Relay) {
	defer func() {
		relay.OnDisconnect(c.ID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway) {
				log.WithField("client", c.ID).Error("Failed to read message: ", err)
			}
			return
		}

		relay.OnMessage(c.ID, &msg)
	}
}

// writePump pumps messages from the send channel to the websocket
// connection and keeps the connection alive with pings. There is at most
// one writer per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The relay closed the channel on disconnect.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			err := c.conn.WriteJSON(msg)
			if err != nil {
				log.WithField("client", c.ID).Error("Failed to write message: ", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
