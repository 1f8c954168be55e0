package gateway

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	maxMessageSize = 4096
	pingInterval   = 54 * time.Second
)

// client is one websocket connection. The read pump feeds the gateway's
// inbound queues; the write pump drains the send channel. Snapshots that
// cannot be queued are dropped rather than stalling the broadcaster.
type client struct {
	key  uint64
	conn *websocket.Conn
	gw   *Gateway

	send chan []byte

	combatantID int64 // 0 until hello is accepted
	hello       bool
}

func (c *client) sendMsg(v any) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		c.gw.log.Error("marshal message", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
		// Queue full: the client is too slow, drop the message.
	}
}

func (c *client) readPump() {
	defer func() {
		c.conn.Close()
		c.gw.disconnect(c)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.gw.readTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.gw.readTimeout))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.gw.log.Debug("read error", zap.Uint64("client", c.key), zap.Error(err))
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.gw.readTimeout))

		var env envelope
		if err := msgpack.Unmarshal(raw, &env); err != nil {
			c.gw.log.Debug("bad envelope", zap.Uint64("client", c.key), zap.Error(err))
			continue
		}
		switch env.Type {
		case MsgTypeHello:
			var msg HelloMsg
			if err := msgpack.Unmarshal(raw, &msg); err != nil {
				continue
			}
			c.gw.handleHello(c, msg)
		case MsgTypeIntent:
			var msg IntentMsg
			if err := msgpack.Unmarshal(raw, &msg); err != nil {
				continue
			}
			c.gw.handleIntent(c, msg)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.gw.writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.gw.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
