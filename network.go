package main

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// wire is the outbound half of the message channel the session writes to.
// send reports false when the message was dropped (closed or congested).
type wire interface {
	send(b []byte) bool
	isClosed() bool
}

// netClient wraps one WebSocket connection. A single connection attempt is
// made; once the socket breaks, sends become silent no-ops and the inbound
// channel is closed. No reconnection.
type netClient struct {
	conn   *websocket.Conn
	inCh   chan []byte
	outCh  chan []byte
	closed atomic.Bool
}

const netWriteWait = 5 * time.Second

// dialServer connects to the game service and starts the read and write
// pumps. Inbound messages queue on inCh until the game loop drains them.
func dialServer(url string) (*netClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &netClient{
		conn:  conn,
		inCh:  make(chan []byte, 256),
		outCh: make(chan []byte, 64),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

func (c *netClient) readPump() {
	defer func() {
		c.closed.Store(true)
		c.conn.Close()
		close(c.inCh)
	}()
	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			Log.Warnf("connection closed: %v", err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case c.inCh <- payload:
		default:
			// The game loop has stalled; drop rather than block the read.
			Log.Warnf("inbound queue full, dropping message")
		}
	}
}

func (c *netClient) writePump() {
	defer c.conn.Close()
	for msg := range c.outCh {
		c.conn.SetWriteDeadline(time.Now().Add(netWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			Log.Warnf("write failed: %v", err)
			c.closed.Store(true)
			return
		}
	}
}

func (c *netClient) send(b []byte) bool {
	if c == nil || c.closed.Load() {
		return false
	}
	select {
	case c.outCh <- b:
		return true
	default:
		return false
	}
}

func (c *netClient) isClosed() bool {
	return c == nil || c.closed.Load()
}

// inbound returns the channel the game loop drains each tick. Nil when
// never connected, which drains as an empty channel.
func (c *netClient) inbound() <-chan []byte {
	if c == nil {
		return nil
	}
	return c.inCh
}
