package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/Vaidiasri/linear-backend/internal/metrics"
)

const (
	writeDeadline     = 5 * time.Second
	pingInterval      = 30 * time.Second
	pongDeadline      = 60 * time.Second
	messageBufferSize = 16
)

var (
	// ErrChannelClosed is returned by Send once the writer goroutine has
	// exited (peer gone, write error, or explicit Close).
	ErrChannelClosed = errors.New("channel closed")
	// ErrSendTimeout is returned when the peer's send buffer stays full past
	// the enqueue timeout. Treated as a delivery failure by the registry.
	ErrSendTimeout = errors.New("send timed out")
)

// ClientChannel adapts one gorilla WebSocket connection to the Channel
// interface. A dedicated writer goroutine owns all writes to the socket
// (gorilla allows at most one concurrent writer), so Send only enqueues.
type ClientChannel struct {
	conn           *websocket.Conn
	clock          clockwork.Clock
	sendCh         chan []byte
	done           chan struct{}
	dead           chan struct{}
	stopOnce       sync.Once
	enqueueTimeout time.Duration
}

// NewClientChannel wraps conn and starts its writer goroutine.
// enqueueTimeout bounds how long Send may wait on a full buffer; zero means
// fail immediately when the buffer is full.
func NewClientChannel(conn *websocket.Conn, clock clockwork.Clock, enqueueTimeout time.Duration) *ClientChannel {
	cc := &ClientChannel{
		conn:           conn,
		clock:          clock,
		sendCh:         make(chan []byte, messageBufferSize),
		done:           make(chan struct{}),
		dead:           make(chan struct{}),
		enqueueTimeout: enqueueTimeout,
	}
	cc.configurePongHandler()
	go cc.run()
	return cc
}

func (cc *ClientChannel) run() {
	defer close(cc.dead)

	ticker := cc.clock.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-cc.sendCh:
			start := cc.clock.Now()
			cc.updateWriteDeadline()
			if err := cc.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
			metrics.WebSocketSendDuration.Observe(cc.clock.Since(start).Seconds())
		case <-ticker.Chan():
			cc.updateWriteDeadline()
			if err := cc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				metrics.WebSocketPingFailures.Inc()
				return
			}
		case <-cc.done:
			return
		}
	}
}

// Send enqueues data for delivery. It never blocks longer than the enqueue
// timeout and reports an error once the writer has died, so a single
// unresponsive peer cannot stall a broadcast.
func (cc *ClientChannel) Send(data []byte) error {
	select {
	case <-cc.dead:
		return ErrChannelClosed
	default:
	}

	if cc.enqueueTimeout <= 0 {
		select {
		case cc.sendCh <- data:
			return nil
		case <-cc.dead:
			return ErrChannelClosed
		default:
			return ErrSendTimeout
		}
	}

	timer := cc.clock.NewTimer(cc.enqueueTimeout)
	defer timer.Stop()

	select {
	case cc.sendCh <- data:
		return nil
	case <-cc.dead:
		return ErrChannelClosed
	case <-timer.Chan():
		return ErrSendTimeout
	}
}

// Close stops the writer goroutine, sends a normal close frame, and closes
// the underlying connection. Safe to call multiple times.
func (cc *ClientChannel) Close() error {
	cc.stopOnce.Do(func() {
		close(cc.done)
		<-cc.dead

		// Writer has exited, so this is the only writer left on the socket.
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		cc.updateWriteDeadline()
		_ = cc.conn.WriteMessage(websocket.CloseMessage, msg)
		_ = cc.conn.Close()
	})
	return nil
}

func (cc *ClientChannel) configurePongHandler() {
	cc.updateReadDeadline()
	cc.conn.SetPongHandler(func(string) error {
		cc.updateReadDeadline()
		return nil
	})
}

func (cc *ClientChannel) updateWriteDeadline() {
	_ = cc.conn.SetWriteDeadline(cc.clock.Now().Add(writeDeadline))
}

func (cc *ClientChannel) updateReadDeadline() {
	_ = cc.conn.SetReadDeadline(cc.clock.Now().Add(pongDeadline))
}
