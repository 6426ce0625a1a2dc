package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"signalscout/internal/service/ingest"
)

// WebSocketClient is one connected live-feed consumer.
type WebSocketClient struct {
	conn      *websocket.Conn
	send      chan []byte
	natsConn  *nats.Conn
	natsSub   *nats.Subscription
	closeOnce sync.Once
	log       *logrus.Logger
}

// WebSocketConfig contains connection timing settings.
type WebSocketConfig struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// TrendWebSocketHandler streams newly ingested trend records to connected
// clients. The feed is one-way: incoming messages are drained and dropped.
func TrendWebSocketHandler(natsConn *nats.Conn, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Error("Failed to upgrade to WebSocket")
			return
		}

		client := &WebSocketClient{
			conn:     conn,
			send:     make(chan []byte, 256),
			natsConn: natsConn,
			log:      log,
		}

		sub, err := natsConn.Subscribe(ingest.SubjectTrendIngested, func(msg *nats.Msg) {
			select {
			case client.send <- msg.Data:
			default:
				// Slow consumer: drop the event rather than block the bus.
			}
		})
		if err != nil {
			log.WithError(err).Error("Failed to subscribe to trend feed")
			conn.Close()
			return
		}
		client.natsSub = sub

		go client.writePump()
		go client.readPump()

		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "welcome",
			"feed": ingest.SubjectTrendIngested,
			"time": time.Now(),
		})
		client.send <- welcome

		log.WithField("remote", r.RemoteAddr).Info("Trend feed client connected")
	}
}

// closeConnection tears the client down. Both pumps defer it, so the
// teardown must run exactly once.
func (c *WebSocketClient) closeConnection() {
	c.closeOnce.Do(func() {
		if c.natsSub != nil {
			c.natsSub.Unsubscribe()
		}
		c.conn.Close()
	})
}

// readPump drains the connection so pongs and close frames are processed.
func (c *WebSocketClient) readPump() {
	config := DefaultWebSocketConfig()

	defer c.closeConnection()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Debug("WebSocket read error")
			}
			break
		}
	}
}

// writePump pumps feed events to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush queued events into the same frame.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
