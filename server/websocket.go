package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// wsClient is one websocket connection. Frames are answered in order; the
// write pump owns every write to the connection.
type wsClient struct {
	server    *Server
	conn      *websocket.Conn
	send      chan interface{}
	id        string
	log       *zap.SugaredLogger
	closeOnce sync.Once
}

// HandleParseWebSocket serves GET /ws/parse
func (s *Server) HandleParseWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the request
		s.logger.Debugw("WebSocket upgrade failed", logger.FieldError, err)
		return
	}

	id := uuid.New().String()
	c := &wsClient{
		server: s,
		conn:   conn,
		send:   make(chan interface{}, sendBuffer),
		id:     id,
		log:    s.logger.With("client_id", id),
	}
	c.log.Debugw("WebSocket client connected")

	go c.writePump()
	c.readPump(r.Context())
}

// readPump reads request frames and queues one reply per frame
func (c *wsClient) readPump(ctx context.Context) {
	defer c.close()

	c.conn.SetReadLimit(maxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debugw("WebSocket read error", logger.FieldError, err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if kind != websocket.TextMessage {
			c.reply(ErrorResponse{Error: "only text frames are accepted"})
			continue
		}
		c.reply(c.handle(logger.WithRequestID(ctx, c.id), data))
	}
}

// handle answers one frame
func (c *wsClient) handle(ctx context.Context, data []byte) interface{} {
	req, err := decodeRequest(data)
	if err != nil {
		return ErrorResponse{Error: err.Error()}
	}
	if !c.server.limiter.Load().Allow() {
		return ErrorResponse{ID: req.ID, Error: ErrRateLimited.Error()}
	}
	resp, err := c.server.Parse(ctx, req)
	if err != nil {
		if !errors.IsInvalidInputError(err) {
			c.log.Errorw("Parse failed", logger.FieldError, err)
			return ErrorResponse{ID: req.ID, Error: "internal error"}
		}
		return ErrorResponse{ID: req.ID, Error: errorMessage(err)}
	}
	return resp
}

// reply queues msg; a client that stops reading is disconnected
func (c *wsClient) reply(msg interface{}) {
	select {
	case c.send <- msg:
	default:
		c.log.Warnw("WebSocket client too slow, closing")
		c.conn.Close()
	}
}

// writePump writes replies and keepalive pings
func (c *wsClient) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Debugw("WebSocket write failed", logger.FieldError, err)
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

// close ends the write pump once
func (c *wsClient) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		c.log.Debugw("WebSocket client disconnected")
	})
}
