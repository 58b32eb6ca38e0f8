package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"bugbash/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 12 * time.Second
	pingPeriod = 3 * time.Second // must be < pongWait

	// Code snippets and live buffers ride inside frames.
	maxFrameSize = 64 << 10
)

type WsServer struct {
	registry *Registry
	router   *Router
	upgrader websocket.Upgrader
}

func NewWsServer(registry *Registry) *WsServer {
	srv := &WsServer{
		registry: registry,
		router:   NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev-only
		},
	}
	srv.registerHandlers() // ← all WS message types configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	roomID := ginCtx.Query("room")
	if roomID == "" {
		ginCtx.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
		return
	}

	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxFrameSize)

	// ─────────────────── Client connected ────────────────────────
	conn := &clientConn{id: uuid.NewString(), rawConn: rawConn}
	room := s.registry.Attach(roomID)
	room.Connect(conn) // pushes the initial snapshot

	go s.reader(roomID, room, conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, "join", func(c *ConnContext, p JoinPayload) {
		c.Room.Join(c.ConnID, p.Name)
	})
	Register(s.router, "start_game", func(c *ConnContext, _ struct{}) {
		c.Room.StartGame(c.ConnID)
	})
	Register(s.router, "submit_fix", func(c *ConnContext, p SubmitFixPayload) {
		c.Room.SubmitFix(c.ConnID, p.BugID, p.Code)
	})
	Register(s.router, "cursor", func(c *ConnContext, p CursorPayload) {
		c.Room.Cursor(c.ConnID, p.X, p.Y)
	})
	Register(s.router, "editing", func(c *ConnContext, p EditingPayload) {
		c.Room.Editing(c.ConnID, p.BugID)
	})
	Register(s.router, "code_update", func(c *ConnContext, p CodeUpdatePayload) {
		c.Room.CodeUpdate(c.ConnID, p.BugID, p.Code)
	})
	Register(s.router, "cursor_position", func(c *ConnContext, p CursorPositionPayload) {
		c.Room.CursorPosition(c.ConnID, p.BugID, p.Line, p.Column)
	})
}

func (s *WsServer) reader(roomID string, room *game.Room, conn *clientConn) {
	defer func() {
		room.Disconnect(conn.id)
		s.registry.Detach(roomID)
		conn.rawConn.Close()
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: conn.id, Room: room}

	for {
		_, data, err := conn.rawConn.ReadMessage()
		if err != nil {
			return // client closed or errored
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue // undecodable frame: dropped, no reply
		}
		s.router.dispatch(cc, env)
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			_ = conn.rawConn.Close()
			return
		}
	}
}
