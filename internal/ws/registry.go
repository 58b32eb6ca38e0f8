package ws

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"bugbash/internal/game"
	"bugbash/internal/oracle"
)

// Registry owns every live room: created on first reference, torn down when
// the last connection leaves and nobody reattaches within the idle timeout.
// Room lifetimes are the contexts handed out here; canceling one stops the
// room's event loop and all of its timers.
type Registry struct {
	ctx    context.Context
	cfg    game.Config
	oracle oracle.Oracle
	idle   time.Duration

	mu    sync.Mutex
	rooms map[string]*roomEntry
}

type roomEntry struct {
	room      *game.Room
	cancel    context.CancelFunc
	refCnt    int
	idleTimer *time.Timer
}

func NewRegistry(ctx context.Context, cfg game.Config, orc oracle.Oracle, idle time.Duration) *Registry {
	return &Registry{
		ctx:    ctx,
		cfg:    cfg,
		oracle: orc,
		idle:   idle,
		rooms:  make(map[string]*roomEntry),
	}
}

// Attach returns the room for roomID, creating it on first reference, and
// counts the caller as one connection.
func (g *Registry) Attach(roomID string) *game.Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.rooms[roomID]
	if !ok {
		rctx, cancel := context.WithCancel(g.ctx)
		e = &roomEntry{
			room:   game.NewRoom(rctx, roomID, g.cfg, g.oracle),
			cancel: cancel,
		}
		g.rooms[roomID] = e
		zap.L().Info("room.create", zap.String("room", roomID))
	}
	if e.idleTimer != nil {
		e.idleTimer.Stop()
		e.idleTimer = nil
	}
	e.refCnt++
	return e.room
}

// Detach drops one connection. When the last one is gone the room is kept
// around for the idle timeout so a reconnect finds its state intact, then
// destroyed.
func (g *Registry) Detach(roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.rooms[roomID]
	if !ok {
		return
	}
	e.refCnt--
	if e.refCnt > 0 {
		return
	}
	e.idleTimer = time.AfterFunc(g.idle, func() { g.teardown(roomID) })
}

// Peek returns the room if it exists, without affecting its lifetime.
func (g *Registry) Peek(roomID string) (*game.Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.rooms[roomID]
	if !ok {
		return nil, false
	}
	return e.room, true
}

func (g *Registry) teardown(roomID string) {
	g.mu.Lock()
	e, ok := g.rooms[roomID]
	if ok && e.refCnt == 0 {
		delete(g.rooms, roomID)
	}
	g.mu.Unlock()

	// Outside the lock: stop the room's event loop and timers.
	if ok && e.refCnt == 0 {
		e.cancel()
		zap.L().Info("room.teardown", zap.String("room", roomID))
	}
}
