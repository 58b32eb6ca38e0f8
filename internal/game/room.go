package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"bugbash/internal/oracle"
)

// Conn is one attached client connection as the room sees it. Send must be
// safe to call from the room goroutine and must not block indefinitely.
type Conn interface {
	ID() string
	Send(msgType string, payload any)
}

// Config bounds one room's round. Zero values fall back to production
// defaults; tests shrink everything down to milliseconds.
type Config struct {
	GameDuration     time.Duration
	TickInterval     time.Duration
	MaxActiveBugs    int
	MinSpawnInterval time.Duration
	MaxSpawnInterval time.Duration
	BugTimeout       time.Duration
	RevealStagger    time.Duration
}

func (c Config) withDefaults() Config {
	if c.GameDuration <= 0 {
		c.GameDuration = 300 * time.Second
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.MaxActiveBugs <= 0 {
		c.MaxActiveBugs = 2
	}
	if c.MinSpawnInterval <= 0 {
		c.MinSpawnInterval = 10 * time.Second
	}
	if c.MaxSpawnInterval < c.MinSpawnInterval {
		c.MaxSpawnInterval = c.MinSpawnInterval
	}
	if c.BugTimeout <= 0 {
		c.BugTimeout = 60 * time.Second
	}
	// RevealStagger zero is legitimate: immediate reveal.
	return c
}

// Room is the per-session coordinator. Every externally triggered event --
// client messages, clock ticks, spawn timers, oracle completions -- enters
// as a closure on the mailbox and runs on the single run goroutine, so room
// state has exactly one writer and needs no locks.
type Room struct {
	id      string
	cfg     Config
	oracle  oracle.Oracle
	ctx     context.Context
	mailbox chan func()

	// Everything below is owned by the run goroutine.
	st          *state
	conns       map[string]Conn
	presence    *presence
	totalTicks  int
	roundCancel context.CancelFunc
}

// NewRoom creates a room and starts its event loop. The room lives until
// ctx is canceled; the registry owns that context.
func NewRoom(ctx context.Context, id string, cfg Config, orc oracle.Oracle) *Room {
	cfg = cfg.withDefaults()
	r := &Room{
		id:       id,
		cfg:      cfg,
		oracle:   orc,
		ctx:      ctx,
		mailbox:  make(chan func(), 64),
		conns:    make(map[string]Conn),
		presence: newPresence(),
	}
	r.totalTicks = int(cfg.GameDuration / cfg.TickInterval)
	r.st = newState(r.totalTicks)
	go r.run()
	return r
}

func (r *Room) ID() string { return r.id }

func (r *Room) run() {
	for {
		select {
		case <-r.ctx.Done():
			if r.roundCancel != nil {
				r.roundCancel()
			}
			return
		case fn := <-r.mailbox:
			fn()
		}
	}
}

// post schedules fn on the room goroutine; it is the only path into room
// state from the outside.
func (r *Room) post(fn func()) {
	select {
	case r.mailbox <- fn:
	case <-r.ctx.Done():
	}
}

// Connect attaches a transport connection. The new connection immediately
// receives a full state snapshot, before any broadcast can reach it.
func (r *Room) Connect(c Conn) {
	r.post(func() {
		r.conns[c.ID()] = c
		c.Send("state", r.st.snapshot(time.Now()))
	})
}

// Disconnect detaches a connection and removes its player, if any. Presence
// entries are scrubbed silently; clients rebuild editing membership from
// explicit focus events only.
func (r *Room) Disconnect(connID string) {
	r.post(func() {
		delete(r.conns, connID)
		if _, ok := r.st.Players[connID]; !ok {
			return
		}
		delete(r.st.Players, connID)
		r.presence.dropPlayer(connID)
		r.broadcastState()
	})
}

// Join registers a player. Valid while waiting or playing; a full room gets
// an error reply on the requesting connection only.
func (r *Room) Join(connID, name string) {
	r.post(func() {
		if r.st.Status == StatusEnded {
			return
		}
		if len(r.st.Players) >= MaxPlayers {
			r.sendTo(connID, "error", "Room is full (max 4 players)")
			return
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", len(r.st.Players)+1)
		}
		r.st.Players[connID] = Player{Name: name, JoinedAt: time.Now().UnixMilli()}
		r.broadcastState()
	})
}

// StartGame transitions waiting->playing. Any current player may start;
// requests in any other state are ignored.
func (r *Room) StartGame(connID string) {
	r.post(func() {
		if r.st.Status != StatusWaiting {
			return
		}
		if _, ok := r.st.Players[connID]; !ok {
			return
		}
		r.startRound()
	})
}

func (r *Room) startRound() {
	players := r.st.Players
	r.st = newState(r.totalTicks)
	r.st.Players = players
	r.st.Status = StatusPlaying
	r.presence.reset()

	var rctx context.Context
	rctx, r.roundCancel = context.WithCancel(r.ctx)

	r.broadcastState()
	r.startClock(rctx)
	r.scheduleNextSpawn(rctx)
	zap.L().Info("round.start",
		zap.String("room", r.id), zap.Int("players", len(r.st.Players)))
}

// startClock drives the coarse 1 Hz round timer; ticks re-enter through the
// mailbox like every other event.
func (r *Room) startClock(rctx context.Context) {
	go func() {
		tk := time.NewTicker(r.cfg.TickInterval)
		defer tk.Stop()
		for {
			select {
			case <-rctx.Done():
				return
			case <-tk.C:
				r.post(r.tick)
			}
		}
	}()
}

func (r *Room) tick() {
	if r.st.Status != StatusPlaying {
		return
	}
	r.st.TimeRemaining--
	elapsed := r.totalTicks - r.st.TimeRemaining
	r.st.Progress = math.Min(100, float64(elapsed)/float64(r.totalTicks)*100)

	if r.st.TimeRemaining <= 0 {
		r.endRound()
		return
	}
	r.broadcastState()
}

// endRound cancels every round timer before any other effect, so nothing can
// spawn or expire into the ended state, then flushes the remaining active
// bugs into history as unresolved, scores and broadcasts the final state.
func (r *Room) endRound() {
	r.roundCancel()
	r.st.Status = StatusEnded

	for _, b := range r.st.ActiveBugs {
		r.st.BugHistory = append(r.st.BugHistory, ResolvedBug{
			ID:     b.ID,
			Code:   b.Code,
			Title:  b.Title,
			Status: BugUnresolved,
		})
	}
	r.st.ActiveBugs = nil
	r.presence.reset()

	r.st.Score = Score(r.st.BugHistory)
	r.st.Progress = 100
	r.broadcastState()
	zap.L().Info("round.end",
		zap.String("room", r.id),
		zap.Int("score", r.st.Score),
		zap.Int("spawned", r.st.TotalBugsSpawned),
		zap.Int("resolved", r.st.TotalBugsResolved))
}

// SubmitFix runs the submission pipeline for one candidate fix. The oracle
// call happens off the loop; its completion re-checks that the round is
// still playing and the bug still active before mutating anything.
func (r *Room) SubmitFix(connID, bugID, code string) {
	r.post(func() {
		if r.st.Status != StatusPlaying {
			return
		}
		bug := r.st.findBug(bugID)
		if bug == nil {
			// Late, duplicate or expired submission: targeted reply only.
			r.sendTo(connID, "fix_result", FixResult{
				BugID:       bugID,
				Fixed:       false,
				Explanation: "Bug not found or already resolved.",
			})
			return
		}

		originalCode := bug.Code
		go func() {
			verdict, err := r.oracle.Validate(r.ctx, originalCode, code)
			r.post(func() { r.finishSubmission(connID, bugID, code, verdict, err) })
		}()
	})
}

func (r *Room) finishSubmission(connID, bugID, code string, verdict oracle.Verdict, err error) {
	if err != nil {
		zap.L().Warn("fix.validation_failed",
			zap.String("room", r.id), zap.String("bug", bugID), zap.Error(err))
		r.sendTo(connID, "fix_result", FixResult{
			BugID:       bugID,
			Fixed:       false,
			Explanation: "Validation service error.",
		})
		return
	}

	name := r.playerName(connID)
	changed := false
	// The bug may have expired and the round may have ended while the oracle
	// was out. A late success is still reported but mutates nothing.
	if verdict.Fixed && r.st.Status == StatusPlaying {
		if bug := r.st.removeBug(bugID); bug != nil {
			r.st.BugHistory = append(r.st.BugHistory, ResolvedBug{
				ID:         bug.ID,
				Code:       bug.Code,
				Title:      bug.Title,
				Status:     BugResolved,
				ResolvedBy: &name,
				FixedCode:  &code,
			})
			r.st.TotalBugsResolved++
			r.presence.dropBug(bugID)
			changed = true
		}
	}

	r.broadcast("fix_result", FixResult{
		BugID:       bugID,
		Fixed:       verdict.Fixed,
		Explanation: verdict.Explanation,
		SubmittedBy: name,
	})
	if changed {
		r.broadcastState()
	}
}

// Snapshot reads the current state through the mailbox like every other
// event, so the caller never observes a half-applied mutation.
func (r *Room) Snapshot() (Snapshot, bool) {
	ch := make(chan Snapshot, 1)
	r.post(func() { ch <- r.st.snapshot(time.Now()) })
	select {
	case s := <-ch:
		return s, true
	case <-r.ctx.Done():
		return Snapshot{}, false
	}
}

func (r *Room) playerName(connID string) string {
	if p, ok := r.st.Players[connID]; ok {
		return p.Name
	}
	return connID
}

func (r *Room) sendTo(connID, msgType string, payload any) {
	if c, ok := r.conns[connID]; ok {
		c.Send(msgType, payload)
	}
}

func (r *Room) broadcast(msgType string, payload any) {
	for _, c := range r.conns {
		c.Send(msgType, payload)
	}
}

func (r *Room) relayExcept(exceptID, msgType string, payload any) {
	for id, c := range r.conns {
		if id != exceptID {
			c.Send(msgType, payload)
		}
	}
}

func (r *Room) broadcastState() {
	r.broadcast("state", r.st.snapshot(time.Now()))
}
