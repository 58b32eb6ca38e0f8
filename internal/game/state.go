package game

import "time"

// Room statuses.
const (
	StatusWaiting = "waiting"
	StatusPlaying = "playing"
	StatusEnded   = "ended"
)

// MaxPlayers is the hard per-room player cap.
const MaxPlayers = 4

type Player struct {
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt"`
}

// state is the mutable room state. The room's run goroutine is its single
// writer; nothing else may touch it.
type state struct {
	Status            string
	Players           map[string]Player // connID -> player
	TimeRemaining     int               // seconds (clock ticks) left
	Progress          float64
	ActiveBugs        []*Bug // queued + visible, in spawn order
	BugHistory        []ResolvedBug
	Score             int
	TotalBugsSpawned  int
	TotalBugsResolved int
}

func newState(totalTicks int) *state {
	return &state{
		Status:        StatusWaiting,
		Players:       make(map[string]Player),
		TimeRemaining: totalTicks,
		Score:         100,
	}
}

func (s *state) findBug(id string) *Bug {
	for _, b := range s.ActiveBugs {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *state) removeBug(id string) *Bug {
	for i, b := range s.ActiveBugs {
		if b.ID == id {
			s.ActiveBugs = append(s.ActiveBugs[:i], s.ActiveBugs[i+1:]...)
			return b
		}
	}
	return nil
}

// Snapshot is the wire form of the room state, broadcast as the "state"
// message. Queued bugs stay server-side: only bugs already visible at the
// snapshot instant are included.
type Snapshot struct {
	Status            string            `json:"status"`
	Players           map[string]Player `json:"players"`
	TimeRemaining     int               `json:"timeRemaining"`
	Progress          float64           `json:"progress"`
	ActiveBugs        []Bug             `json:"activeBugs"`
	BugHistory        []ResolvedBug     `json:"bugHistory"`
	Score             int               `json:"score"`
	TotalBugsSpawned  int               `json:"totalBugsSpawned"`
	TotalBugsResolved int               `json:"totalBugsResolved"`
}

func (s *state) snapshot(now time.Time) Snapshot {
	players := make(map[string]Player, len(s.Players))
	for id, p := range s.Players {
		players[id] = p
	}
	bugs := make([]Bug, 0, len(s.ActiveBugs))
	for _, b := range s.ActiveBugs {
		if b.visible(now) {
			bugs = append(bugs, *b)
		}
	}
	history := make([]ResolvedBug, len(s.BugHistory))
	copy(history, s.BugHistory)
	return Snapshot{
		Status:            s.Status,
		Players:           players,
		TimeRemaining:     s.TimeRemaining,
		Progress:          s.Progress,
		ActiveBugs:        bugs,
		BugHistory:        history,
		Score:             s.Score,
		TotalBugsSpawned:  s.TotalBugsSpawned,
		TotalBugsResolved: s.TotalBugsResolved,
	}
}
