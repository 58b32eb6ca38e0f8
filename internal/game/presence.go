package game

// presence is transient collaborative-editing state: who has editing focus
// on which bug, the last live-typed buffer per bug, and per-player cursors.
// It never feeds history or scoring, is rebuilt from explicit client events
// and is dropped wholesale when a bug leaves the active set.
type presence struct {
	focus   map[string]map[string]struct{} // bugID -> set of connIDs
	code    map[string]string              // bugID -> last buffer (last write wins)
	cursors map[string]map[string]Cursor   // bugID -> connID -> cursor
}

type Cursor struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func newPresence() *presence {
	return &presence{
		focus:   make(map[string]map[string]struct{}),
		code:    make(map[string]string),
		cursors: make(map[string]map[string]Cursor),
	}
}

// setFocus moves connID's focus to bugID; an empty bugID clears it.
func (p *presence) setFocus(connID, bugID string) {
	for _, set := range p.focus {
		delete(set, connID)
	}
	if bugID == "" {
		return
	}
	set, ok := p.focus[bugID]
	if !ok {
		set = make(map[string]struct{})
		p.focus[bugID] = set
	}
	set[connID] = struct{}{}
}

func (p *presence) setCode(bugID, code string) {
	p.code[bugID] = code
}

func (p *presence) setCursor(bugID, connID string, c Cursor) {
	m, ok := p.cursors[bugID]
	if !ok {
		m = make(map[string]Cursor)
		p.cursors[bugID] = m
	}
	m[connID] = c
}

func (p *presence) dropPlayer(connID string) {
	for _, set := range p.focus {
		delete(set, connID)
	}
	for _, m := range p.cursors {
		delete(m, connID)
	}
}

func (p *presence) dropBug(bugID string) {
	delete(p.focus, bugID)
	delete(p.code, bugID)
	delete(p.cursors, bugID)
}

func (p *presence) reset() {
	p.focus = make(map[string]map[string]struct{})
	p.code = make(map[string]string)
	p.cursors = make(map[string]map[string]Cursor)
}

// Relay entry points. All three channels are fire-and-forget: they update
// transient presence state, relay to the other connections and never touch
// history, counters or score.

// Cursor relays a raw pointer position to everyone except the sender.
func (r *Room) Cursor(connID string, x, y float64) {
	r.post(func() {
		r.relayExcept(connID, "cursor", CursorEvent{
			ID:   connID,
			Name: r.playerName(connID),
			X:    x,
			Y:    y,
		})
	})
}

// Editing updates editing-focus presence; a nil bug id clears the sender's
// focus.
func (r *Room) Editing(connID string, bugID *string) {
	r.post(func() {
		target := ""
		if bugID != nil {
			target = *bugID
		}
		r.presence.setFocus(connID, target)
		r.relayExcept(connID, "editing", EditingEvent{
			ID:    connID,
			Name:  r.playerName(connID),
			BugID: bugID,
		})
	})
}

// CodeUpdate mirrors a player's live buffer for one bug, last write wins.
func (r *Room) CodeUpdate(connID, bugID, code string) {
	r.post(func() {
		r.presence.setCode(bugID, code)
		r.relayExcept(connID, "code_update", CodeUpdateEvent{
			ID:    connID,
			Name:  r.playerName(connID),
			BugID: bugID,
			Code:  code,
		})
	})
}

// CursorPosition relays an in-editor cursor, last update wins per player.
func (r *Room) CursorPosition(connID, bugID string, line, column int) {
	r.post(func() {
		r.presence.setCursor(bugID, connID, Cursor{Line: line, Column: column})
		r.relayExcept(connID, "cursor_position", CursorPositionEvent{
			ID:     connID,
			Name:   r.playerName(connID),
			BugID:  bugID,
			Line:   line,
			Column: column,
		})
	})
}
