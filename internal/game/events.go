package game

// Outbound message payloads. Relay payloads carry the sender's connection id
// and display name so clients can attribute them.

// FixResult reports a submission verdict. Targeted replies (stale bug id,
// validation failure) omit SubmittedBy, matching what the one requester
// already knows.
type FixResult struct {
	BugID       string `json:"bugId"`
	Fixed       bool   `json:"fixed"`
	Explanation string `json:"explanation"`
	SubmittedBy string `json:"submittedBy,omitempty"`
}

// CursorEvent relays a raw pointer position.
type CursorEvent struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// EditingEvent relays an editing-focus change; BugID nil means the player
// cleared focus.
type EditingEvent struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	BugID *string `json:"bugId"`
}

// CodeUpdateEvent mirrors a player's live buffer for one bug.
type CodeUpdateEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	BugID string `json:"bugId"`
	Code  string `json:"code"`
}

// CursorPositionEvent relays an in-editor cursor.
type CursorPositionEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	BugID  string `json:"bugId"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}
