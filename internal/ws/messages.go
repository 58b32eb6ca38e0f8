package ws

import "encoding/json"

// Envelope wraps every WS frame in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outEnvelope is the outbound counterpart; payloads are typed structs from
// the game package (or a plain string for "error").
type outEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ──────────────────────────── Inbound payload DTOs ───────────────────────────

// JoinPayload is the body for "join".
type JoinPayload struct {
	Name string `json:"name"`
}

// SubmitFixPayload is the body for "submit_fix".
type SubmitFixPayload struct {
	BugID string `json:"bugId"`
	Code  string `json:"code"`
}

// CursorPayload is the body for "cursor" (raw pointer position).
type CursorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EditingPayload is the body for "editing"; a null bugId clears focus.
type EditingPayload struct {
	BugID *string `json:"bugId"`
}

// CodeUpdatePayload is the body for "code_update".
type CodeUpdatePayload struct {
	BugID string `json:"bugId"`
	Code  string `json:"code"`
}

// CursorPositionPayload is the body for "cursor_position".
type CursorPositionPayload struct {
	BugID  string `json:"bugId"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}
