package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// History entry statuses.
const (
	BugResolved   = "resolved"
	BugUnresolved = "unresolved"
)

// Bug is one generated, intentionally defective snippet. A bug starts queued,
// becomes player-facing at VisibleAt and leaves the active set either
// resolved or expired; it never returns to the queue. Timestamps are unix
// milliseconds to match the wire contract.
type Bug struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Title     string `json:"title"`
	SpawnedAt int64  `json:"spawnedAt"`
	VisibleAt int64  `json:"visibleAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (b *Bug) visible(now time.Time) bool {
	return now.UnixMilli() >= b.VisibleAt
}

// ResolvedBug is an append-only history entry; never mutated after insertion.
type ResolvedBug struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	ResolvedBy *string `json:"resolvedBy"`
	FixedCode  *string `json:"fixedCode"`
}

// NewBugID returns "bug_<unix-ms>_<random suffix>".
func NewBugID(now time.Time) string {
	return fmt.Sprintf("bug_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

// TitleFromTopic strips the task phrasing off a generation topic so the
// board shows "reverses a linked list" instead of the full prompt line.
func TitleFromTopic(topic string) string {
	t := strings.TrimPrefix(topic, "Write a function that ")
	return strings.TrimPrefix(t, "Write a class that ")
}
