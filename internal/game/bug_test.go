package game_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bugbash/internal/game"
)

func TestNewBugIDFormat(t *testing.T) {
	now := time.Now()
	id := game.NewBugID(now)
	assert.True(t, strings.HasPrefix(id, "bug_"), "id %q", id)
	assert.Contains(t, id, "_")

	other := game.NewBugID(now)
	assert.NotEqual(t, id, other, "ids from the same instant must still differ")
}

func TestTitleFromTopic(t *testing.T) {
	assert.Equal(t, "reverses a linked list",
		game.TitleFromTopic("Write a function that reverses a linked list"))
	assert.Equal(t, "implements a basic stack with push, pop, and peek",
		game.TitleFromTopic("Write a class that implements a basic stack with push, pop, and peek"))
	assert.Equal(t, "plain title", game.TitleFromTopic("plain title"))
}
