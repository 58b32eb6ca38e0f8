package ws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugbash/internal/game"
	"bugbash/internal/oracle"
)

type stubOracle struct{}

func (stubOracle) Generate(context.Context, string) (string, error) {
	return "", errors.New("not wired")
}

func (stubOracle) Validate(context.Context, string, string) (oracle.Verdict, error) {
	return oracle.Verdict{}, errors.New("not wired")
}

func newTestRegistry(t *testing.T, idle time.Duration) *Registry {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRegistry(ctx, game.Config{}, stubOracle{}, idle)
}

func TestRegistryCreatesRoomOnFirstReference(t *testing.T) {
	reg := newTestRegistry(t, time.Minute)

	_, ok := reg.Peek("alpha")
	assert.False(t, ok)

	room := reg.Attach("alpha")
	require.NotNil(t, room)
	defer reg.Detach("alpha")

	peeked, ok := reg.Peek("alpha")
	require.True(t, ok)
	assert.Same(t, room, peeked)
	assert.Same(t, room, reg.Attach("alpha"), "same id resolves to the same room")
	reg.Detach("alpha")
}

func TestRegistryTearsDownIdleRoom(t *testing.T) {
	reg := newTestRegistry(t, 20*time.Millisecond)

	reg.Attach("beta")
	reg.Detach("beta")

	require.Eventually(t, func() bool {
		_, ok := reg.Peek("beta")
		return !ok
	}, time.Second, 5*time.Millisecond, "room should be destroyed after the idle timeout")
}

func TestRegistryReattachCancelsTeardown(t *testing.T) {
	reg := newTestRegistry(t, 30*time.Millisecond)

	room := reg.Attach("gamma")
	reg.Detach("gamma")
	reattached := reg.Attach("gamma") // within the idle window
	defer reg.Detach("gamma")

	assert.Same(t, room, reattached, "state must survive a quick reconnect")
	time.Sleep(60 * time.Millisecond)
	peeked, ok := reg.Peek("gamma")
	require.True(t, ok, "reattaching must cancel the pending teardown")
	assert.Same(t, room, peeked)
}

func TestRegistryKeepsRoomWhileOthersConnected(t *testing.T) {
	reg := newTestRegistry(t, 10*time.Millisecond)

	reg.Attach("delta")
	reg.Attach("delta")
	reg.Detach("delta") // one of two leaves

	time.Sleep(40 * time.Millisecond)
	_, ok := reg.Peek("delta")
	assert.True(t, ok, "room must stay while a connection remains")
	reg.Detach("delta")
}
