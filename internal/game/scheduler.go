package game

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// after runs fn on the room goroutine once d elapses, unless rctx ends
// first. Timer side effects always re-enter through the mailbox.
func (r *Room) after(rctx context.Context, d time.Duration, fn func()) {
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-rctx.Done():
		case <-t.C:
			r.post(fn)
		}
	}()
}

func (r *Room) spawnDelay() time.Duration {
	spread := r.cfg.MaxSpawnInterval - r.cfg.MinSpawnInterval
	if spread <= 0 {
		return r.cfg.MinSpawnInterval
	}
	return r.cfg.MinSpawnInterval + rand.N(spread)
}

// scheduleNextSpawn arms the next spawn attempt after a uniformly random
// delay. It is re-armed at every attempt, before the oracle answers, so a
// full queue or a failed generation never stalls the cadence.
func (r *Room) scheduleNextSpawn(rctx context.Context) {
	r.after(rctx, r.spawnDelay(), func() { r.spawnAttempt(rctx) })
}

func (r *Room) spawnAttempt(rctx context.Context) {
	if r.st.Status != StatusPlaying {
		return
	}
	// Queued-for-reveal bugs count toward the cap, so the visible set can
	// never exceed it either.
	if len(r.st.ActiveBugs) < r.cfg.MaxActiveBugs {
		topic := topics[rand.IntN(len(topics))]
		go func() {
			code, err := r.oracle.Generate(rctx, topic)
			r.post(func() { r.finishGeneration(rctx, topic, code, err) })
		}()
	}
	r.scheduleNextSpawn(rctx)
}

func (r *Room) finishGeneration(rctx context.Context, topic, code string, err error) {
	if err != nil {
		zap.L().Warn("bug.generation_failed", zap.String("room", r.id), zap.Error(err))
		return
	}
	if r.st.Status != StatusPlaying || rctx.Err() != nil {
		return // round ended while the oracle was out
	}
	if len(r.st.ActiveBugs) >= r.cfg.MaxActiveBugs {
		return // a concurrent attempt filled the queue meanwhile
	}

	now := time.Now()
	visibleAt := now
	if len(r.st.ActiveBugs) > 0 {
		// Another bug is already in flight: stagger the reveal so freshly
		// generated bugs do not all surface at once.
		visibleAt = now.Add(r.cfg.RevealStagger)
	}
	bug := &Bug{
		ID:        NewBugID(now),
		Code:      code,
		Title:     TitleFromTopic(topic),
		SpawnedAt: now.UnixMilli(),
		VisibleAt: visibleAt.UnixMilli(),
		ExpiresAt: visibleAt.Add(r.cfg.BugTimeout).UnixMilli(),
	}
	r.st.ActiveBugs = append(r.st.ActiveBugs, bug)
	r.st.TotalBugsSpawned++
	zap.L().Info("bug.spawned",
		zap.String("room", r.id), zap.String("bug", bug.ID), zap.String("title", bug.Title))

	if visibleAt.After(now) {
		r.after(rctx, time.Until(visibleAt), func() { r.revealBug(bug.ID) })
	} else {
		r.broadcastState()
	}
	r.after(rctx, time.Until(visibleAt.Add(r.cfg.BugTimeout)), func() { r.expireBug(bug.ID) })
}

// revealBug promotes a queued bug. Snapshots recompute visibility from the
// clock, so promotion is just a broadcast.
func (r *Room) revealBug(bugID string) {
	if r.st.Status != StatusPlaying || r.st.findBug(bugID) == nil {
		return
	}
	r.broadcastState()
}

// expireBug times a bug out into history as unresolved. A bug resolved in
// the meantime is gone from the active set and no-ops here.
func (r *Room) expireBug(bugID string) {
	if r.st.Status != StatusPlaying {
		return
	}
	bug := r.st.removeBug(bugID)
	if bug == nil {
		return
	}
	r.st.BugHistory = append(r.st.BugHistory, ResolvedBug{
		ID:     bug.ID,
		Code:   bug.Code,
		Title:  bug.Title,
		Status: BugUnresolved,
	})
	r.presence.dropBug(bugID)
	zap.L().Info("bug.expired", zap.String("room", r.id), zap.String("bug", bug.ID))
	r.broadcastState()
}
