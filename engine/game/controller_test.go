package game_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/bughunt/engine/core"
	"github.com/1siamBot/bughunt/engine/flavor"
	"github.com/1siamBot/bughunt/engine/game"
)

type stubProvider struct {
	system, taunt string
	err           error
}

func (p stubProvider) SystemMessage(context.Context, int, string) (string, error) {
	return p.system, p.err
}

func (p stubProvider) BossTaunt(context.Context, string) (string, error) {
	return p.taunt, p.err
}

// slowFirstProvider holds its first system message until released
type slowFirstProvider struct {
	calls   atomic.Int32
	release chan struct{}
}

func (p *slowFirstProvider) SystemMessage(ctx context.Context, _ int, _ string) (string, error) {
	if p.calls.Add(1) > 1 {
		return "fresh alert", nil
	}
	select {
	case <-p.release:
		return "stale alert", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *slowFirstProvider) BossTaunt(context.Context, string) (string, error) {
	return "taunt", nil
}

type recorder struct {
	frames []core.Snapshot
}

func (r *recorder) Publish(s core.Snapshot) { r.frames = append(r.frames, s) }

func newController(t *testing.T, p flavor.Provider, pub game.Publisher) *game.Controller {
	t.Helper()
	epoch := time.Unix(1_700_000_000, 0)
	opts := game.Options{
		Bounds:       core.Bounds{Width: 800, Height: 600},
		Rand:         core.NewRand(7),
		Provider:     p,
		Now:          func() time.Time { return epoch },
		PublishEvery: 6,
	}
	if pub != nil {
		opts.Publisher = pub
	}
	c := game.NewController(opts)
	t.Cleanup(c.Close)
	return c
}

func killAll(c *game.Controller, kind core.Kind) int {
	n := 0
	for _, e := range c.Snapshot().Entities {
		if e.Kind == kind {
			c.Hit(e.ID, e.X, e.Y)
			n++
		}
	}
	return n
}

func steps(c *game.Controller, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestStart_FirstLevel(t *testing.T) {
	c := newController(t, stubProvider{system: "Trojan detected in RAM!"}, nil)
	require.Equal(t, core.StateIdle, c.Session().State)
	assert.Equal(t, core.MsgIdle, c.Session().SystemMessage)

	require.NoError(t, c.Start())
	snap := c.Snapshot()

	assert.Equal(t, core.StatePlaying, snap.State)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 60, snap.TimeLeft)
	assert.Zero(t, snap.Score)
	assert.Equal(t, "Trojan.Win32", snap.BossName)
	assert.NotEmpty(t, snap.RunID)
	assert.Equal(t, 12, snap.Count(core.KindWeak))
	assert.Len(t, snap.Entities, 12)

	c.Flush()
	assert.Equal(t, "Trojan detected in RAM!", c.Session().SystemMessage)
}

func TestBossAppearsOnceTheWaveIsCleared(t *testing.T) {
	c := newController(t, stubProvider{system: "alert", taunt: "You can't delete me!"}, nil)
	require.NoError(t, c.Start())

	assert.Equal(t, 12, killAll(c, core.KindWeak))
	assert.Equal(t, 12*core.BugScore, c.Session().Score)
	require.True(t, c.Step())

	boss, ok := c.Snapshot().Boss()
	require.True(t, ok)
	assert.Equal(t, 15, boss.Health)
	assert.Equal(t, 15, boss.MaxHealth)
	assert.Equal(t, fmt.Sprintf(core.MsgBossFormat, "Trojan.Win32"), c.Session().SystemMessage)

	c.Flush()
	assert.Equal(t, "You can't delete me!", c.Session().BossTaunt)
	assert.Equal(t, fmt.Sprintf(core.MsgBossFormat, "Trojan.Win32"), c.Session().SystemMessage,
		"a late level alert never replaces the boss warning")
}

func TestLevelProgression(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)
	require.NoError(t, c.Start())
	runID := c.Session().RunID
	killAll(c, core.KindWeak)
	c.Step()

	boss, ok := c.Snapshot().Boss()
	require.True(t, ok)
	for i := 0; i < 15; i++ {
		c.Hit(boss.ID, boss.X, boss.Y)
	}

	assert.Equal(t, core.StateLevelComplete, c.Session().State)
	assert.Equal(t, core.MsgLevelComplete, c.Session().SystemMessage)
	assert.Equal(t, 12*core.BugScore+core.BossScore, c.Session().Score)
	assert.False(t, c.Step(), "no ticks between levels")

	require.NoError(t, c.Advance())
	snap := c.Snapshot()
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, 90, snap.TimeLeft)
	assert.Equal(t, 25, snap.Count(core.KindWeak))
	assert.Equal(t, 12*core.BugScore+core.BossScore, snap.Score, "score carries over")
	assert.Equal(t, runID, snap.RunID)
	assert.Empty(t, snap.Effects, "effects are cleared between levels")
}

func TestProviderFailureFallsBack(t *testing.T) {
	c := newController(t, stubProvider{err: errors.New("503 unavailable")}, nil)
	require.NoError(t, c.Start())
	c.Flush()

	assert.Equal(t, flavor.SystemFallback("Trojan.Win32"), c.Session().SystemMessage)

	// the game keeps going: thin the wave and wait for a whole second
	snap := c.Snapshot()
	for _, e := range snap.Entities[:8] {
		c.Hit(e.ID, e.X, e.Y)
	}
	steps(c, 60)

	snap = c.Snapshot()
	assert.Equal(t, core.StatePlaying, snap.State)
	assert.Equal(t, 59, snap.TimeLeft)
	assert.Equal(t, 1, snap.Count(core.KindMedium), "one replenishment per second")
	assert.Equal(t, 4, snap.Count(core.KindWeak))
}

func TestBossTauntFallback(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)
	require.NoError(t, c.Start())
	killAll(c, core.KindWeak)
	c.Step()
	c.Flush()

	assert.Equal(t, flavor.TauntFallback, c.Session().BossTaunt)
}

func TestTimeoutEndsTheRun(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)
	require.NoError(t, c.Start())
	firstRun := c.Session().RunID

	steps(c, 60*60)

	assert.Equal(t, core.StateGameOver, c.Session().State)
	assert.Zero(t, c.Session().TimeLeft)
	assert.False(t, c.Step())
	assert.ErrorIs(t, c.Advance(), core.ErrInvalidTransition)

	require.NoError(t, c.Restart())
	assert.Equal(t, core.StatePlaying, c.Session().State)
	assert.Equal(t, 1, c.Session().Level)
	assert.Zero(t, c.Session().Score)
	assert.Equal(t, 60, c.Session().TimeLeft)
	assert.NotEqual(t, firstRun, c.Session().RunID)
	assert.Equal(t, 12, c.Snapshot().Count(core.KindWeak))
}

func TestLateSystemMessageOnlyOverwritesText(t *testing.T) {
	p := &slowFirstProvider{release: make(chan struct{})}
	c := newController(t, p, nil)
	require.NoError(t, c.Start())
	steps(c, 60*60)
	require.Equal(t, core.StateGameOver, c.Session().State)

	require.NoError(t, c.Restart())
	require.Eventually(t, func() bool {
		c.Step()
		return c.Session().SystemMessage == "fresh alert"
	}, 2*time.Second, time.Millisecond)
	before := c.Snapshot()

	close(p.release)
	c.Flush()

	after := c.Snapshot()
	assert.Equal(t, "stale alert", after.SystemMessage)
	assert.Equal(t, core.StatePlaying, after.State)
	assert.Equal(t, before.RunID, after.RunID)
	assert.Equal(t, before.Level, after.Level)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.TimeLeft, after.TimeLeft)
	assert.Len(t, after.Entities, len(before.Entities))
}

func TestInvalidTransitionsLeaveStateAlone(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)

	assert.ErrorIs(t, c.Advance(), core.ErrInvalidTransition)
	assert.ErrorIs(t, c.Restart(), core.ErrInvalidTransition)
	assert.Equal(t, core.StateIdle, c.Session().State)

	require.NoError(t, c.Start())
	assert.ErrorIs(t, c.Start(), core.ErrInvalidTransition)
	assert.ErrorIs(t, c.Restart(), core.ErrInvalidTransition)
	assert.ErrorIs(t, c.Advance(), core.ErrInvalidTransition)
	assert.Equal(t, core.StatePlaying, c.Session().State)
	assert.Equal(t, 12, c.Snapshot().Count(core.KindWeak))
}

func TestHitOnStaleEntityIsIgnored(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)
	require.NoError(t, c.Start())
	e := c.Snapshot().Entities[0]

	c.Hit(e.ID, e.X, e.Y)
	c.Hit(e.ID, e.X, e.Y)

	assert.Equal(t, core.BugScore, c.Session().Score)
	assert.Len(t, c.Snapshot().Entities, 11)
}

func TestHitIgnoredWhileIdle(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)

	c.Hit(1, 0, 0)

	assert.Zero(t, c.Session().Score)
	assert.False(t, c.Step())
}

func TestResizeKeepsCreaturesInside(t *testing.T) {
	c := newController(t, flavor.Offline{}, nil)
	require.NoError(t, c.Start())

	c.Resize(400, 300)
	c.Step()

	for _, e := range c.Snapshot().Entities {
		assert.LessOrEqual(t, e.X, 400.0)
		assert.LessOrEqual(t, e.Y, 300.0-core.BottomBand)
		assert.GreaterOrEqual(t, e.Y, core.TopMargin)
	}
}

func TestPublishesEverySixTicks(t *testing.T) {
	rec := &recorder{}
	c := newController(t, flavor.Offline{}, rec)
	require.NoError(t, c.Start())
	require.Len(t, rec.frames, 1, "level start is always published")

	steps(c, 12)

	require.Len(t, rec.frames, 3)
	assert.Equal(t, uint64(6), rec.frames[1].Tick)
	assert.Equal(t, uint64(12), rec.frames[2].Tick)

	e := c.Snapshot().Entities[0]
	c.Hit(e.ID, e.X, e.Y)
	assert.Len(t, rec.frames, 4, "kills are published immediately")
}
