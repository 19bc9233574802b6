package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/younwookim/pogo/internal/application/replay"
	"github.com/younwookim/pogo/internal/application/scene/playing"
	"github.com/younwookim/pogo/internal/application/session"
	"github.com/younwookim/pogo/internal/application/state"
	"github.com/younwookim/pogo/internal/domain/physics"
	"github.com/younwookim/pogo/internal/infrastructure/config"
)

// loadTimeout bounds each level load during a headless replay
const loadTimeout = 10 * time.Second

// ReplayResult summarizes a headless replay run
type ReplayResult struct {
	Frames   int
	State    state.SessionState
	Position physics.Vec
	Health   int
	Coins    int
	Total    int
	Deaths   int
	Cleared  bool
}

func (r ReplayResult) String() string {
	return fmt.Sprintf("frames=%d state=%s pos=(%.2f, %.2f) health=%d coins=%d/%d deaths=%d cleared=%t",
		r.Frames, r.State, r.Position.X, r.Position.Y, r.Health, r.Coins, r.Total, r.Deaths, r.Cleared)
}

// RunReplay plays data against the level produced by load without a
// window. It stops when the recording ends, the level is cleared, or
// maxFrames simulated frames have run (0 means no limit).
func RunReplay(ctx context.Context, settings *config.Settings, load session.LoadFunc, data *replay.ReplayData, maxFrames int) (ReplayResult, error) {
	replayer := replay.NewReplayer(*data)
	feedback := &playing.Feedback{}
	death := playing.DeathClock{Duration: settings.Debug.DeathAnimation}
	dt := 1.0 / float64(settings.Display.Framerate)

	sess := session.New(feedback, float64(settings.Display.ScreenWidth), float64(settings.Display.ScreenHeight), replayer)
	sess.Logger = log.New(io.Discard, "", 0)
	defer sess.Exit()

	await := func() error {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		return sess.Await(ctx)
	}

	sess.Enter(load)
	if err := await(); err != nil {
		return ReplayResult{}, err
	}

	for !replayer.Done() && (maxFrames <= 0 || replayer.CurrentFrame() < maxFrames) {
		death.Advance(sess.Player(), dt)
		sess.Tick(dt)
		feedback.Update(dt)

		switch sess.State() {
		case state.StateLoading:
			if err := await(); err != nil {
				return ReplayResult{}, err
			}
		case state.StateCleared, state.StateExited, state.StateIdle:
			return summarize(sess, feedback, replayer.CurrentFrame()), nil
		}
	}

	return summarize(sess, feedback, replayer.CurrentFrame()), nil
}

func summarize(sess *session.Session, feedback *playing.Feedback, frames int) ReplayResult {
	r := ReplayResult{
		Frames:  frames,
		State:   sess.State(),
		Health:  feedback.Health,
		Coins:   feedback.Coins,
		Total:   feedback.CoinTotal,
		Deaths:  feedback.Deaths,
		Cleared: feedback.Cleared,
	}
	if p := sess.Player(); p != nil {
		r.Position = p.Pos
	}
	return r
}
