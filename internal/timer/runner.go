package timer

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultFrameInterval = 100 * time.Millisecond

// Update is streamed to the client after every command and on every frame while running.
type Update struct {
	State Snapshot `json:"state"`
	Cues  []Cue    `json:"cues,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Runner drives a Timer from a ticker. The Timer is only ever touched from
// the Run goroutine; commands and updates go through channels.
type Runner struct {
	timer         *Timer
	frameInterval time.Duration
	commands      chan Action
	updates       chan Update
}

func NewRunner(timer *Timer, frameInterval time.Duration) *Runner {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &Runner{
		timer:         timer,
		frameInterval: frameInterval,
		commands:      make(chan Action),
		updates:       make(chan Update, 16),
	}
}

// Updates is closed when Run returns.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

func (r *Runner) Send(ctx context.Context, action Action) error {
	select {
	case r.commands <- action:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run blocks until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.updates)

	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()

	last := time.Now()
	if !r.publish(ctx, Update{State: r.timer.Snapshot()}) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case action := <-r.commands:
			// catch up first so the command applies at the right moment
			var dt time.Duration
			dt, last = sinceLast(last, time.Now())
			cues := r.timer.Advance(dt)

			actionCues, err := r.timer.Apply(action)
			upd := Update{Cues: append(cues, actionCues...)}
			if err != nil {
				log.Tracef("timer action %s: %s", action, err)
				upd.Error = err.Error()
			}
			upd.State = r.timer.Snapshot()
			if !r.publish(ctx, upd) {
				return
			}
		case tick := <-ticker.C:
			var dt time.Duration
			dt, last = sinceLast(last, tick)
			if !r.timer.Running() || dt == 0 {
				continue
			}
			cues := r.timer.Advance(dt)
			if !r.publish(ctx, Update{State: r.timer.Snapshot(), Cues: cues}) {
				return
			}
		}
	}
}

// sinceLast returns the time elapsed from last to now and the new reference.
// A tick stamped before the last command never moves the reference back.
func sinceLast(last, now time.Time) (time.Duration, time.Time) {
	if !now.After(last) {
		return 0, last
	}
	return now.Sub(last), now
}

func (r *Runner) publish(ctx context.Context, upd Update) bool {
	select {
	case r.updates <- upd:
		return true
	case <-ctx.Done():
		return false
	}
}
