package timer

import (
	"errors"
	"fmt"
	"time"
)

type Phase string

const (
	PhaseIdle Phase = "idle"
	PhaseWork Phase = "work"
	PhaseRest Phase = "rest"
	PhaseDone Phase = "done"
)

type CueType string

const (
	CueCountdown   CueType = "countdown"
	CuePhaseChange CueType = "phase_change"
	CueRoundStart  CueType = "round_start"
	CueFinish      CueType = "finish"
)

// Cue tells the client to beep or vibrate. At is the elapsed time in ms.
type Cue struct {
	Type    CueType `json:"type"`
	Phase   Phase   `json:"phase,omitempty"`
	Round   int     `json:"round,omitempty"`
	Seconds int     `json:"seconds,omitempty"`
	At      int64   `json:"at"`
}

type Action string

const (
	ActionStart  Action = "start"
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionReset  Action = "reset"
	ActionSkip   Action = "skip"
	ActionLap    Action = "lap"
)

var ErrInvalidAction = errors.New("invalid timer action")

// Snapshot is the client facing state; durations are in milliseconds.
type Snapshot struct {
	Mode            Mode    `json:"mode"`
	Phase           Phase   `json:"phase"`
	Round           int     `json:"round"`
	Rounds          int     `json:"rounds"`
	Remaining       int64   `json:"remaining"`
	PhaseDuration   int64   `json:"phase_duration"`
	Elapsed         int64   `json:"elapsed"`
	Total           int64   `json:"total"`
	Running         bool    `json:"running"`
	Laps            []int64 `json:"laps,omitempty"`
	RoundsCompleted int     `json:"rounds_completed,omitempty"`
}

// Timer is the interval timer state machine. It has no clock of its own:
// time only moves through Advance, which makes it deterministic to test.
// A Timer is not safe for concurrent use, the Runner owns it.
type Timer struct {
	program Program
	plan    *Plan

	phase   Phase
	seg     int
	inSeg   time.Duration
	elapsed time.Duration
	running bool

	laps            []time.Duration
	roundsCompleted int
}

func New(cfg Config) (*Timer, error) {
	p, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	return &Timer{
		program: p,
		plan:    p.Plan(),
		phase:   PhaseIdle,
	}, nil
}

func (t *Timer) Program() Program {
	return t.program
}

func (t *Timer) Phase() Phase {
	return t.phase
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Finished() bool {
	return t.phase == PhaseDone
}

func (t *Timer) Apply(action Action) ([]Cue, error) {
	switch action {
	case ActionStart:
		return t.Start()
	case ActionPause:
		return nil, t.Pause()
	case ActionResume:
		return nil, t.Resume()
	case ActionReset:
		t.Reset()
		return nil, nil
	case ActionSkip:
		return t.Skip()
	case ActionLap:
		return nil, t.Lap()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
}

func (t *Timer) Start() ([]Cue, error) {
	if t.phase != PhaseIdle {
		return nil, fmt.Errorf("%w: start while %s", ErrInvalidAction, t.phase)
	}
	t.running = true
	return t.enter(0), nil
}

func (t *Timer) Pause() error {
	if !t.running {
		return fmt.Errorf("%w: pause while not running", ErrInvalidAction)
	}
	t.running = false
	return nil
}

func (t *Timer) Resume() error {
	if t.running || t.phase == PhaseIdle || t.phase == PhaseDone {
		return fmt.Errorf("%w: resume while %s", ErrInvalidAction, t.phase)
	}
	t.running = true
	return nil
}

func (t *Timer) Reset() {
	t.phase = PhaseIdle
	t.seg = 0
	t.inSeg = 0
	t.elapsed = 0
	t.running = false
	t.laps = nil
	t.roundsCompleted = 0
}

// Skip ends the current phase early and moves on to the next one.
func (t *Timer) Skip() ([]Cue, error) {
	if t.plan.OpenEnded || t.phase == PhaseIdle || t.phase == PhaseDone {
		return nil, fmt.Errorf("%w: skip while %s", ErrInvalidAction, t.phase)
	}
	t.elapsed += t.plan.Segments[t.seg].length() - t.inSeg
	return t.enter(t.seg + 1), nil
}

// Lap records a stopwatch split, or a finished round in AMRAP.
func (t *Timer) Lap() error {
	if t.phase != PhaseWork {
		return fmt.Errorf("%w: lap while %s", ErrInvalidAction, t.phase)
	}
	switch t.program.Mode {
	case ModeStopwatch:
		t.laps = append(t.laps, t.elapsed)
	case ModeAMRAP:
		t.roundsCompleted++
	default:
		return fmt.Errorf("%w: no laps in %s", ErrInvalidAction, t.program.Mode)
	}
	return nil
}

// Advance moves the clock forward by dt and returns the cues of every
// boundary crossed on the way; a single call can cross several phases.
func (t *Timer) Advance(dt time.Duration) []Cue {
	if !t.running || dt <= 0 {
		return nil
	}
	if t.plan.OpenEnded {
		t.elapsed += dt
		return nil
	}

	var cues []Cue
	for dt > 0 && t.phase != PhaseDone {
		seg := t.plan.Segments[t.seg]
		left := seg.length() - t.inSeg
		if dt < left {
			cues = append(cues, t.countdown(seg, t.inSeg, t.inSeg+dt)...)
			t.inSeg += dt
			t.elapsed += dt
			break
		}

		cues = append(cues, t.countdown(seg, t.inSeg, seg.length())...)
		t.elapsed += left
		dt -= left
		cues = append(cues, t.enter(t.seg+1)...)
	}
	return cues
}

// countdown emits a cue for each of the last whole seconds of a segment
// that the remaining time reaches while moving from `from` to `to`.
func (t *Timer) countdown(seg Segment, from, to time.Duration) []Cue {
	var cues []Cue
	length := seg.length()
	for k := t.program.Countdown; k >= 1; k-- {
		mark := length - seconds(k)
		if mark <= 0 {
			continue
		}
		if from < mark && mark <= to {
			cues = append(cues, Cue{
				Type:    CueCountdown,
				Phase:   seg.Phase,
				Round:   seg.Round,
				Seconds: k,
				At:      (t.elapsed + mark - from).Milliseconds(),
			})
		}
	}
	return cues
}

func (t *Timer) enter(i int) []Cue {
	at := t.elapsed.Milliseconds()
	prevRound := 0
	if t.phase != PhaseIdle {
		prevRound = t.plan.Segments[t.seg].Round
	}

	if i >= len(t.plan.Segments) {
		t.phase = PhaseDone
		t.running = false
		t.inSeg = 0
		return []Cue{{Type: CueFinish, At: at}}
	}

	seg := t.plan.Segments[i]
	t.seg = i
	t.inSeg = 0
	t.phase = seg.Phase

	cues := []Cue{{Type: CuePhaseChange, Phase: seg.Phase, Round: seg.Round, At: at}}
	if seg.Round != prevRound {
		cues = append(cues, Cue{Type: CueRoundStart, Phase: seg.Phase, Round: seg.Round, At: at})
	}
	return cues
}

func (t *Timer) Snapshot() Snapshot {
	s := Snapshot{
		Mode:            t.program.Mode,
		Phase:           t.phase,
		Rounds:          t.program.Rounds,
		Elapsed:         t.elapsed.Milliseconds(),
		Total:           seconds(t.plan.Total).Milliseconds(),
		Running:         t.running,
		RoundsCompleted: t.roundsCompleted,
	}
	for _, l := range t.laps {
		s.Laps = append(s.Laps, l.Milliseconds())
	}

	switch t.phase {
	case PhaseWork, PhaseRest:
		seg := t.plan.Segments[t.seg]
		s.Round = seg.Round
		if !t.plan.OpenEnded {
			s.PhaseDuration = seg.length().Milliseconds()
			s.Remaining = (seg.length() - t.inSeg).Milliseconds()
		}
	case PhaseDone:
		if n := len(t.plan.Segments); n > 0 {
			s.Round = t.plan.Segments[n-1].Round
		}
	}
	return s
}
