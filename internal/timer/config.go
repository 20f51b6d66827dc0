package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcalc/internal/validation"
)

type Mode string

const (
	ModeStopwatch Mode = "stopwatch"
	ModeHIIT      Mode = "hiit"
	ModeTabata    Mode = "tabata"
	ModeEMOM      Mode = "emom"
	ModeAMRAP     Mode = "amrap"
)

var Modes = []Mode{ModeStopwatch, ModeHIIT, ModeTabata, ModeEMOM, ModeAMRAP}

const DefaultCountdown = 3

var ErrUnknownMode = errors.New("unknown timer mode")

// Config is what a client asks for; all durations are in whole seconds.
// Zero values are replaced with the mode defaults. Rest and Countdown are
// pointers because zero is a meaningful choice for both.
type Config struct {
	Mode      Mode `json:"mode" validate:"required,oneof=stopwatch hiit tabata emom amrap"`
	Work      int  `json:"work,omitempty" validate:"omitempty,gte=1,lte=3600"`
	Rest      *int `json:"rest,omitempty" validate:"omitempty,gte=0,lte=3600"`
	Rounds    int  `json:"rounds,omitempty" validate:"omitempty,gte=1,lte=100"`
	Total     int  `json:"total,omitempty" validate:"omitempty,gte=1,lte=86400"`
	Interval  int  `json:"interval,omitempty" validate:"omitempty,gte=1,lte=3600"`
	Countdown *int `json:"countdown,omitempty" validate:"omitempty,gte=0,lte=10"`
}

// Program is a validated Config with the mode defaults applied.
type Program struct {
	Mode      Mode          `json:"mode"`
	Work      time.Duration `json:"-"`
	Rest      time.Duration `json:"-"`
	Rounds    int           `json:"rounds"`
	Total     time.Duration `json:"-"`
	Interval  time.Duration `json:"-"`
	Countdown int           `json:"countdown"`
}

func seconds(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func IntPtr(v int) *int {
	return &v
}

func (c Config) Resolve() (Program, error) {
	if err := validation.Struct(c); err != nil {
		return Program{}, err
	}

	p := Program{
		Mode:      c.Mode,
		Rounds:    c.Rounds,
		Work:      seconds(c.Work),
		Total:     seconds(c.Total),
		Interval:  seconds(c.Interval),
		Countdown: DefaultCountdown,
	}
	if c.Rest != nil {
		p.Rest = seconds(*c.Rest)
	}
	if c.Countdown != nil {
		p.Countdown = *c.Countdown
	}

	defaults := func(work, rest time.Duration, rounds int) {
		if p.Work == 0 {
			p.Work = work
		}
		if c.Rest == nil {
			p.Rest = rest
		}
		if p.Rounds == 0 {
			p.Rounds = rounds
		}
	}

	switch c.Mode {
	case ModeStopwatch:
		p = Program{Mode: ModeStopwatch}
	case ModeTabata:
		defaults(20*time.Second, 10*time.Second, 8)
	case ModeHIIT:
		defaults(40*time.Second, 20*time.Second, 10)
	case ModeEMOM:
		if p.Interval == 0 {
			p.Interval = time.Minute
		}
		if p.Rounds == 0 {
			p.Rounds = 10
		}
		p.Work, p.Rest, p.Total = 0, 0, 0
	case ModeAMRAP:
		if p.Total == 0 {
			p.Total = 10 * time.Minute
		}
		p.Work, p.Rest, p.Interval, p.Rounds = 0, 0, 0, 0
	default:
		return Program{}, fmt.Errorf("%w: %s", ErrUnknownMode, c.Mode)
	}
	return p, nil
}
