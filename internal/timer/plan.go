package timer

import "time"

// Segment is one contiguous phase of a program. Offsets and durations are in seconds.
type Segment struct {
	Phase    Phase `json:"phase"`
	Round    int   `json:"round"`
	Offset   int   `json:"offset"`
	Duration int   `json:"duration"`
}

func (s Segment) length() time.Duration {
	return seconds(s.Duration)
}

type Plan struct {
	Mode      Mode      `json:"mode"`
	Rounds    int       `json:"rounds"`
	Segments  []Segment `json:"segments"`
	Total     int       `json:"total"`
	OpenEnded bool      `json:"open_ended"`
}

// PlanFor lays out the whole schedule of a config without running it.
func PlanFor(cfg Config) (*Plan, error) {
	p, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	return p.Plan(), nil
}

func (p Program) Plan() *Plan {
	plan := &Plan{Mode: p.Mode, Rounds: p.Rounds}

	offset := 0
	add := func(phase Phase, round int, d time.Duration) {
		s := int(d / time.Second)
		if s <= 0 {
			return
		}
		plan.Segments = append(plan.Segments, Segment{Phase: phase, Round: round, Offset: offset, Duration: s})
		offset += s
	}

	switch p.Mode {
	case ModeStopwatch:
		plan.OpenEnded = true
		plan.Segments = []Segment{{Phase: PhaseWork, Round: 1}}
	case ModeAMRAP:
		add(PhaseWork, 1, p.Total)
	case ModeEMOM:
		for r := 1; r <= p.Rounds; r++ {
			add(PhaseWork, r, p.Interval)
		}
	default:
		for r := 1; r <= p.Rounds; r++ {
			add(PhaseWork, r, p.Work)
			// no rest after the final round
			if r < p.Rounds {
				add(PhaseRest, r, p.Rest)
			}
		}
	}

	plan.Total = offset
	return plan
}
