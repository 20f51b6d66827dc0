package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/2beens/fitcalc/internal/timer"
)

type timerFlags struct {
	mode      string
	work      time.Duration
	rest      time.Duration
	rounds    int
	total     time.Duration
	interval  time.Duration
	countdown int
}

func (f *timerFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.mode, "mode", string(timer.ModeTabata), "timer mode: stopwatch, hiit, tabata, emom or amrap")
	fs.DurationVar(&f.work, "work", 0, "work phase length, e.g. 20s")
	fs.DurationVar(&f.rest, "rest", 0, "rest phase length, e.g. 10s")
	fs.IntVar(&f.rounds, "rounds", 0, "number of rounds")
	fs.DurationVar(&f.total, "total", 0, "total length of an amrap, e.g. 12m")
	fs.DurationVar(&f.interval, "interval", 0, "emom interval, e.g. 1m")
	fs.IntVar(&f.countdown, "countdown", timer.DefaultCountdown, "seconds of countdown cues before each phase ends")
}

func wholeSeconds(d time.Duration) int {
	return int(d / time.Second)
}

// config only carries the flags the user actually set, the rest fall back to the mode defaults.
func (f *timerFlags) config(fs *pflag.FlagSet) timer.Config {
	cfg := timer.Config{
		Mode:     timer.Mode(f.mode),
		Work:     wholeSeconds(f.work),
		Rounds:   f.rounds,
		Total:    wholeSeconds(f.total),
		Interval: wholeSeconds(f.interval),
	}
	if fs.Changed("rest") {
		cfg.Rest = timer.IntPtr(wholeSeconds(f.rest))
	}
	if fs.Changed("countdown") {
		cfg.Countdown = timer.IntPtr(f.countdown)
	}
	return cfg
}

func (a *app) timerCmd() *cobra.Command {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Plan or run an interval timer",
	}
	timerCmd.AddCommand(a.timerPlanCmd(), a.timerRunCmd())
	return timerCmd
}

func (a *app) timerPlanCmd() *cobra.Command {
	flags := &timerFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Print the schedule of a timer program",
		Example: "  fitcalc timer plan --mode tabata --work 20s --rest 10s --rounds 8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := timer.PlanFor(flags.config(cmd.Flags()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			printPlan(out, plan)
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")

	return cmd
}

func printPlan(out io.Writer, plan *timer.Plan) {
	if plan.OpenEnded {
		_, _ = fmt.Fprintf(out, "%s: open ended\n", plan.Mode)
	} else {
		_, _ = fmt.Fprintf(out, "%s: %d rounds, %s total\n", plan.Mode, plan.Rounds, clock(int64(plan.Total)*1000))
	}
	for _, seg := range plan.Segments {
		_, _ = fmt.Fprintf(out, "  [%s] round %d %-4s %ds\n", clock(int64(seg.Offset)*1000), seg.Round, seg.Phase, seg.Duration)
	}
}

func (a *app) timerRunCmd() *cobra.Command {
	flags := &timerFlags{}
	var frame time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a timer and print its cues until it finishes or is interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := timer.New(flags.config(cmd.Flags()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runTimer(ctx, cmd.OutOrStdout(), t, frame)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().DurationVar(&frame, "frame", timer.DefaultFrameInterval, "how often the timer advances")

	return cmd
}

func runTimer(ctx context.Context, out io.Writer, t *timer.Timer, frame time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := timer.NewRunner(t, frame)
	go runner.Run(ctx)

	if err := runner.Send(ctx, timer.ActionStart); err != nil {
		return err
	}

	for upd := range runner.Updates() {
		if upd.Error != "" {
			return fmt.Errorf("timer: %s", upd.Error)
		}
		for _, cue := range upd.Cues {
			printCue(out, cue, upd.State)
		}
		if upd.State.Phase == timer.PhaseDone {
			return nil
		}
	}

	// interrupted
	snap := t.Snapshot()
	_, _ = fmt.Fprintf(out, "[%s] stopped\n", clock(snap.Elapsed))
	if len(snap.Laps) > 0 {
		for i, lap := range snap.Laps {
			_, _ = fmt.Fprintf(out, "  lap %d: %s\n", i+1, clock(lap))
		}
	}
	return nil
}

func printCue(out io.Writer, cue timer.Cue, state timer.Snapshot) {
	at := clock(cue.At)
	switch cue.Type {
	case timer.CueCountdown:
		_, _ = fmt.Fprintf(out, "[%s] %d...\n", at, cue.Seconds)
	case timer.CuePhaseChange:
		_, _ = fmt.Fprintf(out, "[%s] %s\n", at, cue.Phase)
	case timer.CueRoundStart:
		if state.Rounds > 0 {
			_, _ = fmt.Fprintf(out, "[%s] round %d/%d\n", at, cue.Round, state.Rounds)
		} else {
			_, _ = fmt.Fprintf(out, "[%s] round %d\n", at, cue.Round)
		}
	case timer.CueFinish:
		_, _ = fmt.Fprintf(out, "[%s] finished\n", at)
	}
}

// clock formats milliseconds as mm:ss
func clock(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
