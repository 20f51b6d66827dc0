package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/timer"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(calculators.NewDefaultRegistry())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(calculators.NewDefaultRegistry().List())+1)
	assert.True(t, strings.HasPrefix(lines[0], "SLUG"))
	assert.Contains(t, out, "bmi")
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "bmi")
	require.NoError(t, err)
	assert.Contains(t, out, "BMI Calculator (bmi)")
	assert.Contains(t, out, "weight")
	assert.Contains(t, out, "metric|imperial")
	assert.Contains(t, out, "obese class 1")

	_, err = execute(t, "describe", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown calculator "nope"`)
}

func TestCalc(t *testing.T) {
	t.Run("json input", func(t *testing.T) {
		out, err := execute(t, "calc", "bmi", "--json", `{"weight": 80, "height": 180}`)
		require.NoError(t, err)
		assert.Contains(t, out, "My BMI is 24.7")
		assert.Contains(t, out, `"bmi": 24.7`)
	})

	t.Run("set flags", func(t *testing.T) {
		out, err := execute(t, "calc", "bmi", "--set", "weight=80", "--set", "height=180", "-o", "json")
		require.NoError(t, err)

		var outcome struct {
			Calculator string         `json:"calculator"`
			Result     map[string]any `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &outcome))
		assert.Equal(t, "bmi", outcome.Calculator)
		assert.Equal(t, 24.7, outcome.Result["bmi"])
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := execute(t, "calc", "bmi", "--json", `{"weight": 80}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "height")
	})

	t.Run("bad set", func(t *testing.T) {
		_, err := execute(t, "calc", "bmi", "--set", "weight")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := execute(t, "calc", "bmi", "--json", `{"weight": `)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("both inputs", func(t *testing.T) {
		_, err := execute(t, "calc", "bmi", "--json", `{}`, "--set", "weight=80")
		require.Error(t, err)
	})
}

func TestTimerPlan(t *testing.T) {
	out, err := execute(t, "timer", "plan", "--mode", "tabata", "--rounds", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "tabata: 2 rounds, 00:50 total")
	assert.Contains(t, out, "[00:20] round 1 rest")
	assert.Contains(t, out, "[00:30] round 2 work")

	out, err = execute(t, "timer", "plan", "--mode", "hiit", "--work", "45s", "--rest", "0s", "--rounds", "3", "--json")
	require.NoError(t, err)
	var plan timer.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 135, plan.Total)
	assert.Len(t, plan.Segments, 3)

	out, err = execute(t, "timer", "plan", "--mode", "stopwatch")
	require.NoError(t, err)
	assert.Contains(t, out, "open ended")

	_, err = execute(t, "timer", "plan", "--mode", "yoga")
	require.Error(t, err)
}

func TestRunTimer(t *testing.T) {
	tm, err := timer.New(timer.Config{
		Mode:      timer.ModeHIIT,
		Work:      1,
		Rest:      timer.IntPtr(0),
		Rounds:    1,
		Countdown: timer.IntPtr(0),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := &bytes.Buffer{}
	require.NoError(t, runTimer(ctx, out, tm, 10*time.Millisecond))

	assert.Equal(t, "[00:00] work\n[00:00] round 1/1\n[00:01] finished\n", out.String())
}

func TestRunTimer_Interrupted(t *testing.T) {
	tm, err := timer.New(timer.Config{Mode: timer.ModeStopwatch})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	out := &bytes.Buffer{}
	require.NoError(t, runTimer(ctx, out, tm, 10*time.Millisecond))
	assert.Contains(t, out.String(), "stopped")
}

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00", clock(0))
	assert.Equal(t, "00:59", clock(59_999))
	assert.Equal(t, "03:50", clock(230_000))
	assert.Equal(t, "61:01", clock(3_661_000))
}
