//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcalc/internal/timer"
)

func (s *IntegrationTestSuite) TestTimer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.doRequest(ctx, http.MethodPost, "/timer/plan", map[string]any{"mode": "tabata"}, "")
	require.Equal(t, http.StatusOK, status)
	var plan timer.Plan
	require.NoError(t, json.Unmarshal(body, &plan))
	assert.Equal(t, 8, plan.Rounds)
	assert.Equal(t, 230, plan.Total)

	wsEndpoint := strings.Replace(serverEndpoint, "http://", "ws://", 1) +
		"/timer/ws?mode=hiit&work=1&rest=0&rounds=1&countdown=0"
	header := http.Header{}
	header.Set("Origin", testOrigin)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsEndpoint, header)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(map[string]string{"action": "start"}))

	var cueTypes []timer.CueType
	for {
		var upd timer.Update
		require.NoError(t, conn.ReadJSON(&upd))
		for _, cue := range upd.Cues {
			cueTypes = append(cueTypes, cue.Type)
		}
		if upd.State.Phase == timer.PhaseDone {
			break
		}
	}
	assert.Equal(t, []timer.CueType{timer.CuePhaseChange, timer.CueRoundStart, timer.CueFinish}, cueTypes)
}
