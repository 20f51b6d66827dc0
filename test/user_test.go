//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcalc/internal/settings"
	"github.com/2beens/fitcalc/internal/timer"
	"github.com/2beens/fitcalc/internal/units"
)

func (s *IntegrationTestSuite) TestUserData() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, _ := s.doRequest(ctx, http.MethodGet, "/api/user/settings", nil, "")
	require.Equal(t, http.StatusUnauthorized, status)

	token := s.issueToken(ctx, 1001)

	// defaults before anything is saved
	status, body := s.doRequest(ctx, http.MethodGet, "/api/user/settings", nil, token)
	require.Equal(t, http.StatusOK, status)
	var userSettings settings.Settings
	require.NoError(t, json.Unmarshal(body, &userSettings))
	assert.Equal(t, units.Metric, userSettings.Units)
	assert.Equal(t, timer.ModeTabata, userSettings.DefaultTimerMode)
	assert.Nil(t, userSettings.UpdatedAt)

	status, body = s.doRequest(ctx, http.MethodPut, "/api/user/settings", map[string]any{
		"units":              "imperial",
		"sex":                "female",
		"height_cm":          168,
		"default_timer_mode": "emom",
		"sound":              false,
		"vibration":          true,
	}, token)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = s.doRequest(ctx, http.MethodGet, "/api/user/settings", nil, token)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &userSettings))
	assert.Equal(t, units.Imperial, userSettings.Units)
	assert.Equal(t, timer.ModeEMOM, userSettings.DefaultTimerMode)
	assert.Equal(t, 168.0, userSettings.HeightCm)
	assert.False(t, userSettings.Sound)
	assert.NotNil(t, userSettings.UpdatedAt)

	status, _ = s.doRequest(ctx, http.MethodPut, "/api/user/settings", map[string]any{
		"units":              "cubits",
		"default_timer_mode": "emom",
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	// history
	for _, weight := range []int{80, 79, 78} {
		status, body = s.doRequest(ctx, http.MethodPost, "/api/user/history", map[string]any{
			"calculator": "bmi",
			"input":      map[string]any{"weight": weight, "height": 180},
		}, token)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body = s.doRequest(ctx, http.MethodGet, "/api/user/history?page=1&size=2", nil, token)
	require.Equal(t, http.StatusOK, status)
	var history settings.HistoryPage
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Equal(t, 3, history.Total)
	require.Len(t, history.Items, 2)
	// newest first
	assert.Contains(t, history.Items[0].Summary, "24.1")

	status, body = s.doRequest(ctx, http.MethodGet, "/api/user/history?page=2&size=2", nil, token)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Items, 1)
	assert.Contains(t, history.Items[0].Summary, "24.7")

	status, _ = s.doRequest(ctx, http.MethodGet, "/api/user/history?page=0", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	// another user does not see any of it
	otherToken := s.issueToken(ctx, 1002)
	status, body = s.doRequest(ctx, http.MethodGet, "/api/user/history", nil, otherToken)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Equal(t, 0, history.Total)
	assert.Empty(t, history.Items)

	// export
	status, body = s.doRequest(ctx, http.MethodGet, "/api/user/export", nil, token)
	require.Equal(t, http.StatusOK, status)
	var export settings.Export
	require.NoError(t, json.Unmarshal(body, &export))
	assert.Equal(t, units.Imperial, export.Settings.Units)
	assert.Len(t, export.History, 3)

	// account deletion removes the data and the session
	status, _ = s.doRequest(ctx, http.MethodDelete, "/api/user/account", nil, token)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = s.doRequest(ctx, http.MethodGet, "/api/user/settings", nil, token)
	assert.Equal(t, http.StatusUnauthorized, status)

	var rows int
	require.NoError(t, s.DB.QueryRowContext(ctx, "SELECT count(*) FROM calculation WHERE user_id = $1", 1001).Scan(&rows))
	assert.Zero(t, rows)
	require.NoError(t, s.DB.QueryRowContext(ctx, "SELECT count(*) FROM user_settings WHERE user_id = $1", 1001).Scan(&rows))
	assert.Zero(t, rows)
}
