//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcalc/internal/share"
)

func (s *IntegrationTestSuite) TestShare() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.doRequest(ctx, http.MethodPost, "/share", map[string]any{
		"calculator": "bmi",
		"input":      map[string]any{"weight": 80, "height": 180},
	}, "")
	require.Equal(t, http.StatusCreated, status, string(body))

	var created share.Shared
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "https://fitcalc.test/share/"+created.ID, created.Links.URL)
	assert.True(t, strings.HasPrefix(created.Links.WhatsApp, "https://wa.me/?text="))
	assert.True(t, strings.HasPrefix(created.Links.Email, "mailto:?subject="))

	// the record lives in redis, so it is found without the local cache too
	ttl, err := s.redisClient.TTL(ctx, "share::"+created.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Hours(), float64(24))

	status, body = s.doRequest(ctx, http.MethodGet, "/share/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, status)
	var fetched share.Shared
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created.Summary, fetched.Summary)
	assert.JSONEq(t, string(created.Result), string(fetched.Result))

	status, _ = s.doRequest(ctx, http.MethodGet, "/share/not-a-share-id", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.doRequest(ctx, http.MethodPost, "/share", map[string]any{
		"calculator": "bmi",
		"input":      map[string]any{"weight": 80},
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}
