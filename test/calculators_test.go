//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcalc/internal/calculators"
)

func (s *IntegrationTestSuite) TestCalculators() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, body := s.doRequest(ctx, http.MethodGet, "/calculators", nil, "")
	require.Equal(t, http.StatusOK, status)
	var metas []calculators.Meta
	require.NoError(t, json.Unmarshal(body, &metas))
	assert.Len(t, metas, len(calculators.NewDefaultRegistry().List()))

	status, body = s.doRequest(ctx, http.MethodGet, "/calculators/bmi", nil, "")
	require.Equal(t, http.StatusOK, status)
	var desc calculators.Description
	require.NoError(t, json.Unmarshal(body, &desc))
	assert.Equal(t, "bmi", desc.Slug)
	assert.Contains(t, desc.HTML, "<table>")

	status, body = s.doRequest(ctx, http.MethodPost, "/calculators/bmi", map[string]any{
		"units":  "imperial",
		"weight": 176,
		"height": 71,
	}, "")
	require.Equal(t, http.StatusOK, status)
	var outcome struct {
		Summary string `json:"summary"`
		Result  struct {
			BMI float64 `json:"bmi"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body, &outcome))
	assert.InDelta(t, 24.5, outcome.Result.BMI, 0.11)
	assert.Contains(t, outcome.Summary, "My BMI is")

	status, _ = s.doRequest(ctx, http.MethodPost, "/calculators/bmi", map[string]any{"weight": 80}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, http.MethodGet, "/calculators/astrology", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.doRequest(ctx, http.MethodGet, "/embed/bmi", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `action="https://fitcalc.test/calculators/bmi"`)
}
