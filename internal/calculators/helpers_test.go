package calculators_test

import (
	"testing"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/validation"

	"github.com/stretchr/testify/require"
)

func calculate[T any](t *testing.T, c calculators.Calculator, body string) T {
	t.Helper()
	outcome, err := c.Calculate([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, outcome)
	res, ok := outcome.Result.(T)
	require.True(t, ok, "unexpected result type %T", outcome.Result)
	return res
}

func validationErr(t *testing.T, c calculators.Calculator, body string) *validation.Error {
	t.Helper()
	_, err := c.Calculate([]byte(body))
	require.Error(t, err)
	vErr, ok := validation.AsError(err)
	require.True(t, ok, "expected a validation error, got: %s", err)
	return vErr
}
