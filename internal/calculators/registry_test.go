package calculators_test

import (
	"strings"
	"testing"

	"github.com/2beens/fitcalc/internal/calculators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := calculators.NewDefaultRegistry()

	slugs := r.Slugs()
	assert.Len(t, slugs, 16)
	assert.Equal(t, "bmi", slugs[0])
	assert.Contains(t, slugs, "vdot")
	assert.Contains(t, slugs, "tire-pressure")

	list := r.List()
	require.Len(t, list, 16)
	for i, m := range list {
		assert.Nil(t, m.Fields, m.Slug)
		assert.Equal(t, "/calculators/"+m.Slug, m.Path)
		assert.NotEmpty(t, m.Title, m.Slug)
		assert.NotEmpty(t, m.Summary, m.Slug)
		if i > 0 {
			assert.LessOrEqual(t, list[i-1].Category, m.Category)
		}
	}
	assert.Equal(t, "bmi", list[0].Slug)
	assert.Equal(t, "strength", list[15].Category)
}

func TestRegistry_Describe(t *testing.T) {
	r := calculators.NewDefaultRegistry()

	for _, slug := range r.Slugs() {
		desc, err := r.Describe(slug)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, desc.Fields, slug)
		assert.NotEmpty(t, desc.HTML, slug)
	}

	desc, err := r.Describe("bmi")
	require.NoError(t, err)
	assert.Contains(t, desc.HTML, "<table>")
	assert.Contains(t, desc.HTML, "<em>overweight</em>")
	assert.True(t, strings.HasPrefix(desc.Meta.Markdown(), "Body mass index"))

	again, err := r.Describe("bmi")
	require.NoError(t, err)
	assert.Equal(t, desc.HTML, again.HTML)
}

func TestRegistry_Unknown(t *testing.T) {
	r := calculators.NewDefaultRegistry()

	_, err := r.Get("astrology")
	assert.ErrorIs(t, err, calculators.ErrUnknownCalculator)
	_, err = r.Describe("astrology")
	assert.ErrorIs(t, err, calculators.ErrUnknownCalculator)
	_, err = r.Calculate("astrology", []byte(`{}`))
	assert.ErrorIs(t, err, calculators.ErrUnknownCalculator)
}

func TestRegistry_Calculate(t *testing.T) {
	outcome, err := calculators.NewDefaultRegistry().Calculate("bmi", []byte(`{"weight": 80, "height": 180}`))
	require.NoError(t, err)
	assert.Equal(t, "BMI Calculator", outcome.Title)
	assert.Equal(t, calculators.BMIInput{Weight: 80, Height: 180}, outcome.Input)
}

func TestNewRegistry_DuplicateSlugPanics(t *testing.T) {
	assert.Panics(t, func() {
		calculators.NewRegistry(calculators.NewBMI(), calculators.NewBMI())
	})
}
