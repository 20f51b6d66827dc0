package calculators_test

import (
	"testing"

	"github.com/2beens/fitcalc/internal/calculators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	c := calculators.NewBMI()

	res := calculate[calculators.BMIResult](t, c, `{"weight": 80, "height": 180}`)
	assert.Equal(t, 24.7, res.BMI)
	assert.Equal(t, "normal", res.Category)
	assert.Equal(t, 59.9, res.HealthyWeightMinKg)
	assert.Equal(t, 80.7, res.HealthyWeightMaxKg)

	imperial := calculate[calculators.BMIResult](t, c, `{"weight": 176.37, "height": 70.8661417, "units": "imperial"}`)
	assert.Equal(t, res, imperial)

	outcome, err := c.Calculate([]byte(`{"weight": 80, "height": 180}`))
	require.NoError(t, err)
	assert.Equal(t, "bmi", outcome.Calculator)
	assert.Equal(t, "My BMI is 24.7 (normal)", outcome.Summary)
}

func TestBMICategory(t *testing.T) {
	for bmi, category := range map[float64]string{
		10:   "underweight",
		18.4: "underweight",
		18.5: "normal",
		24.9: "normal",
		25:   "overweight",
		29.9: "overweight",
		30:   "obese_class_1",
		35:   "obese_class_2",
		39.9: "obese_class_2",
		40:   "obese_class_3",
	} {
		assert.Equal(t, category, calculators.BMICategory(bmi), bmi)
	}
}

func TestBMI_Validation(t *testing.T) {
	c := calculators.NewBMI()

	vErr := validationErr(t, c, ``)
	assert.Equal(t, "weight is required", vErr.Message("weight"))
	assert.Equal(t, "height is required", vErr.Message("height"))

	vErr = validationErr(t, c, `{"weight": 80, "height": 20}`)
	assert.Equal(t, "height must be at least 50", vErr.Message("height"))
	assert.Empty(t, vErr.Message("weight"))

	vErr = validationErr(t, c, `{"weight": -3, "height": 180}`)
	assert.Equal(t, "weight must be greater than 0", vErr.Message("weight"))

	vErr = validationErr(t, c, `{"weight": "heavy", "height": 180}`)
	assert.Equal(t, "weight must be a number", vErr.Message("weight"))

	vErr = validationErr(t, c, `{"weight": 80, "height": 180, "units": "stone"}`)
	assert.Equal(t, "units must be one of: metric, imperial", vErr.Message("units"))
}

func TestBMI_MalformedInput(t *testing.T) {
	c := calculators.NewBMI()

	for _, body := range []string{
		`{"weight": 80,`,
		`{"weight": 80, "height": 180, "age": 30}`,
		`{"weight": 80, "height": 180} {}`,
		`[1, 2]`,
	} {
		_, err := c.Calculate([]byte(body))
		assert.ErrorIs(t, err, calculators.ErrMalformedInput, body)
	}
}

func TestBodyFat_Male(t *testing.T) {
	c := calculators.NewBodyFat()

	res := calculate[calculators.BodyFatResult](t, c, `{"sex": "male", "height": 180, "waist": 85, "neck": 38}`)
	assert.Equal(t, 16.1, res.BodyFat)
	assert.Equal(t, "fitness", res.Category)
	assert.Nil(t, res.FatMassKg)
	assert.Nil(t, res.LeanMassKg)

	res = calculate[calculators.BodyFatResult](t, c, `{"sex": "male", "height": 180, "waist": 85, "neck": 38, "weight": 80}`)
	require.NotNil(t, res.FatMassKg)
	require.NotNil(t, res.LeanMassKg)
	assert.Equal(t, 12.9, *res.FatMassKg)
	assert.Equal(t, 67.1, *res.LeanMassKg)
}

func TestBodyFat_Female(t *testing.T) {
	c := calculators.NewBodyFat()

	res := calculate[calculators.BodyFatResult](t, c, `{"sex": "female", "height": 165, "waist": 70, "hip": 95, "neck": 33}`)
	assert.Equal(t, 24.3, res.BodyFat)
	assert.Equal(t, "fitness", res.Category)

	vErr := validationErr(t, c, `{"sex": "female", "height": 165, "waist": 70, "neck": 33}`)
	assert.Equal(t, "hip is required", vErr.Message("hip"))
}

func TestBodyFat_WaistMustExceedNeck(t *testing.T) {
	vErr := validationErr(t, calculators.NewBodyFat(), `{"sex": "male", "height": 180, "waist": 38, "neck": 38}`)
	assert.Equal(t, "waist must be greater than neck", vErr.Message("waist"))
}

func TestBodyFatCategory(t *testing.T) {
	assert.Equal(t, "essential", calculators.BodyFatCategory(calculators.SexMale, 5.9))
	assert.Equal(t, "athletes", calculators.BodyFatCategory(calculators.SexMale, 6))
	assert.Equal(t, "fitness", calculators.BodyFatCategory(calculators.SexMale, 14))
	assert.Equal(t, "average", calculators.BodyFatCategory(calculators.SexMale, 18))
	assert.Equal(t, "obese", calculators.BodyFatCategory(calculators.SexMale, 25))

	assert.Equal(t, "essential", calculators.BodyFatCategory(calculators.SexFemale, 13.9))
	assert.Equal(t, "athletes", calculators.BodyFatCategory(calculators.SexFemale, 14))
	assert.Equal(t, "fitness", calculators.BodyFatCategory(calculators.SexFemale, 21))
	assert.Equal(t, "average", calculators.BodyFatCategory(calculators.SexFemale, 25))
	assert.Equal(t, "obese", calculators.BodyFatCategory(calculators.SexFemale, 32))
}

func TestFFMICategory(t *testing.T) {
	testCases := []struct {
		sex      string
		ffmi     float64
		expected string
	}{
		{calculators.SexMale, 17.9, "below_average"},
		{calculators.SexMale, 18, "average"},
		{calculators.SexMale, 19.9, "average"},
		{calculators.SexMale, 20, "above_average"},
		{calculators.SexMale, 22, "excellent"},
		{calculators.SexMale, 23, "superior"},
		{calculators.SexMale, 25.9, "superior"},
		{calculators.SexMale, 26, "suspicious"},

		{calculators.SexFemale, 14.9, "below_average"},
		{calculators.SexFemale, 15, "average"},
		{calculators.SexFemale, 17, "above_average"},
		{calculators.SexFemale, 18, "excellent"},
		{calculators.SexFemale, 19, "superior"},
		{calculators.SexFemale, 21.4, "superior"},
		{calculators.SexFemale, 21.5, "suspicious"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, calculators.FFMICategory(tc.sex, tc.ffmi), "%s %v", tc.sex, tc.ffmi)
	}
}

func TestFFMI(t *testing.T) {
	c := calculators.NewFFMI()

	res := calculate[calculators.FFMIResult](t, c, `{"sex": "male", "weight": 80, "height": 180, "body_fat": 15}`)
	assert.Equal(t, 68.0, res.LeanMassKg)
	assert.Equal(t, 21.0, res.FFMI)
	assert.Equal(t, 21.0, res.NormalizedFFMI)
	assert.Equal(t, "above_average", res.Category)

	res = calculate[calculators.FFMIResult](t, c, `{"sex": "male", "weight": 70, "height": 175, "body_fat": 20}`)
	assert.Equal(t, 56.0, res.LeanMassKg)
	assert.Equal(t, 18.3, res.FFMI)
	assert.Equal(t, 18.6, res.NormalizedFFMI)
	assert.Equal(t, "average", res.Category)

	res = calculate[calculators.FFMIResult](t, c, `{"sex": "female", "weight": 80, "height": 180, "body_fat": 10}`)
	assert.Equal(t, 72.0, res.LeanMassKg)
	assert.Equal(t, 22.2, res.NormalizedFFMI)
	assert.Equal(t, "suspicious", res.Category)

	vErr := validationErr(t, c, `{"sex": "male", "weight": 80, "height": 180, "body_fat": 1}`)
	assert.Equal(t, "body_fat must be at least 2", vErr.Message("body_fat"))
}
