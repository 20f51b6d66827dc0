package calculators

import (
	"fmt"
	"math"

	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

type BMIInput struct {
	Weight float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	Height float64      `json:"height" validate:"required,gte=50,lte=272" label:"Height" unit:"cm|in"`
	Units  units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *BMIInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
	in.Height = units.LengthToCm(in.Height, in.Units)
}

type BMIResult struct {
	BMI                float64 `json:"bmi"`
	Category           string  `json:"category"`
	HealthyWeightMinKg float64 `json:"healthy_weight_min_kg"`
	HealthyWeightMaxKg float64 `json:"healthy_weight_max_kg"`
}

// BMICategory classifies a BMI value using the WHO adult bands. Lower bounds are inclusive.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	case bmi < 35:
		return "obese_class_1"
	case bmi < 40:
		return "obese_class_2"
	default:
		return "obese_class_3"
	}
}

func NewBMI() Calculator {
	return newCalc[BMIInput, BMIResult](
		Meta{
			Slug:     "bmi",
			Title:    "BMI Calculator",
			Category: "body",
			Summary:  "Body mass index with the WHO weight category and a healthy weight range for your height.",
			description: `Body mass index relates weight to height:

    BMI = weight (kg) / height (m)²

| BMI | Category |
|---|---|
| below 18.5 | underweight |
| 18.5 to 24.9 | normal |
| 25 to 29.9 | overweight |
| 30 to 34.9 | obese class 1 |
| 35 to 39.9 | obese class 2 |
| 40 and above | obese class 3 |

BMI does not tell fat from muscle. Muscular athletes often land in the *overweight* band.`,
		},
		nil,
		nil,
		func(in BMIInput) (BMIResult, error) {
			h := in.Height / 100
			bmi := pkg.Round(in.Weight/(h*h), 1)
			return BMIResult{
				BMI:                bmi,
				Category:           BMICategory(bmi),
				HealthyWeightMinKg: pkg.Round(18.5*h*h, 1),
				HealthyWeightMaxKg: pkg.Round(24.9*h*h, 1),
			}, nil
		},
		func(_ BMIInput, out BMIResult) string {
			return fmt.Sprintf("My BMI is %.1f (%s)", out.BMI, humanize(out.Category))
		},
	)
}

type BodyFatInput struct {
	Sex    string       `json:"sex" validate:"required,oneof=male female" label:"Sex"`
	Height float64      `json:"height" validate:"required,gte=50,lte=272" label:"Height" unit:"cm|in"`
	Waist  float64      `json:"waist" validate:"required,gt=0,lte=300" label:"Waist" unit:"cm|in" help:"Measured at the navel"`
	Neck   float64      `json:"neck" validate:"required,gt=0,lte=100" label:"Neck" unit:"cm|in" help:"Measured below the larynx"`
	Hip    float64      `json:"hip,omitempty" validate:"omitempty,gt=0,lte=300" label:"Hip" unit:"cm|in" help:"Women only, widest point"`
	Weight float64      `json:"weight,omitempty" validate:"omitempty,gt=0,lte=500" label:"Weight" unit:"kg|lb" help:"Optional, gives fat and lean mass"`
	Units  units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *BodyFatInput) normalize() {
	in.Height = units.LengthToCm(in.Height, in.Units)
	in.Waist = units.LengthToCm(in.Waist, in.Units)
	in.Neck = units.LengthToCm(in.Neck, in.Units)
	in.Hip = units.LengthToCm(in.Hip, in.Units)
	in.Weight = units.WeightToKg(in.Weight, in.Units)
}

type BodyFatResult struct {
	BodyFat    float64  `json:"body_fat"`
	Category   string   `json:"category"`
	FatMassKg  *float64 `json:"fat_mass_kg,omitempty"`
	LeanMassKg *float64 `json:"lean_mass_kg,omitempty"`
}

// NavyBodyFat implements the U.S. Navy circumference equations, all lengths in cm.
func NavyBodyFat(sex string, height, waist, neck, hip float64) float64 {
	if sex == SexFemale {
		return 495/(1.29579-0.35004*math.Log10(waist+hip-neck)+0.22100*math.Log10(height)) - 450
	}
	return 495/(1.0324-0.19077*math.Log10(waist-neck)+0.15456*math.Log10(height)) - 450
}

// BodyFatCategory uses the ACE bands; lower bounds are inclusive.
func BodyFatCategory(sex string, bodyFat float64) string {
	bounds := []float64{6, 14, 18, 25}
	if sex == SexFemale {
		bounds = []float64{14, 21, 25, 32}
	}
	labels := []string{"essential", "athletes", "fitness", "average"}
	for i, b := range bounds {
		if bodyFat < b {
			return labels[i]
		}
	}
	return "obese"
}

func checkBodyFat(in *BodyFatInput) error {
	if in.Sex == SexFemale {
		if in.Hip == 0 {
			return validation.NewError("hip", "hip is required")
		}
		if in.Waist+in.Hip <= in.Neck {
			return validation.NewError("waist", "waist plus hip must be greater than neck")
		}
		return nil
	}
	if in.Waist <= in.Neck {
		return validation.NewError("waist", "waist must be greater than neck")
	}
	return nil
}

func NewBodyFat() Calculator {
	return newCalc[BodyFatInput, BodyFatResult](
		Meta{
			Slug:     "body-fat",
			Title:    "Body Fat Calculator (U.S. Navy method)",
			Category: "body",
			Summary:  "Body fat percentage from height, waist, neck and hip circumference.",
			description: `The U.S. Navy method estimates body fat from circumferences (cm):

- men: ` + "`495 / (1.0324 − 0.19077·log10(waist − neck) + 0.15456·log10(height)) − 450`" + `
- women: ` + "`495 / (1.29579 − 0.35004·log10(waist + hip − neck) + 0.22100·log10(height)) − 450`" + `

Categories follow the American Council on Exercise:

| | Essential | Athletes | Fitness | Average | Obese |
|---|---|---|---|---|---|
| Men | < 6 % | 6–13 % | 14–17 % | 18–24 % | 25 % + |
| Women | < 14 % | 14–20 % | 21–24 % | 25–31 % | 32 % + |`,
		},
		nil,
		checkBodyFat,
		func(in BodyFatInput) (BodyFatResult, error) {
			bf := pkg.Round(math.Max(0, NavyBodyFat(in.Sex, in.Height, in.Waist, in.Neck, in.Hip)), 1)
			res := BodyFatResult{
				BodyFat:  bf,
				Category: BodyFatCategory(in.Sex, bf),
			}
			if in.Weight > 0 {
				fat := pkg.Round(in.Weight*bf/100, 1)
				lean := pkg.Round(in.Weight-in.Weight*bf/100, 1)
				res.FatMassKg = &fat
				res.LeanMassKg = &lean
			}
			return res, nil
		},
		func(_ BodyFatInput, out BodyFatResult) string {
			return fmt.Sprintf("My body fat is %.1f%% (%s)", out.BodyFat, humanize(out.Category))
		},
	)
}

type FFMIInput struct {
	Sex     string       `json:"sex" validate:"required,oneof=male female" label:"Sex"`
	Weight  float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	Height  float64      `json:"height" validate:"required,gte=50,lte=272" label:"Height" unit:"cm|in"`
	BodyFat float64      `json:"body_fat" validate:"required,gte=2,lte=70" label:"Body fat" unit:"%"`
	Units   units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *FFMIInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
	in.Height = units.LengthToCm(in.Height, in.Units)
}

type FFMIResult struct {
	LeanMassKg     float64 `json:"lean_mass_kg"`
	FFMI           float64 `json:"ffmi"`
	NormalizedFFMI float64 `json:"normalized_ffmi"`
	Category       string  `json:"category"`
}

// FFMICategory classifies a height-normalized FFMI; lower bounds are inclusive.
func FFMICategory(sex string, normalized float64) string {
	bounds := []float64{18, 20, 22, 23, 26}
	if sex == SexFemale {
		bounds = []float64{15, 17, 18, 19, 21.5}
	}
	labels := []string{"below_average", "average", "above_average", "excellent", "superior"}
	for i, b := range bounds {
		if normalized < b {
			return labels[i]
		}
	}
	return "suspicious"
}

func NewFFMI() Calculator {
	return newCalc[FFMIInput, FFMIResult](
		Meta{
			Slug:     "ffmi",
			Title:    "FFMI Calculator",
			Category: "body",
			Summary:  "Fat-free mass index, normalized to 1.8 m, with a muscularity category.",
			description: `Fat-free mass index is lean mass relative to height:

    lean mass = weight · (1 − body fat / 100)
    FFMI = lean mass / height (m)²
    normalized FFMI = FFMI + 6.1 · (1.8 − height (m))

Values above 25 for men are rarely reached without pharmacological help.`,
		},
		nil,
		nil,
		func(in FFMIInput) (FFMIResult, error) {
			h := in.Height / 100
			lean := in.Weight * (1 - in.BodyFat/100)
			ffmi := lean / (h * h)
			normalized := pkg.Round(ffmi+6.1*(1.8-h), 1)
			return FFMIResult{
				LeanMassKg:     pkg.Round(lean, 1),
				FFMI:           pkg.Round(ffmi, 1),
				NormalizedFFMI: normalized,
				Category:       FFMICategory(in.Sex, normalized),
			}, nil
		},
		func(_ FFMIInput, out FFMIResult) string {
			return fmt.Sprintf("My FFMI is %.1f (%s)", out.NormalizedFFMI, humanize(out.Category))
		},
	)
}
