package calculators

import (
	"fmt"
	"math"

	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"
)

type HeartRateCaloriesInput struct {
	Sex       string       `json:"sex" validate:"required,oneof=male female" label:"Sex"`
	Age       int          `json:"age" validate:"required,gte=15,lte=100" label:"Age" unit:"years"`
	Weight    float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	HeartRate int          `json:"heart_rate" validate:"required,gte=40,lte=230" label:"Average heart rate" unit:"bpm"`
	Duration  float64      `json:"duration" validate:"required,gt=0,lte=1440" label:"Duration" unit:"min"`
	Units     units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *HeartRateCaloriesInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
}

type HeartRateCaloriesResult struct {
	KcalPerMinute float64 `json:"kcal_per_minute"`
	TotalKcal     int     `json:"total_kcal"`
}

// Keytel estimates energy expenditure in kcal/min from heart rate (Keytel et al. 2005, no VO2max).
// Negative estimates, which happen at very low heart rates, are reported as zero.
func Keytel(sex string, heartRate int, weight float64, age int) float64 {
	hr, a := float64(heartRate), float64(age)
	var kj float64
	if sex == SexFemale {
		kj = -20.4022 + 0.4472*hr - 0.1263*weight + 0.074*a
	} else {
		kj = -55.0969 + 0.6309*hr + 0.1988*weight + 0.2017*a
	}
	return math.Max(0, kj/4.184)
}

func NewHeartRateCalories() Calculator {
	return newCalc[HeartRateCaloriesInput, HeartRateCaloriesResult](
		Meta{
			Slug:     "heart-rate-calories",
			Title:    "Calories Burned by Heart Rate",
			Category: "cardio",
			Summary:  "Energy burned during a workout from your average heart rate.",
			description: `Keytel et al. (2005) predict energy expenditure from heart rate, weight and age:

- men: ` + "`(−55.0969 + 0.6309·HR + 0.1988·w + 0.2017·age) / 4.184`" + ` kcal/min
- women: ` + "`(−20.4022 + 0.4472·HR − 0.1263·w + 0.074·age) / 4.184`" + ` kcal/min

The equation is meant for steady aerobic work at heart rates of roughly 90–150 bpm and above.`,
		},
		nil,
		nil,
		func(in HeartRateCaloriesInput) (HeartRateCaloriesResult, error) {
			perMin := Keytel(in.Sex, in.HeartRate, in.Weight, in.Age)
			return HeartRateCaloriesResult{
				KcalPerMinute: pkg.Round(perMin, 1),
				TotalKcal:     kcal(perMin * in.Duration),
			}, nil
		},
		func(in HeartRateCaloriesInput, out HeartRateCaloriesResult) string {
			return fmt.Sprintf("I burned about %d kcal in %.0f minutes", out.TotalKcal, in.Duration)
		},
	)
}

type HeartRateZonesInput struct {
	Age       int    `json:"age" validate:"required,gte=10,lte=100" label:"Age" unit:"years"`
	Formula   string `json:"formula" validate:"required,oneof=fox tanaka measured" label:"Max HR formula"`
	MaxHR     int    `json:"max_hr,omitempty" validate:"omitempty,gte=100,lte=230" label:"Measured max HR" unit:"bpm"`
	RestingHR int    `json:"resting_hr,omitempty" validate:"omitempty,gte=30,lte=120" label:"Resting HR" unit:"bpm" help:"Optional, enables the Karvonen method"`
}

type HeartRateZone struct {
	Zone   int    `json:"zone"`
	Name   string `json:"name"`
	MinPct int    `json:"min_pct"`
	MaxPct int    `json:"max_pct"`
	MinBPM int    `json:"min_bpm"`
	MaxBPM int    `json:"max_bpm"`
}

type HeartRateZonesResult struct {
	MaxHR     int             `json:"max_hr"`
	RestingHR int             `json:"resting_hr,omitempty"`
	Method    string          `json:"method"`
	Zones     []HeartRateZone `json:"zones"`
}

var zoneBands = []struct {
	name     string
	min, max int
}{
	{"recovery", 50, 60},
	{"endurance", 60, 70},
	{"tempo", 70, 80},
	{"threshold", 80, 90},
	{"maximum", 90, 100},
}

// MaxHeartRate estimates max HR from age: fox is 220 − age, tanaka is 208 − 0.7·age.
func MaxHeartRate(formula string, age int) int {
	if formula == "tanaka" {
		return int(math.Round(208 - 0.7*float64(age)))
	}
	return 220 - age
}

// HeartRateZones builds the five training zones; with a resting HR the
// Karvonen (heart rate reserve) method is used, otherwise plain % of max.
func HeartRateZones(maxHR, restingHR int) []HeartRateZone {
	bpm := func(pct int) int {
		p := float64(pct) / 100
		if restingHR > 0 {
			return int(math.Round(float64(restingHR) + p*float64(maxHR-restingHR)))
		}
		return int(math.Round(p * float64(maxHR)))
	}

	zones := make([]HeartRateZone, 0, len(zoneBands))
	for i, b := range zoneBands {
		zones = append(zones, HeartRateZone{
			Zone:   i + 1,
			Name:   b.name,
			MinPct: b.min,
			MaxPct: b.max,
			MinBPM: bpm(b.min),
			MaxBPM: bpm(b.max),
		})
	}
	return zones
}

func NewHeartRateZones() Calculator {
	return newCalc[HeartRateZonesInput, HeartRateZonesResult](
		Meta{
			Slug:     "heart-rate-zones",
			Title:    "Heart Rate Zone Calculator",
			Category: "cardio",
			Summary:  "Five training zones from your max heart rate, with the Karvonen method when resting HR is known.",
			description: `Max heart rate is estimated as **220 − age** (Fox) or **208 − 0.7 · age** (Tanaka), or you can enter a measured value.

With a resting heart rate the zones use the heart rate reserve (Karvonen):

    target = resting + intensity · (max − resting)

| Zone | Intensity |
|---|---|
| 1 recovery | 50–60 % |
| 2 endurance | 60–70 % |
| 3 tempo | 70–80 % |
| 4 threshold | 80–90 % |
| 5 maximum | 90–100 % |`,
		},
		func(in *HeartRateZonesInput) {
			in.Formula = "fox"
		},
		func(in *HeartRateZonesInput) error {
			if in.Formula == "measured" && in.MaxHR == 0 {
				return validation.NewError("max_hr", "max_hr is required")
			}
			maxHR := in.MaxHR
			if in.Formula != "measured" {
				maxHR = MaxHeartRate(in.Formula, in.Age)
			}
			if in.RestingHR > 0 && in.RestingHR >= maxHR {
				return validation.NewError("resting_hr", "resting_hr must be less than max_hr")
			}
			return nil
		},
		func(in HeartRateZonesInput) (HeartRateZonesResult, error) {
			maxHR := in.MaxHR
			if in.Formula != "measured" {
				maxHR = MaxHeartRate(in.Formula, in.Age)
			}
			method := "percent_max"
			if in.RestingHR > 0 {
				method = "karvonen"
			}
			return HeartRateZonesResult{
				MaxHR:     maxHR,
				RestingHR: in.RestingHR,
				Method:    method,
				Zones:     HeartRateZones(maxHR, in.RestingHR),
			}, nil
		},
		func(_ HeartRateZonesInput, out HeartRateZonesResult) string {
			z2 := out.Zones[1]
			return fmt.Sprintf("My max HR is %d bpm, zone 2 is %d-%d bpm", out.MaxHR, z2.MinBPM, z2.MaxBPM)
		},
	)
}
