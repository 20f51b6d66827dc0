package calculators

import (
	"fmt"

	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/pkg"
)

// Epley estimates a one rep max; a single rep is the max itself.
func Epley(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

// Brzycki estimates a one rep max; a single rep is the max itself.
func Brzycki(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return weight * 36 / (37 - float64(reps))
}

type OneRepMaxInput struct {
	Weight  float64      `json:"weight" validate:"required,gt=0,lte=1000" label:"Weight lifted" unit:"kg|lb"`
	Reps    int          `json:"reps" validate:"required,gte=1,lte=12" label:"Reps"`
	Formula string       `json:"formula" validate:"required,oneof=epley brzycki average" label:"Formula"`
	Units   units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

type PercentOfMax struct {
	Percent int     `json:"percent"`
	Weight  float64 `json:"weight"`
}

type OneRepMaxResult struct {
	OneRepMax   float64        `json:"one_rep_max"`
	Epley       float64        `json:"epley"`
	Brzycki     float64        `json:"brzycki"`
	Formula     string         `json:"formula"`
	Unit        string         `json:"unit"`
	Percentages []PercentOfMax `json:"percentages"`
}

func NewOneRepMax() Calculator {
	return newCalc[OneRepMaxInput, OneRepMaxResult](
		Meta{
			Slug:     "one-rep-max",
			Title:    "One Rep Max Calculator",
			Category: "strength",
			Summary:  "Estimate your 1RM from a set of up to 12 reps, with a percentage table.",
			description: `Two common estimates of the heaviest single lift from a multi-rep set:

- **Epley**: ` + "`w · (1 + reps / 30)`" + `
- **Brzycki**: ` + "`w · 36 / (37 − reps)`" + `

Both lose accuracy above about 10 reps. Results come back in the unit of the lifted weight.`,
		},
		func(in *OneRepMaxInput) {
			in.Formula = "average"
		},
		nil,
		func(in OneRepMaxInput) (OneRepMaxResult, error) {
			epley := Epley(in.Weight, in.Reps)
			brzycki := Brzycki(in.Weight, in.Reps)

			orm := (epley + brzycki) / 2
			switch in.Formula {
			case "epley":
				orm = epley
			case "brzycki":
				orm = brzycki
			}

			percentages := make([]PercentOfMax, 0, 11)
			for p := 50; p <= 100; p += 5 {
				percentages = append(percentages, PercentOfMax{
					Percent: p,
					Weight:  pkg.Round(orm*float64(p)/100, 1),
				})
			}

			return OneRepMaxResult{
				OneRepMax:   pkg.Round(orm, 1),
				Epley:       pkg.Round(epley, 1),
				Brzycki:     pkg.Round(brzycki, 1),
				Formula:     in.Formula,
				Unit:        units.WeightUnit(in.Units),
				Percentages: percentages,
			}, nil
		},
		func(in OneRepMaxInput, out OneRepMaxResult) string {
			return fmt.Sprintf("My estimated 1RM is %.1f %s from %.1f x %d", out.OneRepMax, out.Unit, in.Weight, in.Reps)
		},
	)
}

var weeklySetRanges = map[string][2]int{
	"beginner":     {6, 10},
	"intermediate": {10, 16},
	"advanced":     {16, 22},
}

type ExerciseVolume struct {
	Name   string  `json:"name" validate:"required,max=80"`
	Sets   int     `json:"sets" validate:"required,gte=1,lte=20"`
	Reps   int     `json:"reps" validate:"required,gte=1,lte=100"`
	Weight float64 `json:"weight" validate:"gte=0,lte=1000"`
}

type TrainingVolumeInput struct {
	Exercises       []ExerciseVolume `json:"exercises" validate:"required,min=1,max=30,dive" label:"Exercises"`
	SessionsPerWeek int              `json:"sessions_per_week" validate:"required,gte=1,lte=14" label:"Sessions per week"`
	Experience      string           `json:"experience" validate:"required,oneof=beginner intermediate advanced" label:"Experience"`
	Units           units.System     `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *TrainingVolumeInput) normalize() {
	for i := range in.Exercises {
		in.Exercises[i].Weight = units.WeightToKg(in.Exercises[i].Weight, in.Units)
	}
}

type ExerciseTonnage struct {
	Name      string  `json:"name"`
	Sets      int     `json:"sets"`
	TonnageKg float64 `json:"tonnage_kg"`
}

type TrainingVolumeResult struct {
	Exercises          []ExerciseTonnage `json:"exercises"`
	SessionTonnageKg   float64           `json:"session_tonnage_kg"`
	WeeklyTonnageKg    float64           `json:"weekly_tonnage_kg"`
	SessionSets        int               `json:"session_sets"`
	WeeklySets         int               `json:"weekly_sets"`
	RecommendedMinSets int               `json:"recommended_min_sets"`
	RecommendedMaxSets int               `json:"recommended_max_sets"`
	Classification     string            `json:"classification"`
}

// ClassifyWeeklySets compares weekly hard sets with the range for the lifter's experience.
func ClassifyWeeklySets(experience string, weeklySets int) string {
	r := weeklySetRanges[experience]
	switch {
	case weeklySets < r[0]:
		return "below"
	case weeklySets > r[1]:
		return "above"
	default:
		return "within"
	}
}

func NewTrainingVolume() Calculator {
	return newCalc[TrainingVolumeInput, TrainingVolumeResult](
		Meta{
			Slug:     "training-volume",
			Title:    "Training Volume Calculator",
			Category: "strength",
			Summary:  "Tonnage and weekly hard sets of a training session, compared with a recommended range.",
			description: `Tonnage is sets × reps × weight, summed over all exercises.
Weekly hard sets are compared against a range for your training age:

| Experience | Weekly sets |
|---|---|
| beginner | 6–10 |
| intermediate | 10–16 |
| advanced | 16–22 |`,
		},
		func(in *TrainingVolumeInput) {
			in.SessionsPerWeek = 1
			in.Experience = "intermediate"
		},
		nil,
		func(in TrainingVolumeInput) (TrainingVolumeResult, error) {
			res := TrainingVolumeResult{
				Exercises: make([]ExerciseTonnage, 0, len(in.Exercises)),
			}

			var sessionTonnage float64
			for _, ex := range in.Exercises {
				tonnage := float64(ex.Sets*ex.Reps) * ex.Weight
				sessionTonnage += tonnage
				res.SessionSets += ex.Sets
				res.Exercises = append(res.Exercises, ExerciseTonnage{
					Name:      ex.Name,
					Sets:      ex.Sets,
					TonnageKg: pkg.Round(tonnage, 1),
				})
			}

			r := weeklySetRanges[in.Experience]
			res.SessionTonnageKg = pkg.Round(sessionTonnage, 1)
			res.WeeklyTonnageKg = pkg.Round(sessionTonnage*float64(in.SessionsPerWeek), 1)
			res.WeeklySets = res.SessionSets * in.SessionsPerWeek
			res.RecommendedMinSets = r[0]
			res.RecommendedMaxSets = r[1]
			res.Classification = ClassifyWeeklySets(in.Experience, res.WeeklySets)
			return res, nil
		},
		func(_ TrainingVolumeInput, out TrainingVolumeResult) string {
			return fmt.Sprintf("My weekly volume: %d sets, %.0f kg (%s the recommended range)",
				out.WeeklySets, out.WeeklyTonnageKg, out.Classification)
		},
	)
}
