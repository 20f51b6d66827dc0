package calculators

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"
)

const (
	FormulaMifflin = "mifflin"
	FormulaHarris  = "harris"
	FormulaKatch   = "katch"
)

// now is swapped in tests
var now = time.Now

// Mifflin computes the Mifflin-St Jeor BMR (kg, cm, years).
func Mifflin(sex string, weight, height float64, age int) float64 {
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if sex == SexFemale {
		return bmr - 161
	}
	return bmr + 5
}

// HarrisBenedict computes the revised (Roza & Shizgal, 1984) Harris-Benedict BMR.
func HarrisBenedict(sex string, weight, height float64, age int) float64 {
	if sex == SexFemale {
		return 447.593 + 9.247*weight + 3.098*height - 4.330*float64(age)
	}
	return 88.362 + 13.397*weight + 4.799*height - 5.677*float64(age)
}

// KatchMcArdle computes BMR from lean body mass in kg.
func KatchMcArdle(leanMass float64) float64 {
	return 370 + 21.6*leanMass
}

func bmrFor(formula, sex string, weight, height float64, age int, bodyFat float64) float64 {
	switch formula {
	case FormulaHarris:
		return HarrisBenedict(sex, weight, height, age)
	case FormulaKatch:
		return KatchMcArdle(weight * (1 - bodyFat/100))
	default:
		return Mifflin(sex, weight, height, age)
	}
}

func checkKatchBodyFat(formula string, bodyFat float64) error {
	if formula == FormulaKatch && bodyFat == 0 {
		return validation.NewError("body_fat", "body_fat is required for the katch formula")
	}
	return nil
}

func kcal(v float64) int {
	return int(math.Round(v))
}

type BMRInput struct {
	Sex     string       `json:"sex" validate:"required,oneof=male female" label:"Sex"`
	Age     int          `json:"age" validate:"required,gte=15,lte=100" label:"Age" unit:"years"`
	Weight  float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	Height  float64      `json:"height" validate:"required,gte=50,lte=272" label:"Height" unit:"cm|in"`
	BodyFat float64      `json:"body_fat,omitempty" validate:"omitempty,gte=2,lte=70" label:"Body fat" unit:"%" help:"Optional, enables Katch-McArdle"`
	Formula string       `json:"formula" validate:"required,oneof=mifflin harris katch" label:"Formula"`
	Units   units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *BMRInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
	in.Height = units.LengthToCm(in.Height, in.Units)
}

type BMRResult struct {
	BMR            int    `json:"bmr"`
	Formula        string `json:"formula"`
	Mifflin        int    `json:"mifflin_st_jeor"`
	HarrisBenedict int    `json:"harris_benedict"`
	KatchMcArdle   *int   `json:"katch_mcardle,omitempty"`
}

func NewBMR() Calculator {
	return newCalc[BMRInput, BMRResult](
		Meta{
			Slug:     "bmr",
			Title:    "BMR Calculator",
			Category: "nutrition",
			Summary:  "Basal metabolic rate with the Mifflin-St Jeor, Harris-Benedict and Katch-McArdle equations.",
			description: `Basal metabolic rate is the energy your body spends at complete rest.

- **Mifflin-St Jeor**: ` + "`10·w + 6.25·h − 5·age + 5`" + ` for men, ` + "`− 161`" + ` for women
- **Harris-Benedict** (revised 1984): men ` + "`88.362 + 13.397·w + 4.799·h − 5.677·age`" + `, women ` + "`447.593 + 9.247·w + 3.098·h − 4.330·age`" + `
- **Katch-McArdle**: ` + "`370 + 21.6·lean mass`" + `, needs body fat %

Weight in kg, height in cm.`,
		},
		func(in *BMRInput) {
			in.Formula = FormulaMifflin
		},
		func(in *BMRInput) error {
			return checkKatchBodyFat(in.Formula, in.BodyFat)
		},
		func(in BMRInput) (BMRResult, error) {
			res := BMRResult{
				BMR:            kcal(bmrFor(in.Formula, in.Sex, in.Weight, in.Height, in.Age, in.BodyFat)),
				Formula:        in.Formula,
				Mifflin:        kcal(Mifflin(in.Sex, in.Weight, in.Height, in.Age)),
				HarrisBenedict: kcal(HarrisBenedict(in.Sex, in.Weight, in.Height, in.Age)),
			}
			if in.BodyFat > 0 {
				katch := kcal(KatchMcArdle(in.Weight * (1 - in.BodyFat/100)))
				res.KatchMcArdle = &katch
			}
			return res, nil
		},
		func(_ BMRInput, out BMRResult) string {
			return fmt.Sprintf("My BMR is %d kcal/day", out.BMR)
		},
	)
}

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

type TDEEInput struct {
	Sex      string       `json:"sex" validate:"required,oneof=male female" label:"Sex"`
	Age      int          `json:"age" validate:"required,gte=15,lte=100" label:"Age" unit:"years"`
	Weight   float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	Height   float64      `json:"height" validate:"required,gte=50,lte=272" label:"Height" unit:"cm|in"`
	BodyFat  float64      `json:"body_fat,omitempty" validate:"omitempty,gte=2,lte=70" label:"Body fat" unit:"%"`
	Activity string       `json:"activity" validate:"required,oneof=sedentary light moderate active very_active" label:"Activity level"`
	Formula  string       `json:"formula" validate:"required,oneof=mifflin harris katch" label:"Formula"`
	Units    units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *TDEEInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
	in.Height = units.LengthToCm(in.Height, in.Units)
}

type GoalTargets struct {
	Cut      int `json:"cut"`
	Maintain int `json:"maintain"`
	Bulk     int `json:"bulk"`
}

type TDEEResult struct {
	BMR        int         `json:"bmr"`
	TDEE       int         `json:"tdee"`
	Multiplier float64     `json:"multiplier"`
	Targets    GoalTargets `json:"targets"`
}

func NewTDEE() Calculator {
	return newCalc[TDEEInput, TDEEResult](
		Meta{
			Slug:     "tdee",
			Title:    "TDEE Calculator",
			Category: "nutrition",
			Summary:  "Total daily energy expenditure with calorie targets to cut, maintain or bulk.",
			description: `TDEE is your BMR multiplied by an activity factor:

| Activity | Multiplier |
|---|---|
| sedentary (desk job, no training) | 1.2 |
| light (1–3 sessions a week) | 1.375 |
| moderate (3–5 sessions a week) | 1.55 |
| active (6–7 sessions a week) | 1.725 |
| very active (physical job or twice a day) | 1.9 |

Targets: cut at TDEE − 500 kcal, bulk at TDEE + 300 kcal.`,
		},
		func(in *TDEEInput) {
			in.Formula = FormulaMifflin
		},
		func(in *TDEEInput) error {
			return checkKatchBodyFat(in.Formula, in.BodyFat)
		},
		func(in TDEEInput) (TDEEResult, error) {
			bmr := bmrFor(in.Formula, in.Sex, in.Weight, in.Height, in.Age, in.BodyFat)
			multiplier := activityMultipliers[in.Activity]
			tdee := kcal(bmr * multiplier)
			return TDEEResult{
				BMR:        kcal(bmr),
				TDEE:       tdee,
				Multiplier: multiplier,
				Targets: GoalTargets{
					Cut:      tdee - 500,
					Maintain: tdee,
					Bulk:     tdee + 300,
				},
			}, nil
		},
		func(_ TDEEInput, out TDEEResult) string {
			return fmt.Sprintf("My TDEE is %d kcal/day", out.TDEE)
		},
	)
}

type macroSplit struct {
	protein, carbs, fat float64 // percent of kcal
}

var dietPresets = map[string]macroSplit{
	"balanced":  {30, 40, 30},
	"low_carb":  {40, 20, 40},
	"high_carb": {25, 55, 20},
	"keto":      {25, 5, 70},
	"zone":      {30, 40, 30},
}

type MacrosInput struct {
	Calories   int     `json:"calories" validate:"required,gte=800,lte=10000" label:"Daily calories" unit:"kcal"`
	Diet       string  `json:"diet" validate:"required,oneof=balanced low_carb high_carb keto zone custom" label:"Diet"`
	ProteinPct float64 `json:"protein_pct,omitempty" validate:"omitempty,gte=0,lte=100" label:"Protein" unit:"%" help:"Custom diet only"`
	CarbsPct   float64 `json:"carbs_pct,omitempty" validate:"omitempty,gte=0,lte=100" label:"Carbs" unit:"%" help:"Custom diet only"`
	FatPct     float64 `json:"fat_pct,omitempty" validate:"omitempty,gte=0,lte=100" label:"Fat" unit:"%" help:"Custom diet only"`
	Meals      int     `json:"meals,omitempty" validate:"omitempty,gte=1,lte=10" label:"Meals per day"`
}

type Macro struct {
	Grams   int     `json:"grams"`
	Kcal    int     `json:"kcal"`
	Percent float64 `json:"percent"`
}

type MacroGrams struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

type MacrosResult struct {
	Diet     string      `json:"diet"`
	Calories int         `json:"calories"`
	Protein  Macro       `json:"protein"`
	Carbs    Macro       `json:"carbs"`
	Fat      Macro       `json:"fat"`
	PerMeal  *MacroGrams `json:"per_meal,omitempty"`
}

func NewMacros() Calculator {
	return newCalc[MacrosInput, MacrosResult](
		Meta{
			Slug:     "macros",
			Title:    "Macro Calculator",
			Category: "nutrition",
			Summary:  "Split daily calories into protein, carbohydrate and fat grams.",
			description: `Protein and carbohydrates carry 4 kcal per gram, fat carries 9.

| Diet | Protein | Carbs | Fat |
|---|---|---|---|
| balanced | 30 % | 40 % | 30 % |
| low carb | 40 % | 20 % | 40 % |
| high carb | 25 % | 55 % | 20 % |
| keto | 25 % | 5 % | 70 % |
| zone | 30 % | 40 % | 30 % |

With the *custom* diet you choose the three percentages yourself.`,
		},
		func(in *MacrosInput) {
			in.Diet = "balanced"
		},
		func(in *MacrosInput) error {
			if in.Diet != "custom" {
				return nil
			}
			if sum := in.ProteinPct + in.CarbsPct + in.FatPct; math.Abs(sum-100) > 0.5 {
				return validation.NewError("protein_pct", "protein_pct + carbs_pct + fat_pct must add up to 100")
			}
			return nil
		},
		func(in MacrosInput) (MacrosResult, error) {
			split, ok := dietPresets[in.Diet]
			if !ok {
				split = macroSplit{in.ProteinPct, in.CarbsPct, in.FatPct}
			}

			total := float64(in.Calories)
			proteinKcal := total * split.protein / 100
			carbsKcal := total * split.carbs / 100
			fatKcal := total * split.fat / 100

			res := MacrosResult{
				Diet:     in.Diet,
				Calories: in.Calories,
				Protein:  Macro{Grams: kcal(proteinKcal / 4), Kcal: kcal(proteinKcal), Percent: split.protein},
				Carbs:    Macro{Grams: kcal(carbsKcal / 4), Kcal: kcal(carbsKcal), Percent: split.carbs},
				Fat:      Macro{Grams: kcal(fatKcal / 9), Kcal: kcal(fatKcal), Percent: split.fat},
			}
			if in.Meals > 0 {
				meals := float64(in.Meals)
				res.PerMeal = &MacroGrams{
					Protein: kcal(proteinKcal / 4 / meals),
					Carbs:   kcal(carbsKcal / 4 / meals),
					Fat:     kcal(fatKcal / 9 / meals),
				}
			}
			return res, nil
		},
		func(_ MacrosInput, out MacrosResult) string {
			return fmt.Sprintf("My macros for %d kcal: %d g protein, %d g carbs, %d g fat",
				out.Calories, out.Protein.Grams, out.Carbs.Grams, out.Fat.Grams)
		},
	)
}

type proteinRange struct {
	min, max float64 // g per kg
}

var proteinRanges = map[string]proteinRange{
	"sedentary": {0.8, 1.0},
	"endurance": {1.2, 1.6},
	"strength":  {1.6, 2.2},
}

const (
	proteinCutBonus = 0.2
	proteinCap      = 2.4
)

type ProteinInput struct {
	Weight   float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	Activity string       `json:"activity" validate:"required,oneof=sedentary endurance strength" label:"Training type"`
	Goal     string       `json:"goal" validate:"required,oneof=cut maintain bulk" label:"Goal"`
	Meals    int          `json:"meals" validate:"required,gte=1,lte=10" label:"Meals per day"`
	Units    units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *ProteinInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
}

type ProteinResult struct {
	MinPerKg   float64 `json:"min_g_per_kg"`
	MaxPerKg   float64 `json:"max_g_per_kg"`
	MinGrams   int     `json:"min_grams"`
	MaxGrams   int     `json:"max_grams"`
	PerMealMin int     `json:"per_meal_min"`
	PerMealMax int     `json:"per_meal_max"`
}

// ProteinRange returns the daily g/kg band for a training type and goal.
func ProteinRange(activity, goal string) (float64, float64) {
	r := proteinRanges[activity]
	if goal == "cut" {
		r.min = math.Min(proteinCap, r.min+proteinCutBonus)
		r.max = math.Min(proteinCap, r.max+proteinCutBonus)
	}
	return pkg.Round(r.min, 2), pkg.Round(r.max, 2)
}

func NewProtein() Calculator {
	return newCalc[ProteinInput, ProteinResult](
		Meta{
			Slug:     "protein",
			Title:    "Protein Intake Calculator",
			Category: "nutrition",
			Summary:  "Daily protein target in grams for your body weight, training and goal.",
			description: `Recommended daily protein in grams per kg of body weight:

| Training | g/kg |
|---|---|
| sedentary | 0.8 – 1.0 |
| endurance | 1.2 – 1.6 |
| strength | 1.6 – 2.2 |

During a calorie deficit both bounds go up by 0.2 g/kg (capped at 2.4) to protect lean mass.`,
		},
		func(in *ProteinInput) {
			in.Goal = "maintain"
			in.Meals = 4
		},
		nil,
		func(in ProteinInput) (ProteinResult, error) {
			lo, hi := ProteinRange(in.Activity, in.Goal)
			minGrams := in.Weight * lo
			maxGrams := in.Weight * hi
			meals := float64(in.Meals)
			return ProteinResult{
				MinPerKg:   lo,
				MaxPerKg:   hi,
				MinGrams:   kcal(minGrams),
				MaxGrams:   kcal(maxGrams),
				PerMealMin: kcal(minGrams / meals),
				PerMealMax: kcal(maxGrams / meals),
			}, nil
		},
		func(_ ProteinInput, out ProteinResult) string {
			return fmt.Sprintf("My daily protein target is %d-%d g", out.MinGrams, out.MaxGrams)
		},
	)
}

type CarbLoadingInput struct {
	Weight        float64      `json:"weight" validate:"required,gt=0,lte=500" label:"Weight" unit:"kg|lb"`
	GramsPerKg    float64      `json:"grams_per_kg" validate:"required,gte=8,lte=12" label:"Carbs per kg" unit:"g/kg"`
	Days          int          `json:"days" validate:"required,gte=1,lte=3" label:"Loading days"`
	EventDuration int          `json:"event_duration" validate:"required,gt=0,lte=1440" label:"Event duration" unit:"min"`
	Meals         int          `json:"meals" validate:"required,gte=1,lte=10" label:"Meals per day"`
	Units         units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *CarbLoadingInput) normalize() {
	in.Weight = units.WeightToKg(in.Weight, in.Units)
}

type CarbLoadingResult struct {
	DailyCarbsG int    `json:"daily_carbs_g"`
	TotalCarbsG int    `json:"total_carbs_g"`
	DailyKcal   int    `json:"daily_kcal"`
	PerMealG    int    `json:"per_meal_g"`
	Recommended bool   `json:"recommended"`
	Note        string `json:"note,omitempty"`
}

const carbLoadingMinEventMinutes = 90

func NewCarbLoading() Calculator {
	return newCalc[CarbLoadingInput, CarbLoadingResult](
		Meta{
			Slug:     "carb-loading",
			Title:    "Carb Loading Calculator",
			Category: "nutrition",
			Summary:  "Daily carbohydrate target for the days before an endurance event.",
			description: `Carbohydrate loading tops up muscle glycogen before long events.
Eat 8–12 g of carbohydrate per kg of body weight per day for 1–3 days before the race.

It only pays off for efforts longer than about 90 minutes.`,
		},
		func(in *CarbLoadingInput) {
			in.GramsPerKg = 10
			in.Days = 2
			in.Meals = 5
		},
		nil,
		func(in CarbLoadingInput) (CarbLoadingResult, error) {
			daily := in.Weight * in.GramsPerKg
			res := CarbLoadingResult{
				DailyCarbsG: kcal(daily),
				TotalCarbsG: kcal(daily * float64(in.Days)),
				DailyKcal:   kcal(daily * 4),
				PerMealG:    kcal(daily / float64(in.Meals)),
				Recommended: in.EventDuration >= carbLoadingMinEventMinutes,
			}
			if !res.Recommended {
				res.Note = fmt.Sprintf("events shorter than %d minutes do not need carb loading", carbLoadingMinEventMinutes)
			}
			return res, nil
		},
		func(in CarbLoadingInput, out CarbLoadingResult) string {
			return fmt.Sprintf("My carb loading plan: %d g carbs per day for %d days", out.DailyCarbsG, in.Days)
		},
	)
}

const (
	kcalPerKgFat    = 7700.0
	minWeeklyLossKg = 0.1
	maxWeeklyLossKg = 1.0
	dateLayout      = "2006-01-02"
)

type WeightLossInput struct {
	CurrentWeight float64      `json:"current_weight" validate:"required,gt=0,lte=500" label:"Current weight" unit:"kg|lb"`
	TargetWeight  float64      `json:"target_weight" validate:"required,gt=0,ltfield=CurrentWeight" label:"Target weight" unit:"kg|lb"`
	DailyDeficit  int          `json:"daily_deficit" validate:"required,gte=100,lte=2000" label:"Daily deficit" unit:"kcal"`
	StartDate     string       `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02" label:"Start date" help:"Defaults to today"`
	Units         units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`
}

func (in *WeightLossInput) normalize() {
	in.CurrentWeight = units.WeightToKg(in.CurrentWeight, in.Units)
	in.TargetWeight = units.WeightToKg(in.TargetWeight, in.Units)
}

type WeightLossResult struct {
	TotalLossKg  float64 `json:"total_loss_kg"`
	WeeklyLossKg float64 `json:"weekly_loss_kg"`
	Clamped      bool    `json:"clamped"`
	WeeksToGoal  float64 `json:"weeks_to_goal"`
	DaysToGoal   int     `json:"days_to_goal"`
	GoalDate     string  `json:"goal_date"`
}

// WeeklyLoss converts a daily deficit into kg per week, clamped to a safe band.
func WeeklyLoss(dailyDeficit int) (float64, bool) {
	weekly := float64(dailyDeficit) * 7 / kcalPerKgFat
	switch {
	case weekly < minWeeklyLossKg:
		return minWeeklyLossKg, true
	case weekly > maxWeeklyLossKg:
		return maxWeeklyLossKg, true
	default:
		return weekly, false
	}
}

func NewWeightLoss() Calculator {
	return newCalc[WeightLossInput, WeightLossResult](
		Meta{
			Slug:     "weight-loss",
			Title:    "Weight Loss Timeline Calculator",
			Category: "nutrition",
			Summary:  "How long it takes to reach a goal weight with a daily calorie deficit.",
			description: `One kilogram of body fat stores roughly 7700 kcal, so

    weekly loss (kg) = daily deficit · 7 / 7700

The rate is kept between 0.1 and 1.0 kg per week.`,
		},
		nil,
		nil,
		func(in WeightLossInput) (WeightLossResult, error) {
			start := now()
			if in.StartDate != "" {
				// validated by the datetime tag
				start, _ = time.Parse(dateLayout, in.StartDate)
			}

			total := in.CurrentWeight - in.TargetWeight
			weekly, clamped := WeeklyLoss(in.DailyDeficit)
			weeks := total / weekly
			days := int(math.Ceil(weeks*7 - 1e-9))

			return WeightLossResult{
				TotalLossKg:  pkg.Round(total, 1),
				WeeklyLossKg: pkg.Round(weekly, 2),
				Clamped:      clamped,
				WeeksToGoal:  pkg.Round(weeks, 1),
				DaysToGoal:   days,
				GoalDate:     start.AddDate(0, 0, days).Format(dateLayout),
			}, nil
		},
		func(_ WeightLossInput, out WeightLossResult) string {
			return fmt.Sprintf("I can lose %.1f kg by %s", out.TotalLossKg, out.GoalDate)
		},
	)
}
