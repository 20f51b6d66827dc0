package calculators

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"
)

var raceDistances = map[string]float64{
	"5k":       5000,
	"10k":      10000,
	"half":     21097.5,
	"marathon": 42195,
}

var predictedRaces = []string{"5k", "10k", "half", "marathon"}

// VO2Cost is the oxygen cost (ml/kg/min) of running at v meters per minute.
func VO2Cost(v float64) float64 {
	return -4.60 + 0.182258*v + 0.000104*v*v
}

// FractionOfMax is the fraction of VO2max that can be sustained for t minutes.
func FractionOfMax(t float64) float64 {
	return 0.8 + 0.1894393*math.Exp(-0.012778*t) + 0.2989558*math.Exp(-0.1932605*t)
}

// VDOT is the Daniels/Gilbert performance index for a race of meters run in minutes.
func VDOT(meters, minutes float64) float64 {
	return VO2Cost(meters/minutes) / FractionOfMax(minutes)
}

// velocityForVO2 solves the VO2 cost quadratic for the velocity in meters per minute.
func velocityForVO2(vo2 float64) float64 {
	const a, b = 0.000104, 0.182258
	c := -(4.60 + vo2)
	return (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
}

// PredictRaceMinutes finds by bisection the time over meters that yields the given VDOT.
func PredictRaceMinutes(meters, vdot float64) float64 {
	lo, hi := meters/600, 2000.0 // 600 m/min is faster than any human
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if VDOT(meters, mid) > vdot {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

type VDOTInput struct {
	Race     string       `json:"race,omitempty" validate:"omitempty,oneof=5k 10k half marathon" label:"Race"`
	Distance float64      `json:"distance,omitempty" validate:"omitempty,gt=0,lte=500" label:"Distance" unit:"km|mi" help:"When no race is picked"`
	Time     string       `json:"time" validate:"required" label:"Finish time" help:"h:mm:ss"`
	Units    units.System `json:"units,omitempty" validate:"omitempty,oneof=metric imperial" label:"Units"`

	meters  float64
	minutes float64
}

type PaceZone struct {
	Name        string  `json:"name"`
	MinFraction float64 `json:"min_fraction"`
	MaxFraction float64 `json:"max_fraction"`
	SlowPerKm   string  `json:"slow_per_km"`
	FastPerKm   string  `json:"fast_per_km"`
	SlowPerMile string  `json:"slow_per_mile"`
	FastPerMile string  `json:"fast_per_mile"`
}

type RacePrediction struct {
	Race     string  `json:"race"`
	Distance float64 `json:"distance_m"`
	Time     string  `json:"time"`
	Seconds  int     `json:"seconds"`
}

type VDOTResult struct {
	VDOT        float64          `json:"vdot"`
	Paces       []PaceZone       `json:"paces"`
	Predictions []RacePrediction `json:"predictions"`
}

var paceZones = []struct {
	name     string
	min, max float64
}{
	{"easy", 0.59, 0.74},
	{"marathon", 0.75, 0.84},
	{"threshold", 0.83, 0.88},
	{"interval", 0.95, 1.00},
	{"repetition", 1.05, 1.10},
}

func checkVDOT(in *VDOTInput) error {
	switch {
	case in.Race != "":
		in.meters = raceDistances[in.Race]
	case in.Distance > 0:
		if in.Units == units.Imperial {
			in.meters = units.MilesToMeters(in.Distance)
		} else {
			in.meters = in.Distance * 1000
		}
	default:
		return validation.NewError("distance", "distance is required")
	}

	seconds, err := parseClock(in.Time)
	if err != nil || seconds <= 0 {
		return validation.NewError("time", "time must be in the format h:mm:ss")
	}
	in.minutes = seconds / 60

	if vdot := VDOT(in.meters, in.minutes); vdot < 10 || vdot > 90 {
		return validation.NewError("time", "time is out of range for a VDOT estimate")
	}
	return nil
}

func NewVDOT() Calculator {
	return newCalc[VDOTInput, VDOTResult](
		Meta{
			Slug:     "vdot",
			Title:    "VDOT Running Calculator",
			Category: "running",
			Summary:  "Jack Daniels' VDOT from a race result, with training paces and race predictions.",
			description: `VDOT comes from the Daniels/Gilbert oxygen cost equations, with velocity *v* in m/min and time *t* in minutes:

    VO2 = −4.60 + 0.182258·v + 0.000104·v²
    %max = 0.8 + 0.1894393·e^(−0.012778·t) + 0.2989558·e^(−0.1932605·t)
    VDOT = VO2 / %max

Training paces run at a fraction of VDOT:

| Zone | Fraction |
|---|---|
| easy | 59–74 % |
| marathon | 75–84 % |
| threshold | 83–88 % |
| interval | 95–100 % |
| repetition | 105–110 % |`,
		},
		nil,
		checkVDOT,
		func(in VDOTInput) (VDOTResult, error) {
			vdot := VDOT(in.meters, in.minutes)

			paces := make([]PaceZone, 0, len(paceZones))
			for _, z := range paceZones {
				slow := velocityForVO2(z.min * vdot)
				fast := velocityForVO2(z.max * vdot)
				paces = append(paces, PaceZone{
					Name:        z.name,
					MinFraction: z.min,
					MaxFraction: z.max,
					SlowPerKm:   formatClock(1000 / slow * 60),
					FastPerKm:   formatClock(1000 / fast * 60),
					SlowPerMile: formatClock(units.MPerMile / slow * 60),
					FastPerMile: formatClock(units.MPerMile / fast * 60),
				})
			}

			predictions := make([]RacePrediction, 0, len(predictedRaces))
			for _, race := range predictedRaces {
				meters := raceDistances[race]
				seconds := PredictRaceMinutes(meters, vdot) * 60
				predictions = append(predictions, RacePrediction{
					Race:     race,
					Distance: meters,
					Time:     formatClock(seconds),
					Seconds:  int(math.Round(seconds)),
				})
			}

			return VDOTResult{
				VDOT:        pkg.Round(vdot, 1),
				Paces:       paces,
				Predictions: predictions,
			}, nil
		},
		func(_ VDOTInput, out VDOTResult) string {
			return fmt.Sprintf("My VDOT is %.1f, predicted marathon %s", out.VDOT, out.Predictions[len(out.Predictions)-1].Time)
		},
	)
}

var taperWeeks = map[string]int{
	"5k":       1,
	"10k":      1,
	"half":     2,
	"marathon": 3,
	"ultra":    3,
}

var taperFractions = map[int][]float64{
	1: {0.6},
	2: {0.75, 0.5},
	3: {0.8, 0.6, 0.4},
}

type TaperInput struct {
	Race       string  `json:"race" validate:"required,oneof=5k 10k half marathon ultra" label:"Race"`
	PeakVolume float64 `json:"peak_volume" validate:"required,gt=0,lte=500" label:"Peak weekly volume" unit:"km|mi"`
	RaceDate   string  `json:"race_date" validate:"required,datetime=2006-01-02" label:"Race date"`
}

type TaperWeek struct {
	Week      int     `json:"week"`
	StartDate string  `json:"start_date"`
	Fraction  float64 `json:"fraction"`
	Volume    float64 `json:"volume"`
}

type TaperResult struct {
	Race      string      `json:"race"`
	RaceDate  string      `json:"race_date"`
	Weeks     int         `json:"weeks"`
	Intensity string      `json:"intensity"`
	Plan      []TaperWeek `json:"plan"`
}

// TaperPlan lays out the taper weeks before race day, each starting 7·k days before the race.
func TaperPlan(race string, peakVolume float64, raceDate time.Time) []TaperWeek {
	fractions := taperFractions[taperWeeks[race]]
	n := len(fractions)
	plan := make([]TaperWeek, 0, n)
	for i, f := range fractions {
		k := n - i
		plan = append(plan, TaperWeek{
			Week:      i + 1,
			StartDate: raceDate.AddDate(0, 0, -7*k).Format(dateLayout),
			Fraction:  f,
			Volume:    pkg.Round(peakVolume*f, 1),
		})
	}
	return plan
}

func NewTaper() Calculator {
	return newCalc[TaperInput, TaperResult](
		Meta{
			Slug:     "taper",
			Title:    "Race Taper Planner",
			Category: "running",
			Summary:  "Week by week volume reduction before a race, keeping intensity.",
			description: `A taper cuts training volume while keeping the intensity of key sessions.

| Race | Taper | Weekly volume |
|---|---|---|
| 5k, 10k | 1 week | 60 % |
| half marathon | 2 weeks | 75 %, 50 % |
| marathon, ultra | 3 weeks | 80 %, 60 %, 40 % |`,
		},
		nil,
		nil,
		func(in TaperInput) (TaperResult, error) {
			// validated by the datetime tag
			raceDate, _ := time.Parse(dateLayout, in.RaceDate)
			plan := TaperPlan(in.Race, in.PeakVolume, raceDate)
			return TaperResult{
				Race:      in.Race,
				RaceDate:  in.RaceDate,
				Weeks:     len(plan),
				Intensity: "maintain",
				Plan:      plan,
			}, nil
		},
		func(in TaperInput, out TaperResult) string {
			return fmt.Sprintf("My %d week taper for the %s on %s", out.Weeks, in.Race, in.RaceDate)
		},
	)
}
