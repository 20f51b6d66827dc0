package units

import (
	"fmt"
	"strings"
)

const (
	LbPerKg   = 2.2046226218
	CmPerIn   = 2.54
	MPerMile  = 1609.344
	BarPerPsi = 0.0689475729
)

type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

func ParseSystem(s string) (System, error) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case "", Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown unit system: %s", s)
	}
}

func KgToLb(kg float64) float64 { return kg * LbPerKg }
func LbToKg(lb float64) float64 { return lb / LbPerKg }

func InToCm(in float64) float64 { return in * CmPerIn }
func CmToIn(cm float64) float64 { return cm / CmPerIn }

func MilesToMeters(mi float64) float64 { return mi * MPerMile }
func MetersToMiles(m float64) float64  { return m / MPerMile }

func PsiToBar(psi float64) float64 { return psi * BarPerPsi }
func BarToPsi(bar float64) float64 { return bar / BarPerPsi }

// WeightToKg converts a weight given in the unit system's native unit to kilograms.
// WeightUnit is the weight unit label of a system.
func WeightUnit(s System) string {
	if s == Imperial {
		return "lb"
	}
	return "kg"
}

func WeightToKg(v float64, s System) float64 {
	if s == Imperial {
		return LbToKg(v)
	}
	return v
}

// LengthToCm converts a body length (height, circumference) to centimeters.
func LengthToCm(v float64, s System) float64 {
	if s == Imperial {
		return InToCm(v)
	}
	return v
}

var imperialCountries = map[string]bool{
	"US": true,
	"LR": true,
	"MM": true,
}

// DefaultSystemForCountry returns the customary unit system for an ISO 3166 alpha-2 country code.
func DefaultSystemForCountry(countryCode string) System {
	if imperialCountries[strings.ToUpper(countryCode)] {
		return Imperial
	}
	return Metric
}
