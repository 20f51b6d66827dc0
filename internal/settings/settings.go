package settings

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/fitcalc/internal/timer"
	"github.com/2beens/fitcalc/internal/units"
)

var ErrSettingsNotFound = errors.New("settings not found")

// Settings are the per-user preferences the calculators and the timer start from.
type Settings struct {
	UserID           int64        `json:"-"`
	Units            units.System `json:"units" validate:"required,oneof=metric imperial"`
	Sex              string       `json:"sex,omitempty" validate:"omitempty,oneof=male female"`
	BirthYear        int          `json:"birth_year,omitempty" validate:"omitempty,gte=1900"`
	HeightCm         float64      `json:"height_cm,omitempty" validate:"omitempty,gte=50,lte=272"`
	WeightKg         float64      `json:"weight_kg,omitempty" validate:"omitempty,gte=20,lte=500"`
	ActivityLevel    string       `json:"activity_level,omitempty" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	DefaultTimerMode timer.Mode   `json:"default_timer_mode" validate:"required,oneof=stopwatch hiit tabata emom amrap"`
	Sound            bool         `json:"sound"`
	Vibration        bool         `json:"vibration"`
	UpdatedAt        *time.Time   `json:"updated_at,omitempty"`
}

func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:           userID,
		Units:            units.Metric,
		DefaultTimerMode: timer.ModeTabata,
		Sound:            true,
		Vibration:        true,
	}
}

// Calculation is one entry of a user's calculation history.
type Calculation struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"-"`
	Calculator string          `json:"calculator"`
	Title      string          `json:"title"`
	Input      json.RawMessage `json:"input"`
	Result     json.RawMessage `json:"result"`
	Summary    string          `json:"summary"`
	CreatedAt  time.Time       `json:"created_at"`
}

type HistoryPage struct {
	Items []*Calculation `json:"items"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Total int            `json:"total"`
}

type Export struct {
	Settings   *Settings      `json:"settings"`
	History    []*Calculation `json:"history"`
	ExportedAt time.Time      `json:"exported_at"`
}
