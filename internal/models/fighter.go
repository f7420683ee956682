package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FighterStats holds the public per-fighter statistics the probability
// model consumes. Percentage-like fields are always stored as fractions in
// [0,1]. Values are treated as immutable after construction.
type FighterStats struct {
	SLpM       float64 `json:"slpm" validate:"gte=0"`               // significant strikes landed per minute
	SApM       float64 `json:"sapm" validate:"gte=0"`               // significant strikes absorbed per minute
	StrikeAcc  float64 `json:"strike_acc" validate:"gte=0,lte=1"`   // striking accuracy
	StrikeDef  float64 `json:"strike_def" validate:"gte=0,lte=1"`   // striking defense
	TDAvg15    float64 `json:"td_avg15" validate:"gte=0"`           // takedowns landed per 15 minutes
	TDAcc      float64 `json:"td_acc" validate:"gte=0,lte=1"`       // takedown accuracy
	TDDef      float64 `json:"td_def" validate:"gte=0,lte=1"`       // takedown defense
	SubAvg15   float64 `json:"sub_avg15" validate:"gte=0"`          // submission attempts per 15 minutes
	KDAvg      float64 `json:"kd_avg" validate:"gte=0"`             // knockdowns per 15 minutes
	AFTMinutes float64 `json:"aft_minutes" validate:"gte=0,lte=25"` // average fight time in minutes
}

// FighterRecord is a stored fighter with identity and provenance.
type FighterRecord struct {
	ID        uuid.UUID    `db:"id" json:"id" validate:"required"`
	Name      string       `db:"name" json:"name" validate:"required"`
	Stats     FighterStats `db:"stats" json:"stats"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// statFields enumerates the accepted input keys. Percentage-like fields
// additionally accept values in (1,100] and are normalized to [0,1].
var statFields = []string{
	"slpm", "sapm", "strike_acc", "strike_def",
	"td_avg15", "td_acc", "td_def", "sub_avg15", "kd_avg", "aft_minutes",
}

var percentFields = map[string]bool{
	"strike_acc": true,
	"strike_def": true,
	"td_acc":     true,
	"td_def":     true,
}

var statsValidator = validator.New()

// FighterStatsFromMap builds a validated FighterStats from a loosely-typed
// field mapping. Missing fields default to 0.0; a non-numeric value for any
// known field is a ValidationError. Unknown keys are ignored so callers can
// pass through metadata alongside the stats.
func FighterStatsFromMap(fields map[string]any) (FighterStats, error) {
	values := make(map[string]float64, len(statFields))
	for _, name := range statFields {
		raw, ok := fields[name]
		if !ok || raw == nil {
			values[name] = 0.0
			continue
		}
		v, err := toFloat(raw)
		if err != nil {
			return FighterStats{}, &ValidationError{Field: name, Reason: err.Error()}
		}
		if percentFields[name] && v > 1.0 {
			v /= 100.0
		}
		values[name] = v
	}

	stats := FighterStats{
		SLpM:       values["slpm"],
		SApM:       values["sapm"],
		StrikeAcc:  values["strike_acc"],
		StrikeDef:  values["strike_def"],
		TDAvg15:    values["td_avg15"],
		TDAcc:      values["td_acc"],
		TDDef:      values["td_def"],
		SubAvg15:   values["sub_avg15"],
		KDAvg:      values["kd_avg"],
		AFTMinutes: values["aft_minutes"],
	}
	if err := stats.Validate(); err != nil {
		return FighterStats{}, err
	}
	return stats, nil
}

// Validate checks the stored fields against their declared domain ranges.
func (f FighterStats) Validate() error {
	if err := statsValidator.Struct(f); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return &ValidationError{
				Field:  fe.Field(),
				Reason: fmt.Sprintf("value %v violates %s=%s", fe.Value(), fe.Tag(), fe.Param()),
			}
		}
		return fmt.Errorf("invalid fighter stats: %w", err)
	}
	return nil
}

// toFloat coerces the numeric types a JSON/YAML decoder or caller may
// supply. Anything else is rejected.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not numeric: %v", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not numeric: %T", v)
	}
}
