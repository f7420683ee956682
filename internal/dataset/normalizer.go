package dataset

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/fight-odds/internal/models"
)

// RawFighterStats is a fighter's stat line as published by stat providers:
// percentages carry a trailing %, fight times are mm:ss strings, and rates
// are plain decimals.
type RawFighterStats map[string]string

// Field keys published as percentages or mm:ss durations. Everything else
// in a raw stat line is a plain per-minute or per-15-minute rate.
var rawPercentFields = map[string]bool{
	"strike_acc": true,
	"strike_def": true,
	"td_acc":     true,
	"td_def":     true,
}

var rawTimeFields = map[string]bool{
	"aft_minutes": true,
}

// ParsePercent converts a provider percentage string ("59%", "59", "0.59")
// to a fraction in [0,1]. Values above 1 are assumed to be on the 0-100
// scale.
func ParsePercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	if d.GreaterThan(decimal.NewFromInt(1)) {
		d = d.Div(decimal.NewFromInt(100))
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseFightTime converts a provider mm:ss duration ("13:45") to decimal
// minutes (13.75). Plain decimals pass through unchanged.
func ParseFightTime(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.Contains(trimmed, ":") {
		return ParseRate(trimmed)
	}

	parts := strings.SplitN(trimmed, ":", 2)
	mins, err := decimal.NewFromString(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid fight time %q: %w", s, err)
	}
	secs, err := decimal.NewFromString(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid fight time %q: %w", s, err)
	}
	if secs.IsNegative() || secs.GreaterThanOrEqual(decimal.NewFromInt(60)) {
		return 0, fmt.Errorf("invalid fight time %q: seconds out of range", s)
	}

	total := mins.Add(secs.Div(decimal.NewFromInt(60)))
	f, _ := total.Float64()
	return f, nil
}

// ParseRate converts a plain decimal rate string ("5.36") to a float
func ParseRate(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// Normalize converts a raw provider stat line into validated FighterStats.
// Empty or missing fields default to zero; malformed values are rejected.
func Normalize(raw RawFighterStats) (models.FighterStats, error) {
	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}

		var (
			parsed float64
			err    error
		)
		switch {
		case rawPercentFields[key]:
			parsed, err = ParsePercent(value)
		case rawTimeFields[key]:
			parsed, err = ParseFightTime(value)
		default:
			parsed, err = ParseRate(value)
		}
		if err != nil {
			return models.FighterStats{}, &models.ValidationError{Field: key, Reason: err.Error()}
		}
		fields[key] = parsed
	}

	return models.FighterStatsFromMap(fields)
}
