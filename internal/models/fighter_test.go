package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func fullStatsMap() map[string]any {
	return map[string]any{
		"slpm":        5.36,
		"sapm":        3.25,
		"strike_acc":  0.59,
		"strike_def":  0.42,
		"td_avg15":    4.31,
		"td_acc":      0.47,
		"td_def":      1.00,
		"sub_avg15":   2.77,
		"kd_avg":      0.62,
		"aft_minutes": 6.05,
	}
}

func TestFighterStatsFromMap(t *testing.T) {
	stats, err := FighterStatsFromMap(fullStatsMap())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.SLpM != 5.36 {
		t.Errorf("slpm = %v, want 5.36", stats.SLpM)
	}
	if stats.TDDef != 1.00 {
		t.Errorf("td_def = %v, want 1.00", stats.TDDef)
	}
	if stats.AFTMinutes != 6.05 {
		t.Errorf("aft_minutes = %v, want 6.05", stats.AFTMinutes)
	}
}

func TestFighterStatsFromMapNormalizesPercentages(t *testing.T) {
	asFraction := fullStatsMap()
	asPercent := fullStatsMap()
	asPercent["strike_acc"] = 59.0
	asPercent["strike_def"] = 42.0
	asPercent["td_acc"] = 47.0
	asPercent["td_def"] = 100.0

	fromFraction, err := FighterStatsFromMap(asFraction)
	if err != nil {
		t.Fatalf("fraction form failed: %v", err)
	}
	fromPercent, err := FighterStatsFromMap(asPercent)
	if err != nil {
		t.Fatalf("percent form failed: %v", err)
	}
	if fromFraction != fromPercent {
		t.Fatalf("percent and fraction inputs diverged: %+v vs %+v", fromPercent, fromFraction)
	}
}

func TestFighterStatsFromMapDefaultsMissingToZero(t *testing.T) {
	stats, err := FighterStatsFromMap(map[string]any{"slpm": 4.2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.SLpM != 4.2 {
		t.Errorf("slpm = %v, want 4.2", stats.SLpM)
	}
	if stats.SApM != 0 || stats.StrikeAcc != 0 || stats.AFTMinutes != 0 {
		t.Errorf("missing fields must default to zero: %+v", stats)
	}
}

func TestFighterStatsFromMapRejectsNonNumeric(t *testing.T) {
	fields := fullStatsMap()
	fields["sapm"] = "a lot"

	_, err := FighterStatsFromMap(fields)
	if err == nil {
		t.Fatalf("expected error for non-numeric field")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "sapm" {
		t.Errorf("error field = %q, want sapm", verr.Field)
	}
}

func TestFighterStatsFromMapRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
	}{
		{"negative slpm", "slpm", -1.0},
		{"aft above ceiling", "aft_minutes", 30.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := fullStatsMap()
			fields[tc.field] = tc.value
			if _, err := FighterStatsFromMap(fields); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestFighterStatsFromMapAcceptsCoercibleTypes(t *testing.T) {
	fields := fullStatsMap()
	fields["td_def"] = 1           // int
	fields["kd_avg"] = float32(0.62)
	fields["slpm"] = json.Number("5.36")
	fields["nickname"] = "The Wolf" // metadata keys are ignored

	stats, err := FighterStatsFromMap(fields)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TDDef != 1.0 {
		t.Errorf("td_def = %v, want 1.0", stats.TDDef)
	}
	if stats.SLpM != 5.36 {
		t.Errorf("slpm = %v, want 5.36", stats.SLpM)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "slpm", Reason: "not numeric: string"}
	if err.Error() == "" {
		t.Fatalf("expected non-empty message")
	}
}
