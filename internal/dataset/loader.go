package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fight-odds/internal/metrics"
	"github.com/yourusername/fight-odds/internal/models"
)

// LabeledBout is one historical fight in a provider dataset, both corners'
// raw stat lines plus the outcome from fighter A's perspective.
type LabeledBout struct {
	FighterA RawFighterStats `json:"fighter_a"`
	FighterB RawFighterStats `json:"fighter_b"`
	AWon     bool            `json:"a_won"`
	FoughtAt time.Time       `json:"fought_at,omitempty"`
}

// Dataset is the top-level provider payload
type Dataset struct {
	Bouts []LabeledBout `json:"bouts"`
}

// Loader fetches and normalizes labeled bout datasets over HTTP
type Loader struct {
	client *RateLimitedHTTPClient
	url    string
	log    *logrus.Logger
}

// NewLoader creates a dataset loader for the given endpoint
func NewLoader(client *RateLimitedHTTPClient, url string, log *logrus.Logger) *Loader {
	return &Loader{client: client, url: url, log: log}
}

// Load fetches the dataset and normalizes every bout into a labeled pair.
// A bout with a malformed stat line fails the whole load rather than being
// silently dropped, so calibration never runs on a partial dataset.
func (l *Loader) Load(ctx context.Context) ([]models.LabeledPair, error) {
	start := time.Now()

	resp, err := l.client.Get(ctx, l.url)
	if err != nil {
		metrics.DatasetFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.DatasetFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("dataset endpoint returned status %d", resp.StatusCode)
	}

	var ds Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		metrics.DatasetFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	pairs := make([]models.LabeledPair, 0, len(ds.Bouts))
	for i, bout := range ds.Bouts {
		a, err := Normalize(bout.FighterA)
		if err != nil {
			return nil, fmt.Errorf("bout %d fighter A: %w", i, err)
		}
		b, err := Normalize(bout.FighterB)
		if err != nil {
			return nil, fmt.Errorf("bout %d fighter B: %w", i, err)
		}
		pairs = append(pairs, models.LabeledPair{FighterA: a, FighterB: b, AWon: bout.AWon})
	}

	metrics.DatasetFetchesTotal.WithLabelValues("success").Inc()
	l.log.WithFields(logrus.Fields{
		"bouts":    len(pairs),
		"duration": time.Since(start).String(),
	}).Info("Dataset loaded")

	return pairs, nil
}
