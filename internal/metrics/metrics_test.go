package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegistersOnce(t *testing.T) {
	r1 := Registry()
	r2 := Registry()
	require.NotNil(t, r1)
	assert.Same(t, r1, r2)
}

func TestMetricsExposedOverHTTP(t *testing.T) {
	PredictionsTotal.Inc()
	PredictionProbability.Observe(0.65)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "fight_odds_predictions_total"),
		"expected predictions counter in scrape output")
	assert.True(t, strings.Contains(body, "fight_odds_prediction_probability"),
		"expected probability histogram in scrape output")
}
