// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance
func NewLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()

	// Set output to stdout
	logger.SetOutput(os.Stdout)

	// Parse and set log level
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Use JSON formatter for structured logging in production
	if os.Getenv("ENVIRONMENT") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		// Use text formatter with colors for development
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger
}

// AnalysisLogger emits structured events for matchup analyses and
// calibration runs.
type AnalysisLogger struct {
	logger *logrus.Logger
}

// NewAnalysisLogger creates a logger for model events
func NewAnalysisLogger(logger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{logger: logger}
}

// LogMatchupScored records one scored matchup
func (l *AnalysisLogger) LogMatchupScored(modelVersion string, probability, meanProbability, intervalLow, intervalHigh float64, cached bool) {
	l.logger.WithFields(logrus.Fields{
		"component":        "analyzer",
		"model_version":    modelVersion,
		"probability":      probability,
		"mean_probability": meanProbability,
		"interval_low":     intervalLow,
		"interval_high":    intervalHigh,
		"cached":           cached,
	}).Info("Matchup scored")
}

// LogCalibrationRun records a completed weight calibration
func (l *AnalysisLogger) LogCalibrationRun(weightsName string, samples, epochs int, l2, learningRate float64) {
	l.logger.WithFields(logrus.Fields{
		"component":     "calibration",
		"weights_name":  weightsName,
		"samples":       samples,
		"epochs":        epochs,
		"l2":            l2,
		"learning_rate": learningRate,
	}).Info("Calibration run completed")
}
