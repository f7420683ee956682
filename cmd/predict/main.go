// Package main provides the entry point for the matchup prediction CLI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fight-odds/internal/config"
	"github.com/yourusername/fight-odds/internal/logger"
	"github.com/yourusername/fight-odds/internal/models"
	"github.com/yourusername/fight-odds/internal/prob"
	"github.com/yourusername/fight-odds/internal/service"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to config file (optional)")
		fighterAPath = flag.String("fighter-a", "", "Path to fighter A stats JSON")
		fighterBPath = flag.String("fighter-b", "", "Path to fighter B stats JSON")
		jsonOutput   = flag.Bool("json", false, "Emit the full result as JSON")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	if *fighterAPath == "" || *fighterBPath == "" {
		log.Fatal("Both -fighter-a and -fighter-b stat files are required")
	}

	a := readFighterStats(*fighterAPath, log)
	b := readFighterStats(*fighterBPath, log)

	analyzer := service.NewAnalyzer(service.AnalyzerConfig{
		ModelVersion: cfg.Model.WeightsName,
		BootstrapOpts: prob.BootstrapOptions{
			Iterations: cfg.Model.BootstrapIterations,
			Noise:      cfg.Model.BootstrapNoise,
			Seed:       cfg.Model.BootstrapSeed,
		},
		TotalRounds:  cfg.Model.TotalRounds,
		CacheTTL:     cfg.Cache.TTL(),
		CacheMaxSize: cfg.Cache.MaxSize,
	}, nil, log)

	result, err := analyzer.Analyze(context.Background(), a, b)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *jsonOutput {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(encoded))
		return
	}

	printResult(result)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}

	log := logrus.New()
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// readFighterStats loads a flat stat map from a JSON file. Unknown keys
// (name, division and other metadata) pass through harmlessly.
func readFighterStats(path string, log *logrus.Logger) models.FighterStats {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read fighter file %s: %v", path, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		log.Fatalf("Failed to parse fighter file %s: %v", path, err)
	}

	stats, err := models.FighterStatsFromMap(fields)
	if err != nil {
		log.Fatalf("Invalid fighter stats in %s: %v", path, err)
	}
	return stats
}

func printResult(result *service.AnalysisResult) {
	fmt.Printf("Win probability (fighter A): %.4f\n", result.Probability)
	fmt.Printf("Bootstrap mean:              %.4f\n", result.MeanProbability)
	fmt.Printf("Empirical 90%% interval:      [%.4f, %.4f]\n", result.Interval.Low, result.Interval.High)

	fmt.Println("\nFeature contributions (pre-sigmoid):")
	keys := make([]string, 0, len(result.Contributions))
	for k := range result.Contributions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-24s %+.5f\n", k, result.Contributions[k])
	}

	fmt.Println("\nRound-by-round trajectory:")
	for i, p := range result.RoundProbabilities {
		fmt.Printf("  round %d: %.4f\n", i+1, p)
	}
}
