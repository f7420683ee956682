// Package main provides the entry point for the round-trajectory CLI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fight-odds/internal/models"
	"github.com/yourusername/fight-odds/internal/prob"
)

func main() {
	var (
		fighterAPath = flag.String("fighter-a", "", "Path to fighter A stats JSON")
		fighterBPath = flag.String("fighter-b", "", "Path to fighter B stats JSON")
		totalRounds  = flag.Int("rounds", prob.DefaultTotalRounds, "Number of rounds to score")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *fighterAPath == "" || *fighterBPath == "" {
		log.Fatal("Both -fighter-a and -fighter-b stat files are required")
	}
	if *totalRounds < 1 || *totalRounds > prob.DefaultTotalRounds {
		log.Fatalf("Rounds must be between 1 and %d", prob.DefaultTotalRounds)
	}

	a := readFighterStats(*fighterAPath, log)
	b := readFighterStats(*fighterBPath, log)

	probs := prob.RoundWinProbabilities(a, b, *totalRounds)

	fmt.Printf("%-7s %-10s %-12s\n", "round", "fatigue", "P(A wins)")
	for i, p := range probs {
		round := i + 1
		fmt.Printf("%-7d %-10.4f %-12.4f\n", round, prob.FatigueFactor(a, round), p)
	}
}

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
