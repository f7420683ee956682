// Package main provides the entry point for the calibration CLI, which fits
// model weights from labeled historical bouts either once or on a schedule.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fight-odds/internal/config"
	"github.com/yourusername/fight-odds/internal/database"
	"github.com/yourusername/fight-odds/internal/dataset"
	"github.com/yourusername/fight-odds/internal/health"
	"github.com/yourusername/fight-odds/internal/logger"
	"github.com/yourusername/fight-odds/internal/prob"
	"github.com/yourusername/fight-odds/internal/repository"
	"github.com/yourusername/fight-odds/internal/scheduler"
	"github.com/yourusername/fight-odds/internal/service"
)

// Build information - set via ldflags
var Version = "dev"

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
}

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Fit fight-odds model weights from labeled bouts",
	Long: `Fits logistic model weights by gradient descent over labeled historical
matchups, loaded from the configured database or a published dataset URL.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single calibration and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer closeDependencies()

		svc, err := buildCalibrationService(nil)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()

		fitted, err := svc.Run(ctx)
		if err != nil {
			return fmt.Errorf("calibration failed: %w", err)
		}

		fmt.Printf("Calibration complete: %s\n", fitted.ID)
		fmt.Printf("  samples: %d\n", fitted.Samples)
		fmt.Printf("  epochs:  %d\n", fitted.Epochs)
		for _, key := range prob.FeatureKeys() {
			fmt.Printf("  %-24s %+.5f\n", key, fitted.Weights[key])
		}
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run calibration on the configured cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer closeDependencies()

		if cfg.Calibration.Schedule == "" {
			return fmt.Errorf("calibration.schedule is not configured")
		}

		analyzer := buildAnalyzer()
		svc, err := buildCalibrationService(analyzer)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if err := svc.LoadLatest(ctx); err != nil {
			log.WithError(err).Warn("Could not restore persisted weights")
		}

		sched := scheduler.NewScheduler(svc, log)
		if err := sched.ScheduleCalibration(cfg.Calibration.Schedule); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}

		healthServer := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        cfg.Health.Port,
			Logger:      log,
			DB:          databasePinger(),
			Model:       analyzer,
		})
		if err := healthServer.Start(ctx); err != nil {
			return err
		}
		healthServer.SetReady(true)

		log.WithField("next_run", sched.GetNextRun()).Info("Calibration scheduler running")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("Shutting down")
		healthServer.SetReady(false)
		cancel()
		return sched.Stop()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	log = logger.NewLogger(cfg.App.LogLevel)

	if !cfg.Database.Enabled() {
		log.Info("No database configured, running without persistence")
		return nil
	}

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return nil
}

func closeDependencies() {
	if db != nil {
		db.Close()
	}
}

func databasePinger() health.DatabasePinger {
	if db == nil {
		return nil
	}
	return db
}

func buildAnalyzer() *service.Analyzer {
	var predictions repository.PredictionRepository
	if repos != nil {
		predictions = repos.Prediction
	}

	return service.NewAnalyzer(service.AnalyzerConfig{
		ModelVersion: cfg.Model.WeightsName,
		BootstrapOpts: prob.BootstrapOptions{
			Iterations: cfg.Model.BootstrapIterations,
			Noise:      cfg.Model.BootstrapNoise,
			Seed:       cfg.Model.BootstrapSeed,
		},
		TotalRounds:  cfg.Model.TotalRounds,
		CacheTTL:     cfg.Cache.TTL(),
		CacheMaxSize: cfg.Cache.MaxSize,
	}, predictions, log)
}

// buildCalibrationService picks the training data source: the database when
// one is configured, otherwise the published dataset endpoint.
func buildCalibrationService(analyzer *service.Analyzer) (*service.CalibrationService, error) {
	var source service.PairSource
	var weights repository.ModelWeightsRepository

	switch {
	case repos != nil:
		source = &service.RepositoryPairSource{Matchups: repos.Matchup}
		weights = repos.ModelWeights
	case cfg.Dataset.URL != "":
		clientCfg := dataset.DefaultHTTPClientConfig()
		clientCfg.Timeout = cfg.Dataset.Timeout()
		clientCfg.MaxRetries = cfg.Dataset.MaxRetries
		if cfg.Dataset.RateLimit > 0 {
			clientCfg.RateLimit = cfg.Dataset.RateLimit
		}
		client := dataset.NewRateLimitedHTTPClient(clientCfg, log)
		source = dataset.NewLoader(client, cfg.Dataset.URL, log)
	default:
		return nil, fmt.Errorf("no training data source: configure a database or dataset.url")
	}

	return service.NewCalibrationService(service.CalibrationConfig{
		WeightsName: cfg.Model.WeightsName,
		FitOpts: prob.FitOptions{
			L2:           cfg.Calibration.L2,
			LearningRate: cfg.Calibration.LearningRate,
			Epochs:       cfg.Calibration.Epochs,
		},
		MinMatchups: cfg.Calibration.MinMatchups,
	}, source, weights, analyzer, log), nil
}
