package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/phone-usage-eval/internal/config"
	"github.com/ironsheep/phone-usage-eval/internal/labels"
	"github.com/ironsheep/phone-usage-eval/internal/logging"
	"github.com/ironsheep/phone-usage-eval/internal/metrics"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("evaluate-metrics - score predicted labels against ground truth")
	fmt.Println()
	fmt.Println("Usage: evaluate-metrics [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <file>  YAML config overriding the defaults")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", config.LogLevelEnv)
	fmt.Println()
	fmt.Println("Defaults compare label.csv (ground truth) with 8x.csv (predictions).")
	fmt.Println("The report is printed to stdout, logs go to stderr.")
}

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("evaluate-metrics %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a file argument")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q (see --help)\n", args[i])
			os.Exit(2)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New("evaluate-metrics", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	if err := run(cfg.Metrics, logger); err != nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}
}

func run(cfg config.Metrics, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	truth, err := labels.ReadFile(cfg.GroundTruthPath)
	if err != nil {
		return fmt.Errorf("ground truth: %w", err)
	}
	pred, err := labels.ReadFile(cfg.PredictionsPath)
	if err != nil {
		return fmt.Errorf("predictions: %w", err)
	}
	logger.Debug("tables loaded",
		zap.String("ground_truth", cfg.GroundTruthPath),
		zap.Int("ground_truth_rows", len(truth)),
		zap.String("predictions", cfg.PredictionsPath),
		zap.Int("prediction_rows", len(pred)))

	res, err := metrics.Evaluate(truth, pred, logger)
	if err != nil {
		return err
	}
	return metrics.WriteReport(os.Stdout, res.Metrics)
}
