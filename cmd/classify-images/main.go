package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/phone-usage-eval/internal/classify"
	"github.com/ironsheep/phone-usage-eval/internal/config"
	"github.com/ironsheep/phone-usage-eval/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("classify-images - label images by red/blue marker detection")
	fmt.Println()
	fmt.Println("Usage: classify-images [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <file>  YAML config overriding the defaults")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", config.LogLevelEnv)
	fmt.Println()
	fmt.Println("Defaults scan predict1 and predict2 and write result_detr.csv.")
	fmt.Println("Class 0 means a head and a phone marker were both found, 1 otherwise.")
	fmt.Println("Built with -tags gocv, detection runs through OpenCV.")
}

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("classify-images %s\n", Version)
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

	logger, err := logging.New("classify-images", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit),
		zap.String("detector", detectorName),
		zap.Strings("folders", cfg.Classifier.Folders))

	runner, err := classify.NewRunner(cfg.Classifier,
		classify.WithDetector(newDetector()),
		classify.WithLogger(logger))
	if err != nil {
		logger.Fatal("invalid classifier settings", zap.Error(err))
	}
	if _, err := runner.Run(); err != nil {
		logger.Fatal("classification failed", zap.Error(err))
	}
}
