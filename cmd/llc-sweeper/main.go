package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/internal/magnetics"
	"github.com/iwvelando/llc-sweeper/internal/server"
	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"github.com/iwvelando/llc-sweeper/pkg/constants"
	"github.com/iwvelando/llc-sweeper/pkg/output"
	"github.com/iwvelando/llc-sweeper/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// adviseMagnetics asks the advisor for transformer and resonant inductor
// designs at the full-load corner of each reported candidate. Advisor warnings
// are folded into the candidate and the score is recomputed through Rescore;
// an unavailable advisor leaves the candidates untouched.
func adviseMagnetics(logger *zap.Logger, advisor magnetics.Advisor, spec config.Specification, diverse []sweep.Result) {
	for i := range diverse {
		changed := false
		calls := []struct {
			component string
			outcome   magnetics.Outcome
		}{
			{"transformer", advisor.DesignTransformer(spec, diverse[i], magnetics.CornerFullLoad)},
			{"resonant inductor", advisor.DesignResonantInductor(spec, diverse[i], magnetics.CornerFullLoad)},
		}
		for _, call := range calls {
			switch call.outcome.Status {
			case magnetics.StatusOK:
				if len(call.outcome.Warnings) > 0 {
					diverse[i].Warnings = append(diverse[i].Warnings, call.outcome.Warnings...)
					changed = true
				}
				logger.Info("magnetics advisor proposed designs",
					zap.String("op", "main.adviseMagnetics"),
					zap.String("component", call.component),
					zap.Int("candidate", i+1),
					zap.Int("designs", len(call.outcome.Designs)),
					zap.Float64("totalLossW", call.outcome.Metrics.TotalLossW),
				)
			case magnetics.StatusFail:
				diverse[i].Warnings = append(diverse[i].Warnings,
					fmt.Sprintf("magnetics advisor found no %s design", call.component))
				changed = true
			case magnetics.StatusUnavailable:
				// No advisor configured; nothing to fold in.
			}
		}
		if changed {
			sweep.Rescore(spec, &diverse[i])
		}
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	topN := flag.Int("top", 0, "number of diverse top candidates override")
	example := flag.Bool("example", false, "run the built-in design-article example instead of loading a config")
	serve := flag.Bool("serve", false, "serve the sweep HTTP API instead of running once")
	flag.Parse()

	var conf *config.Configuration
	if *example {
		conf = &config.Configuration{Design: config.Example()}
	} else {
		var err error
		conf, err = config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			os.Exit(1)
		}
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		address := conf.Server.Address
		if address == "" {
			address = constants.DefaultServerAddress
		}
		handler := server.NewHandler(logger, conf.Server.MaxUploadSizeBytes, version)
		logger.Info("serving sweep API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("server terminated",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Fail fast on input contract violations only; everything inside the
	// sweep surfaces as warnings and penalties.
	if err := conf.Design.Validate(); err != nil {
		logger.Fatal("invalid specification",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	spec := conf.Design.Normalize()
	results := sweep.Run(logger, spec)
	if len(results) == 0 {
		logger.Fatal("sweep produced no viable designs",
			zap.String("op", "main"),
		)
	}

	n := conf.Output.TopN
	if *topN > 0 {
		n = *topN
	}
	if n <= 0 {
		n = constants.DefaultTopN
	}
	diverse := sweep.DiverseTop(results, n)

	// The advisor is selected at composition time: a configured endpoint gets
	// the HTTP client, otherwise the Unavailable advisor.
	var advisor magnetics.Advisor = magnetics.Unavailable{}
	if conf.Magnetics.URL != "" {
		timeout := time.Duration(conf.Magnetics.TimeoutSeconds) * time.Second
		advisor = magnetics.NewClient(conf.Magnetics.URL, timeout, logger)
	}
	adviseMagnetics(logger, advisor, spec, diverse)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results, diverse)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatXLSX:
		path := conf.Output.File
		if path == "" {
			path = constants.DefaultXlsxFile
		}
		if err := output.XlsxFormat(results, path); err != nil {
			logger.Fatal("failed to write workbook",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("wrote workbook",
			zap.String("op", "main"),
			zap.String("path", path),
			zap.Int("candidates", len(results)),
		)
	}
}
