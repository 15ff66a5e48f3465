package main

import (
	"churn-engine/internal/config"
	"churn-engine/internal/infrastructure/logging"
	"churn-engine/internal/pipeline"
	"churn-engine/internal/report"
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

func main() {
	var (
		configPath   = flag.String("config", ".", "directory containing config.yml")
		contractPath = flag.String("contract", "", "contract data path (overrides config)")
		personalPath = flag.String("personal", "", "personal data path (overrides config)")
		internetPath = flag.String("internet", "", "internet data path (overrides config)")
		phonePath    = flag.String("phone", "", "phone data path (overrides config)")
		reportPath   = flag.String("out", "", "report output path (overrides config)")
	)
	flag.Parse()

	cfg, logger := initializeApp(*configPath)
	applyOverrides(cfg, *contractPath, *personalPath, *internetPath, *phonePath, *reportPath)
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	job := pipeline.NewJob(cfg, logger)
	rep, err := job.Run(context.Background())
	if err != nil {
		logger.Error("Pipeline run failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := writeReport(cfg.Output.ReportPath, rep); err != nil {
		logger.Error("Failed to write report", slog.Any("error", err))
		os.Exit(1)
	}
	rep.Render(os.Stdout)
	logger.Info("Report written.", "path", cfg.Output.ReportPath)
}

func initializeApp(configPath string) (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())
	return cfg, logger
}

func applyOverrides(cfg *config.Config, contract, personal, internet, phone, out string) {
	if contract != "" {
		cfg.Data.ContractPath = contract
	}
	if personal != "" {
		cfg.Data.PersonalPath = personal
	}
	if internet != "" {
		cfg.Data.InternetPath = internet
	}
	if phone != "" {
		cfg.Data.PhonePath = phone
	}
	if out != "" {
		cfg.Output.ReportPath = out
	}
}

func writeReport(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rep.WriteJSON(f)
}
