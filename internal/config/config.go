package config

import (
	"churn-engine/internal/pkg/apperrors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Output OutputConfig `mapstructure:"output"`
	Split  SplitConfig  `mapstructure:"split"`
	Forest ForestConfig `mapstructure:"forest"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type DataConfig struct {
	ContractPath string `mapstructure:"contractPath"`
	PersonalPath string `mapstructure:"personalPath"`
	InternetPath string `mapstructure:"internetPath"`
	PhonePath    string `mapstructure:"phonePath"`
}

type OutputConfig struct {
	ReportPath string `mapstructure:"reportPath"`
}

type SplitConfig struct {
	EvalFraction float64 `mapstructure:"evalFraction"`
	Seed         int64   `mapstructure:"seed"`
}

type ForestConfig struct {
	Trees    int   `mapstructure:"trees"`
	LeafSize int   `mapstructure:"leafSize"`
	Seed     int64 `mapstructure:"seed"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("data.contractPath", "data/contract.csv")
	viper.SetDefault("data.personalPath", "data/personal.csv")
	viper.SetDefault("data.internetPath", "data/internet.csv")
	viper.SetDefault("data.phonePath", "data/phone.csv")
	viper.SetDefault("output.reportPath", "report.json")
	viper.SetDefault("split.evalFraction", 0.25)
	viper.SetDefault("split.seed", 42)
	viper.SetDefault("forest.trees", 100)
	viper.SetDefault("forest.leafSize", 1)
	viper.SetDefault("forest.seed", 42)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Split.EvalFraction <= 0 || c.Split.EvalFraction >= 1 {
		return apperrors.NewInvalidArgumentError("split.evalFraction must be strictly between 0 and 1")
	}
	if c.Forest.Trees <= 0 {
		return apperrors.NewInvalidArgumentError("forest.trees must be positive")
	}
	if c.Forest.LeafSize <= 0 {
		return apperrors.NewInvalidArgumentError("forest.leafSize must be positive")
	}
	if c.Data.ContractPath == "" || c.Data.PersonalPath == "" || c.Data.InternetPath == "" || c.Data.PhonePath == "" {
		return apperrors.NewInvalidArgumentError("all four data source paths must be set")
	}
	if c.Output.ReportPath == "" {
		return apperrors.NewInvalidArgumentError("output.reportPath must be set")
	}
	return nil
}
