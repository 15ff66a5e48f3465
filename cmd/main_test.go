package main

import (
	"testing"

	"churn-engine/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestApplyOverrides(t *testing.T) {
	t.Run("flags replace configured paths", func(t *testing.T) {
		cfg := &config.Config{
			Data: config.DataConfig{
				ContractPath: "data/contract.csv",
				PersonalPath: "data/personal.csv",
				InternetPath: "data/internet.csv",
				PhonePath:    "data/phone.csv",
			},
			Output: config.OutputConfig{ReportPath: "report.json"},
		}

		applyOverrides(cfg, "c.csv", "", "i.csv", "", "out.json")

		assert.Equal(t, "c.csv", cfg.Data.ContractPath)
		assert.Equal(t, "data/personal.csv", cfg.Data.PersonalPath)
		assert.Equal(t, "i.csv", cfg.Data.InternetPath)
		assert.Equal(t, "data/phone.csv", cfg.Data.PhonePath)
		assert.Equal(t, "out.json", cfg.Output.ReportPath)
	})
}
