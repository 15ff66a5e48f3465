package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"churn-engine/internal/config"
	"churn-engine/internal/dataset"
	"churn-engine/internal/domain/customer"
	"churn-engine/internal/features"
	"churn-engine/internal/infrastructure/monitoring"
	"churn-engine/internal/model"
	"churn-engine/internal/report"
)

// Job is one churn-analysis run: load, merge, engineer, split, train,
// evaluate. A failure at any stage aborts the run; there is no partial
// result.
type Job struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewJob(cfg *config.Config, logger *slog.Logger) *Job {
	if cfg == nil || logger == nil {
		panic("Job dependencies cannot be nil")
	}
	return &Job{
		cfg:    cfg,
		logger: logger.With("job", "ChurnAnalysis"),
	}
}

func (j *Job) Run(ctx context.Context) (*report.Report, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting churn analysis pipeline.")

	var records []customer.Record
	err := j.stage(ctx, "load", func() (stageErr error) {
		records, stageErr = j.loadAndMerge(ctx)
		return stageErr
	})
	if err != nil {
		return nil, err
	}

	withoutInternet, withoutPhone := 0, 0
	for i := range records {
		if !records[i].HasInternet() {
			withoutInternet++
		}
		if !records[i].HasPhone() {
			withoutPhone++
		}
	}
	if withoutInternet > 0 || withoutPhone > 0 {
		j.logger.WarnContext(ctx, "Merged data required NoService filling.",
			slog.Int("without_internet", withoutInternet),
			slog.Int("without_phone", withoutPhone))
	}

	var matrix *features.Matrix
	err = j.stage(ctx, "features", func() (stageErr error) {
		matrix, stageErr = features.Build(records)
		return stageErr
	})
	if err != nil {
		return nil, err
	}

	var split *Split
	err = j.stage(ctx, "split", func() (stageErr error) {
		split, stageErr = StratifiedSplit(matrix, j.cfg.Split.EvalFraction, j.cfg.Split.Seed)
		return stageErr
	})
	if err != nil {
		return nil, err
	}
	monitoring.RecordSubsetSize("train", split.Train.Len())
	monitoring.RecordSubsetSize("eval", split.Eval.Len())

	var fitted *model.Model
	err = j.stage(ctx, "train", func() (stageErr error) {
		fitted, stageErr = model.Train(split.Train, model.ForestParams{
			Trees:    j.cfg.Forest.Trees,
			LeafSize: j.cfg.Forest.LeafSize,
			Seed:     j.cfg.Forest.Seed,
		})
		return stageErr
	})
	if err != nil {
		return nil, err
	}

	var result *model.Evaluation
	err = j.stage(ctx, "evaluate", func() (stageErr error) {
		result, stageErr = model.Evaluate(fitted, split.Eval)
		return stageErr
	})
	if err != nil {
		return nil, err
	}

	churned := 0
	for _, label := range matrix.Labels {
		churned += label
	}
	datasetSummary := report.DatasetSummary{
		TotalCustomers:   matrix.Len(),
		ChurnedCustomers: churned,
		ChurnRate:        float64(churned) / float64(matrix.Len()),
		WithoutInternet:  withoutInternet,
		WithoutPhone:     withoutPhone,
		TrainSize:        split.Train.Len(),
		EvalSize:         split.Eval.Len(),
	}
	modelSummary := report.ModelSummary{
		Algorithm:    report.Algorithm,
		Trees:        j.cfg.Forest.Trees,
		LeafSize:     j.cfg.Forest.LeafSize,
		ForestSeed:   j.cfg.Forest.Seed,
		SplitSeed:    j.cfg.Split.Seed,
		EvalFraction: j.cfg.Split.EvalFraction,
		Threshold:    model.ChurnThreshold,
	}

	duration := time.Since(startTime)
	j.logger.InfoContext(ctx, "Churn analysis pipeline finished successfully.",
		slog.Duration("duration", duration),
		slog.Int("total_customers", datasetSummary.TotalCustomers),
		slog.Int("churned_customers", datasetSummary.ChurnedCustomers),
		slog.Int("train_size", datasetSummary.TrainSize),
		slog.Int("eval_size", datasetSummary.EvalSize),
		slog.Float64("accuracy", result.Accuracy),
		slog.Float64("auc_roc", result.AUCROC))

	return report.New(datasetSummary, modelSummary, result, duration), nil
}

func (j *Job) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	j.logger.DebugContext(ctx, "Running pipeline stage.", slog.String("stage", name))
	if err := fn(); err != nil {
		j.logger.ErrorContext(ctx, "Pipeline stage failed.",
			slog.String("stage", name), slog.Any("error", err))
		return fmt.Errorf("stage %s: %w", name, err)
	}
	elapsed := time.Since(start)
	monitoring.RecordStage(name, elapsed)
	j.logger.InfoContext(ctx, "Pipeline stage finished.",
		slog.String("stage", name), slog.Duration("duration", elapsed))
	return nil
}

func (j *Job) loadAndMerge(ctx context.Context) ([]customer.Record, error) {
	contractFile, err := os.Open(j.cfg.Data.ContractPath)
	if err != nil {
		return nil, fmt.Errorf("open contract data: %w", err)
	}
	defer contractFile.Close()

	personalFile, err := os.Open(j.cfg.Data.PersonalPath)
	if err != nil {
		return nil, fmt.Errorf("open personal data: %w", err)
	}
	defer personalFile.Close()

	internetFile, err := os.Open(j.cfg.Data.InternetPath)
	if err != nil {
		return nil, fmt.Errorf("open internet data: %w", err)
	}
	defer internetFile.Close()

	phoneFile, err := os.Open(j.cfg.Data.PhonePath)
	if err != nil {
		return nil, fmt.Errorf("open phone data: %w", err)
	}
	defer phoneFile.Close()

	contracts, err := dataset.LoadContracts(contractFile)
	if err != nil {
		return nil, err
	}
	personal, err := dataset.LoadPersonal(personalFile)
	if err != nil {
		return nil, err
	}
	internet, err := dataset.LoadInternet(internetFile)
	if err != nil {
		return nil, err
	}
	phone, err := dataset.LoadPhone(phoneFile)
	if err != nil {
		return nil, err
	}

	j.logger.InfoContext(ctx, "Loaded data sources.",
		slog.Int("contract_rows", len(contracts)),
		slog.Int("personal_rows", len(personal)),
		slog.Int("internet_rows", len(internet)),
		slog.Int("phone_rows", len(phone)))

	return dataset.Merge(contracts, personal, internet, phone)
}
