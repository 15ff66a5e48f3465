package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"churn-engine/internal/model"

	"github.com/olekukonko/tablewriter"
)

const Algorithm = "random-forest"

type Report struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	RunDuration string            `json:"runDuration"`
	Dataset     DatasetSummary    `json:"dataset"`
	Model       ModelSummary      `json:"model"`
	Evaluation  EvaluationSummary `json:"evaluation"`
}

type DatasetSummary struct {
	TotalCustomers   int     `json:"totalCustomers"`
	ChurnedCustomers int     `json:"churnedCustomers"`
	ChurnRate        float64 `json:"churnRate"`
	WithoutInternet  int     `json:"withoutInternet"`
	WithoutPhone     int     `json:"withoutPhone"`
	TrainSize        int     `json:"trainSize"`
	EvalSize         int     `json:"evalSize"`
}

type ModelSummary struct {
	Algorithm    string  `json:"algorithm"`
	Trees        int     `json:"trees"`
	LeafSize     int     `json:"leafSize"`
	ForestSeed   int64   `json:"forestSeed"`
	SplitSeed    int64   `json:"splitSeed"`
	EvalFraction float64 `json:"evalFraction"`
	Threshold    float64 `json:"threshold"`
}

type ConfusionSummary struct {
	TrueNegative  int `json:"trueNegative"`
	FalsePositive int `json:"falsePositive"`
	FalseNegative int `json:"falseNegative"`
	TruePositive  int `json:"truePositive"`
}

type ClassSummary struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

type EvaluationSummary struct {
	Confusion ConfusionSummary `json:"confusionMatrix"`
	Retained  ClassSummary     `json:"retained"`
	Churn     ClassSummary     `json:"churn"`
	Macro     ClassSummary     `json:"macroAverage"`
	Accuracy  float64          `json:"accuracy"`
	AUCROC    float64          `json:"aucRoc"`
}

func New(dataset DatasetSummary, cfg ModelSummary, result *model.Evaluation, duration time.Duration) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC(),
		RunDuration: duration.Round(time.Millisecond).String(),
		Dataset:     dataset,
		Model:       cfg,
		Evaluation: EvaluationSummary{
			Confusion: ConfusionSummary{
				TrueNegative:  result.Confusion.TrueNegative,
				FalsePositive: result.Confusion.FalsePositive,
				FalseNegative: result.Confusion.FalseNegative,
				TruePositive:  result.Confusion.TruePositive,
			},
			Retained: classSummary(result.Retained),
			Churn:    classSummary(result.Churn),
			Macro:    classSummary(result.Macro),
			Accuracy: result.Accuracy,
			AUCROC:   result.AUCROC,
		},
	}
}

func classSummary(m model.ClassMetrics) ClassSummary {
	return ClassSummary{Precision: m.Precision, Recall: m.Recall, F1: m.F1}
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Render writes the human-readable evaluation tables.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Churn model evaluation (%s, %d trees, seed %d)\n",
		r.Model.Algorithm, r.Model.Trees, r.Model.ForestSeed)
	fmt.Fprintf(w, "Customers: %d total, %d churned (rate %.3f), train/eval %d/%d\n\n",
		r.Dataset.TotalCustomers, r.Dataset.ChurnedCustomers, r.Dataset.ChurnRate,
		r.Dataset.TrainSize, r.Dataset.EvalSize)

	confusion := tablewriter.NewWriter(w)
	confusion.SetHeader([]string{"", "Predicted Retained", "Predicted Churn"})
	confusion.Append([]string{"Actual Retained",
		fmt.Sprintf("%d", r.Evaluation.Confusion.TrueNegative),
		fmt.Sprintf("%d", r.Evaluation.Confusion.FalsePositive)})
	confusion.Append([]string{"Actual Churn",
		fmt.Sprintf("%d", r.Evaluation.Confusion.FalseNegative),
		fmt.Sprintf("%d", r.Evaluation.Confusion.TruePositive)})
	confusion.Render()

	fmt.Fprintln(w)

	metrics := tablewriter.NewWriter(w)
	metrics.SetHeader([]string{"Class", "Precision", "Recall", "F1"})
	metrics.Append(metricRow("Retained", r.Evaluation.Retained))
	metrics.Append(metricRow("Churn", r.Evaluation.Churn))
	metrics.Append(metricRow("Macro avg", r.Evaluation.Macro))
	metrics.Render()

	fmt.Fprintf(w, "\nAccuracy: %.4f\nAUC-ROC:  %.4f\n", r.Evaluation.Accuracy, r.Evaluation.AUCROC)
}

func metricRow(name string, c ClassSummary) []string {
	return []string{
		name,
		fmt.Sprintf("%.4f", c.Precision),
		fmt.Sprintf("%.4f", c.Recall),
		fmt.Sprintf("%.4f", c.F1),
	}
}
