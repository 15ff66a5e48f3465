package model

import (
	"churn-engine/internal/features"
	"churn-engine/internal/pkg/apperrors"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

type ConfusionMatrix struct {
	TrueNegative  int
	FalsePositive int
	FalseNegative int
	TruePositive  int
}

func (c ConfusionMatrix) Total() int {
	return c.TrueNegative + c.FalsePositive + c.FalseNegative + c.TruePositive
}

func (c ConfusionMatrix) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.TruePositive+c.TrueNegative) / float64(total)
}

type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
}

// ChurnMetrics treats churn (label 1) as the positive class.
func (c ConfusionMatrix) ChurnMetrics() ClassMetrics {
	return classMetrics(c.TruePositive, c.FalsePositive, c.FalseNegative)
}

// RetainedMetrics treats retention (label 0) as the positive class.
func (c ConfusionMatrix) RetainedMetrics() ClassMetrics {
	return classMetrics(c.TrueNegative, c.FalseNegative, c.FalsePositive)
}

func (c ConfusionMatrix) MacroMetrics() ClassMetrics {
	churn := c.ChurnMetrics()
	retained := c.RetainedMetrics()
	return ClassMetrics{
		Precision: (churn.Precision + retained.Precision) / 2,
		Recall:    (churn.Recall + retained.Recall) / 2,
		F1:        (churn.F1 + retained.F1) / 2,
	}
}

func classMetrics(tp, fp, fn int) ClassMetrics {
	m := ClassMetrics{}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Evaluation is the scoring result over the held-out subset.
type Evaluation struct {
	Confusion     ConfusionMatrix
	Churn         ClassMetrics
	Retained      ClassMetrics
	Macro         ClassMetrics
	Accuracy      float64
	AUCROC        float64
	Predicted     []int
	Probabilities []float64
}

// Evaluate scores every evaluation row and derives the report metrics.
// It never touches training data; only the held-out matrix goes in.
func Evaluate(m *Model, eval *features.Matrix) (*Evaluation, error) {
	if m == nil {
		return nil, apperrors.NewInvalidArgumentError("model is nil")
	}
	if eval == nil || eval.Len() == 0 {
		return nil, apperrors.NewInvalidArgumentError("evaluation matrix is empty")
	}

	result := &Evaluation{
		Predicted:     make([]int, eval.Len()),
		Probabilities: make([]float64, eval.Len()),
	}

	for i, row := range eval.Rows {
		p, predicted := m.Score(row)
		result.Probabilities[i] = p
		result.Predicted[i] = predicted

		switch {
		case eval.Labels[i] == 1 && predicted == 1:
			result.Confusion.TruePositive++
		case eval.Labels[i] == 1 && predicted == 0:
			result.Confusion.FalseNegative++
		case eval.Labels[i] == 0 && predicted == 1:
			result.Confusion.FalsePositive++
		default:
			result.Confusion.TrueNegative++
		}
	}

	result.Churn = result.Confusion.ChurnMetrics()
	result.Retained = result.Confusion.RetainedMetrics()
	result.Macro = result.Confusion.MacroMetrics()
	result.Accuracy = result.Confusion.Accuracy()
	result.AUCROC = aucROC(result.Probabilities, eval.Labels)

	return result, nil
}

// aucROC ranks the evaluation rows by predicted churn probability and
// integrates the ROC curve.
func aucROC(probabilities []float64, labels []int) float64 {
	scores := append([]float64(nil), probabilities...)
	classes := make([]bool, len(labels))
	for i, l := range labels {
		classes[i] = l == 1
	}

	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}
