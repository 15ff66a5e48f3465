package model

import (
	"math/rand"

	"churn-engine/internal/features"
	"churn-engine/internal/pkg/apperrors"

	randomforest "github.com/malaschitz/randomForest"
)

// ChurnThreshold is the probability above which a customer is predicted
// to churn.
const ChurnThreshold = 0.5

// ForestParams is the full hyperparameter set of a training run. It is
// echoed into the report so every run documents how its model was built.
type ForestParams struct {
	Trees    int
	LeafSize int
	Seed     int64
}

// Model wraps the fitted forest together with the configuration that
// produced it.
type Model struct {
	forest *randomforest.Forest
	params ForestParams
	names  []string
}

// Train fits a random forest on the training matrix. The forest itself is
// an off-the-shelf capability; this layer only validates inputs and pins
// the configuration.
func Train(train *features.Matrix, params ForestParams) (*Model, error) {
	if train == nil || train.Len() == 0 {
		return nil, apperrors.NewInvalidArgumentError("training matrix is empty")
	}
	if params.Trees <= 0 {
		return nil, apperrors.NewInvalidArgumentError("tree count must be positive")
	}
	if params.LeafSize <= 0 {
		return nil, apperrors.NewInvalidArgumentError("leaf size must be positive")
	}
	if !hasBothClasses(train.Labels) {
		return nil, apperrors.NewInvalidArgumentError("training labels must contain both classes")
	}

	// The forest library draws from math/rand's global source; seeding it
	// is the only reproducibility hook the library offers.
	rand.Seed(params.Seed)

	forest := &randomforest.Forest{LeafSize: params.LeafSize}
	forest.Data = randomforest.ForestData{X: train.Rows, Class: train.Labels}
	forest.Train(params.Trees)

	return &Model{forest: forest, params: params, names: train.Names}, nil
}

func (m *Model) Params() ForestParams {
	return m.params
}

func (m *Model) FeatureNames() []string {
	return m.names
}

// Probability returns the fraction of trees voting churn for one feature
// row.
func (m *Model) Probability(row []float64) float64 {
	votes := m.forest.Vote(row)
	if len(votes) < 2 {
		return 0
	}
	return votes[1]
}

// Score predicts a single customer: churn probability plus the hard label
// at the churn threshold.
func (m *Model) Score(row []float64) (probability float64, label int) {
	probability = m.Probability(row)
	if probability >= ChurnThreshold {
		label = 1
	}
	return probability, label
}

func hasBothClasses(labels []int) bool {
	var seen0, seen1 bool
	for _, l := range labels {
		switch l {
		case 0:
			seen0 = true
		case 1:
			seen1 = true
		}
	}
	return seen0 && seen1
}
