package pipeline

import (
	"math"
	"math/rand"
	"sort"

	"churn-engine/internal/features"
	"churn-engine/internal/pkg/apperrors"
)

type Split struct {
	Train *features.Matrix
	Eval  *features.Matrix
}

// StratifiedSplit partitions the matrix into disjoint training and
// evaluation subsets, sampling the evaluation fraction within each label
// group so class balance carries over. The shuffle is driven by a seeded
// source, so a fixed seed reproduces the exact split.
func StratifiedSplit(m *features.Matrix, evalFraction float64, seed int64) (*Split, error) {
	if m == nil || m.Len() == 0 {
		return nil, apperrors.NewInvalidArgumentError("cannot split an empty matrix")
	}
	if evalFraction <= 0 || evalFraction >= 1 {
		return nil, apperrors.NewInvalidArgumentError("evalFraction must be strictly between 0 and 1")
	}

	groups := make(map[int][]int)
	for i, label := range m.Labels {
		groups[label] = append(groups[label], i)
	}
	labels := make([]int, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	rng := rand.New(rand.NewSource(seed))
	inEval := make(map[int]struct{})
	for _, label := range labels {
		group := append([]int(nil), groups[label]...)
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		n := int(math.Round(float64(len(group)) * evalFraction))
		// keep both subsets non-empty per class whenever the group allows
		if n == 0 && len(group) > 1 {
			n = 1
		}
		if n == len(group) && len(group) > 1 {
			n--
		}
		for _, idx := range group[:n] {
			inEval[idx] = struct{}{}
		}
	}

	trainIdx := make([]int, 0, m.Len()-len(inEval))
	evalIdx := make([]int, 0, len(inEval))
	for i := 0; i < m.Len(); i++ {
		if _, ok := inEval[i]; ok {
			evalIdx = append(evalIdx, i)
		} else {
			trainIdx = append(trainIdx, i)
		}
	}

	return &Split{
		Train: take(m, trainIdx),
		Eval:  take(m, evalIdx),
	}, nil
}

func take(m *features.Matrix, indices []int) *features.Matrix {
	out := &features.Matrix{
		Names:       m.Names,
		Rows:        make([][]float64, 0, len(indices)),
		Labels:      make([]int, 0, len(indices)),
		CustomerIDs: make([]string, 0, len(indices)),
	}
	for _, i := range indices {
		out.Rows = append(out.Rows, m.Rows[i])
		out.Labels = append(out.Labels, m.Labels[i])
		out.CustomerIDs = append(out.CustomerIDs, m.CustomerIDs[i])
	}
	return out
}
