package ml

import "fmt"

// RandomForest averages the class probabilities of its trees.
type RandomForest struct {
	name     string
	features []string
	classes  []int
	trees    []*DecisionTree
}

func NewRandomForest(name string, features []string, classes []int, trees []*DecisionTree) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest %q: %w", name, ErrNotFitted)
	}
	return &RandomForest{name: name, features: features, classes: classes, trees: trees}, nil
}

func (rf *RandomForest) Name() string { return rf.name }
func (rf *RandomForest) FeatureNames() []string { return rf.features }
func (rf *RandomForest) Classes() []int { return rf.classes }

func (rf *RandomForest) PredictProba(row []float64) ([]float64, error) {
	if err := checkWidth(row, rf.features); err != nil {
		return nil, err
	}
	mean := make([]float64, len(rf.classes))
	for _, tree := range rf.trees {
		proba, err := tree.PredictProba(row)
		if err != nil {
			return nil, err
		}
		for i := range mean {
			mean[i] += proba[i]
		}
	}
	for i := range mean {
		mean[i] /= float64(len(rf.trees))
	}
	return mean, nil
}
