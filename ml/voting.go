package ml

import (
	"fmt"
	"slices"
)

type Voting string

const (
	SoftVoting Voting = "soft"
	HardVoting Voting = "hard"
)

// VotingClassifier combines fitted estimators either by averaging their class
// probabilities (soft) or by a weighted majority of their predictions (hard).
type VotingClassifier struct {
	voting     Voting
	classes    []int
	weights    []float64
	estimators []Estimator
}

func NewVotingClassifier(voting Voting, classes []int, weights []float64, estimators []Estimator) (*VotingClassifier, error) {
	if voting != SoftVoting && voting != HardVoting {
		return nil, fmt.Errorf("voting must be %q or %q, got %q", SoftVoting, HardVoting, voting)
	}
	if len(estimators) == 0 {
		return nil, fmt.Errorf("voting classifier: %w", ErrNotFitted)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("voting classifier has no classes")
	}
	if len(weights) == 0 {
		weights = make([]float64, len(estimators))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(estimators) {
		return nil, fmt.Errorf("number of weights (%d) must equal number of estimators (%d)", len(weights), len(estimators))
	}
	for _, est := range estimators {
		if !slices.Equal(est.Classes(), classes) {
			return nil, fmt.Errorf("estimator %q classes %v do not match ensemble classes %v", est.Name(), est.Classes(), classes)
		}
	}
	return &VotingClassifier{voting: voting, classes: classes, weights: weights, estimators: estimators}, nil
}

func (vc *VotingClassifier) Voting() Voting { return vc.voting }
func (vc *VotingClassifier) Classes() []int { return vc.classes }
func (vc *VotingClassifier) Estimators() []Estimator { return vc.estimators }

func (vc *VotingClassifier) Predict(row []float64) (int, error) {
	if vc.voting == SoftVoting {
		proba, err := vc.softProba(row)
		if err != nil {
			return 0, err
		}
		return vc.classes[argmax(proba)], nil
	}

	votes := make([]float64, len(vc.classes))
	for i, est := range vc.estimators {
		proba, err := est.PredictProba(row)
		if err != nil {
			return 0, fmt.Errorf("estimator %q: %w", est.Name(), err)
		}
		votes[argmax(proba)] += vc.weights[i]
	}
	return vc.classes[argmax(votes)], nil
}

func (vc *VotingClassifier) PredictProba(row []float64) ([]float64, error) {
	if vc.voting == HardVoting {
		return nil, ErrProbaUnavailable
	}
	return vc.softProba(row)
}

func (vc *VotingClassifier) softProba(row []float64) ([]float64, error) {
	avg := make([]float64, len(vc.classes))
	total := 0.0
	for i, est := range vc.estimators {
		proba, err := est.PredictProba(row)
		if err != nil {
			return nil, fmt.Errorf("estimator %q: %w", est.Name(), err)
		}
		if len(proba) != len(avg) {
			return nil, fmt.Errorf("estimator %q returned %d probabilities, want %d", est.Name(), len(proba), len(avg))
		}
		for c := range avg {
			avg[c] += vc.weights[i] * proba[c]
		}
		total += vc.weights[i]
	}
	if total == 0 {
		return nil, fmt.Errorf("estimator weights sum to zero")
	}
	for c := range avg {
		avg[c] /= total
	}
	return avg, nil
}
