package ml

import (
	"fmt"
	"math"
)

// LogisticRegression is a fitted binary logistic model:
// P(class 1) = 1 / (1 + exp(-(intercept + coef . x))).
type LogisticRegression struct {
	name      string
	features  []string
	classes   []int
	coef      []float64
	intercept float64
}

func NewLogisticRegression(name string, features []string, classes []int, coef []float64, intercept float64) (*LogisticRegression, error) {
	if len(classes) != 2 {
		return nil, fmt.Errorf("logistic regression %q: only binary models are supported, got %d classes", name, len(classes))
	}
	if len(coef) == 0 {
		return nil, fmt.Errorf("logistic regression %q: %w", name, ErrNotFitted)
	}
	if len(features) > 0 && len(coef) != len(features) {
		return nil, fmt.Errorf("logistic regression %q: %d coefficients for %d features", name, len(coef), len(features))
	}
	return &LogisticRegression{name: name, features: features, classes: classes, coef: coef, intercept: intercept}, nil
}

func (lr *LogisticRegression) Name() string { return lr.name }
func (lr *LogisticRegression) FeatureNames() []string { return lr.features }
func (lr *LogisticRegression) Classes() []int { return lr.classes }

func (lr *LogisticRegression) PredictProba(row []float64) ([]float64, error) {
	if len(row) != len(lr.coef) {
		return nil, &WidthError{Got: len(row), Want: len(lr.coef)}
	}
	z := lr.intercept
	for i, w := range lr.coef {
		z += w * row[i]
	}
	p := 1 / (1 + math.Exp(-z))
	return []float64{1 - p, p}, nil
}
