package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const VotingClassifierType = "VotingClassifier"

// modelFile is the JSON export of a fitted voting ensemble.
type modelFile struct {
	Type       string          `json:"type"`
	Voting     Voting          `json:"voting"`
	Weights    []float64       `json:"weights"`
	Classes    []int           `json:"classes"`
	Estimators []estimatorFile `json:"estimators"`
}

type estimatorFile struct {
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	FeatureNamesIn []string     `json:"feature_names_in"`
	Classes        []int        `json:"classes"`
	Nodes          []TreeNode   `json:"nodes,omitempty"`
	Trees          [][]TreeNode `json:"trees,omitempty"`
	Coef           []float64    `json:"coef,omitempty"`
	Intercept      float64      `json:"intercept,omitempty"`
}

// LoadVotingModel reads a serialized voting ensemble and returns it together
// with the column order the first estimator was fitted on.
func LoadVotingModel(path string) (*VotingClassifier, []string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseVotingModel(payload)
}

func ParseVotingModel(payload []byte) (*VotingClassifier, []string, error) {
	var file modelFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, nil, fmt.Errorf("decode model: %w", err)
	}
	if file.Type != VotingClassifierType {
		return nil, nil, fmt.Errorf("loaded object is not a %s (got %q): %w", VotingClassifierType, file.Type, ErrUnsupportedModel)
	}

	if file.Voting == "" {
		file.Voting = HardVoting
	}

	estimators := make([]Estimator, 0, len(file.Estimators))
	for i, raw := range file.Estimators {
		est, err := buildEstimator(raw, file.Classes)
		if err != nil {
			return nil, nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		estimators = append(estimators, est)
	}

	model, err := NewVotingClassifier(file.Voting, file.Classes, file.Weights, estimators)
	if err != nil {
		return nil, nil, err
	}

	expected := estimators[0].FeatureNames()
	if len(expected) == 0 {
		return nil, nil, errors.New("first estimator has no feature_names_in")
	}
	return model, append([]string(nil), expected...), nil
}

func buildEstimator(raw estimatorFile, ensembleClasses []int) (Estimator, error) {
	classes := raw.Classes
	if len(classes) == 0 {
		classes = ensembleClasses
	}
	name := raw.Name
	if name == "" {
		name = raw.Type
	}
	switch raw.Type {
	case "decision_tree":
		return NewDecisionTree(name, raw.FeatureNamesIn, classes, raw.Nodes)
	case "random_forest":
		trees := make([]*DecisionTree, 0, len(raw.Trees))
		for i, nodes := range raw.Trees {
			tree, err := NewDecisionTree(fmt.Sprintf("%s[%d]", name, i), raw.FeatureNamesIn, classes, nodes)
			if err != nil {
				return nil, err
			}
			trees = append(trees, tree)
		}
		return NewRandomForest(name, raw.FeatureNamesIn, classes, trees)
	case "logistic_regression":
		return NewLogisticRegression(name, raw.FeatureNamesIn, classes, raw.Coef, raw.Intercept)
	default:
		return nil, fmt.Errorf("%q: %w", raw.Type, ErrUnsupportedModel)
	}
}
