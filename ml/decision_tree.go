package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	name     string
	features []string
	classes  []int
	nodes    []TreeNode
}

// TreeNode is one entry of a flattened fitted tree. Leaves have Left == -1 and
// carry the per-class sample weights in Value.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

func (n TreeNode) isLeaf() bool {
	return n.Left < 0 && n.Right < 0
}

func NewDecisionTree(name string, features []string, classes []int, nodes []TreeNode) (*DecisionTree, error) {
	dt := &DecisionTree{name: name, features: features, classes: classes, nodes: nodes}
	if err := dt.validate(); err != nil {
		return nil, err
	}
	return dt, nil
}

func (dt *DecisionTree) Name() string { return dt.name }
func (dt *DecisionTree) FeatureNames() []string { return dt.features }
func (dt *DecisionTree) Classes() []int { return dt.classes }

func (dt *DecisionTree) PredictProba(row []float64) ([]float64, error) {
	if len(dt.nodes) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkWidth(row, dt.features); err != nil {
		return nil, err
	}
	idx := 0
	// a well-formed tree never visits more nodes than it has
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.isLeaf() {
			return normalize(node.Value), nil
		}
		if node.Feature < 0 || node.Feature >= len(row) {
			return nil, errors.New("feature index out of range")
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return nil, errors.New("invalid tree state")
		}
	}
	return nil, errors.New("tree contains a cycle")
}

func (dt *DecisionTree) validate() error {
	if len(dt.nodes) == 0 {
		return fmt.Errorf("tree %q: %w", dt.name, ErrNotFitted)
	}
	for i, node := range dt.nodes {
		if node.isLeaf() {
			if len(node.Value) != len(dt.classes) {
				return fmt.Errorf("tree %q: leaf %d has %d class values, want %d", dt.name, i, len(node.Value), len(dt.classes))
			}
			continue
		}
		if node.Left <= i || node.Right <= i || node.Left >= len(dt.nodes) || node.Right >= len(dt.nodes) {
			return fmt.Errorf("tree %q: node %d has invalid children", dt.name, i)
		}
		if len(dt.features) > 0 && node.Feature >= len(dt.features) {
			return fmt.Errorf("tree %q: node %d splits on unknown feature %d", dt.name, i, node.Feature)
		}
	}
	return nil
}

func normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total
	}
	return out
}
