package ml

import "errors"

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrProbaUnavailable = errors.New("predict_proba is not available when voting='hard'")
	ErrNotFitted        = errors.New("model not fitted")
)

// Classifier is the inference surface the prediction service needs from a
// loaded model. Rows must already be aligned to the model's expected columns.
type Classifier interface {
	Predict(row []float64) (int, error)
	PredictProba(row []float64) ([]float64, error)
}

// Estimator is one fitted base model inside an ensemble.
type Estimator interface {
	Name() string
	FeatureNames() []string
	Classes() []int
	PredictProba(row []float64) ([]float64, error)
}

func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func checkWidth(row []float64, features []string) error {
	if len(features) > 0 && len(row) != len(features) {
		return &WidthError{Got: len(row), Want: len(features)}
	}
	return nil
}
