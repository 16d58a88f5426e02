package autopsy

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned for every request when the model failed to
// load at startup.
var ErrModelUnavailable = errors.New("model not loaded properly")

// PredictionError wraps any failure while encoding a record or running the
// classifier.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction error: %v", e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// Detail renders a service error as the message shown to API callers.
func Detail(err error) string {
	var predErr *PredictionError
	switch {
	case errors.Is(err, ErrModelUnavailable):
		return "Model not loaded properly"
	case errors.As(err, &predErr):
		return "Prediction error: " + predErr.Err.Error()
	default:
		return err.Error()
	}
}
