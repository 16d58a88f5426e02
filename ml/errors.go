package ml

import "fmt"

// WidthError reports a feature row that does not match the fitted column count.
type WidthError struct {
	Got  int
	Want int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("X has %d features, but the model is expecting %d features as input", e.Got, e.Want)
}
