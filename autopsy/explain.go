package autopsy

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	PositiveConclusion = "Heart Disease was the likely cause of death"
	NegativeConclusion = "Heart Disease was likely NOT the cause of death"

	positiveExplanation = "positive-explanation"
	negativeExplanation = "negative-explanation"
)

var explanations = mustCatalog(map[string]string{
	positiveExplanation: "The analysis indicates with %s%% probability that heart disease was a significant factor in the death.",
	negativeExplanation: "The analysis suggests that heart disease was likely not a significant factor in the death (probability: %s%%).",
})

// mustCatalog panics at init when a template fails to register.
func mustCatalog(templates map[string]string) *catalog.Builder {
	b, err := newCatalog(templates)
	if err != nil {
		panic(err)
	}
	return b
}

func newCatalog(templates map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range templates {
		if err := b.SetString(language.English, key, msg); err != nil {
			return nil, fmt.Errorf("register %q: %w", key, err)
		}
	}
	return b, nil
}

// Percent formats a probability as a percentage with one decimal place,
// so 0.999 prints as "99.9".
func Percent(probability float64) string {
	return strconv.FormatFloat(probability*100, 'f', 1, 64)
}

// Explain builds the caller-facing result for a predicted class and the
// positive-class probability.
func Explain(label int, probability float64) Result {
	p := message.NewPrinter(language.English, message.Catalog(explanations))
	if label == 1 {
		return Result{
			Conclusion:  PositiveConclusion,
			Explanation: p.Sprintf(positiveExplanation, Percent(probability)),
			Probability: probability,
		}
	}
	return Result{
		Conclusion:  NegativeConclusion,
		Explanation: p.Sprintf(negativeExplanation, Percent(probability)),
		Probability: probability,
	}
}
