// Package autopsy turns a verbal-autopsy health history into a heart-disease
// cause-of-death inference using a pretrained voting ensemble.
package autopsy

import "vapredict/ml"

// HealthData is one verbal-autopsy record. Every field must be present; age
// is any integer and the categorical answers are free text. Answers outside
// the form's options, the empty string included, carry no signal.
type HealthData struct {
	Age                   int    `json:"age"`
	HadDiabetes           string `json:"had_diabetes"`
	HadHeartDisease       string `json:"had_heart_disease"`
	HadHypertension       string `json:"had_hypertension"`
	HadObesity            string `json:"had_obesity"`
	HadStroke             string `json:"had_stroke"`
	HadBlueLips           string `json:"had_blue_lips"`
	HadAnkleSwelling      string `json:"had_ankle_swelling"`
	HadPuffiness          string `json:"had_puffiness"`
	HadDiffBreathing      string `json:"had_diff_breathing"`
	BreathingOnOff        string `json:"breathing_on_off"`
	FastBreathing         string `json:"fast_breathing"`
	HadWheezed            string `json:"had_wheezed"`
	HadChestPain          string `json:"had_chest_pain"`
	ChestPainDuration     string `json:"chest_pain_duration"`
	PhysicalActionPainful string `json:"physical_action_painful"`
	PainLocation          string `json:"pain_location"`
	UrineStop             string `json:"urine_stop"`
	HadLostConsciousness  string `json:"had_lost_consciousness"`
	HadConfusion          string `json:"had_confusion"`
}

// Answer sets offered by the intake form.
var (
	StandardAnswers     = []string{"Yes", "No", "Don't Know", "Refused to Answer"}
	BreathingAnswers    = []string{"Continuous", "On and Off", "Don't Know"}
	PainDurationAnswers = []string{"<30 minutes", "0.5-24 hours", ">24 hr", "Don't Know", "Refused to Answer"}
	PainLocationAnswers = []string{"Upper/middle chest", "Lower chest", "Left Arm", "Other", "Refused to Answer", "Don't Know"}
)

// FieldNames lists the JSON field names in declaration order.
func FieldNames() []string {
	return []string{
		"age",
		"had_diabetes",
		"had_heart_disease",
		"had_hypertension",
		"had_obesity",
		"had_stroke",
		"had_blue_lips",
		"had_ankle_swelling",
		"had_puffiness",
		"had_diff_breathing",
		"breathing_on_off",
		"fast_breathing",
		"had_wheezed",
		"had_chest_pain",
		"chest_pain_duration",
		"physical_action_painful",
		"pain_location",
		"urine_stop",
		"had_lost_consciousness",
		"had_confusion",
	}
}

// AnswerOptions returns the form's answer set for a categorical field.
func AnswerOptions(field string) []string {
	switch field {
	case "age":
		return nil
	case "breathing_on_off":
		return BreathingAnswers
	case "chest_pain_duration":
		return PainDurationAnswers
	case "pain_location":
		return PainLocationAnswers
	default:
		return StandardAnswers
	}
}

// Columns returns the record as an ordered row: age, then every categorical
// answer in FieldNames order.
func (h HealthData) Columns() []ml.Column {
	names := FieldNames()
	values := []interface{}{
		h.Age,
		h.HadDiabetes,
		h.HadHeartDisease,
		h.HadHypertension,
		h.HadObesity,
		h.HadStroke,
		h.HadBlueLips,
		h.HadAnkleSwelling,
		h.HadPuffiness,
		h.HadDiffBreathing,
		h.BreathingOnOff,
		h.FastBreathing,
		h.HadWheezed,
		h.HadChestPain,
		h.ChestPainDuration,
		h.PhysicalActionPainful,
		h.PainLocation,
		h.UrineStop,
		h.HadLostConsciousness,
		h.HadConfusion,
	}
	columns := make([]ml.Column, len(names))
	for i, name := range names {
		columns[i] = ml.Column{Name: name, Value: values[i]}
	}
	return columns
}
