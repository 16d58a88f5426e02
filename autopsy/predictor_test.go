package autopsy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubModel struct {
	label int
	proba []float64
	err   error
	panic bool
	calls int
	rows  [][]float64
}

func (s *stubModel) Predict(row []float64) (int, error) {
	s.calls++
	s.rows = append(s.rows, row)
	if s.panic {
		panic("estimator exploded")
	}
	return s.label, s.err
}

func (s *stubModel) PredictProba(row []float64) ([]float64, error) {
	return s.proba, s.err
}

func sampleRecord() HealthData {
	return HealthData{
		Age:                   67,
		HadDiabetes:           "No",
		HadHeartDisease:       "Yes",
		HadHypertension:       "Yes",
		HadObesity:            "No",
		HadStroke:             "No",
		HadBlueLips:           "No",
		HadAnkleSwelling:      "Yes",
		HadPuffiness:          "No",
		HadDiffBreathing:      "Yes",
		BreathingOnOff:        "Continuous",
		FastBreathing:         "Yes",
		HadWheezed:            "No",
		HadChestPain:          "Yes",
		ChestPainDuration:     "0.5-24 hours",
		PhysicalActionPainful: "Yes",
		PainLocation:          "Left Arm",
		UrineStop:             "No",
		HadLostConsciousness:  "Yes",
		HadConfusion:          "Don't Know",
	}
}

var stubColumns = []string{"age", "had_chest_pain_Yes", "had_chest_pain_No", "pain_location_Left Arm", "had_stroke_Maybe"}

func TestPredictPositive(t *testing.T) {
	model := &stubModel{label: 1, proba: []float64{0.27, 0.73}}
	p := NewPredictor(model, stubColumns, zap.NewNop())

	res, err := p.Predict(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, PositiveConclusion, res.Conclusion)
	assert.Equal(t, 0.73, res.Probability)
	assert.Equal(t, "The analysis indicates with 73.0% probability that heart disease was a significant factor in the death.", res.Explanation)
	require.Len(t, model.rows, 1)
	assert.Equal(t, []float64{67, 1, 0, 1, 0}, model.rows[0])
}

func TestPredictNegative(t *testing.T) {
	model := &stubModel{label: 0, proba: []float64{0.8, 0.2}}
	p := NewPredictor(model, stubColumns, zap.NewNop())

	res, err := p.Predict(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, NegativeConclusion, res.Conclusion)
	assert.Equal(t, 0.2, res.Probability)
	assert.Equal(t, "The analysis suggests that heart disease was likely not a significant factor in the death (probability: 20.0%).", res.Explanation)
}

func TestPredictWithoutModel(t *testing.T) {
	p := NewPredictor(nil, nil, zap.NewNop())
	assert.False(t, p.Ready())

	for _, record := range []HealthData{{}, sampleRecord(), {Age: 1, HadStroke: "unknown"}} {
		_, err := p.Predict(context.Background(), record)
		assert.ErrorIs(t, err, ErrModelUnavailable)
		assert.Equal(t, "Model not loaded properly", Detail(err))
	}
}

func TestPredictWrapsModelErrors(t *testing.T) {
	p := NewPredictor(&stubModel{err: errors.New("bad input")}, stubColumns, zap.NewNop())

	_, err := p.Predict(context.Background(), sampleRecord())
	var predErr *PredictionError
	require.ErrorAs(t, err, &predErr)
	assert.Equal(t, "Prediction error: bad input", Detail(err))
}

func TestPredictRecoversPanics(t *testing.T) {
	p := NewPredictor(&stubModel{panic: true}, stubColumns, zap.NewNop())

	res, err := p.Predict(context.Background(), sampleRecord())
	assert.Nil(t, res)
	var predErr *PredictionError
	require.ErrorAs(t, err, &predErr)
	assert.Contains(t, Detail(err), "estimator exploded")
}

func TestPredictShortProbabilities(t *testing.T) {
	p := NewPredictor(&stubModel{label: 0, proba: []float64{1}}, stubColumns, zap.NewNop())

	_, err := p.Predict(context.Background(), sampleRecord())
	var predErr *PredictionError
	assert.ErrorAs(t, err, &predErr)
}

func TestPredictUnknownCategoryIsIgnored(t *testing.T) {
	model := &stubModel{label: 0, proba: []float64{0.6, 0.4}}
	p := NewPredictor(model, stubColumns, zap.NewNop())

	record := sampleRecord()
	record.HadChestPain = "Sometimes"
	record.PainLocation = "Back"
	_, err := p.Predict(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, []float64{67, 0, 0, 0, 0}, model.rows[0])
}

func TestPredictCache(t *testing.T) {
	model := &stubModel{label: 1, proba: []float64{0.1, 0.9}}
	p := NewPredictor(model, stubColumns, zap.NewNop(), WithCache(8))

	first, err := p.Predict(context.Background(), sampleRecord())
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, model.calls)
}

func TestLoadPredictor(t *testing.T) {
	p := LoadPredictor(filepath.Join("testdata", "va_model.json"), zap.NewNop())
	require.True(t, p.Ready())
	assert.Len(t, p.ExpectedColumns(), 5)

	res, err := p.Predict(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, PositiveConclusion, res.Conclusion)
	assert.InDelta(t, 0.9329, res.Probability, 1e-4)
}

func TestLoadPredictorMissingFile(t *testing.T) {
	p := LoadPredictor(filepath.Join(t.TempDir(), "va_model.json"), zap.NewNop())
	assert.False(t, p.Ready())

	_, err := p.Predict(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictAcceptsUnconstrainedValues(t *testing.T) {
	p := LoadPredictor(filepath.Join("testdata", "va_model.json"), zap.NewNop())
	require.True(t, p.Ready())

	payload := recordJSON(t, func(m map[string]interface{}) {
		m["age"] = 200
		m["had_chest_pain"] = ""
		m["had_diabetes"] = ""
	})
	data, err := DecodeHealthData(payload)
	require.NoError(t, err)
	res, err := p.Predict(context.Background(), data)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Probability, 0.0)
	assert.LessOrEqual(t, res.Probability, 1.0)

	data.Age = -1
	_, err = p.Predict(context.Background(), data)
	require.NoError(t, err)
}

func TestShippedModelCoversFormAnswers(t *testing.T) {
	path := filepath.Join("..", "Models", "va_model.json")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("shipped model not present: %v", err)
	}
	p := LoadPredictor(path, zap.NewNop())
	require.True(t, p.Ready())

	expected := make(map[string]bool)
	for _, column := range p.ExpectedColumns() {
		expected[column] = true
	}
	assert.True(t, expected["age"])
	for _, field := range FieldNames() {
		for _, answer := range AnswerOptions(field) {
			assert.True(t, expected[field+"_"+answer], "model has no column for %s=%q", field, answer)
		}
	}

	res, err := p.Predict(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, []string{PositiveConclusion, NegativeConclusion}, res.Conclusion)
}
