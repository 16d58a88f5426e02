package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vapredict/autopsy"
)

const record = `{"age": 45, "had_diabetes": "No", "had_heart_disease": "No", "had_hypertension": "No",
"had_obesity": "No", "had_stroke": "No", "had_blue_lips": "No", "had_ankle_swelling": "No",
"had_puffiness": "No", "had_diff_breathing": "No", "breathing_on_off": "Continuous",
"fast_breathing": "No", "had_wheezed": "No", "had_chest_pain": "No", "chest_pain_duration": "Don't Know",
"physical_action_painful": "No", "pain_location": "Other", "urine_stop": "No",
"had_lost_consciousness": "No", "had_confusion": "No"}`

func TestRunFromStdin(t *testing.T) {
	var out bytes.Buffer
	err := run(filepath.Join("testdata", "va_model.json"), "-", false, strings.NewReader(record), &out)
	require.NoError(t, err)

	var result autopsy.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, autopsy.NegativeConclusion, result.Conclusion)
	assert.Less(t, result.Probability, 0.5)
}

func TestRunMissingModel(t *testing.T) {
	var out bytes.Buffer
	err := run(filepath.Join(t.TempDir(), "none.json"), "-", false, strings.NewReader(record), &out)
	require.Error(t, err)
	assert.Equal(t, "Model not loaded properly", err.Error())
}

func TestRunInvalidRecord(t *testing.T) {
	var out bytes.Buffer
	err := run(filepath.Join("testdata", "va_model.json"), "-", false, strings.NewReader(`{"age": 3}`), &out)
	var reqErr *autopsy.RequestError
	assert.ErrorAs(t, err, &reqErr)
}
