package autopsy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordJSON(t *testing.T, mutate func(map[string]interface{})) []byte {
	t.Helper()
	raw, err := json.Marshal(sampleRecord())
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	if mutate != nil {
		mutate(m)
	}
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return out
}

func TestDecodeHealthData(t *testing.T) {
	data, err := DecodeHealthData(recordJSON(t, nil))
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), data)
}

func TestDecodeHealthDataZeroAge(t *testing.T) {
	data, err := DecodeHealthData(recordJSON(t, func(m map[string]interface{}) { m["age"] = 0 }))
	require.NoError(t, err)
	assert.Equal(t, 0, data.Age)
}

func TestDecodeHealthDataMissingFields(t *testing.T) {
	_, err := DecodeHealthData(recordJSON(t, func(m map[string]interface{}) {
		delete(m, "age")
		m["had_stroke"] = nil
	}))
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Len(t, reqErr.Fields, 2)
	assert.Equal(t, []string{"body", "age"}, reqErr.Fields[0].Loc)
	assert.Equal(t, []string{"body", "had_stroke"}, reqErr.Fields[1].Loc)
	assert.Equal(t, "missing", reqErr.Fields[0].Type)
}

func TestDecodeHealthDataWrongType(t *testing.T) {
	_, err := DecodeHealthData(recordJSON(t, func(m map[string]interface{}) { m["age"] = "old" }))
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []string{"body", "age"}, reqErr.Fields[0].Loc)
	assert.Equal(t, "type_error", reqErr.Fields[0].Type)
}

func TestDecodeHealthDataEmptyAnswer(t *testing.T) {
	data, err := DecodeHealthData(recordJSON(t, func(m map[string]interface{}) { m["urine_stop"] = "" }))
	require.NoError(t, err)
	assert.Equal(t, "", data.UrineStop)
}

func TestDecodeHealthDataAgeOutsideHumanRange(t *testing.T) {
	for _, age := range []int{-1, 200} {
		data, err := DecodeHealthData(recordJSON(t, func(m map[string]interface{}) { m["age"] = age }))
		require.NoError(t, err)
		assert.Equal(t, age, data.Age)
	}
}

func TestDecodeHealthDataFractionalAge(t *testing.T) {
	_, err := DecodeHealthData(recordJSON(t, func(m map[string]interface{}) { m["age"] = 72.5 }))
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "type_error", reqErr.Fields[0].Type)
}

func TestDecodeHealthDataInvalidJSON(t *testing.T) {
	_, err := DecodeHealthData([]byte(`[1,2]`))
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "json_invalid", reqErr.Fields[0].Type)
}

func TestColumnsOrder(t *testing.T) {
	columns := sampleRecord().Columns()
	names := FieldNames()
	require.Len(t, columns, len(names))
	for i, col := range columns {
		assert.Equal(t, names[i], col.Name)
	}
	assert.Equal(t, 67, columns[0].Value)
}
