package autopsy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FieldError describes one rejected request field. Loc is the path to the
// field, starting with "body".
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// RequestError is returned when a payload cannot be turned into a HealthData.
type RequestError struct {
	Fields []FieldError
}

func (e *RequestError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", strings.Join(f.Loc, "."), f.Msg)
	}
	return "invalid health data: " + strings.Join(parts, "; ")
}

// DecodeHealthData parses a JSON health record. Every field must be present
// and non-null with the declared type; values are otherwise unconstrained.
func DecodeHealthData(payload []byte) (HealthData, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return HealthData{}, &RequestError{Fields: []FieldError{{
			Loc:  []string{"body"},
			Msg:  "invalid JSON object: " + err.Error(),
			Type: "json_invalid",
		}}}
	}

	var missing []FieldError
	for _, name := range FieldNames() {
		value, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			missing = append(missing, FieldError{Loc: []string{"body", name}, Msg: "Field required", Type: "missing"})
		}
	}
	if len(missing) > 0 {
		return HealthData{}, &RequestError{Fields: missing}
	}

	var data HealthData
	if err := json.Unmarshal(payload, &data); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return HealthData{}, &RequestError{Fields: []FieldError{{
				Loc:  []string{"body", typeErr.Field},
				Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type),
				Type: "type_error",
			}}}
		}
		return HealthData{}, &RequestError{Fields: []FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}}
	}
	return data, nil
}
