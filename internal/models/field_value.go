package models

import (
	"bytes"
	"strconv"
)

// FieldValue is a custom field value: either text or a number.
type FieldValue struct {
	text    string
	number  float64
	numeric bool
}

func TextValue(s string) FieldValue {
	return FieldValue{text: s}
}

func NumberValue(n float64) FieldValue {
	return FieldValue{number: n, numeric: true}
}

func (v FieldValue) IsNumber() bool {
	return v.numeric
}

func (v FieldValue) Number() (float64, bool) {
	return v.number, v.numeric
}

func (v FieldValue) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(strconv.FormatFloat(v.number, 'f', -1, 64)), nil
	}
	return json.Marshal(v.text)
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = TextValue("")
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = NumberValue(n)
	return nil
}
