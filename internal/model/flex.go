package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString is a text field that also decodes from a JSON number.
// The import step and older clients emit ids, project numbers and
// priorities as bare numbers; the board always treats them as text.
type FlexString string

// UnmarshalJSON accepts a string, a number, or null.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

// String returns the raw text.
func (s FlexString) String() string { return string(s) }

// FlexInt is an integer field that also decodes from a numeric string.
// Zero means "missing".
type FlexInt int64

// UnmarshalJSON accepts a number, a numeric string, "" or null.
// Unparseable strings decode as zero so the record is treated as missing the value.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		raw = strings.TrimSpace(v)
	}
	if raw == "" {
		*i = 0
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*i = FlexInt(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*i = FlexInt(int64(f))
		return nil
	}
	*i = 0
	return nil
}

// String formats the value the way clients compare it ("12").
func (i FlexInt) String() string { return strconv.FormatInt(int64(i), 10) }
