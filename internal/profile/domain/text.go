package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a display scalar. It decodes from a JSON string, number, bool or
// null; numbers keep their literal form (92998 stays "92998"). Objects and
// arrays are rejected.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch s := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(s)
	case json.Number:
		*t = Text(s.String())
	case bool:
		*t = Text(strconv.FormatBool(s))
	default:
		return fmt.Errorf("expected a scalar, got %T", v)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}
