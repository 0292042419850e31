package directus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a Directus primary key. Collections use integer or uuid keys, so the
// value is held as a string and encoded back as a number when it is numeric.
type ID string

// IDFromInt converts an integer key.
func IDFromInt(i int64) ID { return ID(strconv.FormatInt(i, 10)) }

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

func (id ID) isNumeric() bool {
	if id == "" {
		return false
	}
	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

// MarshalJSON writes numeric ids as numbers, others as strings and the zero id as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if id.isNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts numbers, strings, null and expanded relation objects
// carrying an "id" field.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	case data[0] == '{':
		var obj struct {
			ID ID `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*id = obj.ID
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("directus: invalid id %s: %w", data, err)
		}
		*id = ID(n.String())
		return nil
	}
}
