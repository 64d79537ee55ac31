package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a primary key as the revticket schema stores it.  Most tables use
// UUID strings, older dumps use auto-increment integers; ID remembers which
// one it was scanned from so JSON output keeps the column's own shape
// (42 stays a number, "3f2a..." stays a string).
type ID struct {
	value   string
	numeric bool
}

// StringID wraps a character key.
func StringID(s string) ID { return ID{value: s} }

// IntID wraps an integer key.
func IntID(n int64) ID { return ID{value: strconv.FormatInt(n, 10), numeric: true} }

func (id ID) String() string { return id.value }

// IsZero reports whether the ID was never set.
func (id ID) IsZero() bool { return id.value == "" }

// Numeric reports whether the ID came from an integer column.
func (id ID) Numeric() bool { return id.numeric }

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*id = IntID(v)
	case uint64:
		*id = ID{value: strconv.FormatUint(v, 10), numeric: true}
	case []byte:
		*id = StringID(string(v))
	case string:
		*id = StringID(v)
	case nil:
		return fmt.Errorf("model: cannot scan NULL into ID")
	default:
		return fmt.Errorf("model: cannot scan %T into ID", src)
	}
	return nil
}

// Value implements driver.Valuer so an ID can be passed back as a query
// argument with its original type.
func (id ID) Value() (driver.Value, error) {
	if id.numeric {
		return strconv.ParseInt(id.value, 10, 64)
	}
	return id.value, nil
}

// MarshalJSON emits a JSON number for integer keys and a string otherwise.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("model: id must be a string or an integer, got %s", b)
	}
	*id = IntID(n)
	return nil
}
