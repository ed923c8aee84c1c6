package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// stringList is a []string stored as a JSON array in a text column.
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *stringList) Scan(src any) error {
	data, err := textBytes(src)
	if err != nil {
		return err
	}
	out := []string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("decode string list: %w", err)
		}
	}
	*l = out
	return nil
}

// minutesByLabel is a map[string]int stored as a JSON object in a text column.
type minutesByLabel map[string]int

func (m minutesByLabel) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]int(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *minutesByLabel) Scan(src any) error {
	data, err := textBytes(src)
	if err != nil {
		return err
	}
	out := map[string]int{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("decode minutes map: %w", err)
		}
	}
	*m = out
	return nil
}

func textBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", src)
	}
}

// utc normalizes times before they are written so every dialect stores the
// same representation.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
