package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnsupportedJSONB = errors.New("unsupported jsonb column type")

// JSON is a free-form JSONB object, used for audit metadata.
type JSON map[string]any

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value any) error {
	var result map[string]any
	if err := scanJSONB(value, &result); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	*j = result
	return nil
}

// scanJSONB decodes a JSONB column into dst. NULL leaves dst untouched.
func scanJSONB(value any, dst any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedJSONB, value)
	}
	return json.Unmarshal(data, dst)
}
