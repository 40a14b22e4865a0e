package shared

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON marshals v, optionally indented for human-readable output.
func MarshalJSON(v any, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
