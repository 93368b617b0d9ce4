package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter renders a comparison set as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals the comparison set
func (jf *JSONFormatter) Format(cs *ComparisonSet) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(cs, "", "  ")
	} else {
		data, err = json.Marshal(cs)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	return string(data), nil
}
