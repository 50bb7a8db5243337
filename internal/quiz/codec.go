package quiz

import (
	"encoding/json"
	"fmt"
)

// choices are persisted as a JSON array in a TEXT column.

func encodeChoices(choices []string) (string, error) {
	b, err := json.Marshal(choices)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeChoices(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, unavailable("decode choices", err)
	}
	if len(out) != ChoiceCount {
		return nil, unavailable("decode choices", fmt.Errorf("stored row has %d choices", len(out)))
	}
	return out, nil
}
