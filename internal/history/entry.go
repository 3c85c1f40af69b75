package history

import (
	"encoding/json"
	"fmt"
)

// Entry is one completed calculation. Entries are values and never change
// once recorded.
type Entry struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
	RecordedAt string  `json:"recordedAt"`
}

// UnmarshalJSON also accepts records written by the browser build of the
// calculator, which used "equation" and "timestamp" as field names.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Expression string  `json:"expression"`
		Equation   string  `json:"equation"`
		Result     float64 `json:"result"`
		RecordedAt string  `json:"recordedAt"`
		Timestamp  string  `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Entry{
		Expression: raw.Expression,
		Result:     raw.Result,
		RecordedAt: raw.RecordedAt,
	}
	if e.Expression == "" {
		e.Expression = raw.Equation
	}
	if e.RecordedAt == "" {
		e.RecordedAt = raw.Timestamp
	}
	return nil
}

func encodeEntries(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encoding history: %w", err)
	}
	return string(b), nil
}

func decodeEntries(payload string) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return entries, nil
}
