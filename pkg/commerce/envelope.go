package commerce

import (
	"bytes"
	"encoding/json"
)

// listPayload accepts both bare-array responses and the paginated envelope the
// remote API uses on some list endpoints.
type listPayload[T any] struct {
	items []T
}

func (l *listPayload[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.items)
	}

	var wrapped struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	l.items = wrapped.Results
	return nil
}
