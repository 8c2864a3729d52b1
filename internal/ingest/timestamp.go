package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp parses a block timestamp given as a JSON number, a numeric
// string (unix seconds) or an RFC3339 string.
func ParseTimestamp(raw json.RawMessage) (int64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, fmt.Errorf("missing block timestamp")
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("invalid block timestamp %s: %w", text, err)
		}
		text = strings.TrimSpace(s)
	}

	if isNumeric(text) {
		val, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid block timestamp %q: %w", text, err)
		}
		return val, nil
	}

	tm, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return 0, fmt.Errorf("invalid block timestamp %q: %w", text, err)
	}
	return tm.Unix(), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
