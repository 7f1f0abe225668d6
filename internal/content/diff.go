package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"mentorship/admin/internal/domain"
)

// ChangedFields returns an update holding the trimmed title and/or the content
// when they differ from the originals. Content is compared structurally, so
// key order does not count as a change.
func ChangedFields(title string, current Content, originalTitle string, original Content) (domain.PageUpdate, error) {
	var update domain.PageUpdate

	if t := strings.TrimSpace(title); t != strings.TrimSpace(originalTitle) {
		update.Title = &t
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return domain.PageUpdate{}, fmt.Errorf("failed to encode content: %w", err)
	}
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return domain.PageUpdate{}, fmt.Errorf("failed to encode original content: %w", err)
	}

	same, err := EqualJSON(currentJSON, originalJSON)
	if err != nil {
		return domain.PageUpdate{}, err
	}
	if !same {
		update.Content = currentJSON
	}
	return update, nil
}

// EqualJSON compares two JSON documents ignoring object key order.
func EqualJSON(a, b []byte) (bool, error) {
	ca, err := canonical(a)
	if err != nil {
		return false, err
	}
	cb, err := canonical(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// canonical re-encodes data with sorted object keys and numbers kept verbatim.
func canonical(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return out, nil
}
