package policy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawLabel is a label as returned by the platform.
type RawLabel struct {
	Name string `json:"name"`
}

// RawReview is a single review event.
type RawReview struct {
	State string `json:"state"`
}

// Flag is a boolean that also accepts the strings "true" and "True".
// Anything else, including null, decodes as false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", `"true"`, `"True"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// RawRequest is the payload shape the platform sources hand to the engine.
// It mirrors the JSON of `gh pr list --json number,title,labels,reviews,isDraft,createdAt,url`.
type RawRequest struct {
	Number    *int        `json:"number,omitempty"`
	Title     *string     `json:"title,omitempty"`
	Labels    []RawLabel  `json:"labels,omitempty"`
	Reviews   []RawReview `json:"reviews,omitempty"`
	IsDraft   Flag        `json:"isDraft,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
	URL       string      `json:"url,omitempty"`
}

// ParseRawRequests decodes a JSON array of request payloads.
func ParseRawRequests(data []byte) ([]RawRequest, error) {
	var out []RawRequest
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode request payloads: %w", err)
	}
	return out, nil
}
