package service

import "encoding/json"

// NullableString tracks whether a JSON field was present at all, so
// partial updates can tell "clear the field" (explicit null) apart
// from "leave unchanged" (field absent).
type NullableString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only invoked when the field appears in the payload,
// which is what flips Present.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
