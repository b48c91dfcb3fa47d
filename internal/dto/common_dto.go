package dto

import (
	"bytes"
	"encoding/json"
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// DecodeStrict unmarshals data into v, rejecting any key v does not declare.
// Allow-list enforcement for patch bodies rides on this: unknown fields fail
// here, before any storage is touched.
func DecodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
