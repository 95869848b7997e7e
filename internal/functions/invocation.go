// Package functions serves the API as stateless function invocations
// delivered over a message broker. Each invocation names an operation and
// carries path parameters, a body and an optional token; the reply carries a
// status code and a JSON body shaped exactly like the HTTP responses.
package functions

import (
	"bytes"
	"encoding/json"
)

// Invocation is the inbound envelope.
type Invocation struct {
	Operation      string         `json:"operation"`
	PathParameters PathParameters `json:"pathParameters"`
	// Body is either a JSON object or a string holding one.
	Body  json.RawMessage `json:"body,omitempty"`
	Token string          `json:"token,omitempty"`
}

type PathParameters struct {
	JobID      string `json:"jobId,omitempty"`
	SubJobID   string `json:"subJobId,omitempty"`
	QuestionID string `json:"questionId,omitempty"`
}

// Response is the reply envelope.
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// decodeBody unmarshals the invocation body into v. An absent body leaves v
// at its zero value so validation reports the missing fields.
func (inv Invocation) decodeBody(v any) error {
	raw := bytes.TrimSpace(inv.Body)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		raw = []byte(s)
	}
	return json.Unmarshal(raw, v)
}
