package tools

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// TextContent is the single content element of a tool result, holding
// the JSON-encoded response body.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the uniform envelope every tool call returns. IsError
// is present and true only on failure; callers branch on it and on the
// body's success flag, never on transport status codes.
type CallResult struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type responseBody struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func wrapBody(body responseBody, isError bool) *CallResult {
	encoded, err := json.Marshal(body)
	if err != nil {
		// Records marshal from plain structs; this only fires on a
		// programming error.
		log.Error().Err(err).Msg("Failed to marshal response body")
		encoded = []byte(`{"success":false,"error":"internal encoding failure","data":null}`)
		isError = true
	}
	return &CallResult{
		Content: []TextContent{{Type: "text", Text: string(encoded)}},
		IsError: isError,
	}
}

// successResult wraps a single record in a success envelope.
func successResult(message string, data any) *CallResult {
	return wrapBody(responseBody{Success: true, Data: data, Message: message}, false)
}

// listResult wraps a record sequence and its count in a success
// envelope. An empty sequence is a success.
func listResult(message string, data any, count int) *CallResult {
	return wrapBody(responseBody{Success: true, Data: data, Count: &count, Message: message}, false)
}

// errorResult renders any of the four failure kinds as a failure
// envelope with a null data field.
func errorResult(err error) *CallResult {
	return wrapBody(responseBody{Success: false, Data: nil, Error: err.Error()}, true)
}
