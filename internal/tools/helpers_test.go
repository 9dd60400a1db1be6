package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodedBody is the parsed JSON body carried inside a tool result's
// single text content element.
type decodedBody struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeBody(t *testing.T, res *CallResult) decodedBody {
	t.Helper()

	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	require.Equal(t, "text", res.Content[0].Type)

	var body decodedBody
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &body))
	return body
}

func requireSuccess(t *testing.T, res *CallResult) decodedBody {
	t.Helper()

	body := decodeBody(t, res)
	require.False(t, res.IsError)
	require.True(t, body.Success)
	require.Empty(t, body.Error)
	return body
}

func requireError(t *testing.T, res *CallResult) decodedBody {
	t.Helper()

	body := decodeBody(t, res)
	require.True(t, res.IsError)
	require.False(t, body.Success)
	require.NotEmpty(t, body.Error)
	require.Equal(t, "null", string(body.Data))
	return body
}

func rawArgs(t *testing.T, v any) json.RawMessage {
	t.Helper()

	encoded, err := json.Marshal(v)
	require.NoError(t, err)
	return encoded
}
