package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	t.Run("success result carries data and message", func(t *testing.T) {
		body := requireSuccess(t, successResult("done", map[string]string{"k": "v"}))
		require.Equal(t, "done", body.Message)
		require.JSONEq(t, `{"k":"v"}`, string(body.Data))
		require.Nil(t, body.Count)
	})

	t.Run("list result carries a count even when empty", func(t *testing.T) {
		body := requireSuccess(t, listResult("Found 0 organizations", []string{}, 0))
		require.NotNil(t, body.Count)
		require.Equal(t, 0, *body.Count)
		require.Equal(t, "[]", string(body.Data))
	})

	t.Run("error result is flagged on both layers", func(t *testing.T) {
		body := requireError(t, errorResult(errors.New("boom")))
		require.Equal(t, "boom", body.Error)
	})

	t.Run("unencodable data degrades to a failure envelope", func(t *testing.T) {
		res := successResult("done", map[string]any{"bad": make(chan int)})
		body := decodeBody(t, res)
		require.True(t, res.IsError)
		require.False(t, body.Success)
	})
}
