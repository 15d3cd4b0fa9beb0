package translate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks(t *testing.T) {
	input := strings.Repeat("a", 7000)

	chunks := splitChunks(input, 3000)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 3000)
	assert.Len(t, chunks[1], 3000)
	assert.Len(t, chunks[2], 1000)
	assert.Equal(t, input, strings.Join(chunks, ""))
}

func TestSplitChunks_RuneBoundaries(t *testing.T) {
	// 4 three-byte runes split at size 3 must not tear a character.
	input := "ありがとう"

	chunks := splitChunks(input, 3)

	require.Len(t, chunks, 2)
	assert.Equal(t, "ありが", chunks[0])
	assert.Equal(t, "とう", chunks[1])
}

func TestSplitChunks_Empty(t *testing.T) {
	assert.Empty(t, splitChunks("", 3000))
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{APIURL: server.URL, Model: "test-model"})
}

func TestTranslate(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hola mundo"}}]}`)
	})

	tr := NewLLMTranslator(client)
	out := tr.Translate(t.Context(), "hello world", "es")

	assert.Equal(t, "hola mundo", out)
}

func TestTranslate_ChunksJoinedInOrder(t *testing.T) {
	n := 0
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		n++
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":"%s"}}]}`, strings.Repeat("x", n))
	})

	tr := NewLLMTranslator(client)
	out := tr.Translate(t.Context(), strings.Repeat("a", 7000), "es")

	assert.Equal(t, "x\nxx\nxxx", out)
	assert.Equal(t, 3, n)
}

func TestTranslate_FailureYieldsPlaceholder(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	tr := NewLLMTranslator(client)
	out := tr.Translate(t.Context(), "hello world", "es")

	assert.Contains(t, out, "translation failed")
	assert.Contains(t, out, "quota exceeded")
}
