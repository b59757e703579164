// internal/llm/gemini_test.go
package llm

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	format, data, err := decodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, payload, data)
}

func TestDecodeDataURIJPEG(t *testing.T) {
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpg-bytes"))

	format, data, err := decodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, []byte("jpg-bytes"), data)
}

func TestDecodeDataURIMissingPrefix(t *testing.T) {
	_, _, err := decodeDataURI("image/png;base64,aGVsbG8=")
	assert.Error(t, err)
}

func TestDecodeDataURIBadBase64(t *testing.T) {
	_, _, err := decodeDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeDataURINoComma(t *testing.T) {
	_, _, err := decodeDataURI("data:image/png;base64")
	assert.Error(t, err)
}
