package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF} // jpeg magic
	url := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	contentType, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, payload, data)
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"no comma":       "data:image/png;base64",
		"no data prefix": "image/png;base64,aGk=",
		"not an image":   "data:text/plain;base64,aGk=",
		"bad base64":     "data:image/png;base64,@@@@",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeDataURL(in)
			assert.Error(t, err)
		})
	}
}
