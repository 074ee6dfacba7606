package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURL splits a "data:<mime>;base64,<data>" payload into its
// content type and raw bytes. This is the shape browsers produce and
// the only upload format the API accepts.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	parts := strings.Split(dataURL, ",")
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("invalid base64 image")
	}
	meta := parts[0]

	if !strings.HasPrefix(meta, "data:") {
		return "", nil, fmt.Errorf("invalid base64 image")
	}
	mediaType := strings.TrimPrefix(meta, "data:")      // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0] // "image/jpeg"
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return contentType, data, nil
}
