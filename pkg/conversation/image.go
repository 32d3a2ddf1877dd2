package conversation

import (
	"regexp"
	"strings"
)

var dataURIPattern = regexp.MustCompile(`(?s)^data:(image/[\w.+-]+);base64,(.*)$`)

// Image is a photo split into its media type and base64 payload.
type Image struct {
	MediaType string
	Data      string
}

// ParseImage splits a data URI into media type and payload. Raw base64 input
// gets defaultMediaType. The payload is never re-encoded.
func ParseImage(s, defaultMediaType string) (Image, error) {
	if s == "" {
		return Image{}, ErrMissingImage
	}

	if !strings.HasPrefix(s, "data:") {
		return Image{MediaType: defaultMediaType, Data: s}, nil
	}

	m := dataURIPattern.FindStringSubmatch(s)
	if m == nil || m[2] == "" {
		return Image{}, ErrMalformedImage
	}
	return Image{MediaType: m[1], Data: m[2]}, nil
}

// DataURI renders the image as a self-describing data URI.
func (i Image) DataURI() string {
	return "data:" + i.MediaType + ";base64," + i.Data
}
