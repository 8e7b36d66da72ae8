package base64

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// GetContent decodes the payload of a base64 data URI.
func GetContent(file string) ([]byte, error) {
	marker := ";base64,"

	idx := strings.Index(file, marker)
	if idx == -1 {
		return nil, ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(file[idx+len(marker):])
	if err != nil {
		return nil, ErrInvalidDataURI
	}

	return data, nil
}
