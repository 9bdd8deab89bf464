package ai

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrBadImage = errors.New("image must be a data URL or base64-encoded image")

// DecodeImage accepts "data:<mime>;base64,<payload>" or bare base64 and
// returns the raw bytes plus a MIME type (from the prefix, else sniffed).
func DecodeImage(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("%w: empty payload", ErrBadImage)
	}
	var hint string
	if strings.HasPrefix(s, "data:") {
		idx := strings.IndexByte(s, ',')
		if idx < 0 {
			return nil, "", fmt.Errorf("%w: data URL without payload", ErrBadImage)
		}
		meta := s[len("data:"):idx]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("%w: data URL is not base64", ErrBadImage)
		}
		hint = strings.TrimSuffix(meta, ";base64")
		s = s[idx+1:]
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		var err2 error
		if b, err2 = base64.RawStdEncoding.DecodeString(s); err2 != nil {
			if b, err2 = base64.URLEncoding.DecodeString(s); err2 != nil {
				return nil, "", fmt.Errorf("%w: %v", ErrBadImage, err)
			}
		}
	}
	if len(b) == 0 {
		return nil, "", fmt.Errorf("%w: empty payload", ErrBadImage)
	}
	mime := strings.ToLower(strings.TrimSpace(hint))
	if mime == "" {
		mime = http.DetectContentType(b)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%w: unsupported content type %q", ErrBadImage, mime)
	}
	return b, mime, nil
}

// ImageDataURL normalizes an image payload into a base64 data URL.
func ImageDataURL(s string) (string, error) {
	b, mime, err := DecodeImage(s)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
