package imageproc

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("only jpg, png, gif and webp images are supported")
	ErrScriptableContent = errors.New("html, svg and xml content is not allowed")
	ErrEmptyFile         = errors.New("file is empty")
	ErrTooManyPixels     = errors.New("image dimensions are too large")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMime = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Sniff checks the filename extension and the leading bytes against the
// image whitelist. It returns the detected MIME type and the canonical
// extension to store the object under.
func Sniff(filename string, head []byte) (string, string, error) {
	if len(head) == 0 {
		return "", "", ErrEmptyFile
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", "", ErrUnsupportedFormat
	}

	detected := http.DetectContentType(head)
	if strings.HasPrefix(detected, "text/html") ||
		strings.HasPrefix(detected, "text/xml") ||
		strings.HasPrefix(detected, "application/xml") ||
		detected == "image/svg+xml" {
		return "", "", ErrScriptableContent
	}

	canonical, ok := allowedMime[detected]
	if !ok {
		return "", "", ErrUnsupportedFormat
	}
	return detected, canonical, nil
}
