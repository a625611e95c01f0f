package blogs

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoanghai1803/inkwell/internal/models"
)

// MaxCoverBytes caps uploaded cover images. Covers are inlined into the post
// record as data URLs, so they are kept small.
const MaxCoverBytes = 5 << 20

// ErrCoverTooLarge is returned for cover images over the size cap.
var ErrCoverTooLarge = errors.New("cover image is too large")

// DataURL reads an image and encodes it as a base64 data URL. An empty
// contentType is sniffed from the content. Non-image content is rejected.
func DataURL(r io.Reader, contentType string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = MaxCoverBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading cover image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w (limit %d bytes)", ErrCoverTooLarge, maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("cover image is empty")
	}

	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	} else {
		contentType = ""
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("cover must be an image, got %s", contentType)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ReadCoverFile encodes a local image file as a data URL.
func ReadCoverFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening cover image: %w", err)
	}
	defer f.Close()

	return DataURL(f, mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), MaxCoverBytes)
}

// ShareURL is the public link to a post.
func ShareURL(base string, id models.ID) string {
	return strings.TrimRight(base, "/") + "/blogs/" + url.PathEscape(id.String())
}
