package render

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

// decodeImageBlob decodes an opaque base64 image blob (raw or data-URI)
// and sniffs its raster format.
func decodeImageBlob(blob string) ([]byte, extension.Type, error) {
	s := strings.TrimSpace(blob)
	if i := strings.Index(s, "base64,"); i >= 0 {
		s = s[i+len("base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode image blob: %w", err)
	}

	switch http.DetectContentType(raw) {
	case "image/png":
		return raw, extension.Png, nil
	case "image/jpeg":
		return raw, extension.Jpg, nil
	default:
		return nil, "", fmt.Errorf("unsupported image format")
	}
}
