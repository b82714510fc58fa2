package render

import (
	"io"

	"github.com/johnfercher/maroto/v2/pkg/core"
)

// Document is the finished paginated artifact. Download bytes, preview
// base64 and file save all derive from the same in-memory document,
// generated exactly once per request.
type Document struct {
	inner core.Document
}

func (d *Document) Bytes() []byte {
	return d.inner.GetBytes()
}

func (d *Document) Base64() string {
	return d.inner.GetBase64()
}

func (d *Document) Save(path string) error {
	return d.inner.Save(path)
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.inner.GetBytes())
	return int64(n), err
}
