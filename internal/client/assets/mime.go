package assets

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectReader sniffs the MIME type from the head of r.
func DetectReader(r io.Reader) (string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	return baseType(m.String()), nil
}

// DetectBytes sniffs the MIME type of b.
func DetectBytes(b []byte) string {
	return baseType(mimetype.Detect(b).String())
}

// IsImage reports whether mt is an image/* type.
func IsImage(mt string) bool {
	return strings.HasPrefix(mt, "image/")
}

// Extension returns the usual file extension for mt, including the dot.
func Extension(mt string) string {
	if m := mimetype.Lookup(mt); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".jpg"
}

func baseType(mt string) string {
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
