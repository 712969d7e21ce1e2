package assets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// DataURI is a decoded RFC 2397 data URI.
type DataURI struct {
	MediaType string
	Data      []byte
}

// ParseDataURI decodes "data:[<mediatype>][;base64],<data>". The media type
// is returned lower-cased and without parameters.
func ParseDataURI(uri string) (*DataURI, error) {
	if !strings.HasPrefix(strings.ToLower(uri), "data:") {
		return nil, ErrInvalidDataURI
	}
	d, err := dataurl.DecodeString("data:" + uri[len("data:"):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return &DataURI{
		MediaType: strings.ToLower(d.MediaType.ContentType()),
		Data:      d.Data,
	}, nil
}
