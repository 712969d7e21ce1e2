package models

import (
	"fmt"
	"strings"
)

// Tag names the vehicle view a photo shows.
type Tag string

const (
	TagMain      Tag = "MAIN"
	TagFront     Tag = "FRONT"
	TagBack      Tag = "BACK"
	TagLeft      Tag = "LEFT"
	TagRight     Tag = "RIGHT"
	TagDashboard Tag = "DASHBOARD"
	TagBackSeats Tag = "BACKSEATS"
)

// Tags is the fixed photo order used by the wizard and the submission.
var Tags = []Tag{TagMain, TagFront, TagBack, TagLeft, TagRight, TagDashboard, TagBackSeats}

const (
	DefaultImageMIME = "image/jpeg"
)

// ParseTag matches s case-insensitively against Tags.
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToUpper(strings.TrimSpace(s)))
	if t.Index() < 0 {
		return "", fmt.Errorf("unknown image tag %q", s)
	}
	return t, nil
}

// Index returns the position of t in Tags, or -1.
func (t Tag) Index() int {
	for i, x := range Tags {
		if x == t {
			return i
		}
	}
	return -1
}

// Image is a picked or captured photo. URI is resolved to bytes only when
// the submission is encoded.
type Image struct {
	URI      string
	MimeType string
	FileName string
}

// FileNameFor returns the image file name, defaulting to "<TAG>.jpg".
func (i Image) FileNameFor(t Tag) string {
	if i.FileName != "" {
		return i.FileName
	}
	return string(t) + ".jpg"
}

// ContentType returns the MIME type, defaulting to image/jpeg.
func (i Image) ContentType() string {
	if i.MimeType != "" {
		return i.MimeType
	}
	return DefaultImageMIME
}

// TaggedImage pairs an image with the view it shows.
type TaggedImage struct {
	Tag   Tag
	Image Image
}
