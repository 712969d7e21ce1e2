package models

// FieldValue is one scalar form entry.
type FieldValue struct {
	Key   string
	Value string
}

// Submission is an assembled vehicle payload. Images is a single ordered
// list of pairs; it becomes the parallel tags/images arrays only when it
// is encoded for the wire.
type Submission struct {
	Fields []FieldValue
	Images []TaggedImage
}

// Field returns the value of key, if present.
func (s Submission) Field(key string) (string, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// WireTags returns the tags array in pair order.
func (s Submission) WireTags() []string {
	out := make([]string, len(s.Images))
	for i, p := range s.Images {
		out[i] = string(p.Tag)
	}
	return out
}

// WireImages returns the images array in pair order.
func (s Submission) WireImages() []Image {
	out := make([]Image, len(s.Images))
	for i, p := range s.Images {
		out[i] = p.Image
	}
	return out
}
