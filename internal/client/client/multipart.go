package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/dmitrijs2005/vehireg/internal/client/assets"
	"github.com/dmitrijs2005/vehireg/internal/client/models"
)

const (
	partTags   = "tags"
	partImages = "images"
	partName   = "name"
	partLogo   = "logo"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func createFilePart(w *multipart.Writer, field, fileName, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}

func copyFile(ctx context.Context, w *multipart.Writer, opener assets.Opener, field, fileName string, img models.Image) error {
	rc, err := opener.Open(ctx, img.URI)
	if err != nil {
		return fmt.Errorf("open %s: %w", img.URI, err)
	}
	defer rc.Close()

	part, err := createFilePart(w, field, fileName, img.ContentType())
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("read %s: %w", img.URI, err)
	}
	return nil
}

// writeSubmission writes the scalar fields in order, then one tags value
// followed by its images file for every pair. Interleaving keeps the two
// arrays aligned on the server side.
func writeSubmission(ctx context.Context, w *multipart.Writer, opener assets.Opener, s models.Submission) error {
	for _, f := range s.Fields {
		if err := w.WriteField(f.Key, f.Value); err != nil {
			return err
		}
	}
	for _, p := range s.Images {
		if err := w.WriteField(partTags, string(p.Tag)); err != nil {
			return err
		}
		if err := copyFile(ctx, w, opener, partImages, p.Image.FileNameFor(p.Tag), p.Image); err != nil {
			return fmt.Errorf("%s image: %w", p.Tag, err)
		}
	}
	return w.Close()
}

func writeMake(ctx context.Context, w *multipart.Writer, opener assets.Opener, m models.NewMake) error {
	if err := w.WriteField(partName, m.Name); err != nil {
		return err
	}
	name := m.Logo.FileName
	if name == "" {
		name = partLogo + assets.Extension(m.Logo.ContentType())
	}
	if err := copyFile(ctx, w, opener, partLogo, name, m.Logo); err != nil {
		return fmt.Errorf("logo: %w", err)
	}
	return w.Close()
}
