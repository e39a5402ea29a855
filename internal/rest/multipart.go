package rest

import (
	"bytes"
	"io"
	"mime/multipart"
	"sort"

	"github.com/juju/errors"
)

// FilePart is a file attached to a multipart body.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Multipart is a multipart/form-data request body.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

// encode renders the body and returns it with its content type.
func (m *Multipart) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteField(name, m.Fields[name]); err != nil {
			return nil, "", errors.Annotatef(err, "writing field %q", name)
		}
	}
	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", errors.Annotatef(err, "creating part %q", f.Field)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", errors.Annotatef(err, "copying %q", f.Filename)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Trace(err)
	}
	return &buf, w.FormDataContentType(), nil
}
