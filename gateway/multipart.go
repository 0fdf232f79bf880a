package gateway

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

type FormField struct {
	Name  string
	Value string
}

type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartForm is a request body for endpoints taking file uploads.
// Fields are written in order.
type MultipartForm struct {
	Fields []FormField
	Files  []FormFile
}

func (f *MultipartForm) AddField(name, value string) {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
}

func (f *MultipartForm) AddFile(field, filename, contentType string, data []byte) {
	f.Files = append(f.Files, FormFile{Field: field, Filename: filename, ContentType: contentType, Data: data})
}

func (f *MultipartForm) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", field.Name, err)
		}
	}
	for _, file := range f.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %s: %w", file.Filename, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("writing form file %s: %w", file.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
