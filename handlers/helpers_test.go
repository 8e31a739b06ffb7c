package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"testing"
)

func multipartFile(t *testing.T, filename string, content []byte) (io.ReadCloser, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err = part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err = writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return io.NopCloser(&buf), writer.FormDataContentType()
}
