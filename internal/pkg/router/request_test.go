package router

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("ValidJSON", func(t *testing.T) {
		// Arrange
		r := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"jane@example.com"}`))}

		// Act
		var p payload
		err := r.DecodeBody(&p)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Email != "jane@example.com" {
			t.Fatalf("expected decoded email, got %q", p.Email)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		r := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))}

		var p payload
		if err := r.DecodeBody(&p); err == nil {
			t.Fatal("expected error for malformed body")
		}
	})

	t.Run("UnknownField", func(t *testing.T) {
		r := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","extra":1}`))}

		var p payload
		if err := r.DecodeBody(&p); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("TrailingData", func(t *testing.T) {
		r := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co"}{}`))}

		var p payload
		if err := r.DecodeBody(&p); err == nil {
			t.Fatal("expected error for trailing data")
		}
	})
}

func multipartRequest(t *testing.T, field, filename string, content []byte, values map[string]string) *Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if filename != "" {
		fw, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return &Request{Request: req}
}

func TestFormFile(t *testing.T) {
	t.Run("ReadsFile", func(t *testing.T) {
		// Arrange
		r := multipartRequest(t, "attachment", "doc.pdf", []byte("pdf-bytes"), nil)

		// Act
		content, filename, contentType, err := r.FormFile("attachment", 1<<20)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(content) != "pdf-bytes" {
			t.Fatalf("expected file content, got %q", content)
		}
		if filename != "doc.pdf" {
			t.Fatalf("expected filename, got %q", filename)
		}
		if contentType == "" {
			t.Fatal("expected a content type")
		}
	})

	t.Run("MissingFileIsNotAnError", func(t *testing.T) {
		// Arrange
		r := multipartRequest(t, "attachment", "", nil, map[string]string{"name": "Jane"})

		// Act
		content, filename, _, err := r.FormFile("attachment", 1<<20)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if content != nil || filename != "" {
			t.Fatalf("expected empty result, got %q %q", content, filename)
		}
	})

	t.Run("RejectsOversizedFile", func(t *testing.T) {
		// Arrange
		r := multipartRequest(t, "attachment", "big.bin", bytes.Repeat([]byte("x"), 64), nil)

		// Act
		_, _, _, err := r.FormFile("attachment", 16)

		// Assert
		if err == nil {
			t.Fatal("expected error for oversized file")
		}
	})
}

func TestGetForm(t *testing.T) {
	// Arrange
	r := multipartRequest(t, "attachment", "", nil, map[string]string{"name": "  Jane Doe  "})

	// Act & Assert
	if got := r.GetForm("name"); got != "Jane Doe" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := r.GetForm("missing"); got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}
