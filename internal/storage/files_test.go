package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"synapshare/internal/apperr"
)

func uploadHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("parse form file: %v", err)
	}
	return header
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, "http://localhost:8080/")

	url, err := s.Save(uploadHeader(t, "photo.PNG", "image/png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Fatalf("url = %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("extension not normalized: %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q", data)
	}

	if err := s.Remove(url); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Errorf("file still present after remove")
	}

	// Removing again is fine; the file is simply gone.
	if err := s.Remove(url); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	s := NewFileStore(t.TempDir(), "http://localhost:8080")

	first, err := s.Save(uploadHeader(t, "notes.pdf", "application/pdf", []byte("a")))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(uploadHeader(t, "notes.pdf", "application/pdf", []byte("b")))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("two uploads of the same filename share a URL: %q", first)
	}
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	s := NewFileStore(t.TempDir(), "http://localhost:8080")

	_, err := s.Save(uploadHeader(t, "run.exe", "application/octet-stream", []byte("MZ")))
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestSaveRejectsOversize(t *testing.T) {
	s := NewFileStore(t.TempDir(), "http://localhost:8080")

	header := &multipart.FileHeader{
		Filename: "big.mp4",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"video/mp4"}},
		Size:     MaxFileSize + 1,
	}
	_, err := s.Save(header)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestRemoveIgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, "http://localhost:8080")

	outside := filepath.Join(dir, "..", "victim.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("http://localhost:8080/uploads/../victim.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the upload dir was touched: %v", err)
	}
}
