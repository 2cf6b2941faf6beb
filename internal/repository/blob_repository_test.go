package repository

import (
	"errors"
	"io"
	"strings"
	"testing"

	"pdf-book-reader/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}

func TestMemoryBlobRepository_CreateOpen(t *testing.T) {
	repo := NewMemoryBlobRepository(nopLogger{})

	handle, err := repo.Create("book.pdf", "application/pdf", []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(handle.URL, "blob:") || !strings.HasSuffix(handle.URL, handle.ID) {
		t.Fatalf("unexpected handle url %s", handle.URL)
	}
	if handle.Size != 8 || handle.MediaType != "application/pdf" {
		t.Fatalf("unexpected handle %+v", handle)
	}

	r, err := repo.Open(handle.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, _ := io.ReadAll(r)
	if string(got) != "%PDF-1.7" {
		t.Fatalf("unexpected content %q", got)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one live handle, got %d", repo.Len())
	}
}

func TestMemoryBlobRepository_DistinctHandles(t *testing.T) {
	repo := NewMemoryBlobRepository(nopLogger{})

	a, _ := repo.Create("a.pdf", "application/pdf", []byte("a"))
	b, _ := repo.Create("a.pdf", "application/pdf", []byte("a"))
	if a.ID == b.ID {
		t.Fatalf("expected a fresh handle per create")
	}
}

func TestMemoryBlobRepository_Revoke(t *testing.T) {
	repo := NewMemoryBlobRepository(nopLogger{})
	handle, _ := repo.Create("book.pdf", "application/pdf", []byte("%PDF"))

	if err := repo.Revoke(handle.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected no live handles, got %d", repo.Len())
	}
	if _, err := repo.Open(handle.ID); !errors.Is(err, domain.ErrHandleRevoked) {
		t.Fatalf("expected ErrHandleRevoked, got %v", err)
	}
	if err := repo.Revoke(handle.ID); !errors.Is(err, domain.ErrHandleRevoked) {
		t.Fatalf("expected second revoke to report ErrHandleRevoked, got %v", err)
	}
}

func TestMemoryBlobRepository_CreateWithoutData(t *testing.T) {
	repo := NewMemoryBlobRepository(nopLogger{})
	if _, err := repo.Create("empty.pdf", "application/pdf", nil); err == nil {
		t.Fatalf("expected error for nil data")
	}
}
