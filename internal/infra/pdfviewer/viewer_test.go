package pdfviewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pdf-book-reader/internal/domain"
	"pdf-book-reader/internal/repository"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}

// buildPDF writes a minimal document with the given number of blank pages
// and a correct cross-reference table.
func buildPDF(pages int) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	objects := 2 + pages
	offsets := make([]int, objects+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), pages)

	for i := 0; i < pages; i++ {
		offsets[i+3] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n", i+3)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", objects+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objects; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objects+1, xref)
	return []byte(b.String())
}

func newLoadedViewer(t *testing.T, pages int) (*Viewer, *domain.ResourceHandle) {
	t.Helper()
	blobs := repository.NewMemoryBlobRepository(nopLogger{})
	handle, err := blobs.Create("book.pdf", "application/pdf", buildPDF(pages))
	if err != nil {
		t.Fatalf("create blob: %v", err)
	}
	v := NewViewer(blobs, 72, nopLogger{})
	got, err := v.Load(context.Background(), handle)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != pages {
		t.Fatalf("expected %d pages, got %d", pages, got)
	}
	return v, handle
}

func TestViewer_LoadCountsPages(t *testing.T) {
	for _, pages := range []int{1, 3, 12} {
		v, _ := newLoadedViewer(t, pages)
		if v.VisiblePage() != 0 {
			t.Fatalf("expected first page in view, got %d", v.VisiblePage())
		}
	}
}

func TestViewer_LoadRejectsGarbage(t *testing.T) {
	blobs := repository.NewMemoryBlobRepository(nopLogger{})
	handle, _ := blobs.Create("fake.pdf", "application/pdf", []byte("this is not a pdf"))
	v := NewViewer(blobs, 72, nopLogger{})

	if _, err := v.Load(context.Background(), handle); err == nil {
		t.Fatalf("expected an error for non-PDF bytes")
	}
	if v.VisiblePage() != -1 {
		t.Fatalf("expected nothing loaded after failure")
	}
}

func TestViewer_LoadRevokedHandle(t *testing.T) {
	blobs := repository.NewMemoryBlobRepository(nopLogger{})
	handle, _ := blobs.Create("book.pdf", "application/pdf", buildPDF(2))
	_ = blobs.Revoke(handle.ID)

	v := NewViewer(blobs, 72, nopLogger{})
	if _, err := v.Load(context.Background(), handle); !errors.Is(err, domain.ErrHandleRevoked) {
		t.Fatalf("expected ErrHandleRevoked, got %v", err)
	}
	if _, err := v.Load(context.Background(), nil); !errors.Is(err, domain.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestViewer_LoadCancelled(t *testing.T) {
	blobs := repository.NewMemoryBlobRepository(nopLogger{})
	handle, _ := blobs.Create("book.pdf", "application/pdf", buildPDF(2))
	v := NewViewer(blobs, 72, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := v.Load(ctx, handle); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestViewer_JumpNotifiesAndClamps(t *testing.T) {
	v, _ := newLoadedViewer(t, 5)

	var seen []int
	v.OnPageChange(func(i int) { seen = append(seen, i) })

	v.JumpToPage(3)
	v.ReportVisiblePage(9)
	v.JumpToPage(-2)

	want := []int{3, 4, 0}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Fatalf("expected notifications %v, got %v", want, seen)
	}
	if v.VisiblePage() != 0 {
		t.Fatalf("expected page 0 in view, got %d", v.VisiblePage())
	}
}

func TestViewer_UnloadSilencesNotifications(t *testing.T) {
	v, _ := newLoadedViewer(t, 5)
	called := false
	v.OnPageChange(func(int) { called = true })

	v.Unload()
	v.JumpToPage(2)

	if called {
		t.Fatalf("expected no notification without a document")
	}
	if v.VisiblePage() != -1 {
		t.Fatalf("expected nothing in view, got %d", v.VisiblePage())
	}
}

func TestViewer_RenderPageGuards(t *testing.T) {
	blobs := repository.NewMemoryBlobRepository(nopLogger{})
	v := NewViewer(blobs, 72, nopLogger{})
	if _, err := v.RenderPage(context.Background(), 0); !errors.Is(err, domain.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}

	loaded, _ := newLoadedViewer(t, 2)
	for _, index := range []int{-1, 2} {
		if _, err := loaded.RenderPage(context.Background(), index); !errors.Is(err, domain.ErrPageOutOfRange) {
			t.Fatalf("index %d: expected ErrPageOutOfRange, got %v", index, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loaded.RenderPage(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestViewer_RenderPagePNG(t *testing.T) {
	v, _ := newLoadedViewer(t, 2)

	png, err := v.RenderPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected a PNG signature, got % x", png[:min(8, len(png))])
	}
}
