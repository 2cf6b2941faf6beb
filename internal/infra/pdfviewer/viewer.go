// Package pdfviewer is the document viewer capability: it opens the bytes
// behind a resource handle, knows the page count, tracks the page in view
// and rasterises pages on request.
package pdfviewer

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"pdf-book-reader/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Viewer implements domain.DocumentViewer over pdfcpu and go-fitz.
type Viewer struct {
	mu        sync.Mutex
	handle    *domain.ResourceHandle
	pages     int
	visible   int
	listeners []func(int)

	blobs  domain.BlobRepository
	dpi    float64
	logger domain.Logger
}

type loadResult struct {
	pages int
	err   error
}

// NewViewer creates a viewer with no document loaded
func NewViewer(blobs domain.BlobRepository, dpi float64, logger domain.Logger) *Viewer {
	return &Viewer{
		blobs:  blobs,
		dpi:    dpi,
		logger: logger,
	}
}

// Load reads the document behind handle and reports its page count.
// It gives up when ctx is done.
func (v *Viewer) Load(ctx context.Context, handle *domain.ResourceHandle) (int, error) {
	if handle == nil {
		return 0, domain.ErrNoDocument
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("load %s: %w", handle.ID, err)
	}
	data, err := v.blobs.Bytes(handle.ID)
	if err != nil {
		return 0, err
	}

	result := make(chan loadResult, 1)
	go func() {
		pages, err := countPages(data)
		result <- loadResult{pages: pages, err: err}
	}()

	var res loadResult
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("load %s: %w", handle.ID, ctx.Err())
	case res = <-result:
	}
	if res.err != nil {
		return 0, fmt.Errorf("pdfcpu read %s: %w", handle.ID, res.err)
	}

	v.mu.Lock()
	v.handle = handle
	v.pages = res.pages
	v.visible = 0
	v.mu.Unlock()

	v.logger.Debug("Viewer loaded document", "handle", handle.ID, "pages", res.pages)
	return res.pages, nil
}

// Unload forgets the current document
func (v *Viewer) Unload() {
	v.mu.Lock()
	v.handle = nil
	v.pages = 0
	v.visible = 0
	v.mu.Unlock()
}

// JumpToPage brings page index into view
func (v *Viewer) JumpToPage(index int) {
	v.show(index)
}

// ReportVisiblePage records the page the client's viewer scrolled to
func (v *Viewer) ReportVisiblePage(index int) {
	v.show(index)
}

// OnPageChange registers fn for page-in-view notifications
func (v *Viewer) OnPageChange(fn func(index int)) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}

// VisiblePage returns the page in view, or -1 with nothing loaded
func (v *Viewer) VisiblePage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.handle == nil {
		return -1
	}
	return v.visible
}

// RenderPage returns page index as PNG
func (v *Viewer) RenderPage(ctx context.Context, index int) ([]byte, error) {
	v.mu.Lock()
	handle, pages := v.handle, v.pages
	v.mu.Unlock()

	if handle == nil {
		return nil, domain.ErrNoDocument
	}
	if index < 0 || index >= pages {
		return nil, fmt.Errorf("page index %d of %d: %w", index, pages, domain.ErrPageOutOfRange)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := v.blobs.Bytes(handle.ID)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	png, err := doc.ImagePNG(index, v.dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	return png, nil
}

// show moves the page in view and tells listeners outside the lock
func (v *Viewer) show(index int) {
	v.mu.Lock()
	if v.handle == nil {
		v.mu.Unlock()
		return
	}
	if index < 0 {
		index = 0
	}
	if index > v.pages-1 {
		index = v.pages - 1
	}
	v.visible = index
	listeners := append([]func(int){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(index)
	}
}

func countPages(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(data), conf)
}
