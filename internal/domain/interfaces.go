package domain

import (
	"context"
	"io"
	"time"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetPageTurnPreDelay() time.Duration
	GetPageTurnPostDelay() time.Duration
	GetLoadTimeout() time.Duration
	GetRenderDPI() float64
	GetAllowedOrigins() []string
}

// BlobRepository keeps file bytes behind revocable resource handles.
type BlobRepository interface {
	Create(name, mediaType string, data []byte) (*ResourceHandle, error)
	Open(handleID string) (io.ReadSeeker, error)
	Bytes(handleID string) ([]byte, error)
	Revoke(handleID string) error
	Len() int
}

// DocumentViewer is the capability that parses and renders the PDF.
// It reports the page count on load and the visible page whenever it changes.
type DocumentViewer interface {
	Load(ctx context.Context, handle *ResourceHandle) (int, error)
	Unload()
	JumpToPage(index int)
	ReportVisiblePage(index int)
	OnPageChange(fn func(index int))
	RenderPage(ctx context.Context, index int) ([]byte, error)
}

// FileIntake validates picked files and owns the current selection.
type FileIntake interface {
	SelectFile(ctx context.Context, file FileHandle) (SelectedDocument, error)
	Current() SelectedDocument
	Clear()
	Close() error
}

// ReaderService is the use-case surface the HTTP layer talks to.
type ReaderService interface {
	Open(ctx context.Context, file FileHandle) (ReaderView, error)
	Close() error
	View() ReaderView
	OpenFile() (io.ReadSeeker, SelectedDocument, error)
	RenderPage(ctx context.Context, pageNumber int) ([]byte, error)

	Previous() ReaderView
	Next() ReaderView
	GoToPageNumber(pageNumber int) ReaderView
	Wheel(deltaY float64) ReaderView
	ViewerPageChanged(index int) ReaderView
}
