package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"pdf-book-reader/internal/domain"
)

const (
	pdfMediaType          = "application/pdf"
	unsupportedTypeNotice = "Please select a valid PDF file."
	fileTooLargeNotice    = "File too large."
	missingContentNotice  = "File is required"
	defaultDocumentName   = "document.pdf"
)

// FileIntakeService validates picked files and keeps the current selection
// behind a resource handle. Superseded handles are revoked.
type FileIntakeService struct {
	mu          sync.Mutex
	current     domain.SelectedDocument
	blobs       domain.BlobRepository
	maxFileSize int64
	logger      domain.Logger
}

// NewFileIntakeService creates a file intake with nothing selected
func NewFileIntakeService(blobs domain.BlobRepository, maxFileSize int64, logger domain.Logger) *FileIntakeService {
	return &FileIntakeService{
		blobs:       blobs,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// SelectFile checks the declared media type and, for a PDF, swaps the
// selection to a fresh handle. Any failure clears the selection.
func (s *FileIntakeService) SelectFile(ctx context.Context, file domain.FileHandle) (domain.SelectedDocument, error) {
	if err := ctx.Err(); err != nil {
		s.Clear()
		return domain.SelectedDocument{}, err
	}

	name := sanitizeName(file.Name)

	if !isPDF(file.MediaType) {
		s.Clear()
		s.logger.Warn("Rejected file with unsupported type", "name", name, "media_type", file.MediaType)
		return domain.SelectedDocument{}, &domain.ValidationError{
			Field:   "file",
			Message: unsupportedTypeNotice,
			Err:     domain.ErrUnsupportedType,
		}
	}

	if file.Content == nil {
		s.Clear()
		return domain.SelectedDocument{}, &domain.ValidationError{Field: "file", Message: missingContentNotice}
	}

	data, err := s.read(file)
	if err != nil {
		s.Clear()
		return domain.SelectedDocument{}, err
	}

	handle, err := s.blobs.Create(name, pdfMediaType, data)
	if err != nil {
		s.Clear()
		return domain.SelectedDocument{}, fmt.Errorf("allocate handle for %s: %w", name, err)
	}

	selected := domain.SelectedDocument{DisplayName: name, Handle: handle}

	s.mu.Lock()
	previous := s.current
	s.current = selected
	s.mu.Unlock()

	s.release(previous)
	s.logger.Info("File selected", "name", name, "handle", handle.ID, "size", handle.Size)
	return selected, nil
}

// Current returns the selected document, or the zero value when cleared
func (s *FileIntakeService) Current() domain.SelectedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear drops the selection and revokes its handle
func (s *FileIntakeService) Clear() {
	s.mu.Lock()
	previous := s.current
	s.current = domain.SelectedDocument{}
	s.mu.Unlock()

	s.release(previous)
}

// Close revokes the current handle. The intake stays usable afterwards.
func (s *FileIntakeService) Close() error {
	s.Clear()
	return nil
}

func (s *FileIntakeService) read(file domain.FileHandle) ([]byte, error) {
	tooLarge := &domain.ValidationError{Field: "file", Message: fileTooLargeNotice, Err: domain.ErrFileTooLarge}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, tooLarge
	}

	r := file.Content
	if s.maxFileSize > 0 {
		r = io.LimitReader(r, s.maxFileSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, tooLarge
	}
	return data, nil
}

func (s *FileIntakeService) release(doc domain.SelectedDocument) {
	if doc.Handle == nil {
		return
	}
	if err := s.blobs.Revoke(doc.Handle.ID); err != nil {
		s.logger.Warn("Failed to revoke handle", "handle", doc.Handle.ID, "error", err)
	}
}

// isPDF accepts application/pdf with or without parameters.
func isPDF(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return mt == pdfMediaType
}

// sanitizeName strips any path components the client sent along
func sanitizeName(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if name == "" || name == "." || name == "/" {
		return defaultDocumentName
	}
	return name
}
