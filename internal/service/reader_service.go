package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"pdf-book-reader/internal/domain"
)

const loadFailureNotice = "Failed to load document."

// ReaderService ties file intake, the viewer and the page navigator together
// for the one document a reader has open.
type ReaderService struct {
	// opMu serialises Open and Close; mu guards the load status only, so
	// views stay readable while a load is in flight.
	opMu   sync.Mutex
	mu     sync.RWMutex
	status domain.LoadStatus
	notice string

	intake      domain.FileIntake
	blobs       domain.BlobRepository
	viewer      domain.DocumentViewer
	navigator   *PageNavigator
	loadTimeout time.Duration
	logger      domain.Logger
}

// NewReaderService wires the viewer's page notifications into the navigator
func NewReaderService(
	intake domain.FileIntake,
	blobs domain.BlobRepository,
	viewer domain.DocumentViewer,
	navigator *PageNavigator,
	loadTimeout time.Duration,
	logger domain.Logger,
) *ReaderService {
	s := &ReaderService{
		status:      domain.LoadStatusEmpty,
		intake:      intake,
		blobs:       blobs,
		viewer:      viewer,
		navigator:   navigator,
		loadTimeout: loadTimeout,
		logger:      logger,
	}
	viewer.OnPageChange(func(index int) {
		navigator.OnViewerReportedPage(index)
	})
	return s
}

// Open replaces the current document with file.
// A turn still running for the old document is cancelled first.
func (s *ReaderService) Open(ctx context.Context, file domain.FileHandle) (domain.ReaderView, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	// A request that is already gone leaves the open document alone.
	if err := ctx.Err(); err != nil {
		return s.View(), err
	}

	s.navigator.Reset()
	s.viewer.Unload()

	doc, err := s.intake.SelectFile(ctx, file)
	if err != nil {
		notice := ""
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			notice = vErr.Message
		}
		s.setStatus(domain.LoadStatusEmpty, notice)
		return s.View(), err
	}

	s.setStatus(domain.LoadStatusLoading, "")

	loadCtx := ctx
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	pages, err := s.viewer.Load(loadCtx, doc.Handle)
	if err == nil {
		err = s.navigator.OnDocumentLoaded(pages)
	}
	if err != nil {
		s.viewer.Unload()
		s.navigator.Reset()
		s.setStatus(domain.LoadStatusFailed, loadFailureNotice)
		s.logger.Error("Document load failed", err, "name", doc.DisplayName, "handle", doc.Handle.ID)
		if !errors.Is(err, domain.ErrLoadFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
		}
		return s.View(), fmt.Errorf("open %s: %w", doc.DisplayName, err)
	}

	s.setStatus(domain.LoadStatusReady, "")
	s.logger.Info("Document opened", "name", doc.DisplayName, "pages", pages)
	return s.View(), nil
}

// Close drops the document and releases its handle
func (s *ReaderService) Close() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.navigator.Reset()
	s.viewer.Unload()
	err := s.intake.Close()
	s.setStatus(domain.LoadStatusEmpty, "")
	return err
}

// View returns what the client should render
func (s *ReaderService) View() domain.ReaderView {
	s.mu.RLock()
	status, notice := s.status, s.notice
	s.mu.RUnlock()

	doc := s.intake.Current()
	nav := s.navigator.State()

	view := domain.ReaderView{
		FileName:   doc.DisplayName,
		Status:     status,
		Notice:     notice,
		Navigation: nav,
		Label:      nav.Label(),
	}
	if doc.Handle != nil {
		view.FileURL = doc.Handle.URL
	}
	if status == domain.LoadStatusReady && nav.Loaded() {
		view.PageInput = nav.CurrentPage + 1
		view.CanGoPrevious = !nav.AtFirstPage()
		view.CanGoNext = !nav.AtLastPage()
	}
	return view
}

// OpenFile returns the selected document's bytes
func (s *ReaderService) OpenFile() (io.ReadSeeker, domain.SelectedDocument, error) {
	doc := s.intake.Current()
	if doc.IsEmpty() {
		return nil, doc, domain.ErrNoDocument
	}
	r, err := s.blobs.Open(doc.Handle.ID)
	if err != nil {
		return nil, doc, err
	}
	return r, doc, nil
}

// RenderPage rasterises a one-based page of the ready document
func (s *ReaderService) RenderPage(ctx context.Context, pageNumber int) ([]byte, error) {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	if status != domain.LoadStatusReady {
		return nil, domain.ErrNoDocument
	}

	nav := s.navigator.State()
	if pageNumber < 1 || pageNumber > nav.TotalPages {
		return nil, fmt.Errorf("page %d of %d: %w", pageNumber, nav.TotalPages, domain.ErrPageOutOfRange)
	}
	return s.viewer.RenderPage(ctx, pageNumber-1)
}

// Previous is the previous-page button
func (s *ReaderService) Previous() domain.ReaderView {
	s.navigator.GoToPrevious()
	return s.View()
}

// Next is the next-page button
func (s *ReaderService) Next() domain.ReaderView {
	s.navigator.GoToNext()
	return s.View()
}

// GoToPageNumber is the page-number field; pageNumber is one-based
func (s *ReaderService) GoToPageNumber(pageNumber int) domain.ReaderView {
	// Clamp before converting so math.MinInt cannot wrap to the last page.
	if pageNumber < 1 {
		pageNumber = 1
	}
	s.navigator.GoToPage(pageNumber - 1)
	return s.View()
}

// Wheel is a scroll gesture over the book
func (s *ReaderService) Wheel(deltaY float64) domain.ReaderView {
	s.navigator.OnWheel(deltaY)
	return s.View()
}

// ViewerPageChanged forwards the client viewer's scroll position
func (s *ReaderService) ViewerPageChanged(index int) domain.ReaderView {
	s.viewer.ReportVisiblePage(index)
	return s.View()
}

func (s *ReaderService) setStatus(status domain.LoadStatus, notice string) {
	s.mu.Lock()
	s.status = status
	s.notice = notice
	s.mu.Unlock()
}
