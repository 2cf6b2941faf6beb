// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pdf-book-reader/internal/domain"
	apperrors "pdf-book-reader/pkg/errors"

	"github.com/gorilla/mux"
)

// multipartMemory is how much of an upload is buffered in memory before the
// multipart reader spills to disk.
const multipartMemory = 8 << 20

// ReaderHandler exposes the reader session over HTTP
type ReaderHandler struct {
	reader        domain.ReaderService
	maxUploadSize int64
	logger        domain.Logger
}

// NewReaderHandler creates a new reader handler
func NewReaderHandler(reader domain.ReaderService, maxUploadSize int64, logger domain.Logger) *ReaderHandler {
	return &ReaderHandler{
		reader:        reader,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

type pageRequest struct {
	Page *int `json:"page"`
}

type wheelRequest struct {
	DeltaY *float64 `json:"delta_y"`
}

type viewerPageRequest struct {
	PageIndex *int `json:"page_index"`
}

// UploadDocument is the file picker: the multipart "file" part replaces the
// open document.
func (h *ReaderHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		// Multipart framing needs some room on top of the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartMemory)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, domain.ErrFileTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	view, err := h.reader.Open(r.Context(), domain.FileHandle{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Size:      header.Size,
		Content:   file,
	})
	if err != nil {
		h.logger.Warn("Document rejected", "name", header.Filename, "error", err.Error())
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// GetDocument returns the current reader view
func (h *ReaderHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reader.View())
}

// DeleteDocument closes the open document and releases its handle
func (h *ReaderHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.reader.Close(); err != nil {
		h.logger.Error("Failed to close document", err)
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadFile streams the selected document's bytes. Range requests are
// honoured so a browser viewer can fetch the PDF incrementally.
func (h *ReaderHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	content, doc, err := h.reader.OpenFile()
	if err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.DisplayName))
	var modTime time.Time
	if doc.Handle != nil {
		modTime = doc.Handle.CreatedAt
	}
	http.ServeContent(w, r, doc.DisplayName, modTime, content)
}

// RenderPage returns a PNG of one page; the path segment is one-based
func (h *ReaderHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	png, err := h.reader.RenderPage(r.Context(), page)
	if err != nil {
		appErr := apperrors.FromDomain(err)
		if !apperrors.IsType(appErr, apperrors.ErrorTypeNotFound) {
			h.logger.Error("Failed to render page", err, "page", page)
		}
		writeAppError(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Previous handles the previous-page button
func (h *ReaderHandler) Previous(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reader.Previous())
}

// Next handles the next-page button
func (h *ReaderHandler) Next(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reader.Next())
}

// SetPage handles a value typed into the page-number field
func (h *ReaderHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeJSON(r, &req); err != nil || req.Page == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.reader.GoToPageNumber(*req.Page))
}

// Wheel handles a scroll gesture over the book
func (h *ReaderHandler) Wheel(w http.ResponseWriter, r *http.Request) {
	var req wheelRequest
	if err := decodeJSON(r, &req); err != nil || req.DeltaY == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.reader.Wheel(*req.DeltaY))
}

// ViewerPage receives the client viewer's page-change notification
func (h *ReaderHandler) ViewerPage(w http.ResponseWriter, r *http.Request) {
	var req viewerPageRequest
	if err := decodeJSON(r, &req); err != nil || req.PageIndex == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.reader.ViewerPageChanged(*req.PageIndex))
}
