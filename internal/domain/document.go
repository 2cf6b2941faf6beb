package domain

import (
	"io"
	"time"
)

// FileHandle is what the file picker hands over: a name, the media type the
// client declared for it and a reader over its bytes.
type FileHandle struct {
	Name      string
	MediaType string
	Size      int64
	Content   io.Reader
}

// ResourceHandle is a scoped, revocable reference to the bytes of a selected file.
// The bytes stay reachable through the blob repository until the handle is revoked.
type ResourceHandle struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	MediaType string    `json:"media_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectedDocument is the file currently chosen by the reader.
// The zero value is the cleared selection.
type SelectedDocument struct {
	DisplayName string          `json:"display_name"`
	Handle      *ResourceHandle `json:"handle,omitempty"`
}

// IsEmpty reports whether nothing is selected.
func (d SelectedDocument) IsEmpty() bool {
	return d.Handle == nil
}

// LoadStatus tracks the viewer's progress on the selected document.
type LoadStatus string

const (
	LoadStatusEmpty   LoadStatus = "empty"
	LoadStatusLoading LoadStatus = "loading"
	LoadStatusReady   LoadStatus = "ready"
	LoadStatusFailed  LoadStatus = "failed"
)

// ReaderView is the snapshot a client renders from.
type ReaderView struct {
	FileName      string          `json:"file_name"`
	FileURL       string          `json:"file_url,omitempty"`
	Status        LoadStatus      `json:"status"`
	Notice        string          `json:"notice,omitempty"`
	Navigation    NavigationState `json:"navigation"`
	Label         string          `json:"label"`
	PageInput     int             `json:"page_input"`
	CanGoPrevious bool            `json:"can_go_previous"`
	CanGoNext     bool            `json:"can_go_next"`
}
