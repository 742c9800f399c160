package models

import "io"

// PendingFile is an image selected for upload but not yet sent.
type PendingFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	PreviewURL  string `json:"previewUrl"`

	Open func() (io.ReadCloser, error) `json:"-"`
}
