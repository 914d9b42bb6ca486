package ports

import (
	"context"
	"io"
)

// UploadInput carries one image file received from a multipart request.
type UploadInput struct {
	// Scope namespaces the stored object, e.g. "user" or "activity".
	Scope       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService interface {
	// UploadImage validates and stores the image, returning its public URL.
	UploadImage(ctx context.Context, input UploadInput) (string, error)
}
