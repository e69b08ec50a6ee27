package interfaces

import "context"

// Uploader stores a document and returns its public URL.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
