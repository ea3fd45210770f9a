package ports

import (
	"context"
	"io"

	"freight/internal/core/domain/model/kernel"
)

// FileStorage keeps uploaded files. Failures are reported as errs.UpstreamError.
type FileStorage interface {
	// Upload stores size bytes from r and returns a reference to them.
	// size may be -1 when unknown.
	Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (kernel.FileRef, error)

	// Download opens the referenced file. The caller closes the reader.
	Download(ctx context.Context, ref kernel.FileRef) (io.ReadCloser, error)

	// Delete removes the referenced file. Deleting a missing file is not an error.
	Delete(ctx context.Context, ref kernel.FileRef) error
}
